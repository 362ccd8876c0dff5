package anki

import (
	"archive/zip"
	"crypto/sha1"
	"database/sql"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// fieldSeparator joins note fields in the flds column, per the Anki schema.
const fieldSeparator = "\x1f"

// Note is one note to be written into a package. Each template of its model
// becomes one card.
type Note struct {
	Model  *Model
	Fields []string
	Tags   []string
}

// Deck collects notes under one Anki deck name.
type Deck struct {
	ID    int64
	Name  string
	Notes []*Note
}

// AddNote appends a note to the deck.
func (d *Deck) AddNote(n *Note) {
	d.Notes = append(d.Notes, n)
}

// WritePackage builds an .apkg archive for the deck and writes it to w.
func WritePackage(w io.Writer, deck *Deck) error {
	if deck == nil || len(deck.Notes) == 0 {
		return fmt.Errorf("deck has no notes to export")
	}

	// sqlite needs a real file; the archive gets its bytes afterwards.
	dbFile, err := os.CreateTemp("", "vocabforge-anki-*.anki2")
	if err != nil {
		return fmt.Errorf("failed to create temp collection file: %w", err)
	}
	dbPath := dbFile.Name()
	_ = dbFile.Close()
	defer func() { _ = os.Remove(dbPath) }()

	if err := buildCollection(dbPath, deck); err != nil {
		return err
	}

	collection, err := os.ReadFile(dbPath)
	if err != nil {
		return fmt.Errorf("failed to read collection file: %w", err)
	}

	archive := zip.NewWriter(w)

	entry, err := archive.Create("collection.anki2")
	if err != nil {
		return fmt.Errorf("failed to create archive entry: %w", err)
	}
	if _, err := entry.Write(collection); err != nil {
		return fmt.Errorf("failed to write collection to archive: %w", err)
	}

	// No media files; the manifest is an empty JSON object.
	media, err := archive.Create("media")
	if err != nil {
		return fmt.Errorf("failed to create media entry: %w", err)
	}
	if _, err := media.Write([]byte("{}")); err != nil {
		return fmt.Errorf("failed to write media manifest: %w", err)
	}

	if err := archive.Close(); err != nil {
		return fmt.Errorf("failed to finalize archive: %w", err)
	}
	return nil
}

// collectionSchema is the legacy anki2 schema (version 11), understood by
// every Anki client.
const collectionSchema = `
CREATE TABLE col (
	id integer PRIMARY KEY,
	crt integer NOT NULL,
	mod integer NOT NULL,
	scm integer NOT NULL,
	ver integer NOT NULL,
	dty integer NOT NULL,
	usn integer NOT NULL,
	ls integer NOT NULL,
	conf text NOT NULL,
	models text NOT NULL,
	decks text NOT NULL,
	dconf text NOT NULL,
	tags text NOT NULL
);
CREATE TABLE notes (
	id integer PRIMARY KEY,
	guid text NOT NULL,
	mid integer NOT NULL,
	mod integer NOT NULL,
	usn integer NOT NULL,
	tags text NOT NULL,
	flds text NOT NULL,
	sfld text NOT NULL,
	csum integer NOT NULL,
	flags integer NOT NULL,
	data text NOT NULL
);
CREATE TABLE cards (
	id integer PRIMARY KEY,
	nid integer NOT NULL,
	did integer NOT NULL,
	ord integer NOT NULL,
	mod integer NOT NULL,
	usn integer NOT NULL,
	type integer NOT NULL,
	queue integer NOT NULL,
	due integer NOT NULL,
	ivl integer NOT NULL,
	factor integer NOT NULL,
	reps integer NOT NULL,
	lapses integer NOT NULL,
	left integer NOT NULL,
	odue integer NOT NULL,
	odid integer NOT NULL,
	flags integer NOT NULL,
	data text NOT NULL
);
CREATE TABLE revlog (
	id integer PRIMARY KEY,
	cid integer NOT NULL,
	usn integer NOT NULL,
	ease integer NOT NULL,
	ivl integer NOT NULL,
	lastIvl integer NOT NULL,
	factor integer NOT NULL,
	time integer NOT NULL,
	type integer NOT NULL
);
CREATE TABLE graves (
	usn integer NOT NULL,
	oid integer NOT NULL,
	type integer NOT NULL
);
CREATE INDEX ix_notes_usn ON notes (usn);
CREATE INDEX ix_cards_usn ON cards (usn);
CREATE INDEX ix_revlog_usn ON revlog (usn);
CREATE INDEX ix_cards_nid ON cards (nid);
CREATE INDEX ix_cards_sched ON cards (did, queue, due);
CREATE INDEX ix_revlog_cid ON revlog (cid);
CREATE INDEX ix_notes_csum ON notes (csum);
`

// buildCollection writes the full anki2 database for the deck.
func buildCollection(path string, deck *Deck) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open collection database: %w", err)
	}
	defer func() { _ = db.Close() }()

	if _, err := db.Exec(collectionSchema); err != nil {
		return fmt.Errorf("failed to create collection schema: %w", err)
	}

	now := time.Now()
	if err := insertCollectionRow(db, deck, now); err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin insert transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	noteID := now.UnixMilli()
	cardID := noteID + 1_000_000
	due := 1
	for _, note := range deck.Notes {
		flds := strings.Join(note.Fields, fieldSeparator)
		sfld := note.Fields[0]

		_, err := tx.Exec(
			`INSERT INTO notes (id, guid, mid, mod, usn, tags, flds, sfld, csum, flags, data)
			 VALUES (?, ?, ?, ?, -1, ?, ?, ?, ?, 0, '')`,
			noteID, noteGUID(flds), note.Model.ID, now.Unix(),
			" "+strings.Join(note.Tags, " ")+" ", flds, sfld, fieldChecksum(sfld),
		)
		if err != nil {
			return fmt.Errorf("failed to insert note: %w", err)
		}

		for ord := range note.Model.Templates {
			_, err := tx.Exec(
				`INSERT INTO cards (id, nid, did, ord, mod, usn, type, queue, due,
				                    ivl, factor, reps, lapses, left, odue, odid, flags, data)
				 VALUES (?, ?, ?, ?, ?, -1, 0, 0, ?, 0, 0, 0, 0, 0, 0, 0, 0, '')`,
				cardID, noteID, deck.ID, ord, now.Unix(), due,
			)
			if err != nil {
				return fmt.Errorf("failed to insert card: %w", err)
			}
			cardID++
			due++
		}
		noteID++
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit notes: %w", err)
	}
	return nil
}

// insertCollectionRow writes the single col row holding the JSON blobs for
// configuration, note types and decks.
func insertCollectionRow(db *sql.DB, deck *Deck, now time.Time) error {
	models := make(map[int64]*Model)
	for _, note := range deck.Notes {
		models[note.Model.ID] = note.Model
	}

	modelsJSON, err := json.Marshal(modelsBlob(models, deck.ID, now))
	if err != nil {
		return fmt.Errorf("failed to encode models: %w", err)
	}
	decksJSON, err := json.Marshal(decksBlob(deck, now))
	if err != nil {
		return fmt.Errorf("failed to encode decks: %w", err)
	}
	confJSON, err := json.Marshal(confBlob(deck))
	if err != nil {
		return fmt.Errorf("failed to encode collection config: %w", err)
	}
	dconfJSON, err := json.Marshal(deckConfBlob(now))
	if err != nil {
		return fmt.Errorf("failed to encode deck config: %w", err)
	}

	_, err = db.Exec(
		`INSERT INTO col (id, crt, mod, scm, ver, dty, usn, ls, conf, models, decks, dconf, tags)
		 VALUES (1, ?, ?, ?, 11, 0, 0, 0, ?, ?, ?, ?, '{}')`,
		now.Unix(), now.UnixMilli(), now.UnixMilli(),
		string(confJSON), string(modelsJSON), string(decksJSON), string(dconfJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to insert collection row: %w", err)
	}
	return nil
}

func confBlob(deck *Deck) map[string]any {
	return map[string]any{
		"nextPos":       1,
		"estTimes":      true,
		"activeDecks":   []int64{deck.ID},
		"sortType":      "noteFld",
		"timeLim":       0,
		"sortBackwards": false,
		"addToCur":      true,
		"curDeck":       deck.ID,
		"newBury":       true,
		"newSpread":     0,
		"dueCounts":     true,
		"curModel":      "",
		"collapseTime":  1200,
	}
}

func modelsBlob(models map[int64]*Model, deckID int64, now time.Time) map[string]any {
	blob := make(map[string]any, len(models))
	for id, model := range models {
		tmpls := make([]map[string]any, len(model.Templates))
		req := make([]any, len(model.Templates))
		for ord, tmpl := range model.Templates {
			tmpls[ord] = map[string]any{
				"name":  tmpl.Name,
				"ord":   ord,
				"qfmt":  tmpl.Question,
				"afmt":  tmpl.Answer,
				"bqfmt": "",
				"bafmt": "",
				"did":   nil,
			}
			// Each card renders as long as any of the model's fields is
			// non-empty.
			fieldIdxs := make([]int, len(model.Fields))
			for i := range model.Fields {
				fieldIdxs[i] = i
			}
			req[ord] = []any{ord, "any", fieldIdxs}
		}

		flds := make([]map[string]any, len(model.Fields))
		for ord, field := range model.Fields {
			flds[ord] = map[string]any{
				"name":   field.Name,
				"ord":    ord,
				"font":   "Arial",
				"size":   20,
				"media":  []string{},
				"rtl":    false,
				"sticky": false,
			}
		}

		blob[strconv.FormatInt(id, 10)] = map[string]any{
			"id":        id,
			"name":      model.Name,
			"type":      0,
			"mod":       now.Unix(),
			"usn":       -1,
			"sortf":     0,
			"did":       deckID,
			"tmpls":     tmpls,
			"flds":      flds,
			"css":       model.CSS,
			"latexPre":  "\\documentclass[12pt]{article}\n\\special{papersize=3in,5in}\n\\usepackage{amssymb,amsmath}\n\\pagestyle{empty}\n\\begin{document}\n",
			"latexPost": "\\end{document}",
			"req":       req,
			"tags":      []string{},
			"vers":      []string{},
		}
	}
	return blob
}

func decksBlob(deck *Deck, now time.Time) map[string]any {
	entry := func(id int64, name string) map[string]any {
		return map[string]any{
			"id":               id,
			"name":             name,
			"mod":              now.Unix(),
			"usn":              -1,
			"lrnToday":         []int{0, 0},
			"revToday":         []int{0, 0},
			"newToday":         []int{0, 0},
			"timeToday":        []int{0, 0},
			"collapsed":        false,
			"browserCollapsed": false,
			"desc":             "",
			"dyn":              0,
			"conf":             1,
			"extendNew":        0,
			"extendRev":        0,
		}
	}
	return map[string]any{
		"1": entry(1, "Default"),
		strconv.FormatInt(deck.ID, 10): entry(deck.ID, deck.Name),
	}
}

func deckConfBlob(now time.Time) map[string]any {
	return map[string]any{
		"1": map[string]any{
			"id":       1,
			"name":     "Default",
			"mod":      now.Unix(),
			"usn":      -1,
			"maxTaken": 60,
			"autoplay": true,
			"timer":    0,
			"replayq":  true,
			"dyn":      false,
			"new": map[string]any{
				"bury":          true,
				"delays":        []int{1, 10},
				"initialFactor": 2500,
				"ints":          []int{1, 4, 7},
				"order":         1,
				"perDay":        20,
				"separate":      true,
			},
			"rev": map[string]any{
				"bury":     true,
				"ease4":    1.3,
				"fuzz":     0.05,
				"ivlFct":   1,
				"maxIvl":   36500,
				"minSpace": 1,
				"perDay":   100,
			},
			"lapse": map[string]any{
				"delays":      []int{10},
				"leechAction": 0,
				"leechFails":  8,
				"minInt":      1,
				"mult":        0,
			},
		},
	}
}

// noteGUID derives a stable note identifier from the field payload, so
// re-importing an export updates notes instead of duplicating them.
func noteGUID(flds string) string {
	sum := sha1.Sum([]byte(flds))
	return base64.RawStdEncoding.EncodeToString(sum[:8])
}

// fieldChecksum is Anki's duplicate-detection checksum: the first 8 hex
// digits of the SHA1 of the sort field, as an integer.
func fieldChecksum(sfld string) int64 {
	sum := sha1.Sum([]byte(sfld))
	value, _ := strconv.ParseInt(hex.EncodeToString(sum[:])[:8], 16, 64)
	return value
}
