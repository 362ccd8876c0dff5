package anki

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"log/slog"
	"strings"

	"github.com/marchen/vocabforge/internal/domain"
	"github.com/marchen/vocabforge/internal/store"
)

// ErrNothingToExport is returned when no content qualifies for export.
var ErrNothingToExport = errors.New("no content to export")

// Exporter builds Anki packages from the content stores.
type Exporter struct {
	words  store.WordStore
	essays store.EssayStore
	logger *slog.Logger
}

// NewExporter creates an Exporter. If logger is nil, a default logger is
// used.
func NewExporter(words store.WordStore, essays store.EssayStore, logger *slog.Logger) (*Exporter, error) {
	if words == nil {
		return nil, fmt.Errorf("word store cannot be nil")
	}
	if essays == nil {
		return nil, fmt.Errorf("essay store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Exporter{
		words:  words,
		essays: essays,
		logger: logger.With(slog.String("component", "anki_exporter")),
	}, nil
}

// ExportWords writes an .apkg with one note per word that carries learning
// content. Words without content are skipped; they have nothing to study
// from yet.
func (e *Exporter) ExportWords(ctx context.Context, w io.Writer) error {
	words, err := e.words.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load words: %w", err)
	}

	model := WordModel()
	deck := &Deck{ID: wordDeckID, Name: "VocabForge 单词学习"}
	for _, word := range words {
		if !word.HasContent() {
			continue
		}
		deck.AddNote(&Note{
			Model: model,
			Fields: []string{
				html.EscapeString(word.Text),
				formatLearningContent(word.Content),
				mainTranslation(word.Content),
			},
			Tags: []string{"vocabforge", "word"},
		})
	}

	if len(deck.Notes) == 0 {
		return fmt.Errorf("%w: no words with learning content", ErrNothingToExport)
	}

	e.logger.InfoContext(ctx, "exporting word deck", slog.Int("note_count", len(deck.Notes)))
	return WritePackage(w, deck)
}

// ExportEssays writes an .apkg with one note per essay.
func (e *Exporter) ExportEssays(ctx context.Context, w io.Writer) error {
	var notes []*Note
	model := EssayModel()

	// Page through the full listing; exports are rare enough that loading
	// everything is fine.
	const pageSize = 100
	for offset := 0; ; offset += pageSize {
		essays, err := e.essays.List(ctx, pageSize, offset)
		if err != nil {
			return fmt.Errorf("failed to load essays: %w", err)
		}
		if len(essays) == 0 {
			break
		}
		for _, essay := range essays {
			notes = append(notes, &Note{
				Model: model,
				Fields: []string{
					html.EscapeString(essay.Content.Title),
					html.EscapeString(essay.Content.EnglishText),
					html.EscapeString(essay.Content.Translation),
					html.EscapeString(strings.Join(essay.Words, ", ")),
				},
				Tags: []string{"vocabforge", "essay", string(essay.Content.Type)},
			})
		}
		if len(essays) < pageSize {
			break
		}
	}

	if len(notes) == 0 {
		return fmt.Errorf("%w: no essays", ErrNothingToExport)
	}

	deck := &Deck{ID: essayDeckID, Name: "VocabForge 短文学习", Notes: notes}
	e.logger.InfoContext(ctx, "exporting essay deck", slog.Int("note_count", len(deck.Notes)))
	return WritePackage(w, deck)
}

// formatLearningContent renders a word's learning payload as the HTML block
// shown on card backs.
func formatLearningContent(content *domain.LearningContent) string {
	var parts []string

	if content.Phonetic != "" {
		parts = append(parts, fmt.Sprintf(
			"<div class='phonetic'><strong>音标:</strong> %s</div>",
			html.EscapeString(content.Phonetic)))
	}
	if content.Pronunciation != "" {
		parts = append(parts, fmt.Sprintf(
			"<div class='pronunciation'><strong>发音:</strong> %s</div>",
			html.EscapeString(content.Pronunciation)))
	}
	if len(content.PartsOfSpeech) > 0 {
		parts = append(parts, fmt.Sprintf(
			"<div class='pos'><strong>词性:</strong> %s</div>",
			html.EscapeString(strings.Join(content.PartsOfSpeech, ", "))))
	}
	if len(content.Translations) > 0 {
		parts = append(parts, fmt.Sprintf(
			"<div class='translations'><strong>常用翻译:</strong>%s</div>",
			htmlList(content.Translations)))
	}
	if len(content.CommonPhrases) > 0 {
		items := make([]string, len(content.CommonPhrases))
		for i, p := range content.CommonPhrases {
			items[i] = p.Text + " — " + p.Translation
		}
		parts = append(parts, fmt.Sprintf(
			"<div class='phrases'><strong>常用短语:</strong>%s</div>", htmlList(items)))
	}
	if content.Etymology != "" {
		parts = append(parts, fmt.Sprintf(
			"<div class='etymology'><strong>词根词缀:</strong> %s</div>",
			html.EscapeString(content.Etymology)))
	}
	if len(content.Examples) > 0 {
		items := make([]string, len(content.Examples))
		for i, ex := range content.Examples {
			items[i] = ex.Sentence + " — " + ex.Translation
		}
		parts = append(parts, fmt.Sprintf(
			"<div class='examples'><strong>例句:</strong>%s</div>", htmlList(items)))
	}

	return "<div class=\"word-content\">" + strings.Join(parts, "") + "</div>"
}

// htmlList renders items as an escaped unordered list.
func htmlList(items []string) string {
	var b strings.Builder
	b.WriteString("<ul>")
	for _, item := range items {
		b.WriteString("<li>")
		b.WriteString(html.EscapeString(item))
		b.WriteString("</li>")
	}
	b.WriteString("</ul>")
	return b.String()
}

// mainTranslation returns the first translation for the spelling and
// reverse card fronts.
func mainTranslation(content *domain.LearningContent) string {
	if len(content.Translations) > 0 {
		return html.EscapeString(content.Translations[0])
	}
	return "英语单词"
}
