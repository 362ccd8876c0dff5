// Package anki exports study content as Anki .apkg packages. An .apkg file
// is a zip archive holding a collection.anki2 SQLite database (legacy
// schema version 11, importable by every Anki client) and a media manifest.
// The package builds the database with modernc.org/sqlite, so no cgo is
// involved.
package anki
