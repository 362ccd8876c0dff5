package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/marchen/vocabforge/internal/anki"
	"github.com/marchen/vocabforge/internal/api/shared"
)

// AnkiExporter is the slice of the anki package the handler needs.
type AnkiExporter interface {
	ExportWords(ctx context.Context, w io.Writer) error
	ExportEssays(ctx context.Context, w io.Writer) error
}

// AnkiHandler serves .apkg downloads.
type AnkiHandler struct {
	exporter AnkiExporter
}

// NewAnkiHandler creates a new AnkiHandler.
func NewAnkiHandler(exporter AnkiExporter) *AnkiHandler {
	return &AnkiHandler{exporter: exporter}
}

// Export handles GET /api/anki/export/{kind} requests, where kind is
// "words" or "essays".
func (h *AnkiHandler) Export(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")

	// The exporter writes the archive only after it succeeds, so buffer it
	// rather than streaming half a zip on failure.
	var buf bytes.Buffer
	var err error
	switch kind {
	case "words":
		err = h.exporter.ExportWords(r.Context(), &buf)
	case "essays":
		err = h.exporter.ExportEssays(r.Context(), &buf)
	default:
		shared.RespondWithError(w, r, http.StatusBadRequest, "Export kind must be 'words' or 'essays'")
		return
	}
	if err != nil {
		if errors.Is(err, anki.ErrNothingToExport) {
			shared.RespondWithError(w, r, http.StatusNotFound, "No content to export")
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Export failed", err)
		return
	}

	filename := fmt.Sprintf("vocabforge_%s_%s.apkg", kind, time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/apkg")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, &buf)
}
