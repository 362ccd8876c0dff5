package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/marchen/vocabforge/internal/api/shared"
	"github.com/marchen/vocabforge/internal/service"
)

// Pagination defaults for the essay listing.
const (
	defaultPage    = 1
	defaultPerPage = 10
	maxPerPage     = 100
)

// EssayHandler serves the essay read endpoints.
type EssayHandler struct {
	studyService service.StudyService
}

// NewEssayHandler creates a new EssayHandler.
func NewEssayHandler(studyService service.StudyService) *EssayHandler {
	return &EssayHandler{studyService: studyService}
}

// List handles GET /api/essays requests with page/per_page query
// parameters, newest essays first.
func (h *EssayHandler) List(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", defaultPage)
	perPage := queryInt(r, "per_page", defaultPerPage)
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	result, err := h.studyService.ListEssays(r.Context(), page, perPage)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	resp := EssayListResponse{
		Essays:     make([]EssayResponse, 0, len(result.Essays)),
		TotalCount: result.TotalCount,
		Page:       result.Page,
		PerPage:    result.PerPage,
	}
	for _, view := range result.Essays {
		resp.Essays = append(resp.Essays, essayViewToResponse(view))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// Get handles GET /api/essays/{id} requests.
func (h *EssayHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid essay ID format")
		return
	}

	view, err := h.studyService.GetEssay(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, essayViewToResponse(*view))
}

// queryInt reads an integer query parameter, falling back to def when the
// parameter is absent or not a positive integer.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return def
	}
	return value
}
