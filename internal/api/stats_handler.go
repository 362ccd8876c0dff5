package api

import (
	"net/http"

	"github.com/marchen/vocabforge/internal/api/shared"
	"github.com/marchen/vocabforge/internal/service"
)

// StatsHandler serves the study progress counters.
type StatsHandler struct {
	studyService service.StudyService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(studyService service.StudyService) *StatsHandler {
	return &StatsHandler{studyService: studyService}
}

// Get handles GET /api/stats requests.
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	stats, err := h.studyService.GetStats(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, StatsResponse{
		TotalWords:       stats.TotalWords,
		StudiedWords:     stats.StudiedWords,
		UnstudiedWords:   stats.UnstudiedWords,
		WordsWithContent: stats.WordsWithContent,
		TotalEssays:      stats.TotalEssays,
	})
}
