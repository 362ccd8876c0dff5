package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/marchen/vocabforge/internal/api/shared"
	"github.com/marchen/vocabforge/internal/domain"
	"github.com/marchen/vocabforge/internal/service"
)

// StudyHandler handles generation requests and task polling.
type StudyHandler struct {
	studyService service.StudyService
}

// NewStudyHandler creates a new StudyHandler.
func NewStudyHandler(studyService service.StudyService) *StudyHandler {
	return &StudyHandler{studyService: studyService}
}

// Generate handles POST /api/generate requests. Generation runs
// asynchronously; the response carries the task id to poll.
func (h *StudyHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	taskID, err := h.studyService.StartGeneration(r.Context(), req.WordCount, domain.EssayType(req.EssayType))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusAccepted, GenerateResponse{TaskID: taskID.String()})
}

// GetTask handles GET /api/tasks/{id} requests.
func (h *StudyHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID format")
		return
	}

	snapshot, err := h.studyService.GetTask(id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(snapshot))
}
