package handler

import (
	"errors"
	"net/http"

	"github.com/fitizen/fitizen-go/internal/repository"
	"github.com/fitizen/fitizen-go/internal/service"
)

// ProgramHandler handles HTTP requests for training-program reads.
type ProgramHandler struct {
	service *service.ProgramService
}

// NewProgramHandler creates a new ProgramHandler.
func NewProgramHandler(svc *service.ProgramService) *ProgramHandler {
	return &ProgramHandler{service: svc}
}

// HandleProgramName handles GET /api/v1/programs?id= requests. Session
// verification happened in the middleware; this is a pure read.
func (h *ProgramHandler) HandleProgramName(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.GetProgramName(r.Context(), r.URL.Query().Get("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProgramIDRequired):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		case errors.Is(err, repository.ErrProgramNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
