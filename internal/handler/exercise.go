package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/fitizen/fitizen-go/internal/model"
	"github.com/fitizen/fitizen-go/internal/service"
)

// ExerciseHandler handles HTTP requests for the exercise catalog.
type ExerciseHandler struct {
	service *service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(svc *service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{service: svc}
}

// HandleSearch handles GET and POST /api/v1/exercises/search requests.
// The search form submits body, plane and pattern as form fields; the
// free-text name filter and pagination arrive as query parameters.
// FormValue covers both sources.
func (h *ExerciseHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	raw := service.RawExerciseFilters{
		Name:    r.FormValue("name"),
		Body:    r.FormValue("body"),
		Plane:   r.FormValue("plane"),
		Pattern: r.FormValue("pattern"),
	}

	page := parseIntParam(r.FormValue("page"), 1)
	pageSize := parseIntParam(r.FormValue("page_size"), service.DefaultPageSize)

	resp, err := h.service.Search(r.Context(), raw, page, pageSize)
	if err != nil {
		if errors.Is(err, model.ErrInvalidFilter) {
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleListByBodyFocus handles GET /api/v1/exercises/body-focus requests.
func (h *ExerciseHandler) HandleListByBodyFocus(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListByBodyFocus(r.Context(), r.URL.Query().Get("focus"))
	if err != nil {
		if errors.Is(err, model.ErrInvalidFilter) {
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, items)
}

func parseIntParam(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
