package service

import (
	"context"

	"github.com/fitizen/fitizen-go/internal/model"
)

// DefaultPageSize is used when a search request does not specify one.
const DefaultPageSize = 10

// ExerciseStore is the catalog read contract. Satisfied by
// repository.ExerciseRepository.
type ExerciseStore interface {
	Count(ctx context.Context, filters model.ExerciseFilters) (int, error)
	Search(ctx context.Context, filters model.ExerciseFilters, limit, offset int) ([]model.Exercise, error)
	ListByBodyFocus(ctx context.Context, focus model.BodyFocus) ([]model.Exercise, error)
}

// RawExerciseFilters are filter tokens exactly as they arrived from the
// request, before enum validation. Empty string means "no constraint".
type RawExerciseFilters struct {
	Name    string
	Body    string
	Plane   string
	Pattern string
}

// ExerciseService composes catalog filters into paginated searches.
type ExerciseService struct {
	store ExerciseStore
}

// NewExerciseService creates a new ExerciseService.
func NewExerciseService(store ExerciseStore) *ExerciseService {
	return &ExerciseService{store: store}
}

// parseFilters validates raw tokens against the catalog enums. An
// unrecognized token fails the whole request with model.ErrInvalidFilter
// rather than silently matching nothing.
func parseFilters(raw RawExerciseFilters) (model.ExerciseFilters, error) {
	filters := model.ExerciseFilters{Name: raw.Name}

	if raw.Body != "" {
		body, err := model.ParseBodyFocus(raw.Body)
		if err != nil {
			return model.ExerciseFilters{}, err
		}
		filters.Body = body
	}
	if raw.Plane != "" {
		plane, err := model.ParsePlane(raw.Plane)
		if err != nil {
			return model.ExerciseFilters{}, err
		}
		filters.Plane = plane
	}
	if raw.Pattern != "" {
		pattern, err := model.ParsePattern(raw.Pattern)
		if err != nil {
			return model.ExerciseFilters{}, err
		}
		filters.Pattern = pattern
	}

	return filters, nil
}

// Search returns one page of matching exercises plus the total count of
// records matching the same predicate. Page is 1-indexed; pageSize
// defaults to DefaultPageSize. All supplied filters combine with AND;
// ordering is creation time descending then name ascending, so pages
// over stable data never duplicate or drop records.
//
// The count and the page are two independent reads, not one snapshot: a
// write landing between them can skew the total by the concurrent
// delta. Fine for a pagination header, not for accounting.
func (s *ExerciseService) Search(ctx context.Context, raw RawExerciseFilters, page, pageSize int) (model.SearchExercisesResponse, error) {
	filters, err := parseFilters(raw)
	if err != nil {
		return model.SearchExercisesResponse{}, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	offset := (page - 1) * pageSize

	total, err := s.store.Count(ctx, filters)
	if err != nil {
		return model.SearchExercisesResponse{}, err
	}

	exercises, err := s.store.Search(ctx, filters, pageSize, offset)
	if err != nil {
		return model.SearchExercisesResponse{}, err
	}

	return model.SearchExercisesResponse{
		Items:      toExerciseResponses(exercises),
		TotalCount: total,
		Page:       page,
		PageSize:   pageSize,
	}, nil
}

// ListByBodyFocus returns every exercise whose body-focus set contains
// the given value. No pagination; order is whatever the store yields.
func (s *ExerciseService) ListByBodyFocus(ctx context.Context, focus string) ([]model.ExerciseResponse, error) {
	parsed, err := model.ParseBodyFocus(focus)
	if err != nil {
		return nil, err
	}

	exercises, err := s.store.ListByBodyFocus(ctx, parsed)
	if err != nil {
		return nil, err
	}

	return toExerciseResponses(exercises), nil
}

func toExerciseResponses(exercises []model.Exercise) []model.ExerciseResponse {
	items := make([]model.ExerciseResponse, 0, len(exercises))
	for _, e := range exercises {
		body := make([]string, 0, len(e.Body))
		for _, b := range e.Body {
			body = append(body, string(b))
		}
		items = append(items, model.ExerciseResponse{
			ID:        e.ID,
			Name:      e.Name,
			Body:      body,
			Plane:     string(e.Plane),
			Pattern:   string(e.Pattern),
			CreatedAt: e.CreatedAt,
		})
	}
	return items
}
