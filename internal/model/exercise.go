package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidFilter is returned when an unrecognized filter token is
// passed to the exercise query layer. Unknown tokens fail fast rather
// than silently matching zero rows.
var ErrInvalidFilter = errors.New("invalid filter value")

// BodyFocus classifies an exercise's targeted muscle groups. An
// exercise carries a set of these.
type BodyFocus string

const (
	BodyUpper BodyFocus = "upper"
	BodyLower BodyFocus = "lower"
	BodyCore  BodyFocus = "core"
	BodyFull  BodyFocus = "full"
)

// ParseBodyFocus validates a body-focus token.
func ParseBodyFocus(s string) (BodyFocus, error) {
	switch BodyFocus(s) {
	case BodyUpper, BodyLower, BodyCore, BodyFull:
		return BodyFocus(s), nil
	}
	return "", fmt.Errorf("%w: body focus %q", ErrInvalidFilter, s)
}

// Plane is the plane of motion an exercise moves through.
type Plane string

const (
	PlaneFrontal    Plane = "frontal"
	PlaneSagittal   Plane = "sagittal"
	PlaneTransverse Plane = "transverse"
)

// ParsePlane validates a movement-plane token.
func ParsePlane(s string) (Plane, error) {
	switch Plane(s) {
	case PlaneFrontal, PlaneSagittal, PlaneTransverse:
		return Plane(s), nil
	}
	return "", fmt.Errorf("%w: plane %q", ErrInvalidFilter, s)
}

// Pattern is the fundamental movement pattern of an exercise.
type Pattern string

const (
	PatternPush       Pattern = "push"
	PatternPull       Pattern = "pull"
	PatternCore       Pattern = "core"
	PatternSquat      Pattern = "squat"
	PatternHinge      Pattern = "hinge"
	PatternLunge      Pattern = "lunge"
	PatternRotational Pattern = "rotational"
	PatternLocomotive Pattern = "locomotive"
)

// ParsePattern validates a movement-pattern token.
func ParsePattern(s string) (Pattern, error) {
	switch Pattern(s) {
	case PatternPush, PatternPull, PatternCore, PatternSquat,
		PatternHinge, PatternLunge, PatternRotational, PatternLocomotive:
		return Pattern(s), nil
	}
	return "", fmt.Errorf("%w: pattern %q", ErrInvalidFilter, s)
}

// Exercise is a catalog record. Read-only from this service's
// perspective; the catalog is maintained out of band.
type Exercise struct {
	ID        int64
	Name      string
	Body      []BodyFocus
	Plane     Plane
	Pattern   Pattern
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasBodyFocus reports whether the exercise's body-focus set contains
// the given value.
func (e *Exercise) HasBodyFocus(f BodyFocus) bool {
	for _, b := range e.Body {
		if b == f {
			return true
		}
	}
	return false
}

// ExerciseFilters are the optional predicates of an exercise search.
// Zero values mean "no constraint"; all supplied filters combine with
// logical AND.
type ExerciseFilters struct {
	Name    string
	Body    BodyFocus
	Plane   Plane
	Pattern Pattern
}

// ExerciseResponse represents a catalog record in API responses.
type ExerciseResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Body      []string  `json:"body"`
	Plane     string    `json:"plane"`
	Pattern   string    `json:"pattern"`
	CreatedAt time.Time `json:"created_at"`
}

// SearchExercisesResponse is one page of results plus the total number
// of records matching the same predicate, for pagination UI.
type SearchExercisesResponse struct {
	Items      []ExerciseResponse `json:"items"`
	TotalCount int                `json:"total_count"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
}
