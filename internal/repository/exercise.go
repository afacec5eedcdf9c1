package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/fitizen/fitizen-go/internal/model"
)

// ExerciseRepository provides read access to the exercise catalog. The
// catalog is maintained out of band; this layer never writes it.
type ExerciseRepository struct {
	db *sql.DB
}

// NewExerciseRepository creates a new ExerciseRepository.
func NewExerciseRepository(db *sql.DB) *ExerciseRepository {
	return &ExerciseRepository{db: db}
}

const exerciseColumns = `id, name, body, plane, pattern, created_at, updated_at`

// buildFilterClause translates filters into a WHERE clause and its
// arguments. Count and page queries share the output so the two can
// never diverge for the same filter set.
func buildFilterClause(filters model.ExerciseFilters) (string, []any) {
	var conds []string
	var args []any

	if filters.Name != "" {
		conds = append(conds, `LOWER(name) LIKE ?`)
		args = append(args, "%"+strings.ToLower(filters.Name)+"%")
	}
	if filters.Body != "" {
		conds = append(conds, `FIND_IN_SET(?, body) > 0`)
		args = append(args, string(filters.Body))
	}
	if filters.Plane != "" {
		conds = append(conds, `plane = ?`)
		args = append(args, string(filters.Plane))
	}
	if filters.Pattern != "" {
		conds = append(conds, `pattern = ?`)
		args = append(args, string(filters.Pattern))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// Count returns the number of catalog records matching the filters,
// independent of any limit or offset.
func (r *ExerciseRepository) Count(ctx context.Context, filters model.ExerciseFilters) (int, error) {
	where, args := buildFilterClause(filters)

	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM exercises`+where, args...).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Search returns one page of catalog records matching the filters.
// Ordering is total: creation time descending, then name ascending, so
// repeated calls over stable data paginate reproducibly.
func (r *ExerciseRepository) Search(ctx context.Context, filters model.ExerciseFilters, limit, offset int) ([]model.Exercise, error) {
	where, args := buildFilterClause(filters)

	query := `SELECT ` + exerciseColumns + ` FROM exercises` + where +
		` ORDER BY created_at DESC, name ASC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanExercises(rows)
}

// ListByBodyFocus returns every catalog record whose body-focus set
// contains the given value. No pagination and no ordering guarantee
// beyond set membership.
func (r *ExerciseRepository) ListByBodyFocus(ctx context.Context, focus model.BodyFocus) ([]model.Exercise, error) {
	query := `SELECT ` + exerciseColumns + ` FROM exercises WHERE FIND_IN_SET(?, body) > 0`

	rows, err := r.db.QueryContext(ctx, query, string(focus))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanExercises(rows)
}

func scanExercises(rows *sql.Rows) ([]model.Exercise, error) {
	var exercises []model.Exercise
	for rows.Next() {
		var e model.Exercise
		var body, plane, pattern string
		if err := rows.Scan(
			&e.ID, &e.Name, &body, &plane, &pattern, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, err
		}
		e.Body = splitBodyFocus(body)
		e.Plane = model.Plane(plane)
		e.Pattern = model.Pattern(pattern)
		exercises = append(exercises, e)
	}
	return exercises, rows.Err()
}

// splitBodyFocus decodes the comma-separated body column into its tag set.
func splitBodyFocus(s string) []model.BodyFocus {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	body := make([]model.BodyFocus, 0, len(parts))
	for _, p := range parts {
		body = append(body, model.BodyFocus(strings.TrimSpace(p)))
	}
	return body
}
