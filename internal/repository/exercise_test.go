package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/fitizen/fitizen-go/internal/model"
)

func TestBuildFilterClauseEmpty(t *testing.T) {
	where, args := buildFilterClause(model.ExerciseFilters{})
	require.Empty(t, where)
	require.Empty(t, args)
}

func TestBuildFilterClauseAllFilters(t *testing.T) {
	where, args := buildFilterClause(model.ExerciseFilters{
		Name:    "Squat",
		Body:    model.BodyLower,
		Plane:   model.PlaneSagittal,
		Pattern: model.PatternSquat,
	})

	require.Equal(t, " WHERE LOWER(name) LIKE ? AND FIND_IN_SET(?, body) > 0 AND plane = ? AND pattern = ?", where)
	require.Equal(t, []any{"%squat%", "lower", "sagittal", "squat"}, args)
}

func TestBuildFilterClauseNameIsLowercased(t *testing.T) {
	where, args := buildFilterClause(model.ExerciseFilters{Name: "GOBLET Squat"})
	require.Equal(t, " WHERE LOWER(name) LIKE ?", where)
	require.Equal(t, []any{"%goblet squat%"}, args)
}

func TestCount(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM exercises WHERE LOWER(name) LIKE ?`)).
		WithArgs("%squat%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(15))

	repo := NewExerciseRepository(db)
	count, err := repo.Count(context.Background(), model.ExerciseFilters{Name: "squat"})
	require.NoError(t, err)
	require.Equal(t, 15, count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchOrdersAndPaginates(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "name", "body", "plane", "pattern", "created_at", "updated_at"}).
		AddRow(2, "Front Squat", "lower,core", "sagittal", "squat", now, now).
		AddRow(1, "Back Squat", "lower", "sagittal", "squat", now.Add(-time.Hour), now)

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT id, name, body, plane, pattern, created_at, updated_at FROM exercises`+
			` WHERE LOWER(name) LIKE ? ORDER BY created_at DESC, name ASC LIMIT ? OFFSET ?`)).
		WithArgs("%squat%", 10, 0).
		WillReturnRows(rows)

	repo := NewExerciseRepository(db)
	exercises, err := repo.Search(context.Background(), model.ExerciseFilters{Name: "squat"}, 10, 0)
	require.NoError(t, err)
	require.Len(t, exercises, 2)

	require.Equal(t, "Front Squat", exercises[0].Name)
	require.Equal(t, []model.BodyFocus{model.BodyLower, model.BodyCore}, exercises[0].Body)
	require.Equal(t, model.PlaneSagittal, exercises[0].Plane)
	require.Equal(t, model.PatternSquat, exercises[0].Pattern)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchNoFilters(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT id, name, body, plane, pattern, created_at, updated_at FROM exercises`+
			` ORDER BY created_at DESC, name ASC LIMIT ? OFFSET ?`)).
		WithArgs(10, 20).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "body", "plane", "pattern", "created_at", "updated_at"}))

	repo := NewExerciseRepository(db)
	exercises, err := repo.Search(context.Background(), model.ExerciseFilters{}, 10, 20)
	require.NoError(t, err)
	require.Empty(t, exercises)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListByBodyFocus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT id, name, body, plane, pattern, created_at, updated_at FROM exercises WHERE FIND_IN_SET(?, body) > 0`)).
		WithArgs("core").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "body", "plane", "pattern", "created_at", "updated_at"}).
			AddRow(1, "Pallof Press", "upper,core", "transverse", "core", now, now))

	repo := NewExerciseRepository(db)
	exercises, err := repo.ListByBodyFocus(context.Background(), model.BodyCore)
	require.NoError(t, err)
	require.Len(t, exercises, 1)
	require.True(t, exercises[0].HasBodyFocus(model.BodyCore))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSplitBodyFocus(t *testing.T) {
	require.Nil(t, splitBodyFocus(""))
	require.Equal(t, []model.BodyFocus{model.BodyUpper}, splitBodyFocus("upper"))
	require.Equal(t, []model.BodyFocus{model.BodyUpper, model.BodyCore}, splitBodyFocus("upper, core"))
}
