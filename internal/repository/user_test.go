package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/fitizen/fitizen-go/internal/model"
)

func TestUserGetByEmailNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, email, first_name, last_name, created_at, updated_at FROM users WHERE email = ?`)).
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "first_name", "last_name", "created_at", "updated_at"}))

	repo := NewUserRepository(db)
	_, err = repo.GetByEmail(context.Background(), "nobody@example.com")
	require.ErrorIs(t, err, ErrUserNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserCreateSetsID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users (email, first_name, last_name) VALUES (?, ?, ?)`)).
		WithArgs("new@x.com", "Ada", "Lovelace").
		WillReturnResult(sqlmock.NewResult(42, 1))

	repo := NewUserRepository(db)
	user := &model.User{Email: "new@x.com", FirstName: "Ada", LastName: "Lovelace"}
	require.NoError(t, repo.Create(context.Background(), user))
	require.Equal(t, int64(42), user.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIsDuplicateEntryError(t *testing.T) {
	if isDuplicateEntryError(nil) {
		t.Fatal("nil error should not be a duplicate entry error")
	}
	if isDuplicateEntryError(ErrUserNotFound) {
		t.Fatal("ErrUserNotFound should not be a duplicate entry error")
	}
}
