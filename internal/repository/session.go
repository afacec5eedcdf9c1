package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fitizen/fitizen-go/internal/model"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionRepository persists session state keyed by the hash of an
// opaque token. Expiry is owned here: rows carry an absolute deadline
// and expired rows are deleted when observed.
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new SessionRepository.
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create inserts a new session row and sets the generated ID.
func (r *SessionRepository) Create(ctx context.Context, session *model.Session) error {
	query := `INSERT INTO sessions (token_hash, email, kind, expires_at) VALUES (?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		session.TokenHash, session.Email, string(session.Kind), session.ExpiresAt,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	session.ID = id
	return nil
}

// GetByTokenHash retrieves a session by its hashed token.
func (r *SessionRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*model.Session, error) {
	query := `SELECT id, token_hash, email, kind, expires_at, created_at FROM sessions WHERE token_hash = ?`

	session := &model.Session{}
	var kind string
	err := r.db.QueryRowContext(ctx, query, tokenHash).Scan(
		&session.ID, &session.TokenHash, &session.Email, &kind,
		&session.ExpiresAt, &session.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	session.Kind = model.SessionKind(kind)
	return session, nil
}

// DeleteByTokenHash removes a session row. Deleting a row that does not
// exist is not an error.
func (r *SessionRepository) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE token_hash = ?`, tokenHash)
	return err
}

// DeleteByEmail removes every session held for an email. Used to
// enforce one active session per browser context on establish.
func (r *SessionRepository) DeleteByEmail(ctx context.Context, email string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE email = ?`, email)
	return err
}

// DeleteExpired removes all sessions past their deadline and reports
// how many were dropped. Called periodically from main.
func (r *SessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
