package session

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/fitizen/fitizen-go/internal/crypto"
	"github.com/fitizen/fitizen-go/internal/model"
	"github.com/fitizen/fitizen-go/internal/repository"
)

const cookieName = "fitizen__auth_session"

var (
	// ErrUnauthenticated signals that the browser holds no valid
	// session. The caller decides whether that means 401 or a redirect.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrIdentityNotFound signals that Establish was called for an
	// email with no user record. Caller misuse, not a user-facing state.
	ErrIdentityNotFound = errors.New("identity not found")
)

// Store is the persistence contract the manager needs. Satisfied by
// repository.SessionRepository.
type Store interface {
	Create(ctx context.Context, session *model.Session) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*model.Session, error)
	DeleteByTokenHash(ctx context.Context, tokenHash string) error
	DeleteByEmail(ctx context.Context, email string) error
}

// UserLookup is the slice of the user repository the manager needs to
// confirm an identity exists before establishing a session.
type UserLookup interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// Manager creates, verifies, and invalidates sessions. The browser
// carries a signed httpOnly cookie wrapping an opaque token; the store
// holds the session row keyed by the token's hash and owns expiry.
type Manager struct {
	store  Store
	users  UserLookup
	secret string
	ttl    time.Duration
	isProd bool
}

// NewManager creates a session Manager.
func NewManager(store Store, users UserLookup, secret string, ttl time.Duration, isProd bool) *Manager {
	return &Manager{
		store:  store,
		users:  users,
		secret: secret,
		ttl:    ttl,
		isProd: isProd,
	}
}

// Establish creates an established session for a known user and writes
// the session cookie. Returns ErrIdentityNotFound when no user record
// exists for the email; callers must have confirmed existence first.
// Any prior sessions for the email are dropped, so one browser context
// holds at most one active session.
func (m *Manager) Establish(ctx context.Context, w http.ResponseWriter, email string) (*model.Session, error) {
	if _, err := m.users.GetByEmail(ctx, email); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrIdentityNotFound
		}
		return nil, err
	}

	if err := m.store.DeleteByEmail(ctx, email); err != nil {
		slog.Warn("failed to drop prior sessions", "error", err)
	}

	return m.create(ctx, w, email, model.SessionEstablished)
}

// CreateSetupSession creates a setup-pending session carrying an email
// claim for which no user record is required to exist. Any session the
// browser already holds is overwritten.
func (m *Manager) CreateSetupSession(ctx context.Context, w http.ResponseWriter, r *http.Request, email string) (*model.Session, error) {
	if cookie, err := r.Cookie(cookieName); err == nil && cookie.Value != "" {
		if claims, err := crypto.ValidateSessionToken(cookie.Value, m.secret); err == nil {
			if err := m.store.DeleteByTokenHash(ctx, crypto.HashToken(claims.Token)); err != nil {
				slog.Warn("failed to drop prior session", "error", err)
			}
		}
	}

	return m.create(ctx, w, email, model.SessionSetupPending)
}

func (m *Manager) create(ctx context.Context, w http.ResponseWriter, email string, kind model.SessionKind) (*model.Session, error) {
	token := uuid.NewString()

	session := &model.Session{
		TokenHash: crypto.HashToken(token),
		Email:     email,
		Kind:      kind,
		ExpiresAt: time.Now().Add(m.ttl),
	}
	if err := m.store.Create(ctx, session); err != nil {
		return nil, err
	}

	signed, err := crypto.SignSessionToken(token, email, kind, m.secret, m.ttl)
	if err != nil {
		return nil, err
	}

	m.setCookie(w, signed, session.ExpiresAt)
	return session, nil
}

// Verify reads the browser's session cookie, validates its signature
// and expiry, and returns the persisted session. Side-effect-free on
// success; an expired store row is deleted when observed. Every failure
// surfaces as ErrUnauthenticated.
func (m *Manager) Verify(ctx context.Context, r *http.Request) (*model.Session, error) {
	cookie, err := r.Cookie(cookieName)
	if err != nil || cookie.Value == "" {
		return nil, ErrUnauthenticated
	}

	claims, err := crypto.ValidateSessionToken(cookie.Value, m.secret)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	session, err := m.store.GetByTokenHash(ctx, crypto.HashToken(claims.Token))
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}

	if session.Expired(time.Now()) {
		if err := m.store.DeleteByTokenHash(ctx, session.TokenHash); err != nil {
			slog.Warn("failed to delete expired session", "error", err)
		}
		return nil, ErrUnauthenticated
	}

	return session, nil
}

// Invalidate clears the current session. Safe to call when no session
// exists; that is a no-op, not an error.
func (m *Manager) Invalidate(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	cookie, err := r.Cookie(cookieName)
	if err == nil && cookie.Value != "" {
		if claims, err := crypto.ValidateSessionToken(cookie.Value, m.secret); err == nil {
			if err := m.store.DeleteByTokenHash(ctx, crypto.HashToken(claims.Token)); err != nil {
				return err
			}
		}
	}

	m.clearCookie(w)
	return nil
}

func (m *Manager) setCookie(w http.ResponseWriter, value string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    value,
		HttpOnly: true,
		Path:     "/",
		Secure:   m.isProd,
		SameSite: http.SameSiteLaxMode,
		Expires:  expiresAt,
	})
}

func (m *Manager) clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		HttpOnly: true,
		Path:     "/",
		Secure:   m.isProd,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
