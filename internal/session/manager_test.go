package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fitizen/fitizen-go/internal/model"
	"github.com/fitizen/fitizen-go/internal/repository"
)

type fakeStore struct {
	sessions map[string]*model.Session
	nextID   int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{sessions: make(map[string]*model.Session)}
}

func (s *fakeStore) Create(ctx context.Context, session *model.Session) error {
	s.nextID++
	session.ID = s.nextID
	session.CreatedAt = time.Now()
	copied := *session
	s.sessions[session.TokenHash] = &copied
	return nil
}

func (s *fakeStore) GetByTokenHash(ctx context.Context, tokenHash string) (*model.Session, error) {
	session, ok := s.sessions[tokenHash]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	copied := *session
	return &copied, nil
}

func (s *fakeStore) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	delete(s.sessions, tokenHash)
	return nil
}

func (s *fakeStore) DeleteByEmail(ctx context.Context, email string) error {
	for hash, session := range s.sessions {
		if session.Email == email {
			delete(s.sessions, hash)
		}
	}
	return nil
}

type fakeUsers struct {
	byEmail map[string]*model.User
}

func (u *fakeUsers) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	user, ok := u.byEmail[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func newTestManager(store *fakeStore, users *fakeUsers) *Manager {
	return NewManager(store, users, "test-secret", time.Hour, false)
}

// requestWithCookies carries the cookies a previous response set, the
// way a browser would on the next request.
func requestWithCookies(t *testing.T, rec *httptest.ResponseRecorder) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestEstablishThenVerify(t *testing.T) {
	store := newFakeStore()
	users := &fakeUsers{byEmail: map[string]*model.User{
		"user@example.com": {ID: 1, Email: "user@example.com", FirstName: "Ada"},
	}}
	m := newTestManager(store, users)

	rec := httptest.NewRecorder()
	created, err := m.Establish(context.Background(), rec, "user@example.com")
	require.NoError(t, err)
	require.Equal(t, model.SessionEstablished, created.Kind)

	verified, err := m.Verify(context.Background(), requestWithCookies(t, rec))
	require.NoError(t, err)
	require.Equal(t, "user@example.com", verified.Email)
	require.Equal(t, model.SessionEstablished, verified.Kind)
}

func TestEstablishUnknownEmail(t *testing.T) {
	m := newTestManager(newFakeStore(), &fakeUsers{byEmail: map[string]*model.User{}})

	rec := httptest.NewRecorder()
	_, err := m.Establish(context.Background(), rec, "nobody@example.com")
	require.ErrorIs(t, err, ErrIdentityNotFound)
	require.Empty(t, rec.Result().Cookies(), "no cookie should be written on failure")
}

func TestEstablishDropsPriorSessions(t *testing.T) {
	store := newFakeStore()
	users := &fakeUsers{byEmail: map[string]*model.User{
		"user@example.com": {ID: 1, Email: "user@example.com"},
	}}
	m := newTestManager(store, users)

	first := httptest.NewRecorder()
	_, err := m.Establish(context.Background(), first, "user@example.com")
	require.NoError(t, err)

	second := httptest.NewRecorder()
	_, err = m.Establish(context.Background(), second, "user@example.com")
	require.NoError(t, err)

	require.Len(t, store.sessions, 1, "establish must leave one active session per context")

	// The older cookie no longer maps to a stored session.
	_, err = m.Verify(context.Background(), requestWithCookies(t, first))
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestCreateSetupSessionThenVerify(t *testing.T) {
	store := newFakeStore()
	m := newTestManager(store, &fakeUsers{byEmail: map[string]*model.User{}})

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	created, err := m.CreateSetupSession(context.Background(), rec, r, "new@x.com")
	require.NoError(t, err)
	require.Equal(t, model.SessionSetupPending, created.Kind)

	verified, err := m.Verify(context.Background(), requestWithCookies(t, rec))
	require.NoError(t, err)
	require.Equal(t, model.SessionSetupPending, verified.Kind)
	require.Equal(t, "new@x.com", verified.Email)
}

func TestCreateSetupSessionOverwritesPrior(t *testing.T) {
	store := newFakeStore()
	m := newTestManager(store, &fakeUsers{byEmail: map[string]*model.User{}})

	first := httptest.NewRecorder()
	_, err := m.CreateSetupSession(context.Background(), first, httptest.NewRequest(http.MethodGet, "/", nil), "a@x.com")
	require.NoError(t, err)

	second := httptest.NewRecorder()
	_, err = m.CreateSetupSession(context.Background(), second, requestWithCookies(t, first), "b@x.com")
	require.NoError(t, err)

	require.Len(t, store.sessions, 1, "prior session for the browser context must be overwritten")
}

func TestVerifyWithoutCookie(t *testing.T) {
	m := newTestManager(newFakeStore(), &fakeUsers{byEmail: map[string]*model.User{}})

	_, err := m.Verify(context.Background(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestVerifyTamperedCookie(t *testing.T) {
	m := newTestManager(newFakeStore(), &fakeUsers{byEmail: map[string]*model.User{}})

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "fitizen__auth_session", Value: "garbage"})

	_, err := m.Verify(context.Background(), r)
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestVerifyExpiredStoreRow(t *testing.T) {
	store := newFakeStore()
	users := &fakeUsers{byEmail: map[string]*model.User{
		"user@example.com": {ID: 1, Email: "user@example.com"},
	}}
	m := newTestManager(store, users)

	rec := httptest.NewRecorder()
	created, err := m.Establish(context.Background(), rec, "user@example.com")
	require.NoError(t, err)

	// Age the store row past its deadline; the cookie itself is still valid.
	store.sessions[created.TokenHash].ExpiresAt = time.Now().Add(-time.Minute)

	_, err = m.Verify(context.Background(), requestWithCookies(t, rec))
	require.ErrorIs(t, err, ErrUnauthenticated)
	require.Empty(t, store.sessions, "expired row must be deleted when observed")
}

func TestVerifyIsSideEffectFree(t *testing.T) {
	store := newFakeStore()
	users := &fakeUsers{byEmail: map[string]*model.User{
		"user@example.com": {ID: 1, Email: "user@example.com"},
	}}
	m := newTestManager(store, users)

	rec := httptest.NewRecorder()
	created, err := m.Establish(context.Background(), rec, "user@example.com")
	require.NoError(t, err)
	storedExpiry := store.sessions[created.TokenHash].ExpiresAt

	for i := 0; i < 3; i++ {
		verified, err := m.Verify(context.Background(), requestWithCookies(t, rec))
		require.NoError(t, err)
		require.Equal(t, storedExpiry.Unix(), verified.ExpiresAt.Unix())
	}
	require.Len(t, store.sessions, 1)
}

func TestInvalidateThenVerify(t *testing.T) {
	store := newFakeStore()
	users := &fakeUsers{byEmail: map[string]*model.User{
		"user@example.com": {ID: 1, Email: "user@example.com"},
	}}
	m := newTestManager(store, users)

	rec := httptest.NewRecorder()
	_, err := m.Establish(context.Background(), rec, "user@example.com")
	require.NoError(t, err)

	logoutRec := httptest.NewRecorder()
	require.NoError(t, m.Invalidate(context.Background(), logoutRec, requestWithCookies(t, rec)))
	require.Empty(t, store.sessions)

	_, err = m.Verify(context.Background(), requestWithCookies(t, logoutRec))
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestInvalidateWithoutSession(t *testing.T) {
	m := newTestManager(newFakeStore(), &fakeUsers{byEmail: map[string]*model.User{}})

	rec := httptest.NewRecorder()
	err := m.Invalidate(context.Background(), rec, httptest.NewRequest(http.MethodPost, "/logout", nil))
	require.NoError(t, err, "invalidating with no session is a no-op, not an error")
}
