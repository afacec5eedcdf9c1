package service

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/fitizen/fitizen-go/internal/crypto"
	"github.com/fitizen/fitizen-go/internal/mailer"
	"github.com/fitizen/fitizen-go/internal/model"
	"github.com/fitizen/fitizen-go/internal/repository"
)

var (
	ErrEmailRequired        = errors.New("email is required")
	ErrFirstNameRequired    = errors.New("first name is required")
	ErrLastNameRequired     = errors.New("last name is required")
	ErrEmailTaken           = errors.New("email already taken")
	ErrInvalidOrExpiredLink = errors.New("invalid or expired magic link")
	ErrSetupSessionRequired = errors.New("setup session required")
)

// Post-resolution destinations for the magic-link flow.
const (
	DestDashboard    = "/dashboard"
	DestSetupProfile = "/setup-profile"
	DestLogin        = "/login"
)

// UserStore is the user persistence contract the auth service needs.
// Satisfied by repository.UserRepository.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
}

// SessionManager is the slice of the session manager the auth service
// drives. Satisfied by session.Manager.
type SessionManager interface {
	Establish(ctx context.Context, w http.ResponseWriter, email string) (*model.Session, error)
	CreateSetupSession(ctx context.Context, w http.ResponseWriter, r *http.Request, email string) (*model.Session, error)
	Verify(ctx context.Context, r *http.Request) (*model.Session, error)
	Invalidate(ctx context.Context, w http.ResponseWriter, r *http.Request) error
}

// AuthService owns the passwordless login flow: minting and resolving
// magic links, completing profile setup, and reading the current user.
type AuthService struct {
	users    UserStore
	sessions SessionManager
	mailer   mailer.Mailer
	secret   string
	linkTTL  time.Duration
	origin   string
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, sessions SessionManager, m mailer.Mailer, secret string, linkTTL time.Duration, origin string) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		mailer:   m,
		secret:   secret,
		linkTTL:  linkTTL,
		origin:   origin,
	}
}

// RequestMagicLink mints a one-time signed link for the email and hands
// it to the mailer. The link carries a fresh nonce and expires after
// the configured TTL; whether a user record exists is not checked here,
// so the response leaks nothing about registered emails.
func (s *AuthService) RequestMagicLink(ctx context.Context, req model.LoginRequest) error {
	if req.Email == "" {
		return ErrEmailRequired
	}

	nonce := uuid.NewString()
	token, err := crypto.SignMagicLink(req.Email, nonce, s.secret, s.linkTTL)
	if err != nil {
		return err
	}

	link := s.origin + "/validate-magic-link?magic=" + url.QueryEscape(token)
	return s.mailer.SendMagicLink(ctx, req.Email, link)
}

// ResolveMagicLink runs the one-time verification state machine and
// returns the destination the browser should be sent to.
//
// An invalid or expired token is terminal: ErrInvalidOrExpiredLink, no
// session created or modified. A valid token branches on identity: a
// known user gets an established session and the dashboard; an unknown
// email gets a setup-pending session and the profile-setup page. A
// still-unexpired link resolves again on reuse; expiry is the only
// time-based guard.
func (s *AuthService) ResolveMagicLink(ctx context.Context, w http.ResponseWriter, r *http.Request, magic string) (string, error) {
	claims, err := crypto.ValidateMagicLink(magic, s.secret)
	if err != nil {
		return "", ErrInvalidOrExpiredLink
	}

	_, err = s.users.GetByEmail(ctx, claims.Email)
	switch {
	case err == nil:
		if _, err := s.sessions.Establish(ctx, w, claims.Email); err != nil {
			return "", err
		}
		return DestDashboard, nil
	case errors.Is(err, repository.ErrUserNotFound):
		if _, err := s.sessions.CreateSetupSession(ctx, w, r, claims.Email); err != nil {
			return "", err
		}
		return DestSetupProfile, nil
	default:
		return "", err
	}
}

// CompleteSetup creates the user record for a setup-pending session and
// upgrades the session to established. This is the only place a user
// row is ever created.
func (s *AuthService) CompleteSetup(ctx context.Context, w http.ResponseWriter, r *http.Request, req model.SetupProfileRequest) (*model.User, error) {
	if req.FirstName == "" {
		return nil, ErrFirstNameRequired
	}
	if req.LastName == "" {
		return nil, ErrLastNameRequired
	}

	sess, err := s.sessions.Verify(ctx, r)
	if err != nil {
		return nil, err
	}
	if sess.Kind != model.SessionSetupPending {
		return nil, ErrSetupSessionRequired
	}

	user := &model.User{
		Email:     sess.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	// Upgrade: the established session replaces the setup-pending one.
	if _, err := s.sessions.Establish(ctx, w, user.Email); err != nil {
		return nil, err
	}

	return user, nil
}

// CurrentUser returns the user behind a verified established session.
func (s *AuthService) CurrentUser(ctx context.Context, r *http.Request) (model.UserResponse, error) {
	sess, err := s.sessions.Verify(ctx, r)
	if err != nil {
		return model.UserResponse{}, err
	}

	user, err := s.users.GetByEmail(ctx, sess.Email)
	if err != nil {
		return model.UserResponse{}, err
	}

	return model.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		CreatedAt: user.CreatedAt,
	}, nil
}

// Logout clears the current session. A missing session is a no-op.
func (s *AuthService) Logout(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return s.sessions.Invalidate(ctx, w, r)
}
