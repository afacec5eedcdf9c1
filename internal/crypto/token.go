package crypto

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fitizen/fitizen-go/internal/model"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
)

// SessionClaims are the claims of the signed session cookie. Token is
// the opaque store key; Kind mirrors the persisted session kind so the
// cookie alone identifies a setup-pending browser without a store read.
type SessionClaims struct {
	jwt.RegisteredClaims
	Token string            `json:"token"`
	Email string            `json:"email"`
	Kind  model.SessionKind `json:"kind"`
}

// MagicLinkClaims are the claims of a one-time magic link. Nonce ties
// the link to the login attempt that requested it.
type MagicLinkClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Nonce string `json:"nonce"`
}

// SignSessionToken mints the signed cookie value wrapping an opaque
// session token.
func SignSessionToken(token, email string, kind model.SessionKind, secret string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "fitizen",
			Audience:  jwt.ClaimStrings{"fitizen-app"},
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Token: token,
		Email: email,
		Kind:  kind,
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// ValidateSessionToken parses and validates a session cookie value,
// returning the claims if the signature and expiry check out.
func ValidateSessionToken(tokenString, secret string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	if err := parse(tokenString, secret, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// SignMagicLink mints a one-time magic-link token for the given email.
func SignMagicLink(email, nonce, secret string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := MagicLinkClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "fitizen",
			Audience:  jwt.ClaimStrings{"fitizen-app"},
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Email: email,
		Nonce: nonce,
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// ValidateMagicLink parses and validates a magic-link token. Expiry is
// the only time-based guard; an unexpired link validates every time it
// is presented.
func ValidateMagicLink(tokenString, secret string) (*MagicLinkClaims, error) {
	claims := &MagicLinkClaims{}
	if err := parse(tokenString, secret, claims); err != nil {
		return nil, err
	}
	if claims.Email == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func parse(tokenString, secret string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	}, jwt.WithIssuer("fitizen"), jwt.WithAudience("fitizen-app"))
	if err != nil || !token.Valid {
		return ErrInvalidToken
	}
	return nil
}

// HashToken derives the store key for an opaque session token. Only the
// hash is persisted, so a leaked sessions table cannot be replayed.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
