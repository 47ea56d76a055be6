// Package identity verifies bearer credentials and creates accounts with
// the configured identity provider. It reports identity facts only; every
// authorization decision is made by the caller.
package identity

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrInvalidCredentials = errors.New("invalid login credentials")
	ErrUnavailable        = errors.New("identity provider unavailable")
)

// RejectedError is returned when the provider refuses to create an account.
// Message is the provider's own explanation and is safe to show to users.
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string {
	return "identity: account rejected: " + e.Message
}

func reject(msg string) error {
	return &RejectedError{Message: msg}
}

type Identity struct {
	UserID string
	Email  string
}

type NewAccount struct {
	Email    string
	Password string
	Name     string
	Role     string
}

type Account struct {
	ID    string
	Email string
}

type Session struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
	Identity    Identity
}

func (s Session) ExpiresIn(now time.Time) int64 {
	d := s.ExpiresAt.Sub(now)
	if d < 0 {
		return 0
	}
	return int64(d / time.Second)
}

type Provider interface {
	Verify(ctx context.Context, bearerToken string) (Identity, error)
	CreateAccount(ctx context.Context, in NewAccount) (Account, error)
}

// PasswordAuthenticator is implemented by providers that issue their own
// tokens.
type PasswordAuthenticator interface {
	SignIn(ctx context.Context, email, password string) (Session, error)
}

// BearerToken extracts the credential from an Authorization header value.
func BearerToken(header string) (string, bool) {
	header = strings.TrimSpace(header)
	if len(header) < 7 || !strings.EqualFold(header[:7], "bearer ") {
		return "", false
	}
	tok := strings.TrimSpace(header[7:])
	return tok, tok != ""
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
