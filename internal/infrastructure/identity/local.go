package identity

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/mail"
	"time"

	"talentboard/internal/infrastructure/kv"
	"talentboard/internal/pkg/jwt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	accountKeyPrefix  = "auth:"
	minPasswordLength = 6
	maxPasswordLength = 72 // bcrypt input limit

	msgEmailTaken    = "A user with this email address has already been registered"
	msgInvalidEmail  = "Unable to validate email address: invalid format"
	msgShortPassword = "Password should be at least 6 characters."
	msgLongPassword  = "Password cannot be longer than 72 characters"
)

// Compared against when the account does not exist, so unknown emails cost
// the same as wrong passwords.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("talentboard-dummy-password"), bcrypt.DefaultCost)

type localAccount struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	Name         string    `json:"name"`
	Role         string    `json:"userType"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Local is the built-in provider: accounts live in the KV store and tokens
// are HS256 JWTs shaped like the ones GoTrue issues.
type Local struct {
	store  kv.Store
	tokens jwt.Service
	logger *log.Logger

	hashCost int
	now      func() time.Time
}

func NewLocal(store kv.Store, tokens jwt.Service, logger *log.Logger) *Local {
	if logger == nil {
		logger = log.Default()
	}
	return &Local{
		store:    store,
		tokens:   tokens,
		logger:   logger,
		hashCost: bcrypt.DefaultCost,
		now:      time.Now,
	}
}

func accountKey(email string) string {
	return accountKeyPrefix + normalizeEmail(email)
}

func (p *Local) Verify(_ context.Context, bearerToken string) (Identity, error) {
	if bearerToken == "" {
		return Identity{}, ErrInvalidToken
	}
	c, err := p.tokens.Validate(bearerToken)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return Identity{UserID: c.UserID(), Email: c.Email}, nil
}

func (p *Local) CreateAccount(ctx context.Context, in NewAccount) (Account, error) {
	email := normalizeEmail(in.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		return Account{}, reject(msgInvalidEmail)
	}
	if len(in.Password) < minPasswordLength {
		return Account{}, reject(msgShortPassword)
	}
	if len(in.Password) > maxPasswordLength {
		return Account{}, reject(msgLongPassword)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), p.hashCost)
	if err != nil {
		return Account{}, fmt.Errorf("hash password: %w", err)
	}

	acc := localAccount{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         in.Name,
		Role:         in.Role,
		CreatedAt:    p.now().UTC(),
	}
	created, err := p.store.SetIfAbsent(ctx, accountKey(email), acc)
	if err != nil {
		return Account{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if !created {
		return Account{}, reject(msgEmailTaken)
	}

	p.logger.Printf("[Identity] account created provider=local id=%s", acc.ID)
	return Account{ID: acc.ID, Email: acc.Email}, nil
}

func (p *Local) SignIn(ctx context.Context, email, password string) (Session, error) {
	var acc localAccount
	found, err := p.store.Get(ctx, accountKey(email), &acc)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if !found {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return Session{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, fmt.Errorf("compare password: %w", err)
	}

	tok, exp, err := p.tokens.Issue(acc.ID, acc.Email)
	if err != nil {
		return Session{}, fmt.Errorf("issue token: %w", err)
	}
	return Session{
		AccessToken: tok,
		TokenType:   "bearer",
		ExpiresAt:   exp,
		Identity:    Identity{UserID: acc.ID, Email: acc.Email},
	}, nil
}

var (
	_ Provider              = (*Local)(nil)
	_ PasswordAuthenticator = (*Local)(nil)
)
