package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"talentboard/internal/domain/profile"
	"talentboard/internal/infrastructure/identity"
	"talentboard/internal/infrastructure/metrics"
)

type SignupInput struct {
	Email    string
	Password string
	Name     string
	UserType string
}

type LoginResult struct {
	Session identity.Session
	// Profile is nil when the account exists without a profile.
	Profile *profile.UserProfile
}

type Auth struct {
	provider identity.Provider
	profiles profile.Repository
	metrics  *metrics.Metrics
	logger   *log.Logger

	now func() time.Time
}

func NewAuthUsecase(provider identity.Provider, profiles profile.Repository, m *metrics.Metrics, logger *log.Logger) *Auth {
	if logger == nil {
		logger = log.Default()
	}
	return &Auth{provider: provider, profiles: profiles, metrics: m, logger: logger, now: time.Now}
}

// Signup validates the payload before touching the provider, so a bad role
// never leaves an account behind.
func (u *Auth) Signup(ctx context.Context, in SignupInput) (profile.UserProfile, error) {
	if missing := missingFields(
		"email", in.Email,
		"password", in.Password,
		"name", in.Name,
		"userType", in.UserType,
	); len(missing) > 0 {
		return profile.UserProfile{}, fmt.Errorf("%w: %s", ErrMissingFields, strings.Join(missing, ", "))
	}

	role, err := profile.ParseRole(in.UserType)
	if err != nil {
		return profile.UserProfile{}, err
	}

	acc, err := u.provider.CreateAccount(ctx, identity.NewAccount{
		Email:    in.Email,
		Password: in.Password,
		Name:     in.Name,
		Role:     string(role),
	})
	if err != nil {
		return profile.UserProfile{}, err
	}

	email := acc.Email
	if email == "" {
		email = strings.TrimSpace(in.Email)
	}
	p := profile.UserProfile{
		ID:        acc.ID,
		Email:     email,
		Name:      in.Name,
		Role:      role,
		CreatedAt: u.now().UTC(),
	}
	if err := u.profiles.Create(ctx, p); err != nil {
		u.logger.Printf("[Auth] profile write failed, account orphaned account_id=%s err=%v", acc.ID, err)
		return profile.UserProfile{}, err
	}

	u.metrics.RecordSignup(string(role))
	u.logger.Printf("[Auth] signup completed user_id=%s user_type=%s", p.ID, p.Role)
	return p, nil
}

func (u *Auth) Login(ctx context.Context, email, password string) (LoginResult, error) {
	pa, ok := u.provider.(identity.PasswordAuthenticator)
	if !ok {
		return LoginResult{}, ErrLoginUnsupported
	}
	if missing := missingFields("email", email, "password", password); len(missing) > 0 {
		return LoginResult{}, fmt.Errorf("%w: %s", ErrMissingFields, strings.Join(missing, ", "))
	}

	sess, err := pa.SignIn(ctx, email, password)
	if err != nil {
		return LoginResult{}, err
	}

	res := LoginResult{Session: sess}
	p, err := u.profiles.Get(ctx, sess.Identity.UserID)
	switch {
	case err == nil:
		res.Profile = &p
	case errors.Is(err, profile.ErrNotFound):
	default:
		return LoginResult{}, err
	}
	return res, nil
}

// missingFields takes name, value pairs and returns the names whose value
// is blank.
func missingFields(pairs ...string) []string {
	var out []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			out = append(out, pairs[i])
		}
	}
	return out
}
