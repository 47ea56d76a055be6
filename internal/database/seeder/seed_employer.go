package seeder

import (
	"context"
	"errors"
	"fmt"

	"talentboard/internal/infrastructure/identity"
	"talentboard/internal/usecase"
)

// EmployerSeeder signs up the demo employer, or signs in when the account
// already exists from an earlier run.
type EmployerSeeder struct {
	Email       string
	Password    string
	DisplayName string
}

func (EmployerSeeder) Name() string { return "employer" }

func (s EmployerSeeder) Run(ctx context.Context, env *Env) error {
	p, err := env.Auth.Signup(ctx, usecase.SignupInput{
		Email:    s.Email,
		Password: s.Password,
		Name:     s.DisplayName,
		UserType: "employer",
	})
	if err == nil {
		env.Employer = identity.Identity{UserID: p.ID, Email: p.Email}
		env.Logger.Printf("[Seeder] employer created id=%s", p.ID)
		return nil
	}

	var rej *identity.RejectedError
	if !errors.As(err, &rej) {
		return err
	}

	res, err := env.Auth.Login(ctx, s.Email, s.Password)
	if err != nil {
		return fmt.Errorf("employer exists but sign-in failed: %w", err)
	}
	if res.Profile == nil {
		return fmt.Errorf("employer %s has no profile", res.Session.Identity.UserID)
	}
	env.Employer = res.Session.Identity
	env.Logger.Printf("[Seeder] employer reused id=%s", env.Employer.UserID)
	return nil
}
