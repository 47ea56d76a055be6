package usecase

import (
	"context"
	"errors"
	"fmt"

	"talentboard/internal/domain/profile"
	"talentboard/internal/infrastructure/identity"
)

// Gate is the single authorization point for content writes.
type Gate struct {
	profiles profile.Repository
}

func NewGate(profiles profile.Repository) *Gate {
	return &Gate{profiles: profiles}
}

// RequireEmployer returns the caller's profile when it may publish. A caller
// without a profile is forbidden, not unauthenticated: the token was valid.
func (g *Gate) RequireEmployer(ctx context.Context, who identity.Identity) (profile.UserProfile, error) {
	p, err := g.profiles.Get(ctx, who.UserID)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return profile.UserProfile{}, fmt.Errorf("%w: no profile for %s", ErrForbidden, who.UserID)
		}
		return profile.UserProfile{}, err
	}
	if !p.Role.CanPublish() {
		return profile.UserProfile{}, fmt.Errorf("%w: role %s cannot publish", ErrForbidden, p.Role)
	}
	return p, nil
}
