package usecase

import (
	"context"

	"talentboard/internal/domain/profile"
)

type Profiles struct {
	repo profile.Repository
}

func NewProfilesUsecase(repo profile.Repository) *Profiles {
	return &Profiles{repo: repo}
}

func (u *Profiles) Get(ctx context.Context, userID string) (profile.UserProfile, error) {
	return u.repo.Get(ctx, userID)
}
