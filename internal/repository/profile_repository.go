package repository

import (
	"context"
	"fmt"
	"strings"

	"talentboard/internal/domain/profile"
	"talentboard/internal/infrastructure/kv"
)

const profileKeyPrefix = "user:"

func ProfileKey(id string) string {
	return profileKeyPrefix + id
}

type KVProfileRepository struct {
	store kv.Store
}

func NewKVProfileRepository(store kv.Store) *KVProfileRepository {
	return &KVProfileRepository{store: store}
}

// Create stores p exactly once; a second signup for the same subject
// reports profile.ErrDuplicate and leaves the first profile untouched.
func (r *KVProfileRepository) Create(ctx context.Context, p profile.UserProfile) error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("create profile: empty id")
	}
	if !p.Role.Valid() {
		return fmt.Errorf("create profile %s: %w: %q", p.ID, profile.ErrInvalidRole, p.Role)
	}

	created, err := r.store.SetIfAbsent(ctx, ProfileKey(p.ID), p)
	if err != nil {
		return fmt.Errorf("create profile %s: %w", p.ID, err)
	}
	if !created {
		return fmt.Errorf("create profile %s: %w", p.ID, profile.ErrDuplicate)
	}
	return nil
}

func (r *KVProfileRepository) Get(ctx context.Context, id string) (profile.UserProfile, error) {
	if strings.TrimSpace(id) == "" {
		return profile.UserProfile{}, profile.ErrNotFound
	}

	var p profile.UserProfile
	found, err := r.store.Get(ctx, ProfileKey(id), &p)
	if err != nil {
		return profile.UserProfile{}, fmt.Errorf("get profile %s: %w", id, err)
	}
	if !found {
		return profile.UserProfile{}, profile.ErrNotFound
	}
	return p, nil
}

var _ profile.Repository = (*KVProfileRepository)(nil)
