package profile

import (
	"context"
	"errors"
)

var (
	ErrNotFound    = errors.New("user profile not found")
	ErrDuplicate   = errors.New("user profile already exists")
	ErrInvalidRole = errors.New("invalid user type")
)

type Repository interface {
	Create(ctx context.Context, p UserProfile) error
	Get(ctx context.Context, id string) (UserProfile, error)
}
