package content

import (
	"context"
	"errors"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrMissingField = errors.New("missing required field")
)

type Repository[T Record] interface {
	Create(ctx context.Context, rec T) error
	Get(ctx context.Context, id string) (T, error)
	List(ctx context.Context) ([]T, error)
}
