package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"talentboard/internal/domain/content"
	"talentboard/internal/infrastructure/kv"
)

// KVContentRepository keeps each record under its own key and a
// newest-first id list under the collection index. The two writes are not
// transactional: a record whose id never reached the index is invisible to
// List, and an indexed id whose record is missing is skipped.
type KVContentRepository[T content.Record] struct {
	store kv.Store
	col   content.Collection
}

func NewKVContentRepository[T content.Record](store kv.Store, col content.Collection) *KVContentRepository[T] {
	return &KVContentRepository[T]{store: store, col: col}
}

func NewProjectRepository(store kv.Store) *KVContentRepository[content.Project] {
	return NewKVContentRepository[content.Project](store, content.Projects)
}

func NewPostRepository(store kv.Store) *KVContentRepository[content.Post] {
	return NewKVContentRepository[content.Post](store, content.Posts)
}

func (r *KVContentRepository[T]) Create(ctx context.Context, rec T) error {
	id := rec.RecordID()
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("create %s: empty id", r.col.Kind)
	}

	if err := r.store.Set(ctx, r.col.Key(id), rec); err != nil {
		return fmt.Errorf("create %s %s: %w", r.col.Kind, id, err)
	}
	if err := r.store.Prepend(ctx, r.col.Index, id); err != nil {
		return fmt.Errorf("index %s %s: %w", r.col.Kind, id, err)
	}
	return nil
}

func (r *KVContentRepository[T]) Get(ctx context.Context, id string) (T, error) {
	var rec T
	if strings.TrimSpace(id) == "" {
		return rec, content.ErrNotFound
	}

	found, err := r.store.Get(ctx, r.col.Key(id), &rec)
	if err != nil {
		return rec, fmt.Errorf("get %s %s: %w", r.col.Kind, id, err)
	}
	if !found {
		return rec, content.ErrNotFound
	}
	return rec, nil
}

// List returns records newest first, in index order.
func (r *KVContentRepository[T]) List(ctx context.Context) ([]T, error) {
	var ids []string
	if _, err := r.store.Get(ctx, r.col.Index, &ids); err != nil {
		return nil, fmt.Errorf("list %s: %w", r.col.Kind, err)
	}

	out := make([]T, 0, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	keys := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		keys = append(keys, r.col.Key(id))
	}

	docs, err := r.store.GetMany(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.col.Kind, err)
	}

	for _, key := range keys {
		raw, ok := docs[key]
		if !ok {
			continue
		}
		var rec T
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("list %s: decode %s: %w", r.col.Kind, key, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

var (
	_ content.Repository[content.Project] = (*KVContentRepository[content.Project])(nil)
	_ content.Repository[content.Post]    = (*KVContentRepository[content.Post])(nil)
)
