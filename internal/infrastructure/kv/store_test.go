package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type doc struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func newMiniredisStore(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisFromClient(client, "tb:", nil), mr
}

func storeBackends(t *testing.T) map[string]func(t *testing.T) Store {
	t.Helper()
	return map[string]func(t *testing.T) Store{
		"memory": func(t *testing.T) Store { return NewMemory() },
		"redis": func(t *testing.T) Store {
			s, _ := newMiniredisStore(t)
			return s
		},
		"postgres": func(t *testing.T) Store { return NewPostgres(newFakeDB(), nil) },
	}
}

func TestStore_Contract(t *testing.T) {
	for name, newStore := range storeBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			t.Run("get missing", func(t *testing.T) {
				s := newStore(t)
				var d doc
				found, err := s.Get(ctx, "user:none", &d)
				require.NoError(t, err)
				assert.False(t, found)
			})

			t.Run("set get delete", func(t *testing.T) {
				s := newStore(t)
				require.NoError(t, s.Set(ctx, "user:1", doc{ID: "1", Name: "Ada"}))

				var d doc
				found, err := s.Get(ctx, "user:1", &d)
				require.NoError(t, err)
				require.True(t, found)
				assert.Equal(t, doc{ID: "1", Name: "Ada"}, d)

				require.NoError(t, s.Set(ctx, "user:1", doc{ID: "1", Name: "Grace"}))
				_, err = s.Get(ctx, "user:1", &d)
				require.NoError(t, err)
				assert.Equal(t, "Grace", d.Name)

				require.NoError(t, s.Delete(ctx, "user:1"))
				found, err = s.Get(ctx, "user:1", &d)
				require.NoError(t, err)
				assert.False(t, found)

				require.NoError(t, s.Delete(ctx, "user:1"))
			})

			t.Run("get many skips absent", func(t *testing.T) {
				s := newStore(t)
				require.NoError(t, s.Set(ctx, "post:a", doc{ID: "a"}))
				require.NoError(t, s.Set(ctx, "post:c", doc{ID: "c"}))

				got, err := s.GetMany(ctx, []string{"post:a", "post:b", "post:c"})
				require.NoError(t, err)
				require.Len(t, got, 2)

				var d doc
				require.NoError(t, json.Unmarshal(got["post:c"], &d))
				assert.Equal(t, "c", d.ID)

				empty, err := s.GetMany(ctx, nil)
				require.NoError(t, err)
				assert.Empty(t, empty)
			})

			t.Run("list by prefix", func(t *testing.T) {
				s := newStore(t)
				require.NoError(t, s.Set(ctx, "project:b", doc{ID: "b"}))
				require.NoError(t, s.Set(ctx, "project:a", doc{ID: "a"}))
				require.NoError(t, s.Set(ctx, "projects:list", []string{"a", "b"}))
				require.NoError(t, s.Set(ctx, "post:x", doc{ID: "x"}))

				entries, err := s.ListByPrefix(ctx, "project:")
				require.NoError(t, err)
				require.Len(t, entries, 2)
				assert.Equal(t, "project:a", entries[0].Key)
				assert.Equal(t, "project:b", entries[1].Key)
			})

			t.Run("set if absent", func(t *testing.T) {
				s := newStore(t)
				created, err := s.SetIfAbsent(ctx, "user:1", doc{ID: "1", Name: "first"})
				require.NoError(t, err)
				assert.True(t, created)

				created, err = s.SetIfAbsent(ctx, "user:1", doc{ID: "1", Name: "second"})
				require.NoError(t, err)
				assert.False(t, created)

				var d doc
				_, err = s.Get(ctx, "user:1", &d)
				require.NoError(t, err)
				assert.Equal(t, "first", d.Name)
			})

			t.Run("prepend newest first", func(t *testing.T) {
				s := newStore(t)
				require.NoError(t, s.Prepend(ctx, "projects:list", "one"))
				require.NoError(t, s.Prepend(ctx, "projects:list", "two"))
				require.NoError(t, s.Prepend(ctx, "projects:list", "three"))

				var ids []string
				found, err := s.Get(ctx, "projects:list", &ids)
				require.NoError(t, err)
				require.True(t, found)
				assert.Equal(t, []string{"three", "two", "one"}, ids)
			})

			t.Run("concurrent prepend keeps every item", func(t *testing.T) {
				s := newStore(t)
				const n = 64

				var wg sync.WaitGroup
				errs := make(chan error, n)
				for i := 0; i < n; i++ {
					wg.Add(1)
					go func(i int) {
						defer wg.Done()
						errs <- s.Prepend(ctx, "posts:list", fmt.Sprintf("id-%d", i))
					}(i)
				}
				wg.Wait()
				close(errs)
				for err := range errs {
					require.NoError(t, err)
				}

				var ids []string
				_, err := s.Get(ctx, "posts:list", &ids)
				require.NoError(t, err)
				require.Len(t, ids, n)

				seen := make(map[string]bool, n)
				for _, id := range ids {
					assert.False(t, seen[id], "duplicate %s", id)
					seen[id] = true
				}
			})
		})
	}
}

func TestMemory_ClosedIsUnavailable(t *testing.T) {
	s := NewMemory()
	require.NoError(t, s.Close())

	_, err := s.Get(context.Background(), "user:1", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))

	var opErr *OpError
	require.True(t, errors.As(err, &opErr))
	assert.Equal(t, "get", opErr.Op)
	assert.Equal(t, "user:1", opErr.Key)
}

func TestMemory_CorruptListIsUnavailable(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "projects:list", map[string]string{"not": "a list"}))

	err := s.Prepend(ctx, "projects:list", "x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestRedis_Namespace(t *testing.T) {
	s, mr := newMiniredisStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "user:1", doc{ID: "1"}))
	assert.True(t, mr.Exists("tb:user:1"))
	assert.False(t, mr.Exists("user:1"))

	entries, err := s.ListByPrefix(ctx, "user:")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "user:1", entries[0].Key)
}

func TestRedis_ServerDownIsUnavailable(t *testing.T) {
	s, mr := newMiniredisStore(t)
	mr.Close()

	_, err := s.Get(context.Background(), "user:1", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))

	assert.True(t, errors.Is(s.Ping(context.Background()), ErrUnavailable))
}

func TestEscapeGlob(t *testing.T) {
	assert.Equal(t, `user:\*\?\[x\]\\`, escapeGlob(`user:*?[x]\`))
	assert.Equal(t, "project:", escapeGlob("project:"))
}
