package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"talentboard/internal/domain/profile"
	"talentboard/internal/infrastructure/identity"
	"talentboard/internal/infrastructure/kv"
	"talentboard/internal/repository"
)

// fakeProvider hands out sequential ids and treats the token as the user id.
type fakeProvider struct {
	mu      sync.Mutex
	created []identity.NewAccount
	err     error
}

func (p *fakeProvider) Verify(_ context.Context, token string) (identity.Identity, error) {
	if token == "" {
		return identity.Identity{}, identity.ErrInvalidToken
	}
	return identity.Identity{UserID: token}, nil
}

func (p *fakeProvider) CreateAccount(_ context.Context, in identity.NewAccount) (identity.Account, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return identity.Account{}, p.err
	}
	p.created = append(p.created, in)
	return identity.Account{ID: fmt.Sprintf("acc-%d", len(p.created)), Email: in.Email}, nil
}

func (p *fakeProvider) calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.created)
}

type fixture struct {
	store    *kv.Memory
	profiles *repository.KVProfileRepository
	gate     *Gate
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	store := kv.NewMemory()
	profiles := repository.NewKVProfileRepository(store)
	return fixture{store: store, profiles: profiles, gate: NewGate(profiles)}
}

func (f fixture) addProfile(t *testing.T, id, name string, role profile.Role) identity.Identity {
	t.Helper()
	err := f.profiles.Create(context.Background(), profile.UserProfile{ID: id, Email: id + "@x.io", Name: name, Role: role})
	if err != nil {
		t.Fatalf("seed profile %s: %v", id, err)
	}
	return identity.Identity{UserID: id, Email: id + "@x.io"}
}

func (f fixture) who(id string) identity.Identity {
	return identity.Identity{UserID: id}
}
