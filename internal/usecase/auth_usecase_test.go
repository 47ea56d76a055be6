package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"talentboard/internal/domain/profile"
	"talentboard/internal/infrastructure/identity"
	"talentboard/internal/infrastructure/kv"
	"talentboard/internal/infrastructure/metrics"
	"talentboard/internal/pkg/jwt"
	"talentboard/internal/repository"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth_SignupRoundTripsRole(t *testing.T) {
	for _, role := range []string{"employer", "contractor", "startup"} {
		t.Run(role, func(t *testing.T) {
			f := newFixture(t)
			prov := &fakeProvider{}
			m := metrics.New()
			uc := NewAuthUsecase(prov, f.profiles, m, nil)

			p, err := uc.Signup(context.Background(), SignupInput{
				Email: "a@b.io", Password: "secret1", Name: "Ann", UserType: role,
			})
			require.NoError(t, err)
			assert.Equal(t, profile.Role(role), p.Role)
			assert.Equal(t, "acc-1", p.ID)

			stored, err := NewProfilesUsecase(f.profiles).Get(context.Background(), p.ID)
			require.NoError(t, err)
			assert.Equal(t, profile.Role(role), stored.Role)
			assert.Equal(t, "Ann", stored.Name)

			require.Len(t, prov.created, 1)
			assert.Equal(t, role, prov.created[0].Role)
			assert.Equal(t, 1.0, testutil.ToFloat64(m.Signups.WithLabelValues(role)))
		})
	}
}

func TestAuth_SignupValidatesBeforeProvider(t *testing.T) {
	cases := map[string]struct {
		in   SignupInput
		want error
	}{
		"missing email":    {in: SignupInput{Password: "p", Name: "n", UserType: "employer"}, want: ErrMissingFields},
		"missing password": {in: SignupInput{Email: "e@x.io", Name: "n", UserType: "employer"}, want: ErrMissingFields},
		"missing name":     {in: SignupInput{Email: "e@x.io", Password: "p", UserType: "employer"}, want: ErrMissingFields},
		"missing type":     {in: SignupInput{Email: "e@x.io", Password: "p", Name: "n"}, want: ErrMissingFields},
		"invalid type":     {in: SignupInput{Email: "e@x.io", Password: "p", Name: "n", UserType: "admin"}, want: profile.ErrInvalidRole},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			prov := &fakeProvider{}
			uc := NewAuthUsecase(prov, f.profiles, nil, nil)

			_, err := uc.Signup(context.Background(), tc.in)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
			assert.Equal(t, 0, prov.calls())
		})
	}
}

func TestAuth_SignupProviderRejection(t *testing.T) {
	f := newFixture(t)
	prov := &fakeProvider{err: &identity.RejectedError{Message: "A user with this email address has already been registered"}}
	uc := NewAuthUsecase(prov, f.profiles, nil, nil)

	_, err := uc.Signup(context.Background(), SignupInput{Email: "a@b.io", Password: "p", Name: "n", UserType: "startup"})
	var rej *identity.RejectedError
	require.True(t, errors.As(err, &rej))

	entries, err := f.store.ListByPrefix(context.Background(), "user:")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAuth_SignupProfileWriteFails(t *testing.T) {
	f := newFixture(t)
	prov := &fakeProvider{}
	uc := NewAuthUsecase(prov, f.profiles, nil, nil)
	require.NoError(t, f.store.Close())

	_, err := uc.Signup(context.Background(), SignupInput{Email: "a@b.io", Password: "p", Name: "n", UserType: "startup"})
	assert.True(t, errors.Is(err, kv.ErrUnavailable))
	assert.Equal(t, 1, prov.calls())
}

func TestAuth_LoginUnsupported(t *testing.T) {
	f := newFixture(t)
	uc := NewAuthUsecase(&fakeProvider{}, f.profiles, nil, nil)

	_, err := uc.Login(context.Background(), "a@b.io", "p")
	assert.True(t, errors.Is(err, ErrLoginUnsupported))
}

func TestAuth_LoginWithLocalProvider(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	profiles := repository.NewKVProfileRepository(store)
	local := identity.NewLocal(store, jwt.NewHMACService("0123456789abcdef0123456789abcdef", time.Hour, "talentboard"), nil)
	uc := NewAuthUsecase(local, profiles, nil, nil)

	p, err := uc.Signup(ctx, SignupInput{Email: "boss@acme.io", Password: "hunter22", Name: "Boss", UserType: "employer"})
	require.NoError(t, err)

	res, err := uc.Login(ctx, "boss@acme.io", "hunter22")
	require.NoError(t, err)
	require.NotNil(t, res.Profile)
	assert.Equal(t, p.ID, res.Profile.ID)
	assert.NotEmpty(t, res.Session.AccessToken)

	who, err := local.Verify(ctx, res.Session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, p.ID, who.UserID)

	_, err = uc.Login(ctx, "boss@acme.io", "wrong")
	assert.True(t, errors.Is(err, identity.ErrInvalidCredentials))

	_, err = uc.Login(ctx, "", "hunter22")
	assert.True(t, errors.Is(err, ErrMissingFields))
}
