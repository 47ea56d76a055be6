package identity

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"talentboard/internal/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoTrue_CreateAccount(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/v1/admin/users", r.URL.Path)
		assert.Equal(t, "Bearer service-key", r.Header.Get("Authorization"))
		assert.Equal(t, "service-key", r.Header.Get("apikey"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"7b0c","email":"boss@acme.io","aud":"authenticated"}`))
	}))
	defer srv.Close()

	g := NewGoTrue(GoTrueConfig{BaseURL: srv.URL + "/", ServiceRoleKey: "service-key"}, srv.Client(), nil)
	acc, err := g.CreateAccount(context.Background(), NewAccount{
		Email: "boss@acme.io", Password: "hunter22", Name: "Boss", Role: "employer",
	})
	require.NoError(t, err)
	assert.Equal(t, Account{ID: "7b0c", Email: "boss@acme.io"}, acc)

	assert.Equal(t, true, got["email_confirm"])
	meta, ok := got["user_metadata"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Boss", meta["name"])
	assert.Equal(t, "employer", meta["userType"])
}

func TestGoTrue_CreateAccountErrors(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		wantMsg string
		unavail bool
	}{
		{name: "duplicate", status: 422, body: `{"code":422,"error_code":"email_exists","msg":"A user with this email address has already been registered"}`, wantMsg: "A user with this email address has already been registered"},
		{name: "legacy envelope", status: 400, body: `{"error":"invalid_request","error_description":"Password should be at least 6 characters."}`, wantMsg: "Password should be at least 6 characters."},
		{name: "empty body", status: 400, body: ``, wantMsg: "Bad Request"},
		{name: "bad service key", status: 401, body: `{"message":"Invalid API key"}`, unavail: true},
		{name: "server error", status: 503, body: `oops`, unavail: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			g := NewGoTrue(GoTrueConfig{BaseURL: srv.URL, ServiceRoleKey: "k"}, srv.Client(), nil)
			_, err := g.CreateAccount(context.Background(), NewAccount{Email: "a@b.io", Password: "secret1"})
			require.Error(t, err)

			if tc.unavail {
				assert.True(t, errors.Is(err, ErrUnavailable))
				return
			}
			var rej *RejectedError
			require.True(t, errors.As(err, &rej))
			assert.Equal(t, tc.wantMsg, rej.Message)
		})
	}
}

func TestGoTrue_VerifyRemote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/user", r.URL.Path)
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))
		if r.Header.Get("Authorization") != "Bearer good" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"msg":"invalid JWT"}`))
			return
		}
		_, _ = w.Write([]byte(`{"id":"u-1","email":"a@b.io"}`))
	}))
	defer srv.Close()

	g := NewGoTrue(GoTrueConfig{BaseURL: srv.URL, ServiceRoleKey: "svc", AnonKey: "anon-key"}, srv.Client(), nil)

	id, err := g.Verify(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, Identity{UserID: "u-1", Email: "a@b.io"}, id)

	_, err = g.Verify(context.Background(), "bad")
	assert.True(t, errors.Is(err, ErrInvalidToken))

	_, err = g.Verify(context.Background(), "")
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestGoTrue_VerifyRemoteClientErrors(t *testing.T) {
	cases := map[int]string{
		http.StatusBadRequest:          `{"msg":"bad_jwt"}`,
		http.StatusNotFound:            `{"msg":"User not found"}`,
		http.StatusUnprocessableEntity: `{"error_description":"session expired"}`,
	}
	for status, body := range cases {
		t.Run(http.StatusText(status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(status)
				_, _ = w.Write([]byte(body))
			}))
			defer srv.Close()

			g := NewGoTrue(GoTrueConfig{BaseURL: srv.URL, ServiceRoleKey: "svc"}, srv.Client(), nil)
			_, err := g.Verify(context.Background(), "tok")
			assert.True(t, errors.Is(err, ErrInvalidToken), "got %v", err)
			assert.False(t, errors.Is(err, ErrUnavailable))
		})
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()
	g := NewGoTrue(GoTrueConfig{BaseURL: srv.URL, ServiceRoleKey: "svc"}, srv.Client(), nil)
	_, err := g.Verify(context.Background(), "tok")
	assert.True(t, errors.Is(err, ErrUnavailable))
	assert.False(t, errors.Is(err, ErrInvalidToken))
}

func TestGoTrue_VerifyRemoteUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	g := NewGoTrue(GoTrueConfig{BaseURL: url, ServiceRoleKey: "svc"}, nil, nil)
	_, err := g.Verify(context.Background(), "tok")
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestGoTrue_VerifyLocalSecret(t *testing.T) {
	const secret = "super-secret-jwt-token-with-at-least-32-characters"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request to %s", r.URL.Path)
	}))
	defer srv.Close()

	g := NewGoTrue(GoTrueConfig{BaseURL: srv.URL, ServiceRoleKey: "svc", JWTSecret: secret}, srv.Client(), nil)

	tok, _, err := jwt.NewHMACService(secret, time.Hour, "supabase").Issue("u-9", "c@d.io")
	require.NoError(t, err)

	id, err := g.Verify(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, "u-9", id.UserID)

	_, err = g.Verify(context.Background(), tok+"x")
	assert.True(t, errors.Is(err, ErrInvalidToken))
}
