package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"talentboard/internal/pkg/jwt"
)

const (
	gotrueTimeout   = 10 * time.Second
	maxErrorBodyLen = 64 << 10
)

type GoTrueConfig struct {
	BaseURL        string
	ServiceRoleKey string
	AnonKey        string
	// JWTSecret enables local verification of access tokens. When empty,
	// every Verify is a round trip to GET /auth/v1/user.
	JWTSecret string
}

// GoTrue talks to Supabase Auth: the admin API creates confirmed accounts
// and access tokens are verified either locally or by the server.
type GoTrue struct {
	baseURL    string
	serviceKey string
	anonKey    string
	verifier   jwt.Service
	httpClient *http.Client
	logger     *log.Logger
}

func NewGoTrue(cfg GoTrueConfig, httpClient *http.Client, logger *log.Logger) *GoTrue {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: gotrueTimeout}
	}
	if logger == nil {
		logger = log.Default()
	}

	g := &GoTrue{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		serviceKey: cfg.ServiceRoleKey,
		anonKey:    cfg.AnonKey,
		httpClient: httpClient,
		logger:     logger,
	}
	if cfg.JWTSecret != "" {
		g.verifier = jwt.NewHMACService(cfg.JWTSecret, 0, "")
	}
	return g
}

type gotrueUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// GoTrue has used several error envelopes across versions.
type gotrueError struct {
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func (e gotrueError) text() string {
	for _, s := range []string{e.Msg, e.Message, e.ErrorDescription, e.Error} {
		if strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

func (g *GoTrue) Verify(ctx context.Context, bearerToken string) (Identity, error) {
	if bearerToken == "" {
		return Identity{}, ErrInvalidToken
	}

	if g.verifier != nil {
		c, err := g.verifier.Validate(bearerToken)
		if err != nil {
			return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
		}
		return Identity{UserID: c.UserID(), Email: c.Email}, nil
	}

	apiKey := g.anonKey
	if apiKey == "" {
		apiKey = g.serviceKey
	}
	var u gotrueUser
	status, err := g.do(ctx, http.MethodGet, "/auth/v1/user", bearerToken, apiKey, nil, &u)
	if err != nil {
		var rej *RejectedError
		if errors.As(err, &rej) {
			return Identity{}, fmt.Errorf("%w: status %d: %s", ErrInvalidToken, status, rej.Message)
		}
		return Identity{}, err
	}
	if u.ID == "" {
		return Identity{}, ErrInvalidToken
	}
	return Identity{UserID: u.ID, Email: u.Email}, nil
}

func (g *GoTrue) CreateAccount(ctx context.Context, in NewAccount) (Account, error) {
	body := map[string]any{
		"email":         strings.TrimSpace(in.Email),
		"password":      in.Password,
		"email_confirm": true,
		"user_metadata": map[string]string{
			"name":     in.Name,
			"userType": in.Role,
		},
	}

	var u gotrueUser
	status, err := g.do(ctx, http.MethodPost, "/auth/v1/admin/users", g.serviceKey, g.serviceKey, body, &u)
	if err != nil {
		// A refused service key is our misconfiguration, not the user's.
		if status == http.StatusUnauthorized || status == http.StatusForbidden {
			g.logger.Printf("[Identity] service role key refused provider=gotrue status=%d", status)
			return Account{}, fmt.Errorf("%w: admin api status %d", ErrUnavailable, status)
		}
		var rej *RejectedError
		if errors.As(err, &rej) {
			g.logger.Printf("[Identity] account rejected provider=gotrue status=%d msg=%q", status, rej.Message)
		}
		return Account{}, err
	}
	if u.ID == "" {
		return Account{}, fmt.Errorf("%w: admin create user returned no id", ErrUnavailable)
	}

	g.logger.Printf("[Identity] account created provider=gotrue id=%s", u.ID)
	return Account{ID: u.ID, Email: u.Email}, nil
}

// do sends one request and decodes a 2xx body into out. 4xx responses come
// back as *RejectedError, transport failures and 5xx as ErrUnavailable.
func (g *GoTrue) do(ctx context.Context, method, path, bearer, apiKey string, in, out any) (int, error) {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return 0, fmt.Errorf("encode gotrue request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, body)
	if err != nil {
		return 0, fmt.Errorf("build gotrue request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	if apiKey != "" {
		req.Header.Set("apikey", apiKey)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		g.logger.Printf("[Identity] gotrue request failed method=%s path=%s err=%v", method, path, err)
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return resp.StatusCode, nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
		}
		return resp.StatusCode, nil
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLen))
	var ge gotrueError
	_ = json.Unmarshal(raw, &ge)
	msg := ge.text()

	if resp.StatusCode >= 500 {
		g.logger.Printf("[Identity] gotrue server error method=%s path=%s status=%d", method, path, resp.StatusCode)
		return resp.StatusCode, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return resp.StatusCode, reject(msg)
}

var _ Provider = (*GoTrue)(nil)
