package service

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/moviemates/watchlist/internal/auth"
	"github.com/moviemates/watchlist/internal/middleware"
	"github.com/moviemates/watchlist/internal/storage/sqlite"
)

// setupTestServer wires the full router the way cmd/server does: /auth open,
// /watchlists behind the auth middleware, backed by a temp-file store.
func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "watchlist-service-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	authenticator := auth.NewPasswordAuthenticator(store, bcrypt.MinCost)
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)

	r := chi.NewRouter()
	r.Mount("/auth", NewAuthService(authenticator, jwtManager, logger).Routes())
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(jwtManager))
		r.Mount("/watchlists", NewWatchlistService(store, logger).Routes())
	})

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	return server
}

// doRequest sends a JSON request and returns the status code and raw body.
// token, if non-empty, is sent as a bearer token.
func doRequest(t *testing.T, method, url, token string, body any) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	return resp.StatusCode, data
}

// registerAndLogin creates an account and returns its token.
func registerAndLogin(t *testing.T, baseURL, username, email, password string) string {
	t.Helper()

	status, body := doRequest(t, http.MethodPost, baseURL+"/auth/register", "", map[string]string{
		"username":        username,
		"email":           email,
		"password":        password,
		"confirmPassword": password,
	})
	if status != http.StatusCreated {
		t.Fatalf("register %s: expected 201, got %d: %s", username, status, body)
	}

	status, body = doRequest(t, http.MethodPost, baseURL+"/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if status != http.StatusOK {
		t.Fatalf("login %s: expected 200, got %d: %s", username, status, body)
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected non-empty token")
	}
	return resp.Token
}
