package auth

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/moviemates/watchlist/internal/storage/sqlite"
)

func newTestAuthenticator(t *testing.T) *PasswordAuthenticator {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "watchlist-auth-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return NewPasswordAuthenticator(store, bcrypt.MinCost)
}

func TestValidateCredential(t *testing.T) {
	a := NewPasswordAuthenticator(nil, bcrypt.MinCost)

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "Aa1@aaaa", false},
		{"valid long", "Str0ng&Secret!", false},
		{"too short", "Aa1@aaa", true},
		{"no lowercase", "AA1@AAAA", true},
		{"no uppercase", "aa1@aaaa", true},
		{"no digit", "Aaa@aaaa", true},
		{"no special", "Aa1aaaaa", true},
		{"disallowed character", "Aa1@aaa#", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := a.ValidateCredential(tt.password)
			if tt.wantErr && err != ErrWeakPassword {
				t.Errorf("expected ErrWeakPassword, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("expected valid password, got %v", err)
			}
		})
	}
}

func TestRegisterValidation(t *testing.T) {
	a := newTestAuthenticator(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		email    string
		password string
		confirm  string
		wantErr  error
	}{
		{"missing username", "", "a@example.com", "Aa1@aaaa", "Aa1@aaaa", ErrUsernameRequired},
		{"username too short", "a", "a@example.com", "Aa1@aaaa", "Aa1@aaaa", ErrUsernameTooShort},
		{"username too long", "abcdefghijk", "a@example.com", "Aa1@aaaa", "Aa1@aaaa", ErrUsernameTooLong},
		{"missing email", "alice", "", "Aa1@aaaa", "Aa1@aaaa", ErrEmailRequired},
		{"invalid email", "alice", "not-an-email", "Aa1@aaaa", "Aa1@aaaa", ErrEmailInvalid},
		{"missing password", "alice", "a@example.com", "", "", ErrPasswordRequired},
		{"weak password", "alice", "a@example.com", "password", "password", ErrWeakPassword},
		{"password mismatch", "alice", "a@example.com", "Aa1@aaaa", "Aa1@bbbb", ErrPasswordMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.Register(ctx, tt.username, tt.email, tt.password, tt.confirm)
			if err != tt.wantErr {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestRegisterAndAuthenticate(t *testing.T) {
	a := newTestAuthenticator(t)
	ctx := context.Background()

	user, err := a.Register(ctx, "alice", "alice@example.com", "Aa1@aaaa", "Aa1@aaaa")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.ID == "" {
		t.Error("expected non-empty user ID")
	}
	if user.PasswordHash == "Aa1@aaaa" || !strings.HasPrefix(user.PasswordHash, "$2") {
		t.Errorf("expected bcrypt hash, got %q", user.PasswordHash)
	}

	t.Run("correct credentials", func(t *testing.T) {
		got, err := a.Authenticate(ctx, "alice@example.com", "Aa1@aaaa")
		if err != nil {
			t.Fatalf("Authenticate failed: %v", err)
		}
		if got.ID != user.ID {
			t.Errorf("expected user %s, got %s", user.ID, got.ID)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := a.Authenticate(ctx, "alice@example.com", "Bb2@bbbb")
		if err != ErrInvalidCredentials {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown email same error", func(t *testing.T) {
		_, err := a.Authenticate(ctx, "nobody@example.com", "Aa1@aaaa")
		if err != ErrInvalidCredentials {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}

func TestRegisterUniqueness(t *testing.T) {
	a := newTestAuthenticator(t)
	ctx := context.Background()

	if _, err := a.Register(ctx, "alice", "alice@example.com", "Aa1@aaaa", "Aa1@aaaa"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	t.Run("duplicate username", func(t *testing.T) {
		_, err := a.Register(ctx, "alice", "other@example.com", "Aa1@aaaa", "Aa1@aaaa")
		if err != ErrUsernameExists {
			t.Errorf("expected ErrUsernameExists, got %v", err)
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := a.Register(ctx, "bob", "alice@example.com", "Aa1@aaaa", "Aa1@aaaa")
		if err != ErrEmailExists {
			t.Errorf("expected ErrEmailExists, got %v", err)
		}
	})
}
