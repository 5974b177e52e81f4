package auth

import (
	"context"

	"github.com/moviemates/watchlist/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping between different auth methods (password,
// passkeys, OAuth, etc.) without changing the handler code.
type Authenticator interface {
	// Register creates a new user account after validating the input.
	// confirm must match credential; the stored password is a hash.
	Register(ctx context.Context, username, email, credential, confirm string) (*models.User, error)

	// Authenticate verifies the user's credentials and returns the user if
	// successful.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks if the credential meets the implementation's
	// strength requirements.
	ValidateCredential(credential string) error
}
