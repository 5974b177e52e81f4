package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/moviemates/watchlist/internal/models"
)

var (
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrUsernameRequired   = errors.New("Username is required")
	ErrUsernameTooShort   = errors.New("Username is too short, minimum 2 characters")
	ErrUsernameTooLong    = errors.New("Username is too long, maximum 10 characters")
	ErrUsernameExists     = errors.New("Username is already in use")
	ErrEmailRequired      = errors.New("Email is required")
	ErrEmailInvalid       = errors.New("Please enter a valid email address")
	ErrEmailExists        = errors.New("Email is already in use")
	ErrPasswordRequired   = errors.New("Password is required")
	ErrPasswordMismatch   = errors.New("Passwords do not match")
	ErrWeakPassword       = errors.New("Password must contain at least 8 characters, including a lowercase letter, an uppercase letter, a number, and a special character (@$!%*?&)")
)

var emailRegex = regexp.MustCompile(`^\w+([.-]?\w+)*@[a-zA-Z]+([.-]?[a-zA-Z]+)*(\.[a-zA-Z]{2,3})+$`)

const passwordSpecials = "@$!%*?&"

// UserStorage defines the interface for user persistence operations.
// This allows the authenticator to be independent of the storage implementation.
type UserStorage interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// PasswordAuthenticator implements password-based authentication using bcrypt.
type PasswordAuthenticator struct {
	storage UserStorage
	cost    int
}

// NewPasswordAuthenticator creates a new password-based authenticator.
// cost is the bcrypt work factor (bcrypt.DefaultCost if out of range).
func NewPasswordAuthenticator(storage UserStorage, cost int) *PasswordAuthenticator {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordAuthenticator{
		storage: storage,
		cost:    cost,
	}
}

// ValidateCredential checks the password strength policy: minimum 8
// characters drawn from letters, digits and @$!%*?&, with at least one
// lowercase letter, one uppercase letter, one digit and one special
// character. Go's regexp has no lookahead, so the classes are checked
// directly instead of with a single pattern.
func (a *PasswordAuthenticator) ValidateCredential(credential string) error {
	if len(credential) < 8 {
		return ErrWeakPassword
	}
	var lower, upper, digit, special bool
	for _, r := range credential {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		default:
			return ErrWeakPassword
		}
	}
	if !lower || !upper || !digit || !special {
		return ErrWeakPassword
	}
	return nil
}

func validateUsername(username string) error {
	if username == "" {
		return ErrUsernameRequired
	}
	if len(username) < 2 {
		return ErrUsernameTooShort
	}
	if len(username) > 10 {
		return ErrUsernameTooLong
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return ErrEmailRequired
	}
	if !emailRegex.MatchString(email) {
		return ErrEmailInvalid
	}
	return nil
}

// Register validates the registration input, hashes the password and creates
// the user account. The password is hashed exactly once, here; the stored
// model never sees the plaintext.
func (a *PasswordAuthenticator) Register(ctx context.Context, username, email, credential, confirm string) (*models.User, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if credential == "" {
		return nil, ErrPasswordRequired
	}
	if err := a.ValidateCredential(credential); err != nil {
		return nil, err
	}
	if credential != confirm {
		return nil, ErrPasswordMismatch
	}

	if existing, err := a.storage.GetUserByUsername(ctx, username); err == nil && existing != nil {
		return nil, ErrUsernameExists
	}
	if existing, err := a.storage.GetUserByEmail(ctx, email); err == nil && existing != nil {
		return nil, ErrEmailExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(credential), a.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.NewUser(username, email, string(hashedPassword))

	if err := a.storage.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Authenticate verifies the email and password, returning the user if valid.
// Unknown email and wrong password yield the same error so existence does
// not leak.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, email, credential string) (*models.User, error) {
	user, err := a.storage.GetUserByEmail(ctx, email)
	if err != nil || user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(credential)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
