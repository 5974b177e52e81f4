// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/moviemates/watchlist/internal/models"
)

var (
	// ErrWatchlistNotFound is returned when a watchlist ID does not exist.
	ErrWatchlistNotFound = errors.New("watchlist not found")

	// ErrAlreadyInvited is returned when a user is already on a watchlist's
	// invite list.
	ErrAlreadyInvited = errors.New("user is already invited to the watchlist")

	// ErrMovieExists is returned when a movie ID is already on a watchlist.
	ErrMovieExists = errors.New("movie is already in the watchlist")
)

// Store defines the interface for watchlist storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the handler layer.
type Store interface {
	// CreateUser persists a new user. The user.ID and user.CreatedAt fields
	// are populated by the store if unset.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email address.
	// Returns (nil, nil) if no such user exists.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByUsername retrieves a user by username.
	// Returns (nil, nil) if no such user exists.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUserByID retrieves a user by ID.
	// Returns (nil, nil) if no such user exists.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// CreateWatchlist persists a new watchlist. ID and CreatedAt are
	// populated by the store if unset.
	CreateWatchlist(ctx context.Context, watchlist *models.Watchlist) error

	// GetWatchlist retrieves a watchlist by ID, including its invited user
	// IDs and movies. Returns ErrWatchlistNotFound if it does not exist.
	GetWatchlist(ctx context.Context, id string) (*models.Watchlist, error)

	// ListWatchlistsForUser returns the watchlists the user owns followed by
	// the watchlists the user is invited to, with Owner expanded on each.
	ListWatchlistsForUser(ctx context.Context, userID string) ([]*models.Watchlist, error)

	// AddInvitedUser adds a user to a watchlist's invite list.
	// Returns ErrAlreadyInvited if the user is already invited.
	AddInvitedUser(ctx context.Context, watchlistID, userID string) error

	// RemoveInvitedUser removes a user from a watchlist's invite list.
	// Removing a user who is not invited is not an error.
	RemoveInvitedUser(ctx context.Context, watchlistID, userID string) error

	// AddMovie adds a movie ID to a watchlist.
	// Returns ErrMovieExists if the movie is already on the list.
	AddMovie(ctx context.Context, watchlistID string, movieID int64) error

	// RemoveMovie removes a movie ID from a watchlist.
	// Removing a movie that is not on the list is not an error.
	RemoveMovie(ctx context.Context, watchlistID string, movieID int64) error

	// Close releases any resources held by the store.
	Close() error
}
