package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/moviemates/watchlist/internal/models"
	"github.com/moviemates/watchlist/internal/storage"
)

// CreateWatchlist persists a new watchlist to the database.
// Generates the ID and CreatedAt if not set.
func (s *SQLiteStore) CreateWatchlist(ctx context.Context, watchlist *models.Watchlist) error {
	if watchlist.ID == "" {
		watchlist.ID = uuid.New().String()
	}
	if watchlist.CreatedAt == 0 {
		watchlist.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO watchlists (id, name, owner_id, created_at) VALUES (?, ?, ?, ?)",
		watchlist.ID, watchlist.Name, watchlist.OwnerID, watchlist.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create watchlist: %w", err)
	}

	return nil
}

// GetWatchlist retrieves a watchlist by ID, including invited user IDs and movies.
func (s *SQLiteStore) GetWatchlist(ctx context.Context, id string) (*models.Watchlist, error) {
	watchlist := &models.Watchlist{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, owner_id, created_at FROM watchlists WHERE id = ?",
		id,
	).Scan(&watchlist.ID, &watchlist.Name, &watchlist.OwnerID, &watchlist.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, storage.ErrWatchlistNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get watchlist: %w", err)
	}

	// Get invited users
	rows, err := s.db.QueryContext(ctx,
		"SELECT user_id FROM watchlist_invites WHERE watchlist_id = ?",
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get invited users: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("failed to scan invited user: %w", err)
		}
		watchlist.InvitedUserIDs = append(watchlist.InvitedUserIDs, userID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate invited users: %w", err)
	}

	movies, err := s.getMovies(ctx, id)
	if err != nil {
		return nil, err
	}
	watchlist.Movies = movies

	return watchlist, nil
}

// ListWatchlistsForUser returns the watchlists the user owns followed by the
// watchlists the user is invited to. Owner is expanded on each entry; movies
// are loaded, invited user IDs are not (the list endpoint never serializes
// them).
func (s *SQLiteStore) ListWatchlistsForUser(ctx context.Context, userID string) ([]*models.Watchlist, error) {
	owned, err := s.queryWatchlists(ctx, `
		SELECT w.id, w.name, w.created_at, u.id, u.username, u.email
		FROM watchlists w
		JOIN users u ON u.id = w.owner_id
		WHERE w.owner_id = ?
		ORDER BY w.created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list owned watchlists: %w", err)
	}

	invited, err := s.queryWatchlists(ctx, `
		SELECT w.id, w.name, w.created_at, u.id, u.username, u.email
		FROM watchlists w
		JOIN users u ON u.id = w.owner_id
		JOIN watchlist_invites i ON i.watchlist_id = w.id
		WHERE i.user_id = ?
		ORDER BY w.created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invited watchlists: %w", err)
	}

	watchlists := append(owned, invited...)
	for _, w := range watchlists {
		movies, err := s.getMovies(ctx, w.ID)
		if err != nil {
			return nil, err
		}
		w.Movies = movies
	}

	return watchlists, nil
}

func (s *SQLiteStore) queryWatchlists(ctx context.Context, query, userID string) ([]*models.Watchlist, error) {
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var watchlists []*models.Watchlist
	for rows.Next() {
		w := &models.Watchlist{Owner: &models.User{}}
		if err := rows.Scan(&w.ID, &w.Name, &w.CreatedAt,
			&w.Owner.ID, &w.Owner.Username, &w.Owner.Email); err != nil {
			return nil, fmt.Errorf("failed to scan watchlist: %w", err)
		}
		w.OwnerID = w.Owner.ID
		watchlists = append(watchlists, w)
	}
	return watchlists, rows.Err()
}

func (s *SQLiteStore) getMovies(ctx context.Context, watchlistID string) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT movie_id FROM watchlist_movies WHERE watchlist_id = ? ORDER BY movie_id",
		watchlistID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get movies: %w", err)
	}
	defer rows.Close()

	var movies []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan movie: %w", err)
		}
		movies = append(movies, id)
	}
	return movies, rows.Err()
}

// AddInvitedUser adds a user to a watchlist's invite list.
// The composite primary key enforces invite uniqueness; a duplicate insert
// is reported as storage.ErrAlreadyInvited.
func (s *SQLiteStore) AddInvitedUser(ctx context.Context, watchlistID, userID string) error {
	res, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO watchlist_invites (watchlist_id, user_id) VALUES (?, ?)",
		watchlistID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to add invited user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to add invited user: %w", err)
	}
	if n == 0 {
		return storage.ErrAlreadyInvited
	}
	return nil
}

// RemoveInvitedUser removes a user from a watchlist's invite list.
func (s *SQLiteStore) RemoveInvitedUser(ctx context.Context, watchlistID, userID string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM watchlist_invites WHERE watchlist_id = ? AND user_id = ?",
		watchlistID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove invited user: %w", err)
	}
	return nil
}

// AddMovie adds a movie ID to a watchlist.
// A duplicate insert is reported as storage.ErrMovieExists.
func (s *SQLiteStore) AddMovie(ctx context.Context, watchlistID string, movieID int64) error {
	res, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO watchlist_movies (watchlist_id, movie_id) VALUES (?, ?)",
		watchlistID, movieID,
	)
	if err != nil {
		return fmt.Errorf("failed to add movie: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to add movie: %w", err)
	}
	if n == 0 {
		return storage.ErrMovieExists
	}
	return nil
}

// RemoveMovie removes a movie ID from a watchlist.
func (s *SQLiteStore) RemoveMovie(ctx context.Context, watchlistID string, movieID int64) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM watchlist_movies WHERE watchlist_id = ? AND movie_id = ?",
		watchlistID, movieID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove movie: %w", err)
	}
	return nil
}
