package service

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/moviemates/watchlist/internal/middleware"
	"github.com/moviemates/watchlist/internal/models"
	"github.com/moviemates/watchlist/internal/storage"
)

// WatchlistService implements the /watchlists endpoints. All routes require
// authentication; the owner/invitee rules are enforced per handler.
type WatchlistService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewWatchlistService creates a new WatchlistService with the given storage backend.
func NewWatchlistService(store storage.Store, logger *slog.Logger) *WatchlistService {
	return &WatchlistService{store: store, logger: logger}
}

// Routes returns the router for the /watchlists endpoints.
func (s *WatchlistService) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", s.handleList)
	r.Post("/", s.handleCreate)
	r.Put("/{watchlistID}/invite", s.handleInvite)
	r.Delete("/{watchlistID}/remove-user", s.handleRemoveUser)
	r.Put("/{watchlistID}/movies", s.handleAddMovie)
	r.Delete("/{watchlistID}/movies", s.handleRemoveMovie)
	return r
}

// ownerResponse is the expanded owner in list responses. The owner's email
// and owned lists are never included.
type ownerResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// watchlistResponse is the serialized form of a watchlist. Invited users are
// deliberately omitted.
type watchlistResponse struct {
	ID     string        `json:"id"`
	Name   string        `json:"name"`
	Owner  ownerResponse `json:"owner"`
	Movies []int64       `json:"movies"`
}

type createRequest struct {
	Name string `json:"name"`
}

type createResponse struct {
	WatchlistID string `json:"watchlistId"`
	Name        string `json:"name"`
}

type usernameRequest struct {
	Username string `json:"username"`
}

type movieRequest struct {
	MovieID *int64 `json:"movieId"`
}

// handleList returns the watchlists the caller owns followed by the ones the
// caller is invited to, with the owner expanded.
//
// GET /watchlists -> 200 [watchlistResponse]
func (s *WatchlistService) handleList(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	watchlists, err := s.store.ListWatchlistsForUser(r.Context(), userID)
	if err != nil {
		internalError(w, "Failed to list watchlists", err)
		return
	}

	resp := make([]watchlistResponse, 0, len(watchlists))
	for _, wl := range watchlists {
		movies := wl.Movies
		if movies == nil {
			movies = []int64{}
		}
		resp = append(resp, watchlistResponse{
			ID:   wl.ID,
			Name: wl.Name,
			Owner: ownerResponse{
				ID:       wl.Owner.ID,
				Username: wl.Owner.Username,
			},
			Movies: movies,
		})
	}

	s.logger.Info("Watchlists listed", "user_id", userID, "count", len(resp))
	writeJSON(w, http.StatusOK, resp)
}

// handleCreate creates a watchlist owned by the caller.
//
// POST /watchlists {name} -> 201 {watchlistId, name}; 400 on name violations.
func (s *WatchlistService) handleCreate(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req createRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Name == "" {
		http.Error(w, "Name is required", http.StatusBadRequest)
		return
	}
	if len(req.Name) < 2 {
		http.Error(w, "Watchlist name is too short, minimum 2 characters", http.StatusBadRequest)
		return
	}
	if len(req.Name) > 10 {
		http.Error(w, "Watchlist name is too long, maximum 10 characters", http.StatusBadRequest)
		return
	}

	watchlist := &models.Watchlist{Name: req.Name, OwnerID: userID}
	if err := s.store.CreateWatchlist(r.Context(), watchlist); err != nil {
		internalError(w, "Failed to create watchlist", err)
		return
	}

	s.logger.Info("Watchlist created", "watchlist_id", watchlist.ID, "owner_id", userID)
	writeJSON(w, http.StatusCreated, createResponse{WatchlistID: watchlist.ID, Name: watchlist.Name})
}

// handleInvite adds a user to the invite list of a watchlist the caller owns.
//
// PUT /watchlists/{watchlistID}/invite {username}
// 200 message; 400 missing username or already invited; 403 caller is not
// the owner; 404 unknown watchlist or user.
func (s *WatchlistService) handleInvite(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	watchlistID := chi.URLParam(r, "watchlistID")

	var req usernameRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Username == "" {
		http.Error(w, "Username is required", http.StatusBadRequest)
		return
	}

	watchlist, err := s.store.GetWatchlist(r.Context(), watchlistID)
	if err != nil {
		if errors.Is(err, storage.ErrWatchlistNotFound) {
			http.Error(w, "Watchlist not found", http.StatusNotFound)
			return
		}
		internalError(w, "Failed to get watchlist", err)
		return
	}

	if watchlist.OwnerID != userID {
		http.Error(w, "You are not allowed to invite users to this watchlist", http.StatusForbidden)
		return
	}

	invitee, err := s.store.GetUserByUsername(r.Context(), req.Username)
	if err != nil {
		internalError(w, "Failed to get user", err)
		return
	}
	if invitee == nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	if err := s.store.AddInvitedUser(r.Context(), watchlist.ID, invitee.ID); err != nil {
		if errors.Is(err, storage.ErrAlreadyInvited) {
			http.Error(w, "User is already invited to the watchlist", http.StatusBadRequest)
			return
		}
		internalError(w, "Failed to invite user", err)
		return
	}

	s.logger.Info("User invited", "watchlist_id", watchlist.ID, "user_id", invitee.ID, "by", userID)
	writeMessage(w, http.StatusOK, "User added to watchlist")
}

// handleRemoveUser removes a user from the invite list. The owner may remove
// any invitee; an invitee may remove only themselves; the owner cannot be
// removed at all.
//
// DELETE /watchlists/{watchlistID}/remove-user {username}
// 200 message; 400 missing username; 403 rule violations; 404 unknown
// watchlist or user.
func (s *WatchlistService) handleRemoveUser(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	watchlistID := chi.URLParam(r, "watchlistID")

	var req usernameRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Username == "" {
		http.Error(w, "Username is required", http.StatusBadRequest)
		return
	}

	watchlist, err := s.store.GetWatchlist(r.Context(), watchlistID)
	if err != nil {
		if errors.Is(err, storage.ErrWatchlistNotFound) {
			http.Error(w, "Watchlist not found", http.StatusNotFound)
			return
		}
		internalError(w, "Failed to get watchlist", err)
		return
	}

	userToRemove, err := s.store.GetUserByUsername(r.Context(), req.Username)
	if err != nil {
		internalError(w, "Failed to get user", err)
		return
	}
	if userToRemove == nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	if userToRemove.ID == watchlist.OwnerID {
		http.Error(w, "You cannot remove yourself from your own watchlist, you can delete it instead", http.StatusForbidden)
		return
	}
	if watchlist.OwnerID != userID && userToRemove.ID != userID {
		http.Error(w, "You are not allowed to remove users from this watchlist", http.StatusForbidden)
		return
	}

	if err := s.store.RemoveInvitedUser(r.Context(), watchlist.ID, userToRemove.ID); err != nil {
		internalError(w, "Failed to remove user", err)
		return
	}

	s.logger.Info("User removed", "watchlist_id", watchlist.ID, "user_id", userToRemove.ID, "by", userID)
	writeMessage(w, http.StatusOK, "User removed from watchlist")
}

// handleAddMovie adds a movie ID to a watchlist the caller owns. Invitees
// have read access only.
//
// PUT /watchlists/{watchlistID}/movies {movieId}
// 200 message; 400 missing movieId or duplicate; 403 not the owner; 404.
func (s *WatchlistService) handleAddMovie(w http.ResponseWriter, r *http.Request) {
	watchlist, movieID, ok := s.movieRequest(w, r)
	if !ok {
		return
	}

	if err := s.store.AddMovie(r.Context(), watchlist.ID, movieID); err != nil {
		if errors.Is(err, storage.ErrMovieExists) {
			http.Error(w, "Movie is already in the watchlist", http.StatusBadRequest)
			return
		}
		internalError(w, "Failed to add movie", err)
		return
	}

	s.logger.Info("Movie added", "watchlist_id", watchlist.ID, "movie_id", movieID)
	writeMessage(w, http.StatusOK, "Movie added to watchlist")
}

// handleRemoveMovie removes a movie ID from a watchlist the caller owns.
//
// DELETE /watchlists/{watchlistID}/movies {movieId}
// 200 message; 400 missing movieId; 403 not the owner; 404.
func (s *WatchlistService) handleRemoveMovie(w http.ResponseWriter, r *http.Request) {
	watchlist, movieID, ok := s.movieRequest(w, r)
	if !ok {
		return
	}

	if err := s.store.RemoveMovie(r.Context(), watchlist.ID, movieID); err != nil {
		internalError(w, "Failed to remove movie", err)
		return
	}

	s.logger.Info("Movie removed", "watchlist_id", watchlist.ID, "movie_id", movieID)
	writeMessage(w, http.StatusOK, "Movie removed from watchlist")
}

// movieRequest decodes a movie mutation request and checks the shared rules:
// the movie ID must be present and non-negative, the watchlist must exist,
// and the caller must be its owner. The error response has been written when
// ok is false.
func (s *WatchlistService) movieRequest(w http.ResponseWriter, r *http.Request) (*models.Watchlist, int64, bool) {
	userID := middleware.GetUserID(r.Context())
	watchlistID := chi.URLParam(r, "watchlistID")

	var req movieRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return nil, 0, false
	}
	if req.MovieID == nil || *req.MovieID < 0 {
		http.Error(w, "Movie id is required", http.StatusBadRequest)
		return nil, 0, false
	}

	watchlist, err := s.store.GetWatchlist(r.Context(), watchlistID)
	if err != nil {
		if errors.Is(err, storage.ErrWatchlistNotFound) {
			http.Error(w, "Watchlist not found", http.StatusNotFound)
			return nil, 0, false
		}
		internalError(w, "Failed to get watchlist", err)
		return nil, 0, false
	}

	if watchlist.OwnerID != userID {
		http.Error(w, "You are not allowed to modify this watchlist", http.StatusForbidden)
		return nil, 0, false
	}

	return watchlist, *req.MovieID, true
}
