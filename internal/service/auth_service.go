package service

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/moviemates/watchlist/internal/auth"
	"github.com/moviemates/watchlist/internal/models"
)

// AuthService implements the /auth endpoints: registration and login.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, logger *slog.Logger) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		logger:        logger,
	}
}

// Routes returns the router for the /auth endpoints.
func (s *AuthService) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/register", s.handleRegister)
	r.Post("/login", s.handleLogin)
	return r
}

type registerRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`

	// ClearPassword is an accepted alias for password, kept for clients of
	// the previous API generation.
	ClearPassword string `json:"clearPassword"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// handleRegister creates a new user account.
//
// POST /auth/register {username, email, password, confirmPassword}
// 201 with the created user (password never serialized), 400 on any
// validation or uniqueness failure.
func (s *AuthService) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Password == "" {
		req.Password = req.ClearPassword
	}

	s.logger.Info("Register request", "username", req.Username, "email", req.Email)

	user, err := s.authenticator.Register(r.Context(), req.Username, req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		if isValidationError(err) {
			s.logger.Warn("Registration rejected", "username", req.Username, "error", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		internalError(w, "Registration failed", err)
		return
	}

	s.logger.Info("User registered", "user_id", user.ID, "username", user.Username)
	writeJSON(w, http.StatusCreated, user)
}

// handleLogin authenticates a user and issues a signed token.
//
// POST /auth/login {email, password}
// 200 with {token, user}; 401 when credentials are missing or wrong, with
// the same message for unknown email and bad password.
func (s *AuthService) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Email == "" || req.Password == "" {
		http.Error(w, "Email and password are required", http.StatusUnauthorized)
		return
	}

	user, err := s.authenticator.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		s.logger.Warn("Login failed", "email", req.Email)
		http.Error(w, auth.ErrInvalidCredentials.Error(), http.StatusUnauthorized)
		return
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		internalError(w, "Failed to generate token", err)
		return
	}

	s.logger.Info("User logged in", "user_id", user.ID, "username", user.Username)
	writeJSON(w, http.StatusOK, loginResponse{Token: token, User: user})
}

// isValidationError reports whether err is a client input error that should
// surface as 400 with its own message.
func isValidationError(err error) bool {
	for _, e := range []error{
		auth.ErrUsernameRequired,
		auth.ErrUsernameTooShort,
		auth.ErrUsernameTooLong,
		auth.ErrUsernameExists,
		auth.ErrEmailRequired,
		auth.ErrEmailInvalid,
		auth.ErrEmailExists,
		auth.ErrPasswordRequired,
		auth.ErrPasswordMismatch,
		auth.ErrWeakPassword,
	} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
