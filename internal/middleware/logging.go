package middleware

import (
	"log/slog"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// Logging returns a middleware that logs every request.
// It logs the method, path, status, user ID, and duration.
func Logging() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			duration := time.Since(start).Milliseconds()
			userID := GetUserID(r.Context()) // empty if pre-auth
			status := ww.Status()

			switch {
			case status >= 500:
				slog.Error("Request failed",
					"method", r.Method,
					"path", r.URL.Path,
					"status", status,
					"user_id", userID,
					"duration_ms", duration,
				)
			case status >= 400:
				slog.Warn("Request rejected",
					"method", r.Method,
					"path", r.URL.Path,
					"status", status,
					"user_id", userID,
					"duration_ms", duration,
				)
			default:
				slog.Info("Request ok",
					"method", r.Method,
					"path", r.URL.Path,
					"status", status,
					"user_id", userID,
					"duration_ms", duration,
				)
			}
		})
	}
}
