package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/EuclidesAnchundia/Tutorias/common_library/ctxdata"
	"github.com/EuclidesAnchundia/Tutorias/common_library/logging"
	"github.com/EuclidesAnchundia/Tutorias/internal/auth"
	"github.com/EuclidesAnchundia/Tutorias/internal/model"
)

type UserLookup interface {
	FindUserByEmail(email string) (*model.User, error)
}

// NewAuthMiddleware accepts "Authorization: Bearer <jwt>" and puts the
// subject and role into the request context. The role is re-read from users
// so a deleted account loses access before its token expires.
func NewAuthMiddleware(secret, issuer string, users UserLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				if logger, ok := logging.GetFromContext(ctx); ok {
					logger.Info(ctx, "no authorization header", zap.String("path", r.URL.Path))
				}
				unauthorized(w, "missing bearer token")
				return
			}

			claims, err := auth.Parse(strings.TrimSpace(token), secret, issuer)
			if err != nil {
				if logger, ok := logging.GetFromContext(ctx); ok {
					logger.Info(ctx, "invalid token", zap.String("path", r.URL.Path), zap.Error(err))
				}
				unauthorized(w, "invalid token")
				return
			}

			role := claims.Role
			if users != nil {
				u, err := users.FindUserByEmail(claims.Subject)
				if err != nil {
					unauthorized(w, "unknown user")
					return
				}
				role = string(u.Role())
			}

			ctx = ctxdata.WithUser(ctx, claims.Subject, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole lets through only the given roles; it must run after the
// auth middleware.
func RequireRole(roles ...model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			current, _ := ctxdata.GetUserRole(r.Context())
			for _, role := range roles {
				if string(role) == current {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeError(w, http.StatusForbidden, "forbidden")
		})
	}
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeError(w, http.StatusUnauthorized, msg)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
