package middleware

import (
	"net/http"
	"strings"

	"rising-bms/internal/data/repository"
	"rising-bms/pkg/utils"

	"go.uber.org/zap"
)

// Auth validates either a JWT bearer token or a session token and attaches
// the user to the request context. Session tokens are accepted from the
// Authorization header or from the session cookie. Requests without valid
// credentials are rejected.
func Auth(repo *repository.Repository, config *utils.Config, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r, config.Session.CookieName)
			if token == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			// A JWT has two dots; session tokens are plain UUIDs.
			if strings.Count(token, ".") == 2 {
				userID, role, err := utils.VerifyAccessToken(config.JWT.Secret, token)
				if err != nil {
					logger.Warn("Invalid access token", zap.Error(err))
					utils.ResponseUnauthorized(w, "Invalid or expired token")
					return
				}

				ctx := utils.SetUserContext(r.Context(), userID, role)
				ctx = utils.SetTokenContext(ctx, token)
				ctx = utils.SetAuthKindContext(ctx, "jwt")

				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			// Session token path
			session, err := repo.Session.FindValidSession(r.Context(), token)
			if err != nil {
				logger.Error("Failed to validate session", zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}
			if session == nil {
				logger.Warn("Invalid or expired session")
				utils.ResponseUnauthorized(w, "Invalid or expired session")
				return
			}

			// Sessions carry no role; resolve it from the user row
			user, err := repo.User.FindByID(r.Context(), session.UserID)
			if err != nil {
				logger.Error("Failed to load session user",
					zap.Error(err),
					zap.String("user_id", session.UserID.String()))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}
			if user == nil || !user.IsActive {
				utils.ResponseUnauthorized(w, "Account is deactivated")
				return
			}

			ctx := utils.SetUserContext(r.Context(), user.ID, string(user.Role))
			ctx = utils.SetTokenContext(ctx, token)
			ctx = utils.SetAuthKindContext(ctx, "session")

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth attaches the user to the context when valid credentials
// are presented and lets the request through anonymously otherwise. Used
// for endpoints whose behavior depends on who is calling without
// requiring a login.
func OptionalAuth(repo *repository.Repository, config *utils.Config, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r, config.Session.CookieName)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			if strings.Count(token, ".") == 2 {
				userID, role, err := utils.VerifyAccessToken(config.JWT.Secret, token)
				if err != nil {
					logger.Debug("Ignoring invalid access token", zap.Error(err))
					next.ServeHTTP(w, r)
					return
				}
				ctx := utils.SetUserContext(r.Context(), userID, role)
				ctx = utils.SetTokenContext(ctx, token)
				ctx = utils.SetAuthKindContext(ctx, "jwt")
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			session, err := repo.Session.FindValidSession(r.Context(), token)
			if err != nil || session == nil {
				next.ServeHTTP(w, r)
				return
			}
			user, err := repo.User.FindByID(r.Context(), session.UserID)
			if err != nil || user == nil || !user.IsActive {
				next.ServeHTTP(w, r)
				return
			}

			ctx := utils.SetUserContext(r.Context(), user.ID, string(user.Role))
			ctx = utils.SetTokenContext(ctx, token)
			ctx = utils.SetAuthKindContext(ctx, "session")
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Admin checks the role set by Auth.
func Admin(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := utils.GetRoleFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			if role != "admin" {
				userID, _ := utils.GetUserIDFromContext(r.Context())
				logger.Warn("Admin check: non-admin access attempt",
					zap.String("user_id", userID.String()),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Admin access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// extractToken reads the bearer token from the Authorization header,
// falling back to the session cookie.
func extractToken(r *http.Request, cookieName string) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}

	cookie, err := r.Cookie(cookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
