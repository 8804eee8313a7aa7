package middleware

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/SajeedAninda/Sovereign-Assets-Server/models"
	"github.com/SajeedAninda/Sovereign-Assets-Server/store"
	"github.com/SajeedAninda/Sovereign-Assets-Server/utils"
)

// TokenCookie is the session cookie name.
const TokenCookie = "token"

type contextKey string

const emailKey contextKey = "userEmail"

// The two 401 bodies are distinguished on purpose: clients tell a missing
// session apart from a broken one by the message string alone.
const (
	MsgNotAuthorized      = "Not Authorized"
	MsgUnauthorizedAccess = "Unauthorized access"
)

// EmailFromContext returns the authenticated caller's email.
func EmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(emailKey).(string)
	return email, ok
}

// WithEmail is used by tests to seed an authenticated context.
func WithEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, emailKey, email)
}

// Authenticate requires a valid session cookie and stores the claimed
// email on the request context.
func Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(TokenCookie)
		if err != nil || cookie.Value == "" {
			utils.RespondWithMessage(w, http.StatusUnauthorized, MsgNotAuthorized)
			return
		}

		claims, err := utils.ValidateJWT(cookie.Value)
		if err != nil {
			utils.RespondWithMessage(w, http.StatusUnauthorized, MsgUnauthorizedAccess)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithEmail(r.Context(), claims.Email)))
	})
}

// RequireAdmin passes only callers whose user record carries the admin
// role. A lookup miss is treated as not-admin, not as a separate error.
func RequireAdmin(users store.UserStore) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email, ok := EmailFromContext(r.Context())
			if !ok || email == "" {
				utils.RespondWithMessage(w, http.StatusUnauthorized, MsgNotAuthorized)
				return
			}

			user, err := users.GetByEmail(r.Context(), email)
			if err != nil || user.Role != models.RoleAdmin {
				utils.RespondWithMessage(w, http.StatusUnauthorized, MsgUnauthorizedAccess)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
