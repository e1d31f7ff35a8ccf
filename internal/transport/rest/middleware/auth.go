package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"teambalancer/internal/apperror"
	"teambalancer/internal/model"
)

type contextKey string

const (
	GroupIDKey  contextKey = "groupId"
	PlayerIDKey contextKey = "playerId"
)

// TokenValidator checks session tokens
type TokenValidator interface {
	ValidatePlayerToken(token string) (*model.PlayerClaims, error)
	ValidateAdminToken(token string) (*model.AdminClaims, error)
}

// AuthMiddleware provides JWT authentication middleware
type AuthMiddleware struct {
	tokens TokenValidator
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(tokens TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// RequirePlayer validates a player JWT from the Authorization header
func (m *AuthMiddleware) RequirePlayer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			writeError(w, apperror.NewAuthenticationError("missing authorization header"))
			return
		}

		claims, err := m.tokens.ValidatePlayerToken(token)
		if err != nil {
			writeError(w, apperror.NewAuthenticationError("invalid or expired token"))
			return
		}

		ctx := r.Context()
		ctx = context.WithValue(ctx, GroupIDKey, claims.GroupID)
		ctx = context.WithValue(ctx, PlayerIDKey, claims.PlayerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireGroup rejects player tokens issued for another group than the
// {groupId} of the route. It must run after RequirePlayer.
func (m *AuthMiddleware) RequireGroup(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		routeGroup := mux.Vars(r)["groupId"]
		if routeGroup != "" && routeGroup != GetGroupID(r.Context()) {
			writeError(w, apperror.NewAuthorizationError("token is not valid for this group"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin validates an admin JWT from the Authorization header
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			writeError(w, apperror.NewAuthenticationError("missing authorization header"))
			return
		}

		if _, err := m.tokens.ValidateAdminToken(token); err != nil {
			writeError(w, apperror.NewAuthenticationError("invalid or expired token"))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// GetGroupID extracts the group of the authenticated player
func GetGroupID(ctx context.Context) string {
	if v, ok := ctx.Value(GroupIDKey).(string); ok {
		return v
	}
	return ""
}

// GetPlayerID extracts the authenticated player ID
func GetPlayerID(ctx context.Context) string {
	if v, ok := ctx.Value(PlayerIDKey).(string); ok {
		return v
	}
	return ""
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func writeError(w http.ResponseWriter, appErr *apperror.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode)
	json.NewEncoder(w).Encode(appErr.Response())
}
