package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/playvault/platform/internal/domain"
	"github.com/playvault/platform/internal/repository"
)

type contextKey string

const playerKey contextKey = "auth_player"

// PlayerFromContext extracts the authenticated player from request context.
func PlayerFromContext(ctx context.Context) *domain.Player {
	player, _ := ctx.Value(playerKey).(*domain.Player)
	return player
}

// AuthenticatePlayer returns middleware that resolves the bearer token
// against the store. Banned players are rejected even with a token that was
// valid when issued.
func AuthenticatePlayer(pool *pgxpool.Pool, players repository.PlayerRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				http.Error(w, `{"code":"UNAUTHORIZED","message":"missing or malformed Authorization header"}`, http.StatusUnauthorized)
				return
			}

			player, err := players.FindByToken(r.Context(), pool, token)
			if err != nil {
				http.Error(w, `{"code":"INTERNAL_ERROR","message":"internal server error"}`, http.StatusInternalServerError)
				return
			}
			if player == nil {
				http.Error(w, `{"code":"UNAUTHORIZED","message":"invalid session token"}`, http.StatusUnauthorized)
				return
			}
			if player.Banned {
				http.Error(w, `{"code":"FORBIDDEN","message":"account is banned"}`, http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), playerKey, player)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AuthenticateAdmin returns middleware gating the owner capability behind a
// shared secret, distinct from any player identity.
func AuthenticateAdmin(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			presented := r.Header.Get("X-Admin-Secret")
			if presented == "" {
				if token, ok := bearerToken(r); ok {
					presented = token
				}
			}
			if !SecretsEqual(presented, secret) {
				http.Error(w, `{"code":"FORBIDDEN","message":"admin capability check failed"}`, http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}
