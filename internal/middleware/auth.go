package middleware

import (
	"net/http"
	"os"
	"strings"

	"apexleague/paddock/internal/auth"
	"apexleague/paddock/internal/db/repositories"
)

// AuthMiddleware authenticates every API request. Ingestion clients
// present an X-API-Key header; editors present a bearer JWT. In dev mode
// an X-Editor header substitutes for a token.
func AuthMiddleware(keysRepo *repositories.KeysRepo) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			authHeader := r.Header.Get("Authorization")
			apiKey := r.Header.Get("X-API-Key")

			var claims auth.UserClaims

			switch {
			case strings.HasPrefix(authHeader, "Bearer "):
				parsed, err := auth.ParseEditorToken(strings.TrimPrefix(authHeader, "Bearer "))
				if err != nil {
					http.Error(w, "Unauthorized. Invalid token", http.StatusUnauthorized)
					return
				}
				claims = parsed

			case apiKey != "":
				key, err := keysRepo.FindByKey(r.Context(), apiKey)
				if err != nil {
					http.Error(w, "Unauthorized. Key lookup failed", http.StatusUnauthorized)
					return
				}
				if key == nil {
					http.Error(w, "Unauthorized. Invalid API Key", http.StatusUnauthorized)
					return
				}
				keysRepo.Touch(r.Context(), key.ID)
				claims = &auth.APIKeyClaims{KeyID: key.ID, KeyName: key.Name}

			case os.Getenv("APP_ENV") == "dev" && r.Header.Get("X-Editor") != "":
				claims = &auth.EditorClaims{
					EditorUUID: r.Header.Get("X-Editor"),
					RoleValue:  "admin",
				}

			default:
				http.Error(w, "Unauthorized. Missing credentials", http.StatusUnauthorized)
				return
			}

			ctx := auth.SetUserClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireEditor rejects callers whose claims cannot edit results.
// API-key ingestion clients fall in that bucket.
func RequireEditor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := auth.GetUserClaims(r.Context())
		if claims == nil || !claims.CanEdit() {
			http.Error(w, "Forbidden. Editor role required", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
