package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/HasbiyallahuJafaru/E-KYC/pkg/secrets"
)

// APIKeyAuth authenticates callers by API key against a set of bcrypt
// hashes. With no hashes configured, authentication is disabled; intended
// for development only.
func APIKeyAuth(hashes []string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(hashes) == 0 {
				next.ServeHTTP(w, r)
				return
			}

			key := r.Header.Get("X-API-Key")
			if key == "" {
				if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
					key = strings.TrimPrefix(auth, "Bearer ")
				}
			}
			if key == "" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			for _, hash := range hashes {
				if secrets.Verify(key, hash) == nil {
					next.ServeHTTP(w, r)
					return
				}
			}

			logger.WarnContext(r.Context(), "rejected request with invalid api key",
				"request_id", GetRequestID(r.Context()),
			)
			w.WriteHeader(http.StatusUnauthorized)
		})
	}
}
