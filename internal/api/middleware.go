package api

import (
	"net/http"
	"strings"
	"time"

	"tourbooking/pkg/session"
)

// StaffAuth guards the back-office endpoints. The caller must present a
// bearer session token issued by the login handler.
func StaffAuth(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := strings.TrimSpace(r.Header.Get("Authorization"))
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing bearer token")
				return
			}

			claims, err := session.Verify(strings.TrimPrefix(header, "Bearer "), jwtSecret, time.Now())
			if err != nil {
				WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid session token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithStaff(r.Context(), &Staff{Email: claims.Email})))
		})
	}
}
