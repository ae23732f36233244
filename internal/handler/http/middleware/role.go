package middleware

import (
	"net/http"

	"github.com/nexter-rh/nexter-backend-go/internal/handler/http/response"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/jwt"
)

// RequireAdmin requires the admin role
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if jwt.OperatorFromContext(r.Context()).Role != jwt.RoleAdmin {
			response.Forbidden(w, "Admin access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
