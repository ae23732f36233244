package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/nexter-rh/nexter-backend-go/internal/handler/http/response"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/jwt"
)

// AuthRequired accepts verified access tokens that carry an operator and
// stores that operator in the request context.
func AuthRequired(next http.Handler) http.Handler {
	hfn := func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())

		if err != nil {
			response.Unauthorized(w, err.Error())
			return
		}

		if token == nil {
			response.Unauthorized(w, "Invalid token")
			return
		}

		tokenType, ok := claims["type"].(string)
		if tokenType != "access" || !ok {
			response.Unauthorized(w, "Invalid token type")
			return
		}

		op := jwt.OperatorFromClaims(claims)
		if op.UserID == "" {
			response.Unauthorized(w, "Token has no user")
			return
		}

		next.ServeHTTP(w, r.WithContext(jwt.WithOperator(r.Context(), op)))
	}
	return http.HandlerFunc(hfn)
}
