package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/company"
	"github.com/nexter-rh/nexter-backend-go/internal/handler/http/response"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/jwt"
)

// CompanyParam is the route parameter holding the company being operated on.
const CompanyParam = "companyID"

// RequireCompany rejects requests for companies the operator cannot access.
func RequireCompany(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		companyID := chi.URLParam(r, CompanyParam)
		if companyID == "" {
			response.BadRequest(w, "Company ID is required", nil)
			return
		}

		if !jwt.OperatorFromContext(r.Context()).CanAccess(companyID) {
			response.HandleError(w, company.ErrCompanyAccessDenied)
			return
		}

		next.ServeHTTP(w, r)
	})
}
