package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/nexter-rh/nexter-backend-go/internal/handler/http/middleware"
	"github.com/nexter-rh/nexter-backend-go/internal/handler/http/response"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/validator"
)

// companyIDParam returns the company of the route, already checked by
// middleware.RequireCompany.
func companyIDParam(r *http.Request) string {
	return chi.URLParam(r, middleware.CompanyParam)
}

// decodeJSON reads the request body into v, answering 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		slog.Debug("Failed to decode request body", "path", r.URL.Path, "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return false
	}
	return true
}

// getIntQueryParam gets an int query parameter with a default value
func getIntQueryParam(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	intVal, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return intVal
}

// getBoolQueryParam gets a bool query parameter with a default value
func getBoolQueryParam(r *http.Request, key string, defaultVal bool) bool {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	return val == "true" || val == "1"
}

// optionalBoolQueryParam returns nil when the parameter is absent
func optionalBoolQueryParam(r *http.Request, key string) *bool {
	if r.URL.Query().Get(key) == "" {
		return nil
	}
	v := getBoolQueryParam(r, key, false)
	return &v
}

// optionalQueryParam returns nil when the parameter is absent
func optionalQueryParam(r *http.Request, key string) *string {
	val := r.URL.Query().Get(key)
	if val == "" {
		return nil
	}
	return &val
}

// dateRangeParams parses the optional "from" and "to" YYYY-MM-DD filters.
func dateRangeParams(r *http.Request, fromKey, toKey string) (*time.Time, *time.Time, error) {
	var errs validator.ValidationErrors
	parse := func(key string) *time.Time {
		val := r.URL.Query().Get(key)
		if val == "" {
			return nil
		}
		d, ok := validator.IsValidDate(val)
		if !ok {
			errs.Add(key, key+" must be YYYY-MM-DD")
			return nil
		}
		return &d
	}
	from, to := parse(fromKey), parse(toKey)
	if err := errs.Err(); err != nil {
		return nil, nil, err
	}
	return from, to, nil
}
