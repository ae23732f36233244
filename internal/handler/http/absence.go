package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/absence"
	"github.com/nexter-rh/nexter-backend-go/internal/handler/http/response"
)

type AbsenceHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type absenceHandlerImpl struct {
	absenceService absence.AbsenceService
}

func NewAbsenceHandler(absenceService absence.AbsenceService) AbsenceHandler {
	return &absenceHandlerImpl{absenceService: absenceService}
}

// Register implements AbsenceHandler.
func (h *absenceHandlerImpl) Register(w http.ResponseWriter, r *http.Request) {
	var req absence.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	a, err := h.absenceService.Register(r.Context(), companyIDParam(r), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Absence registered", a)
}

// List implements AbsenceHandler.
func (h *absenceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	from, to, err := dateRangeParams(r, "from", "to")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	absences, err := h.absenceService.List(r.Context(), absence.AbsenceFilter{
		CompanyID:  companyIDParam(r),
		EmployeeID: optionalQueryParam(r, "employee_id"),
		Sector:     optionalQueryParam(r, "sector"),
		From:       from,
		To:         to,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, absences)
}

// Delete implements AbsenceHandler.
func (h *absenceHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.absenceService.Delete(r.Context(), companyIDParam(r), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Absence deleted", nil)
}
