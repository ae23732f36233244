package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/overtime"
	"github.com/nexter-rh/nexter-backend-go/internal/handler/http/response"
)

type OvertimeHandler interface {
	Launch(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Sign(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type overtimeHandlerImpl struct {
	overtimeService overtime.OvertimeService
}

func NewOvertimeHandler(overtimeService overtime.OvertimeService) OvertimeHandler {
	return &overtimeHandlerImpl{overtimeService: overtimeService}
}

// Launch implements OvertimeHandler.
func (h *overtimeHandlerImpl) Launch(w http.ResponseWriter, r *http.Request) {
	var req overtime.LaunchRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	entry, err := h.overtimeService.Launch(r.Context(), companyIDParam(r), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Overtime launched", entry)
}

// List implements OvertimeHandler.
func (h *overtimeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	from, to, err := dateRangeParams(r, "from", "to")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.overtimeService.List(r.Context(), overtime.EntryFilter{
		CompanyID:  companyIDParam(r),
		EmployeeID: optionalQueryParam(r, "employee_id"),
		Sector:     optionalQueryParam(r, "sector"),
		Signed:     optionalBoolQueryParam(r, "signed"),
		From:       from,
		To:         to,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Sign implements OvertimeHandler.
func (h *overtimeHandlerImpl) Sign(w http.ResponseWriter, r *http.Request) {
	entry, err := h.overtimeService.Sign(r.Context(), companyIDParam(r), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Overtime signed", entry)
}

// Delete implements OvertimeHandler.
func (h *overtimeHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.overtimeService.Delete(r.Context(), companyIDParam(r), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Overtime deleted", nil)
}
