package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/finance"
	"github.com/nexter-rh/nexter-backend-go/internal/handler/http/response"
)

type FinanceHandler interface {
	CreateEntry(w http.ResponseWriter, r *http.Request)
	GetEntry(w http.ResponseWriter, r *http.Request)
	ListEntries(w http.ResponseWriter, r *http.Request)
	MarkPaid(w http.ResponseWriter, r *http.Request)
	DeleteEntry(w http.ResponseWriter, r *http.Request)
}

type financeHandlerImpl struct {
	financeService finance.FinanceService
}

func NewFinanceHandler(financeService finance.FinanceService) FinanceHandler {
	return &financeHandlerImpl{financeService: financeService}
}

// CreateEntry implements FinanceHandler.
func (h *financeHandlerImpl) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var req finance.CreateEntryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	entry, err := h.financeService.CreateEntry(r.Context(), companyIDParam(r), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Entry created successfully", entry)
}

// GetEntry implements FinanceHandler.
func (h *financeHandlerImpl) GetEntry(w http.ResponseWriter, r *http.Request) {
	entry, err := h.financeService.GetEntry(r.Context(), companyIDParam(r), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, entry)
}

// ListEntries implements FinanceHandler.
func (h *financeHandlerImpl) ListEntries(w http.ResponseWriter, r *http.Request) {
	dueFrom, dueTo, err := dateRangeParams(r, "due_from", "due_to")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filter := finance.EntryFilter{
		CompanyID:  companyIDParam(r),
		EmployeeID: optionalQueryParam(r, "employee_id"),
		DueFrom:    dueFrom,
		DueTo:      dueTo,
	}
	if s := r.URL.Query().Get("status"); s != "" {
		status := finance.Status(s)
		filter.Status = &status
	}
	if o := r.URL.Query().Get("origin"); o != "" {
		origin := finance.Origin(o)
		filter.Origin = &origin
	}

	entries, err := h.financeService.ListEntries(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, entries)
}

// MarkPaid implements FinanceHandler. An empty body pays today.
func (h *financeHandlerImpl) MarkPaid(w http.ResponseWriter, r *http.Request) {
	var req finance.MarkPaidRequest
	if r.ContentLength != 0 && !decodeJSON(w, r, &req) {
		return
	}

	entry, err := h.financeService.MarkPaid(r.Context(), companyIDParam(r), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Entry marked as paid", entry)
}

// DeleteEntry implements FinanceHandler.
func (h *financeHandlerImpl) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	if err := h.financeService.DeleteEntry(r.Context(), companyIDParam(r), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Entry deleted successfully", nil)
}
