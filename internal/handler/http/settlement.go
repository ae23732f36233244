package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/settlement"
	"github.com/nexter-rh/nexter-backend-go/internal/handler/http/response"
)

type SettlementHandler interface {
	Preview(w http.ResponseWriter, r *http.Request)
	Confirm(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Receipt(w http.ResponseWriter, r *http.Request)
}

type settlementHandlerImpl struct {
	settlementService settlement.SettlementService
}

func NewSettlementHandler(settlementService settlement.SettlementService) SettlementHandler {
	return &settlementHandlerImpl{settlementService: settlementService}
}

// Preview implements SettlementHandler.
func (h *settlementHandlerImpl) Preview(w http.ResponseWriter, r *http.Request) {
	var req settlement.SettlementRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	s, err := h.settlementService.Preview(r.Context(), companyIDParam(r), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, s)
}

// Confirm implements SettlementHandler.
func (h *settlementHandlerImpl) Confirm(w http.ResponseWriter, r *http.Request) {
	var req settlement.SettlementRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	confirmed, err := h.settlementService.Confirm(r.Context(), companyIDParam(r), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Settlement confirmed", confirmed)
}

// Get implements SettlementHandler.
func (h *settlementHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.settlementService.Get(r.Context(), companyIDParam(r), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, s)
}

// List implements SettlementHandler.
func (h *settlementHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	settlements, err := h.settlementService.List(r.Context(), settlement.SettlementFilter{
		CompanyID:  companyIDParam(r),
		EmployeeID: optionalQueryParam(r, "employee_id"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, settlements)
}

// Delete implements SettlementHandler.
func (h *settlementHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.settlementService.Delete(r.Context(), companyIDParam(r), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Settlement deleted", nil)
}

// Receipt implements SettlementHandler.
func (h *settlementHandlerImpl) Receipt(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	data, err := h.settlementService.Receipt(r.Context(), companyIDParam(r), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Attachment(w, fmt.Sprintf("rescisao-%s.pdf", id), "application/pdf", data)
}
