package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/movement"
	"github.com/nexter-rh/nexter-backend-go/internal/handler/http/response"
)

type MovementHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	RegisterTermination(w http.ResponseWriter, r *http.Request)
	RegisterHire(w http.ResponseWriter, r *http.Request)
	Revert(w http.ResponseWriter, r *http.Request)
}

type movementHandlerImpl struct {
	movementService movement.MovementService
}

func NewMovementHandler(movementService movement.MovementService) MovementHandler {
	return &movementHandlerImpl{movementService: movementService}
}

// List implements MovementHandler.
func (h *movementHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	from, to, err := dateRangeParams(r, "from", "to")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filter := movement.MovementFilter{
		CompanyID:  companyIDParam(r),
		EmployeeID: optionalQueryParam(r, "employee_id"),
		From:       from,
		To:         to,
	}
	if t := r.URL.Query().Get("type"); t != "" {
		mt := movement.Type(t)
		filter.Type = &mt
	}

	movements, err := h.movementService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, movements)
}

// RegisterTermination implements MovementHandler.
func (h *movementHandlerImpl) RegisterTermination(w http.ResponseWriter, r *http.Request) {
	var req movement.TerminationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	m, err := h.movementService.RegisterTermination(r.Context(), companyIDParam(r), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Termination registered", m)
}

// RegisterHire implements MovementHandler.
func (h *movementHandlerImpl) RegisterHire(w http.ResponseWriter, r *http.Request) {
	var req movement.HireRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	m, err := h.movementService.RegisterHire(r.Context(), companyIDParam(r), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Hire registered", m)
}

// Revert implements MovementHandler.
func (h *movementHandlerImpl) Revert(w http.ResponseWriter, r *http.Request) {
	if err := h.movementService.Revert(r.Context(), companyIDParam(r), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Movement reverted", nil)
}
