package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/employee"
	"github.com/nexter-rh/nexter-backend-go/internal/handler/http/response"
)

type EmployeeHandler interface {
	ListEmployees(w http.ResponseWriter, r *http.Request)
	GetEmployee(w http.ResponseWriter, r *http.Request)
	CreateEmployee(w http.ResponseWriter, r *http.Request)
	UpdateEmployee(w http.ResponseWriter, r *http.Request)
	DeleteEmployee(w http.ResponseWriter, r *http.Request)
	AddSalaryIncrease(w http.ResponseWriter, r *http.Request)
	ChangeRole(w http.ResponseWriter, r *http.Request)
	RecomputeCosts(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService employee.EmployeeService
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &employeeHandlerImpl{
		employeeService: employeeService,
	}
}

// ListEmployees implements EmployeeHandler.
func (h *employeeHandlerImpl) ListEmployees(w http.ResponseWriter, r *http.Request) {
	filter := employee.EmployeeFilter{
		CompanyID: companyIDParam(r),
		Sector:    optionalQueryParam(r, "sector"),
		Search:    optionalQueryParam(r, "search"),
	}
	if s := r.URL.Query().Get("status"); s != "" {
		status := employee.Status(s)
		filter.Status = &status
	}

	employees, err := h.employeeService.ListEmployees(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, employees)
}

// GetEmployee implements EmployeeHandler.
func (h *employeeHandlerImpl) GetEmployee(w http.ResponseWriter, r *http.Request) {
	emp, err := h.employeeService.GetEmployee(r.Context(), companyIDParam(r), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, emp)
}

// CreateEmployee implements EmployeeHandler.
func (h *employeeHandlerImpl) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateEmployeeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	emp, err := h.employeeService.CreateEmployee(r.Context(), companyIDParam(r), req)
	if err != nil {
		slog.Error("Failed to create employee", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee created successfully", emp)
}

// UpdateEmployee implements EmployeeHandler.
func (h *employeeHandlerImpl) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	var req employee.UpdateEmployeeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	emp, err := h.employeeService.UpdateEmployee(r.Context(), companyIDParam(r), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee updated successfully", emp)
}

// DeleteEmployee implements EmployeeHandler.
func (h *employeeHandlerImpl) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	if err := h.employeeService.DeleteEmployee(r.Context(), companyIDParam(r), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee deleted successfully", nil)
}

// AddSalaryIncrease implements EmployeeHandler.
func (h *employeeHandlerImpl) AddSalaryIncrease(w http.ResponseWriter, r *http.Request) {
	var req employee.SalaryIncreaseRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	emp, err := h.employeeService.AddSalaryIncrease(r.Context(), companyIDParam(r), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary increase registered", emp)
}

// ChangeRole implements EmployeeHandler.
func (h *employeeHandlerImpl) ChangeRole(w http.ResponseWriter, r *http.Request) {
	var req employee.RoleChangeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	emp, err := h.employeeService.ChangeRole(r.Context(), companyIDParam(r), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Role change registered", emp)
}

// RecomputeCosts implements EmployeeHandler.
func (h *employeeHandlerImpl) RecomputeCosts(w http.ResponseWriter, r *http.Request) {
	updated, err := h.employeeService.RecomputeCosts(r.Context(), companyIDParam(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]int{"updated": updated})
}
