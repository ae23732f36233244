package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/leave"
	"github.com/nexter-rh/nexter-backend-go/internal/handler/http/response"
)

type LeaveHandler interface {
	CreateLeave(w http.ResponseWriter, r *http.Request)
	GetLeave(w http.ResponseWriter, r *http.Request)
	ListLeaves(w http.ResponseWriter, r *http.Request)
	MarkReferred(w http.ResponseWriter, r *http.Request)
	ScheduleExam(w http.ResponseWriter, r *http.Request)
	CloseLeave(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{
		leaveService: leaveService,
	}
}

// CreateLeave implements LeaveHandler.
func (h *LeaveHandlerImpl) CreateLeave(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateLeaveRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	l, err := h.leaveService.CreateLeave(r.Context(), companyIDParam(r), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave created successfully", l)
}

// GetLeave implements LeaveHandler.
func (h *LeaveHandlerImpl) GetLeave(w http.ResponseWriter, r *http.Request) {
	l, err := h.leaveService.GetLeave(r.Context(), companyIDParam(r), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, l)
}

// ListLeaves implements LeaveHandler.
func (h *LeaveHandlerImpl) ListLeaves(w http.ResponseWriter, r *http.Request) {
	filter := leave.LeaveFilter{
		CompanyID:  companyIDParam(r),
		EmployeeID: optionalQueryParam(r, "employee_id"),
		HasExam:    getBoolQueryParam(r, "has_exam", false),
	}
	if s := r.URL.Query().Get("status"); s != "" {
		status := leave.Status(s)
		filter.Status = &status
	}
	if s := r.URL.Query().Get("referral_status"); s != "" {
		referral := leave.ReferralStatus(s)
		filter.ReferralStatus = &referral
	}

	leaves, err := h.leaveService.ListLeaves(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leaves)
}

// MarkReferred implements LeaveHandler.
func (h *LeaveHandlerImpl) MarkReferred(w http.ResponseWriter, r *http.Request) {
	var req leave.ReferRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	l, err := h.leaveService.MarkReferred(r.Context(), companyIDParam(r), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave referred to INSS", l)
}

// ScheduleExam implements LeaveHandler.
func (h *LeaveHandlerImpl) ScheduleExam(w http.ResponseWriter, r *http.Request) {
	var req leave.ScheduleExamRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	l, err := h.leaveService.ScheduleExam(r.Context(), companyIDParam(r), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Exam scheduled", l)
}

// CloseLeave implements LeaveHandler.
func (h *LeaveHandlerImpl) CloseLeave(w http.ResponseWriter, r *http.Request) {
	var req leave.CloseLeaveRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	l, err := h.leaveService.CloseLeave(r.Context(), companyIDParam(r), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave closed", l)
}
