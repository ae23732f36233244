package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/certificate"
	"github.com/nexter-rh/nexter-backend-go/internal/handler/http/response"
)

type CertificateHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Evaluate(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
	AddFollowUp(w http.ResponseWriter, r *http.Request)
	AttachScan(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type certificateHandlerImpl struct {
	certificateService certificate.CertificateService
}

func NewCertificateHandler(certificateService certificate.CertificateService) CertificateHandler {
	return &certificateHandlerImpl{certificateService: certificateService}
}

// Register implements CertificateHandler.
func (h *certificateHandlerImpl) Register(w http.ResponseWriter, r *http.Request) {
	var req certificate.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	registered, err := h.certificateService.Register(r.Context(), companyIDParam(r), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Certificate registered", registered)
}

// Evaluate implements CertificateHandler.
func (h *certificateHandlerImpl) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req certificate.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	evaluation, err := h.certificateService.Evaluate(r.Context(), companyIDParam(r), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, evaluation)
}

// Get implements CertificateHandler.
func (h *certificateHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.certificateService.Get(r.Context(), companyIDParam(r), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, c)
}

// List implements CertificateHandler.
func (h *certificateHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	from, to, err := dateRangeParams(r, "from", "to")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filter := certificate.CertificateFilter{
		CompanyID:    companyIDParam(r),
		EmployeeID:   optionalQueryParam(r, "employee_id"),
		Psychosocial: optionalBoolQueryParam(r, "psychosocial"),
		From:         from,
		To:           to,
	}
	if s := r.URL.Query().Get("status"); s != "" {
		status := certificate.Status(s)
		filter.Status = &status
	}

	certificates, err := h.certificateService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, certificates)
}

// UpdateStatus implements CertificateHandler.
func (h *certificateHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req certificate.UpdateStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	c, err := h.certificateService.UpdateStatus(r.Context(), companyIDParam(r), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Certificate status updated", c)
}

// AddFollowUp implements CertificateHandler.
func (h *certificateHandlerImpl) AddFollowUp(w http.ResponseWriter, r *http.Request) {
	var req certificate.FollowUpRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	c, err := h.certificateService.AddFollowUp(r.Context(), companyIDParam(r), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Follow-up registered", c)
}

// AttachScan implements CertificateHandler. Expects a multipart form with
// the file in the "scan" field.
func (h *certificateHandlerImpl) AttachScan(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, certificate.MaxScanSize+1<<20)
	if err := r.ParseMultipartForm(certificate.MaxScanSize); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	scan, header, err := r.FormFile("scan")
	if err != nil && err != http.ErrMissingFile {
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}

	req := certificate.AttachScanRequest{}
	if scan != nil {
		defer scan.Close()
		req.File = scan
		req.Filename = header.Filename
		req.Size = header.Size
	}

	c, err := h.certificateService.AttachScan(r.Context(), companyIDParam(r), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Certificate scan attached", c)
}

// Delete implements CertificateHandler.
func (h *certificateHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.certificateService.Delete(r.Context(), companyIDParam(r), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Certificate deleted", nil)
}
