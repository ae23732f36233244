package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/nexter-rh/nexter-backend-go/internal/domain/absence"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/certificate"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/company"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/employee"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/finance"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/leave"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/movement"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/notification"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/overtime"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/report"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/settlement"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/storage"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/validator"
	"github.com/nexter-rh/nexter-backend-go/internal/service/file"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Company domain errors
	case errors.Is(err, company.ErrCompanyNotFound):
		NotFound(w, "Company not found")
	case errors.Is(err, company.ErrCompanyAccessDenied):
		Forbidden(w, err.Error())
	case errors.Is(err, company.ErrCNPJExists):
		Conflict(w, "CNPJ already registered")
	case errors.Is(err, company.ErrCompanyHasEmployees):
		Conflict(w, err.Error())
	case errors.Is(err, company.ErrUnknownSector),
		errors.Is(err, company.ErrUnknownJobTitle):
		BadRequest(w, err.Error(), nil)

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrCPFExists):
		Conflict(w, "CPF already registered in this company")
	case errors.Is(err, employee.ErrEmployeeHasRecords):
		Conflict(w, err.Error())
	case errors.Is(err, employee.ErrEventBeforeAdmission),
		errors.Is(err, employee.ErrEmployeeAlreadyActive),
		errors.Is(err, employee.ErrEmployeeAlreadyInactive):
		BadRequest(w, err.Error(), nil)

	// Movement domain errors
	case errors.Is(err, movement.ErrMovementNotFound):
		NotFound(w, "Movement not found")
	case errors.Is(err, movement.ErrMovementNotLatest):
		Conflict(w, err.Error())

	// Settlement domain errors
	case errors.Is(err, settlement.ErrSettlementNotFound):
		NotFound(w, "Settlement not found")
	case errors.Is(err, settlement.ErrSettlementHasPaidEntries):
		Conflict(w, err.Error())

	// Finance domain errors
	case errors.Is(err, finance.ErrEntryNotFound):
		NotFound(w, "Financial entry not found")
	case errors.Is(err, finance.ErrEntryAlreadyPaid),
		errors.Is(err, finance.ErrEntryLinkedToSettlement):
		Conflict(w, err.Error())

	// Overtime domain errors
	case errors.Is(err, overtime.ErrEntryNotFound):
		NotFound(w, "Overtime entry not found")
	case errors.Is(err, overtime.ErrEntrySigned):
		Conflict(w, err.Error())
	case errors.Is(err, overtime.ErrInvalidInterval):
		BadRequest(w, err.Error(), nil)

	// Absence domain errors
	case errors.Is(err, absence.ErrAbsenceNotFound):
		NotFound(w, "Absence not found")

	// Certificate domain errors
	case errors.Is(err, certificate.ErrCertificateNotFound):
		NotFound(w, "Certificate not found")
	case errors.Is(err, certificate.ErrNotPsychosocial),
		errors.Is(err, certificate.ErrInvalidStage),
		errors.Is(err, certificate.ErrStageBackwards):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, certificate.ErrCaseClosed):
		Conflict(w, err.Error())

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveNotFound):
		NotFound(w, "Leave not found")
	case errors.Is(err, leave.ErrLeaveClosed),
		errors.Is(err, leave.ErrAlreadyReferred):
		Conflict(w, err.Error())
	case errors.Is(err, leave.ErrLeaveNotReferred),
		errors.Is(err, leave.ErrEndBeforeStart):
		BadRequest(w, err.Error(), nil)

	// Report domain errors
	case errors.Is(err, report.ErrInvalidDateRange),
		errors.Is(err, report.ErrUnsupportedFormat):
		BadRequest(w, err.Error(), nil)

	// Notification domain errors
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")
	case errors.Is(err, notification.ErrUnauthorized):
		Forbidden(w, err.Error())

	// Storage errors
	case errors.Is(err, storage.ErrFileNotFound):
		NotFound(w, "File not found")
	case errors.Is(err, storage.ErrInvalidPath),
		errors.Is(err, file.ErrUnsupportedScan):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, err.Error())
	}
}
