package notification

import (
	"time"
)

// NotificationType represents the type of notification
type NotificationType string

const (
	TypeINSSReferral        NotificationType = "inss_referral"
	TypeExamAlert           NotificationType = "exam_alert"
	TypeRecurringAbsence    NotificationType = "recurring_absence"
	TypePsychosocialCase    NotificationType = "psychosocial_case"
	TypeCertificateExpired  NotificationType = "certificate_expired"
	TypeSettlementConfirmed NotificationType = "settlement_confirmed"
	TypeMovementRegistered  NotificationType = "movement_registered"
	TypeSystemWarning       NotificationType = "system_warning"
)

// AllNotificationTypes returns all available notification types
func AllNotificationTypes() []NotificationType {
	return []NotificationType{
		TypeINSSReferral,
		TypeExamAlert,
		TypeRecurringAbsence,
		TypePsychosocialCase,
		TypeCertificateExpired,
		TypeSettlementConfirmed,
		TypeMovementRegistered,
		TypeSystemWarning,
	}
}

// Severity mirrors the toast levels of the console.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notification represents a notification entity
type Notification struct {
	ID        string                 `json:"id"`
	CompanyID string                 `json:"company_id"`
	Type      NotificationType       `json:"type"`
	Severity  Severity               `json:"severity"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Data      map[string]interface{} `json:"data,omitempty"`
	IsRead    bool                   `json:"is_read"`
	ReadAt    *time.Time             `json:"read_at"`
	CreatedAt time.Time              `json:"created_at"`
}
