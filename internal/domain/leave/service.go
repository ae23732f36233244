package leave

import "context"

type LeaveService interface {
	CreateLeave(ctx context.Context, companyID string, req CreateLeaveRequest) (Leave, error)
	GetLeave(ctx context.Context, companyID, id string) (Leave, error)
	ListLeaves(ctx context.Context, filter LeaveFilter) ([]Leave, error)

	// MarkReferred records the INSS protocol of a pending referral
	MarkReferred(ctx context.Context, companyID, id string, req ReferRequest) (Leave, error)

	// ScheduleExam sets the INSS medical examination date
	ScheduleExam(ctx context.Context, companyID, id string, req ScheduleExamRequest) (Leave, error)

	CloseLeave(ctx context.Context, companyID, id string, req CloseLeaveRequest) (Leave, error)
}
