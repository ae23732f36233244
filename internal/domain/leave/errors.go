package leave

import "errors"

var (
	ErrLeaveNotFound    = errors.New("leave not found")
	ErrLeaveClosed      = errors.New("leave is already closed")
	ErrLeaveNotReferred = errors.New("leave has no INSS referral")
	ErrEndBeforeStart   = errors.New("end date must not be before start date")
	ErrAlreadyReferred  = errors.New("leave was already referred to the INSS")
)
