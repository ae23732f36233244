package report

import "errors"

var (
	ErrInvalidDateRange  = errors.New("end date must not be before start date")
	ErrUnsupportedFormat = errors.New("export format must be pdf or xlsx")
)
