package finance

import "errors"

var (
	ErrEntryNotFound           = errors.New("financial entry not found")
	ErrEntryAlreadyPaid        = errors.New("financial entry is already paid")
	ErrEntryLinkedToSettlement = errors.New("financial entry belongs to a settlement; delete the settlement instead")
)
