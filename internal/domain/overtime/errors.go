package overtime

import "errors"

var (
	ErrEntryNotFound   = errors.New("overtime entry not found")
	ErrEntrySigned     = errors.New("signed overtime entries cannot be changed")
	ErrInvalidInterval = errors.New("clock_out must differ from clock_in")
)
