package absence

import "errors"

var ErrAbsenceNotFound = errors.New("absence not found")
