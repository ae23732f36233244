package certificate

import "errors"

var (
	ErrCertificateNotFound = errors.New("certificate not found")
	ErrNotPsychosocial     = errors.New("follow-up is only tracked for psychosocial certificates")
	ErrCaseClosed          = errors.New("follow-up case is already closed")
	ErrInvalidStage        = errors.New("unknown follow-up stage")
	ErrStageBackwards      = errors.New("follow-up stage cannot move back")
)
