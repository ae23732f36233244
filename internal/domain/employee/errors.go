package employee

import "errors"

var (
	ErrEmployeeNotFound        = errors.New("employee not found")
	ErrCPFExists               = errors.New("cpf already registered in this company")
	ErrEventBeforeAdmission    = errors.New("event date is before the admission date")
	ErrEmployeeAlreadyActive   = errors.New("employee is already active")
	ErrEmployeeAlreadyInactive = errors.New("employee is already inactive")
	ErrEmployeeHasRecords      = errors.New("employee has linked records")
)
