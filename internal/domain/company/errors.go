package company

import "errors"

var (
	ErrCompanyNotFound     = errors.New("company not found")
	ErrCNPJExists          = errors.New("cnpj already registered")
	ErrCompanyHasEmployees = errors.New("company still has employees")
	ErrCompanyAccessDenied = errors.New("no access to this company")
	ErrUnknownSector       = errors.New("sector is not registered for this company")
	ErrUnknownJobTitle     = errors.New("job title is not registered for this company")
)
