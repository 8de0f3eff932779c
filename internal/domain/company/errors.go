package company

import "errors"

var (
	ErrCompanyNotFound = errors.New("company not found")
	ErrCNPJExists      = errors.New("cnpj already registered")
)
