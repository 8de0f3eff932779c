package employee

import "errors"

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrCPFExists          = errors.New("cpf already registered in this company")
	ErrEmailExists        = errors.New("email already registered in this company")
	ErrAlreadyEnrolled    = errors.New("employee already has an enrolled face photo")
	ErrEnrollmentExpired  = errors.New("enrollment link is invalid or has expired")
	ErrEmployeeLimit      = errors.New("employee limit reached for current subscription")
	ErrNotEnrolled        = errors.New("employee has not enrolled a face photo yet")
	ErrInvalidCredentials = errors.New("invalid cpf or pin")
)
