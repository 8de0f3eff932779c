package shift

import "errors"

var (
	ErrShiftNotFound = errors.New("shift not found")
	ErrShiftInUse    = errors.New("shift is still assigned to employees")
)
