package location

import "errors"

var (
	ErrLocationNotFound = errors.New("location not found")
	ErrLocationInUse    = errors.New("location is still assigned to employees")
)
