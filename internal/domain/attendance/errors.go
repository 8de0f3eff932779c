package attendance

import "errors"

// Attendance domain errors
var (
	// Recording preconditions
	ErrMissingLocation     = errors.New("no location selected for attendance")
	ErrMissingShift        = errors.New("no shift selected for attendance")
	ErrPositionUnavailable = errors.New("could not obtain a position fix")
	ErrNotIdentified       = errors.New("employee identity not established for this session")
	ErrOutsideRadius       = errors.New("you are outside the allowed radius")

	// General errors
	ErrRecordNotFound = errors.New("attendance record not found")
)
