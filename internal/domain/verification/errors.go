package verification

import "errors"

var (
	ErrSessionNotFound = errors.New("verification session not found")

	// ErrSessionActive means the employee already holds the camera for
	// another flow; only one verification flow may be active per session.
	ErrSessionActive = errors.New("a verification flow is already active for this employee")

	// ErrIdentityMismatch is the security failure: a detected face that
	// does not match the already-identified employee. Fatal to the flow,
	// never auto-retried.
	ErrIdentityMismatch = errors.New("detected face does not match the identified employee")
)
