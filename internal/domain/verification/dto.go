package verification

import (
	"github.com/pontocerto/pontocerto-backend-go/internal/domain/attendance"
	"github.com/pontocerto/pontocerto-backend-go/internal/pkg/validator"
)

// State is the lifecycle of one verification session.
type State string

const (
	StateSampling      State = "SAMPLING"
	StateSuccess       State = "SUCCESS"
	StateCancelled     State = "CANCELLED"
	StateSecurityAbort State = "SECURITY_ABORT"
	StateLocationAbort State = "LOCATION_ABORT"
	StateFailed        State = "FAILED"
)

// Terminal reports whether the session has finished.
func (s State) Terminal() bool {
	return s != StateSampling
}

type StartRequest struct {
	LocationID string  `json:"location_id"`
	ShiftID    string  `json:"shift_id"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
}

func (r *StartRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LocationID) {
		errs = append(errs, validator.ValidationError{
			Field:   "location_id",
			Message: "location_id is required",
		})
	}

	if validator.IsEmpty(r.ShiftID) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_id",
			Message: "shift_id is required",
		})
	}

	if r.Latitude < -90 || r.Latitude > 90 {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude < -180 || r.Longitude > 180 {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SessionResponse struct {
	SessionID      string                     `json:"session_id"`
	State          State                      `json:"state"`
	Message        string                     `json:"message,omitempty"`
	DistanceMeters float64                    `json:"distance_meters,omitempty"`
	Record         *attendance.RecordResponse `json:"record,omitempty"`
}
