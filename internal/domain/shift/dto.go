package shift

import (
	"github.com/pontocerto/pontocerto-backend-go/internal/pkg/validator"
)

type CreateShiftRequest struct {
	Name           string  `json:"name"`
	EntryTime      string  `json:"entry_time"`
	ExitTime       string  `json:"exit_time"`
	BreakStartTime *string `json:"break_start_time,omitempty"`
	BreakEndTime   *string `json:"break_end_time,omitempty"`
}

func (r *CreateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if _, ok := MinuteOfDay(r.EntryTime); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "entry_time",
			Message: "entry_time must be in HH:MM 24-hour format",
		})
	}

	if _, ok := MinuteOfDay(r.ExitTime); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "exit_time",
			Message: "exit_time must be in HH:MM 24-hour format",
		})
	}

	// A break is only meaningful as a pair.
	if (r.BreakStartTime == nil) != (r.BreakEndTime == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "break_start_time",
			Message: "break_start_time and break_end_time must both be present or both absent",
		})
	}

	if r.BreakStartTime != nil {
		if _, ok := MinuteOfDay(*r.BreakStartTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "break_start_time",
				Message: "break_start_time must be in HH:MM 24-hour format",
			})
		}
	}

	if r.BreakEndTime != nil {
		if _, ok := MinuteOfDay(*r.BreakEndTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "break_end_time",
				Message: "break_end_time must be in HH:MM 24-hour format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateShiftRequest struct {
	ID             string  `json:"-"`
	Name           *string `json:"name,omitempty"`
	EntryTime      *string `json:"entry_time,omitempty"`
	ExitTime       *string `json:"exit_time,omitempty"`
	BreakStartTime *string `json:"break_start_time,omitempty"`
	BreakEndTime   *string `json:"break_end_time,omitempty"`
}

func (r *UpdateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}

	for field, value := range map[string]*string{
		"entry_time":       r.EntryTime,
		"exit_time":        r.ExitTime,
		"break_start_time": r.BreakStartTime,
		"break_end_time":   r.BreakEndTime,
	} {
		if value == nil {
			continue
		}
		if _, ok := MinuteOfDay(*value); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: field + " must be in HH:MM 24-hour format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ShiftResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	EntryTime      string  `json:"entry_time"`
	ExitTime       string  `json:"exit_time"`
	BreakStartTime *string `json:"break_start_time,omitempty"`
	BreakEndTime   *string `json:"break_end_time,omitempty"`
	Overnight      bool    `json:"overnight"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}
