package shift

import "context"

// ShiftService defines business logic for shift management.
type ShiftService interface {
	Create(ctx context.Context, req CreateShiftRequest) (ShiftResponse, error)
	Get(ctx context.Context, id string) (ShiftResponse, error)
	List(ctx context.Context) ([]ShiftResponse, error)
	Update(ctx context.Context, req UpdateShiftRequest) (ShiftResponse, error)
	Delete(ctx context.Context, id string) error

	// ActiveForEmployee returns the employee's shifts plausibly active
	// right now, applying the grace windows around entry and exit.
	ActiveForEmployee(ctx context.Context, employeeID string) ([]ShiftResponse, error)
}
