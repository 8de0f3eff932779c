package shift

import "context"

// ShiftRepository defines data access for shifts. All methods take a
// companyID to prevent cross-tenant access.
type ShiftRepository interface {
	Create(ctx context.Context, s Shift) (Shift, error)
	GetByID(ctx context.Context, id string, companyID string) (Shift, error)
	ListByCompany(ctx context.Context, companyID string) ([]Shift, error)
	ListByEmployee(ctx context.Context, employeeID string, companyID string) ([]Shift, error)
	Update(ctx context.Context, s Shift) error
	Delete(ctx context.Context, id string, companyID string) error
}
