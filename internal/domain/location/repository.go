package location

import "context"

// LocationRepository defines data access for geofenced work sites.
type LocationRepository interface {
	Create(ctx context.Context, l Location) (Location, error)
	GetByID(ctx context.Context, id string, companyID string) (Location, error)
	ListByCompany(ctx context.Context, companyID string) ([]Location, error)
	ListByEmployee(ctx context.Context, employeeID string, companyID string) ([]Location, error)
	Update(ctx context.Context, l Location) error
	Delete(ctx context.Context, id string, companyID string) error
}
