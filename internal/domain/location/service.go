package location

import "context"

// LocationService defines business logic for work site management.
type LocationService interface {
	Create(ctx context.Context, req CreateLocationRequest) (LocationResponse, error)
	Get(ctx context.Context, id string) (LocationResponse, error)
	List(ctx context.Context) ([]LocationResponse, error)
	ListMine(ctx context.Context) ([]LocationResponse, error)
	Update(ctx context.Context, req UpdateLocationRequest) (LocationResponse, error)
	Delete(ctx context.Context, id string) error
}
