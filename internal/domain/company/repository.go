package company

import (
	"context"
	"time"
)

type CompanyRepository interface {
	Create(ctx context.Context, c Company) (Company, error)
	GetByID(ctx context.Context, id string) (Company, error)
	Update(ctx context.Context, c Company) error

	// ExtendSubscription raises the slot limit and pushes the expiry
	// forward; called when a billing charge is approved.
	ExtendSubscription(ctx context.Context, id string, extraSlots int, expiresAt time.Time) error
}
