package billing

import "context"

type ChargeRepository interface {
	Create(ctx context.Context, c Charge) (Charge, error)
	GetByID(ctx context.Context, id string, companyID string) (Charge, error)
	ListByCompany(ctx context.Context, companyID string) ([]Charge, error)

	// ListPending returns pending charges across all companies, for the
	// status polling job.
	ListPending(ctx context.Context) ([]Charge, error)

	UpdateStatus(ctx context.Context, c Charge) error
}
