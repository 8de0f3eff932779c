package billing

import "context"

// BillingService creates PIX charges for extra employee slots and keeps
// their status in sync with the provider.
type BillingService interface {
	CreateCharge(ctx context.Context, req CreateChargeRequest) (ChargeResponse, error)
	GetCharge(ctx context.Context, id string) (ChargeResponse, error)
	ListCharges(ctx context.Context) ([]ChargeResponse, error)

	// PollPending refreshes every pending charge against the provider.
	// An approved charge extends the company subscription; expired and
	// cancelled charges are closed. Run by the scheduler.
	PollPending(ctx context.Context) error
}
