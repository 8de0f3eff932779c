package billing

import (
	"time"

	"github.com/shopspring/decimal"
)

// ChargeStatus mirrors the PIX provider's charge lifecycle.
type ChargeStatus string

const (
	ChargePending   ChargeStatus = "pending"
	ChargeApproved  ChargeStatus = "approved"
	ChargeCancelled ChargeStatus = "cancelled"
	ChargeExpired   ChargeStatus = "expired"
)

// Terminal reports whether the status will never change again.
func (s ChargeStatus) Terminal() bool {
	return s == ChargeApproved || s == ChargeCancelled || s == ChargeExpired
}

// Charge is one PIX payment attempt buying extra employee slots. An
// approved charge extends the company's subscription.
type Charge struct {
	ID               string
	CompanyID        string
	ProviderChargeID string
	Seats            int
	Amount           decimal.Decimal
	Currency         string
	Status           ChargeStatus
	QRCode           string
	CopyPasteCode    string
	ExpiresAt        time.Time
	ApprovedAt       *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// PricePerSeat is the monthly price of one employee slot in BRL.
var PricePerSeat = decimal.NewFromFloat(14.90)

// SubscriptionPeriodDays is how many days an approved charge extends the
// subscription by.
const SubscriptionPeriodDays = 30
