package billing

import (
	"github.com/pontocerto/pontocerto-backend-go/internal/pkg/validator"
)

type CreateChargeRequest struct {
	Seats int `json:"seats"`
}

func (r *CreateChargeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Seats <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "seats",
			Message: "seats must be greater than zero",
		})
	}
	if r.Seats > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "seats",
			Message: "seats must not exceed 500",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ChargeResponse struct {
	ID            string  `json:"id"`
	Seats         int     `json:"seats"`
	Amount        string  `json:"amount"`
	Currency      string  `json:"currency"`
	Status        string  `json:"status"`
	QRCode        string  `json:"qr_code,omitempty"`
	CopyPasteCode string  `json:"copy_paste_code,omitempty"`
	ExpiresAt     string  `json:"expires_at"`
	ApprovedAt    *string `json:"approved_at,omitempty"`
	CreatedAt     string  `json:"created_at"`
}
