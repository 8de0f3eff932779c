package postgresql

import (
	"context"
	"fmt"

	"github.com/pontocerto/pontocerto-backend-go/internal/domain/billing"
	"github.com/pontocerto/pontocerto-backend-go/internal/pkg/database"
)

type billingRepository struct {
	db *database.DB
}

func NewBillingRepository(db *database.DB) billing.ChargeRepository {
	return &billingRepository{db: db}
}

const chargeColumns = `id, company_id, provider_charge_id, seats, amount, currency, status, qr_code, copy_paste_code, expires_at, approved_at, created_at, updated_at`

func scanCharge(row interface{ Scan(dest ...any) error }) (billing.Charge, error) {
	var c billing.Charge
	err := row.Scan(
		&c.ID, &c.CompanyID, &c.ProviderChargeID, &c.Seats, &c.Amount, &c.Currency,
		&c.Status, &c.QRCode, &c.CopyPasteCode, &c.ExpiresAt, &c.ApprovedAt,
		&c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

// Create implements billing.ChargeRepository.
func (r *billingRepository) Create(ctx context.Context, c billing.Charge) (billing.Charge, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO billing_charges (
			id, company_id, provider_charge_id, seats, amount, currency,
			status, qr_code, copy_paste_code, expires_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		c.ID, c.CompanyID, c.ProviderChargeID, c.Seats, c.Amount, c.Currency,
		c.Status, c.QRCode, c.CopyPasteCode, c.ExpiresAt,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return billing.Charge{}, fmt.Errorf("failed to create charge: %w", err)
	}

	return c, nil
}

// GetByID implements billing.ChargeRepository.
func (r *billingRepository) GetByID(ctx context.Context, id string, companyID string) (billing.Charge, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + chargeColumns + ` FROM billing_charges WHERE id = $1 AND company_id = $2`

	return scanCharge(q.QueryRow(ctx, query, id, companyID))
}

// ListByCompany implements billing.ChargeRepository.
func (r *billingRepository) ListByCompany(ctx context.Context, companyID string) ([]billing.Charge, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + chargeColumns + ` FROM billing_charges WHERE company_id = $1 ORDER BY created_at DESC`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list charges: %w", err)
	}
	defer rows.Close()

	var charges []billing.Charge
	for rows.Next() {
		c, err := scanCharge(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan charge: %w", err)
		}
		charges = append(charges, c)
	}

	return charges, rows.Err()
}

// ListPending implements billing.ChargeRepository.
func (r *billingRepository) ListPending(ctx context.Context) ([]billing.Charge, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + chargeColumns + ` FROM billing_charges WHERE status = $1 ORDER BY created_at`

	rows, err := q.Query(ctx, query, billing.ChargePending)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending charges: %w", err)
	}
	defer rows.Close()

	var charges []billing.Charge
	for rows.Next() {
		c, err := scanCharge(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan charge: %w", err)
		}
		charges = append(charges, c)
	}

	return charges, rows.Err()
}

// UpdateStatus implements billing.ChargeRepository. Only non-terminal
// charges may change status, so a poll racing a webhook cannot approve
// twice.
func (r *billingRepository) UpdateStatus(ctx context.Context, c billing.Charge) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE billing_charges
		SET status = $2, approved_at = $3, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`

	tag, err := q.Exec(ctx, query, c.ID, c.Status, c.ApprovedAt)
	if err != nil {
		return fmt.Errorf("failed to update charge status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return billing.ErrChargeProcessed
	}

	return nil
}
