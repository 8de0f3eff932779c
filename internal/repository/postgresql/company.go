package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/pontocerto/pontocerto-backend-go/internal/domain/company"
	"github.com/pontocerto/pontocerto-backend-go/internal/pkg/database"
)

type companyRepository struct {
	db *database.DB
}

func NewCompanyRepository(db *database.DB) company.CompanyRepository {
	return &companyRepository{db: db}
}

// Create implements company.CompanyRepository.
func (r *companyRepository) Create(ctx context.Context, c company.Company) (company.Company, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO companies (id, name, cnpj, employee_limit, subscription_expires_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		c.ID,
		c.Name,
		c.CNPJ,
		c.EmployeeLimit,
		c.SubscriptionExpiresAt,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return company.Company{}, fmt.Errorf("failed to create company: %w", err)
	}

	return c, nil
}

// GetByID implements company.CompanyRepository.
func (r *companyRepository) GetByID(ctx context.Context, id string) (company.Company, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, cnpj, employee_limit, subscription_expires_at, created_at, updated_at
		FROM companies
		WHERE id = $1
	`

	var c company.Company
	err := q.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.CNPJ, &c.EmployeeLimit, &c.SubscriptionExpiresAt,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return company.Company{}, err
	}

	return c, nil
}

// Update implements company.CompanyRepository.
func (r *companyRepository) Update(ctx context.Context, c company.Company) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE companies
		SET name = $2, cnpj = $3, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, c.ID, c.Name, c.CNPJ)
	if err != nil {
		return fmt.Errorf("failed to update company: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return company.ErrCompanyNotFound
	}

	return nil
}

// ExtendSubscription implements company.CompanyRepository.
func (r *companyRepository) ExtendSubscription(ctx context.Context, id string, extraSlots int, expiresAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE companies
		SET employee_limit = employee_limit + $2,
		    subscription_expires_at = $3,
		    updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, extraSlots, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to extend subscription: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return company.ErrCompanyNotFound
	}

	return nil
}
