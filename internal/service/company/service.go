package company

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"

	"github.com/pontocerto/pontocerto-backend-go/internal/domain/company"
	"github.com/pontocerto/pontocerto-backend-go/internal/domain/employee"
)

type CompanyServiceImpl struct {
	company.CompanyRepository
	employeeRepo employee.EmployeeRepository
}

func NewCompanyService(repo company.CompanyRepository, employeeRepo employee.EmployeeRepository) company.CompanyService {
	return &CompanyServiceImpl{
		CompanyRepository: repo,
		employeeRepo:      employeeRepo,
	}
}

func claimsCompanyID(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", fmt.Errorf("company_id claim is missing or invalid")
	}
	return companyID, nil
}

// GetMine implements company.CompanyService.
func (s *CompanyServiceImpl) GetMine(ctx context.Context) (company.CompanyResponse, error) {
	companyID, err := claimsCompanyID(ctx)
	if err != nil {
		return company.CompanyResponse{}, err
	}

	found, err := s.CompanyRepository.GetByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.CompanyResponse{}, company.ErrCompanyNotFound
		}
		return company.CompanyResponse{}, fmt.Errorf("failed to get company: %w", err)
	}

	count, err := s.employeeRepo.CountByCompany(ctx, companyID)
	if err != nil {
		return company.CompanyResponse{}, fmt.Errorf("failed to count employees: %w", err)
	}

	return toCompanyResponse(found, count), nil
}

// UpdateMine implements company.CompanyService.
func (s *CompanyServiceImpl) UpdateMine(ctx context.Context, req company.UpdateCompanyRequest) (company.CompanyResponse, error) {
	if err := req.Validate(); err != nil {
		return company.CompanyResponse{}, err
	}

	companyID, err := claimsCompanyID(ctx)
	if err != nil {
		return company.CompanyResponse{}, err
	}

	current, err := s.CompanyRepository.GetByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.CompanyResponse{}, company.ErrCompanyNotFound
		}
		return company.CompanyResponse{}, fmt.Errorf("failed to get company: %w", err)
	}

	if req.Name != nil {
		current.Name = *req.Name
	}
	if req.CNPJ != nil {
		current.CNPJ = req.CNPJ
	}

	if err := s.CompanyRepository.Update(ctx, current); err != nil {
		return company.CompanyResponse{}, fmt.Errorf("failed to update company: %w", err)
	}

	count, err := s.employeeRepo.CountByCompany(ctx, companyID)
	if err != nil {
		return company.CompanyResponse{}, fmt.Errorf("failed to count employees: %w", err)
	}

	return toCompanyResponse(current, count), nil
}

func toCompanyResponse(c company.Company, employeeCount int) company.CompanyResponse {
	response := company.CompanyResponse{
		ID:            c.ID,
		Name:          c.Name,
		CNPJ:          c.CNPJ,
		EmployeeLimit: c.EmployeeLimit,
		EmployeeCount: employeeCount,
		CreatedAt:     c.CreatedAt.Format(time.RFC3339),
	}
	if c.SubscriptionExpiresAt != nil {
		expiresAt := c.SubscriptionExpiresAt.Format(time.RFC3339)
		response.SubscriptionExpiresAt = &expiresAt
	}
	return response
}
