package company

import (
	"github.com/pontocerto/pontocerto-backend-go/internal/pkg/validator"
)

type UpdateCompanyRequest struct {
	Name *string `json:"name,omitempty"`
	CNPJ *string `json:"cnpj,omitempty"`
}

func (r *UpdateCompanyRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}

	if r.CNPJ != nil && !validator.IsValidCNPJ(*r.CNPJ) {
		errs = append(errs, validator.ValidationError{
			Field:   "cnpj",
			Message: "cnpj must be 14 digits",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CompanyResponse struct {
	ID                    string  `json:"id"`
	Name                  string  `json:"name"`
	CNPJ                  *string `json:"cnpj,omitempty"`
	EmployeeLimit         int     `json:"employee_limit"`
	EmployeeCount         int     `json:"employee_count"`
	SubscriptionExpiresAt *string `json:"subscription_expires_at,omitempty"`
	CreatedAt             string  `json:"created_at"`
}
