package company

import "time"

// Company is one tenant. Every other entity is scoped by CompanyID.
type Company struct {
	ID   string
	Name string
	CNPJ *string

	// EmployeeLimit is the number of employee slots the current
	// subscription grants. Approved billing charges raise it.
	EmployeeLimit         int
	SubscriptionExpiresAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DefaultEmployeeLimit is the free-tier slot count granted on signup.
const DefaultEmployeeLimit = 5
