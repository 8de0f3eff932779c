package employee

import "context"

// EmployeeRepository defines data access for employees. All methods are
// company-scoped; deleting an employee cascades to attendance records.
type EmployeeRepository interface {
	Create(ctx context.Context, e Employee) (Employee, error)
	GetByID(ctx context.Context, id string, companyID string) (Employee, error)
	GetByCPF(ctx context.Context, cpf string, companyID string) (Employee, error)
	ListByCompany(ctx context.Context, companyID string) ([]Employee, error)
	CountByCompany(ctx context.Context, companyID string) (int, error)
	Update(ctx context.Context, e Employee) error

	// SetReferenceFace stores the enrollment result. The write only
	// succeeds when the employee has no reference embedding yet; the
	// one-time transition is enforced here and by the token store.
	SetReferenceFace(ctx context.Context, id string, companyID string, embedding []float64, photoURL string) error

	Delete(ctx context.Context, id string, companyID string) error
}
