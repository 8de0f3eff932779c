package employee

import "context"

// EmployeeService defines business logic for employee management and the
// one-time facial enrollment flow.
type EmployeeService interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	Get(ctx context.Context, id string) (EmployeeResponse, error)
	List(ctx context.Context) ([]EmployeeResponse, error)
	Update(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error

	// GenerateEnrollmentLink issues a single-use, expiring link the
	// employee uses to submit their reference photo.
	GenerateEnrollmentLink(ctx context.Context, employeeID string) (EnrollmentLinkResponse, error)

	// EnrollFace consumes a one-time token and records the reference
	// photo and embedding. Valid exactly once per employee.
	EnrollFace(ctx context.Context, req EnrollFaceRequest) (EmployeeResponse, error)
}
