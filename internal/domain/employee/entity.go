package employee

import (
	"time"

	"github.com/pontocerto/pontocerto-backend-go/internal/pkg/face"
)

type Employee struct {
	ID        string
	CompanyID string
	FullName  string
	CPF       string
	Email     string
	Role      string
	PIN       string

	// WorkDays holds weekdays the employee works, 0=Sunday .. 6=Saturday.
	WorkDays []int32

	// ReferenceEmbedding is derived from the enrollment photo. Nil until
	// the employee completes the one-time facial enrollment.
	ReferenceEmbedding face.Embedding
	PhotoURL           *string

	LocationIDs []string
	ShiftIDs    []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Enrolled reports whether the employee has a reference face on file.
func (e Employee) Enrolled() bool {
	return len(e.ReferenceEmbedding) > 0
}
