package attendance

import "context"

// RecordRepository defines data access for attendance records. Records
// are append-only; there is no update method. All reads are
// company-scoped.
//
// "Today's records" reads are a snapshot, not a serialized view: the
// sequencer computes the next action from the latest locally known state
// and accepts the small race window (no compare-and-swap on write).
type RecordRepository interface {
	Create(ctx context.Context, r Record) (Record, error)
	GetByID(ctx context.Context, id string, companyID string) (Record, error)

	// ListByEmployeeAndDate returns the employee's records for one local
	// calendar day, newest first.
	ListByEmployeeAndDate(ctx context.Context, employeeID string, date string, companyID string) ([]Record, error)

	// ListByEmployeeRange returns records between two dates inclusive,
	// oldest first, for reporting.
	ListByEmployeeRange(ctx context.Context, employeeID string, startDate, endDate string, companyID string) ([]Record, error)

	List(ctx context.Context, filter Filter, companyID string) ([]Record, int64, error)
}
