package attendance

import "context"

// AttendanceService defines business logic for recording and reading
// attendance events.
type AttendanceService interface {
	// Record validates preconditions, checks the requested type against
	// the sequencer's next action, annotates punctuality and persists
	// exactly one record. Append-only; no side effects on failure.
	Record(ctx context.Context, req RecordRequest) (RecordResponse, error)

	// NextAction computes the single legal next event type for the
	// authenticated employee from today's records.
	NextAction(ctx context.Context) (NextActionResponse, error)

	// Timeline returns the authenticated employee's records for one
	// calendar day, newest first.
	Timeline(ctx context.Context, date string) ([]RecordResponse, error)

	// List retrieves records with filters and pagination (admin).
	List(ctx context.Context, filter Filter) (ListResponse, error)
}
