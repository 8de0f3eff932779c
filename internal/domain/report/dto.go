package report

import (
	"fmt"
	"time"

	"github.com/pontocerto/pontocerto-backend-go/internal/pkg/validator"
)

type TimesheetRequest struct {
	EmployeeID string `json:"-"`
	Month      int    `json:"month"`
	Year       int    `json:"year"`
}

func (r *TimesheetRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	currentYear := time.Now().Year()
	if r.Year < 2020 || r.Year > currentYear+1 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: fmt.Sprintf("year must be between 2020 and %d", currentYear+1),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TimesheetReport struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	PeriodMonth  int    `json:"period_month"`
	PeriodYear   int    `json:"period_year"`
	PeriodStart  string `json:"period_start"`
	PeriodEnd    string `json:"period_end"`
	GeneratedAt  string `json:"generated_at"`

	Summary TimesheetSummary `json:"summary"`
	Days    []TimesheetDay   `json:"days"`
}

type TimesheetSummary struct {
	DaysWorked      int     `json:"days_worked"`
	TotalWorkHours  float64 `json:"total_work_hours"`
	LateDays        int     `json:"late_days"`
	VerifiedRecords int     `json:"verified_records"`
	TotalRecords    int     `json:"total_records"`
	AverageScore    float64 `json:"average_score"`
}

// TimesheetDay is one worked calendar day. ShiftName is associated by
// the closest-entry-time heuristic; records carry no shift foreign key.
type TimesheetDay struct {
	Date       string  `json:"date"`
	DayOfWeek  string  `json:"day_of_week"`
	ShiftName  string  `json:"shift_name,omitempty"`
	Entry      *string `json:"entry,omitempty"`
	BreakStart *string `json:"break_start,omitempty"`
	BreakEnd   *string `json:"break_end,omitempty"`
	Exit       *string `json:"exit,omitempty"`
	WorkHours  float64 `json:"work_hours"`
	Score      int     `json:"score"`
	Status     string  `json:"status"`
}
