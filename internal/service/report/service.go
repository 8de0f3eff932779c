package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"

	"github.com/pontocerto/pontocerto-backend-go/internal/domain/attendance"
	"github.com/pontocerto/pontocerto-backend-go/internal/domain/employee"
	"github.com/pontocerto/pontocerto-backend-go/internal/domain/report"
	"github.com/pontocerto/pontocerto-backend-go/internal/domain/shift"
)

type ReportServiceImpl struct {
	recordRepo   attendance.RecordRepository
	employeeRepo employee.EmployeeRepository
	shiftRepo    shift.ShiftRepository
}

func NewReportService(
	recordRepo attendance.RecordRepository,
	employeeRepo employee.EmployeeRepository,
	shiftRepo shift.ShiftRepository,
) report.ReportService {
	return &ReportServiceImpl{
		recordRepo:   recordRepo,
		employeeRepo: employeeRepo,
		shiftRepo:    shiftRepo,
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

// GenerateTimesheet implements report.ReportService.
func (s *ReportServiceImpl) GenerateTimesheet(ctx context.Context, req report.TimesheetRequest) (report.TimesheetReport, error) {
	if err := req.Validate(); err != nil {
		return report.TimesheetReport{}, err
	}

	companyID, err := claimsCompanyID(ctx)
	if err != nil {
		return report.TimesheetReport{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return report.TimesheetReport{}, employee.ErrEmployeeNotFound
		}
		return report.TimesheetReport{}, fmt.Errorf("failed to get employee by ID: %w", err)
	}

	periodStart := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, time.Local)
	periodEnd := periodStart.AddDate(0, 1, -1)

	records, err := s.recordRepo.ListByEmployeeRange(ctx,
		req.EmployeeID,
		periodStart.Format("2006-01-02"),
		periodEnd.Format("2006-01-02"),
		companyID,
	)
	if err != nil {
		return report.TimesheetReport{}, fmt.Errorf("failed to list attendance records: %w", err)
	}

	shifts, err := s.shiftRepo.ListByEmployee(ctx, req.EmployeeID, companyID)
	if err != nil {
		return report.TimesheetReport{}, fmt.Errorf("failed to list shifts by employee: %w", err)
	}

	days, summary := buildTimesheet(records, shifts)

	return report.TimesheetReport{
		EmployeeID:   emp.ID,
		EmployeeName: emp.FullName,
		PeriodMonth:  req.Month,
		PeriodYear:   req.Year,
		PeriodStart:  periodStart.Format("2006-01-02"),
		PeriodEnd:    periodEnd.Format("2006-01-02"),
		GeneratedAt:  time.Now().Format(time.RFC3339),
		Summary:      summary,
		Days:         days,
	}, nil
}

// buildTimesheet folds the ordered record stream into per-day rows.
// Records come in ascending timestamp order.
func buildTimesheet(records []attendance.Record, shifts []shift.Shift) ([]report.TimesheetDay, report.TimesheetSummary) {
	type dayAccumulator struct {
		date       string
		weekday    time.Weekday
		entry      *time.Time
		breakStart *time.Time
		breakEnd   *time.Time
		exit       *time.Time
		scoreSum   int
		scoreCount int
		late       bool
		verified   int
		total      int
	}

	var order []string
	byDate := make(map[string]*dayAccumulator)

	for _, rec := range records {
		date := rec.Timestamp.Format("2006-01-02")
		day, ok := byDate[date]
		if !ok {
			day = &dayAccumulator{date: date, weekday: rec.Timestamp.Weekday()}
			byDate[date] = day
			order = append(order, date)
		}

		ts := rec.Timestamp
		switch rec.Type {
		case attendance.EventEntry:
			if day.entry == nil {
				day.entry = &ts
			}
		case attendance.EventBreakStart:
			if day.breakStart == nil {
				day.breakStart = &ts
			}
		case attendance.EventBreakEnd:
			day.breakEnd = &ts
		case attendance.EventExit:
			day.exit = &ts
		}

		if rec.PunctualityStatus != attendance.StatusNeutral {
			day.scoreSum += rec.Score
			day.scoreCount++
		}
		if rec.PunctualityStatus == attendance.StatusLate {
			day.late = true
		}
		if rec.Verified {
			day.verified++
		}
		day.total++
	}

	days := make([]report.TimesheetDay, 0, len(order))
	var summary report.TimesheetSummary
	var scoreSum, scoreCount int

	for _, date := range order {
		day := byDate[date]

		row := report.TimesheetDay{
			Date:       day.date,
			DayOfWeek:  day.weekday.String(),
			Entry:      clockOf(day.entry),
			BreakStart: clockOf(day.breakStart),
			BreakEnd:   clockOf(day.breakEnd),
			Exit:       clockOf(day.exit),
			WorkHours:  workHours(day.entry, day.exit, day.breakStart, day.breakEnd),
		}
		if day.entry != nil {
			row.ShiftName = closestShiftName(*day.entry, shifts)
		}
		if day.scoreCount > 0 {
			row.Score = day.scoreSum / day.scoreCount
		}
		switch {
		case day.late:
			row.Status = string(attendance.StatusLate)
		case day.scoreCount == 0:
			row.Status = string(attendance.StatusNeutral)
		case day.scoreSum == day.scoreCount*100:
			row.Status = string(attendance.StatusPerfect)
		default:
			row.Status = string(attendance.StatusGood)
		}
		days = append(days, row)

		summary.DaysWorked++
		summary.TotalWorkHours += row.WorkHours
		if day.late {
			summary.LateDays++
		}
		summary.VerifiedRecords += day.verified
		summary.TotalRecords += day.total
		scoreSum += day.scoreSum
		scoreCount += day.scoreCount
	}

	if scoreCount > 0 {
		summary.AverageScore = float64(scoreSum) / float64(scoreCount)
	}
	return days, summary
}

func clockOf(t *time.Time) *string {
	if t == nil {
		return nil
	}
	clock := t.Format("15:04")
	return &clock
}

// workHours computes the day's worked time: entry to exit minus the
// break, when present. An exit clock before the entry clock means the
// shift crossed midnight.
func workHours(entry, exit, breakStart, breakEnd *time.Time) float64 {
	if entry == nil || exit == nil {
		return 0
	}

	worked := exit.Sub(*entry)
	if worked < 0 {
		worked += 24 * time.Hour
	}

	if breakStart != nil && breakEnd != nil {
		pause := breakEnd.Sub(*breakStart)
		if pause > 0 && pause < worked {
			worked -= pause
		}
	}

	return worked.Round(time.Minute).Hours()
}

const minutesPerDay = 24 * 60

// closestShiftName associates a day with the assigned shift whose entry
// time is nearest the actual entry, measured as wraparound minute
// distance. Records store no shift reference, so this stays a heuristic.
func closestShiftName(entry time.Time, shifts []shift.Shift) string {
	entryMin := entry.Hour()*60 + entry.Minute()

	bestName := ""
	bestDistance := minutesPerDay
	for _, s := range shifts {
		shiftMin, ok := shift.MinuteOfDay(s.EntryTime)
		if !ok {
			continue
		}
		distance := entryMin - shiftMin
		if distance < 0 {
			distance = -distance
		}
		if wrapped := minutesPerDay - distance; wrapped < distance {
			distance = wrapped
		}
		if distance < bestDistance {
			bestDistance = distance
			bestName = s.Name
		}
	}
	return bestName
}
