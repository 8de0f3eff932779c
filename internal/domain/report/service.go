package report

import "context"

// ReportService builds monthly attendance timesheets.
type ReportService interface {
	GenerateTimesheet(ctx context.Context, req TimesheetRequest) (TimesheetReport, error)

	// ExportTimesheetXLSX renders the timesheet as an XLSX workbook and
	// returns the file content plus a suggested filename.
	ExportTimesheetXLSX(ctx context.Context, req TimesheetRequest) ([]byte, string, error)
}
