package report

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/pontocerto/pontocerto-backend-go/internal/domain/report"
)

var timesheetHeader = []string{
	"Date",
	"Day",
	"Shift",
	"Entry",
	"Break Start",
	"Break End",
	"Exit",
	"Hours",
	"Score",
	"Status",
}

// ExportTimesheetXLSX implements report.ReportService.
func (s *ReportServiceImpl) ExportTimesheetXLSX(ctx context.Context, req report.TimesheetRequest) ([]byte, string, error) {
	timesheet, err := s.GenerateTimesheet(ctx, req)
	if err != nil {
		return nil, "", err
	}

	content, err := renderTimesheetXLSX(timesheet)
	if err != nil {
		return nil, "", fmt.Errorf("failed to render timesheet workbook: %w", err)
	}

	filename := fmt.Sprintf("timesheet_%s_%04d-%02d.xlsx",
		timesheet.EmployeeID, timesheet.PeriodYear, timesheet.PeriodMonth)
	return content, filename, nil
}

func renderTimesheetXLSX(timesheet report.TimesheetReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Timesheet"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	// Title block
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("Timesheet - %s", timesheet.EmployeeName))
	f.SetCellValue(sheetName, "A2", fmt.Sprintf("Period: %s to %s", timesheet.PeriodStart, timesheet.PeriodEnd))
	f.SetCellValue(sheetName, "A3", fmt.Sprintf("Generated: %s", timesheet.GeneratedAt))

	const headerRow = 5
	for col, header := range timesheetHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, headerRow)
		if err != nil {
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
	}

	for i, day := range timesheet.Days {
		row := headerRow + 1 + i
		values := []any{
			day.Date,
			day.DayOfWeek,
			day.ShiftName,
			deref(day.Entry),
			deref(day.BreakStart),
			deref(day.BreakEnd),
			deref(day.Exit),
			day.WorkHours,
			day.Score,
			day.Status,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, fmt.Errorf("failed to convert coordinates: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return nil, fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
		}
	}

	summaryRow := headerRow + len(timesheet.Days) + 2
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryRow), "Days worked")
	f.SetCellValue(sheetName, fmt.Sprintf("B%d", summaryRow), timesheet.Summary.DaysWorked)
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryRow+1), "Total hours")
	f.SetCellValue(sheetName, fmt.Sprintf("B%d", summaryRow+1), timesheet.Summary.TotalWorkHours)
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryRow+2), "Late days")
	f.SetCellValue(sheetName, fmt.Sprintf("B%d", summaryRow+2), timesheet.Summary.LateDays)
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryRow+3), "Average score")
	f.SetCellValue(sheetName, fmt.Sprintf("B%d", summaryRow+3), timesheet.Summary.AverageScore)
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryRow+4), "Verified records")
	f.SetCellValue(sheetName, fmt.Sprintf("B%d", summaryRow+4),
		fmt.Sprintf("%d/%d", timesheet.Summary.VerifiedRecords, timesheet.Summary.TotalRecords))

	if err := f.SetColWidth(sheetName, "A", "A", 12); err != nil {
		return nil, fmt.Errorf("failed to set column width: %w", err)
	}
	if err := f.SetColWidth(sheetName, "B", "C", 14); err != nil {
		return nil, fmt.Errorf("failed to set column width: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
