package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pontocerto/pontocerto-backend-go/internal/domain/report"
	"github.com/pontocerto/pontocerto-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	Timesheet(w http.ResponseWriter, r *http.Request)
	TimesheetXLSX(w http.ResponseWriter, r *http.Request)
}

type ReportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &ReportHandlerImpl{reportService: reportService}
}

func timesheetRequest(r *http.Request) report.TimesheetRequest {
	month, _ := strconv.Atoi(r.URL.Query().Get("month"))
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))
	return report.TimesheetRequest{
		EmployeeID: chi.URLParam(r, "id"),
		Month:      month,
		Year:       year,
	}
}

// Timesheet implements ReportHandler.
func (h *ReportHandlerImpl) Timesheet(w http.ResponseWriter, r *http.Request) {
	timesheet, err := h.reportService.GenerateTimesheet(r.Context(), timesheetRequest(r))
	if err != nil {
		slog.Error("Timesheet service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, timesheet)
}

// TimesheetXLSX implements ReportHandler, returning the timesheet as a
// downloadable workbook.
func (h *ReportHandlerImpl) TimesheetXLSX(w http.ResponseWriter, r *http.Request) {
	content, filename, err := h.reportService.ExportTimesheetXLSX(r.Context(), timesheetRequest(r))
	if err != nil {
		slog.Error("Timesheet export service error", "error", err)
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(content)))
	if _, err := w.Write(content); err != nil {
		slog.Error("Timesheet export write error", "error", err)
	}
}
