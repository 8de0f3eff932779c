package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/pontocerto/pontocerto-backend-go/internal/domain/attendance"
	"github.com/pontocerto/pontocerto-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	NextAction(w http.ResponseWriter, r *http.Request)
	Timeline(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

// NextAction implements AttendanceHandler. Employee-facing: which event
// type the day's sequence expects next.
func (h *AttendanceHandlerImpl) NextAction(w http.ResponseWriter, r *http.Request) {
	nextAction, err := h.attendanceService.NextAction(r.Context())
	if err != nil {
		slog.Error("NextAction service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, nextAction)
}

// Timeline implements AttendanceHandler. Employee-facing daily timeline;
// defaults to today when no date is given.
func (h *AttendanceHandlerImpl) Timeline(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")

	records, err := h.attendanceService.Timeline(r.Context(), date)
	if err != nil {
		slog.Error("Timeline service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// List implements AttendanceHandler. Admin listing with filtering,
// sorting and pagination through query parameters.
func (h *AttendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := parseAttendanceFilter(r)

	listResponse, err := h.attendanceService.List(r.Context(), filter)
	if err != nil {
		slog.Error("Attendance list service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, listResponse.Records, &response.Meta{
		Page:       listResponse.Page,
		Limit:      listResponse.Limit,
		TotalItems: listResponse.TotalCount,
		TotalPages: listResponse.TotalPages,
	})
}

func parseAttendanceFilter(r *http.Request) attendance.Filter {
	query := r.URL.Query()

	var filter attendance.Filter
	if v := query.Get("employee_id"); v != "" {
		filter.EmployeeID = &v
	}
	if v := query.Get("location_id"); v != "" {
		filter.LocationID = &v
	}
	if v := query.Get("type"); v != "" {
		filter.Type = &v
	}
	if v := query.Get("date"); v != "" {
		filter.Date = &v
	}
	if v := query.Get("start_date"); v != "" {
		filter.StartDate = &v
	}
	if v := query.Get("end_date"); v != "" {
		filter.EndDate = &v
	}
	filter.Page, _ = strconv.Atoi(query.Get("page"))
	filter.Limit, _ = strconv.Atoi(query.Get("limit"))
	filter.SortBy = query.Get("sort_by")
	filter.SortOrder = query.Get("sort_order")

	return filter
}
