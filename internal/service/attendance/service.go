package attendance

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/pontocerto/pontocerto-backend-go/internal/domain/attendance"
	"github.com/pontocerto/pontocerto-backend-go/internal/domain/location"
	"github.com/pontocerto/pontocerto-backend-go/internal/domain/shift"
	"github.com/pontocerto/pontocerto-backend-go/internal/pkg/geo"
	"github.com/pontocerto/pontocerto-backend-go/internal/pkg/sse"
	"github.com/pontocerto/pontocerto-backend-go/internal/pkg/storage"
)

type AttendanceServiceImpl struct {
	attendance.RecordRepository
	locationRepo location.LocationRepository
	shiftRepo    shift.ShiftRepository
	fileStorage  storage.FileStorage
	hub          *sse.Hub
}

func NewAttendanceService(
	recordRepo attendance.RecordRepository,
	locationRepo location.LocationRepository,
	shiftRepo shift.ShiftRepository,
	fileStorage storage.FileStorage,
	hub *sse.Hub,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		RecordRepository: recordRepo,
		locationRepo:     locationRepo,
		shiftRepo:        shiftRepo,
		fileStorage:      fileStorage,
		hub:              hub,
	}
}

func claims(ctx context.Context) (companyID string, employeeID string, err error) {
	_, tokenClaims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	companyID, ok := tokenClaims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", fmt.Errorf("company_id claim is missing or invalid")
	}
	employeeID, _ = tokenClaims["employee_id"].(string)
	return companyID, employeeID, nil
}

// Record implements attendance.AttendanceService. Preconditions fail
// without side effects; exactly one record is inserted on success.
func (s *AttendanceServiceImpl) Record(ctx context.Context, req attendance.RecordRequest) (attendance.RecordResponse, error) {
	if req.LocationID == "" {
		return attendance.RecordResponse{}, attendance.ErrMissingLocation
	}
	if req.ShiftID == "" {
		return attendance.RecordResponse{}, attendance.ErrMissingShift
	}
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	companyID, claimEmployeeID, err := claims(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	if claimEmployeeID == "" || claimEmployeeID != req.EmployeeID {
		return attendance.RecordResponse{}, attendance.ErrNotIdentified
	}

	loc, err := s.locationRepo.GetByID(ctx, req.LocationID, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.RecordResponse{}, attendance.ErrMissingLocation
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to get location: %w", err)
	}

	userPos := geo.Coordinate{Latitude: req.Latitude, Longitude: req.Longitude}
	distance := geo.RoundedDistanceMeters(userPos, loc.Coordinate)
	if !geo.WithinRadius(userPos, loc.Coordinate, float64(loc.RadiusMeters)) {
		return attendance.RecordResponse{}, attendance.ErrOutsideRadius
	}

	sh, err := s.shiftRepo.GetByID(ctx, req.ShiftID, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.RecordResponse{}, attendance.ErrMissingShift
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to get shift: %w", err)
	}

	now := time.Now()
	punctuality := ScorePunctuality(req.Type, now, &sh)

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to generate record ID: %w", err)
	}

	var photoURL *string
	if len(req.Photo) > 0 {
		path := fmt.Sprintf("attendance/%s/%s.jpg", req.EmployeeID, id.String())
		storedPath, err := s.fileStorage.Upload(ctx, bytes.NewReader(req.Photo), path, "image/jpeg")
		if err != nil {
			return attendance.RecordResponse{}, fmt.Errorf("failed to upload attendance photo: %w", err)
		}
		url, err := s.fileStorage.GetURL(ctx, storedPath, 0)
		if err != nil {
			return attendance.RecordResponse{}, fmt.Errorf("failed to resolve photo URL: %w", err)
		}
		photoURL = &url
	}

	created, err := s.RecordRepository.Create(ctx, attendance.Record{
		ID:                 id.String(),
		EmployeeID:         req.EmployeeID,
		CompanyID:          companyID,
		LocationID:         loc.ID,
		LocationName:       loc.Name,
		Timestamp:          now,
		Type:               req.Type,
		Latitude:           req.Latitude,
		Longitude:          req.Longitude,
		DistanceMeters:     distance,
		PhotoURL:           photoURL,
		Verified:           req.Verified,
		Score:              punctuality.Score,
		PunctualityStatus:  punctuality.Status,
		PunctualityMessage: punctuality.Message,
	})
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to persist attendance record: %w", err)
	}

	response := toRecordResponse(created)
	s.hub.Publish(companyID, sse.Event{
		CompanyID: companyID,
		Event:     "attendance.recorded",
		Data:      response,
	})

	return response, nil
}

// NextAction implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) NextAction(ctx context.Context) (attendance.NextActionResponse, error) {
	companyID, employeeID, err := claims(ctx)
	if err != nil {
		return attendance.NextActionResponse{}, err
	}
	if employeeID == "" {
		return attendance.NextActionResponse{}, attendance.ErrNotIdentified
	}

	today := time.Now().Format("2006-01-02")
	records, err := s.RecordRepository.ListByEmployeeAndDate(ctx, employeeID, today, companyID)
	if err != nil {
		return attendance.NextActionResponse{}, fmt.Errorf("failed to list today's records: %w", err)
	}

	return attendance.NextActionResponse{NextAction: NextAction(records)}, nil
}

// Timeline implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Timeline(ctx context.Context, date string) ([]attendance.RecordResponse, error) {
	companyID, employeeID, err := claims(ctx)
	if err != nil {
		return nil, err
	}
	if employeeID == "" {
		return nil, attendance.ErrNotIdentified
	}

	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	records, err := s.RecordRepository.ListByEmployeeAndDate(ctx, employeeID, date, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list timeline: %w", err)
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, toRecordResponse(rec))
	}
	return responses, nil
}

// List implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) List(ctx context.Context, filter attendance.Filter) (attendance.ListResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListResponse{}, err
	}

	companyID, _, err := claims(ctx)
	if err != nil {
		return attendance.ListResponse{}, err
	}

	records, totalCount, err := s.RecordRepository.List(ctx, filter, companyID)
	if err != nil {
		return attendance.ListResponse{}, fmt.Errorf("failed to list attendance records: %w", err)
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, toRecordResponse(rec))
	}

	totalPages := int(totalCount) / filter.Limit
	if int(totalCount)%filter.Limit > 0 {
		totalPages++
	}

	return attendance.ListResponse{
		TotalCount: totalCount,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Records:    responses,
	}, nil
}

func toRecordResponse(rec attendance.Record) attendance.RecordResponse {
	response := attendance.RecordResponse{
		ID:                 rec.ID,
		EmployeeID:         rec.EmployeeID,
		LocationID:         rec.LocationID,
		LocationName:       rec.LocationName,
		Timestamp:          rec.Timestamp.Format(time.RFC3339),
		Type:               string(rec.Type),
		Latitude:           rec.Latitude,
		Longitude:          rec.Longitude,
		DistanceMeters:     rec.DistanceMeters,
		PhotoURL:           rec.PhotoURL,
		Verified:           rec.Verified,
		Score:              rec.Score,
		PunctualityStatus:  string(rec.PunctualityStatus),
		PunctualityMessage: rec.PunctualityMessage,
	}
	if rec.EmployeeName != nil {
		response.EmployeeName = *rec.EmployeeName
	}
	return response
}
