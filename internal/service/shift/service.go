package shift

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/pontocerto/pontocerto-backend-go/internal/domain/shift"
)

type ShiftServiceImpl struct {
	shift.ShiftRepository
}

func NewShiftService(repo shift.ShiftRepository) shift.ShiftService {
	return &ShiftServiceImpl{ShiftRepository: repo}
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

// Create implements shift.ShiftService.
func (s *ShiftServiceImpl) Create(ctx context.Context, req shift.CreateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	companyID, err := claimsCompanyID(ctx)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return shift.ShiftResponse{}, fmt.Errorf("failed to generate shift ID: %w", err)
	}

	created, err := s.ShiftRepository.Create(ctx, shift.Shift{
		ID:             id.String(),
		CompanyID:      companyID,
		Name:           req.Name,
		EntryTime:      req.EntryTime,
		ExitTime:       req.ExitTime,
		BreakStartTime: req.BreakStartTime,
		BreakEndTime:   req.BreakEndTime,
	})
	if err != nil {
		return shift.ShiftResponse{}, fmt.Errorf("failed to create shift: %w", err)
	}

	return toShiftResponse(created), nil
}

// Get implements shift.ShiftService.
func (s *ShiftServiceImpl) Get(ctx context.Context, id string) (shift.ShiftResponse, error) {
	companyID, err := claimsCompanyID(ctx)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	found, err := s.ShiftRepository.GetByID(ctx, id, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.ShiftResponse{}, shift.ErrShiftNotFound
		}
		return shift.ShiftResponse{}, fmt.Errorf("failed to get shift by ID: %w", err)
	}

	return toShiftResponse(found), nil
}

// List implements shift.ShiftService.
func (s *ShiftServiceImpl) List(ctx context.Context) ([]shift.ShiftResponse, error) {
	companyID, err := claimsCompanyID(ctx)
	if err != nil {
		return nil, err
	}

	shifts, err := s.ShiftRepository.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}

	responses := make([]shift.ShiftResponse, 0, len(shifts))
	for _, item := range shifts {
		responses = append(responses, toShiftResponse(item))
	}
	return responses, nil
}

// Update implements shift.ShiftService.
func (s *ShiftServiceImpl) Update(ctx context.Context, req shift.UpdateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	companyID, err := claimsCompanyID(ctx)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	current, err := s.ShiftRepository.GetByID(ctx, req.ID, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.ShiftResponse{}, shift.ErrShiftNotFound
		}
		return shift.ShiftResponse{}, fmt.Errorf("failed to get shift by ID: %w", err)
	}

	if req.Name != nil {
		current.Name = *req.Name
	}
	if req.EntryTime != nil {
		current.EntryTime = *req.EntryTime
	}
	if req.ExitTime != nil {
		current.ExitTime = *req.ExitTime
	}
	if req.BreakStartTime != nil {
		current.BreakStartTime = req.BreakStartTime
	}
	if req.BreakEndTime != nil {
		current.BreakEndTime = req.BreakEndTime
	}

	if err := s.ShiftRepository.Update(ctx, current); err != nil {
		return shift.ShiftResponse{}, fmt.Errorf("failed to update shift: %w", err)
	}

	return toShiftResponse(current), nil
}

// Delete implements shift.ShiftService.
func (s *ShiftServiceImpl) Delete(ctx context.Context, id string) error {
	companyID, err := claimsCompanyID(ctx)
	if err != nil {
		return err
	}

	if err := s.ShiftRepository.Delete(ctx, id, companyID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.ErrShiftNotFound
		}
		return fmt.Errorf("failed to delete shift: %w", err)
	}
	return nil
}

// ActiveForEmployee implements shift.ShiftService.
func (s *ShiftServiceImpl) ActiveForEmployee(ctx context.Context, employeeID string) ([]shift.ShiftResponse, error) {
	companyID, err := claimsCompanyID(ctx)
	if err != nil {
		return nil, err
	}

	shifts, err := s.ShiftRepository.ListByEmployee(ctx, employeeID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts by employee: %w", err)
	}

	active := ActiveShifts(shifts, time.Now())
	responses := make([]shift.ShiftResponse, 0, len(active))
	for _, item := range active {
		responses = append(responses, toShiftResponse(item))
	}
	return responses, nil
}

func toShiftResponse(s shift.Shift) shift.ShiftResponse {
	return shift.ShiftResponse{
		ID:             s.ID,
		Name:           s.Name,
		EntryTime:      s.EntryTime,
		ExitTime:       s.ExitTime,
		BreakStartTime: s.BreakStartTime,
		BreakEndTime:   s.BreakEndTime,
		Overnight:      s.IsOvernight(),
		CreatedAt:      s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      s.UpdatedAt.Format(time.RFC3339),
	}
}
