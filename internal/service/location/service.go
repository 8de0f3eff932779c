package location

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/pontocerto/pontocerto-backend-go/internal/domain/location"
	"github.com/pontocerto/pontocerto-backend-go/internal/pkg/geo"
)

type LocationServiceImpl struct {
	location.LocationRepository
}

func NewLocationService(repo location.LocationRepository) location.LocationService {
	return &LocationServiceImpl{LocationRepository: repo}
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

// Create implements location.LocationService.
func (s *LocationServiceImpl) Create(ctx context.Context, req location.CreateLocationRequest) (location.LocationResponse, error) {
	if err := req.Validate(); err != nil {
		return location.LocationResponse{}, err
	}

	companyID, _, err := claims(ctx)
	if err != nil {
		return location.LocationResponse{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return location.LocationResponse{}, fmt.Errorf("failed to generate location ID: %w", err)
	}

	created, err := s.LocationRepository.Create(ctx, location.Location{
		ID:        id.String(),
		CompanyID: companyID,
		Name:      req.Name,
		Address:   req.Address,
		Coordinate: geo.Coordinate{
			Latitude:  req.Latitude,
			Longitude: req.Longitude,
		},
		RadiusMeters: req.RadiusMeters,
	})
	if err != nil {
		return location.LocationResponse{}, fmt.Errorf("failed to create location: %w", err)
	}

	return toLocationResponse(created), nil
}

// Get implements location.LocationService.
func (s *LocationServiceImpl) Get(ctx context.Context, id string) (location.LocationResponse, error) {
	companyID, _, err := claims(ctx)
	if err != nil {
		return location.LocationResponse{}, err
	}

	found, err := s.LocationRepository.GetByID(ctx, id, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return location.LocationResponse{}, location.ErrLocationNotFound
		}
		return location.LocationResponse{}, fmt.Errorf("failed to get location by ID: %w", err)
	}

	return toLocationResponse(found), nil
}

// List implements location.LocationService.
func (s *LocationServiceImpl) List(ctx context.Context) ([]location.LocationResponse, error) {
	companyID, _, err := claims(ctx)
	if err != nil {
		return nil, err
	}

	locations, err := s.LocationRepository.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}

	return toLocationResponses(locations), nil
}

// ListMine implements location.LocationService. Employee-facing: only
// the work sites assigned to the caller.
func (s *LocationServiceImpl) ListMine(ctx context.Context) ([]location.LocationResponse, error) {
	companyID, employeeID, err := claims(ctx)
	if err != nil {
		return nil, err
	}
	if employeeID == "" {
		return []location.LocationResponse{}, nil
	}

	locations, err := s.LocationRepository.ListByEmployee(ctx, employeeID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations by employee: %w", err)
	}

	return toLocationResponses(locations), nil
}

// Update implements location.LocationService.
func (s *LocationServiceImpl) Update(ctx context.Context, req location.UpdateLocationRequest) (location.LocationResponse, error) {
	if err := req.Validate(); err != nil {
		return location.LocationResponse{}, err
	}

	companyID, _, err := claims(ctx)
	if err != nil {
		return location.LocationResponse{}, err
	}

	current, err := s.LocationRepository.GetByID(ctx, req.ID, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return location.LocationResponse{}, location.ErrLocationNotFound
		}
		return location.LocationResponse{}, fmt.Errorf("failed to get location by ID: %w", err)
	}

	if req.Name != nil {
		current.Name = *req.Name
	}
	if req.Address != nil {
		current.Address = *req.Address
	}
	if req.Latitude != nil {
		current.Coordinate.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		current.Coordinate.Longitude = *req.Longitude
	}
	if req.RadiusMeters != nil {
		current.RadiusMeters = *req.RadiusMeters
	}

	if err := s.LocationRepository.Update(ctx, current); err != nil {
		return location.LocationResponse{}, fmt.Errorf("failed to update location: %w", err)
	}

	return toLocationResponse(current), nil
}

// Delete implements location.LocationService.
func (s *LocationServiceImpl) Delete(ctx context.Context, id string) error {
	companyID, _, err := claims(ctx)
	if err != nil {
		return err
	}

	if err := s.LocationRepository.Delete(ctx, id, companyID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return location.ErrLocationNotFound
		}
		return fmt.Errorf("failed to delete location: %w", err)
	}
	return nil
}

func toLocationResponse(l location.Location) location.LocationResponse {
	return location.LocationResponse{
		ID:           l.ID,
		Name:         l.Name,
		Address:      l.Address,
		Latitude:     l.Coordinate.Latitude,
		Longitude:    l.Coordinate.Longitude,
		RadiusMeters: l.RadiusMeters,
		CreatedAt:    l.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    l.UpdatedAt.Format(time.RFC3339),
	}
}

func toLocationResponses(locations []location.Location) []location.LocationResponse {
	responses := make([]location.LocationResponse, 0, len(locations))
	for _, item := range locations {
		responses = append(responses, toLocationResponse(item))
	}
	return responses
}
