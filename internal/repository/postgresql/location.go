package postgresql

import (
	"context"
	"fmt"

	"github.com/pontocerto/pontocerto-backend-go/internal/domain/location"
	"github.com/pontocerto/pontocerto-backend-go/internal/pkg/database"
)

type locationRepository struct {
	db *database.DB
}

func NewLocationRepository(db *database.DB) location.LocationRepository {
	return &locationRepository{db: db}
}

// Create implements location.LocationRepository.
func (r *locationRepository) Create(ctx context.Context, l location.Location) (location.Location, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO locations (id, company_id, name, address, latitude, longitude, radius_meters)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		l.ID, l.CompanyID, l.Name, l.Address,
		l.Coordinate.Latitude, l.Coordinate.Longitude, l.RadiusMeters,
	).Scan(&l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return location.Location{}, fmt.Errorf("failed to create location: %w", err)
	}

	return l, nil
}

// GetByID implements location.LocationRepository.
func (r *locationRepository) GetByID(ctx context.Context, id string, companyID string) (location.Location, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name, address, latitude, longitude, radius_meters, created_at, updated_at
		FROM locations
		WHERE id = $1 AND company_id = $2
	`

	var l location.Location
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&l.ID, &l.CompanyID, &l.Name, &l.Address,
		&l.Coordinate.Latitude, &l.Coordinate.Longitude, &l.RadiusMeters,
		&l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return location.Location{}, err
	}

	return l, nil
}

// ListByCompany implements location.LocationRepository.
func (r *locationRepository) ListByCompany(ctx context.Context, companyID string) ([]location.Location, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name, address, latitude, longitude, radius_meters, created_at, updated_at
		FROM locations
		WHERE company_id = $1
		ORDER BY name
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	defer rows.Close()

	var locations []location.Location
	for rows.Next() {
		var l location.Location
		if err := rows.Scan(
			&l.ID, &l.CompanyID, &l.Name, &l.Address,
			&l.Coordinate.Latitude, &l.Coordinate.Longitude, &l.RadiusMeters,
			&l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		locations = append(locations, l)
	}

	return locations, rows.Err()
}

// ListByEmployee implements location.LocationRepository.
func (r *locationRepository) ListByEmployee(ctx context.Context, employeeID string, companyID string) ([]location.Location, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT l.id, l.company_id, l.name, l.address, l.latitude, l.longitude, l.radius_meters, l.created_at, l.updated_at
		FROM locations l
		JOIN employee_locations el ON el.location_id = l.id
		WHERE el.employee_id = $1 AND l.company_id = $2
		ORDER BY l.name
	`

	rows, err := q.Query(ctx, query, employeeID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations by employee: %w", err)
	}
	defer rows.Close()

	var locations []location.Location
	for rows.Next() {
		var l location.Location
		if err := rows.Scan(
			&l.ID, &l.CompanyID, &l.Name, &l.Address,
			&l.Coordinate.Latitude, &l.Coordinate.Longitude, &l.RadiusMeters,
			&l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		locations = append(locations, l)
	}

	return locations, rows.Err()
}

// Update implements location.LocationRepository.
func (r *locationRepository) Update(ctx context.Context, l location.Location) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE locations
		SET name = $3, address = $4, latitude = $5, longitude = $6, radius_meters = $7, updated_at = NOW()
		WHERE id = $1 AND company_id = $2
	`

	tag, err := q.Exec(ctx, query,
		l.ID, l.CompanyID, l.Name, l.Address,
		l.Coordinate.Latitude, l.Coordinate.Longitude, l.RadiusMeters,
	)
	if err != nil {
		return fmt.Errorf("failed to update location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return location.ErrLocationNotFound
	}

	return nil
}

// Delete implements location.LocationRepository.
func (r *locationRepository) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM locations WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return location.ErrLocationNotFound
	}

	return nil
}
