package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/pontocerto/pontocerto-backend-go/internal/domain/attendance"
	"github.com/pontocerto/pontocerto-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.RecordRepository {
	return &attendanceRepository{db: db}
}

const recordColumns = `
	r.id, r.employee_id, r.company_id, r.location_id, l.name,
	r.timestamp, r.type, r.latitude, r.longitude, r.distance_meters,
	r.photo_url, r.verified, r.score, r.punctuality_status, r.punctuality_message,
	r.created_at, e.full_name`

const recordJoins = `
	FROM attendance_records r
	JOIN locations l ON l.id = r.location_id
	JOIN employees e ON e.id = r.employee_id`

func scanRecord(row interface{ Scan(dest ...any) error }) (attendance.Record, error) {
	var rec attendance.Record
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.CompanyID, &rec.LocationID, &rec.LocationName,
		&rec.Timestamp, &rec.Type, &rec.Latitude, &rec.Longitude, &rec.DistanceMeters,
		&rec.PhotoURL, &rec.Verified, &rec.Score, &rec.PunctualityStatus, &rec.PunctualityMessage,
		&rec.CreatedAt, &rec.EmployeeName,
	)
	return rec, err
}

// Create implements attendance.RecordRepository. Inserts only; records
// are never updated or deleted through the normal flow.
func (r *attendanceRepository) Create(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records (
			id, employee_id, company_id, location_id, timestamp, type,
			latitude, longitude, distance_meters, photo_url, verified,
			score, punctuality_status, punctuality_message
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
		) RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		rec.ID,
		rec.EmployeeID,
		rec.CompanyID,
		rec.LocationID,
		rec.Timestamp,
		rec.Type,
		rec.Latitude,
		rec.Longitude,
		rec.DistanceMeters,
		rec.PhotoURL,
		rec.Verified,
		rec.Score,
		rec.PunctualityStatus,
		rec.PunctualityMessage,
	).Scan(&rec.CreatedAt)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return rec, nil
}

// GetByID implements attendance.RecordRepository.
func (r *attendanceRepository) GetByID(ctx context.Context, id string, companyID string) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + recordColumns + recordJoins + `
		WHERE r.id = $1 AND r.company_id = $2`

	return scanRecord(q.QueryRow(ctx, query, id, companyID))
}

// ListByEmployeeAndDate implements attendance.RecordRepository.
func (r *attendanceRepository) ListByEmployeeAndDate(ctx context.Context, employeeID string, date string, companyID string) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + recordColumns + recordJoins + `
		WHERE r.employee_id = $1
		  AND DATE(r.timestamp) = $2
		  AND r.company_id = $3
		ORDER BY r.timestamp DESC`

	rows, err := q.Query(ctx, query, employeeID, date, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance by date: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// ListByEmployeeRange implements attendance.RecordRepository.
func (r *attendanceRepository) ListByEmployeeRange(ctx context.Context, employeeID string, startDate, endDate string, companyID string) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + recordColumns + recordJoins + `
		WHERE r.employee_id = $1
		  AND DATE(r.timestamp) BETWEEN $2 AND $3
		  AND r.company_id = $4
		ORDER BY r.timestamp ASC`

	rows, err := q.Query(ctx, query, employeeID, startDate, endDate, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance by range: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// List implements attendance.RecordRepository.
func (r *attendanceRepository) List(ctx context.Context, filter attendance.Filter, companyID string) ([]attendance.Record, int64, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []interface{}

	conditions = append(conditions, fmt.Sprintf("r.company_id = $%d", len(args)+1))
	args = append(args, companyID)

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("r.employee_id = $%d", len(args)+1))
		args = append(args, *filter.EmployeeID)
	}
	if filter.LocationID != nil && *filter.LocationID != "" {
		conditions = append(conditions, fmt.Sprintf("r.location_id = $%d", len(args)+1))
		args = append(args, *filter.LocationID)
	}
	if filter.Type != nil && *filter.Type != "" {
		conditions = append(conditions, fmt.Sprintf("r.type = $%d", len(args)+1))
		args = append(args, *filter.Type)
	}
	if filter.Date != nil && *filter.Date != "" {
		conditions = append(conditions, fmt.Sprintf("DATE(r.timestamp) = $%d", len(args)+1))
		args = append(args, *filter.Date)
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		conditions = append(conditions, fmt.Sprintf("DATE(r.timestamp) >= $%d", len(args)+1))
		args = append(args, *filter.StartDate)
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		conditions = append(conditions, fmt.Sprintf("DATE(r.timestamp) <= $%d", len(args)+1))
		args = append(args, *filter.EndDate)
	}

	whereClause := "WHERE " + strings.Join(conditions, " AND ")

	var totalCount int64
	countQuery := `SELECT COUNT(*)` + recordJoins + ` ` + whereClause
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance records: %w", err)
	}

	// Sort fields are validated upstream; never interpolate raw input.
	sortColumn := map[string]string{
		"timestamp":     "r.timestamp",
		"employee_name": "e.full_name",
		"type":          "r.type",
		"score":         "r.score",
	}[filter.SortBy]
	if sortColumn == "" {
		sortColumn = "r.timestamp"
	}
	sortOrder := "DESC"
	if strings.EqualFold(filter.SortOrder, "asc") {
		sortOrder = "ASC"
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`SELECT%s%s
		%s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d`,
		recordColumns, recordJoins, whereClause, sortColumn, sortOrder, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}

	return records, totalCount, rows.Err()
}
