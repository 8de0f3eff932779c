package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pontocerto/pontocerto-backend-go/internal/domain/employee"
	"github.com/pontocerto/pontocerto-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `id, company_id, full_name, cpf, email, role, pin, work_days, reference_embedding, photo_url, created_at, updated_at`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	var embedding []float64
	err := row.Scan(
		&e.ID, &e.CompanyID, &e.FullName, &e.CPF, &e.Email, &e.Role, &e.PIN,
		&e.WorkDays, &embedding, &e.PhotoURL, &e.CreatedAt, &e.UpdatedAt,
	)
	e.ReferenceEmbedding = embedding
	return e, err
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepository) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (id, company_id, full_name, cpf, email, role, pin, work_days)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		e.ID, e.CompanyID, e.FullName, e.CPF, e.Email, e.Role, e.PIN, e.WorkDays,
	).Scan(&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	if err := r.replaceAssignments(ctx, e.ID, e.LocationIDs, e.ShiftIDs); err != nil {
		return employee.Employee{}, err
	}

	return e, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1 AND company_id = $2`

	e, err := scanEmployee(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		return employee.Employee{}, err
	}

	if err := r.loadAssignments(ctx, &e); err != nil {
		return employee.Employee{}, err
	}

	return e, nil
}

// GetByCPF implements employee.EmployeeRepository.
func (r *employeeRepository) GetByCPF(ctx context.Context, cpf string, companyID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE cpf = $1 AND company_id = $2`

	e, err := scanEmployee(q.QueryRow(ctx, query, cpf, companyID))
	if err != nil {
		return employee.Employee{}, err
	}

	if err := r.loadAssignments(ctx, &e); err != nil {
		return employee.Employee{}, err
	}

	return e, nil
}

// ListByCompany implements employee.EmployeeRepository.
func (r *employeeRepository) ListByCompany(ctx context.Context, companyID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE company_id = $1 ORDER BY full_name`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range employees {
		if err := r.loadAssignments(ctx, &employees[i]); err != nil {
			return nil, err
		}
	}

	return employees, nil
}

// CountByCompany implements employee.EmployeeRepository.
func (r *employeeRepository) CountByCompany(ctx context.Context, companyID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE company_id = $1`, companyID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count employees: %w", err)
	}

	return count, nil
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepository) Update(ctx context.Context, e employee.Employee) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET full_name = $3, cpf = $4, email = $5, role = $6, pin = $7, work_days = $8, updated_at = NOW()
		WHERE id = $1 AND company_id = $2
	`

	tag, err := q.Exec(ctx, query,
		e.ID, e.CompanyID, e.FullName, e.CPF, e.Email, e.Role, e.PIN, e.WorkDays,
	)
	if err != nil {
		return fmt.Errorf("failed to update employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return r.replaceAssignments(ctx, e.ID, e.LocationIDs, e.ShiftIDs)
}

// SetReferenceFace implements employee.EmployeeRepository. The WHERE
// clause makes the no-photo to has-photo transition one-way: a second
// enrollment attempt affects zero rows.
func (r *employeeRepository) SetReferenceFace(ctx context.Context, id string, companyID string, embedding []float64, photoURL string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET reference_embedding = $3, photo_url = $4, updated_at = NOW()
		WHERE id = $1 AND company_id = $2 AND photo_url IS NULL
	`

	tag, err := q.Exec(ctx, query, id, companyID, embedding, photoURL)
	if err != nil {
		return fmt.Errorf("failed to set reference face: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrAlreadyEnrolled
	}

	return nil
}

// Delete implements employee.EmployeeRepository. Attendance records and
// assignment rows cascade via foreign keys.
func (r *employeeRepository) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM employees WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

func (r *employeeRepository) loadAssignments(ctx context.Context, e *employee.Employee) error {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT location_id FROM employee_locations WHERE employee_id = $1`, e.ID)
	if err != nil {
		return fmt.Errorf("failed to load location assignments: %w", err)
	}
	defer rows.Close()

	e.LocationIDs = nil
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return err
		}
		e.LocationIDs = append(e.LocationIDs, id)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	rows.Close()

	rows, err = q.Query(ctx, `SELECT shift_id FROM employee_shifts WHERE employee_id = $1`, e.ID)
	if err != nil {
		return fmt.Errorf("failed to load shift assignments: %w", err)
	}
	defer rows.Close()

	e.ShiftIDs = nil
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return err
		}
		e.ShiftIDs = append(e.ShiftIDs, id)
	}

	return rows.Err()
}

func (r *employeeRepository) replaceAssignments(ctx context.Context, employeeID string, locationIDs, shiftIDs []string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM employee_locations WHERE employee_id = $1`, employeeID); err != nil {
		return fmt.Errorf("failed to clear location assignments: %w", err)
	}
	for _, locationID := range locationIDs {
		if _, err := q.Exec(ctx,
			`INSERT INTO employee_locations (employee_id, location_id) VALUES ($1, $2)`,
			employeeID, locationID,
		); err != nil {
			return fmt.Errorf("failed to assign location: %w", err)
		}
	}

	if _, err := q.Exec(ctx, `DELETE FROM employee_shifts WHERE employee_id = $1`, employeeID); err != nil {
		return fmt.Errorf("failed to clear shift assignments: %w", err)
	}
	for _, shiftID := range shiftIDs {
		if _, err := q.Exec(ctx,
			`INSERT INTO employee_shifts (employee_id, shift_id) VALUES ($1, $2)`,
			employeeID, shiftID,
		); err != nil {
			return fmt.Errorf("failed to assign shift: %w", err)
		}
	}

	return nil
}
