package employee

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/pontocerto/pontocerto-backend-go/internal/config"
	"github.com/pontocerto/pontocerto-backend-go/internal/domain/company"
	"github.com/pontocerto/pontocerto-backend-go/internal/domain/employee"
	"github.com/pontocerto/pontocerto-backend-go/internal/pkg/email"
	"github.com/pontocerto/pontocerto-backend-go/internal/pkg/storage"
	"github.com/pontocerto/pontocerto-backend-go/internal/pkg/validator"
	"github.com/pontocerto/pontocerto-backend-go/internal/repository/redisstore"
)

type EmployeeServiceImpl struct {
	employee.EmployeeRepository
	companyRepo   company.CompanyRepository
	tokenStore    *redisstore.EnrollmentTokenStore
	emailService  email.EmailService
	fileStorage   storage.FileStorage
	enrollmentCfg config.EnrollmentConfig
}

func NewEmployeeService(
	repo employee.EmployeeRepository,
	companyRepo company.CompanyRepository,
	tokenStore *redisstore.EnrollmentTokenStore,
	emailService email.EmailService,
	fileStorage storage.FileStorage,
	enrollmentCfg config.EnrollmentConfig,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		EmployeeRepository: repo,
		companyRepo:        companyRepo,
		tokenStore:         tokenStore,
		emailService:       emailService,
		fileStorage:        fileStorage,
		enrollmentCfg:      enrollmentCfg,
	}
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

// Create implements employee.EmployeeService. The subscription slot
// limit is checked before anything is written.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	companyID, err := claimsCompanyID(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	tenant, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to get company: %w", err)
	}

	count, err := s.EmployeeRepository.CountByCompany(ctx, companyID)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to count employees: %w", err)
	}
	if count >= tenant.EmployeeLimit {
		return employee.EmployeeResponse{}, employee.ErrEmployeeLimit
	}

	cpf := validator.NormalizeDigits(req.CPF)
	_, err = s.EmployeeRepository.GetByCPF(ctx, cpf, companyID)
	if err == nil {
		return employee.EmployeeResponse{}, employee.ErrCPFExists
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to check existing cpf: %w", err)
	}

	pinHash, err := bcrypt.GenerateFromPassword([]byte(req.PIN), bcrypt.DefaultCost)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to hash pin: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to generate employee ID: %w", err)
	}

	created, err := s.EmployeeRepository.Create(ctx, employee.Employee{
		ID:          id.String(),
		CompanyID:   companyID,
		FullName:    req.FullName,
		CPF:         cpf,
		Email:       req.Email,
		Role:        req.Role,
		PIN:         string(pinHash),
		WorkDays:    req.WorkDays,
		LocationIDs: req.LocationIDs,
		ShiftIDs:    req.ShiftIDs,
	})
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return toEmployeeResponse(created), nil
}

// Get implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	companyID, err := claimsCompanyID(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	found, err := s.EmployeeRepository.GetByID(ctx, id, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to get employee by ID: %w", err)
	}

	return toEmployeeResponse(found), nil
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context) ([]employee.EmployeeResponse, error) {
	companyID, err := claimsCompanyID(ctx)
	if err != nil {
		return nil, err
	}

	employees, err := s.EmployeeRepository.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, toEmployeeResponse(emp))
	}
	return responses, nil
}

// Update implements employee.EmployeeService. CPF is immutable; the
// reference face only changes through the enrollment flow.
func (s *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	companyID, err := claimsCompanyID(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	current, err := s.EmployeeRepository.GetByID(ctx, req.ID, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to get employee by ID: %w", err)
	}

	if req.FullName != nil {
		current.FullName = *req.FullName
	}
	if req.Email != nil {
		current.Email = *req.Email
	}
	if req.Role != nil {
		current.Role = *req.Role
	}
	if req.PIN != nil {
		pinHash, err := bcrypt.GenerateFromPassword([]byte(*req.PIN), bcrypt.DefaultCost)
		if err != nil {
			return employee.EmployeeResponse{}, fmt.Errorf("failed to hash pin: %w", err)
		}
		current.PIN = string(pinHash)
	}
	if req.WorkDays != nil {
		current.WorkDays = *req.WorkDays
	}
	if req.LocationIDs != nil {
		current.LocationIDs = *req.LocationIDs
	}
	if req.ShiftIDs != nil {
		current.ShiftIDs = *req.ShiftIDs
	}

	if err := s.EmployeeRepository.Update(ctx, current); err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to update employee: %w", err)
	}

	return toEmployeeResponse(current), nil
}

// Delete implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Delete(ctx context.Context, id string) error {
	companyID, err := claimsCompanyID(ctx)
	if err != nil {
		return err
	}

	if err := s.EmployeeRepository.Delete(ctx, id, companyID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	return nil
}

// GenerateEnrollmentLink implements employee.EmployeeService. The email
// is best effort; the link is returned to the admin either way.
func (s *EmployeeServiceImpl) GenerateEnrollmentLink(ctx context.Context, employeeID string) (employee.EnrollmentLinkResponse, error) {
	companyID, err := claimsCompanyID(ctx)
	if err != nil {
		return employee.EnrollmentLinkResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.EnrollmentLinkResponse{}, employee.ErrEmployeeNotFound
		}
		return employee.EnrollmentLinkResponse{}, fmt.Errorf("failed to get employee by ID: %w", err)
	}
	if emp.Enrolled() {
		return employee.EnrollmentLinkResponse{}, employee.ErrAlreadyEnrolled
	}

	token, expiresAt, err := s.tokenStore.Issue(ctx, emp.ID, companyID)
	if err != nil {
		return employee.EnrollmentLinkResponse{}, fmt.Errorf("failed to issue enrollment token: %w", err)
	}

	link := fmt.Sprintf("%s?token=%s", s.enrollmentCfg.BaseURL, token)

	if emp.Email != "" {
		tenant, err := s.companyRepo.GetByID(ctx, companyID)
		if err != nil {
			return employee.EnrollmentLinkResponse{}, fmt.Errorf("failed to get company: %w", err)
		}
		if err := s.emailService.SendEnrollmentLink(emp.Email, emp.FullName, tenant.Name, link, expiresAt.Format("02/01/2006 15:04")); err != nil {
			slog.Warn("failed to send enrollment email",
				"employee_id", emp.ID,
				"error", err,
			)
		}
	}

	return employee.EnrollmentLinkResponse{
		EmployeeID: emp.ID,
		Link:       link,
		ExpiresAt:  expiresAt.Format(time.RFC3339),
	}, nil
}

// EnrollFace implements employee.EmployeeService. Consuming the token
// and the photo_url guard in the repository together make enrollment a
// one-time transition.
func (s *EmployeeServiceImpl) EnrollFace(ctx context.Context, req employee.EnrollFaceRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	employeeID, companyID, err := s.tokenStore.Consume(ctx, req.Token)
	if err != nil {
		if errors.Is(err, redisstore.ErrTokenNotFound) {
			return employee.EmployeeResponse{}, employee.ErrEnrollmentExpired
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to consume enrollment token: %w", err)
	}

	photo, err := io.ReadAll(req.File)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to read enrollment photo: %w", err)
	}

	path := fmt.Sprintf("enrollment/%s/%s.jpg", companyID, employeeID)
	storedPath, err := s.fileStorage.Upload(ctx, bytes.NewReader(photo), path, "image/jpeg")
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to upload enrollment photo: %w", err)
	}
	photoURL, err := s.fileStorage.GetURL(ctx, storedPath, 0)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to resolve photo URL: %w", err)
	}

	if err := s.EmployeeRepository.SetReferenceFace(ctx, employeeID, companyID, req.Embedding, photoURL); err != nil {
		return employee.EmployeeResponse{}, err
	}

	enrolled, err := s.EmployeeRepository.GetByID(ctx, employeeID, companyID)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to get employee by ID: %w", err)
	}

	return toEmployeeResponse(enrolled), nil
}

func toEmployeeResponse(e employee.Employee) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		ID:          e.ID,
		FullName:    e.FullName,
		CPF:         e.CPF,
		Email:       e.Email,
		Role:        e.Role,
		WorkDays:    e.WorkDays,
		LocationIDs: e.LocationIDs,
		ShiftIDs:    e.ShiftIDs,
		Enrolled:    e.Enrolled(),
		PhotoURL:    e.PhotoURL,
		CreatedAt:   e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   e.UpdatedAt.Format(time.RFC3339),
	}
}
