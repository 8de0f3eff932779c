package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/pontocerto/pontocerto-backend-go/internal/domain/auth"
	"github.com/pontocerto/pontocerto-backend-go/internal/domain/company"
	"github.com/pontocerto/pontocerto-backend-go/internal/domain/employee"
	"github.com/pontocerto/pontocerto-backend-go/internal/domain/user"
	"github.com/pontocerto/pontocerto-backend-go/internal/pkg/database"
	"github.com/pontocerto/pontocerto-backend-go/internal/pkg/face"
	"github.com/pontocerto/pontocerto-backend-go/internal/pkg/jwt"
	"github.com/pontocerto/pontocerto-backend-go/internal/pkg/validator"
	"github.com/pontocerto/pontocerto-backend-go/internal/repository/postgresql"
)

type AuthServiceImpl struct {
	db *database.DB
	user.UserRepository
	companyRepo  company.CompanyRepository
	employeeRepo employee.EmployeeRepository
	jwtService   jwt.Service
}

func NewAuthService(
	db *database.DB,
	userRepo user.UserRepository,
	companyRepo company.CompanyRepository,
	employeeRepo employee.EmployeeRepository,
	jwtService jwt.Service,
) auth.AuthService {
	return &AuthServiceImpl{
		db:             db,
		UserRepository: userRepo,
		companyRepo:    companyRepo,
		employeeRepo:   employeeRepo,
		jwtService:     jwtService,
	}
}

// Register implements auth.AuthService.
func (s *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.RegisterResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.RegisterResponse{}, err
	}

	_, err := s.UserRepository.GetByEmail(ctx, req.Email)
	if err == nil {
		return auth.RegisterResponse{}, user.ErrEmailExists
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return auth.RegisterResponse{}, fmt.Errorf("failed to check existing email: %w", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return auth.RegisterResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	companyID, err := uuid.NewV7()
	if err != nil {
		return auth.RegisterResponse{}, fmt.Errorf("failed to generate company ID: %w", err)
	}
	userID, err := uuid.NewV7()
	if err != nil {
		return auth.RegisterResponse{}, fmt.Errorf("failed to generate user ID: %w", err)
	}

	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if _, err := s.companyRepo.Create(txCtx, company.Company{
			ID:            companyID.String(),
			Name:          req.CompanyName,
			EmployeeLimit: company.DefaultEmployeeLimit,
		}); err != nil {
			return fmt.Errorf("failed to create company: %w", err)
		}

		if _, err := s.UserRepository.Create(txCtx, user.User{
			ID:           userID.String(),
			CompanyID:    companyID.String(),
			Email:        req.Email,
			PasswordHash: string(passwordHash),
			Role:         user.RoleOwner,
		}); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		return nil
	})
	if err != nil {
		return auth.RegisterResponse{}, err
	}

	token, err := s.adminTokens(userID.String(), req.Email, companyID.String(), user.RoleOwner)
	if err != nil {
		return auth.RegisterResponse{}, err
	}

	return auth.RegisterResponse{
		CompanyID: companyID.String(),
		UserID:    userID.String(),
		Token:     token,
	}, nil
}

// Login implements auth.AuthService.
func (s *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	account, err := s.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return s.adminTokens(account.ID, account.Email, account.CompanyID, account.Role)
}

// LoginWithGoogle implements auth.AuthService. The Google account must
// already be linked, or its verified email must match an existing user.
func (s *AuthServiceImpl) LoginWithGoogle(ctx context.Context, googleID string, email string) (auth.TokenResponse, error) {
	account, err := s.UserRepository.GetByGoogleID(ctx, googleID)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return auth.TokenResponse{}, fmt.Errorf("failed to get user by google ID: %w", err)
		}

		account, err = s.UserRepository.GetByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return auth.TokenResponse{}, auth.ErrUserNotFound
			}
			return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
		}

		account.GoogleID = &googleID
		if err := s.UserRepository.Update(ctx, account); err != nil {
			return auth.TokenResponse{}, fmt.Errorf("failed to link google account: %w", err)
		}
	}

	return s.adminTokens(account.ID, account.Email, account.CompanyID, account.Role)
}

// IdentifyEmployee implements auth.AuthService. Open-set scan across
// every enrolled employee of the company; a miss keeps the terminal
// sampling and is not an auth failure.
func (s *AuthServiceImpl) IdentifyEmployee(ctx context.Context, req auth.IdentifyRequest) (auth.IdentifyResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.IdentifyResponse{}, err
	}

	employees, err := s.employeeRepo.ListByCompany(ctx, req.CompanyID)
	if err != nil {
		return auth.IdentifyResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	candidates := make([]face.Candidate, 0, len(employees))
	byID := make(map[string]employee.Employee, len(employees))
	for _, emp := range employees {
		if !emp.Enrolled() {
			continue
		}
		candidates = append(candidates, face.Candidate{
			EmployeeID: emp.ID,
			Embedding:  emp.ReferenceEmbedding,
		})
		byID[emp.ID] = emp
	}

	employeeID, distance, found := face.Identify(req.Embedding, candidates)
	if !found {
		return auth.IdentifyResponse{}, auth.ErrFaceNotRecognized
	}

	matched := byID[employeeID]
	token, err := s.employeeTokens(matched)
	if err != nil {
		return auth.IdentifyResponse{}, err
	}

	return auth.IdentifyResponse{
		EmployeeID:    matched.ID,
		EmployeeName:  matched.FullName,
		MatchDistance: distance,
		Token:         token,
	}, nil
}

// LoginEmployeeWithPIN implements auth.AuthService.
func (s *AuthServiceImpl) LoginEmployeeWithPIN(ctx context.Context, req auth.PINLoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	emp, err := s.employeeRepo.GetByCPF(ctx, validator.NormalizeDigits(req.CPF), req.CompanyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.TokenResponse{}, employee.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get employee by cpf: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(emp.PIN), []byte(req.PIN)); err != nil {
		return auth.TokenResponse{}, employee.ErrInvalidCredentials
	}

	return s.employeeTokens(emp)
}

// Refresh implements auth.AuthService. Rotates the refresh token: the
// presented token is revoked once a new pair is issued.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (auth.TokenResponse, error) {
	if s.jwtService.IsTokenRevoked(refreshToken) {
		return auth.TokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	decoded, err := s.jwtService.JWTAuth().Decode(refreshToken)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	tokenType, ok := decoded.Get("type")
	if !ok || tokenType != "refresh" {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	if decoded.Expiration().Before(time.Now()) {
		return auth.TokenResponse{}, auth.ErrTokenExpired
	}

	userIDVal, ok := decoded.Get("user_id")
	if !ok {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}
	userID, ok := userIDVal.(string)
	if !ok || userID == "" {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	account, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.TokenResponse{}, auth.ErrUserNotFound
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	response, err := s.adminTokens(account.ID, account.Email, account.CompanyID, account.Role)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	s.jwtService.RevokeToken(refreshToken)

	return response, nil
}

// Logout implements auth.AuthService.
func (s *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken != "" {
		s.jwtService.RevokeToken(refreshToken)
	}
	return nil
}

func (s *AuthServiceImpl) adminTokens(userID, email, companyID string, role user.Role) (auth.TokenResponse, error) {
	accessToken, expiresAt, err := s.jwtService.GenerateAccessToken(userID, email, nil, &companyID, role)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, _, err := s.jwtService.GenerateRefreshToken(userID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return auth.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
	}, nil
}

func (s *AuthServiceImpl) employeeTokens(emp employee.Employee) (auth.TokenResponse, error) {
	accessToken, expiresAt, err := s.jwtService.GenerateAccessToken(emp.ID, emp.Email, &emp.ID, &emp.CompanyID, user.RoleEmployee)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	// Employee sessions are kiosk-bound and short-lived; no refresh
	// token is issued.
	return auth.TokenResponse{
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
	}, nil
}
