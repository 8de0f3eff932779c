package auth

import (
	"github.com/pontocerto/pontocerto-backend-go/internal/pkg/face"
	"github.com/pontocerto/pontocerto-backend-go/internal/pkg/validator"
)

type RegisterRequest struct {
	CompanyName string `json:"company_name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

func (r *RegisterRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CompanyName) {
		errs = append(errs, validator.ValidationError{
			Field:   "company_name",
			Message: "company_name is required",
		})
	}

	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is invalid",
		})
	}

	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 8 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is invalid",
		})
	}

	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// IdentifyRequest carries one probe embedding for open-set employee
// identification. A miss is not a failure; the terminal keeps sampling.
type IdentifyRequest struct {
	CompanyID string         `json:"company_id"`
	Embedding face.Embedding `json:"embedding"`
}

func (r *IdentifyRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CompanyID) {
		errs = append(errs, validator.ValidationError{
			Field:   "company_id",
			Message: "company_id is required",
		})
	}

	if len(r.Embedding) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "embedding",
			Message: "embedding is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// PINLoginRequest is the fallback employee login when the camera is
// unavailable.
type PINLoginRequest struct {
	CompanyID string `json:"company_id"`
	CPF       string `json:"cpf"`
	PIN       string `json:"pin"`
}

func (r *PINLoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CompanyID) {
		errs = append(errs, validator.ValidationError{
			Field:   "company_id",
			Message: "company_id is required",
		})
	}

	if !validator.IsValidCPF(r.CPF) {
		errs = append(errs, validator.ValidationError{
			Field:   "cpf",
			Message: "cpf must be 11 digits",
		})
	}

	if validator.IsEmpty(r.PIN) {
		errs = append(errs, validator.ValidationError{
			Field:   "pin",
			Message: "pin is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresAt    int64  `json:"expires_at"`
}

type IdentifyResponse struct {
	EmployeeID    string  `json:"employee_id"`
	EmployeeName  string  `json:"employee_name"`
	MatchDistance float64 `json:"match_distance"`
	Token         TokenResponse
}

type RegisterResponse struct {
	CompanyID string        `json:"company_id"`
	UserID    string        `json:"user_id"`
	Token     TokenResponse `json:"token"`
}
