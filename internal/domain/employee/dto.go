package employee

import (
	"mime/multipart"

	"github.com/pontocerto/pontocerto-backend-go/internal/pkg/face"
	"github.com/pontocerto/pontocerto-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	FullName    string   `json:"full_name"`
	CPF         string   `json:"cpf"`
	Email       string   `json:"email"`
	Role        string   `json:"role"`
	PIN         string   `json:"pin"`
	WorkDays    []int32  `json:"work_days"`
	LocationIDs []string `json:"location_ids"`
	ShiftIDs    []string `json:"shift_ids"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name is required",
		})
	}

	if !validator.IsValidCPF(r.CPF) {
		errs = append(errs, validator.ValidationError{
			Field:   "cpf",
			Message: "cpf must be 11 digits",
		})
	}

	if !validator.IsEmpty(r.Email) && !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is invalid",
		})
	}

	if len(r.PIN) < 4 || len(r.PIN) > 6 || !validator.IsNumeric(r.PIN) {
		errs = append(errs, validator.ValidationError{
			Field:   "pin",
			Message: "pin must be 4 to 6 digits",
		})
	}

	for _, d := range r.WorkDays {
		if d < 0 || d > 6 {
			errs = append(errs, validator.ValidationError{
				Field:   "work_days",
				Message: "work_days entries must be between 0 (Sunday) and 6 (Saturday)",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateEmployeeRequest struct {
	ID          string    `json:"-"`
	FullName    *string   `json:"full_name,omitempty"`
	Email       *string   `json:"email,omitempty"`
	Role        *string   `json:"role,omitempty"`
	PIN         *string   `json:"pin,omitempty"`
	WorkDays    *[]int32  `json:"work_days,omitempty"`
	LocationIDs *[]string `json:"location_ids,omitempty"`
	ShiftIDs    *[]string `json:"shift_ids,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FullName != nil && validator.IsEmpty(*r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name must not be empty",
		})
	}

	if r.Email != nil && !validator.IsEmpty(*r.Email) && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is invalid",
		})
	}

	if r.PIN != nil && (len(*r.PIN) < 4 || len(*r.PIN) > 6 || !validator.IsNumeric(*r.PIN)) {
		errs = append(errs, validator.ValidationError{
			Field:   "pin",
			Message: "pin must be 4 to 6 digits",
		})
	}

	if r.WorkDays != nil {
		for _, d := range *r.WorkDays {
			if d < 0 || d > 6 {
				errs = append(errs, validator.ValidationError{
					Field:   "work_days",
					Message: "work_days entries must be between 0 (Sunday) and 6 (Saturday)",
				})
				break
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// EnrollFaceRequest carries the one-time facial enrollment: the token from
// the self-service link, the embedding extracted client-side, and the
// original photo for auditing.
type EnrollFaceRequest struct {
	Token      string                `json:"token"`
	Embedding  face.Embedding        `json:"embedding"`
	File       multipart.File        `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`
}

func (r *EnrollFaceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Token) {
		errs = append(errs, validator.ValidationError{
			Field:   "token",
			Message: "token is required",
		})
	}

	if len(r.Embedding) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "embedding",
			Message: "face embedding is required",
		})
	}

	if r.FileHeader == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "photo",
			Message: "enrollment photo is required",
		})
	} else if r.FileHeader.Size > 10<<20 {
		errs = append(errs, validator.ValidationError{
			Field:   "photo",
			Message: "enrollment photo size must not exceed 10MB",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EmployeeResponse struct {
	ID          string   `json:"id"`
	FullName    string   `json:"full_name"`
	CPF         string   `json:"cpf"`
	Email       string   `json:"email,omitempty"`
	Role        string   `json:"role,omitempty"`
	WorkDays    []int32  `json:"work_days"`
	LocationIDs []string `json:"location_ids"`
	ShiftIDs    []string `json:"shift_ids"`
	Enrolled    bool     `json:"enrolled"`
	PhotoURL    *string  `json:"photo_url,omitempty"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

type EnrollmentLinkResponse struct {
	EmployeeID string `json:"employee_id"`
	Link       string `json:"link"`
	ExpiresAt  string `json:"expires_at"`
}
