package response

import (
	"errors"
	"net/http"

	"github.com/pontocerto/pontocerto-backend-go/internal/domain/attendance"
	"github.com/pontocerto/pontocerto-backend-go/internal/domain/auth"
	"github.com/pontocerto/pontocerto-backend-go/internal/domain/billing"
	"github.com/pontocerto/pontocerto-backend-go/internal/domain/company"
	"github.com/pontocerto/pontocerto-backend-go/internal/domain/employee"
	"github.com/pontocerto/pontocerto-backend-go/internal/domain/location"
	"github.com/pontocerto/pontocerto-backend-go/internal/domain/shift"
	"github.com/pontocerto/pontocerto-backend-go/internal/domain/user"
	"github.com/pontocerto/pontocerto-backend-go/internal/domain/verification"
	"github.com/pontocerto/pontocerto-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, auth.ErrCompanyNotFound), errors.Is(err, company.ErrCompanyNotFound):
		NotFound(w, "Company not found")
	case errors.Is(err, auth.ErrFaceNotRecognized):
		UnprocessableEntity(w, "FACE_NOT_RECOGNIZED", "No enrolled employee matches the submitted face")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrCPFExists):
		Conflict(w, "CPF already registered in this company")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered in this company")
	case errors.Is(err, employee.ErrAlreadyEnrolled):
		Conflict(w, "Employee already has an enrolled face photo")
	case errors.Is(err, employee.ErrEnrollmentExpired):
		Unauthorized(w, "Enrollment link is invalid or has expired")
	case errors.Is(err, employee.ErrEmployeeLimit):
		PaymentRequired(w, "Employee limit reached for current subscription")
	case errors.Is(err, employee.ErrNotEnrolled):
		UnprocessableEntity(w, "NOT_ENROLLED", "Employee has not enrolled a face photo yet")
	case errors.Is(err, employee.ErrInvalidCredentials):
		Unauthorized(w, err.Error())

	// Location and shift domain errors
	case errors.Is(err, location.ErrLocationNotFound):
		NotFound(w, "Location not found")
	case errors.Is(err, location.ErrLocationInUse):
		Conflict(w, "Location is still assigned to employees")
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, shift.ErrShiftInUse):
		Conflict(w, "Shift is still assigned to employees")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrMissingLocation):
		BadRequest(w, "No location selected for attendance", nil)
	case errors.Is(err, attendance.ErrMissingShift):
		BadRequest(w, "No shift selected for attendance", nil)
	case errors.Is(err, attendance.ErrPositionUnavailable):
		UnprocessableEntity(w, "POSITION_UNAVAILABLE", "Could not obtain a position fix")
	case errors.Is(err, attendance.ErrNotIdentified):
		Forbidden(w, "Employee identity not established for this session")
	case errors.Is(err, attendance.ErrOutsideRadius):
		UnprocessableEntity(w, "OUTSIDE_RADIUS", "You are outside the allowed radius")
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")

	// Verification domain errors
	case errors.Is(err, verification.ErrSessionNotFound):
		NotFound(w, "Verification session not found")
	case errors.Is(err, verification.ErrSessionActive):
		Conflict(w, "A verification flow is already active for this employee")
	case errors.Is(err, verification.ErrIdentityMismatch):
		Forbidden(w, "Detected face does not match the identified employee")

	// Billing domain errors
	case errors.Is(err, billing.ErrChargeNotFound):
		NotFound(w, "Charge not found")
	case errors.Is(err, billing.ErrChargeProcessed):
		Conflict(w, "Charge already reached a terminal status")
	case errors.Is(err, billing.ErrProvider):
		BadGateway(w, "Payment provider request failed")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
