package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/pontocerto/pontocerto-backend-go/internal/domain/auth"
	"github.com/pontocerto/pontocerto-backend-go/internal/domain/user"
	"github.com/pontocerto/pontocerto-backend-go/internal/handler/http/response"
)

// AdminOnly allows company owner and admin accounts through.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		role, ok := claims["role"].(string)
		if !ok || (role != string(user.RoleOwner) && role != string(user.RoleAdmin)) {
			response.Forbidden(w, "Admin privilege required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// EmployeeOnly requires an identified employee session: a token carrying
// the employee_id claim set by face identification or the PIN fallback.
func EmployeeOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		employeeID, ok := claims["employee_id"].(string)
		if !ok || employeeID == "" {
			response.Forbidden(w, "Employee session required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
