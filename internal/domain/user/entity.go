package user

import "time"

// User is a company admin account. Employees authenticate separately,
// through facial identification or CPF + PIN.
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string
	GoogleID     *string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Role string

const (
	RoleOwner    Role = "owner"
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)
