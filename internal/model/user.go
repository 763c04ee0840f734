package model

// Role is the closed set of actor roles. Which dashboards and actions a user
// can reach is decided per request from this value, not by storage constraints.
type Role string

const (
	RoleMother Role = "mother"
	RoleClinic Role = "clinic"
	RoleNurse  Role = "nurse"
	RoleAdmin  Role = "admin"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleMother, RoleClinic, RoleNurse, RoleAdmin:
		return true
	}
	return false
}

// IsStaff reports whether the role belongs to clinic staff.
func (r Role) IsStaff() bool {
	return r == RoleClinic || r == RoleNurse
}

// User represents a system user
type User struct {
	Base
	Username     string `json:"username" db:"username"`
	PasswordHash string `json:"-" db:"password_hash"`
	Role         Role   `json:"role" db:"role"`
}

// CreateUserRequest represents admin-side user provisioning parameters
type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=mother clinic nurse admin"`
}

// UpdateUserRequest represents admin-side user update parameters
type UpdateUserRequest struct {
	Username *string `json:"username"`
	Role     *string `json:"role" binding:"omitempty,oneof=mother clinic nurse admin"`
}
