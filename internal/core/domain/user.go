package domain

import "time"

// UserRole is the authorization role assigned to a user. The observed system
// treated a reserved username as the administrator; we model the role
// explicitly instead.
type UserRole string

const (
	RoleAdmin  UserRole = "ADMIN"
	RoleMember UserRole = "MEMBER"
)

// User represents an authentication principal of the application.
type User struct {
	UserID       string   `json:"userID"` // Primary Key (UUID)
	Username     string   `json:"username"`
	PasswordHash string   `json:"-"` // scrypt, stored as salt$hash
	DisplayName  string   `json:"displayName"`
	Email        string   `json:"email"`
	Role         UserRole `json:"role"`
	AuditFields

	// Rotating refresh token, stored hashed.
	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
}

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
