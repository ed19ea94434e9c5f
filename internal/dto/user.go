package dto

import (
	"github.com/tsinsights/timesheet_insights_app/internal/core/domain"
)

// CreateUserRequest defines the data required to create a user (admin action).
type CreateUserRequest struct {
	Username    string `json:"username" binding:"required"`
	Password    string `json:"password" binding:"required,min=8"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email" binding:"omitempty,email"`
	Role        string `json:"role" binding:"omitempty,oneof=ADMIN MEMBER"`
}

// ListUsersParams defines query parameters for listing users.
type ListUsersParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// UserResponse is the public representation of a user. The password hash and
// refresh token fields are never exposed.
type UserResponse struct {
	UserID      string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	Role        string `json:"role"`
}

// ListUsersResponse wraps a page of users.
type ListUsersResponse struct {
	Success bool           `json:"success"`
	Users   []UserResponse `json:"users"`
}

// ToUserResponse maps a domain user to its public representation.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:      u.UserID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		Role:        string(u.Role),
	}
}
