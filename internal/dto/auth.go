package dto

// LoginRequest is the credential pair sent to /auth/login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the access token and the authenticated principal.
type LoginResponse struct {
	Success bool         `json:"success"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}

// RefreshResponse carries a freshly rotated access token.
type RefreshResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

// ChangePasswordRequest carries the current and replacement passwords.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}
