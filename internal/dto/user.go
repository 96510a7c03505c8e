package dto

import "time"

// InviteUserRequest creates a pending account. The inviter picks no
// password; a temporary one is generated server side.
type InviteUserRequest struct {
	Email          string `json:"email" binding:"required,email,max=255"`
	RoleID         uint   `json:"role_id" binding:"required,gt=0"`
	CompanyID      uint   `json:"company_id" binding:"required,gt=0"`
	SendInvitation bool   `json:"send_invitation"`
}

// InviteUserResponse reports the created row and, separately, whether the
// invitation email went out. Storage and notification succeed or fail
// independently.
type InviteUserResponse struct {
	ID             uint `json:"id"`
	InvitationSent bool `json:"invitation_sent"`
}

type UpdateUserRequest struct {
	Name            string `json:"name" binding:"omitempty,min=2,max=100"`
	Phone           string `json:"phone" binding:"omitempty,max=30"`
	Telegram        string `json:"telegram" binding:"omitempty,max=100"`
	NotifyOnUpdates *bool  `json:"notify_on_updates"`
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=100"`
}

// UserResponse carries a user row with its role and company names joined in
// application code.
type UserResponse struct {
	ID              uint      `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone,omitempty"`
	Telegram        string    `json:"telegram,omitempty"`
	PhotoURL        string    `json:"photo_url,omitempty"`
	NotifyOnUpdates bool      `json:"notify_on_updates"`
	RoleID          uint      `json:"role_id"`
	RoleName        string    `json:"role_name"`
	CompanyID       uint      `json:"company_id"`
	CompanyName     string    `json:"company_name"`
	IsPending       bool      `json:"is_pending"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type UploadPhotoResponse struct {
	PhotoURL string `json:"photo_url"`
}
