package dto

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is the full session state; there is no server-side session
// row. The token carries user_id, email and role claims.
type LoginResponse struct {
	UserID    uint   `json:"user_id"`
	CompanyID uint   `json:"company_id"`
	Role      string `json:"role"`
	Token     string `json:"token"`
}

// AcceptInvitationRequest completes a pending account from the emailed
// activation link.
type AcceptInvitationRequest struct {
	Token           string `json:"token" binding:"required"`
	Name            string `json:"name" binding:"required,min=2,max=100"`
	Password        string `json:"password" binding:"required,min=8,max=100"`
	Phone           string `json:"phone" binding:"omitempty,max=30"`
	Telegram        string `json:"telegram" binding:"omitempty,max=100"`
	NotifyOnUpdates bool   `json:"notify_on_updates"`
}

// ActivateAccountRequest is the accept variant that re-verifies the
// temporary password from the invitation email and returns a session.
type ActivateAccountRequest struct {
	Token           string `json:"token" binding:"required"`
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=100"`
	Name            string `json:"name" binding:"required,min=2,max=100"`
	Phone           string `json:"phone" binding:"omitempty,max=30"`
	Telegram        string `json:"telegram" binding:"omitempty,max=100"`
	NotifyOnUpdates bool   `json:"notify_on_updates"`
}

type ResendActivationRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=100"`
}

type VerifyTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

// VerifyTokenResponse pre-fills the activation form. It is not a security
// boundary; activation still requires the token.
type VerifyTokenResponse struct {
	ID              uint   `json:"id"`
	Email           string `json:"email"`
	Name            string `json:"name,omitempty"`
	Phone           string `json:"phone,omitempty"`
	Telegram        string `json:"telegram,omitempty"`
	NotifyOnUpdates bool   `json:"notify_on_updates"`
}
