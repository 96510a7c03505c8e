package constants

// HTTP Header Names
const (
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"
)

// Auth Messages
const (
	MsgUnauthorized      = "Unauthorized"
	MsgPasswordResetSent = "If that email address is registered, a password reset link has been sent."
)
