package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Naseebullah-Wali/MoProject/internal/constants"
	"github.com/Naseebullah-Wali/MoProject/internal/dto"
	apperrors "github.com/Naseebullah-Wali/MoProject/internal/errors"
	"github.com/Naseebullah-Wali/MoProject/internal/middleware"
	"github.com/Naseebullah-Wali/MoProject/internal/service"
	ctxutil "github.com/Naseebullah-Wali/MoProject/pkg/context"
	"github.com/Naseebullah-Wali/MoProject/pkg/logger"
	"github.com/Naseebullah-Wali/MoProject/pkg/validation"
)

type AuthHandler struct {
	identity *service.IdentityService
}

func NewAuthHandler(identity *service.IdentityService) *AuthHandler {
	return &AuthHandler{
		identity: identity,
	}
}

// Login handles user authentication
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "Login")

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnWithContext(ctx, "Invalid login request").
			Err(err).
			Log()
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid request format", validation.MessagesFor(err)))
		return
	}

	logger.InfoWithContext(ctx, "User login attempt").
		String("email", req.Email).
		Log()

	response, err := h.identity.Login(ctx, &req)
	if err != nil {
		logger.WarnWithContext(ctx, "Login failed").
			String("email", req.Email).
			Err(err).
			Log()
		h.writeError(c, "Authentication failed", err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Logout revokes the current session token.
func (h *AuthHandler) Logout(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "Logout")

	claimsValue, exists := c.Get(middleware.GinKeySessionClaims)
	if !exists {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(constants.MsgUnauthorized, nil))
		return
	}
	claims, ok := claimsValue.(*service.SessionClaims)
	if !ok {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(constants.MsgUnauthorized, nil))
		return
	}

	if err := h.identity.Logout(ctx, claims); err != nil {
		logger.ErrorWithContext(ctx, "Logout failed").
			Uint("user_id", claims.UserID).
			Err(err).
			Log()
		h.writeError(c, "Logout failed", err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Logged out"))
}

// AcceptInvitation completes a pending account from an activation link.
func (h *AuthHandler) AcceptInvitation(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "AcceptInvitation")

	var req dto.AcceptInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid request format", validation.MessagesFor(err)))
		return
	}

	if err := h.identity.AcceptInvitation(ctx, &req); err != nil {
		logger.WarnWithContext(ctx, "Invitation acceptance failed").
			Err(err).
			Log()
		h.writeError(c, "Activation failed", err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Account activated. You can now sign in."))
}

// ActivateAccount is the accept variant that verifies the temporary
// password and returns a session token.
func (h *AuthHandler) ActivateAccount(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "ActivateAccount")

	var req dto.ActivateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid request format", validation.MessagesFor(err)))
		return
	}

	response, err := h.identity.ActivateAccount(ctx, &req)
	if err != nil {
		logger.WarnWithContext(ctx, "Account activation failed").
			Err(err).
			Log()
		h.writeError(c, "Activation failed", err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ResendActivationEmail rotates the invitation token and re-sends the
// activation link.
func (h *AuthHandler) ResendActivationEmail(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "ResendActivationEmail")

	var req dto.ResendActivationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid request format", validation.MessagesFor(err)))
		return
	}

	if err := h.identity.ResendActivation(ctx, req.Email); err != nil {
		logger.WarnWithContext(ctx, "Activation resend failed").
			String("email", req.Email).
			Err(err).
			Log()
		h.writeError(c, "Resend failed", err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Activation email sent"))
}

// VerifyToken checks an activation token and returns form pre-fill data.
func (h *AuthHandler) VerifyToken(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "VerifyToken")

	var req dto.VerifyTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid request format", validation.MessagesFor(err)))
		return
	}

	response, err := h.identity.VerifyInvitationToken(ctx, req.Token)
	if err != nil {
		h.writeError(c, "Token verification failed", err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ForgotPassword starts the reset flow. The response is identical whether
// or not the email matches an account.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "ForgotPassword")

	var req dto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid request format", validation.MessagesFor(err)))
		return
	}

	if err := h.identity.ForgotPassword(ctx, req.Email); err != nil {
		logger.ErrorWithContext(ctx, "Password reset request failed").
			Err(err).
			Log()
		h.writeError(c, "Password reset request failed", err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse(constants.MsgPasswordResetSent))
}

// ResetPassword completes the reset flow with a token from the email.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "ResetPassword")

	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid request format", validation.MessagesFor(err)))
		return
	}

	if err := h.identity.ResetPassword(ctx, &req); err != nil {
		logger.WarnWithContext(ctx, "Password reset failed").
			Err(err).
			Log()
		h.writeError(c, "Password reset failed", err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Password has been reset. You can now sign in."))
}

func (h *AuthHandler) writeError(c *gin.Context, title string, err error) {
	status := apperrors.ToHTTPStatus(err)
	c.JSON(status, constants.BuildErrorResponse(title, apperrors.GetErrorMessage(err)))
}
