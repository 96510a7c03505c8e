package handler

import (
	"io"
	"net/http"
	"strconv"

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

// maxPhotoSize bounds profile photo uploads.
const maxPhotoSize = 5 << 20

type UserHandler struct {
	identity *service.IdentityService
	users    *service.UserService
}

func NewUserHandler(identity *service.IdentityService, users *service.UserService) *UserHandler {
	return &UserHandler{
		identity: identity,
		users:    users,
	}
}

// InviteUser creates a pending account and reports separately whether the
// invitation email went out.
func (h *UserHandler) InviteUser(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "InviteUser")

	var req dto.InviteUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnWithContext(ctx, "Invalid invite request").
			Err(err).
			Log()
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid request format", validation.MessagesFor(err)))
		return
	}

	response, err := h.identity.InviteUser(ctx, &req)
	if err != nil {
		logger.WarnWithContext(ctx, "User invitation failed").
			String("email", req.Email).
			Err(err).
			Log()
		h.writeError(c, "Invitation failed", err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// GetAll lists users with pagination and optional search.
func (h *UserHandler) GetAll(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "GetAll")

	params := constants.ParsePaginationParams(c)
	search := c.DefaultQuery(constants.QueryParamSearch, constants.DefaultSearch)

	users, total, err := h.users.GetAll(ctx, params.Limit, params.Offset, search)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to list users").
			Err(err).
			Log()
		h.writeError(c, "Failed to list users", err)
		return
	}

	pageTotal := int((total + int64(params.Limit) - 1) / int64(params.Limit))
	c.JSON(http.StatusOK, constants.BuildListResponse(total, params.Page, pageTotal, users))
}

// GetByID returns one user.
func (h *UserHandler) GetByID(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "GetByID")

	id, ok := h.parseID(c)
	if !ok {
		return
	}

	user, err := h.users.GetByID(ctx, id)
	if err != nil {
		h.writeError(c, "Failed to get user", err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// Update patches a user's mutable profile fields.
func (h *UserHandler) Update(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "Update")

	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid request format", validation.MessagesFor(err)))
		return
	}

	user, err := h.users.Update(ctx, id, &req)
	if err != nil {
		logger.WarnWithContext(ctx, "User update failed").
			Uint("user_id", id).
			Err(err).
			Log()
		h.writeError(c, "Update failed", err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdatePassword rotates a user's password after verifying the current
// one. Only the account owner may call it.
func (h *UserHandler) UpdatePassword(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "UpdatePassword")

	id, ok := h.parseID(c)
	if !ok {
		return
	}

	callerID, exists := h.callerID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(constants.MsgUnauthorized, nil))
		return
	}

	var req dto.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid request format", validation.MessagesFor(err)))
		return
	}

	if err := h.identity.ChangePassword(ctx, callerID, id, req.CurrentPassword, req.NewPassword); err != nil {
		logger.WarnWithContext(ctx, "Password change failed").
			Uint("user_id", id).
			Err(err).
			Log()
		h.writeError(c, "Password change failed", err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Password updated"))
}

// Delete soft-deletes a user. Self-deletion is rejected.
func (h *UserHandler) Delete(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "Delete")

	id, ok := h.parseID(c)
	if !ok {
		return
	}

	callerID, exists := h.callerID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(constants.MsgUnauthorized, nil))
		return
	}

	if err := h.users.SoftDelete(ctx, callerID, id); err != nil {
		logger.WarnWithContext(ctx, "User deletion failed").
			Uint("user_id", id).
			Err(err).
			Log()
		h.writeError(c, "Deletion failed", err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("User deleted"))
}

// UploadPhoto stores a profile photo and saves its public URL.
func (h *UserHandler) UploadPhoto(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "UploadPhoto")

	id, ok := h.parseID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid request format", "photo file is required"))
		return
	}
	if fileHeader.Size > maxPhotoSize {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid request format", "photo exceeds the 5MB limit"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid request format", "could not read photo"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxPhotoSize))
	if err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid request format", "could not read photo"))
		return
	}

	contentType := fileHeader.Header.Get(constants.HeaderContentType)
	response, err := h.users.UploadPhoto(ctx, id, fileHeader.Filename, data, contentType)
	if err != nil {
		logger.ErrorWithContext(ctx, "Photo upload failed").
			Uint("user_id", id).
			Err(err).
			Log()
		h.writeError(c, "Photo upload failed", err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *UserHandler) parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid request format", "id must be a positive integer"))
		return 0, false
	}
	return uint(id), true
}

func (h *UserHandler) callerID(c *gin.Context) (uint, bool) {
	value, exists := c.Get(middleware.GinKeyUserID)
	if !exists {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok
}

func (h *UserHandler) writeError(c *gin.Context, title string, err error) {
	status := apperrors.ToHTTPStatus(err)
	c.JSON(status, constants.BuildErrorResponse(title, apperrors.GetErrorMessage(err)))
}
