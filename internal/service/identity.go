package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Naseebullah-Wali/MoProject/internal/constants"
	"github.com/Naseebullah-Wali/MoProject/internal/dto"
	"github.com/Naseebullah-Wali/MoProject/internal/errors"
	"github.com/Naseebullah-Wali/MoProject/internal/model"
	"github.com/Naseebullah-Wali/MoProject/pkg/cache"
	"github.com/Naseebullah-Wali/MoProject/pkg/logger"
)

// UserDirectory is the storage surface the identity flows depend on.
// *repository.UserRepository implements it.
type UserDirectory interface {
	GetByID(ctx context.Context, id uint) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetAll(ctx context.Context, limit, offset int, search string) ([]model.User, int64, error)
	Create(ctx context.Context, user *model.User) error
	UpdateProfile(ctx context.Context, id uint, fields map[string]interface{}) error
	UpdatePassword(ctx context.Context, id uint, hashedPassword string) error
	FindByInvitationToken(ctx context.Context, token string) (*model.User, error)
	FindByResetToken(ctx context.Context, token string) (*model.User, error)
	RotateInvitationToken(ctx context.Context, id uint, token string, expires time.Time) error
	Activate(ctx context.Context, id uint, name, hashedPassword, phone, telegram string, notify bool) error
	SetResetToken(ctx context.Context, id uint, token string, expires time.Time) error
	ResetPassword(ctx context.Context, id uint, hashedPassword string) error
	SetPhotoURL(ctx context.Context, id uint, url string) error
	SoftDelete(ctx context.Context, id uint) error
}

// RoleDirectory resolves role rows.
type RoleDirectory interface {
	GetByID(ctx context.Context, id uint) (*model.Role, error)
	ListByIDs(ctx context.Context, ids []uint) ([]model.Role, error)
}

// CompanyDirectory resolves company rows.
type CompanyDirectory interface {
	GetByID(ctx context.Context, id uint) (*model.Company, error)
	ListByIDs(ctx context.Context, ids []uint) ([]model.Company, error)
}

// IdentityService owns the account lifecycle: invitation, activation,
// login, logout and both password flows.
type IdentityService struct {
	users       UserDirectory
	roles       RoleDirectory
	companies   CompanyDirectory
	tokens      *TokenService
	mail        MailSender
	revocations SessionRevoker
	audit       *AuditRecorder
	roleCache   *cache.Cache
	frontendURL string
}

func NewIdentityService(
	users UserDirectory,
	roles RoleDirectory,
	companies CompanyDirectory,
	tokens *TokenService,
	mail MailSender,
	revocations SessionRevoker,
	audit *AuditRecorder,
	frontendURL string,
) *IdentityService {
	return &IdentityService{
		users:       users,
		roles:       roles,
		companies:   companies,
		tokens:      tokens,
		mail:        mail,
		revocations: revocations,
		audit:       audit,
		roleCache:   cache.NewCache(),
		frontendURL: frontendURL,
	}
}

// InviteUser creates a pending account with a generated temporary password
// and a fresh invitation token, then tries to email the invitation.
// Storage and notification succeed or fail independently; a failed email
// never rolls back the row and is reported through InvitationSent.
//
// Duplicate emails are caught by the unique index on insert, not by a
// prior read, so two concurrent invites for one address cannot both win.
func (s *IdentityService) InviteUser(ctx context.Context, req *dto.InviteUserRequest) (*dto.InviteUserResponse, error) {
	if _, err := s.roles.GetByID(ctx, req.RoleID); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.WrapError(errors.ErrValidation, fmt.Errorf("role %d does not exist", req.RoleID))
		}
		return nil, errors.WrapError(errors.ErrStorage, err)
	}
	if _, err := s.companies.GetByID(ctx, req.CompanyID); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.WrapError(errors.ErrValidation, fmt.Errorf("company %d does not exist", req.CompanyID))
		}
		return nil, errors.WrapError(errors.ErrStorage, err)
	}

	tempPassword, err := s.tokens.GenerateTempPassword(constants.TempPasswordLength)
	if err != nil {
		return nil, errors.WrapError(errors.ErrInternal, err)
	}
	hashed, err := hashPassword(tempPassword)
	if err != nil {
		return nil, errors.WrapError(errors.ErrInternal, err)
	}
	invitationToken, err := s.tokens.GenerateOpaqueToken()
	if err != nil {
		return nil, errors.WrapError(errors.ErrInternal, err)
	}

	expires := time.Now().Add(constants.InvitationTokenTTL)
	user := &model.User{
		Email:                  req.Email,
		Password:               hashed,
		RoleID:                 req.RoleID,
		CompanyID:              req.CompanyID,
		IsPending:              true,
		InvitationToken:        &invitationToken,
		InvitationTokenExpires: &expires,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.WrapError(errors.ErrEmailExists, err)
		}
		return nil, errors.WrapError(errors.ErrStorage, err)
	}

	logger.InfoWithContext(ctx, "User invited").
		Uint("user_id", user.ID).
		String("email", req.Email).
		Uint("role_id", req.RoleID).
		Log()

	invitationSent := false
	if req.SendInvitation {
		if err := s.mail.SendInvitation(ctx, req.Email, tempPassword, s.activationURL(invitationToken)); err == nil {
			invitationSent = true
		}
	}

	s.audit.Record(ctx, &user.ID, model.AuditUserInvited, map[string]interface{}{
		"email":           req.Email,
		"role_id":         req.RoleID,
		"company_id":      req.CompanyID,
		"invitation_sent": invitationSent,
	})

	return &dto.InviteUserResponse{ID: user.ID, InvitationSent: invitationSent}, nil
}

// AcceptInvitation completes a pending account from the emailed activation
// link. The token is single use: activation clears it in the same update
// that flips the pending flag.
func (s *IdentityService) AcceptInvitation(ctx context.Context, req *dto.AcceptInvitationRequest) error {
	user, err := s.lookupInvitation(ctx, req.Token)
	if err != nil {
		return err
	}

	hashed, err := hashPassword(req.Password)
	if err != nil {
		return errors.WrapError(errors.ErrInternal, err)
	}

	if err := s.users.Activate(ctx, user.ID, req.Name, hashed, req.Phone, req.Telegram, req.NotifyOnUpdates); err != nil {
		return errors.WrapError(errors.ErrStorage, err)
	}

	logger.InfoWithContext(ctx, "User activated account").
		Uint("user_id", user.ID).
		String("email", user.Email).
		Log()

	s.audit.Record(ctx, &user.ID, model.AuditUserActivated, map[string]interface{}{
		"email": user.Email,
	})
	return nil
}

// ActivateAccount is the accept variant that re-verifies the temporary
// password from the invitation email and signs the user in.
func (s *IdentityService) ActivateAccount(ctx context.Context, req *dto.ActivateAccountRequest) (*dto.LoginResponse, error) {
	user, err := s.lookupInvitation(ctx, req.Token)
	if err != nil {
		return nil, err
	}

	if err := checkPassword(user.Password, req.CurrentPassword); err != nil {
		return nil, errors.ErrInvalidCredentials
	}

	hashed, err := hashPassword(req.NewPassword)
	if err != nil {
		return nil, errors.WrapError(errors.ErrInternal, err)
	}

	if err := s.users.Activate(ctx, user.ID, req.Name, hashed, req.Phone, req.Telegram, req.NotifyOnUpdates); err != nil {
		return nil, errors.WrapError(errors.ErrStorage, err)
	}

	roleName, err := s.roleName(ctx, user.RoleID)
	if err != nil {
		return nil, err
	}
	token, _, err := s.tokens.GenerateSessionToken(user.ID, user.Email, roleName)
	if err != nil {
		return nil, errors.WrapError(errors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "User activated account").
		Uint("user_id", user.ID).
		String("email", user.Email).
		Log()

	s.audit.Record(ctx, &user.ID, model.AuditUserActivated, map[string]interface{}{
		"email": user.Email,
	})

	return &dto.LoginResponse{
		UserID:    user.ID,
		CompanyID: user.CompanyID,
		Role:      roleName,
		Token:     token,
	}, nil
}

// ResendActivation rotates the invitation token of a still pending account
// and emails a fresh activation link. The temporary password is unchanged.
func (s *IdentityService) ResendActivation(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrUserNotFound
		}
		return errors.WrapError(errors.ErrStorage, err)
	}
	if !user.IsPending {
		return errors.ErrUserNotFound
	}

	token, err := s.tokens.GenerateOpaqueToken()
	if err != nil {
		return errors.WrapError(errors.ErrInternal, err)
	}
	if err := s.users.RotateInvitationToken(ctx, user.ID, token, time.Now().Add(constants.InvitationTokenTTL)); err != nil {
		return errors.WrapError(errors.ErrStorage, err)
	}

	// Best effort, same as the initial invite. The rotated token stays
	// valid so the user can retry.
	_ = s.mail.SendActivationLink(ctx, user.Email, s.activationURL(token))

	s.audit.Record(ctx, &user.ID, model.AuditInviteResent, map[string]interface{}{
		"email": user.Email,
	})
	return nil
}

// VerifyInvitationToken checks an activation token and returns the fields
// needed to pre-fill the activation form.
func (s *IdentityService) VerifyInvitationToken(ctx context.Context, token string) (*dto.VerifyTokenResponse, error) {
	user, err := s.lookupInvitation(ctx, token)
	if err != nil {
		return nil, err
	}
	return &dto.VerifyTokenResponse{
		ID:              user.ID,
		Email:           user.Email,
		Name:            user.Name,
		Phone:           user.Phone,
		Telegram:        user.Telegram,
		NotifyOnUpdates: user.NotifyOnUpdates,
	}, nil
}

// Login authenticates by email and password. Unknown email and wrong
// password return the same error so the endpoint does not leak which
// addresses have accounts; only a correct password against a pending
// account gets the distinct pending message.
func (s *IdentityService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrInvalidCredentials
		}
		return nil, errors.WrapError(errors.ErrStorage, err)
	}

	if err := checkPassword(user.Password, req.Password); err != nil {
		return nil, errors.ErrInvalidCredentials
	}

	if user.IsPending {
		return nil, errors.ErrAccountPending
	}

	roleName, err := s.roleName(ctx, user.RoleID)
	if err != nil {
		return nil, err
	}

	token, _, err := s.tokens.GenerateSessionToken(user.ID, user.Email, roleName)
	if err != nil {
		return nil, errors.WrapError(errors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "User logged in").
		Uint("user_id", user.ID).
		String("email", user.Email).
		Log()

	s.audit.Record(ctx, &user.ID, model.AuditUserLogin, map[string]interface{}{
		"email": user.Email,
	})

	return &dto.LoginResponse{
		UserID:    user.ID,
		CompanyID: user.CompanyID,
		Role:      roleName,
		Token:     token,
	}, nil
}

// Logout adds the session's jti to the revocation list for the remaining
// token lifetime.
func (s *IdentityService) Logout(ctx context.Context, claims *SessionClaims) error {
	ttl := time.Until(claims.ExpiresAt)
	if err := s.revocations.Revoke(ctx, claims.JTI, ttl); err != nil {
		return errors.WrapError(errors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "User logged out").
		Uint("user_id", claims.UserID).
		Log()

	s.audit.Record(ctx, &claims.UserID, model.AuditUserLogout, nil)
	return nil
}

// ChangePassword rotates a password after verifying the current one. Users
// can only change their own password.
func (s *IdentityService) ChangePassword(ctx context.Context, callerID, targetID uint, currentPassword, newPassword string) error {
	if callerID != targetID {
		return errors.ErrForbidden
	}

	user, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrUserNotFound
		}
		return errors.WrapError(errors.ErrStorage, err)
	}

	if err := checkPassword(user.Password, currentPassword); err != nil {
		return errors.ErrIncorrectPassword
	}

	hashed, err := hashPassword(newPassword)
	if err != nil {
		return errors.WrapError(errors.ErrInternal, err)
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hashed); err != nil {
		return errors.WrapError(errors.ErrStorage, err)
	}

	logger.InfoWithContext(ctx, "User changed password").
		Uint("user_id", user.ID).
		Log()

	s.audit.Record(ctx, &user.ID, model.AuditPasswordChanged, nil)
	return nil
}

// ForgotPassword starts the reset flow. It reports success whether or not
// the email matches an account, and performs no writes when it does not.
func (s *IdentityService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			logger.InfoWithContext(ctx, "Password reset requested for unknown email").
				String("email", email).
				Log()
			return nil
		}
		return errors.WrapError(errors.ErrStorage, err)
	}

	token, err := s.tokens.GenerateOpaqueToken()
	if err != nil {
		return errors.WrapError(errors.ErrInternal, err)
	}
	if err := s.users.SetResetToken(ctx, user.ID, token, time.Now().Add(constants.ResetTokenTTL)); err != nil {
		return errors.WrapError(errors.ErrStorage, err)
	}

	_ = s.mail.SendPasswordReset(ctx, user.Email, s.resetURL(token))

	s.audit.Record(ctx, &user.ID, model.AuditResetRequested, map[string]interface{}{
		"email": user.Email,
	})
	return nil
}

// ResetPassword completes the reset flow. The token is single use and an
// expired token fails exactly like an unknown one.
func (s *IdentityService) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	user, err := s.users.FindByResetToken(ctx, req.Token)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrInvalidToken
		}
		return errors.WrapError(errors.ErrStorage, err)
	}
	if user.ResetTokenExpires == nil || time.Now().After(*user.ResetTokenExpires) {
		return errors.ErrInvalidToken
	}

	hashed, err := hashPassword(req.NewPassword)
	if err != nil {
		return errors.WrapError(errors.ErrInternal, err)
	}
	if err := s.users.ResetPassword(ctx, user.ID, hashed); err != nil {
		return errors.WrapError(errors.ErrStorage, err)
	}

	logger.InfoWithContext(ctx, "User reset password").
		Uint("user_id", user.ID).
		Log()

	s.audit.Record(ctx, &user.ID, model.AuditPasswordReset, nil)
	return nil
}

// IsSessionRevoked reports whether a session's jti is on the revocation
// list. Used by the authentication middleware.
func (s *IdentityService) IsSessionRevoked(ctx context.Context, jti string) bool {
	return s.revocations.IsRevoked(ctx, jti)
}

// Close releases the role cache sweeper.
func (s *IdentityService) Close() {
	s.roleCache.Stop()
}

func (s *IdentityService) lookupInvitation(ctx context.Context, token string) (*model.User, error) {
	user, err := s.users.FindByInvitationToken(ctx, token)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrInvalidToken
		}
		return nil, errors.WrapError(errors.ErrStorage, err)
	}
	if !user.IsPending {
		return nil, errors.ErrInvalidToken
	}
	if user.InvitationTokenExpires == nil || time.Now().After(*user.InvitationTokenExpires) {
		return nil, errors.ErrInvalidToken
	}
	return user, nil
}

func (s *IdentityService) roleName(ctx context.Context, roleID uint) (string, error) {
	cacheKey := fmt.Sprintf("role:%d", roleID)
	if cached, found := s.roleCache.Get(cacheKey); found {
		if name, ok := cached.(string); ok {
			return name, nil
		}
	}

	role, err := s.roles.GetByID(ctx, roleID)
	if err != nil {
		return "", errors.WrapError(errors.ErrStorage, err)
	}
	s.roleCache.Set(cacheKey, role.Name, 5*time.Minute)
	return role.Name, nil
}

func (s *IdentityService) activationURL(token string) string {
	return fmt.Sprintf("%s/activate-account?token=%s", s.frontendURL, token)
}

func (s *IdentityService) resetURL(token string) string {
	return fmt.Sprintf("%s/reset-password?token=%s", s.frontendURL, token)
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func checkPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
