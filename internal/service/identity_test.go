package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Naseebullah-Wali/MoProject/internal/dto"
	apperrors "github.com/Naseebullah-Wali/MoProject/internal/errors"
	"github.com/Naseebullah-Wali/MoProject/internal/model"
)

// fakeDirectory is an in-memory UserDirectory mirroring the repository
// contract: unknown rows return gorm.ErrRecordNotFound, duplicate live
// emails return gorm.ErrDuplicatedKey.
type fakeDirectory struct {
	users  map[uint]*model.User
	nextID uint

	resetTokenWrites int
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{users: make(map[uint]*model.User), nextID: 1}
}

func (d *fakeDirectory) GetByID(ctx context.Context, id uint) (*model.User, error) {
	user, ok := d.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (d *fakeDirectory) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, user := range d.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (d *fakeDirectory) GetAll(ctx context.Context, limit, offset int, search string) ([]model.User, int64, error) {
	var users []model.User
	for _, user := range d.users {
		if search == "" || strings.Contains(user.Email, search) || strings.Contains(user.Name, search) {
			users = append(users, *user)
		}
	}
	return users, int64(len(users)), nil
}

func (d *fakeDirectory) Create(ctx context.Context, user *model.User) error {
	for _, existing := range d.users {
		if existing.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	user.ID = d.nextID
	d.nextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	copied := *user
	d.users[user.ID] = &copied
	return nil
}

func (d *fakeDirectory) UpdateProfile(ctx context.Context, id uint, fields map[string]interface{}) error {
	user, ok := d.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := fields["name"]; ok {
		user.Name = v.(string)
	}
	if v, ok := fields["phone"]; ok {
		user.Phone = v.(string)
	}
	if v, ok := fields["telegram"]; ok {
		user.Telegram = v.(string)
	}
	if v, ok := fields["notify_on_updates"]; ok {
		user.NotifyOnUpdates = v.(bool)
	}
	return nil
}

func (d *fakeDirectory) UpdatePassword(ctx context.Context, id uint, hashedPassword string) error {
	user, ok := d.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.Password = hashedPassword
	return nil
}

func (d *fakeDirectory) FindByInvitationToken(ctx context.Context, token string) (*model.User, error) {
	for _, user := range d.users {
		if user.InvitationToken != nil && *user.InvitationToken == token {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (d *fakeDirectory) FindByResetToken(ctx context.Context, token string) (*model.User, error) {
	for _, user := range d.users {
		if user.ResetToken != nil && *user.ResetToken == token {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (d *fakeDirectory) RotateInvitationToken(ctx context.Context, id uint, token string, expires time.Time) error {
	user, ok := d.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.InvitationToken = &token
	user.InvitationTokenExpires = &expires
	return nil
}

func (d *fakeDirectory) Activate(ctx context.Context, id uint, name, hashedPassword, phone, telegram string, notify bool) error {
	user, ok := d.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.Name = name
	user.Password = hashedPassword
	user.Phone = phone
	user.Telegram = telegram
	user.NotifyOnUpdates = notify
	user.IsPending = false
	user.InvitationToken = nil
	user.InvitationTokenExpires = nil
	return nil
}

func (d *fakeDirectory) SetResetToken(ctx context.Context, id uint, token string, expires time.Time) error {
	user, ok := d.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	d.resetTokenWrites++
	user.ResetToken = &token
	user.ResetTokenExpires = &expires
	return nil
}

func (d *fakeDirectory) ResetPassword(ctx context.Context, id uint, hashedPassword string) error {
	user, ok := d.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.Password = hashedPassword
	user.ResetToken = nil
	user.ResetTokenExpires = nil
	return nil
}

func (d *fakeDirectory) SetPhotoURL(ctx context.Context, id uint, url string) error {
	user, ok := d.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.PhotoURL = url
	return nil
}

func (d *fakeDirectory) SoftDelete(ctx context.Context, id uint) error {
	if _, ok := d.users[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(d.users, id)
	return nil
}

type fakeRoles struct {
	roles map[uint]string
}

func (r *fakeRoles) GetByID(ctx context.Context, id uint) (*model.Role, error) {
	name, ok := r.roles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	role := &model.Role{Name: name}
	role.ID = id
	return role, nil
}

func (r *fakeRoles) ListByIDs(ctx context.Context, ids []uint) ([]model.Role, error) {
	var roles []model.Role
	for _, id := range ids {
		if name, ok := r.roles[id]; ok {
			role := model.Role{Name: name}
			role.ID = id
			roles = append(roles, role)
		}
	}
	return roles, nil
}

type fakeCompanies struct {
	companies map[uint]string
}

func (c *fakeCompanies) GetByID(ctx context.Context, id uint) (*model.Company, error) {
	name, ok := c.companies[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	company := &model.Company{Name: name}
	company.ID = id
	return company, nil
}

func (c *fakeCompanies) ListByIDs(ctx context.Context, ids []uint) ([]model.Company, error) {
	var companies []model.Company
	for _, id := range ids {
		if name, ok := c.companies[id]; ok {
			company := model.Company{Name: name}
			company.ID = id
			companies = append(companies, company)
		}
	}
	return companies, nil
}

type sentMail struct {
	to            string
	tempPassword  string
	activationURL string
	resetURL      string
}

type fakeMailer struct {
	failSend    bool
	invitations []sentMail
	activations []sentMail
	resets      []sentMail
}

func (m *fakeMailer) SendInvitation(ctx context.Context, toEmail, tempPassword, activationURL string) error {
	if m.failSend {
		return assert.AnError
	}
	m.invitations = append(m.invitations, sentMail{to: toEmail, tempPassword: tempPassword, activationURL: activationURL})
	return nil
}

func (m *fakeMailer) SendActivationLink(ctx context.Context, toEmail, activationURL string) error {
	if m.failSend {
		return assert.AnError
	}
	m.activations = append(m.activations, sentMail{to: toEmail, activationURL: activationURL})
	return nil
}

func (m *fakeMailer) SendPasswordReset(ctx context.Context, toEmail, resetURL string) error {
	if m.failSend {
		return assert.AnError
	}
	m.resets = append(m.resets, sentMail{to: toEmail, resetURL: resetURL})
	return nil
}

type fakeRevoker struct {
	revoked map[string]bool
}

func (r *fakeRevoker) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if r.revoked == nil {
		r.revoked = make(map[string]bool)
	}
	r.revoked[jti] = true
	return nil
}

func (r *fakeRevoker) IsRevoked(ctx context.Context, jti string) bool {
	return r.revoked[jti]
}

type identityFixture struct {
	service   *IdentityService
	directory *fakeDirectory
	mailer    *fakeMailer
	revoker   *fakeRevoker
	tokens    *TokenService
}

func newIdentityFixture(t *testing.T) *identityFixture {
	t.Helper()

	directory := newFakeDirectory()
	mailer := &fakeMailer{}
	revoker := &fakeRevoker{}
	tokens := NewTokenService("test-secret", 24*time.Hour)

	svc := NewIdentityService(
		directory,
		&fakeRoles{roles: map[uint]string{1: "Admin", 2: "Editor"}},
		&fakeCompanies{companies: map[uint]string{1: "Acme"}},
		tokens,
		mailer,
		revoker,
		NewAuditRecorder(nil),
		"https://app.example.com",
	)
	t.Cleanup(svc.Close)

	return &identityFixture{
		service:   svc,
		directory: directory,
		mailer:    mailer,
		revoker:   revoker,
		tokens:    tokens,
	}
}

// seedActiveUser inserts an activated account with a known password.
func (f *identityFixture) seedActiveUser(t *testing.T, email, password string) *model.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &model.User{
		Name:      "Seed User",
		Email:     email,
		Password:  string(hashed),
		RoleID:    2,
		CompanyID: 1,
		IsPending: false,
	}
	require.NoError(t, f.directory.Create(context.Background(), user))
	f.directory.users[user.ID].IsPending = false
	return user
}

func TestInviteUser_CreatesPendingAccount(t *testing.T) {
	f := newIdentityFixture(t)
	ctx := context.Background()

	resp, err := f.service.InviteUser(ctx, &dto.InviteUserRequest{
		Email:          "new@example.com",
		RoleID:         2,
		CompanyID:      1,
		SendInvitation: true,
	})
	require.NoError(t, err)
	require.NotZero(t, resp.ID)
	assert.True(t, resp.InvitationSent)

	stored := f.directory.users[resp.ID]
	require.NotNil(t, stored)
	assert.True(t, stored.IsPending)
	require.NotNil(t, stored.InvitationToken)
	require.NotNil(t, stored.InvitationTokenExpires)
	assert.True(t, stored.InvitationTokenExpires.After(time.Now()))

	// The emailed temporary password matches only the stored hash, never
	// a plaintext column.
	require.Len(t, f.mailer.invitations, 1)
	sent := f.mailer.invitations[0]
	assert.Equal(t, "new@example.com", sent.to)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte(sent.tempPassword)))
	assert.NotEqual(t, sent.tempPassword, stored.Password)
	assert.Contains(t, sent.activationURL, *stored.InvitationToken)
}

func TestInviteUser_DuplicateEmailConflicts(t *testing.T) {
	f := newIdentityFixture(t)
	ctx := context.Background()

	req := &dto.InviteUserRequest{Email: "dup@example.com", RoleID: 2, CompanyID: 1}
	_, err := f.service.InviteUser(ctx, req)
	require.NoError(t, err)

	_, err = f.service.InviteUser(ctx, req)
	assert.ErrorIs(t, err, apperrors.ErrEmailExists)
}

func TestInviteUser_MailFailureStillCreatesUser(t *testing.T) {
	f := newIdentityFixture(t)
	f.mailer.failSend = true

	resp, err := f.service.InviteUser(context.Background(), &dto.InviteUserRequest{
		Email:          "unreachable@example.com",
		RoleID:         2,
		CompanyID:      1,
		SendInvitation: true,
	})
	require.NoError(t, err)
	assert.False(t, resp.InvitationSent)
	assert.NotNil(t, f.directory.users[resp.ID])
}

func TestInviteUser_UnknownRoleRejected(t *testing.T) {
	f := newIdentityFixture(t)

	_, err := f.service.InviteUser(context.Background(), &dto.InviteUserRequest{
		Email:     "x@example.com",
		RoleID:    99,
		CompanyID: 1,
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestAcceptInvitation_ActivatesAndConsumesToken(t *testing.T) {
	f := newIdentityFixture(t)
	ctx := context.Background()

	resp, err := f.service.InviteUser(ctx, &dto.InviteUserRequest{Email: "a@example.com", RoleID: 2, CompanyID: 1})
	require.NoError(t, err)
	token := *f.directory.users[resp.ID].InvitationToken

	req := &dto.AcceptInvitationRequest{
		Token:    token,
		Name:     "Ada",
		Password: "chosen-password-1",
	}
	require.NoError(t, f.service.AcceptInvitation(ctx, req))

	stored := f.directory.users[resp.ID]
	assert.False(t, stored.IsPending)
	assert.Nil(t, stored.InvitationToken)
	assert.Equal(t, "Ada", stored.Name)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("chosen-password-1")))

	// Single use: replaying the consumed token fails.
	err = f.service.AcceptInvitation(ctx, req)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestAcceptInvitation_ExpiredToken(t *testing.T) {
	f := newIdentityFixture(t)
	ctx := context.Background()

	resp, err := f.service.InviteUser(ctx, &dto.InviteUserRequest{Email: "late@example.com", RoleID: 2, CompanyID: 1})
	require.NoError(t, err)

	past := time.Now().Add(-time.Hour)
	f.directory.users[resp.ID].InvitationTokenExpires = &past
	token := *f.directory.users[resp.ID].InvitationToken

	err = f.service.AcceptInvitation(ctx, &dto.AcceptInvitationRequest{Token: token, Name: "Late", Password: "password-123"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	assert.True(t, f.directory.users[resp.ID].IsPending)
}

func TestActivateAccount_VerifiesTempPassword(t *testing.T) {
	f := newIdentityFixture(t)
	ctx := context.Background()

	resp, err := f.service.InviteUser(ctx, &dto.InviteUserRequest{
		Email:          "act@example.com",
		RoleID:         2,
		CompanyID:      1,
		SendInvitation: true,
	})
	require.NoError(t, err)
	token := *f.directory.users[resp.ID].InvitationToken
	tempPassword := f.mailer.invitations[0].tempPassword

	_, err = f.service.ActivateAccount(ctx, &dto.ActivateAccountRequest{
		Token:           token,
		CurrentPassword: "not-the-temp-password",
		NewPassword:     "new-password-123",
		Name:            "Act",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	session, err := f.service.ActivateAccount(ctx, &dto.ActivateAccountRequest{
		Token:           token,
		CurrentPassword: tempPassword,
		NewPassword:     "new-password-123",
		Name:            "Act",
	})
	require.NoError(t, err)
	assert.Equal(t, resp.ID, session.UserID)
	assert.Equal(t, "Editor", session.Role)
	assert.NotEmpty(t, session.Token)
	assert.False(t, f.directory.users[resp.ID].IsPending)
}

func TestLogin_Success(t *testing.T) {
	f := newIdentityFixture(t)
	user := f.seedActiveUser(t, "login@example.com", "correct-horse")

	session, err := f.service.Login(context.Background(), &dto.LoginRequest{
		Email:    "login@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, session.UserID)
	assert.Equal(t, uint(1), session.CompanyID)
	assert.Equal(t, "Editor", session.Role)

	claims, err := f.tokens.ValidateSessionToken(session.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "login@example.com", claims.Email)
	assert.NotEmpty(t, claims.JTI)
}

func TestLogin_UnknownEmailAndWrongPasswordIndistinguishable(t *testing.T) {
	f := newIdentityFixture(t)
	f.seedActiveUser(t, "known@example.com", "correct-horse")
	ctx := context.Background()

	_, errUnknown := f.service.Login(ctx, &dto.LoginRequest{Email: "ghost@example.com", Password: "whatever"})
	_, errWrong := f.service.Login(ctx, &dto.LoginRequest{Email: "known@example.com", Password: "wrong"})

	assert.ErrorIs(t, errUnknown, apperrors.ErrInvalidCredentials)
	assert.ErrorIs(t, errWrong, apperrors.ErrInvalidCredentials)
	assert.Equal(t, apperrors.GetErrorMessage(errUnknown), apperrors.GetErrorMessage(errWrong))
}

func TestLogin_PendingAccountGetsDistinctError(t *testing.T) {
	f := newIdentityFixture(t)
	ctx := context.Background()

	_, err := f.service.InviteUser(ctx, &dto.InviteUserRequest{
		Email:          "pending@example.com",
		RoleID:         2,
		CompanyID:      1,
		SendInvitation: true,
	})
	require.NoError(t, err)
	tempPassword := f.mailer.invitations[0].tempPassword

	// Only a correct password against a pending account reveals the
	// pending state; a wrong password stays generic.
	_, err = f.service.Login(ctx, &dto.LoginRequest{Email: "pending@example.com", Password: tempPassword})
	assert.ErrorIs(t, err, apperrors.ErrAccountPending)

	_, err = f.service.Login(ctx, &dto.LoginRequest{Email: "pending@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLogout_RevokesSession(t *testing.T) {
	f := newIdentityFixture(t)
	f.seedActiveUser(t, "out@example.com", "correct-horse")
	ctx := context.Background()

	session, err := f.service.Login(ctx, &dto.LoginRequest{Email: "out@example.com", Password: "correct-horse"})
	require.NoError(t, err)

	claims, err := f.tokens.ValidateSessionToken(session.Token)
	require.NoError(t, err)
	assert.False(t, f.service.IsSessionRevoked(ctx, claims.JTI))

	require.NoError(t, f.service.Logout(ctx, claims))
	assert.True(t, f.service.IsSessionRevoked(ctx, claims.JTI))
}

func TestChangePassword(t *testing.T) {
	f := newIdentityFixture(t)
	user := f.seedActiveUser(t, "change@example.com", "old-password-1")
	other := f.seedActiveUser(t, "other@example.com", "irrelevant-pw")
	ctx := context.Background()

	err := f.service.ChangePassword(ctx, other.ID, user.ID, "old-password-1", "new-password-1")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	err = f.service.ChangePassword(ctx, user.ID, user.ID, "wrong", "new-password-1")
	assert.ErrorIs(t, err, apperrors.ErrIncorrectPassword)

	require.NoError(t, f.service.ChangePassword(ctx, user.ID, user.ID, "old-password-1", "new-password-1"))
	stored := f.directory.users[user.ID]
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("new-password-1")))
}

func TestForgotPassword_UnknownEmailIsSilentNoop(t *testing.T) {
	f := newIdentityFixture(t)

	err := f.service.ForgotPassword(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Empty(t, f.mailer.resets)
	assert.Zero(t, f.directory.resetTokenWrites)
}

func TestForgotPassword_KnownEmailSetsTokenAndMails(t *testing.T) {
	f := newIdentityFixture(t)
	user := f.seedActiveUser(t, "forgot@example.com", "correct-horse")

	require.NoError(t, f.service.ForgotPassword(context.Background(), "forgot@example.com"))

	stored := f.directory.users[user.ID]
	require.NotNil(t, stored.ResetToken)
	require.NotNil(t, stored.ResetTokenExpires)
	require.Len(t, f.mailer.resets, 1)
	assert.Contains(t, f.mailer.resets[0].resetURL, *stored.ResetToken)
}

func TestResetPassword_SingleUse(t *testing.T) {
	f := newIdentityFixture(t)
	user := f.seedActiveUser(t, "reset@example.com", "old-password-1")
	ctx := context.Background()

	require.NoError(t, f.service.ForgotPassword(ctx, "reset@example.com"))
	token := *f.directory.users[user.ID].ResetToken

	req := &dto.ResetPasswordRequest{Token: token, NewPassword: "brand-new-pw-1"}
	require.NoError(t, f.service.ResetPassword(ctx, req))

	stored := f.directory.users[user.ID]
	assert.Nil(t, stored.ResetToken)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("brand-new-pw-1")))

	err := f.service.ResetPassword(ctx, req)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestResetPassword_ExpiredToken(t *testing.T) {
	f := newIdentityFixture(t)
	user := f.seedActiveUser(t, "expired@example.com", "old-password-1")
	ctx := context.Background()

	require.NoError(t, f.service.ForgotPassword(ctx, "expired@example.com"))
	past := time.Now().Add(-time.Minute)
	f.directory.users[user.ID].ResetTokenExpires = &past
	token := *f.directory.users[user.ID].ResetToken

	err := f.service.ResetPassword(ctx, &dto.ResetPasswordRequest{Token: token, NewPassword: "brand-new-pw-1"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	// The old password still works after a failed reset.
	stored := f.directory.users[user.ID]
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("old-password-1")))
}

func TestResendActivation(t *testing.T) {
	f := newIdentityFixture(t)
	ctx := context.Background()

	resp, err := f.service.InviteUser(ctx, &dto.InviteUserRequest{Email: "resend@example.com", RoleID: 2, CompanyID: 1})
	require.NoError(t, err)
	oldToken := *f.directory.users[resp.ID].InvitationToken

	require.NoError(t, f.service.ResendActivation(ctx, "resend@example.com"))

	newToken := *f.directory.users[resp.ID].InvitationToken
	assert.NotEqual(t, oldToken, newToken)
	require.Len(t, f.mailer.activations, 1)
	assert.Contains(t, f.mailer.activations[0].activationURL, newToken)

	// Unknown and already-active accounts both report not found.
	assert.ErrorIs(t, f.service.ResendActivation(ctx, "ghost@example.com"), apperrors.ErrUserNotFound)

	f.seedActiveUser(t, "active@example.com", "correct-horse")
	assert.ErrorIs(t, f.service.ResendActivation(ctx, "active@example.com"), apperrors.ErrUserNotFound)
}

func TestSoftDeletedUserExcludedFromAuthFlows(t *testing.T) {
	f := newIdentityFixture(t)
	ctx := context.Background()

	// An active user with an outstanding reset token and a pending
	// invitee with a live invitation token, both then soft deleted.
	active := f.seedActiveUser(t, "gone@example.com", "correct-horse")
	require.NoError(t, f.service.ForgotPassword(ctx, "gone@example.com"))
	resetToken := *f.directory.users[active.ID].ResetToken

	invited, err := f.service.InviteUser(ctx, &dto.InviteUserRequest{Email: "gone-pending@example.com", RoleID: 2, CompanyID: 1})
	require.NoError(t, err)
	inviteToken := *f.directory.users[invited.ID].InvitationToken

	require.NoError(t, f.directory.SoftDelete(ctx, active.ID))
	require.NoError(t, f.directory.SoftDelete(ctx, invited.ID))

	// Formerly correct credentials now fail exactly like unknown ones.
	_, err = f.service.Login(ctx, &dto.LoginRequest{Email: "gone@example.com", Password: "correct-horse"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	err = f.service.ResetPassword(ctx, &dto.ResetPasswordRequest{Token: resetToken, NewPassword: "new-password-1"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	// The invitation token that was live before deletion no longer
	// activates, verifies, or resends.
	err = f.service.AcceptInvitation(ctx, &dto.AcceptInvitationRequest{Token: inviteToken, Name: "Ghost", Password: "password-123"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	_, err = f.service.VerifyInvitationToken(ctx, inviteToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	assert.ErrorIs(t, f.service.ResendActivation(ctx, "gone-pending@example.com"), apperrors.ErrUserNotFound)
}

func TestVerifyInvitationToken(t *testing.T) {
	f := newIdentityFixture(t)
	ctx := context.Background()

	resp, err := f.service.InviteUser(ctx, &dto.InviteUserRequest{Email: "verify@example.com", RoleID: 2, CompanyID: 1})
	require.NoError(t, err)
	token := *f.directory.users[resp.ID].InvitationToken

	info, err := f.service.VerifyInvitationToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, resp.ID, info.ID)
	assert.Equal(t, "verify@example.com", info.Email)

	_, err = f.service.VerifyInvitationToken(ctx, "bogus")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}
