package repository

import (
	"context"
	"time"

	"github.com/Naseebullah-Wali/MoProject/internal/model"
	ctxutil "github.com/Naseebullah-Wali/MoProject/pkg/context"
	"github.com/Naseebullah-Wali/MoProject/pkg/logger"
	"gorm.io/gorm"
)

// UserRepository is the Users collection of the record store. Soft-deleted
// rows are invisible to every method here; gorm's soft delete scopes all
// queries to deleted_at IS NULL.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*model.User, error) {
	ctx = ctxutil.NewContextWithRequest(ctx, "repository", "GetByID")

	var user model.User
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&user)
	if result.Error != nil {
		logger.DebugWithContext(ctx, "User lookup by ID failed").
			Uint("user_id", id).
			Err(result.Error).
			Log()
		return nil, result.Error
	}

	return &user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	ctx = ctxutil.NewContextWithRequest(ctx, "repository", "GetByEmail")

	var user model.User
	result := r.db.WithContext(ctx).Where("email = ?", email).First(&user)
	if result.Error != nil {
		return nil, result.Error
	}

	return &user, nil
}

// GetAll returns non-deleted users with pagination and optional name/email
// search.
func (r *UserRepository) GetAll(ctx context.Context, limit, offset int, search string) ([]model.User, int64, error) {
	ctx = ctxutil.NewContextWithRequest(ctx, "repository", "GetAll")

	start := time.Now()
	var users []model.User
	var total int64

	query := r.db.WithContext(ctx).Model(&model.User{})

	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to count users").
			Err(err).
			Log()
		return nil, 0, err
	}

	if err := query.Order("id").Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to fetch users").
			Int("limit", limit).
			Int("offset", offset).
			Err(err).
			Log()
		return nil, 0, err
	}

	logger.DebugWithContext(ctx, "Users fetched").
		Int64("total", total).
		Int("returned_count", len(users)).
		Duration(time.Since(start)).
		Log()

	return users, total, nil
}

// Create inserts a new user row. A duplicate live email surfaces as
// gorm.ErrDuplicatedKey from the partial unique index; there is no prior
// read, so concurrent invites for the same email cannot both win.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	ctx = ctxutil.NewContextWithRequest(ctx, "repository", "Create")

	start := time.Now()
	result := r.db.WithContext(ctx).Create(user)
	if result.Error != nil {
		logger.WarnWithContext(ctx, "Failed to create user").
			String("email", user.Email).
			Duration(time.Since(start)).
			Err(result.Error).
			Log()
		return result.Error
	}

	logger.InfoWithContext(ctx, "User created").
		String("email", user.Email).
		Uint("user_id", user.ID).
		Duration(time.Since(start)).
		Log()

	return nil
}

// UpdateProfile updates user profile fields (never email or password)
func (r *UserRepository) UpdateProfile(ctx context.Context, id uint, fields map[string]interface{}) error {
	ctx = ctxutil.NewContextWithRequest(ctx, "repository", "UpdateProfile")

	result := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// UpdatePassword persists a new password hash
func (r *UserRepository) UpdatePassword(ctx context.Context, id uint, hashedPassword string) error {
	ctx = ctxutil.NewContextWithRequest(ctx, "repository", "UpdatePassword")

	result := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).
		Update("password", hashedPassword)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	logger.InfoWithContext(ctx, "User password updated").
		Uint("user_id", id).
		Log()

	return nil
}

// FindByInvitationToken matches a non-deleted user holding the token
func (r *UserRepository) FindByInvitationToken(ctx context.Context, token string) (*model.User, error) {
	ctx = ctxutil.NewContextWithRequest(ctx, "repository", "FindByInvitationToken")

	var user model.User
	result := r.db.WithContext(ctx).Where("invitation_token = ?", token).First(&user)
	if result.Error != nil {
		return nil, result.Error
	}

	return &user, nil
}

// FindByResetToken matches a non-deleted user holding the reset token
func (r *UserRepository) FindByResetToken(ctx context.Context, token string) (*model.User, error) {
	ctx = ctxutil.NewContextWithRequest(ctx, "repository", "FindByResetToken")

	var user model.User
	result := r.db.WithContext(ctx).Where("reset_token = ?", token).First(&user)
	if result.Error != nil {
		return nil, result.Error
	}

	return &user, nil
}

// RotateInvitationToken overwrites the stored invitation token and expiry,
// invalidating any previously issued one.
func (r *UserRepository) RotateInvitationToken(ctx context.Context, id uint, token string, expires time.Time) error {
	ctx = ctxutil.NewContextWithRequest(ctx, "repository", "RotateInvitationToken")

	result := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"invitation_token":            token,
			"invitation_token_expires_at": expires,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// Activate completes a pending account in one row update: profile fields,
// the new password hash, the cleared invitation token and the pending flag.
func (r *UserRepository) Activate(ctx context.Context, id uint, name, hashedPassword, phone, telegram string, notify bool) error {
	ctx = ctxutil.NewContextWithRequest(ctx, "repository", "Activate")

	result := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"name":                        name,
			"password":                    hashedPassword,
			"phone":                       phone,
			"telegram":                    telegram,
			"notify_on_updates":           notify,
			"is_pending":                  false,
			"invitation_token":            nil,
			"invitation_token_expires_at": nil,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	logger.InfoWithContext(ctx, "User activated").
		Uint("user_id", id).
		Log()

	return nil
}

// SetResetToken stores a reset token with its expiry
func (r *UserRepository) SetResetToken(ctx context.Context, id uint, token string, expires time.Time) error {
	ctx = ctxutil.NewContextWithRequest(ctx, "repository", "SetResetToken")

	result := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"reset_token":            token,
			"reset_token_expires_at": expires,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// ResetPassword persists the new hash and clears the consumed reset token
func (r *UserRepository) ResetPassword(ctx context.Context, id uint, hashedPassword string) error {
	ctx = ctxutil.NewContextWithRequest(ctx, "repository", "ResetPassword")

	result := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"password":               hashedPassword,
			"reset_token":            nil,
			"reset_token_expires_at": nil,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	logger.InfoWithContext(ctx, "User password reset").
		Uint("user_id", id).
		Log()

	return nil
}

// SetPhotoURL stores the blob store URL of the profile photo
func (r *UserRepository) SetPhotoURL(ctx context.Context, id uint, url string) error {
	ctx = ctxutil.NewContextWithRequest(ctx, "repository", "SetPhotoURL")

	result := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).
		Update("photo_url", url)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// SoftDelete tombstones the user. The row is retained but excluded from all
// subsequent lookups.
func (r *UserRepository) SoftDelete(ctx context.Context, id uint) error {
	ctx = ctxutil.NewContextWithRequest(ctx, "repository", "SoftDelete")

	result := r.db.WithContext(ctx).Delete(&model.User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	logger.InfoWithContext(ctx, "User soft deleted").
		Uint("user_id", id).
		Log()

	return nil
}
