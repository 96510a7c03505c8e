package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Naseebullah-Wali/MoProject/internal/dto"
	"github.com/Naseebullah-Wali/MoProject/internal/errors"
	"github.com/Naseebullah-Wali/MoProject/internal/model"
	"github.com/Naseebullah-Wali/MoProject/pkg/logger"
)

// PhotoStore persists profile photos and returns a public URL.
type PhotoStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// UserService owns directory reads and profile maintenance. Lifecycle
// transitions (invite, activate, delete flows that need auth context)
// live in IdentityService; the split keeps each service's dependency
// surface small.
type UserService struct {
	users     UserDirectory
	roles     RoleDirectory
	companies CompanyDirectory
	photos    PhotoStore
	audit     *AuditRecorder
}

func NewUserService(
	users UserDirectory,
	roles RoleDirectory,
	companies CompanyDirectory,
	photos PhotoStore,
	audit *AuditRecorder,
) *UserService {
	return &UserService{
		users:     users,
		roles:     roles,
		companies: companies,
		photos:    photos,
		audit:     audit,
	}
}

// GetAll lists non-deleted users with role and company names joined in
// application code. Search matches name and email.
func (s *UserService) GetAll(ctx context.Context, limit, offset int, search string) ([]dto.UserResponse, int64, error) {
	users, total, err := s.users.GetAll(ctx, limit, offset, search)
	if err != nil {
		return nil, 0, errors.WrapError(errors.ErrStorage, err)
	}

	roleNames, companyNames, err := s.lookupNames(ctx, users)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, s.toResponse(&users[i], roleNames, companyNames))
	}
	return responses, total, nil
}

// GetByID returns one non-deleted user.
func (s *UserService) GetByID(ctx context.Context, id uint) (*dto.UserResponse, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrUserNotFound
		}
		return nil, errors.WrapError(errors.ErrStorage, err)
	}

	roleNames, companyNames, err := s.lookupNames(ctx, []model.User{*user})
	if err != nil {
		return nil, err
	}

	resp := s.toResponse(user, roleNames, companyNames)
	return &resp, nil
}

// Update patches the mutable profile fields. Email, role and company are
// not updatable here.
func (s *UserService) Update(ctx context.Context, id uint, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	fields := map[string]interface{}{}
	if req.Name != "" {
		fields["name"] = req.Name
	}
	if req.Phone != "" {
		fields["phone"] = req.Phone
	}
	if req.Telegram != "" {
		fields["telegram"] = req.Telegram
	}
	if req.NotifyOnUpdates != nil {
		fields["notify_on_updates"] = *req.NotifyOnUpdates
	}

	if len(fields) > 0 {
		if err := s.users.UpdateProfile(ctx, id, fields); err != nil {
			if stderrors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errors.ErrUserNotFound
			}
			return nil, errors.WrapError(errors.ErrStorage, err)
		}
	}

	return s.GetByID(ctx, id)
}

// SoftDelete marks a user deleted. The row is retained but excluded from
// every read and its email becomes reusable. Users cannot delete
// themselves.
func (s *UserService) SoftDelete(ctx context.Context, callerID, targetID uint) error {
	if callerID == targetID {
		return errors.ErrSelfDeletion
	}

	if err := s.users.SoftDelete(ctx, targetID); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrUserNotFound
		}
		return errors.WrapError(errors.ErrStorage, err)
	}

	logger.InfoWithContext(ctx, "User soft deleted").
		Uint("user_id", targetID).
		Uint("deleted_by", callerID).
		Log()

	s.audit.Record(ctx, &targetID, model.AuditUserSoftDeleted, map[string]interface{}{
		"deleted_by": callerID,
	})
	return nil
}

// UploadPhoto stores a profile photo in the blob store and saves its
// public URL on the user row.
func (s *UserService) UploadPhoto(ctx context.Context, userID uint, filename string, data []byte, contentType string) (*dto.UploadPhotoResponse, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrUserNotFound
		}
		return nil, errors.WrapError(errors.ErrStorage, err)
	}

	ext := path.Ext(filename)
	key := fmt.Sprintf("users/%d/photo-%d-%s%s", userID, time.Now().Unix(), uuid.NewString()[:8], ext)

	url, err := s.photos.Upload(ctx, key, data, contentType)
	if err != nil {
		return nil, errors.WrapError(errors.ErrStorage, err)
	}

	if err := s.users.SetPhotoURL(ctx, userID, url); err != nil {
		return nil, errors.WrapError(errors.ErrStorage, err)
	}

	logger.InfoWithContext(ctx, "User photo updated").
		Uint("user_id", userID).
		String("key", key).
		Log()

	s.audit.Record(ctx, &userID, model.AuditUserPhotoUpdated, map[string]interface{}{
		"photo_url": url,
	})
	return &dto.UploadPhotoResponse{PhotoURL: url}, nil
}

func (s *UserService) lookupNames(ctx context.Context, users []model.User) (map[uint]string, map[uint]string, error) {
	roleIDSet := map[uint]struct{}{}
	companyIDSet := map[uint]struct{}{}
	for i := range users {
		roleIDSet[users[i].RoleID] = struct{}{}
		companyIDSet[users[i].CompanyID] = struct{}{}
	}

	roleIDs := make([]uint, 0, len(roleIDSet))
	for id := range roleIDSet {
		roleIDs = append(roleIDs, id)
	}
	companyIDs := make([]uint, 0, len(companyIDSet))
	for id := range companyIDSet {
		companyIDs = append(companyIDs, id)
	}

	roleNames := map[uint]string{}
	if len(roleIDs) > 0 {
		roles, err := s.roles.ListByIDs(ctx, roleIDs)
		if err != nil {
			return nil, nil, errors.WrapError(errors.ErrStorage, err)
		}
		for i := range roles {
			roleNames[roles[i].ID] = roles[i].Name
		}
	}

	companyNames := map[uint]string{}
	if len(companyIDs) > 0 {
		companies, err := s.companies.ListByIDs(ctx, companyIDs)
		if err != nil {
			return nil, nil, errors.WrapError(errors.ErrStorage, err)
		}
		for i := range companies {
			companyNames[companies[i].ID] = companies[i].Name
		}
	}

	return roleNames, companyNames, nil
}

func (s *UserService) toResponse(user *model.User, roleNames, companyNames map[uint]string) dto.UserResponse {
	return dto.UserResponse{
		ID:              user.ID,
		Name:            user.Name,
		Email:           user.Email,
		Phone:           user.Phone,
		Telegram:        user.Telegram,
		PhotoURL:        user.PhotoURL,
		NotifyOnUpdates: user.NotifyOnUpdates,
		RoleID:          user.RoleID,
		RoleName:        roleNames[user.RoleID],
		CompanyID:       user.CompanyID,
		CompanyName:     companyNames[user.CompanyID],
		IsPending:       user.IsPending,
		CreatedAt:       user.CreatedAt,
		UpdatedAt:       user.UpdatedAt,
	}
}
