package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Naseebullah-Wali/MoProject/internal/dto"
	apperrors "github.com/Naseebullah-Wali/MoProject/internal/errors"
	"github.com/Naseebullah-Wali/MoProject/internal/model"
)

type fakePhotoStore struct {
	uploads map[string][]byte
}

func (s *fakePhotoStore) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if s.uploads == nil {
		s.uploads = make(map[string][]byte)
	}
	s.uploads[key] = data
	return "https://cdn.example.com/" + key, nil
}

func newUserFixture(t *testing.T) (*UserService, *fakeDirectory, *fakePhotoStore) {
	t.Helper()

	directory := newFakeDirectory()
	photos := &fakePhotoStore{}
	svc := NewUserService(
		directory,
		&fakeRoles{roles: map[uint]string{1: "Admin", 2: "Editor"}},
		&fakeCompanies{companies: map[uint]string{1: "Acme"}},
		photos,
		NewAuditRecorder(nil),
	)
	return svc, directory, photos
}

func seedUser(t *testing.T, directory *fakeDirectory, email string, roleID uint) *model.User {
	t.Helper()

	user := &model.User{
		Name:      "User " + email,
		Email:     email,
		Password:  "hash",
		RoleID:    roleID,
		CompanyID: 1,
	}
	require.NoError(t, directory.Create(context.Background(), user))
	return user
}

func TestUserService_GetByID_JoinsNames(t *testing.T) {
	svc, directory, _ := newUserFixture(t)
	user := seedUser(t, directory, "joined@example.com", 2)

	resp, err := svc.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Editor", resp.RoleName)
	assert.Equal(t, "Acme", resp.CompanyName)
	assert.Equal(t, "joined@example.com", resp.Email)
}

func TestUserService_GetByID_NotFound(t *testing.T) {
	svc, _, _ := newUserFixture(t)

	_, err := svc.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestUserService_GetAll(t *testing.T) {
	svc, directory, _ := newUserFixture(t)
	seedUser(t, directory, "one@example.com", 1)
	seedUser(t, directory, "two@example.com", 2)

	users, total, err := svc.GetAll(context.Background(), 10, 0, "")
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, users, 2)
}

func TestUserService_Update(t *testing.T) {
	svc, directory, _ := newUserFixture(t)
	user := seedUser(t, directory, "update@example.com", 2)

	notify := true
	resp, err := svc.Update(context.Background(), user.ID, &dto.UpdateUserRequest{
		Name:            "Renamed",
		Phone:           "+123",
		NotifyOnUpdates: &notify,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", resp.Name)
	assert.Equal(t, "+123", resp.Phone)
	assert.True(t, resp.NotifyOnUpdates)
	// Email is not updatable through profile updates.
	assert.Equal(t, "update@example.com", resp.Email)
}

func TestUserService_SoftDelete(t *testing.T) {
	svc, directory, _ := newUserFixture(t)
	admin := seedUser(t, directory, "admin@example.com", 1)
	target := seedUser(t, directory, "target@example.com", 2)
	ctx := context.Background()

	// Self-deletion is rejected.
	err := svc.SoftDelete(ctx, admin.ID, admin.ID)
	assert.ErrorIs(t, err, apperrors.ErrSelfDeletion)

	require.NoError(t, svc.SoftDelete(ctx, admin.ID, target.ID))

	// The deleted user vanishes from reads and its email is reusable.
	_, err = svc.GetByID(ctx, target.ID)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	reused := seedUser(t, directory, "target@example.com", 2)
	assert.NotZero(t, reused.ID)

	err = svc.SoftDelete(ctx, admin.ID, 999)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestUserService_UploadPhoto(t *testing.T) {
	svc, directory, photos := newUserFixture(t)
	user := seedUser(t, directory, "photo@example.com", 2)

	resp, err := svc.UploadPhoto(context.Background(), user.ID, "avatar.png", []byte{1, 2, 3}, "image/png")
	require.NoError(t, err)
	assert.Contains(t, resp.PhotoURL, "https://cdn.example.com/")
	assert.Equal(t, resp.PhotoURL, directory.users[user.ID].PhotoURL)
	assert.Len(t, photos.uploads, 1)
}
