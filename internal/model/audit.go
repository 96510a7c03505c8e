package model

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Identity audit actions
const (
	AuditUserInvited      = "user.invited"
	AuditUserActivated    = "user.activated"
	AuditInviteResent     = "user.invite_resent"
	AuditUserLogin        = "user.login"
	AuditUserLogout       = "user.logout"
	AuditPasswordChanged  = "user.password_changed"
	AuditPasswordReset    = "user.password_reset"
	AuditResetRequested   = "user.reset_requested"
	AuditUserSoftDeleted  = "user.soft_deleted"
	AuditUserPhotoUpdated = "user.photo_updated"
)

// AuditEvent records one identity lifecycle event. Writes are best effort;
// a failed insert is logged, never surfaced to the caller.
type AuditEvent struct {
	gorm.Model
	UserID   *uint          `gorm:"column:user_id;index"`
	Action   string         `gorm:"column:action;not null;index"`
	Metadata datatypes.JSON `gorm:"column:metadata"`
}
