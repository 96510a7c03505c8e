package model

import (
	"time"

	"gorm.io/gorm"
)

// User is one account. Soft deletion goes through gorm.DeletedAt so a
// deleted row is excluded from every normal query but retained.
//
// Email uniqueness is enforced at the storage layer with a partial unique
// index over non-deleted rows; a duplicate insert surfaces as
// gorm.ErrDuplicatedKey rather than being guarded by a read-then-write.
type User struct {
	gorm.Model
	Name            string `gorm:"column:name"`
	Email           string `gorm:"column:email;not null;uniqueIndex:idx_users_email_live,where:deleted_at IS NULL"`
	Password        string `gorm:"column:password;not null"`
	Phone           string `gorm:"column:phone"`
	Telegram        string `gorm:"column:telegram"`
	PhotoURL        string `gorm:"column:photo_url"`
	NotifyOnUpdates bool   `gorm:"column:notify_on_updates;default:false;not null"`

	RoleID    uint `gorm:"column:role_id;not null"`
	Role      Role `gorm:"foreignKey:RoleID"`
	CompanyID uint `gorm:"column:company_id;not null"`

	// IsPending is true from invitation until first activation.
	IsPending bool `gorm:"column:is_pending;default:true;not null"`

	// Invitation and reset tokens are distinct typed columns with
	// independent expiry; one never validates the other's flow. Both are
	// single use and cleared on consumption.
	InvitationToken        *string    `gorm:"column:invitation_token;index:idx_users_invitation_token,where:invitation_token IS NOT NULL"`
	InvitationTokenExpires *time.Time `gorm:"column:invitation_token_expires_at"`
	ResetToken             *string    `gorm:"column:reset_token;index:idx_users_reset_token,where:reset_token IS NOT NULL"`
	ResetTokenExpires      *time.Time `gorm:"column:reset_token_expires_at"`
}
