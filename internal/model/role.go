package model

import "gorm.io/gorm"

// Role is the small enumerated user-type table referenced by User.RoleID.
// Its name is embedded as the role claim in session tokens.
type Role struct {
	gorm.Model
	Name string `gorm:"column:name;unique;not null"`
}
