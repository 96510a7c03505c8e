package model

import "gorm.io/gorm"

// Company is the organization lookup table referenced by User.CompanyID.
type Company struct {
	gorm.Model
	Name string `gorm:"column:name;not null"`
}
