package database

import (
	"github.com/Naseebullah-Wali/MoProject/internal/model"
	"gorm.io/gorm"
)

// AutoMigrate runs database migrations for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Role{},
		&model.Company{},
		&model.User{},
		&model.AuditEvent{},
	)
}
