package database

import (
	"errors"

	"github.com/Naseebullah-Wali/MoProject/internal/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultAdmin defines the default admin user credentials
type DefaultAdmin struct {
	Name     string
	Email    string
	Password string
}

// GetDefaultAdmin returns the default admin user
func GetDefaultAdmin() DefaultAdmin {
	return DefaultAdmin{
		Name:     "Administrator",
		Email:    "admin@moproject.local",
		Password: "Admin@123", // Change this in production!
	}
}

var defaultRoles = []string{"Admin", "Editor", "Viewer"}

// Seed creates initial data for the database
func Seed(db *gorm.DB) error {
	if err := SeedRoles(db); err != nil {
		return err
	}
	return SeedAdmin(db)
}

// SeedRoles creates the enumerated role rows if missing
func SeedRoles(db *gorm.DB) error {
	for _, name := range defaultRoles {
		var existing model.Role
		result := db.Where("name = ?", name).First(&existing)
		if result.Error == nil {
			continue
		}
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}
		if err := db.Create(&model.Role{Name: name}).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedAdmin creates the default admin account and its company if missing.
// The admin is created active, not pending, so first login works out of the
// box.
func SeedAdmin(db *gorm.DB) error {
	admin := GetDefaultAdmin()

	var existingUser model.User
	result := db.Where("email = ?", admin.Email).First(&existingUser)
	if result.Error == nil {
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}

	var adminRole model.Role
	if err := db.Where("name = ?", "Admin").First(&adminRole).Error; err != nil {
		return err
	}

	company := model.Company{Name: "MoProject"}
	if err := db.Where("name = ?", company.Name).FirstOrCreate(&company).Error; err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := model.User{
		Name:      admin.Name,
		Email:     admin.Email,
		Password:  string(hashedPassword),
		RoleID:    adminRole.ID,
		CompanyID: company.ID,
		IsPending: false,
	}

	return db.Create(&user).Error
}
