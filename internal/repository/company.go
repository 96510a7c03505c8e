package repository

import (
	"context"

	"github.com/Naseebullah-Wali/MoProject/internal/model"
	"gorm.io/gorm"
)

// CompanyRepository reads the organization lookup table.
type CompanyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

func (r *CompanyRepository) GetByID(ctx context.Context, id uint) (*model.Company, error) {
	var company model.Company
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&company).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *CompanyRepository) ListByIDs(ctx context.Context, ids []uint) ([]model.Company, error) {
	var companies []model.Company
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}
