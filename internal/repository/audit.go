package repository

import (
	"context"

	"github.com/Naseebullah-Wali/MoProject/internal/model"
	"gorm.io/gorm"
)

// AuditRepository appends identity lifecycle events.
type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Create(ctx context.Context, event *model.AuditEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}
