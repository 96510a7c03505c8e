package service

import (
	"context"
	"encoding/json"

	"gorm.io/datatypes"

	"github.com/Naseebullah-Wali/MoProject/internal/model"
	"github.com/Naseebullah-Wali/MoProject/pkg/logger"
)

// AuditStore persists audit events.
type AuditStore interface {
	Create(ctx context.Context, event *model.AuditEvent) error
}

// AuditRecorder writes lifecycle events to the audit log. Recording is
// best effort and never fails the operation that triggered it.
type AuditRecorder struct {
	store AuditStore
}

func NewAuditRecorder(store AuditStore) *AuditRecorder {
	return &AuditRecorder{store: store}
}

func (r *AuditRecorder) Record(ctx context.Context, userID *uint, action string, metadata map[string]interface{}) {
	if r == nil || r.store == nil {
		return
	}

	var payload datatypes.JSON
	if len(metadata) > 0 {
		raw, err := json.Marshal(metadata)
		if err != nil {
			logger.WarnWithContext(ctx, "Failed to encode audit metadata").
				String("action", action).
				Err(err).
				Log()
		} else {
			payload = datatypes.JSON(raw)
		}
	}

	event := &model.AuditEvent{
		UserID:   userID,
		Action:   action,
		Metadata: payload,
	}

	if err := r.store.Create(ctx, event); err != nil {
		logger.ErrorWithContext(ctx, "Failed to record audit event").
			String("action", action).
			Err(err).
			Log()
	}
}
