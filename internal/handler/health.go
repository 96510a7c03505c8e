package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Naseebullah-Wali/MoProject/internal/constants"
	"github.com/Naseebullah-Wali/MoProject/pkg/blob"
	"github.com/Naseebullah-Wali/MoProject/pkg/redis"
)

type HealthHandler struct {
	db      *gorm.DB
	redis   *redis.Client
	blob    *blob.Store
	started time.Time
}

func NewHealthHandler(db *gorm.DB, redisClient *redis.Client, blobStore *blob.Store) *HealthHandler {
	return &HealthHandler{
		db:      db,
		redis:   redisClient,
		blob:    blobStore,
		started: time.Now(),
	}
}

// Check reports service liveness plus the state of its dependencies. The
// endpoint degrades to 503 only when the database is unreachable; redis is
// optional and reported informationally.
func (h *HealthHandler) Check(c *gin.Context) {
	ctx := c.Request.Context()

	status := http.StatusOK
	dbStatus := "up"

	sqlDB, err := h.db.DB()
	if err != nil {
		dbStatus = "down"
		status = http.StatusServiceUnavailable
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "down"
		status = http.StatusServiceUnavailable
	}

	redisStatus := "disabled"
	if h.redis.IsEnabled() {
		redisStatus = "up"
		if err := h.redis.Ping(ctx); err != nil {
			redisStatus = "down"
		}
	}

	blobStatus := "up"
	if err := h.blob.Ping(ctx); err != nil {
		blobStatus = "down"
	}

	overall := "ok"
	if status != http.StatusOK {
		overall = "degraded"
	}

	c.JSON(status, gin.H{
		"service": constants.AppName,
		"status":  overall,
		"uptime":  time.Since(h.started).String(),
		"dependencies": gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
			"blob":     blobStatus,
		},
	})
}
