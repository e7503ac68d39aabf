package handler

import (
	"context"
	"time"

	"cv-ai-go/internal/constants"
	"cv-ai-go/internal/processor"
	"cv-ai-go/internal/storage"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

// HealthHandler 健康检查
type HealthHandler struct {
	loader  *processor.ModelLoader
	storage *storage.Storage
}

// NewHealthHandler loader 与 storage 均可为 nil
func NewHealthHandler(loader *processor.ModelLoader, store *storage.Storage) *HealthHandler {
	return &HealthHandler{loader: loader, storage: store}
}

// HandleHealth GET /api/v1/health
func (h *HealthHandler) HandleHealth(ctx context.Context, c *app.RequestContext) {
	resp := utils.H{
		"status":  "ok",
		"service": constants.ServiceName,
		"version": constants.ServiceVersion,
	}

	if h.loader != nil {
		resp["model_version"] = h.loader.ModelVersion()
		resp["model_loaded"] = h.loader.Loaded()
	}

	redisStatus := "disabled"
	if h.storage != nil && h.storage.Redis != nil {
		pingCtx, cancel := context.WithTimeout(ctx, time.Second)
		defer cancel()
		if err := h.storage.Redis.Ping(pingCtx); err != nil {
			redisStatus = "unavailable"
		} else {
			redisStatus = "ok"
		}
	}
	// Redis 只做缓存, 不可用不影响整体状态
	resp["redis"] = redisStatus

	c.JSON(consts.StatusOK, resp)
}
