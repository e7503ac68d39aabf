package router

import (
	"context"
	"crypto/subtle"
	"errors"

	"cv-ai-go/internal/api/handler"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/hertz-contrib/keyauth"
)

var errInvalidAPIKey = errors.New("invalid api key")

// Handlers 需要注册的处理器
type Handlers struct {
	CV     *handler.CVHandler
	Match  *handler.MatchHandler
	Health *handler.HealthHandler
}

// RegisterRoutes 注册 API 路由。apiKeys 非空时除健康检查外的路由需要 Bearer 鉴权
func RegisterRoutes(h *server.Hertz, handlers Handlers, apiKeys []string) {
	api := h.Group("/api/v1")

	// 健康检查不需要鉴权
	api.GET("/health", handlers.Health.HandleHealth)

	var middlewares []app.HandlerFunc
	if len(apiKeys) > 0 {
		middlewares = append(middlewares, newKeyAuth(apiKeys))
		hlog.Infof("已启用API Key鉴权, 共 %d 个key", len(apiKeys))
	}
	protected := api.Group("", middlewares...)

	protected.POST("/parse-cv", handlers.CV.HandleParseCV)
	protected.POST("/candidates/recommend", handlers.Match.HandleRecommend)
}

func newKeyAuth(apiKeys []string) app.HandlerFunc {
	return keyauth.New(
		keyauth.WithKeyLookUp("header:Authorization", "Bearer"),
		keyauth.WithValidator(func(ctx context.Context, c *app.RequestContext, key string) (bool, error) {
			for _, allowed := range apiKeys {
				if subtle.ConstantTimeCompare([]byte(key), []byte(allowed)) == 1 {
					return true, nil
				}
			}
			return false, errInvalidAPIKey
		}),
		keyauth.WithErrorHandler(func(ctx context.Context, c *app.RequestContext, err error) {
			c.AbortWithStatusJSON(consts.StatusUnauthorized, utils.H{
				"success": false,
				"message": "unauthorized: " + err.Error(),
			})
		}),
	)
}
