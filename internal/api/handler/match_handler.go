package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"cv-ai-go/internal/config"
	"cv-ai-go/internal/logger"
	"cv-ai-go/internal/processor"
	"cv-ai-go/internal/types"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

// MatchHandler 处理候选人推荐请求
type MatchHandler struct {
	ranker *processor.CandidateRanker
	logger *log.Logger
}

// NewMatchHandler 创建候选人推荐处理器
func NewMatchHandler(cfg *config.Config, ranker *processor.CandidateRanker) *MatchHandler {
	return &MatchHandler{
		ranker: ranker,
		logger: logger.NewStdLogger("[MatchHandler] ", cfg.Logger.Level == "debug"),
	}
}

// HandleRecommend 按岗位对候选人排序。
// POST /api/v1/candidates/recommend
func (h *MatchHandler) HandleRecommend(ctx context.Context, c *app.RequestContext) {
	var req types.RecommendRequest
	if err := json.Unmarshal(c.Request.Body(), &req); err != nil {
		c.JSON(consts.StatusBadRequest, &types.RecommendResponse{Success: false, Message: "invalid JSON body: " + err.Error()})
		return
	}

	candidates := req.Profiles()
	h.logger.Printf("收到候选人推荐请求, 候选人数量: %d", len(candidates))

	results, err := h.ranker.Recommend(ctx, req.Job, candidates)
	if err != nil {
		if errors.Is(err, processor.ErrInvalidJob) {
			c.JSON(consts.StatusBadRequest, &types.RecommendResponse{Success: false, Message: err.Error()})
			return
		}
		logger.Ctx(ctx).Error().Err(err).Int("candidates", len(candidates)).Msg("候选人排序失败")
		c.JSON(consts.StatusInternalServerError, &types.RecommendResponse{Success: false, Message: err.Error()})
		return
	}

	c.JSON(consts.StatusOK, &types.RecommendResponse{Success: true, Data: results})
}
