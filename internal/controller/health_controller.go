package controller

import (
	"context"
	"lesson_quiz_backend/internal/repository"
	"lesson_quiz_backend/internal/util"
	"lesson_quiz_backend/pkg/logger"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type HealthController struct {
	Submissions repository.SubmissionRepository
}

func NewHealthController(repo repository.SubmissionRepository) *HealthController {
	return &HealthController{Submissions: repo}
}

// @Summary 健康检查
// @Description 检查服务和提交记录存储的状态
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Failure 503 {object} util.Response
// @Router /health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	if err := c.Submissions.Ping(pingCtx); err != nil {
		logger.Log.Warn("Submission store unavailable", zap.String("backend", c.Submissions.Backend()), zap.Error(err))
		util.Error(ctx, http.StatusServiceUnavailable, "Submission store unavailable")
		return
	}

	util.Success(ctx, gin.H{
		"status": "ok",
		"components": gin.H{
			"submissions": gin.H{
				"backend": c.Submissions.Backend(),
				"status":  "up",
			},
		},
	})
}
