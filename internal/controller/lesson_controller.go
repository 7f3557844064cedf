package controller

import (
	"context"
	"errors"
	"io"
	"lesson_quiz_backend/internal/model"
	"lesson_quiz_backend/internal/service"
	"lesson_quiz_backend/internal/util"
	"lesson_quiz_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LessonGenerator 由 service.LessonService 实现
type LessonGenerator interface {
	Generate(ctx context.Context, in service.GenerateInput) (*model.GenerateResult, error)
}

type LessonController struct {
	service LessonGenerator
}

func NewLessonController(s LessonGenerator) *LessonController {
	return &LessonController{service: s}
}

// GenerateRequest content 和 num_questions 用 interface{} 接收，以便区分缺失、非字符串和非数字
type GenerateRequest struct {
	Content      interface{} `json:"content" swaggertype:"string"`
	NumQuestions interface{} `json:"num_questions" swaggertype:"integer"`
	Format       string      `json:"format" enums:"text,html"`
}

const missingContentMessage = `Please provide content in the "content" field.`

// Generate godoc
// @Summary 简化课文并生成练习题
// @Description 返回简化后的 HTML 与 num_questions 道练习题（默认 5，范围 1-20），题型按 mcq / true_false / short_answer 轮换
// @Tags 课文
// @Accept json
// @Produce json
// @Param body body GenerateRequest true "课文内容"
// @Success 200 {object} util.Response{data=model.GenerateResult}
// @Failure 400 {object} util.Response
// @Failure 500 {object} util.Response
// @Router /generate [post]
func (c *LessonController) Generate(ctx *gin.Context) {
	var req GenerateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		if errors.Is(err, io.EOF) {
			util.BadRequest(ctx, missingContentMessage)
			return
		}
		util.BadRequest(ctx, "Invalid JSON body: "+err.Error())
		return
	}

	content, ok := req.Content.(string)
	if !ok {
		util.BadRequest(ctx, missingContentMessage)
		return
	}

	switch req.Format {
	case "", util.FormatText, util.FormatHTML:
	default:
		util.BadRequest(ctx, `Unsupported format, expected "text" or "html".`)
		return
	}

	result, err := c.service.Generate(ctx.Request.Context(), service.GenerateInput{
		Content:      content,
		NumQuestions: service.ParseQuestionCount(req.NumQuestions),
		Format:       req.Format,
	})
	if err != nil {
		if errors.Is(err, util.ErrInvalidInput) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	logger.Log.Info("Lesson generated",
		zap.String("request_id", ctx.GetString(util.RequestIDKey)),
		zap.Int("questions", len(result.Questions)),
	)
	util.Success(ctx, result)
}
