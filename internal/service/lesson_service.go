package service

import (
	"context"
	"encoding/json"
	"fmt"
	"lesson_quiz_backend/internal/config"
	"lesson_quiz_backend/internal/model"
	"lesson_quiz_backend/internal/repository"
	"lesson_quiz_backend/internal/util"
	"lesson_quiz_backend/pkg/logger"
	"lesson_quiz_backend/pkg/monitoring"
	"lesson_quiz_backend/pkg/tracing"
	"math"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type GenerateInput struct {
	Content      string
	NumQuestions int
	Format       string
}

// generationSettings 热更新时整体替换
type generationSettings struct {
	generator          *QuestionGenerator
	maxContentChars    int
	storedContentChars int
	persistTimeout     time.Duration
}

type LessonService struct {
	simplifier *Simplifier
	repo       repository.SubmissionRepository
	rand       util.Rand
	settings   atomic.Pointer[generationSettings]
	ids        submissionIDs
	now        func() time.Time
}

// NewLessonService repo 为 nil 时不保存提交记录（命令行模式）
func NewLessonService(repo repository.SubmissionRepository, cfg *config.GenerationConfig, r util.Rand) *LessonService {
	if r == nil {
		r = util.DefaultRand()
	}
	s := &LessonService{
		simplifier: NewSimplifier(),
		repo:       repo,
		rand:       r,
		now:        time.Now,
	}
	s.ApplyConfig(cfg)
	return s
}

// ApplyConfig 原子替换生成参数
func (s *LessonService) ApplyConfig(cfg *config.GenerationConfig) {
	opts := DefaultQuestionGeneratorOptions()
	opts.TrueProbability = cfg.TrueProbability

	s.settings.Store(&generationSettings{
		generator:          NewQuestionGenerator(opts, s.rand),
		maxContentChars:    cfg.MaxContentChars,
		storedContentChars: cfg.StoredContentChars,
		persistTimeout:     cfg.PersistTimeout,
	})
}

// Generate 校验输入 -> 简化 -> 出题 -> 尽力保存。保存失败不影响返回结果
func (s *LessonService) Generate(ctx context.Context, in GenerateInput) (*model.GenerateResult, error) {
	if strings.TrimSpace(in.Content) == "" {
		return nil, util.InvalidInput(`Please provide content in the "content" field.`)
	}

	settings := s.settings.Load()
	if settings.maxContentChars > 0 && util.RuneLen(in.Content) > settings.maxContentChars {
		return nil, util.InvalidInput(fmt.Sprintf("Content is too long (max %d characters).", settings.maxContentChars))
	}

	text := in.Content
	if in.Format == util.FormatHTML {
		extracted, err := ExtractLessonText(in.Content)
		if err != nil {
			return nil, err
		}
		text = extracted
	}

	count := ClampQuestionCount(in.NumQuestions)

	ctx, span := tracing.Tracer().Start(ctx, "lesson.generate", trace.WithAttributes(
		attribute.Int("lesson.content_chars", util.RuneLen(text)),
		attribute.Int("lesson.num_questions", count),
		attribute.String("lesson.format", in.Format),
	))
	defer span.End()

	result, err := s.build(settings, text, count)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "generation failed")
		return nil, err
	}

	for _, q := range result.Questions {
		monitoring.QuestionsGenerated.WithLabelValues(string(q.Type)).Inc()
	}

	s.persist(ctx, settings, in.Content, result)
	return result, nil
}

// build 简化和出题中的 panic 转为 ErrInternal，不返回部分结果
func (s *LessonService) build(settings *generationSettings, text string, count int) (result *model.GenerateResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("%w: %v", util.ErrInternal, r)
		}
	}()

	simplified := s.simplifier.Simplify(text)
	questions := settings.generator.Generate(text, count)
	return &model.GenerateResult{Simplified: simplified, Questions: questions}, nil
}

func (s *LessonService) persist(ctx context.Context, settings *generationSettings, content string, result *model.GenerateResult) {
	if s.repo == nil {
		return
	}

	now := s.now()
	submission := &model.Submission{
		ID:         s.ids.next(now),
		CreatedAt:  now.UTC(),
		Content:    util.TruncateRunes(content, settings.storedContentChars),
		Simplified: result.Simplified,
		Questions:  result.Questions,
	}

	// 客户端断开不应取消写入
	ctx = context.WithoutCancel(ctx)
	if settings.persistTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, settings.persistTimeout)
		defer cancel()
	}

	if err := s.repo.Append(ctx, submission); err != nil {
		monitoring.PersistFailures.WithLabelValues(s.repo.Backend()).Inc()
		logger.Log.Warn("Could not write submission",
			zap.String("backend", s.repo.Backend()),
			zap.Int64("id", submission.ID),
			zap.Error(err),
		)
		return
	}
	logger.Log.Debug("Submission saved", zap.String("backend", s.repo.Backend()), zap.Int64("id", submission.ID))
}

// submissionIDs 毫秒时间戳，同一毫秒内递增保证唯一
type submissionIDs struct {
	mu   sync.Mutex
	last int64
}

func (g *submissionIDs) next(t time.Time) int64 {
	id := t.UnixMilli()

	g.mu.Lock()
	defer g.mu.Unlock()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}

func ClampQuestionCount(n int) int {
	if n < util.MinQuestionCount {
		return util.MinQuestionCount
	}
	if n > util.MaxQuestionCount {
		return util.MaxQuestionCount
	}
	return n
}

// ParseQuestionCount 解析请求中的 num_questions：缺省或非数字取默认值 5，
// 数字向零取整后限制在 [1,20]
func ParseQuestionCount(raw interface{}) int {
	var f float64
	switch v := raw.(type) {
	case float64:
		f = v
	case int:
		f = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return util.DefaultQuestionCount
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return util.DefaultQuestionCount
		}
		f = parsed
	default:
		return util.DefaultQuestionCount
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return util.DefaultQuestionCount
	}
	f = math.Trunc(f)
	if f < util.MinQuestionCount {
		return util.MinQuestionCount
	}
	if f > util.MaxQuestionCount {
		return util.MaxQuestionCount
	}
	return int(f)
}
