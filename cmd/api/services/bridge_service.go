package services

import (
	"context"
	"os"
	"strings"
	"time"

	"vb-capital-ai/cmd/api/quota"
	"vb-capital-ai/cmd/api/trace"
	"vb-capital-ai/internal/logger"
	"vb-capital-ai/config"
	"vb-capital-ai/gemini"
	"vb-capital-ai/models"
)

// TextGenerator is the external text-generation service.
type TextGenerator interface {
	Generate(ctx context.Context, req gemini.Request) (gemini.Result, error)
}

// AILogRecorder stores one record per Gemini call.
type AILogRecorder interface {
	Insert(ctx context.Context, log models.AILog) (string, error)
}

// BridgeService 는 턴 목록을 Gemini 호출 한 번으로 바꾸고 결과를 assistant 턴으로 돌려준다.
// 호출마다 독립적이며 재시도, 캐시, 자체 타임아웃이 없다.
type BridgeService struct {
	generator     TextGenerator
	model         string
	promptHistory string
	limiter       *quota.Limiter
	aiLogs        AILogRecorder
	apiKey        func() string
	now           func() time.Time
}

type BridgeOption func(*BridgeService)

func WithQuota(l *quota.Limiter) BridgeOption {
	return func(s *BridgeService) { s.limiter = l }
}

func WithAILogRecorder(r AILogRecorder) BridgeOption {
	return func(s *BridgeService) { s.aiLogs = r }
}

// WithAPIKeySource replaces the GEMINI_API_KEY environment lookup.
func WithAPIKeySource(fn func() string) BridgeOption {
	return func(s *BridgeService) { s.apiKey = fn }
}

func NewBridgeService(generator TextGenerator, cfg config.AppConfig, opts ...BridgeOption) *BridgeService {
	s := &BridgeService{
		generator:     generator,
		model:         cfg.Gemini.ModelName,
		promptHistory: cfg.Chat.PromptHistory,
		apiKey:        func() string { return os.Getenv(config.GeminiAPIKeyEnv) },
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// credentialFields never carries the key itself, only whether it is set and how long it is.
func credentialFields(apiKey string) logger.Fields {
	return logger.Fields{
		"api_key_exists": apiKey != "",
		"api_key_length": len(apiKey),
	}
}

// GenerateReply validates turns and asks Gemini for the next assistant turn.
// Failures are *BridgeError values of kind ErrMalformedRequest, ErrConfiguration,
// ErrRateLimited or ErrUpstream.
func (s *BridgeService) GenerateReply(ctx context.Context, turns []models.Turn) (models.Turn, error) {
	if err := ValidateTurns(turns); err != nil {
		return models.Turn{}, err
	}

	requestID := trace.RequestIDFromContext(ctx)
	apiKey := s.apiKey()
	keyFields := credentialFields(apiKey)
	keyFields["request_id"] = requestID
	logger.InfoWithFields("gemini api key check", keyFields)
	if apiKey == "" {
		logger.ErrorWithFields("GEMINI_API_KEY not found in environment variables", logger.Fields{"request_id": requestID})
		return models.Turn{}, newConfigurationError()
	}

	if ok, err := s.limiter.WaitAndReserve(ctx); err != nil {
		return models.Turn{}, newUpstreamError(err.Error(), err)
	} else if !ok {
		logger.WarnWithFields("gemini quota exhausted", logger.Fields{"request_id": requestID})
		return models.Turn{}, newRateLimitedError()
	}

	req := gemini.Request{APIKey: apiKey, Model: s.model}
	var logPrompt string
	if s.promptHistory == config.PromptHistoryFull {
		req.SystemInstruction = SystemPrompt
		req.Contents = gemini.HistoryContents(turns)
		logPrompt = SystemPrompt + "\n\n" + transcript(turns)
	} else {
		logPrompt = LatestTurnPrompt(turns)
		req.Contents = gemini.PromptContents(logPrompt)
	}

	start := s.now()
	result, err := s.generator.Generate(ctx, req)
	completed := s.now()

	entry := models.AILog{
		RequestID:   requestID,
		ModelName:   s.model,
		PromptMode:  s.promptHistory,
		TurnCount:   len(turns),
		DurationMs:  completed.Sub(start).Milliseconds(),
		InputPrompt: logPrompt,
		RequestedAt: start,
		CompletedAt: completed,
	}

	if err != nil {
		msg := redact(err.Error(), apiKey)
		logger.ErrorWithFields("error calling gemini", logger.Fields{
			"request_id": requestID,
			"model":      s.model,
			"error":      msg,
		})
		entry.ErrorMessage = &msg
		s.record(ctx, entry)
		return models.Turn{}, newUpstreamError(msg, err)
	}

	entry.Success = true
	entry.ModelVersion = result.ModelVersion
	entry.OutputResponse = result.Text
	entry.InputTokens = result.Usage.InputTokens
	entry.OutputTokens = result.Usage.OutputTokens
	entry.TotalTokens = result.Usage.TotalTokens
	s.record(ctx, entry)

	return models.Turn{Role: models.RoleAssistant, Content: result.Text}, nil
}

func (s *BridgeService) record(ctx context.Context, entry models.AILog) {
	if s.aiLogs == nil {
		return
	}
	if _, err := s.aiLogs.Insert(ctx, entry); err != nil {
		logger.WarnWithFields("failed to insert ai log", logger.Fields{
			"request_id": entry.RequestID,
			"error":      err.Error(),
		})
	}
}

func redact(msg, secret string) string {
	if secret == "" {
		return msg
	}
	return strings.ReplaceAll(msg, secret, "[REDACTED]")
}
