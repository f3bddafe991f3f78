package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vb-capital-ai/cmd/api/quota"
	"vb-capital-ai/config"
	"vb-capital-ai/gemini"
	"vb-capital-ai/internal/logger"
	"vb-capital-ai/models"
)

const testAPIKey = "AIza-test-secret-key"

type fakeGenerator struct {
	requests []gemini.Request
	text     string
	err      error
}

func (f *fakeGenerator) Generate(_ context.Context, req gemini.Request) (gemini.Result, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return gemini.Result{}, f.err
	}
	return gemini.Result{
		Text:         f.text,
		ModelVersion: "gemini-1.5-flash-002",
		Usage:        gemini.TokenUsage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15},
	}, nil
}

type fakeAILogs struct {
	logs []models.AILog
	err  error
}

func (f *fakeAILogs) Insert(_ context.Context, log models.AILog) (string, error) {
	f.logs = append(f.logs, log)
	return "id", f.err
}

func newBridge(gen TextGenerator, promptHistory string, opts ...BridgeOption) *BridgeService {
	cfg := config.Defaults()
	cfg.Chat.PromptHistory = promptHistory
	opts = append([]BridgeOption{WithAPIKeySource(func() string { return testAPIKey })}, opts...)
	return NewBridgeService(gen, cfg, opts...)
}

func greetingAndQuestion(q string) []models.Turn {
	return []models.Turn{
		{Role: models.RoleAssistant, Content: "Hello! How can I assist you today?"},
		{Role: models.RoleUser, Content: "earlier question"},
		{Role: models.RoleAssistant, Content: "earlier answer"},
		{Role: models.RoleUser, Content: q},
	}
}

func TestGenerateReplyWrapsTextInAssistantTurn(t *testing.T) {
	gen := &fakeGenerator{text: "VB Capital focuses on **fintech**."}
	b := newBridge(gen, config.PromptHistoryLatest)

	reply, err := b.GenerateReply(context.Background(), greetingAndQuestion("What sectors does VB Capital invest in?"))
	require.NoError(t, err)
	assert.Equal(t, models.RoleAssistant, reply.Role)
	assert.Equal(t, "VB Capital focuses on **fintech**.", reply.Content)

	require.Len(t, gen.requests, 1)
	req := gen.requests[0]
	assert.Equal(t, "gemini-1.5-flash", req.Model)
	assert.Equal(t, testAPIKey, req.APIKey)
	assert.Empty(t, req.SystemInstruction)
}

// The prompt only carries the newest turn; earlier history is dropped on purpose.
func TestLatestModePromptIgnoresEarlierTurns(t *testing.T) {
	gen := &fakeGenerator{text: "ok"}
	b := newBridge(gen, config.PromptHistoryLatest)

	_, err := b.GenerateReply(context.Background(), greetingAndQuestion("newest question"))
	require.NoError(t, err)

	contents := gen.requests[0].Contents
	require.Len(t, contents, 1)
	require.Len(t, contents[0].Parts, 1)
	prompt := contents[0].Parts[0].Text
	assert.Equal(t, SystemPrompt+"\n\nUser: newest question", prompt)
	assert.NotContains(t, prompt, "earlier question")
	assert.NotContains(t, prompt, "earlier answer")
}

func TestFullModeSendsWholeHistory(t *testing.T) {
	gen := &fakeGenerator{text: "ok"}
	b := newBridge(gen, config.PromptHistoryFull)

	_, err := b.GenerateReply(context.Background(), greetingAndQuestion("newest question"))
	require.NoError(t, err)

	req := gen.requests[0]
	assert.Equal(t, SystemPrompt, req.SystemInstruction)
	require.Len(t, req.Contents, 4)
	assert.Equal(t, "model", req.Contents[0].Role)
	assert.Equal(t, "user", req.Contents[3].Role)
	assert.Equal(t, "newest question", req.Contents[3].Parts[0].Text)
}

func TestMissingCredentialIsConfigurationError(t *testing.T) {
	gen := &fakeGenerator{text: "unused"}
	b := newBridge(gen, config.PromptHistoryLatest, WithAPIKeySource(func() string { return "" }))

	_, err := b.GenerateReply(context.Background(), greetingAndQuestion("hi there"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfiguration)
	assert.NotErrorIs(t, err, ErrMalformedRequest)

	be := AsBridgeError(err)
	assert.Equal(t, http.StatusInternalServerError, be.StatusCode)
	assert.Equal(t, "configuration_error", be.Code())
	assert.Equal(t, "API key not configured", be.Message)
	assert.Empty(t, gen.requests)
}

func TestCredentialReadFromEnvironmentAtCallTime(t *testing.T) {
	gen := &fakeGenerator{text: "ok"}
	t.Setenv(config.GeminiAPIKeyEnv, "")
	b := NewBridgeService(gen, config.Defaults())

	_, err := b.GenerateReply(context.Background(), greetingAndQuestion("hi there"))
	assert.ErrorIs(t, err, ErrConfiguration)

	t.Setenv(config.GeminiAPIKeyEnv, "late-key")
	_, err = b.GenerateReply(context.Background(), greetingAndQuestion("hi there"))
	require.NoError(t, err)
	assert.Equal(t, "late-key", gen.requests[0].APIKey)
}

func TestCredentialFieldsNeverCarryTheKey(t *testing.T) {
	fields := credentialFields(testAPIKey)
	assert.Equal(t, true, fields["api_key_exists"])
	assert.Equal(t, len(testAPIKey), fields["api_key_length"])
	for k, v := range fields {
		assert.NotContains(t, fmt.Sprint(v), testAPIKey, "field %s leaks the key", k)
	}
}

func TestUpstreamFailureCarriesDetails(t *testing.T) {
	cause := errors.New("googleapi: Error 503: model overloaded")
	gen := &fakeGenerator{err: cause}
	logs := &fakeAILogs{}
	b := newBridge(gen, config.PromptHistoryLatest, WithAILogRecorder(logs))

	_, err := b.GenerateReply(context.Background(), greetingAndQuestion("hi there"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUpstream)
	assert.ErrorIs(t, err, cause)

	be := AsBridgeError(err)
	assert.Equal(t, http.StatusInternalServerError, be.StatusCode)
	assert.Equal(t, "Error processing your request", be.Message)
	assert.Equal(t, cause.Error(), be.Details)

	require.Len(t, logs.logs, 1)
	assert.False(t, logs.logs[0].Success)
	require.NotNil(t, logs.logs[0].ErrorMessage)
}

func TestUpstreamErrorDetailsNeverEchoTheKey(t *testing.T) {
	gen := &fakeGenerator{err: fmt.Errorf("request with key=%s rejected", testAPIKey)}
	b := newBridge(gen, config.PromptHistoryLatest)

	_, err := b.GenerateReply(context.Background(), greetingAndQuestion("hi there"))
	be := AsBridgeError(err)
	assert.NotContains(t, be.Details, testAPIKey)
	assert.NotContains(t, be.Error(), testAPIKey)
	assert.Contains(t, be.Details, "[REDACTED]")
}

func TestMalformedTurnsAreRejectedBeforeAnyCall(t *testing.T) {
	testCases := []struct {
		name  string
		turns []models.Turn
		want  string
	}{
		{name: "empty", turns: nil, want: "at least one turn"},
		{name: "unknown role", turns: []models.Turn{{Role: "system", Content: "x"}}, want: "messages[0].role"},
		{name: "blank last content", turns: []models.Turn{{Role: models.RoleUser, Content: "hi"}, {Role: models.RoleUser, Content: "  "}}, want: "last message content"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gen := &fakeGenerator{text: "unused"}
			b := newBridge(gen, config.PromptHistoryLatest)

			_, err := b.GenerateReply(context.Background(), tc.turns)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedRequest)
			be := AsBridgeError(err)
			assert.Equal(t, http.StatusBadRequest, be.StatusCode)
			assert.True(t, strings.Contains(be.Details, tc.want), be.Details)
			assert.Empty(t, gen.requests)
		})
	}
}

func TestIdenticalInputIsNotCached(t *testing.T) {
	gen := &fakeGenerator{text: "ok"}
	b := newBridge(gen, config.PromptHistoryLatest)
	turns := greetingAndQuestion("same question")

	for i := 0; i < 2; i++ {
		_, err := b.GenerateReply(context.Background(), turns)
		require.NoError(t, err)
	}
	assert.Len(t, gen.requests, 2)
}

func TestQuotaExhaustionIsRateLimited(t *testing.T) {
	gen := &fakeGenerator{text: "ok"}
	b := newBridge(gen, config.PromptHistoryLatest, WithQuota(quota.NewLimiter(config.QuotaConfig{RequestsPerDay: 1})))

	_, err := b.GenerateReply(context.Background(), greetingAndQuestion("first"))
	require.NoError(t, err)
	_, err = b.GenerateReply(context.Background(), greetingAndQuestion("second"))
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Equal(t, http.StatusTooManyRequests, AsBridgeError(err).StatusCode)
	assert.Len(t, gen.requests, 1)
}

func TestSuccessIsRecordedAndRecorderFailureIsIgnored(t *testing.T) {
	gen := &fakeGenerator{text: "answer"}
	logs := &fakeAILogs{err: errors.New("mongo down")}
	b := newBridge(gen, config.PromptHistoryLatest, WithAILogRecorder(logs))

	reply, err := b.GenerateReply(context.Background(), greetingAndQuestion("q?"))
	require.NoError(t, err)
	assert.Equal(t, "answer", reply.Content)

	require.Len(t, logs.logs, 1)
	entry := logs.logs[0]
	assert.True(t, entry.Success)
	assert.Equal(t, int64(15), entry.TotalTokens)
	assert.Equal(t, 4, entry.TurnCount)
	assert.Equal(t, config.PromptHistoryLatest, entry.PromptMode)
	assert.NotContains(t, entry.InputPrompt, testAPIKey)
}

func TestAsBridgeErrorWrapsUnknownErrors(t *testing.T) {
	be := AsBridgeError(errors.New("boom"))
	assert.ErrorIs(t, be, ErrUpstream)
	assert.Equal(t, "boom", be.Details)
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	prev := logger.Log
	logger.Log = logger.NewWriterLogger(buf, "debug")
	t.Cleanup(func() { logger.Log = prev })
	return buf
}

func TestKeyNeverReachesTheLogStream(t *testing.T) {
	logs := captureLogs(t)

	ok := newBridge(&fakeGenerator{text: "fine"}, config.PromptHistoryLatest)
	_, err := ok.GenerateReply(context.Background(), greetingAndQuestion("first question"))
	require.NoError(t, err)

	failing := newBridge(&fakeGenerator{err: fmt.Errorf("401 for key %s", testAPIKey)}, config.PromptHistoryLatest)
	_, err = failing.GenerateReply(context.Background(), greetingAndQuestion("second question"))
	require.Error(t, err)

	out := logs.String()
	require.NotEmpty(t, out)
	assert.Contains(t, out, `"api_key_exists":true`)
	assert.Contains(t, out, fmt.Sprintf(`"api_key_length":%d`, len(testAPIKey)))
	assert.Contains(t, out, "[REDACTED]")
	assert.NotContains(t, out, testAPIKey)
}
