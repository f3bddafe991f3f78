package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vb-capital-ai/cmd/api/dto"
	"vb-capital-ai/cmd/api/services"
	"vb-capital-ai/config"
	"vb-capital-ai/eventbus"
	"vb-capital-ai/gemini"
	"vb-capital-ai/models"
)

const testKey = "handler-test-key"

type fakeGenerator struct {
	calls int
	text  string
	err   error
}

func (f *fakeGenerator) Generate(_ context.Context, _ gemini.Request) (gemini.Result, error) {
	f.calls++
	if f.err != nil {
		return gemini.Result{}, f.err
	}
	return gemini.Result{Text: f.text}, nil
}

func newBridge(gen services.TextGenerator, key string) *services.BridgeService {
	return services.NewBridgeService(gen, config.Defaults(), services.WithAPIKeySource(func() string { return key }))
}

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func doJSON(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestHealthHandler(t *testing.T) {
	r := newEngine()
	r.GET("/health", HealthHandler())

	w := doJSON(t, r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode[dto.HealthResponseDTO](t, w).Status)
}

func TestChatHandlerSuccess(t *testing.T) {
	gen := &fakeGenerator{text: "- **Fintech**\n- **Climate**"}
	r := newEngine()
	r.POST("/api/chat", ChatHandler(newBridge(gen, testKey)))

	w := doJSON(t, r, http.MethodPost, "/api/chat", `{"messages":[{"role":"user","content":"What sectors?"}]}`)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[dto.ChatResponseDTO](t, w)
	assert.Equal(t, "assistant", resp.Role)
	assert.Equal(t, "- **Fintech**\n- **Climate**", resp.Content)
	assert.Equal(t, 1, gen.calls)
}

func TestChatHandlerErrors(t *testing.T) {
	testCases := []struct {
		name       string
		key        string
		genErr     error
		body       string
		wantStatus int
		wantCode   string
		wantError  string
		wantCalls  int
	}{
		{
			name:       "unparsable body",
			key:        testKey,
			body:       `{"messages":`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "malformed_request",
			wantError:  "Invalid request body",
		},
		{
			name:       "missing messages",
			key:        testKey,
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "malformed_request",
			wantError:  "Invalid request body",
		},
		{
			name:       "unknown role",
			key:        testKey,
			body:       `{"messages":[{"role":"system","content":"hi"}]}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "malformed_request",
			wantError:  "Invalid request body",
		},
		{
			name:       "missing role",
			key:        testKey,
			body:       `{"messages":[{"content":"hi"}]}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "malformed_request",
			wantError:  "Invalid request body",
		},
		{
			name:       "blank last turn",
			key:        testKey,
			body:       `{"messages":[{"role":"user","content":""}]}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "malformed_request",
			wantError:  "Invalid request body",
		},
		{
			name:       "missing credential",
			key:        "",
			body:       `{"messages":[{"role":"user","content":"hi"}]}`,
			wantStatus: http.StatusInternalServerError,
			wantCode:   "configuration_error",
			wantError:  "API key not configured",
		},
		{
			name:       "upstream failure",
			key:        testKey,
			genErr:     errors.New("quota exceeded for model"),
			body:       `{"messages":[{"role":"user","content":"hi"}]}`,
			wantStatus: http.StatusInternalServerError,
			wantCode:   "upstream_error",
			wantError:  "Error processing your request",
			wantCalls:  1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gen := &fakeGenerator{text: "unused", err: tc.genErr}
			r := newEngine()
			r.POST("/api/chat", ChatHandler(newBridge(gen, tc.key)))

			w := doJSON(t, r, http.MethodPost, "/api/chat", tc.body)
			assert.Equal(t, tc.wantStatus, w.Code)

			body := decode[dto.ErrorResponseDTO](t, w)
			assert.Equal(t, tc.wantCode, body.Code)
			assert.Equal(t, tc.wantError, body.Error)
			assert.Equal(t, tc.wantCalls, gen.calls)
			assert.NotContains(t, w.Body.String(), testKey)
			if tc.genErr != nil {
				assert.Equal(t, tc.genErr.Error(), body.Details)
			}
		})
	}
}

func TestSignInHandler(t *testing.T) {
	testCases := []struct {
		name       string
		body       string
		wantStatus int
		wantText   string
	}{
		{name: "demo account", body: `{"user_id":"demo","password":"demo"}`, wantStatus: http.StatusOK, wantText: "Sign in successful! Redirecting to chat..."},
		{name: "blank fields", body: `{"user_id":"","password":""}`, wantStatus: http.StatusBadRequest, wantText: "Please enter both User ID and Password"},
		{name: "wrong password", body: `{"user_id":"demo","password":"nope"}`, wantStatus: http.StatusUnauthorized, wantText: "Invalid User ID or Password. Please try again."},
		{name: "bad json", body: `not json`, wantStatus: http.StatusBadRequest, wantText: "Invalid request body"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := newEngine()
			r.POST("/api/v1/auth/signin", SignInHandler())

			w := doJSON(t, r, http.MethodPost, "/api/v1/auth/signin", tc.body)
			assert.Equal(t, tc.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tc.wantText)
			assert.NotContains(t, w.Body.String(), "token")
		})
	}
}

type capturePublisher struct {
	events []eventbus.Event
	err    error
}

func (p *capturePublisher) Publish(_ context.Context, _ string, event eventbus.Event) error {
	p.events = append(p.events, event)
	return p.err
}

func (p *capturePublisher) Close() {}

func TestFeedbackHandler(t *testing.T) {
	pub := &capturePublisher{}
	r := newEngine()
	r.POST("/api/v1/feedback", FeedbackHandler(services.NewFeedbackService(pub, eventbus.TopicChatFeedback)))

	w := doJSON(t, r, http.MethodPost, "/api/v1/feedback", `{"content":"Great","feedback":"helpful","session_id":"s1"}`)
	require.Equal(t, http.StatusAccepted, w.Code)
	resp := decode[dto.FeedbackResponseDTO](t, w)
	require.Len(t, pub.events, 1)
	assert.Equal(t, pub.events[0].ID, resp.EventID)

	w = doJSON(t, r, http.MethodPost, "/api/v1/feedback", `{"content":"Great","feedback":"meh"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_feedback", decode[dto.ErrorResponseDTO](t, w).Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/feedback", `{"feedback":"helpful"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "malformed_request", decode[dto.ErrorResponseDTO](t, w).Code)
	assert.Len(t, pub.events, 1)
}

func TestFeedbackHandlerPublishFailure(t *testing.T) {
	r := newEngine()
	r.POST("/api/v1/feedback", FeedbackHandler(services.NewFeedbackService(&capturePublisher{err: errors.New("down")}, eventbus.TopicChatFeedback)))

	w := doJSON(t, r, http.MethodPost, "/api/v1/feedback", `{"content":"Bad","feedback":"not-helpful"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "feedback_publish_failed"))
}

type stubAILogFinder struct {
	logs []models.AILog
	err  error
}

func (s stubAILogFinder) FindByRequestID(_ context.Context, _ string) ([]models.AILog, error) {
	return s.logs, s.err
}

func TestAILogsHandler(t *testing.T) {
	testCases := []struct {
		name       string
		finder     stubAILogFinder
		wantStatus int
		wantCode   string
	}{
		{name: "found", finder: stubAILogFinder{logs: []models.AILog{{RequestID: "r1", Success: true}}}, wantStatus: http.StatusOK},
		{name: "none", finder: stubAILogFinder{}, wantStatus: http.StatusNotFound, wantCode: "ai_log_not_found"},
		{name: "store down", finder: stubAILogFinder{err: errors.New("mongo down")}, wantStatus: http.StatusInternalServerError, wantCode: "ai_log_lookup_failed"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := newEngine()
			r.GET("/api/v1/ai-logs/:request_id", AILogsHandler(tc.finder))

			w := doJSON(t, r, http.MethodGet, "/api/v1/ai-logs/r1", "")
			require.Equal(t, tc.wantStatus, w.Code)
			if tc.wantCode != "" {
				assert.Equal(t, tc.wantCode, decode[dto.ErrorResponseDTO](t, w).Code)
				assert.NotContains(t, w.Body.String(), "mongo down")
				return
			}
			resp := decode[dto.AILogsResponseDTO](t, w)
			assert.Equal(t, "r1", resp.RequestID)
			require.Len(t, resp.Logs, 1)
			assert.True(t, resp.Logs[0].Success)
		})
	}
}
