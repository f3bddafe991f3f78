package bridgeclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"vb-capital-ai/cmd/api/dto"
	"vb-capital-ai/cmd/api/httpclient"
	"vb-capital-ai/models"
)

const (
	BaseURLEnv     = "VB_CAPITAL_AI_BASE_URL"
	DefaultBaseURL = "http://localhost:8080"

	maxBodySize = 5 * 1024 * 1024
)

// Client 는 VB Capital AI API 서버를 호출하는 얇은 클라이언트다.
// GenerateReply 는 chat.Bridge 를 만족하므로 터미널 클라이언트의 세션에 그대로 꽂을 수 있다.
type Client struct {
	base *httpclient.BaseClient
}

// HTTPError 는 200 이 아닌 응답이다. 서버 에러 envelope 을 해석할 수 있으면 Response 에 담긴다.
type HTTPError struct {
	StatusCode int
	Body       string
	Response   dto.ErrorResponseDTO
}

func (e *HTTPError) Error() string {
	if e.Response.Code != "" {
		return fmt.Sprintf("vb-capital-ai request failed: status=%d code=%s error=%s", e.StatusCode, e.Response.Code, e.Response.Error)
	}
	return fmt.Sprintf("vb-capital-ai request failed: status=%d body=%s", e.StatusCode, e.Body)
}

// New 는 baseURL 이 비어 있으면 VB_CAPITAL_AI_BASE_URL, 그것도 없으면 localhost:8080 을 쓴다.
// Gemini 응답이 느릴 수 있어 타임아웃을 길게 둔다.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = os.Getenv(BaseURLEnv)
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := httpclient.New(httpclient.Config{Timeout: 5 * time.Minute})
	return &Client{base: httpclient.NewBaseClientWithClient(httpClient, baseURL)}
}

// GenerateReply calls POST /api/chat with the full visible history.
func (c *Client) GenerateReply(ctx context.Context, turns []models.Turn) (models.Turn, error) {
	var out dto.ChatResponseDTO
	if err := c.postJSON(ctx, "/api/chat", dto.NewChatRequest(turns), &out); err != nil {
		return models.Turn{}, err
	}
	return models.Turn{Role: out.Role, Content: out.Content}, nil
}

// SignIn runs the demo credential check and returns the server message.
func (c *Client) SignIn(ctx context.Context, userID, password string) (string, error) {
	var out dto.SignInResponseDTO
	if err := c.postJSON(ctx, "/api/v1/auth/signin", dto.SignInRequestDTO{UserID: userID, Password: password}, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (c *Client) SendFeedback(ctx context.Context, content, feedback, sessionID string) (string, error) {
	var out dto.FeedbackResponseDTO
	in := dto.FeedbackRequestDTO{Content: content, Feedback: feedback, SessionID: sessionID}
	if err := c.postJSON(ctx, "/api/v1/feedback", in, &out); err != nil {
		return "", err
	}
	return out.EventID, nil
}

func (c *Client) postJSON(ctx context.Context, relPath string, in, out any) error {
	buf, err := json.Marshal(in)
	if err != nil {
		return err
	}

	req, err := c.base.NewRequest(ctx, http.MethodPost, relPath, nil, bytes.NewReader(buf))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.base.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if readErr != nil {
		return fmt.Errorf("vb-capital-ai response read failed: %w", readErr)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		httpErr := &HTTPError{StatusCode: resp.StatusCode, Body: string(body)}
		_ = json.Unmarshal(body, &httpErr.Response)
		return httpErr
	}

	return json.Unmarshal(body, out)
}
