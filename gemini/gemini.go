package gemini

import (
	"context"
	"errors"
	"net/http"

	"google.golang.org/genai"

	"vb-capital-ai/models"
)

const (
	roleUser  = "user"
	roleModel = "model"
)

// Request is one single-shot, non-streaming GenerateContent call.
type Request struct {
	APIKey            string
	Model             string
	SystemInstruction string
	Contents          []*genai.Content
}

type Result struct {
	Text         string
	ModelVersion string
	Usage        TokenUsage
}

type TokenUsage struct {
	InputTokens  int64 `json:"input_tokens"`
	OutputTokens int64 `json:"output_tokens"`
	TotalTokens  int64 `json:"total_tokens"`
}

// Client creates a genai client per call so the API key is always the one read at call time.
type Client struct {
	httpClient *http.Client
}

// New returns a Client sending requests through httpClient. A nil httpClient lets genai use its default.
func New(httpClient *http.Client) *Client {
	return &Client{httpClient: httpClient}
}

func (c *Client) Generate(ctx context.Context, req Request) (Result, error) {
	if req.APIKey == "" {
		return Result{}, errors.New("gemini: api key is empty")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     req.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: c.httpClient,
	})
	if err != nil {
		return Result{}, err
	}

	var cfg *genai.GenerateContentConfig
	if req.SystemInstruction != "" {
		cfg = &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: req.SystemInstruction}}},
		}
	}

	result, err := client.Models.GenerateContent(ctx, req.Model, req.Contents, cfg)
	if err != nil {
		return Result{}, err
	}
	if result == nil {
		return Result{}, errors.New("gemini: empty response")
	}

	out := Result{Text: result.Text(), ModelVersion: result.ModelVersion}
	if result.UsageMetadata != nil {
		out.Usage = TokenUsage{
			InputTokens:  int64(result.UsageMetadata.PromptTokenCount),
			OutputTokens: int64(result.UsageMetadata.CandidatesTokenCount),
			TotalTokens:  int64(result.UsageMetadata.TotalTokenCount),
		}
	}
	return out, nil
}

// PromptContents wraps a single prompt string as user content.
func PromptContents(prompt string) []*genai.Content {
	return genai.Text(prompt)
}

// HistoryContents maps chat turns to Gemini contents, assistant turns becoming "model".
// Turns with any other role are skipped.
func HistoryContents(turns []models.Turn) []*genai.Content {
	contents := make([]*genai.Content, 0, len(turns))
	for _, t := range turns {
		var role string
		switch t.Role {
		case models.RoleUser:
			role = roleUser
		case models.RoleAssistant:
			role = roleModel
		default:
			continue
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: t.Content}},
		})
	}
	return contents
}
