package pipeline

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/zaribae/spendwise-expense-tracker-app/internal/apperr"
)

// ModelClient is the inference boundary: one prompt in, raw text out. The
// returned text may be malformed; interpreting it is the caller's problem.
type ModelClient interface {
	Invoke(ctx context.Context, prompt string) (string, error)
}

// GeminiClient calls Gemini through the GenAI SDK. The underlying client
// is created once per process and reused across requests.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a Gemini-backed model client. Credentials are
// resolved from the environment by the SDK.
func NewGeminiClient(ctx context.Context, model string) (*GeminiClient, error) {
	if model == "" {
		model = DefaultModelName
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("NewGeminiClient: create genai client: %w", err)
	}

	return &GeminiClient{client: client, model: model}, nil
}

// Invoke sends the prompt and returns the raw model text. No retries: a
// transport or service failure is surfaced as an invocation error.
func (c *GeminiClient) Invoke(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: prompt},
			},
		},
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return "", apperr.Invocation("model invocation failed", err)
	}

	rawText := resp.Text()
	if rawText == "" {
		return "", apperr.Invocation("model returned an empty response", nil)
	}
	return rawText, nil
}
