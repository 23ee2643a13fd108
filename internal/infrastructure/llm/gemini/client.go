// Package gemini calls the Google generative-language API to produce
// answers. All backend failures are contained here and surface to callers as
// the backend-unavailable kind, never as raw transport errors.
package gemini

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/arashpr/cheatbot/internal/core/domain"
	"github.com/arashpr/cheatbot/internal/infrastructure/resilience"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	executor   *resilience.Executor
}

func New(apiKey, model string, executor *resilience.Executor) *Client {
	return &Client{
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: 120 * time.Second},
		executor:   executor,
	}
}

// WithBaseURL overrides the API endpoint, for tests.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Generate sends the prompt and returns the first candidate's text, trimmed.
// An empty backend result returns an empty string without error; every
// failure is logged with its cause and wrapped as ErrBackendUnavailable.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	req := generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
	}

	var resp generateResponse
	err := c.executor.Execute(ctx, "generate", func(callCtx context.Context) error {
		return c.postJSON(callCtx, "/models/"+c.model+":generateContent", req, &resp)
	}, classifyBackendError)
	if err != nil {
		slog.Error("gemini_generate_failed", "model", c.model, "error", err)
		return "", domain.WrapError(domain.ErrBackendUnavailable, "generate answer", err)
	}

	return strings.TrimSpace(firstCandidateText(resp)), nil
}

func firstCandidateText(resp generateResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}
	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return b.String()
}
