// Package vertex implements llm.Completer on Gemini models served by Vertex AI.
package vertex

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"cloud.google.com/go/vertexai/genai"

	"github.com/joseph-ayodele/legal-docify/constants"
	"github.com/joseph-ayodele/legal-docify/internal/common"
)

// ErrEmptyResponse is returned when Gemini produced no text parts.
var ErrEmptyResponse = errors.New("gemini response contained no text")

// Config for the Vertex AI client. Credentials come from Application Default Credentials.
type Config struct {
	ProjectID   string
	Region      string
	Model       string
	Temperature float32
}

type Client struct {
	cfg  Config
	base *genai.Client
	log  *slog.Logger
}

// NewClient dials Vertex AI. Close releases the underlying connection.
func NewClient(ctx context.Context, cfg Config, logger *slog.Logger) (*Client, error) {
	if cfg.ProjectID == "" || cfg.Region == "" {
		return nil, fmt.Errorf("vertex: projectID and region cannot be empty")
	}
	if cfg.Model == "" {
		cfg.Model = constants.DefaultVertexModel
	}
	if logger == nil {
		logger = slog.Default()
	}
	base, err := genai.NewClient(ctx, cfg.ProjectID, cfg.Region)
	if err != nil {
		return nil, fmt.Errorf("genai.NewClient: %w", err)
	}
	return &Client{cfg: cfg, base: base, log: logger}, nil
}

func (c *Client) Provider() string { return string(constants.ProviderVertex) }
func (c *Client) Model() string    { return c.cfg.Model }

func (c *Client) Close() error {
	if c.base != nil {
		return c.base.Close()
	}
	return nil
}

// Complete builds a model handle per call, so the system instruction of one
// call never leaks into a concurrent one.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	rid := common.RequestIDFromContext(ctx)
	start := time.Now()

	model := c.base.GenerativeModel(c.cfg.Model)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(system)},
	}
	model.GenerationConfig = genai.GenerationConfig{
		Temperature: genai.Ptr[float32](c.cfg.Temperature),
	}

	c.log.Info("llm.vertex.start", "req_id", rid, "model", c.cfg.Model, "user_len", len(user))

	resp, err := model.GenerateContent(ctx, genai.Text(user))
	if err != nil {
		c.log.Error("llm.vertex.error", "req_id", rid, "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	text, parts := ResponseText(resp)
	if parts == 0 {
		return "", ErrEmptyResponse
	}
	if parts > 1 {
		c.log.Warn("llm.vertex.multi_part", "req_id", rid, "parts", parts)
	}
	c.log.Info("llm.vertex.ok", "req_id", rid, "reply_len", len(text), "elapsed_ms", time.Since(start).Milliseconds())
	return text, nil
}

// ResponseText concatenates the text parts of the first candidate and reports
// how many there were.
func ResponseText(resp *genai.GenerateContentResponse) (string, int) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", 0
	}
	var b strings.Builder
	n := 0
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
			n++
		}
	}
	return b.String(), n
}
