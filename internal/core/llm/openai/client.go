package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/joseph-ayodele/legal-docify/internal/common"
	"github.com/joseph-ayodele/legal-docify/internal/core/llm"
)

// ErrMissingAPIKey is returned before any network call when no key was configured.
var ErrMissingAPIKey = errors.New("openai api key is not configured")

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Temperature float32       `json:"temperature"`
	Messages    []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete implements llm.Completer with a single chat/completions call.
// No retry is attempted.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	rid := common.RequestIDFromContext(ctx)
	start := time.Now()

	if c.cfg.APIKey == "" {
		return "", ErrMissingAPIKey
	}

	c.log.Info("llm.openai.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"temp", c.cfg.Temperature,
		"system_len", len(system),
		"user_len", len(user),
	)

	body := chatRequest{
		Model:       c.cfg.Model,
		Temperature: c.cfg.Temperature,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	}
	headers := map[string]string{"Authorization": "Bearer " + c.cfg.APIKey}

	raw, status, err := llm.SendJSON(ctx, c.httpClient, c.cfg.BaseURL+"/chat/completions", body, headers, c.log)
	if err != nil {
		c.log.Error("llm.openai.http_error",
			"req_id", rid, "status", status, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", fmt.Errorf("openai request: %w", err)
	}

	if err := llm.ValidateChatCompletion(raw); err != nil {
		c.log.Error("llm.openai.malformed_response",
			"req_id", rid, "error", err, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", fmt.Errorf("malformed openai response: %w", err)
	}

	var cc chatResponse
	if err := json.Unmarshal(raw, &cc); err != nil {
		return "", fmt.Errorf("decode openai response: %w", err)
	}
	content := cc.Choices[0].Message.Content

	c.log.Info("llm.openai.ok",
		"req_id", rid,
		"reply_len", len(content),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return content, nil
}
