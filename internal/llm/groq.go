package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/gestion-proyectos/proyectos-backend/config"
)

// GroqClient talks to Groq's OpenAI-compatible chat completions API.
type GroqClient struct {
	BaseURL string
	HTTP    *http.Client

	apiKey      string
	model       string
	maxTokens   int
	temperature float64
	limiter     *rate.Limiter
}

// NewGroq builds a client from configuration. The rate limiter keeps
// bursts of analysis requests inside the provider's free-tier quota.
func NewGroq(cfg config.GroqConfig) *GroqClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &GroqClient{
		BaseURL:     cfg.BaseURL,
		HTTP:        &http.Client{Timeout: timeout},
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		limiter:     rate.NewLimiter(rate.Every(2*time.Second), 3),
	}
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message ChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Complete sends a single user-role prompt and returns the first
// choice's content. A well-formed response without content returns ""
// and a nil error; the caller decides what to show instead.
func (c *GroqClient) Complete(ctx context.Context, prompt string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("groq rate limit: %w", err)
	}

	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    []ChatMessage{{Role: "user", Content: prompt}},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("groq encode: %w", err)
	}

	// One bounded retry on transport errors and 5xx responses. 4xx
	// responses (bad key, oversized prompt) fail immediately.
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(500 * time.Millisecond):
			}
		}

		out, retryable, err := c.doChat(ctx, body)
		if err == nil {
			return out, nil
		}
		lastErr = err
		if !retryable {
			break
		}
	}
	return "", lastErr
}

func (c *GroqClient) doChat(ctx context.Context, body []byte) (content string, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", false, fmt.Errorf("groq request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", true, fmt.Errorf("groq chat: %w", err)
	}
	defer resp.Body.Close()

	var out chatResponse
	if decErr := json.NewDecoder(resp.Body).Decode(&out); decErr != nil && resp.StatusCode < 400 {
		return "", false, fmt.Errorf("groq decode: %w", decErr)
	}

	if resp.StatusCode >= 400 {
		msg := "unexpected response"
		if out.Error != nil && out.Error.Message != "" {
			msg = out.Error.Message
		}
		return "", resp.StatusCode >= 500, fmt.Errorf("groq error (status %d): %s", resp.StatusCode, msg)
	}

	if len(out.Choices) == 0 {
		return "", false, nil
	}
	return out.Choices[0].Message.Content, false, nil
}
