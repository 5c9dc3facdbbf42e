// Package gemini wraps the Google GenAI SDK as the roast text-generation
// backend. High temperature for variety; JSON response MIME type so output
// is machine-parseable.
package gemini

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	defaultModel   = "gemini-2.5-flash"
	defaultTimeout = 60 * time.Second

	// The original tuned for maximum variety between roasts.
	generationTemperature = 1.0
)

// Config configures the Gemini client.
type Config struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Client generates JSON completions via the Gemini API. Construction never
// fails; a missing API key is detected at generation-call time so the
// service can still start (and serve fallbacks) without one.
type Client struct {
	cfg Config
	log *zap.Logger

	mu     sync.Mutex
	client *genai.Client
}

// NewClient creates a Gemini client.
func NewClient(cfg Config, log *zap.Logger) *Client {
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{cfg: cfg, log: log}
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.cfg.Model
}

func (c *Client) ensureClient(ctx context.Context) (*genai.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client != nil {
		return c.client, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: c.cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	c.client = client
	return client, nil
}

// GenerateJSON sends the prompt and returns the raw completion text.
// A timeout is applied when the caller's context has no deadline, so the
// result handler's blocking duration stays bounded.
func (c *Client) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	if c.cfg.APIKey == "" {
		return "", fmt.Errorf("API key not configured")
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	client, err := c.ensureClient(ctx)
	if err != nil {
		return "", err
	}

	startTime := time.Now()
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	resp, err := client.Models.GenerateContent(ctx, c.cfg.Model, contents, &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](generationTemperature),
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		c.log.Warn("gemini request failed",
			zap.String("model", c.cfg.Model),
			zap.Duration("elapsed", time.Since(startTime)),
			zap.Error(err))
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("no completion returned")
	}

	c.log.Debug("gemini completion",
		zap.String("model", c.cfg.Model),
		zap.Int("response_len", len(text)),
		zap.Duration("elapsed", time.Since(startTime)))
	return text, nil
}
