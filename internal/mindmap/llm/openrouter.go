package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kobex777/AnyMaps/internal/logging"
)

// Options configure an OpenRouterClient.
type Options struct {
	APIKey  string
	BaseURL string
	// Referer and Title are sent as HTTP-Referer and X-Title so requests are
	// attributed to the app on OpenRouter.
	Referer string
	Title   string
	Timeout time.Duration
	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
}

// OpenRouterClient calls the OpenRouter chat completions API.
type OpenRouterClient struct {
	http    *http.Client
	apiKey  string
	baseURL string
	referer string
	title   string
}

func NewOpenRouterClient(opts Options) *OpenRouterClient {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	return &OpenRouterClient{
		http:    hc,
		apiKey:  opts.APIKey,
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		referer: opts.Referer,
		title:   opts.Title,
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

// chatMessage content is a plain string or a []contentPart.
type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Code    any    `json:"code"`
	} `json:"error,omitempty"`
}

func buildRequest(c Completion) chatRequest {
	var user any = c.User
	if c.ImageURL != "" {
		user = []contentPart{
			{Type: "text", Text: c.User},
			{Type: "image_url", ImageURL: &imageURL{URL: ImageDataURI(c.ImageURL)}},
		}
	}
	return chatRequest{
		Model: c.Model,
		Messages: []chatMessage{
			{Role: "system", Content: c.System},
			{Role: "user", Content: user},
		},
		Temperature: c.Temperature,
		MaxTokens:   c.MaxTokens,
	}
}

// Complete sends one completion and returns the first choice's text.
func (o *OpenRouterClient) Complete(ctx context.Context, c Completion) (string, error) {
	logger := logging.NewLogger(ctx)
	op := string(c.Task)
	if op == "" {
		op = "complete"
	}

	start := time.Now()
	text, err := o.do(ctx, op, c)
	duration := time.Since(start)
	recordCompletion(duration, c.ImageURL != "", err)

	if err != nil {
		logger.LogError(op, err)
		return "", err
	}
	logger.LogInfof(op, "model=%s latency=%s chars=%d", c.Model, duration.Round(time.Millisecond), len(text))
	return text, nil
}

func (o *OpenRouterClient) do(ctx context.Context, op string, c Completion) (string, error) {
	body, err := json.Marshal(buildRequest(c))
	if err != nil {
		return "", &GatewayError{Op: op, Err: fmt.Errorf("encode request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", &GatewayError{Op: op, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	if o.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+o.apiKey)
	}
	if o.referer != "" {
		req.Header.Set("HTTP-Referer", o.referer)
	}
	if o.title != "" {
		req.Header.Set("X-Title", o.title)
	}

	resp, err := o.http.Do(req)
	if err != nil {
		return "", &GatewayError{Op: op, Err: fmt.Errorf("request failed: %w", err)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", &GatewayError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &GatewayError{
			Op:     op,
			Status: resp.StatusCode,
			Err:    fmt.Errorf("upstream error: %s", truncateBody(raw)),
		}
	}

	var out chatResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", &GatewayError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	if out.Error != nil {
		return "", &GatewayError{Op: op, Status: resp.StatusCode, Err: errors.New(out.Error.Message)}
	}
	if len(out.Choices) == 0 {
		return "", &GatewayError{Op: op, Status: resp.StatusCode, Err: errors.New("no choices in response")}
	}
	content := out.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", &GatewayError{Op: op, Status: resp.StatusCode, Err: ErrEmptyContent}
	}
	return content, nil
}

func truncateBody(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > errorBodyLimit {
		return s[:errorBodyLimit] + "..."
	}
	return s
}
