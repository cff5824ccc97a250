// Package llm sends formatted prompts to an OpenAI-compatible chat
// completion endpoint and returns the text of the first choice.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kobex777/AnyMaps/internal/mindmap/prompts"
)

// ErrEmptyContent means the upstream answered but the first choice had no text.
var ErrEmptyContent = errors.New("empty completion content")

// Completion is one chat completion call.
type Completion struct {
	Task        prompts.Task `json:"task"`
	Model       string       `json:"model"`
	System      string       `json:"system"`
	User        string       `json:"user"`
	ImageURL    string       `json:"image_url,omitempty"`
	Temperature float64      `json:"temperature"`
	MaxTokens   int          `json:"max_tokens"`
}

// FromRequest fills a Completion from a formatted prompt.
func FromRequest(model string, req prompts.Request) Completion {
	return Completion{
		Task:        req.Task,
		Model:       model,
		System:      req.System,
		User:        req.User,
		Temperature: req.Params.Temperature,
		MaxTokens:   req.Params.MaxTokens,
	}
}

// Gateway is anything that can answer a Completion with text.
type Gateway interface {
	Complete(ctx context.Context, c Completion) (string, error)
}

// GatewayError wraps every failure talking to the model API.
type GatewayError struct {
	Op     string
	Status int
	Err    error
}

func (e *GatewayError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("llm %s: status %d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("llm %s: %v", e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// ImageDataURI returns s untouched when it is already a data URI, otherwise
// treats it as bare base64 PNG data.
func ImageDataURI(s string) string {
	if strings.HasPrefix(s, "data:") {
		return s
	}
	return "data:image/png;base64," + s
}
