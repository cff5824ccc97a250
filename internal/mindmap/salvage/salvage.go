// Package salvage turns free-text model replies into validated diagram specs.
//
// Models routinely wrap JSON in prose or markdown fences. The recovery here is
// a fixed heuristic: pick the first fenced block that looks like an object,
// otherwise narrow to the outermost braces, then parse strictly. No bracket
// repair or partial recovery is attempted.
package salvage

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/kobex777/AnyMaps/internal/mindmap/domain"
	"github.com/kobex777/AnyMaps/internal/mindmap/ingest/validator"
)

const (
	fence = "```"

	// snippetLimit bounds how much of the offending text ends up in errors.
	snippetLimit = 500
)

// ParseError is returned when no schema-conforming JSON object can be
// recovered from a model reply.
type ParseError struct {
	Err     error
	Snippet string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse AI response as JSON: %v. Raw content: %s", e.Err, e.Snippet)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Salvage extracts a DiagramSpec from raw model output.
func Salvage(raw string) (domain.DiagramSpec, error) {
	text := ExtractJSON(raw)

	doc, err := validator.ParseDocument(text)
	if err != nil {
		return domain.DiagramSpec{}, newParseError(err, text)
	}
	if err := validator.ValidateDocument(doc); err != nil {
		return domain.DiagramSpec{}, newParseError(err, text)
	}

	var spec domain.DiagramSpec
	if err := json.Unmarshal([]byte(text), &spec); err != nil {
		return domain.DiagramSpec{}, newParseError(err, text)
	}
	return spec.WithDefaults(), nil
}

// ExtractJSON returns the best-effort JSON object substring of raw.
func ExtractJSON(raw string) string {
	text := raw

	if strings.Contains(text, fence) {
		for _, part := range strings.Split(text, fence) {
			part = strings.TrimSpace(part)
			if strings.HasPrefix(part, "json") {
				part = strings.TrimSpace(part[len("json"):])
			}
			if strings.HasPrefix(part, "{") {
				text = part
				break
			}
		}
	}

	text = strings.TrimSpace(text)

	if !strings.HasPrefix(text, "{") {
		start := strings.Index(text, "{")
		end := strings.LastIndex(text, "}")
		if start != -1 && end != -1 && start <= end {
			text = text[start : end+1]
		}
	}
	return text
}

// StripFence cleans a plain-text reply: when it opens with a fence, the body
// of the first fenced block is kept and a leading language tag is dropped.
func StripFence(raw, tag string) string {
	text := strings.TrimSpace(raw)
	if strings.HasPrefix(text, fence) {
		text = strings.Split(text, fence)[1]
		if tag != "" {
			text = strings.TrimPrefix(text, tag)
		}
	}
	return strings.TrimSpace(text)
}

func newParseError(err error, text string) *ParseError {
	return &ParseError{Err: err, Snippet: truncate(text, snippetLimit)}
}

// truncate keeps at most n runes of s.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}
