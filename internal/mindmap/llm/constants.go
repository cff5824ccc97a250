package llm

import "time"

const (
	// DefaultBaseURL is the OpenRouter API root.
	DefaultBaseURL = "https://openrouter.ai/api/v1"

	// DefaultTimeout is the transport deadline for one completion.
	DefaultTimeout = 90 * time.Second

	// maxResponseBytes caps how much of an upstream body we read.
	maxResponseBytes = 4 << 20

	// errorBodyLimit caps how much of a failed body ends up in the error.
	errorBodyLimit = 2048

	cacheKeyPrefix = "anymaps:completion:"
)
