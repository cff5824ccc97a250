// Package prompts turns pipeline inputs into the system/user message pairs
// sent to the model. Every function here is pure.
package prompts

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/kobex777/AnyMaps/internal/mindmap/domain"
)

// ErrUnknownMode is returned by Enhance for modes outside expand, refine,
// focus and simplify.
var ErrUnknownMode = errors.New("unknown enhance mode")

// Task names which step a Request belongs to. Used for logs and metrics.
type Task string

const (
	TaskPlan    Task = "plan"
	TaskBuild   Task = "build"
	TaskVision  Task = "vision"
	TaskEnhance Task = "enhance"
)

// Params are the sampling parameters for one completion.
type Params struct {
	Temperature float64
	MaxTokens   int
}

var (
	planParams    = Params{Temperature: 0.7, MaxTokens: 2000}
	buildParams   = Params{Temperature: 0.3, MaxTokens: 2000}
	visionParams  = Params{Temperature: 0.5, MaxTokens: 1000}
	enhanceParams = Params{Temperature: 0.7, MaxTokens: 3000}
)

const (
	imageAnalysisHeader = "\n\nImage Analysis:\n"
	buildUserPrefix     = "Convert this specification to Mermaid syntax:\n\n"
	visionUserText      = "Analyze this image for mind map creation:"
	enhanceUserPrefix   = "Please enhance the mind map: "

	// largeMapThreshold is the node count from which enhance asks for a
	// tighter addition budget.
	largeMapThreshold = 12
)

// Request is a formatted prompt ready for the gateway.
type Request struct {
	Task   Task
	System string
	User   string
	Params Params
}

var enhanceTmpl = template.Must(template.New("enhance").Parse(enhanceSystemTemplate))

type enhanceData struct {
	CurrentSpecJSON string
	Mode            domain.EnhanceMode
	Request         string
	NodeCount       int
	LargeMap        bool
}

// Plan formats the planner call. imageDescription is appended under an
// "Image Analysis" header when non-empty.
func Plan(userPrompt, imageDescription string) Request {
	user := userPrompt
	if imageDescription != "" {
		user += imageAnalysisHeader + imageDescription
	}
	return Request{
		Task:   TaskPlan,
		System: plannerSystemPrompt,
		User:   user,
		Params: planParams,
	}
}

// Build formats the builder call for spec.
func Build(spec domain.DiagramSpec) (Request, error) {
	body, err := indentJSON(spec)
	if err != nil {
		return Request{}, err
	}
	return Request{
		Task:   TaskBuild,
		System: builderSystemPrompt,
		User:   buildUserPrefix + body,
		Params: buildParams,
	}, nil
}

// Vision formats the image analysis call. The image itself travels as a
// separate content part and is not part of the Request.
func Vision() Request {
	return Request{
		Task:   TaskVision,
		System: visionSystemPrompt,
		User:   visionUserText,
		Params: visionParams,
	}
}

// Enhance formats the enhance call. An empty mode means expand.
func Enhance(spec domain.DiagramSpec, request string, mode domain.EnhanceMode) (Request, error) {
	if mode == "" {
		mode = domain.ModeExpand
	}
	if !mode.Valid() {
		return Request{}, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}

	body, err := indentJSON(spec)
	if err != nil {
		return Request{}, err
	}

	var sb strings.Builder
	err = enhanceTmpl.Execute(&sb, enhanceData{
		CurrentSpecJSON: body,
		Mode:            mode,
		Request:         request,
		NodeCount:       len(spec.Nodes),
		LargeMap:        len(spec.Nodes) >= largeMapThreshold,
	})
	if err != nil {
		return Request{}, fmt.Errorf("render enhance prompt: %w", err)
	}

	return Request{
		Task:   TaskEnhance,
		System: sb.String(),
		User:   enhanceUserPrefix + request,
		Params: enhanceParams,
	}, nil
}

// NewNodeBudget is the advisory cap on nodes an enhancement should add.
func NewNodeBudget(originalNodes int) int {
	if originalNodes >= largeMapThreshold {
		return 3
	}
	return 5
}

// indentJSON renders spec the way the prompts show it to the model. HTML
// escaping is off so labels like "R&D" reach the model untouched.
func indentJSON(spec domain.DiagramSpec) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(spec.WithDefaults()); err != nil {
		return "", fmt.Errorf("encode spec: %w", err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}
