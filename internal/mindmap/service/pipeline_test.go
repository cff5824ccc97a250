package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/kobex777/AnyMaps/internal/mindmap/domain"
	"github.com/kobex777/AnyMaps/internal/mindmap/ingest/validator"
	"github.com/kobex777/AnyMaps/internal/mindmap/llm"
	"github.com/kobex777/AnyMaps/internal/mindmap/prompts"
	"github.com/kobex777/AnyMaps/internal/mindmap/salvage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedGateway replies per task and records every call.
type scriptedGateway struct {
	replies map[prompts.Task]string
	fail    map[prompts.Task]error
	calls   []llm.Completion
}

func (g *scriptedGateway) Complete(_ context.Context, c llm.Completion) (string, error) {
	g.calls = append(g.calls, c)
	if err := g.fail[c.Task]; err != nil {
		return "", err
	}
	return g.replies[c.Task], nil
}

func (g *scriptedGateway) tasks() []prompts.Task {
	out := make([]prompts.Task, 0, len(g.calls))
	for _, c := range g.calls {
		out = append(out, c.Task)
	}
	return out
}

var testModels = Models{Planner: "planner-m", Builder: "builder-m", Vision: "vision-m"}

const planReply = "```json\n" + `{
  "title": "AI",
  "central_topic": "Artificial Intelligence",
  "nodes": [
    {"id": "ai", "label": "AI", "type": "central"},
    {"id": "ml", "label": "Machine Learning", "type": "primary"}
  ],
  "edges": [{"source": "ai", "target": "ml"}]
}` + "\n```"

const mermaidBody = "mindmap\n  root((AI))\n    Machine Learning"

func TestGeneratePlan_TextOnly(t *testing.T) {
	gw := &scriptedGateway{replies: map[prompts.Task]string{prompts.TaskPlan: planReply}}
	p := NewPipeline(gw, testModels)

	spec, err := p.GeneratePlan(context.Background(), "Explain AI", "")
	require.NoError(t, err)

	assert.Equal(t, "AI", spec.Title)
	assert.Len(t, spec.Nodes, 2)
	assert.Equal(t, domain.EdgeSolid, spec.Edges[0].Style)
	assert.Equal(t, []prompts.Task{prompts.TaskPlan}, gw.tasks())
	assert.Equal(t, "planner-m", gw.calls[0].Model)
	assert.Equal(t, "Explain AI", gw.calls[0].User)
}

func TestGeneratePlan_WithImage(t *testing.T) {
	gw := &scriptedGateway{replies: map[prompts.Task]string{
		prompts.TaskVision: "A diagram of neural nets",
		prompts.TaskPlan:   planReply,
	}}
	p := NewPipeline(gw, testModels)

	_, err := p.GeneratePlan(context.Background(), "Map this", "iVBORw0KGgo=")
	require.NoError(t, err)

	require.Equal(t, []prompts.Task{prompts.TaskVision, prompts.TaskPlan}, gw.tasks())
	assert.Equal(t, "vision-m", gw.calls[0].Model)
	assert.Equal(t, "data:image/png;base64,iVBORw0KGgo=", gw.calls[0].ImageURL)
	assert.Equal(t, "Map this\n\nImage Analysis:\nA diagram of neural nets", gw.calls[1].User)
	assert.Empty(t, gw.calls[1].ImageURL)
}

func TestGeneratePlan_VisionFailureStops(t *testing.T) {
	gw := &scriptedGateway{fail: map[prompts.Task]error{
		prompts.TaskVision: &llm.GatewayError{Op: "vision", Status: 500, Err: errors.New("boom")},
	}}
	p := NewPipeline(gw, testModels)

	_, err := p.GeneratePlan(context.Background(), "Map this", "AAAA")
	var gerr *llm.GatewayError
	require.True(t, errors.As(err, &gerr))
	assert.Equal(t, []prompts.Task{prompts.TaskVision}, gw.tasks())
}

func TestGeneratePlan_SalvageFailure(t *testing.T) {
	gw := &scriptedGateway{replies: map[prompts.Task]string{prompts.TaskPlan: "I cannot help with that."}}
	p := NewPipeline(gw, testModels)

	_, err := p.GeneratePlan(context.Background(), "x", "")
	var perr *salvage.ParseError
	require.True(t, errors.As(err, &perr))
	assert.Contains(t, err.Error(), "failed to parse AI response as JSON")
}

func TestGeneratePlan_DanglingEdge(t *testing.T) {
	reply := `{"title":"T","central_topic":"X","nodes":[{"id":"a","label":"A"}],"edges":[{"source":"a","target":"ghost"}]}`
	gw := &scriptedGateway{replies: map[prompts.Task]string{prompts.TaskPlan: reply}}
	p := NewPipeline(gw, testModels)

	_, err := p.GeneratePlan(context.Background(), "x", "")
	var serr *validator.StructureError
	require.True(t, errors.As(err, &serr))
}

func TestBuildSyntax_StripsFence(t *testing.T) {
	gw := &scriptedGateway{replies: map[prompts.Task]string{
		prompts.TaskBuild: "```mermaid\n" + mermaidBody + "\n```",
	}}
	p := NewPipeline(gw, testModels)

	syntax, err := p.BuildSyntax(context.Background(), domain.DiagramSpec{Title: "AI", CentralTopic: "AI"})
	require.NoError(t, err)
	assert.Equal(t, mermaidBody, syntax)
	assert.Equal(t, "builder-m", gw.calls[0].Model)
	assert.True(t, strings.HasPrefix(gw.calls[0].User, "Convert this specification to Mermaid syntax:"))
}

func TestGenerateFull(t *testing.T) {
	gw := &scriptedGateway{replies: map[prompts.Task]string{
		prompts.TaskPlan:  planReply,
		prompts.TaskBuild: mermaidBody,
	}}
	p := NewPipeline(gw, testModels)

	spec, syntax, err := p.GenerateFull(context.Background(), "Explain AI", "")
	require.NoError(t, err)
	assert.Equal(t, "AI", spec.Title)
	assert.Equal(t, mermaidBody, syntax)
	assert.Equal(t, []prompts.Task{prompts.TaskPlan, prompts.TaskBuild}, gw.tasks())
}

func TestGenerateFull_PlanFailureSkipsBuild(t *testing.T) {
	gw := &scriptedGateway{replies: map[prompts.Task]string{
		prompts.TaskPlan:  "no json here",
		prompts.TaskBuild: mermaidBody,
	}}
	p := NewPipeline(gw, testModels)

	_, _, err := p.GenerateFull(context.Background(), "x", "")
	require.Error(t, err)
	assert.Equal(t, []prompts.Task{prompts.TaskPlan}, gw.tasks())
}

func TestEnhancePlan(t *testing.T) {
	original := domain.DiagramSpec{
		Title:        "AI",
		CentralTopic: "Artificial Intelligence",
		Nodes: []domain.Node{
			{ID: "ai", Label: "AI", Kind: domain.NodeCentral},
			{ID: "ml", Label: "Machine Learning", Kind: domain.NodePrimary},
		},
		Edges: []domain.Edge{{Source: "ai", Target: "ml", Style: domain.EdgeSolid}},
	}
	reply := `{
	  "title": "AI",
	  "central_topic": "Artificial Intelligence",
	  "nodes": [
	    {"id": "ai", "label": "AI", "type": "central"},
	    {"id": "ml", "label": "Machine Learning", "type": "primary"},
	    {"id": "ethics", "label": "Ethics", "type": "primary"}
	  ],
	  "edges": [
	    {"source": "ai", "target": "ml"},
	    {"source": "ai", "target": "ethics"},
	    {"source": "ml", "target": "ethics", "style": "dashed"}
	  ]
	}`
	gw := &scriptedGateway{replies: map[prompts.Task]string{prompts.TaskEnhance: reply}}
	p := NewPipeline(gw, testModels)
	snapshot := original.Clone()

	out, err := p.EnhancePlan(context.Background(), original, "add ethics", "")
	require.NoError(t, err)

	assert.Equal(t, "Added 1 node, Added 2 connections", out.Summary)
	assert.Len(t, out.Spec.Nodes, 3)
	assert.Equal(t, snapshot, original)
	assert.Equal(t, "planner-m", gw.calls[0].Model)
	assert.Equal(t, "Please enhance the mind map: add ethics", gw.calls[0].User)
	assert.Contains(t, gw.calls[0].System, "## Enhancement Mode: expand")
}

func TestEnhancePlan_UnknownMode(t *testing.T) {
	gw := &scriptedGateway{}
	p := NewPipeline(gw, testModels)

	_, err := p.EnhancePlan(context.Background(), domain.DiagramSpec{}, "x", "explode")
	assert.ErrorIs(t, err, prompts.ErrUnknownMode)
	assert.Empty(t, gw.calls)
}

func TestEnhancePlan_GatewayError(t *testing.T) {
	gw := &scriptedGateway{fail: map[prompts.Task]error{
		prompts.TaskEnhance: &llm.GatewayError{Op: "enhance", Err: llm.ErrEmptyContent},
	}}
	p := NewPipeline(gw, testModels)

	_, err := p.EnhancePlan(context.Background(), domain.DiagramSpec{}, "x", domain.ModeRefine)
	assert.ErrorIs(t, err, llm.ErrEmptyContent)
}
