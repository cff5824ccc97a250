package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/kobex777/AnyMaps/internal/mindmap/domain"
	"github.com/kobex777/AnyMaps/internal/mindmap/salvage"
	"github.com/kobex777/AnyMaps/internal/mindmap/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	spec    domain.DiagramSpec
	syntax  string
	summary string
	err     error

	gotPrompt string
	gotImage  string
	gotSpec   domain.DiagramSpec
	gotMode   domain.EnhanceMode
	calls     int
}

func (f *fakeGenerator) GeneratePlan(_ context.Context, prompt, image string) (domain.DiagramSpec, error) {
	f.calls++
	f.gotPrompt, f.gotImage = prompt, image
	return f.spec, f.err
}

func (f *fakeGenerator) BuildSyntax(_ context.Context, spec domain.DiagramSpec) (string, error) {
	f.calls++
	f.gotSpec = spec
	return f.syntax, f.err
}

func (f *fakeGenerator) GenerateFull(_ context.Context, prompt, image string) (domain.DiagramSpec, string, error) {
	f.calls++
	f.gotPrompt, f.gotImage = prompt, image
	return f.spec, f.syntax, f.err
}

func (f *fakeGenerator) EnhancePlan(_ context.Context, spec domain.DiagramSpec, req string, mode domain.EnhanceMode) (service.Enhanced, error) {
	f.calls++
	f.gotSpec, f.gotPrompt, f.gotMode = spec, req, mode
	return service.Enhanced{Spec: f.spec, Summary: f.summary}, f.err
}

func setupRouter(gen Generator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	New(gen).Register(r.Group("/api"))
	return r
}

func post(t *testing.T, r *gin.Engine, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return w, out
}

func sampleSpec() domain.DiagramSpec {
	return domain.DiagramSpec{
		Title:        "AI",
		CentralTopic: "Artificial Intelligence",
		Nodes:        []domain.Node{{ID: "ai", Label: "AI", Kind: domain.NodeCentral}},
		Edges:        []domain.Edge{},
	}
}

const specJSON = `{"title":"AI","central_topic":"Artificial Intelligence","nodes":[{"id":"ai","label":"AI"}],"edges":[]}`

func TestGeneratePlan_Success(t *testing.T) {
	gen := &fakeGenerator{spec: sampleSpec()}
	r := setupRouter(gen)

	w, out := post(t, r, "/api/generate/plan", `{"user_prompt":"Explain AI","image_base64":"AAAA"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, out["success"])
	assert.NotContains(t, out, "error")

	spec := out["planner_spec"].(map[string]any)
	assert.Equal(t, "AI", spec["title"])
	assert.Equal(t, "Explain AI", gen.gotPrompt)
	assert.Equal(t, "AAAA", gen.gotImage)
}

func TestGeneratePlan_FailureIs200(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("failed to parse AI response as JSON: boom")}
	r := setupRouter(gen)

	w, out := post(t, r, "/api/generate/plan", `{"user_prompt":"x"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, out["success"])
	assert.Equal(t, "failed to parse AI response as JSON: boom", out["error"])
	assert.NotContains(t, out, "planner_spec")
}

func TestGeneratePlan_MissingPrompt(t *testing.T) {
	gen := &fakeGenerator{}
	r := setupRouter(gen)

	w, out := post(t, r, "/api/generate/plan", `{}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, false, out["success"])
	assert.NotEmpty(t, out["error"])
	assert.Zero(t, gen.calls)
}

func TestGeneratePlan_MalformedJSON(t *testing.T) {
	r := setupRouter(&fakeGenerator{})
	w, _ := post(t, r, "/api/generate/plan", `{"user_prompt": `)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestBuildSyntax(t *testing.T) {
	gen := &fakeGenerator{syntax: "mindmap\n  root((AI))"}
	r := setupRouter(gen)

	w, out := post(t, r, "/api/generate/build", `{"planner_spec":`+specJSON+`}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, out["success"])
	assert.Equal(t, "mindmap\n  root((AI))", out["mermaid_syntax"])
	assert.Equal(t, domain.NodeDefault, gen.gotSpec.Nodes[0].Kind)
}

func TestBuildSyntax_InvalidSpec(t *testing.T) {
	r := setupRouter(&fakeGenerator{})

	cases := map[string]string{
		"missing spec":   `{}`,
		"empty node id":  `{"planner_spec":{"title":"T","central_topic":"X","nodes":[{"id":"","label":"A"}],"edges":[]}}`,
		"missing nodes":  `{"planner_spec":{"title":"T","central_topic":"X","edges":[]}}`,
		"bad node type":  `{"planner_spec":{"title":"T","central_topic":"X","nodes":[{"id":"a","label":"A","type":"leaf"}],"edges":[]}}`,
		"edge no target": `{"planner_spec":{"title":"T","central_topic":"X","nodes":[],"edges":[{"source":"a"}]}}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			w, out := post(t, r, "/api/generate/build", body)
			assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
			assert.Equal(t, false, out["success"])
		})
	}
}

func TestBuildAndEnhance_AcceptSalvagedSpecs(t *testing.T) {
	replies := map[string]string{
		"empty title": `{"title":"","central_topic":"X","nodes":[],"edges":[]}`,
		"empty label": `{"title":"T","central_topic":"","nodes":[{"id":"a","label":""}],"edges":[]}`,
	}
	for name, reply := range replies {
		t.Run(name, func(t *testing.T) {
			spec, err := salvage.Salvage(reply)
			require.NoError(t, err)
			b, err := json.Marshal(spec)
			require.NoError(t, err)

			gen := &fakeGenerator{spec: spec, syntax: "mindmap"}
			r := setupRouter(gen)

			w, out := post(t, r, "/api/generate/build", `{"planner_spec":`+string(b)+`}`)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, true, out["success"])
			assert.Equal(t, spec, gen.gotSpec)

			w, out = post(t, r, "/api/generate/enhance", `{"current_spec":`+string(b)+`,"enhance_prompt":"more"}`)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, true, out["success"])
		})
	}
}

func TestGenerateFull(t *testing.T) {
	gen := &fakeGenerator{spec: sampleSpec(), syntax: "mindmap"}
	r := setupRouter(gen)

	w, out := post(t, r, "/api/generate/full", `{"user_prompt":"Explain AI"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, out["success"])
	assert.Equal(t, "mindmap", out["mermaid_syntax"])
	assert.NotNil(t, out["planner_spec"])
}

func TestEnhancePlan_DefaultsMode(t *testing.T) {
	gen := &fakeGenerator{spec: sampleSpec(), summary: "Added 2 nodes"}
	r := setupRouter(gen)

	w, out := post(t, r, "/api/generate/enhance", `{"current_spec":`+specJSON+`,"enhance_prompt":"add ethics"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, out["success"])
	assert.Equal(t, "Added 2 nodes", out["changes_summary"])
	assert.Equal(t, domain.ModeExpand, gen.gotMode)
	assert.Equal(t, "add ethics", gen.gotPrompt)
}

func TestEnhancePlan_ExplicitMode(t *testing.T) {
	gen := &fakeGenerator{spec: sampleSpec(), summary: "No structural changes"}
	r := setupRouter(gen)

	_, out := post(t, r, "/api/generate/enhance", `{"current_spec":`+specJSON+`,"enhance_prompt":"tidy","enhance_mode":"simplify"}`)
	assert.Equal(t, true, out["success"])
	assert.Equal(t, domain.ModeSimplify, gen.gotMode)
}

func TestEnhancePlan_UnknownMode(t *testing.T) {
	gen := &fakeGenerator{}
	r := setupRouter(gen)

	w, _ := post(t, r, "/api/generate/enhance", `{"current_spec":`+specJSON+`,"enhance_prompt":"x","enhance_mode":"explode"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Zero(t, gen.calls)
}

func TestEnhancePlan_Failure(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("llm enhance: status 500: upstream error")}
	r := setupRouter(gen)

	w, out := post(t, r, "/api/generate/enhance", `{"current_spec":`+specJSON+`,"enhance_prompt":"x"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, out["success"])
	assert.Contains(t, out["error"], "status 500")
	assert.NotContains(t, out, "changes_summary")
}
