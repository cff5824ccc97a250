package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestRunSalvage(t *testing.T) {
	reply := writeFile(t, "reply.txt", "Here:\n```json\n{\"title\":\"T\",\"central_topic\":\"X\",\"nodes\":[{\"id\":\"a\",\"label\":\"A\"}],\"edges\":[]}\n```")

	var out bytes.Buffer
	require.NoError(t, runSalvage([]string{reply}, &out))
	assert.Contains(t, out.String(), `"type": "default"`)
	assert.Contains(t, out.String(), `"edges": []`)
}

func TestRunSalvage_Errors(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, runSalvage(nil, &out))
	assert.Error(t, runSalvage([]string{"/does/not/exist"}, &out))

	bad := writeFile(t, "bad.txt", "no json at all")
	assert.Error(t, runSalvage([]string{bad}, &out))

	dangling := writeFile(t, "dangling.txt", `{"title":"T","central_topic":"X","nodes":[],"edges":[{"source":"a","target":"b"}]}`)
	assert.Error(t, runSalvage([]string{dangling}, &out))
}

func TestRunSummarize(t *testing.T) {
	orig := writeFile(t, "orig.json", `{"title":"T","central_topic":"X","nodes":[{"id":"a","label":"A"},{"id":"b","label":"B"}],"edges":[{"source":"a","target":"b"}]}`)
	enh := writeFile(t, "enh.json", `{"title":"T","central_topic":"X","nodes":[{"id":"a","label":"A"},{"id":"b","label":"B"},{"id":"c","label":"C"}],"edges":[{"source":"a","target":"b"},{"source":"a","target":"c"},{"source":"b","target":"c"}]}`)

	var out bytes.Buffer
	require.NoError(t, runSummarize([]string{orig, enh}, &out))
	assert.Equal(t, "Added 1 node, Added 2 connections\n", out.String())
}

func TestRunSummarize_Usage(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, runSummarize([]string{"one"}, &out))
}
