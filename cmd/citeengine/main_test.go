// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCmd(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--env-file", ""}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRenderCmd(t *testing.T) {
	dir := t.TempDir()
	bodyPath := filepath.Join(dir, "body.md")
	require.NoError(t, os.WriteFile(bodyPath, []byte("## Method\nThe quick brown fox"), 0o600))
	citesPath := filepath.Join(dir, "citations.yaml")
	require.NoError(t, os.WriteFile(citesPath, []byte(`- id: c1
  selected_text: quick brown
  start_offset: 11
  end_offset: 22
  context_before: "Method\nThe "
  context_after: " fox"
  note: vivid
- id: c2
  selected_text: purple
  start_offset: 0
  end_offset: 6
  context_before: ""
  context_after: ""
  note: missing
`), 0o600))

	out, stderr, err := runCmd(t, "render", bodyPath, "--citations", citesPath, "--active", "c1")
	require.NoError(t, err)
	assert.Contains(t, out, "citation_id: c1")
	assert.Contains(t, out, "active: true")
	assert.Contains(t, out, "- c2")
	assert.Contains(t, stderr, "citation text not found")
}

func TestRenderCmd_Errors(t *testing.T) {
	_, _, err := runCmd(t, "render")
	assert.Error(t, err)

	_, _, err = runCmd(t, "render", filepath.Join(t.TempDir(), "missing.md"))
	assert.Error(t, err)

	dir := t.TempDir()
	bodyPath := filepath.Join(dir, "body.md")
	require.NoError(t, os.WriteFile(bodyPath, []byte("text"), 0o600))
	citesPath := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(citesPath, []byte("- id: x\n  selected_text: text\n  start_offset: 0\n  end_offset: 9\n  context_before: \"\"\n  context_after: \"\"\n  note: n\n"), 0o600))
	_, _, err = runCmd(t, "render", bodyPath, "--citations", citesPath)
	assert.Error(t, err)
}

func TestRootCmd_InvalidLogLevel(t *testing.T) {
	dir := t.TempDir()
	bodyPath := filepath.Join(dir, "body.md")
	require.NoError(t, os.WriteFile(bodyPath, []byte("text"), 0o600))
	_, _, err := runCmd(t, "render", bodyPath, "--log-level", "loud")
	assert.Error(t, err)
}
