// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/docs-markdown/internal/manifest"
	"github.com/pdiddy/docs-markdown/pkg/types"
)

func TestResolveTargets(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "docs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`documents:
  - id: 2XyZ
    filename: roadmap.md
  - id: 1AbC
    filename: ignored.md
`), 0o644))

	targets, err := resolveTargets([]string{" 1AbC:notes.md ", "3Qrs"}, path)
	require.NoError(t, err)
	assert.Equal(t, []types.ExportTarget{
		{DocumentID: "1AbC", FileName: "notes.md"},
		{DocumentID: "3Qrs"},
		{DocumentID: "2XyZ", FileName: "roadmap.md"},
	}, targets)
}

func TestResolveTargets_Errors(t *testing.T) {
	_, err := resolveTargets(nil, "")
	assert.Error(t, err)

	_, err = resolveTargets([]string{"1AbC"}, filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSavedManifestRoundTrip(t *testing.T) {
	targets, err := resolveTargets([]string{"1AbC:notes.md", "2XyZ", "1AbC"}, "")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "saved.yaml")
	require.NoError(t, manifest.Write(path, targets))

	m, err := manifest.Read(path)
	require.NoError(t, err)
	assert.Equal(t, targets, m.Targets())
	assert.Len(t, m.Documents, 2)
}
