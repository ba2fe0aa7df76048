// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"

	"github.com/pdiddy/docs-markdown/internal/ledger"
	"github.com/pdiddy/docs-markdown/pkg/types"
)

// fakeSource serves documents from a map and counts fetches.
type fakeSource struct {
	docs    map[string]*types.Document
	fetches int
}

func (f *fakeSource) Fetch(_ context.Context, id string) (*types.Document, error) {
	f.fetches++
	doc, ok := f.docs[id]
	if !ok {
		return nil, fmt.Errorf("fetching document %s: %w", id, &googleapi.Error{Code: http.StatusNotFound})
	}
	return doc, nil
}

func simpleDoc(id, title, revision, text string) *types.Document {
	return &types.Document{
		Title:      title,
		DocumentID: id,
		RevisionID: revision,
		Body: []types.Block{
			&types.Paragraph{
				Style:    types.StyleNormal,
				Elements: []types.InlineElement{types.TextRun{Content: text + "\n"}},
			},
		},
	}
}

func testLedger(t *testing.T) *ledger.Ledger {
	t.Helper()
	l, err := ledger.Open(types.LedgerConfig{StateDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	return l
}

func TestParseTarget(t *testing.T) {
	tests := []struct {
		arg  string
		want types.ExportTarget
	}{
		{"1AbC", types.ExportTarget{DocumentID: "1AbC"}},
		{"1AbC:notes.md", types.ExportTarget{DocumentID: "1AbC", FileName: "notes.md"}},
		{"  1AbC : notes.md ", types.ExportTarget{DocumentID: "1AbC", FileName: "notes.md"}},
		{"1AbC:", types.ExportTarget{DocumentID: "1AbC"}},
		{"1AbC:a:b.md", types.ExportTarget{DocumentID: "1AbC", FileName: "a:b.md"}},
	}
	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTarget(tt.arg))
		})
	}
}

func TestFileName(t *testing.T) {
	tests := []struct {
		name    string
		target  types.ExportTarget
		title   string
		want    string
		wantErr error
	}{
		{name: "title", title: "Design notes", want: "Design notes.md"},
		{name: "override wins", target: types.ExportTarget{FileName: "x.md"}, title: "Design", want: "x.md"},
		{name: "separators replaced", title: "Q1/Q2 plan", want: "Q1-Q2 plan.md"},
		{name: "backslash replaced", target: types.ExportTarget{FileName: `a\b.md`}, want: "a-b.md"},
		{name: "nfc normalized", title: "Cafe\u0301", want: "Caf\u00e9.md"},
		{name: "missing title", title: "  ", wantErr: ErrMissingTitle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FileName(tt.target, &types.Document{Title: tt.title})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.md")

	require.NoError(t, WriteFile(path, "first"))
	require.NoError(t, WriteFile(path, "second"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestExportDocument(t *testing.T) {
	src := &fakeSource{docs: map[string]*types.Document{
		"D": simpleDoc("D", "T", "R", "world"),
	}}
	cfg := types.ExportConfig{OutputDir: filepath.Join(t.TempDir(), "out")}
	var w bytes.Buffer

	status, err := ExportDocument(context.Background(), src, nil, types.ExportTarget{DocumentID: "D"}, cfg, &w)
	require.NoError(t, err)
	assert.Equal(t, types.ExportDone, status)

	data, err := os.ReadFile(filepath.Join(cfg.OutputDir, "T.md"))
	require.NoError(t, err)
	assert.Equal(t, "---\ntitle: T\ndocumentId: D\nrevisionId: R\n---\n\nworld\n\n", string(data))
	assert.Contains(t, w.String(), "exported: D -> ")
}

func TestExportDocumentMissingTitle(t *testing.T) {
	src := &fakeSource{docs: map[string]*types.Document{
		"D": simpleDoc("D", "", "R", "x"),
	}}
	cfg := types.ExportConfig{OutputDir: t.TempDir()}

	status, err := ExportDocument(context.Background(), src, nil, types.ExportTarget{DocumentID: "D"}, cfg, &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrMissingTitle)
	assert.Equal(t, types.ExportFailed, status)

	status, err = ExportDocument(context.Background(), src, nil, types.ExportTarget{DocumentID: "D", FileName: "named.md"}, cfg, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, types.ExportDone, status)
	assert.FileExists(t, filepath.Join(cfg.OutputDir, "named.md"))
}

func TestExportDocumentNotFound(t *testing.T) {
	src := &fakeSource{}
	cfg := types.ExportConfig{OutputDir: t.TempDir()}

	status, err := ExportDocument(context.Background(), src, nil, types.ExportTarget{DocumentID: "gone"}, cfg, &bytes.Buffer{})
	require.Error(t, err)
	assert.Equal(t, types.ExportFailed, status)
	assert.Contains(t, err.Error(), "shared with these credentials")

	var apiErr *googleapi.Error
	assert.ErrorAs(t, err, &apiErr)
}

func TestExportDocumentSkipsUnchanged(t *testing.T) {
	l := testLedger(t)
	src := &fakeSource{docs: map[string]*types.Document{
		"D": simpleDoc("D", "T", "R1", "v1"),
	}}
	cfg := types.ExportConfig{OutputDir: t.TempDir()}
	target := types.ExportTarget{DocumentID: "D"}
	ctx := context.Background()

	status, err := ExportDocument(ctx, src, l, target, cfg, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, types.ExportDone, status)

	rec, found, err := l.Lookup(ctx, "D")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "R1", rec.RevisionID)
	assert.Equal(t, filepath.Join(cfg.OutputDir, "T.md"), rec.Path)

	var w bytes.Buffer
	status, err = ExportDocument(ctx, src, l, target, cfg, &w)
	require.NoError(t, err)
	assert.Equal(t, types.ExportSkipped, status)
	assert.Contains(t, w.String(), "skipped: D (revision R1 unchanged)")

	// Force rewrites.
	forced := cfg
	forced.Force = true
	status, err = ExportDocument(ctx, src, l, target, forced, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, types.ExportDone, status)

	// A new revision is written.
	src.docs["D"] = simpleDoc("D", "T", "R2", "v2")
	status, err = ExportDocument(ctx, src, l, target, cfg, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, types.ExportDone, status)

	// A deleted file is written again even when unchanged.
	require.NoError(t, os.Remove(filepath.Join(cfg.OutputDir, "T.md")))
	status, err = ExportDocument(ctx, src, l, target, cfg, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, types.ExportDone, status)
}

func TestExportBatchContinuesAfterFailure(t *testing.T) {
	src := &fakeSource{docs: map[string]*types.Document{
		"a": simpleDoc("a", "Alpha", "r", "one"),
		"c": simpleDoc("c", "Gamma", "r", "three"),
		"d": simpleDoc("d", "", "r", "untitled"),
	}}
	cfg := types.ExportConfig{OutputDir: t.TempDir(), FetchDelay: time.Millisecond}
	targets := []types.ExportTarget{{DocumentID: "a"}, {DocumentID: "b"}, {DocumentID: "c"}, {DocumentID: "d"}}
	var w bytes.Buffer

	result := ExportBatch(context.Background(), src, nil, targets, cfg, &w)

	assert.Equal(t, 2, result.Exported)
	assert.Equal(t, 0, result.Skipped)
	assert.Equal(t, 2, result.Failed)
	assert.Equal(t, 4, result.Total())
	assert.True(t, result.HasFailures())
	assert.Equal(t, 4, src.fetches)

	out := w.String()
	assert.Contains(t, out, "failed:  b (")
	assert.Contains(t, out, "failed:  d (title not found)")
	assert.Contains(t, out, "Batch summary: 2 exported, 0 skipped, 2 failed (total: 4)")
	assert.FileExists(t, filepath.Join(cfg.OutputDir, "Alpha.md"))
	assert.FileExists(t, filepath.Join(cfg.OutputDir, "Gamma.md"))
}

func TestExportBatchCancelled(t *testing.T) {
	src := &fakeSource{docs: map[string]*types.Document{
		"a": simpleDoc("a", "Alpha", "r", "one"),
	}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := ExportBatch(ctx, src, nil, []types.ExportTarget{{DocumentID: "a"}}, types.ExportConfig{OutputDir: t.TempDir()}, &bytes.Buffer{})
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 0, src.fetches)
}

const savedResponse = `{
  "title": "Saved",
  "documentId": "S1",
  "revisionId": "R9",
  "body": {"content": [
    {"paragraph": {"elements": [{"textRun": {"content": "Hi\n"}}], "paragraphStyle": {"namedStyleType": "HEADING_1"}}},
    {"paragraph": {"elements": [{"textRun": {"content": "world\n"}}], "paragraphStyle": {"namedStyleType": "NORMAL_TEXT"}}}
  ]}
}`

func TestConvertFiles(t *testing.T) {
	in := t.TempDir()
	good := filepath.Join(in, "saved.json")
	untitled := filepath.Join(in, "untitled.json")
	bad := filepath.Join(in, "bad.json")
	require.NoError(t, os.WriteFile(good, []byte(savedResponse), 0o644))
	require.NoError(t, os.WriteFile(untitled, []byte(strings.Replace(savedResponse, `"Saved"`, `""`, 1)), 0o644))
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o644))

	cfg := types.ExportConfig{OutputDir: filepath.Join(t.TempDir(), "md")}
	var w bytes.Buffer
	result := ConvertFiles([]string{good, untitled, bad}, cfg, &w)

	assert.Equal(t, 2, result.Exported)
	assert.Equal(t, 1, result.Failed)
	assert.Contains(t, w.String(), "Batch summary: 2 converted, 0 skipped, 1 failed (total: 3)")

	data, err := os.ReadFile(filepath.Join(cfg.OutputDir, "Saved.md"))
	require.NoError(t, err)
	assert.Equal(t, "---\ntitle: Saved\ndocumentId: S1\nrevisionId: R9\n---\n\n## Hi\n\nworld\n\n", string(data))
	assert.FileExists(t, filepath.Join(cfg.OutputDir, "untitled.md"))

	// Second run skips existing output.
	w.Reset()
	result = ConvertFiles([]string{good}, cfg, &w)
	assert.Equal(t, 1, result.Skipped)
	assert.Contains(t, w.String(), "skipped: ")
}
