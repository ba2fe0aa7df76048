// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/docs-markdown/internal/gdocs"
	"github.com/pdiddy/docs-markdown/internal/secrets"
	"github.com/pdiddy/docs-markdown/pkg/types"
)

func TestLoadConfigDefaults(t *testing.T) {
	v := viper.New()
	setupViper(v)

	cfg := loadConfig(v, nil)
	assert.Equal(t, gdocs.DefaultEndpoint, cfg.Source.Endpoint)
	assert.Equal(t, defaultTimeout, cfg.Source.Timeout)
	assert.Equal(t, defaultMaxRetries, cfg.Source.MaxRetries)
	assert.Equal(t, ".", cfg.Export.OutputDir)
	assert.Equal(t, defaultDelay, cfg.Export.FetchDelay)
	assert.Equal(t, defaultStateDir, cfg.Ledger.StateDir)
	assert.Equal(t, "dark", cfg.Preview.Style)
	assert.True(t, cfg.Source.Credentials.IsEmpty())
}

func TestLoadConfigFile(t *testing.T) {
	v := viper.New()
	setupViper(v)
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(`
source:
  timeout: 5s
  credentials:
    client_id: file-id
export:
  output_dir: docs
  force: true
ledger:
  disabled: true
`)))

	cfg := loadConfig(v, map[string]string{
		secrets.ClientIDKey:     "secret-id",
		secrets.ClientSecretKey: "secret-secret",
	})
	assert.Equal(t, 5*time.Second, cfg.Source.Timeout)
	assert.Equal(t, "docs", cfg.Export.OutputDir)
	assert.True(t, cfg.Export.Force)
	assert.True(t, cfg.Ledger.Disabled)
	assert.Equal(t, "file-id", cfg.Source.Credentials.ClientID)
	assert.Equal(t, "secret-secret", cfg.Source.Credentials.ClientSecret)
}

func TestLoadConfigCredentialEnv(t *testing.T) {
	t.Setenv("GOOGLE_DOCS_CLIENT_ID", "env-id")
	t.Setenv("GOOGLE_DOCS_REFRESH", "env-refresh")
	t.Setenv("DOCS_MARKDOWN_CLIENT_SECRET", "env-secret")
	t.Setenv("DOCS_MARKDOWN_EXPORT_OUTPUT_DIR", "from-env")

	v := viper.New()
	setupViper(v)

	cfg := loadConfig(v, nil)
	assert.Equal(t, types.OAuthCredentials{
		ClientID:     "env-id",
		ClientSecret: "env-secret",
		RefreshToken: "env-refresh",
	}, cfg.Source.Credentials)
	assert.Equal(t, "from-env", cfg.Export.OutputDir)
}

func TestBindFlags(t *testing.T) {
	v := viper.New()
	setupViper(v)

	cmd := &cobra.Command{Use: "x"}
	cmd.Flags().String("output-dir", ".", "")
	cmd.Flags().Duration("delay", defaultDelay, "")
	require.NoError(t, cmd.Flags().Parse([]string{"--output-dir", "out", "--delay", "2s"}))

	require.NoError(t, bindFlags(v, cmd, map[string]string{
		"export.output_dir":  "output-dir",
		"export.fetch_delay": "delay",
	}))

	cfg := loadConfig(v, nil)
	assert.Equal(t, "out", cfg.Export.OutputDir)
	assert.Equal(t, 2*time.Second, cfg.Export.FetchDelay)

	assert.Error(t, bindFlags(v, cmd, map[string]string{"x": "missing"}))
}

func TestWriteHistoryTable(t *testing.T) {
	var buf bytes.Buffer
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, writeHistoryTable(&buf, []types.ExportRecord{
		{DocumentID: "1AbC", RevisionID: "R1", Path: "Notes.md", ExportedAt: at},
	}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "EXPORTED"))
	assert.Contains(t, lines[1], "1AbC")
	assert.Contains(t, lines[1], "Notes.md")
}

func TestConvertToWriter(t *testing.T) {
	in := strings.NewReader(`{"title":"T","documentId":"D","revisionId":"R","body":{"content":[
		{"paragraph":{"elements":[{"textRun":{"content":"Hi\n"}}],"paragraphStyle":{"namedStyleType":"HEADING_1"}}},
		{"paragraph":{"elements":[{"textRun":{"content":"world\n"}}],"paragraphStyle":{"namedStyleType":"NORMAL_TEXT"}}}
	]}}`)

	var out bytes.Buffer
	require.NoError(t, convertToWriter("-", in, &out))
	assert.Equal(t, "---\ntitle: T\ndocumentId: D\nrevisionId: R\n---\n\n## Hi\n\nworld\n\n", out.String())
}

func TestCheckConvertArgs(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		toStdout bool
		wantErr  string
	}{
		{name: "no args", wantErr: "provide one or more"},
		{name: "files", args: []string{"a.json", "b.json"}},
		{name: "stdin to stdout", args: []string{"-"}, toStdout: true},
		{name: "stdin to file", args: []string{"a.json", "-"}, wantErr: "requires --stdout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkConvertArgs(tt.args, tt.toStdout)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
