// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/docs-markdown/internal/export"
	"github.com/pdiddy/docs-markdown/internal/gdocs"
	"github.com/pdiddy/docs-markdown/internal/ledger"
	"github.com/pdiddy/docs-markdown/internal/manifest"
	"github.com/pdiddy/docs-markdown/pkg/types"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [documentId[:filename]...]",
	Short: "Download documents and write them as Markdown",
	Long: `Fetch retrieves each document from the Google Docs API, converts it to
Markdown, and writes <title>.md (or the given filename) into the output
directory. Documents can also be listed in a manifest file.

Documents whose revision and rendered content match the last export are
skipped unless --force is given.`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().String("manifest", "", "YAML file listing documents to export")
	fetchCmd.Flags().String("save-manifest", "", "write the resolved document list to this YAML file")
	fetchCmd.Flags().String("output-dir", ".", "directory Markdown files are written to")
	fetchCmd.Flags().Bool("force", false, "rewrite files even when the revision is unchanged")
	fetchCmd.Flags().Duration("delay", defaultDelay, "delay between consecutive fetches")
	fetchCmd.Flags().Duration("timeout", defaultTimeout, "HTTP request timeout")
	fetchCmd.Flags().String("state-dir", defaultStateDir, "directory holding the export ledger")
	fetchCmd.Flags().Bool("no-ledger", false, "do not read or update the export ledger")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	v := viper.GetViper()
	if err := bindFlags(v, cmd, map[string]string{
		"export.output_dir":  "output-dir",
		"export.force":       "force",
		"export.fetch_delay": "delay",
		"source.timeout":     "timeout",
		"ledger.state_dir":   "state-dir",
		"ledger.disabled":    "no-ledger",
	}); err != nil {
		return err
	}
	cfg := loadConfig(v, loadedSecrets)

	manifestPath, _ := cmd.Flags().GetString("manifest")
	targets, err := resolveTargets(args, manifestPath)
	if err != nil {
		return err
	}
	if path, _ := cmd.Flags().GetString("save-manifest"); path != "" {
		if err := manifest.Write(path, targets); err != nil {
			return err
		}
	}

	ctx := cmd.Context()
	client, err := gdocs.NewClient(ctx, cfg.Source)
	if err != nil {
		return err
	}

	var l export.Ledger
	if !cfg.Ledger.Disabled {
		lg, err := ledger.Open(cfg.Ledger)
		if err != nil {
			return err
		}
		defer lg.Close()
		l = lg
	}

	result := export.ExportBatch(ctx, client, l, targets, cfg.Export, os.Stdout)
	if result.HasFailures() {
		return fmt.Errorf("%d document(s) failed export", result.Failed)
	}
	return nil
}

// resolveTargets combines command-line targets with the manifest at
// manifestPath, if any. Command-line entries win over manifest entries for
// the same id.
func resolveTargets(args []string, manifestPath string) ([]types.ExportTarget, error) {
	f := &manifest.File{}
	for _, a := range args {
		f.Documents = append(f.Documents, export.ParseTarget(a))
	}
	if manifestPath != "" {
		m, err := manifest.Read(manifestPath)
		if err != nil {
			return nil, err
		}
		f.Documents = append(f.Documents, m.Documents...)
	}
	targets := f.Targets()
	if len(targets) == 0 {
		return nil, fmt.Errorf("provide one or more document ids or a --manifest file")
	}
	return targets, nil
}
