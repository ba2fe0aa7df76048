// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/docs-markdown/internal/export"
	"github.com/pdiddy/docs-markdown/internal/gdocs"
	"github.com/pdiddy/docs-markdown/internal/markdown"
	"github.com/pdiddy/docs-markdown/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert [file.json...]",
	Short: "Convert saved Docs API responses to Markdown",
	Long: `Convert reads documents previously saved from the Docs API
(documents.get JSON) and writes them as Markdown without network access.
With --stdout the Markdown is printed instead; "-" reads from standard input.`,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("output-dir", "", "directory Markdown files are written to (default: next to each input)")
	convertCmd.Flags().Bool("force", false, "overwrite existing Markdown files")
	convertCmd.Flags().Bool("stdout", false, "print Markdown to standard output instead of writing files")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	toStdout, _ := cmd.Flags().GetBool("stdout")
	if err := checkConvertArgs(args, toStdout); err != nil {
		return err
	}

	if toStdout {
		for _, p := range args {
			if err := convertToWriter(p, os.Stdin, os.Stdout); err != nil {
				return err
			}
		}
		return nil
	}

	// Only explicit flags apply here; the configured export directory
	// belongs to fetch.
	outDir, _ := cmd.Flags().GetString("output-dir")
	force, _ := cmd.Flags().GetBool("force")
	if !cmd.Flags().Changed("force") {
		force = viper.GetBool("export.force")
	}
	cfg := types.ExportConfig{OutputDir: outDir, Force: force}

	result := export.ConvertFiles(args, cfg, os.Stdout)
	if result.HasFailures() {
		return fmt.Errorf("%d file(s) failed conversion", result.Failed)
	}
	return nil
}

// checkConvertArgs rejects argument lists convert cannot serve. Standard
// input has no file name to derive an output path from, so "-" needs --stdout.
func checkConvertArgs(args []string, toStdout bool) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more saved document JSON files")
	}
	if toStdout {
		return nil
	}
	for _, a := range args {
		if a == "-" {
			return fmt.Errorf(`reading standard input ("-") requires --stdout`)
		}
	}
	return nil
}

func convertToWriter(path string, stdin io.Reader, w io.Writer) error {
	var (
		doc *types.Document
		err error
	)
	if path == "-" {
		doc, err = gdocs.Decode(stdin)
	} else {
		doc, err = gdocs.DecodeFile(path)
	}
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, markdown.Convert(doc))
	return err
}
