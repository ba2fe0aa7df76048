// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/docs-markdown/internal/gdocs"
	"github.com/pdiddy/docs-markdown/internal/markdown"
	"github.com/pdiddy/docs-markdown/internal/preview"
)

var previewCmd = &cobra.Command{
	Use:   "preview <file.md|file.json|->",
	Short: "Render an exported document in the terminal",
	Long: `Preview renders a Markdown file in the terminal. A saved Docs API response
(.json) is converted first, so the output shows exactly what fetch would write.`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("style", "dark", "glamour style: dark, light, dracula, notty, ...")
	previewCmd.Flags().Int("width", 80, "word wrap width")

	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	v := viper.GetViper()
	if err := bindFlags(v, cmd, map[string]string{
		"preview.style":     "style",
		"preview.word_wrap": "width",
	}); err != nil {
		return err
	}
	cfg := loadConfig(v, loadedSecrets)

	md, err := readPreviewInput(args[0])
	if err != nil {
		return err
	}
	return preview.Render(os.Stdout, md, cfg.Preview)
}

func readPreviewInput(path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		doc, err := gdocs.DecodeFile(path)
		if err != nil {
			return "", err
		}
		return markdown.Convert(doc), nil
	}

	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}
