// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the docs-markdown CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/docs-markdown/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credential values loaded from the secrets directory at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the docs-markdown CLI.
var rootCmd = &cobra.Command{
	Use:   "docs-markdown",
	Short: "Export Google Docs documents as Markdown",
	Long: `docs-markdown fetches documents from the Google Docs API and writes them as
Markdown files with a small front matter block (title, document id, revision id).

Headings, emphasis, links, images, lists, and tables are rendered; other
content is dropped. Exports are recorded in a local ledger so unchanged
revisions are skipped on later runs.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("secrets-dir")
		s, err := secrets.Load(dir, os.Stderr)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./docs-markdown.yaml or ~/.config/docs-markdown/docs-markdown.yaml)")
	rootCmd.PersistentFlags().String("secrets-dir", ".secrets", "directory of credential key files")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("docs-markdown")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "docs-markdown"))
		}
	}

	setupViper(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
