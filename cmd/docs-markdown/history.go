// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/docs-markdown/internal/ledger"
	"github.com/pdiddy/docs-markdown/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List exported documents from the ledger",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().String("state-dir", defaultStateDir, "directory holding the export ledger")
	historyCmd.Flags().Bool("json", false, "print as JSON")
	historyCmd.Flags().Bool("yaml", false, "print as YAML")
	historyCmd.MarkFlagsMutuallyExclusive("json", "yaml")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	v := viper.GetViper()
	if err := bindFlags(v, cmd, map[string]string{"ledger.state_dir": "state-dir"}); err != nil {
		return err
	}
	cfg := loadConfig(v, loadedSecrets)

	l, err := ledger.Open(cfg.Ledger)
	if err != nil {
		return err
	}
	defer l.Close()

	ctx := cmd.Context()
	asJSON, _ := cmd.Flags().GetBool("json")
	asYAML, _ := cmd.Flags().GetBool("yaml")
	switch {
	case asJSON:
		return l.WriteJSON(ctx, os.Stdout)
	case asYAML:
		return l.WriteYAML(ctx, os.Stdout)
	}

	records, err := l.List(ctx)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No exports recorded.")
		return nil
	}
	return writeHistoryTable(os.Stdout, records)
}

func writeHistoryTable(w io.Writer, records []types.ExportRecord) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "EXPORTED\tDOCUMENT\tREVISION\tPATH")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			r.ExportedAt.Local().Format(time.DateTime), r.DocumentID, r.RevisionID, r.Path)
	}
	return tw.Flush()
}
