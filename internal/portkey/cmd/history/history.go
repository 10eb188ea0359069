// Package history implements `portkey history`, listing recent launches.
package history

import (
	"fmt"
	"strings"

	"github.com/gosuri/uitable"
	"github.com/mitchellh/go-wordwrap"
	"github.com/spf13/cobra"

	"github.com/kiosk404/portkey/internal/pkg/options"
	"github.com/kiosk404/portkey/internal/portkey/store/boltdb"
)

// NewCmdHistory creates the history command.
func NewCmdHistory(opts *options.Options) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent routed launches, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := boltdb.Open(opts.HistoryPath)
			if err != nil {
				return err
			}
			defer store.Close()

			records, err := store.List(limit)
			if err != nil {
				return err
			}

			table := uitable.New()
			table.MaxColWidth = 50
			table.Wrap = true
			table.AddRow("WHEN", "TOOL", "MODEL", "URL", "UTTERANCE")
			for _, rec := range records {
				table.AddRow(
					rec.CreatedAt.Local().Format("2006-01-02 15:04:05"),
					rec.Tool,
					rec.Model,
					strings.TrimSpace(rec.URL),
					wordwrap.WrapString(rec.Utterance, 50),
				)
			}
			fmt.Fprintln(cmd.OutOrStdout(), table)
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of records to show (0 for all).")
	return cmd
}
