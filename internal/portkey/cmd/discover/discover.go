// Package discover implements `portkey discover`, scanning the booted
// simulator for apps' registered URL schemes.
package discover

import (
	"fmt"
	"strings"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/kiosk404/portkey/internal/launcher"
	"github.com/kiosk404/portkey/internal/pkg/options"
)

// NewCmdDiscover creates the discover command.
func NewCmdDiscover(_ *options.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "discover",
		Short: "List URL schemes registered by apps on the booted simulator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			apps, err := launcher.DiscoverSchemes(cmd.Context())
			if err != nil {
				return err
			}

			table := uitable.New()
			table.MaxColWidth = 60
			table.Wrap = true
			table.AddRow("BUNDLE ID", "APP", "SCHEMES")
			for _, app := range apps {
				schemes := "-"
				if len(app.Schemes) > 0 {
					schemes = strings.Join(app.Schemes, ", ")
				}
				table.AddRow(app.BundleID, app.Name, schemes)
			}
			fmt.Fprintln(cmd.OutOrStdout(), table)
			return nil
		},
	}
}
