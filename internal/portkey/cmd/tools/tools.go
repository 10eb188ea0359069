// Package tools implements `portkey tools`, listing the loaded descriptors.
package tools

import (
	"fmt"

	"github.com/gosuri/uitable"
	"github.com/mitchellh/go-wordwrap"
	"github.com/spf13/cobra"

	"github.com/kiosk404/portkey/internal/pkg/options"
	"github.com/kiosk404/portkey/internal/router/registry"
)

// NewCmdTools creates the tools command.
func NewCmdTools(opts *options.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List the tool descriptors loaded from the toolset path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := registry.Load(opts.ToolsetPath)
			if err != nil {
				return err
			}

			table := uitable.New()
			table.MaxColWidth = 60
			table.Wrap = true
			table.AddRow("NAME", "BINDING", "REQUIRED", "DESCRIPTION")
			for _, d := range reg.Tools() {
				binding := "-"
				if d.Executable() {
					binding = d.Execution.Module + "/" + d.Execution.Function
				}
				required := "-"
				if len(d.Parameters.Required) > 0 {
					required = fmt.Sprintf("%v", d.Parameters.Required)
				}
				table.AddRow(d.Name, binding, required, wordwrap.WrapString(d.Description, 60))
			}
			fmt.Fprintln(cmd.OutOrStdout(), table)
			return nil
		},
	}
}
