// Package cmd builds the portkey command tree.
package cmd

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kiosk404/portkey/internal/pkg/options"
	"github.com/kiosk404/portkey/internal/portkey/cmd/discover"
	"github.com/kiosk404/portkey/internal/portkey/cmd/history"
	"github.com/kiosk404/portkey/internal/portkey/cmd/route"
	"github.com/kiosk404/portkey/internal/portkey/cmd/tools"
	"github.com/kiosk404/portkey/pkg/logger"
)

// NewDefaultPortkeyCommand creates the `portkey` command with default
// arguments.
func NewDefaultPortkeyCommand() *cobra.Command {
	opts := options.NewOptions()

	cmds := &cobra.Command{
		Use:   "portkey",
		Short: "portkey routes natural-language commands to iOS deep links",
		Long: heredoc.Doc(`
			portkey takes a free-text command, deterministically extracts argument
			slots from it, asks a completion service to pick the best matching tool
			(falling back across an ordered model list), validates the arguments
			against the tool's JSON Schema, and opens the resulting URL scheme on a
			booted iOS simulator.
		`),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			loadConfig(opts)
			logger.SetVerbose(opts.Verbose)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	opts.AddFlags(cmds.PersistentFlags())
	_ = viper.BindPFlags(cmds.PersistentFlags())

	cmds.AddCommand(
		route.NewCmdRoute(opts),
		tools.NewCmdTools(opts),
		discover.NewCmdDiscover(opts),
		history.NewCmdHistory(opts),
	)

	return cmds
}

// loadConfig merges an optional portkey.yaml into the options. Flags bound
// to viper keep precedence over file values.
func loadConfig(opts *options.Options) {
	viper.SetConfigName("portkey")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.portkey")
	if err := viper.ReadInConfig(); err != nil {
		return
	}
	if err := viper.Unmarshal(opts); err != nil {
		logger.Warn("failed to apply config file %s: %v", viper.ConfigFileUsed(), err)
	}
}
