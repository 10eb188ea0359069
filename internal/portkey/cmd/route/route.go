// Package route implements `portkey route`, the full routing pipeline from
// utterance to simulator launch.
package route

import (
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kiosk404/portkey/internal/deeplinks"
	"github.com/kiosk404/portkey/internal/launcher"
	"github.com/kiosk404/portkey/internal/pkg/errno"
	"github.com/kiosk404/portkey/internal/pkg/options"
	"github.com/kiosk404/portkey/internal/portkey/store/boltdb"
	"github.com/kiosk404/portkey/internal/router/llm"
	"github.com/kiosk404/portkey/internal/router/orchestrator"
	"github.com/kiosk404/portkey/pkg/logger"
	"github.com/kiosk404/portkey/pkg/utils/json"
)

// NewCmdRoute creates the route command.
func NewCmdRoute(opts *options.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "route <natural language command>",
		Short: "Route a free-text command to a tool and launch its deep link",
		Long: heredoc.Doc(`
			Route extracts argument slots from the command, asks the configured
			models (in order, falling back on failure) to pick the best tool,
			validates the arguments against the tool's schema, and opens the
			resulting URL scheme on a booted iOS simulator.

			Exit codes:
			  1  usage error
			  2  toolset path or API key missing
			  3  no executable tools found
			  4  all model attempts failed
			  5  model chose an unknown tool
			  6  argument validation failed
			  7  unknown execution binding
			  8  simulator launch failed
			  9  unexpected error
		`),
		Example: heredoc.Doc(`
			# Directions with transport detection
			portkey route "open maps for driving from San Francisco to Los Angeles"

			# Start a FaceTime call
			portkey route "facetime mom@example.com"

			# Inspect the decision without launching
			portkey route --dry-run "spotify search bicep glue"
		`),
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
	}
	return cmd
}

func run(cmd *cobra.Command, opts *options.Options, args []string) error {
	utterance := strings.TrimSpace(strings.Join(args, " "))
	if utterance == "" {
		return fmt.Errorf("%w: provide a natural language command", errno.ErrUsage)
	}
	if errs := opts.Validate(); len(errs) > 0 {
		return fmt.Errorf("%w: %v", errno.ErrUsage, errs[0])
	}

	apiKey := opts.APIKey()
	if apiKey == "" {
		return fmt.Errorf("%w: set OPENAI_API_KEY in your environment and retry", errno.ErrNoAPIKey)
	}

	handlers := launcher.NewRegistry()
	deeplinks.Register(handlers)

	var dispatcher launcher.URLOpener = launcher.NewSimctlDispatcher()
	if opts.DryRun {
		dispatcher = launcher.NopDispatcher{}
	}

	client := llm.NewClient(opts.BaseURL, apiKey, opts.Timeout)
	router := llm.NewRouter(client, opts.Models, opts.Timeout)
	orch := orchestrator.New(opts.ToolsetPath, router, handlers, launcher.New(handlers, dispatcher))

	logger.Info("routing with models: %s", strings.Join(opts.Models, ", "))
	result, err := orch.Run(cmd.Context(), utterance)
	if err != nil {
		return err
	}

	printDecision(cmd, result, opts.DryRun)
	recordHistory(opts, utterance, result)
	return nil
}

func printDecision(cmd *cobra.Command, result *orchestrator.Result, dryRun bool) {
	bold := color.New(color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	argsJSON, _ := json.MarshalString(result.Arguments)
	fmt.Fprintln(cmd.OutOrStdout(), bold("Decision:"))
	fmt.Fprintf(cmd.OutOrStdout(), "  tool      : %s\n", cyan(result.Tool))
	fmt.Fprintf(cmd.OutOrStdout(), "  model     : %s\n", result.Model)
	fmt.Fprintf(cmd.OutOrStdout(), "  arguments : %s\n", argsJSON)
	fmt.Fprintf(cmd.OutOrStdout(), "  url       : %s\n", cyan(result.URL))
	if dryRun {
		fmt.Fprintln(cmd.OutOrStdout(), color.YellowString("dry run, nothing launched"))
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("launched"))
}

// recordHistory appends the launch to the history store. Best-effort: a
// broken history database must not fail a successful launch.
func recordHistory(opts *options.Options, utterance string, result *orchestrator.Result) {
	store, err := boltdb.Open(opts.HistoryPath)
	if err != nil {
		logger.Warn("history disabled: %v", err)
		return
	}
	defer store.Close()

	err = store.Append(&boltdb.Record{
		Utterance: utterance,
		Tool:      result.Tool,
		Model:     result.Model,
		Argv:      result.Argv,
		URL:       result.URL,
	})
	if err != nil {
		logger.Warn("failed to record history: %v", err)
	}
}
