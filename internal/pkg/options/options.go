// Package options holds the pflag/viper-bound configuration for the portkey
// CLI. Defaults live here, not as process-wide mutable state: the command
// layer constructs options once and passes them down explicitly.
package options

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"
)

// Options is the full portkey configuration.
type Options struct {
	// ToolsetPath is the file or directory holding tool descriptors.
	ToolsetPath string `json:"toolset" mapstructure:"toolset"`
	// Models is the ordered model fallback list.
	Models []string `json:"models" mapstructure:"models"`
	// Timeout bounds each individual model attempt.
	Timeout time.Duration `json:"timeout" mapstructure:"timeout"`
	// BaseURL overrides the completion service endpoint.
	BaseURL string `json:"base-url" mapstructure:"base-url"`
	// HistoryPath is the BoltDB file recording launch history.
	HistoryPath string `json:"history" mapstructure:"history"`
	// DryRun reports the decision without dispatching to the simulator.
	DryRun bool `json:"dry-run" mapstructure:"dry-run"`
	// Verbose enables debug logging.
	Verbose bool `json:"verbose" mapstructure:"verbose"`
}

// NewOptions returns the defaults. The model list and timeout mirror what
// the routing pipeline was tuned against.
func NewOptions() *Options {
	return &Options{
		ToolsetPath: "toolsets",
		Models:      []string{"gpt-4o-mini", "gpt-4o", "gpt-4.1-mini"},
		Timeout:     30 * time.Second,
		HistoryPath: defaultHistoryPath(),
	}
}

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "portkey-history.db"
	}
	return filepath.Join(home, ".portkey", "history.db")
}

// APIKey resolves the completion service key from the environment. The key
// is never accepted as a flag so it cannot leak into shell history.
func (o *Options) APIKey() string {
	return os.Getenv("OPENAI_API_KEY")
}

// Validate checks the options for obvious errors.
func (o *Options) Validate() []error {
	var errs []error
	if o.ToolsetPath == "" {
		errs = append(errs, fmt.Errorf("toolset path is required"))
	}
	if len(o.Models) == 0 {
		errs = append(errs, fmt.Errorf("at least one model identifier is required"))
	}
	for _, m := range o.Models {
		if m == "" {
			errs = append(errs, fmt.Errorf("model identifiers must be non-empty"))
		}
	}
	if o.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("timeout must be positive, got %s", o.Timeout))
	}
	return errs
}

// AddFlags registers the option flags on the given flag set.
func (o *Options) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.ToolsetPath, "toolset", o.ToolsetPath, "File or directory holding tool descriptors.")
	fs.StringSliceVar(&o.Models, "models", o.Models, "Ordered model fallback list.")
	fs.DurationVar(&o.Timeout, "timeout", o.Timeout, "Per-model attempt timeout.")
	fs.StringVar(&o.BaseURL, "base-url", o.BaseURL, "Completion service base URL (defaults to the OpenAI API).")
	fs.StringVar(&o.HistoryPath, "history", o.HistoryPath, "BoltDB file recording launch history.")
	fs.BoolVar(&o.DryRun, "dry-run", o.DryRun, "Report the routing decision without launching.")
	fs.BoolVarP(&o.Verbose, "verbose", "v", o.Verbose, "Enable debug logging.")
}
