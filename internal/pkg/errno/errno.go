// Package errno defines the sentinel errors and process exit codes shared by
// the routing pipeline. Exit codes are part of the CLI contract: scripts
// depend on them, so they must stay stable.
package errno

import (
	"errors"
)

var (
	ErrUsage           = errors.New("usage error")
	ErrNoAPIKey        = errors.New("no API key found")
	ErrNoToolSources   = errors.New("no tool sources found")
	ErrNoUsableTools   = errors.New("no executable tools found")
	ErrAllModelsFailed = errors.New("all model attempts failed")
	ErrUnknownTool     = errors.New("model chose an unknown tool")
	ErrValidation      = errors.New("argument validation failed")
	ErrUnknownBinding  = errors.New("no handler registered for execution binding")
	ErrLaunchFailed    = errors.New("launch failed")
)

// Exit codes for the portkey CLI. Documented in `portkey route --help`.
const (
	ExitOK             = 0
	ExitUsage          = 1 // bad invocation (missing utterance, bad flags)
	ExitConfig         = 2 // toolset path or API key missing
	ExitNoTools        = 3 // zero executable descriptors across all sources
	ExitModelsFailed   = 4 // every model identifier failed
	ExitUnknownTool    = 5 // model named a tool absent from the registry
	ExitValidation     = 6 // argument validation failed
	ExitUnknownBinding = 7 // execution binding has no registered handler
	ExitLaunchFailed   = 8 // simulator dispatch reported failure
	ExitUnexpected     = 9 // anything else
)

// ExitCodeFor maps an error to its stable exit code.
func ExitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrUsage):
		return ExitUsage
	case errors.Is(err, ErrNoAPIKey), errors.Is(err, ErrNoToolSources):
		return ExitConfig
	case errors.Is(err, ErrNoUsableTools):
		return ExitNoTools
	case errors.Is(err, ErrAllModelsFailed):
		return ExitModelsFailed
	case errors.Is(err, ErrUnknownTool):
		return ExitUnknownTool
	case errors.Is(err, ErrValidation):
		return ExitValidation
	case errors.Is(err, ErrUnknownBinding):
		return ExitUnknownBinding
	case errors.Is(err, ErrLaunchFailed):
		return ExitLaunchFailed
	}
	return ExitUnexpected
}
