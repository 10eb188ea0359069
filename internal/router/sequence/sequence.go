// Package sequence converts a validated argument mapping into the ordered
// positional argv the launcher expects. Sequencing is total and
// deterministic: whatever the inputs, it returns some stable ordering and
// never fails.
package sequence

import (
	"sort"

	"github.com/kiosk404/portkey/internal/router/schema"
)

// priorityKeys is the fixed fallback order used when no declared parameter
// order is available.
var priorityKeys = []string{"source", "destination", "transport", "query"}

// Sequence emits args in the declared parameter order, skipping absent ones.
// When params is empty or yields nothing, it falls back to the fixed
// priority keys, and finally to all values sorted by key name.
func Sequence(params []string, args schema.ValidatedArguments) []string {
	var argv []string
	for _, name := range params {
		if val, ok := args[name]; ok {
			argv = append(argv, schema.Stringify(val))
		}
	}
	if len(argv) > 0 {
		return argv
	}

	for _, name := range priorityKeys {
		if val, ok := args[name]; ok {
			argv = append(argv, schema.Stringify(val))
		}
	}
	if len(argv) > 0 || len(args) == 0 {
		return argv
	}

	keys := make([]string, 0, len(args))
	for k := range args {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		argv = append(argv, schema.Stringify(args[k]))
	}
	return argv
}
