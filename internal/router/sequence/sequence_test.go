package sequence

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kiosk404/portkey/internal/router/schema"
)

func TestSequence_DeclaredOrder(t *testing.T) {
	args := schema.ValidatedArguments{
		"destination": "LA",
		"source":      "SF",
		"transport":   "d",
	}
	argv := Sequence([]string{"source", "destination", "transport"}, args)
	assert.Equal(t, []string{"SF", "LA", "d"}, argv)
}

func TestSequence_DeclaredOrderSkipsAbsent(t *testing.T) {
	args := schema.ValidatedArguments{"source": "SF", "destination": "LA"}
	argv := Sequence([]string{"source", "destination", "transport"}, args)
	assert.Equal(t, []string{"SF", "LA"}, argv)
}

func TestSequence_PriorityFallback(t *testing.T) {
	args := schema.ValidatedArguments{
		"query":       "coffee",
		"transport":   "w",
		"destination": "park",
	}
	argv := Sequence(nil, args)
	assert.Equal(t, []string{"park", "w", "coffee"}, argv)
}

func TestSequence_PriorityFallbackWhenDeclaredYieldsNothing(t *testing.T) {
	args := schema.ValidatedArguments{"source": "SF"}
	argv := Sequence([]string{"recipient", "subject"}, args)
	assert.Equal(t, []string{"SF"}, argv)
}

func TestSequence_SortedByKeyFallback(t *testing.T) {
	args := schema.ValidatedArguments{
		"zeta":  "last",
		"alpha": "first",
		"mid":   int64(3),
	}
	argv := Sequence(nil, args)
	assert.Equal(t, []string{"first", "3", "last"}, argv)
}

func TestSequence_EmptyArgs(t *testing.T) {
	assert.Empty(t, Sequence([]string{"source"}, nil))
	assert.Empty(t, Sequence(nil, schema.ValidatedArguments{}))
}
