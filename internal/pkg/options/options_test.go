package options

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOptionsDefaults(t *testing.T) {
	o := NewOptions()
	assert.Equal(t, "toolsets", o.ToolsetPath)
	assert.Equal(t, []string{"gpt-4o-mini", "gpt-4o", "gpt-4.1-mini"}, o.Models)
	assert.Equal(t, 30*time.Second, o.Timeout)
	assert.NotEmpty(t, o.HistoryPath)
	assert.Empty(t, NewOptions().Validate())
}

func TestValidate(t *testing.T) {
	o := NewOptions()
	o.ToolsetPath = ""
	o.Models = nil
	o.Timeout = 0
	assert.Len(t, o.Validate(), 3)

	o = NewOptions()
	o.Models = []string{"gpt-4o", ""}
	assert.Len(t, o.Validate(), 1)
}

func TestAPIKeyFromEnvOnly(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	assert.Equal(t, "sk-test", NewOptions().APIKey())

	t.Setenv("OPENAI_API_KEY", "")
	assert.Empty(t, NewOptions().APIKey())
}

func TestAddFlags(t *testing.T) {
	o := NewOptions()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	o.AddFlags(fs)

	require.NoError(t, fs.Parse([]string{
		"--toolset", "/tmp/tools",
		"--models", "a,b",
		"--timeout", "5s",
		"--dry-run",
		"-v",
	}))
	assert.Equal(t, "/tmp/tools", o.ToolsetPath)
	assert.Equal(t, []string{"a", "b"}, o.Models)
	assert.Equal(t, 5*time.Second, o.Timeout)
	assert.True(t, o.DryRun)
	assert.True(t, o.Verbose)
}
