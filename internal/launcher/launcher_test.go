package launcher

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiosk404/portkey/internal/pkg/errno"
)

type recordingOpener struct {
	url string
	err error
}

func (r *recordingOpener) Open(_ context.Context, url string) error {
	r.url = url
	return r.err
}

func demoHandler(function string) *Handler {
	return &Handler{
		Module: "demo", Function: function,
		Params: []string{"a", "b"},
		Build: func(args []string) (string, error) {
			if len(args) == 0 {
				return "", fmt.Errorf("%s needs arguments", function)
			}
			return "demo://" + args[0], nil
		},
	}
}

func TestRegistry_RegisterAndLookup(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(demoHandler("f")))
	assert.Equal(t, 1, reg.Len())

	h, err := reg.Lookup("demo", "f")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, h.Params)

	err = reg.Register(demoHandler("f"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestRegistry_LookupUnknown(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Lookup("demo", "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errno.ErrUnknownBinding))
}

func TestRegistry_ParamsNeverFails(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(demoHandler("f"))

	assert.Equal(t, []string{"a", "b"}, reg.Params("demo", "f"))
	assert.Nil(t, reg.Params("demo", "missing"))
}

func TestRegistry_ListIsSorted(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(demoHandler("zz"))
	reg.MustRegister(demoHandler("aa"))
	reg.MustRegister(demoHandler("mm"))

	list := reg.List()
	require.Len(t, list, 3)
	assert.Equal(t, "aa", list[0].Function)
	assert.Equal(t, "mm", list[1].Function)
	assert.Equal(t, "zz", list[2].Function)
}

func TestLauncher_Execute(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(demoHandler("f"))
	opener := &recordingOpener{}
	l := New(reg, opener)

	url, err := l.Execute(context.Background(), "demo", "f", []string{"x"})
	require.NoError(t, err)
	assert.Equal(t, "demo://x", url)
	assert.Equal(t, "demo://x", opener.url)
}

func TestLauncher_ExecuteUnknownBinding(t *testing.T) {
	l := New(NewRegistry(), &recordingOpener{})
	_, err := l.Execute(context.Background(), "demo", "f", nil)
	assert.True(t, errors.Is(err, errno.ErrUnknownBinding))
}

func TestLauncher_ExecuteBuildFailure(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(demoHandler("f"))
	l := New(reg, &recordingOpener{})

	_, err := l.Execute(context.Background(), "demo", "f", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errno.ErrLaunchFailed))
}

func TestLauncher_ExecuteDispatchFailureReturnsURL(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(demoHandler("f"))
	l := New(reg, &recordingOpener{err: fmt.Errorf("no simulator")})

	url, err := l.Execute(context.Background(), "demo", "f", []string{"x"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errno.ErrLaunchFailed))
	assert.Equal(t, "demo://x", url)
}

func TestRankOrdersIPhones(t *testing.T) {
	assert.True(t, betterRanked("iPhone 16 Pro Max", "iPhone 16 Pro"))
	assert.True(t, betterRanked("iPhone 16", "iPhone 15 Pro Max"))
	assert.True(t, betterRanked("iPhone 15 Plus", "iPhone 15"))
	assert.True(t, betterRanked("iPhone 15", "iPhone SE (3rd generation)"))
	assert.False(t, betterRanked("iPhone SE (3rd generation)", "iPhone 14"))
}
