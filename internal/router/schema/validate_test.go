package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiosk404/portkey/internal/pkg/errno"
	"github.com/kiosk404/portkey/internal/router/tool"
)

func boolPtr(b bool) *bool { return &b }

func mapsDescriptor() *tool.Descriptor {
	return &tool.Descriptor{
		Name: "apple_maps",
		Parameters: tool.Schema{
			Type: "object",
			Properties: map[string]tool.ParamSpec{
				"source":      {Type: "string"},
				"destination": {Type: "string"},
				"transport":   {Type: "string", Enum: []interface{}{"d", "w", "r", "c"}},
			},
			Required: []string{"source", "destination"},
		},
	}
}

func TestValidate_MissingRequiredListsAll(t *testing.T) {
	_, err := Validate(mapsDescriptor(), map[string]interface{}{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errno.ErrValidation))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"source", "destination"}, verr.Missing)
	assert.Contains(t, err.Error(), "source")
	assert.Contains(t, err.Error(), "destination")
}

func TestValidate_PassesCanonicalTransport(t *testing.T) {
	got, err := Validate(mapsDescriptor(), map[string]interface{}{
		"source":      "Home",
		"destination": "Work",
		"transport":   "w",
	})
	require.NoError(t, err)
	assert.Equal(t, "w", got["transport"])
}

func TestValidate_ResolvesTransportSynonym(t *testing.T) {
	got, err := Validate(mapsDescriptor(), map[string]interface{}{
		"source":      "Home",
		"destination": "Work",
		"transport":   "driving",
	})
	require.NoError(t, err)
	assert.Equal(t, "d", got["transport"])
}

func TestValidate_RejectsUnknownEnumValue(t *testing.T) {
	_, err := Validate(mapsDescriptor(), map[string]interface{}{
		"source":      "Home",
		"destination": "Work",
		"transport":   "hoverboard",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errno.ErrValidation))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "transport", verr.Field)
	assert.Equal(t, []interface{}{"d", "w", "r", "c"}, verr.Allowed)
}

func TestValidate_SynonymsOnlyApplyToTransport(t *testing.T) {
	desc := &tool.Descriptor{
		Name: "demo",
		Parameters: tool.Schema{
			Type: "object",
			Properties: map[string]tool.ParamSpec{
				"mode": {Type: "string", Enum: []interface{}{"d"}},
			},
		},
	}
	_, err := Validate(desc, map[string]interface{}{"mode": "driving"})
	require.Error(t, err)
}

func TestValidate_Coercions(t *testing.T) {
	desc := &tool.Descriptor{
		Name: "demo",
		Parameters: tool.Schema{
			Type: "object",
			Properties: map[string]tool.ParamSpec{
				"name":   {Type: "string"},
				"count":  {Type: "integer"},
				"ratio":  {Type: "number"},
				"active": {Type: "boolean"},
			},
		},
	}

	got, err := Validate(desc, map[string]interface{}{
		"name":   3.5,
		"count":  "42",
		"ratio":  "3.14",
		"active": "yes",
	})
	require.NoError(t, err)
	assert.Equal(t, "3.5", got["name"])
	assert.Equal(t, int64(42), got["count"])
	assert.Equal(t, 3.14, got["ratio"])
	assert.Equal(t, true, got["active"])

	// JSON numbers decode as float64; integers truncate.
	got, err = Validate(desc, map[string]interface{}{"count": 7.0})
	require.NoError(t, err)
	assert.Equal(t, int64(7), got["count"])

	_, err = Validate(desc, map[string]interface{}{"count": "4.2"})
	require.Error(t, err)

	_, err = Validate(desc, map[string]interface{}{"active": "maybe"})
	require.Error(t, err)
}

func TestValidate_OmitsAbsentOptional(t *testing.T) {
	got, err := Validate(mapsDescriptor(), map[string]interface{}{
		"source":      "A",
		"destination": "B",
	})
	require.NoError(t, err)
	assert.NotContains(t, got, "transport")
}

func TestValidate_AdditionalProperties(t *testing.T) {
	desc := mapsDescriptor()
	args := map[string]interface{}{
		"source":      "A",
		"destination": "B",
		"note":        "scenic route",
	}

	// Default (unset) lets undeclared keys pass through untouched.
	got, err := Validate(desc, args)
	require.NoError(t, err)
	assert.Equal(t, "scenic route", got["note"])

	// additionalProperties:false drops them silently instead of failing.
	desc.Parameters.AdditionalProperties = boolPtr(false)
	got, err = Validate(desc, args)
	require.NoError(t, err)
	assert.NotContains(t, got, "note")
	assert.Equal(t, "A", got["source"])
}

func TestStringify(t *testing.T) {
	assert.Equal(t, "plain", Stringify("plain"))
	assert.Equal(t, "2", Stringify(float64(2)))
	assert.Equal(t, "2.5", Stringify(2.5))
	assert.Equal(t, "9", Stringify(int64(9)))
	assert.Equal(t, "true", Stringify(true))
}
