// Package schema validates a candidate argument mapping against a tool's
// declared JSON Schema. Validation is the trust boundary of the pipeline:
// everything upstream (detected slots, model output) is untrusted, and only
// ValidatedArguments may reach the execution handoff.
package schema

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kiosk404/portkey/internal/pkg/errno"
	"github.com/kiosk404/portkey/internal/router/slots"
	"github.com/kiosk404/portkey/internal/router/tool"
)

// ValidatedArguments is an argument mapping whose every declared value has
// passed type coercion and enum resolution.
type ValidatedArguments map[string]interface{}

// ValidationError reports exactly what failed: either the full list of
// missing required fields, or the single offending field with its value and,
// for enum failures, the allowed set.
type ValidationError struct {
	Missing []string
	Field   string
	Value   interface{}
	Allowed []interface{}
	Reason  string
}

// Unwrap lets callers classify the failure with errors.Is.
func (e *ValidationError) Unwrap() error { return errno.ErrValidation }

func (e *ValidationError) Error() string {
	switch {
	case len(e.Missing) > 0:
		return fmt.Sprintf("missing required arguments: [%s]", strings.Join(e.Missing, ", "))
	case len(e.Allowed) > 0:
		return fmt.Sprintf("parameter %q must be one of %v, got %v", e.Field, e.Allowed, e.Value)
	default:
		return fmt.Sprintf("parameter %q: %s", e.Field, e.Reason)
	}
}

// Validate checks args against the descriptor's parameter schema and returns
// the coerced result. Declared properties absent from args are omitted, not
// defaulted. Undeclared keys pass through untouched unless the schema sets
// additionalProperties to false, in which case they are dropped silently.
func Validate(desc *tool.Descriptor, args map[string]interface{}) (ValidatedArguments, error) {
	s := desc.Parameters

	var missing []string
	for _, name := range s.Required {
		if _, ok := args[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Missing: missing}
	}

	out := ValidatedArguments{}
	for name, spec := range s.Properties {
		val, ok := args[name]
		if !ok {
			continue
		}
		if spec.Type != "" {
			coerced, err := coerce(spec.Type, val)
			if err != nil {
				return nil, &ValidationError{Field: name, Value: val, Reason: err.Error()}
			}
			val = coerced
		}
		if len(spec.Enum) > 0 {
			val = resolveEnumSynonym(name, val)
			if !enumContains(spec.Enum, val) {
				return nil, &ValidationError{Field: name, Value: val, Allowed: spec.Enum}
			}
		}
		out[name] = val
	}

	if s.AllowsAdditional() {
		for name, val := range args {
			if _, declared := s.Properties[name]; !declared {
				out[name] = val
			}
		}
	}

	return out, nil
}

// coerce converts val to the declared JSON Schema type. Composite types are
// shape-checked only, never converted.
func coerce(typ string, val interface{}) (interface{}, error) {
	switch typ {
	case "string":
		return Stringify(val), nil
	case "number":
		return toFloat(val)
	case "integer":
		return toInt(val)
	case "boolean":
		return toBool(val)
	case "array":
		if _, ok := val.([]interface{}); ok {
			return val, nil
		}
		return nil, fmt.Errorf("expected array, got %T", val)
	case "object":
		if _, ok := val.(map[string]interface{}); ok {
			return val, nil
		}
		return nil, fmt.Errorf("expected object, got %T", val)
	}
	return val, nil
}

func toFloat(val interface{}) (float64, error) {
	switch v := val.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("cannot coerce %q to number", v)
		}
		return f, nil
	}
	return 0, fmt.Errorf("cannot coerce %T to number", val)
}

func toInt(val interface{}) (int64, error) {
	switch v := val.(type) {
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case float64:
		return int64(v), nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("cannot coerce %q to integer", v)
		}
		return n, nil
	}
	return 0, fmt.Errorf("cannot coerce %T to integer", val)
}

func toBool(val interface{}) (bool, error) {
	if b, ok := val.(bool); ok {
		return b, nil
	}
	switch strings.ToLower(strings.TrimSpace(Stringify(val))) {
	case "true", "1", "yes", "y":
		return true, nil
	case "false", "0", "no", "n":
		return false, nil
	}
	return false, fmt.Errorf("cannot coerce %v to boolean", val)
}

// resolveEnumSynonym applies the transport synonym table before enum
// membership testing. The mapping is deliberately keyed to the field name
// "transport" only; broadening it would silently change validation outcomes
// for other enum fields.
func resolveEnumSynonym(name string, val interface{}) interface{} {
	if name != "transport" {
		return val
	}
	s, ok := val.(string)
	if !ok {
		return val
	}
	if code, ok := slots.ResolveTransport(s); ok {
		return code
	}
	return val
}

func enumContains(enum []interface{}, val interface{}) bool {
	for _, e := range enum {
		if e == val {
			return true
		}
		// JSON numbers always decode as float64; tolerate integer coercion.
		if ef, ok := e.(float64); ok {
			if vi, ok := val.(int64); ok && ef == float64(vi) {
				return true
			}
		}
	}
	return false
}

// Stringify renders a validated value the way it should appear in a
// positional argument: numbers without a float suffix, booleans lowercase.
func Stringify(val interface{}) string {
	switch v := val.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}
