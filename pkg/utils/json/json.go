// Package json wraps bytedance/sonic behind the familiar encoding/json
// surface so call sites stay library-agnostic.
package json

import (
	"github.com/bytedance/sonic"
)

// Marshal returns the JSON encoding of v.
func Marshal(v interface{}) ([]byte, error) {
	return sonic.Marshal(v)
}

// MarshalString returns the JSON encoding of v as a string.
func MarshalString(v interface{}) (string, error) {
	return sonic.MarshalString(v)
}

// MarshalIndent is like Marshal but indents the output for human reading.
func MarshalIndent(v interface{}, prefix, indent string) ([]byte, error) {
	return sonic.MarshalIndent(v, prefix, indent)
}

// Unmarshal parses the JSON-encoded data and stores the result in the value
// pointed to by v.
func Unmarshal(data []byte, v interface{}) error {
	return sonic.Unmarshal(data, v)
}

// UnmarshalString parses the JSON-encoded string and stores the result in the
// value pointed to by v.
func UnmarshalString(data string, v interface{}) error {
	return sonic.UnmarshalString(data, v)
}

// Valid reports whether data is a valid JSON encoding.
func Valid(data []byte) bool {
	return sonic.Valid(data)
}
