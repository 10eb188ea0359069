// Package tool defines the descriptor entities shared across the routing
// pipeline: the on-disk tool declaration, its JSON Schema contract, and the
// model's routing decision.
package tool

// Descriptor is the declared representation of a tool: a callable contract
// (JSON Schema) plus the execution binding naming the function that builds
// the deep link. Descriptors are immutable once loaded.
type Descriptor struct {
	// Name is the unique tool name the model selects by.
	Name string `json:"name"`
	// Description tells the model what the tool does.
	Description string `json:"description"`
	// Parameters is the JSON Schema for the tool's arguments.
	Parameters Schema `json:"parameters"`
	// Execution binds the tool to a registered handler.
	Execution Execution `json:"execution"`
}

// Executable reports whether the descriptor carries a complete execution
// binding. Descriptors without one are declared but not callable.
func (d *Descriptor) Executable() bool {
	return d.Execution.Module != "" && d.Execution.Function != ""
}

// Execution identifies the handler that realizes a tool.
type Execution struct {
	// Module groups related handlers (e.g. "deeplinks").
	Module string `json:"module"`
	// Function is the handler name within the module.
	Function string `json:"function"`
}

// Schema is the object-level JSON Schema subset the validator understands.
type Schema struct {
	Type       string               `json:"type,omitempty"`
	Properties map[string]ParamSpec `json:"properties,omitempty"`
	Required   []string             `json:"required,omitempty"`
	// AdditionalProperties defaults to true when absent.
	AdditionalProperties *bool `json:"additionalProperties,omitempty"`
}

// AllowsAdditional reports whether undeclared keys may pass through
// validation. Absent means permissive, matching JSON Schema semantics.
func (s *Schema) AllowsAdditional() bool {
	return s.AdditionalProperties == nil || *s.AdditionalProperties
}

// ParamSpec describes a single schema property.
type ParamSpec struct {
	Type        string        `json:"type,omitempty"`
	Description string        `json:"description,omitempty"`
	Enum        []interface{} `json:"enum,omitempty"`
}

// Summary is the subset of a descriptor sent to the model. It mirrors the
// descriptor's public fields and never carries internal-only data.
type Summary struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Parameters  Schema    `json:"parameters"`
	Execution   Execution `json:"execution"`
}

// RoutingDecision is the model's structured answer: the chosen tool, its
// argument mapping, and an optional explicit positional argv.
type RoutingDecision struct {
	ToolName  string                 `json:"tool_name"`
	Arguments map[string]interface{} `json:"arguments"`
	Argv      []string               `json:"argv,omitempty"`
}
