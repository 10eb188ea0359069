// Package orchestrator composes the routing pipeline: extraction, tool
// summarization, model routing, validation, sequencing and the execution
// handoff. The flow is linear and terminal on first failure; the only
// retries are the model-list fallback inside the router.
package orchestrator

import (
	"context"
	"fmt"
	"strings"

	"github.com/kiosk404/portkey/internal/pkg/errno"
	"github.com/kiosk404/portkey/internal/router/registry"
	"github.com/kiosk404/portkey/internal/router/schema"
	"github.com/kiosk404/portkey/internal/router/sequence"
	"github.com/kiosk404/portkey/internal/router/slots"
	"github.com/kiosk404/portkey/internal/router/tool"
	"github.com/kiosk404/portkey/pkg/logger"
	"github.com/kiosk404/portkey/pkg/utils/json"
)

// ModelRouter selects a tool and arguments for an utterance.
type ModelRouter interface {
	Route(ctx context.Context, utterance string, summaries []tool.Summary, detected slots.SlotMap) (*tool.RoutingDecision, string, error)
}

// ParamSource answers declared parameter-order lookups for a binding.
// Unknown bindings yield nil, never an error: sequencing must stay total.
type ParamSource interface {
	Params(module, function string) []string
}

// Executor is the external execution collaborator. It invokes the bound
// function and acts on the returned URL scheme.
type Executor interface {
	Execute(ctx context.Context, module, function string, argv []string) (string, error)
}

// Result is the externally observable outcome of one successful invocation.
type Result struct {
	Tool      string
	Model     string
	Arguments schema.ValidatedArguments
	Argv      []string
	URL       string
}

// Orchestrator wires the pipeline components together. It holds no state
// across invocations; each Run is independent.
type Orchestrator struct {
	toolsetPath string
	router      ModelRouter
	params      ParamSource
	executor    Executor
}

// New creates an Orchestrator.
func New(toolsetPath string, router ModelRouter, params ParamSource, executor Executor) *Orchestrator {
	return &Orchestrator{
		toolsetPath: toolsetPath,
		router:      router,
		params:      params,
		executor:    executor,
	}
}

// Run executes the full pipeline for one utterance. It either completes by
// handing off to the executor or fails cleanly before doing so.
func (o *Orchestrator) Run(ctx context.Context, utterance string) (*Result, error) {
	reg, err := registry.Load(o.toolsetPath)
	if err != nil {
		return nil, err
	}
	tools, err := reg.Executable()
	if err != nil {
		return nil, err
	}

	detected := slots.Extract(utterance)
	extra := slots.ExtractExtra(utterance)
	if out, err := json.MarshalString(detected); err == nil {
		logger.Info("detected slots: %s", out)
	}

	summaries, err := registry.Summaries(tools)
	if err != nil {
		return nil, err
	}

	// The model sees both extraction layers merged, extras winning.
	seen := slots.SlotMap{}
	for k, v := range detected {
		seen[k] = v
	}
	for k, v := range extra {
		seen[k] = v
	}

	decision, model, err := o.router.Route(ctx, utterance, summaries, seen)
	if err != nil {
		return nil, err
	}

	chosen := registry.FindByName(tools, decision.ToolName)
	if chosen == nil {
		return nil, fmt.Errorf("%w: %q (available: %s)",
			errno.ErrUnknownTool, decision.ToolName, strings.Join(registry.Names(tools), ", "))
	}

	// Merge layers: extraction is the base, model arguments take precedence.
	merged := make(map[string]interface{}, len(seen)+len(decision.Arguments))
	for k, v := range detected {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}
	for k, v := range decision.Arguments {
		merged[k] = v
	}

	validated, err := schema.Validate(chosen, merged)
	if err != nil {
		return nil, err
	}

	argv := decision.Argv
	if len(argv) == 0 {
		params := o.params.Params(chosen.Execution.Module, chosen.Execution.Function)
		argv = sequence.Sequence(params, validated)
	}

	url, err := o.executor.Execute(ctx, chosen.Execution.Module, chosen.Execution.Function, argv)
	if err != nil {
		return nil, err
	}

	return &Result{
		Tool:      chosen.Name,
		Model:     model,
		Arguments: validated,
		Argv:      argv,
		URL:       url,
	}, nil
}
