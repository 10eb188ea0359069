package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kiosk404/portkey/internal/pkg/errno"
	"github.com/kiosk404/portkey/internal/router/slots"
	"github.com/kiosk404/portkey/internal/router/tool"
	"github.com/kiosk404/portkey/pkg/logger"
	"github.com/kiosk404/portkey/pkg/utils/json"
)

const systemPrompt = "You are a router. Given a user utterance and a list of tools with JSON Schemas, " +
	"choose the single best tool and output ONLY valid JSON with 'tool_name', 'arguments', and optional 'argv'. " +
	"Respect enums and required fields. Use the provided 'detected_slots' if they match the schema."

const guidance = "If the utterance contains 'from X to Y', map X -> 'source' and Y -> 'destination'. " +
	"If it mentions driving/walking/public transit/cycling, map to 'transport' as 'd'/'w'/'r'/'c'. " +
	"Do not include explanations."

// routePayload is the single JSON user message sent to each model.
type routePayload struct {
	Utterance     string            `json:"utterance"`
	DetectedSlots slots.SlotMap     `json:"detected_slots"`
	Tools         []tool.Summary    `json:"tools"`
	Instructions  string            `json:"instructions"`
	OutputFormat  map[string]string `json:"output_format"`
}

// Attempt records one failed model attempt.
type Attempt struct {
	Model string
	Err   error
}

// AllFailedError is returned when every model identifier has been exhausted.
// It carries the attempt log and unwraps to errno.ErrAllModelsFailed.
type AllFailedError struct {
	Attempts []Attempt
}

func (e *AllFailedError) Error() string {
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, fmt.Sprintf("%s: %v", a.Model, a.Err))
	}
	return fmt.Sprintf("all model attempts failed (%d): %s", len(e.Attempts), strings.Join(parts, " | "))
}

func (e *AllFailedError) Unwrap() error { return errno.ErrAllModelsFailed }

// Last returns the final underlying error, or nil when nothing was attempted.
func (e *AllFailedError) Last() error {
	if len(e.Attempts) == 0 {
		return nil
	}
	return e.Attempts[len(e.Attempts)-1].Err
}

// Router tries an ordered list of model identifiers strictly sequentially:
// each attempt starts only after the previous one failed, which bounds cost
// and keeps worst-case latency at the sum of per-attempt timeouts.
type Router struct {
	client  *Client
	models  []string
	timeout time.Duration
}

// NewRouter creates a Router. models is the ordered fallback list; timeout
// bounds each individual attempt.
func NewRouter(client *Client, models []string, timeout time.Duration) *Router {
	return &Router{client: client, models: models, timeout: timeout}
}

// Route asks the completion service to pick a tool for the utterance. The
// detected slot map must already merge the base and extra extraction layers.
// The first model returning a JSON-parseable decision wins; a non-JSON body
// is a retriable failure for that identifier only. Returns the decision and
// the identifier that produced it.
func (r *Router) Route(ctx context.Context, utterance string, summaries []tool.Summary, detected slots.SlotMap) (*tool.RoutingDecision, string, error) {
	payload, err := json.MarshalString(routePayload{
		Utterance:     utterance,
		DetectedSlots: detected,
		Tools:         summaries,
		Instructions:  guidance,
		OutputFormat: map[string]string{
			"tool_name": "string",
			"arguments": "object (keys must match the tool's parameters schema)",
			"argv":      "array of strings in call order (optional)",
		},
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal route payload: %w", err)
	}

	failure := &AllFailedError{}
	for i, model := range r.models {
		start := time.Now()
		decision, err := r.attempt(ctx, model, payload)
		if err != nil {
			failure.Attempts = append(failure.Attempts, Attempt{Model: model, Err: err})
			logger.Warn("[Fallback] attempt %d/%d failed (%s): %v", i+1, len(r.models), model, err)
			continue
		}
		logger.Info("[Fallback] model %q responded in %.1fs (attempt %d/%d)",
			model, time.Since(start).Seconds(), i+1, len(r.models))
		return decision, model, nil
	}
	return nil, "", failure
}

func (r *Router) attempt(ctx context.Context, model, payload string) (*tool.RoutingDecision, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	raw, err := r.client.Complete(attemptCtx, model, systemPrompt, payload)
	if err != nil {
		return nil, err
	}

	var decision tool.RoutingDecision
	if err := json.UnmarshalString(raw, &decision); err != nil {
		return nil, fmt.Errorf("model returned non-JSON output: %q", raw)
	}
	return &decision, nil
}
