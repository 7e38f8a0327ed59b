// Package router classifies inbound messages into exactly one responder
// identity via a single constrained tool call.
package router

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	contractx "github.com/al-jwarizmi/mongodb-agents/agent/contract"
	promptx "github.com/al-jwarizmi/mongodb-agents/agent/prompt"
)

const routeTool = "route_to_responder"

// Router holds the enabled-responder set captured at construction. It is
// stateless across calls.
type Router struct {
	model       contractx.ChatModel
	enabled     map[contractx.ResponderKind]struct{}
	system      string
	schema      contractx.ToolSchema
	temperature float64
	window      int
}

// Config carries the router's classification settings.
type Config struct {
	Temperature   float64 // low, to keep routing stable
	HistoryWindow int     // routing context, last N turns
}

func New(model contractx.ChatModel, kinds []contractx.ResponderKind, cfg Config) (*Router, error) {
	if model == nil {
		return nil, fmt.Errorf("%w: chat model is required", contractx.ErrValidation)
	}
	if len(kinds) == 0 {
		return nil, fmt.Errorf("%w: at least one responder must be enabled", contractx.ErrValidation)
	}

	window := cfg.HistoryWindow
	if window <= 0 {
		window = 3
	}

	enabled := make(map[contractx.ResponderKind]struct{}, len(kinds))
	descriptors := make([]contractx.ResponderDescriptor, 0, len(kinds))
	ids := make([]string, 0, len(kinds))
	for _, k := range kinds {
		enabled[k] = struct{}{}
		descriptors = append(descriptors, contractx.Describe(k))
		ids = append(ids, string(k))
	}

	return &Router{
		model:       model,
		enabled:     enabled,
		system:      promptx.Router(descriptors),
		schema:      routeSchema(ids),
		temperature: cfg.Temperature,
		window:      window,
	}, nil
}

// Route classifies one message. The model must answer with the routing tool;
// free text or an out-of-set responder is a schema violation, fatal for the
// turn.
func (r *Router) Route(ctx context.Context, message string, history []contractx.Turn) (contractx.RouteDecision, error) {
	if len(history) > r.window {
		history = history[len(history)-r.window:]
	}

	messages := make([]contractx.Message, 0, len(history)+2)
	messages = append(messages, contractx.Message{Role: "system", Content: r.system})
	for _, t := range history {
		messages = append(messages, contractx.Message{Role: string(t.Role), Content: t.Content})
	}
	messages = append(messages, contractx.Message{Role: "user", Content: message})

	resp, err := r.model.Complete(ctx, contractx.CompletionRequest{
		Messages:    messages,
		Tools:       []contractx.ToolSchema{r.schema},
		ForceTool:   routeTool,
		Temperature: r.temperature,
	})
	if err != nil {
		return contractx.RouteDecision{}, err
	}

	if resp.ToolCall == nil {
		return contractx.RouteDecision{}, fmt.Errorf("%w: router answered in free text", contractx.ErrSchemaViolation)
	}
	if resp.ToolCall.Name != routeTool {
		return contractx.RouteDecision{}, fmt.Errorf("%w: router called unexpected tool %q", contractx.ErrSchemaViolation, resp.ToolCall.Name)
	}

	var decision contractx.RouteDecision
	if err := json.Unmarshal([]byte(resp.ToolCall.Arguments), &decision); err != nil {
		return contractx.RouteDecision{}, fmt.Errorf("%w: malformed routing arguments: %v", contractx.ErrSchemaViolation, err)
	}

	kind, err := contractx.ParseResponderKind(decision.Kind)
	if err != nil {
		return contractx.RouteDecision{}, err
	}
	if _, ok := r.enabled[kind]; !ok {
		return contractx.RouteDecision{}, fmt.Errorf("%w: responder %q is not enabled", contractx.ErrSchemaViolation, kind)
	}
	if decision.Confidence < 0 || decision.Confidence > 1 {
		return contractx.RouteDecision{}, fmt.Errorf("%w: confidence %.2f out of range", contractx.ErrSchemaViolation, decision.Confidence)
	}

	log.Info().
		Str("responder", decision.Kind).
		Float64("confidence", decision.Confidence).
		Str("rationale", decision.Rationale).
		Msg("routing decision")
	return decision, nil
}

func routeSchema(ids []string) contractx.ToolSchema {
	return contractx.ToolSchema{
		Name:        routeTool,
		Description: "Route the query to a specialized responder",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"responder": map[string]any{
					"type":        "string",
					"enum":        ids,
					"description": "The responder to route to",
				},
				"confidence": map[string]any{
					"type":        "number",
					"minimum":     0,
					"maximum":     1,
					"description": "Confidence in the routing decision",
				},
				"rationale": map[string]any{
					"type":        "string",
					"description": "Brief explanation for the routing choice",
				},
			},
			"required": []string{"responder", "confidence", "rationale"},
		},
	}
}
