// Package tool holds the specialists' operation tables: per-responder
// static mappings of tool name to parameter schema and handler.
package tool

import (
	"context"
	"encoding/json"
	"fmt"

	contractx "github.com/al-jwarizmi/mongodb-agents/agent/contract"
)

// Handler executes one operation against the store. Arguments arrive as the
// raw JSON blob emitted by the model.
type Handler func(ctx context.Context, args json.RawMessage) (any, error)

// Spec binds a declared tool schema to its handler.
type Spec struct {
	Schema contractx.ToolSchema
	Run    Handler
}

// Table is one specialist's full operation set, constructed once per
// responder.
type Table []Spec

// Schemas returns the declarations handed to the model.
func (t Table) Schemas() []contractx.ToolSchema {
	out := make([]contractx.ToolSchema, 0, len(t))
	for _, s := range t {
		out = append(out, s.Schema)
	}
	return out
}

// Dispatch executes the named call. An unknown tool or undecodable argument
// blob is a schema violation.
func (t Table) Dispatch(ctx context.Context, call *contractx.ToolCall) (any, error) {
	if call == nil {
		return nil, fmt.Errorf("%w: nil tool call", contractx.ErrSchemaViolation)
	}
	for _, s := range t {
		if s.Schema.Name == call.Name {
			return s.Run(ctx, json.RawMessage(call.Arguments))
		}
	}
	return nil, fmt.Errorf("%w: unknown tool %q", contractx.ErrSchemaViolation, call.Name)
}

func decodeArgs(raw json.RawMessage, into any) error {
	if len(raw) == 0 {
		return fmt.Errorf("%w: empty tool arguments", contractx.ErrSchemaViolation)
	}
	if err := json.Unmarshal(raw, into); err != nil {
		return fmt.Errorf("%w: malformed tool arguments: %v", contractx.ErrSchemaViolation, err)
	}
	return nil
}
