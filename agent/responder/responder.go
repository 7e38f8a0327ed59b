// Package responder implements the specialist reply protocol shared by the
// product-details, reviews, and orders responders: system prompt plus
// bounded history in, at most one tool execution, final text out.
package responder

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	contractx "github.com/al-jwarizmi/mongodb-agents/agent/contract"
	promptx "github.com/al-jwarizmi/mongodb-agents/agent/prompt"
	toolx "github.com/al-jwarizmi/mongodb-agents/agent/tool"
)

// Apology is the only failure surface a customer ever sees.
const Apology = "I apologize, but I encountered an error processing your request. Please try again."

// Config carries the per-responder generation settings.
type Config struct {
	Temperature   float64
	HistoryWindow int
}

// Responder owns one specialty's system prompt and operation table.
type Responder struct {
	kind        contractx.ResponderKind
	model       contractx.ChatModel
	table       toolx.Table
	system      string
	temperature float64
	window      int
}

// New builds a responder for the given kind, embedding the current catalog
// or review data into its system prompt. The store reads happen here, once
// per construction.
func New(ctx context.Context, kind contractx.ResponderKind, model contractx.ChatModel, store contractx.Store, cfg Config) (*Responder, error) {
	if model == nil {
		return nil, fmt.Errorf("%w: chat model is required", contractx.ErrValidation)
	}
	if store == nil {
		return nil, fmt.Errorf("%w: store is required", contractx.ErrValidation)
	}

	window := cfg.HistoryWindow
	if window <= 0 {
		window = 5
	}

	r := &Responder{
		kind:        kind,
		model:       model,
		temperature: cfg.Temperature,
		window:      window,
	}

	products, err := store.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	switch kind {
	case contractx.KindProductDetails:
		r.system = promptx.ProductDetails(products)
		r.table = toolx.ProductTools(store)
	case contractx.KindReviews:
		reviews, err := store.ListReviews(ctx)
		if err != nil {
			return nil, err
		}
		r.system = promptx.Reviews(products, reviews)
		r.table = toolx.ReviewTools(store)
	case contractx.KindOrders:
		r.system = promptx.Orders(products)
		r.table = toolx.OrderTools(store)
	default:
		return nil, fmt.Errorf("%w: unknown responder kind %q", contractx.ErrValidation, kind)
	}

	log.Info().Str("responder", string(kind)).Int("tools", len(r.table)).Msg("responder initialized")
	return r, nil
}

// Kind returns the responder's identity.
func (r *Responder) Kind() contractx.ResponderKind {
	return r.kind
}

// Respond produces the final natural-language reply for one user turn. At
// most one tool call is served; failures never propagate past this boundary,
// they become the apology string.
func (r *Responder) Respond(ctx context.Context, message string, history []contractx.Turn) string {
	messages := r.buildMessages(message, history)

	resp, err := r.model.Complete(ctx, contractx.CompletionRequest{
		Messages:    messages,
		Tools:       r.table.Schemas(),
		Temperature: r.temperature,
	})
	if err != nil {
		log.Error().Err(err).Str("responder", string(r.kind)).Msg("completion failed")
		return Apology
	}

	if resp.ToolCall == nil {
		return resp.Text
	}

	log.Debug().Str("responder", string(r.kind)).Str("tool", resp.ToolCall.Name).Msg("tool call requested")

	result, err := r.table.Dispatch(ctx, resp.ToolCall)
	if err != nil {
		// Unresolved products and orders go back to the model as a
		// structured payload so it can explain them gracefully.
		if contractx.NotFound(err) {
			result = map[string]any{"error": err.Error()}
		} else {
			log.Error().Err(err).Str("responder", string(r.kind)).Str("tool", resp.ToolCall.Name).Msg("tool execution failed")
			return Apology
		}
	}

	payload, err := json.Marshal(result)
	if err != nil {
		log.Error().Err(err).Str("tool", resp.ToolCall.Name).Msg("tool result not serializable")
		return Apology
	}

	messages = append(messages,
		contractx.Message{Role: "assistant", ToolCall: resp.ToolCall},
		contractx.Message{Role: "tool", Content: string(payload), ToolID: resp.ToolCall.ID},
	)

	// Follow-up call carries no tool schemas, so a second call cannot be
	// requested within the same turn.
	final, err := r.model.Complete(ctx, contractx.CompletionRequest{
		Messages:    messages,
		Temperature: r.temperature,
	})
	if err != nil {
		log.Error().Err(err).Str("responder", string(r.kind)).Msg("follow-up completion failed")
		return Apology
	}
	if final.Text == "" {
		log.Error().Str("responder", string(r.kind)).Msg("follow-up completion returned no text")
		return Apology
	}
	return final.Text
}

func (r *Responder) buildMessages(message string, history []contractx.Turn) []contractx.Message {
	if len(history) > r.window {
		history = history[len(history)-r.window:]
	}

	messages := make([]contractx.Message, 0, len(history)+2)
	messages = append(messages, contractx.Message{Role: "system", Content: r.system})
	for _, t := range history {
		messages = append(messages, contractx.Message{Role: string(t.Role), Content: t.Content})
	}
	return append(messages, contractx.Message{Role: "user", Content: message})
}
