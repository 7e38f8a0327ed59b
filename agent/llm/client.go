package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	contractx "github.com/al-jwarizmi/mongodb-agents/agent/contract"
)

var _ contractx.ChatModel = (*Client)(nil)

// Client implements contract.ChatModel over the OpenAI chat-completions API.
type Client struct {
	api       openai.Client
	model     openai.ChatModel
	maxTokens int
}

func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := []option.RequestOption{
		option.WithAPIKey(strings.TrimSpace(cfg.APIKey)),
	}
	if trimmed := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"); trimmed != "" {
		opts = append(opts, option.WithBaseURL(trimmed))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}

	return &Client{
		api:       openai.NewClient(opts...),
		model:     openai.ChatModel(strings.TrimSpace(cfg.Model)),
		maxTokens: cfg.MaxCompletionToken,
	}, nil
}

func MustNew(cfg Config) *Client {
	client, err := NewClient(cfg)
	if err != nil {
		panic(err)
	}
	return client
}

// Complete issues one chat completion. When the model elects a tool, only
// the first call is surfaced; the dispatch protocol serves one tool per turn.
func (c *Client) Complete(ctx context.Context, req contractx.CompletionRequest) (contractx.CompletionResponse, error) {
	resp, err := c.api.Chat.Completions.New(ctx, buildParams(c.model, c.maxTokens, req))
	if err != nil {
		return contractx.CompletionResponse{}, fmt.Errorf("%w: chat completion: %v", contractx.ErrModelInvoke, err)
	}
	if len(resp.Choices) == 0 {
		return contractx.CompletionResponse{}, fmt.Errorf("%w: completion returned no choices", contractx.ErrModelInvoke)
	}

	msg := resp.Choices[0].Message
	if len(msg.ToolCalls) > 0 {
		call := msg.ToolCalls[0]
		return contractx.CompletionResponse{
			ToolCall: &contractx.ToolCall{
				ID:        call.ID,
				Name:      call.Function.Name,
				Arguments: call.Function.Arguments,
			},
		}, nil
	}

	return contractx.CompletionResponse{Text: msg.Content}, nil
}

func buildParams(model openai.ChatModel, maxTokens int, req contractx.CompletionRequest) openai.ChatCompletionNewParams {
	params := openai.ChatCompletionNewParams{
		Model:       model,
		Messages:    toMessageParams(req.Messages),
		Temperature: openai.Float(req.Temperature),
	}
	if maxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(maxTokens))
	}
	if len(req.Tools) > 0 {
		params.Tools = toToolParams(req.Tools)
		if req.ForceTool != "" {
			// Named tool choice: the model must invoke exactly this tool,
			// not merely some tool.
			params.ToolChoice = openai.ChatCompletionToolChoiceOptionUnionParam{
				OfChatCompletionNamedToolChoice: &openai.ChatCompletionNamedToolChoiceParam{
					Function: openai.ChatCompletionNamedToolChoiceFunctionParam{
						Name: req.ForceTool,
					},
				},
			}
		}
	}
	return params
}

func toMessageParams(messages []contractx.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case "system":
			out = append(out, openai.SystemMessage(m.Content))
		case "user":
			out = append(out, openai.UserMessage(m.Content))
		case "assistant":
			if m.ToolCall != nil {
				out = append(out, openai.ChatCompletionMessageParamUnion{
					OfAssistant: &openai.ChatCompletionAssistantMessageParam{
						ToolCalls: []openai.ChatCompletionMessageToolCallParam{{
							ID: m.ToolCall.ID,
							Function: openai.ChatCompletionMessageToolCallFunctionParam{
								Name:      m.ToolCall.Name,
								Arguments: m.ToolCall.Arguments,
							},
						}},
					},
				})
				continue
			}
			out = append(out, openai.AssistantMessage(m.Content))
		case "tool":
			out = append(out, openai.ToolMessage(m.Content, m.ToolID))
		}
	}
	return out
}

func toToolParams(tools []contractx.ToolSchema) []openai.ChatCompletionToolParam {
	out := make([]openai.ChatCompletionToolParam, 0, len(tools))
	for _, t := range tools {
		out = append(out, openai.ChatCompletionToolParam{
			Function: openai.FunctionDefinitionParam{
				Name:        t.Name,
				Description: openai.String(t.Description),
				Parameters:  openai.FunctionParameters(t.Parameters),
			},
		})
	}
	return out
}
