// Package agent wraps the Anthropic API for prompt refinement: the current
// editor buffer is sent off and the model's reworked version comes back.
package agent

import (
	"context"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"

	"promptpad/internal/logger"
)

const refineSystemPrompt = `You improve prompts. The user sends a draft prompt; respond with a clearer, more specific rewrite of it and nothing else. Preserve the user's intent and language. Do not answer the prompt itself.`

// Agent talks to the Anthropic API.
type Agent struct {
	client *anthropic.Client
	model  anthropic.Model
}

// New creates an agent using the given model name.
func New(client *anthropic.Client, model string) *Agent {
	return &Agent{
		client: client,
		model:  anthropic.Model(model),
	}
}

// Refine sends the draft prompt for rewriting and returns the result.
func (a *Agent) Refine(ctx context.Context, draft string) (string, error) {
	conversation := []anthropic.MessageParam{
		anthropic.NewUserMessage(anthropic.NewTextBlock(draft)),
	}

	response, err := a.runInference(ctx, conversation)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	for _, content := range response.Content {
		if content.Type == "text" {
			out.WriteString(content.Text)
		}
	}
	return strings.TrimSpace(out.String()), nil
}

func (a *Agent) runInference(ctx context.Context, conversation []anthropic.MessageParam) (*anthropic.Message, error) {
	logger.Debug("agent: inference request (model %s, %d messages)", a.model, len(conversation))

	message, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     a.model,
		MaxTokens: int64(1024),
		Messages:  conversation,
		System:    []anthropic.TextBlockParam{{Type: "text", Text: refineSystemPrompt}},
	})
	if err != nil {
		logger.Error("agent: inference failed: %v", err)
		return nil, err
	}
	return message, nil
}
