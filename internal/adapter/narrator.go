package adapter

import (
	"context"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rotisserie/eris"
)

// ClaudeNarrator implements Narrator on the Anthropic Messages API.
type ClaudeNarrator struct {
	client    sdk.Client
	model     string
	maxTokens int64
}

// NewClaudeNarrator builds a narrator using the given model.
func NewClaudeNarrator(apiKey, model string, maxTokens int64) *ClaudeNarrator {
	if maxTokens <= 0 {
		maxTokens = 4096
	}
	return &ClaudeNarrator{
		client:    sdk.NewClient(option.WithAPIKey(apiKey)),
		model:     model,
		maxTokens: maxTokens,
	}
}

// Generate submits the prompt and returns the concatenated text blocks of
// the response.
func (n *ClaudeNarrator) Generate(ctx context.Context, system, prompt string) (string, error) {
	params := sdk.MessageNewParams{
		Model:     sdk.Model(n.model),
		MaxTokens: n.maxTokens,
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(prompt)),
		},
	}
	if system != "" {
		params.System = []sdk.TextBlockParam{{Text: system}}
	}

	msg, err := n.client.Messages.New(ctx, params)
	if err != nil {
		return "", eris.Wrap(err, "narrator: create message")
	}

	var out strings.Builder
	for _, block := range msg.Content {
		if text := block.AsText(); text.Text != "" {
			out.WriteString(text.Text)
		}
	}
	if out.Len() == 0 {
		return "", eris.New("narrator: response carried no text content")
	}
	return out.String(), nil
}

var _ Narrator = (*ClaudeNarrator)(nil)
