package ai

import (
	"context"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const defaultAnthropicModel = "claude-3-5-sonnet-20241022"

const anthropicSystem = "Eres un asistente experto en bienes raíces que ayuda a las personas a encontrar la casa perfecta."

type anthropicBackend struct {
	client anthropic.Client
	model  string
}

func newAnthropic(cfg Config) *assistant {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.AnthropicAPIKey),
		option.WithMaxRetries(0),
	}
	if cfg.AnthropicBaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.AnthropicBaseURL))
	}
	model := cfg.AnthropicModel
	if model == "" {
		model = defaultAnthropicModel
	}

	return &assistant{
		name: ProviderAnthropic,
		backend: &anthropicBackend{
			client: anthropic.NewClient(opts...),
			model:  model,
		},
		persona: persona{
			describe:  params{system: anthropicSystem, temperature: 0.7, maxTokens: 1024},
			recommend: params{system: anthropicSystem, temperature: 0.7, maxTokens: 1024},
			chat:      params{system: assistantSystem, temperature: 0.7, maxTokens: 1024},
		},
	}
}

func (b *anthropicBackend) complete(ctx context.Context, c call) (string, error) {
	msg, err := b.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(b.model),
		MaxTokens:   int64(c.maxTokens),
		Temperature: anthropic.Float(c.temperature),
		System:      []anthropic.TextBlockParam{{Text: c.system}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(c.prompt)),
		},
	})
	if err != nil {
		return "", err
	}

	var out strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			out.WriteString(block.Text)
		}
	}
	return out.String(), nil
}
