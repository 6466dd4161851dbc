package ai

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
)

const (
	defaultGroqModel   = "llama-3.3-70b-versatile"
	defaultGroqBaseURL = "https://api.groq.com/openai/v1"
)

type groqBackend struct {
	client *openai.Client
	model  string
}

// Groq serves an OpenAI-compatible chat completions API.
func newGroq(cfg Config) *assistant {
	oc := openai.DefaultConfig(cfg.GroqAPIKey)
	oc.BaseURL = defaultGroqBaseURL
	if cfg.GroqBaseURL != "" {
		oc.BaseURL = cfg.GroqBaseURL
	}
	model := cfg.GroqModel
	if model == "" {
		model = defaultGroqModel
	}

	return &assistant{
		name: ProviderGroq,
		backend: &groqBackend{
			client: openai.NewClientWithConfig(oc),
			model:  model,
		},
		persona: persona{
			describe: params{
				system:      "Eres un experto en bienes raíces que genera descripciones atractivas de propiedades. Escribe en español de forma profesional y persuasiva.",
				temperature: 0.8,
				maxTokens:   500,
			},
			recommend: params{
				system:      "Eres un asistente de bienes raíces que ayuda a encontrar la propiedad perfecta. Proporciona recomendaciones personalizadas y útiles en español.",
				temperature: 0.7,
				maxTokens:   800,
			},
			chat: params{system: assistantSystem, temperature: 0.7, maxTokens: 1024},
		},
	}
}

func (b *groqBackend) complete(ctx context.Context, c call) (string, error) {
	resp, err := b.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       b.model,
		Temperature: float32(c.temperature),
		MaxTokens:   c.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: c.system},
			{Role: openai.ChatMessageRoleUser, Content: c.prompt},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
