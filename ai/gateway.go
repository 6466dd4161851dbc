// Package ai talks to the hosted language models behind the listing
// assistant. Every provider is exposed through the same Gateway so callers
// never see provider-specific request or response shapes.
package ai

import (
	"CasaFacil/models"
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrCommunication is returned for every provider failure, including a reply
// with no usable text. Auth, quota and network failures are not told apart.
var ErrCommunication = errors.New("AI communication failed")

var (
	ErrMissingFacts = errors.New("property type and location are required")
	ErrEmptyMessage = errors.New("message is required")
)

const (
	ProviderAnthropic = "anthropic"
	ProviderGroq      = "groq"
)

type Gateway interface {
	GenerateDescription(ctx context.Context, facts models.PropertyFacts) (string, error)
	GetRecommendations(ctx context.Context, prefs models.UserPreferences, candidates []models.Property) (string, error)
	Chat(ctx context.Context, message, history string) (string, error)
}

type Config struct {
	AnthropicAPIKey  string
	AnthropicModel   string
	AnthropicBaseURL string
	GroqAPIKey       string
	GroqModel        string
	GroqBaseURL      string
}

// New builds the gateway for the named provider.
func New(provider string, cfg Config) (Gateway, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case ProviderAnthropic:
		if cfg.AnthropicAPIKey == "" {
			return nil, errors.New("ai: ANTHROPIC_API_KEY not set")
		}
		return newAnthropic(cfg), nil
	case ProviderGroq:
		if cfg.GroqAPIKey == "" {
			return nil, errors.New("ai: GROQ_API_KEY not set")
		}
		return newGroq(cfg), nil
	}
	return nil, fmt.Errorf("ai: unknown provider %q", provider)
}

type call struct {
	op          string
	system      string
	prompt      string
	temperature float64
	maxTokens   int
}

type backend interface {
	complete(ctx context.Context, c call) (string, error)
}

type params struct {
	system      string
	temperature float64
	maxTokens   int
}

// persona holds what a provider variant sends besides the prompt itself.
type persona struct {
	describe  params
	recommend params
	chat      params
}

type assistant struct {
	name    string
	backend backend
	persona persona
}

func (a *assistant) GenerateDescription(ctx context.Context, facts models.PropertyFacts) (string, error) {
	if strings.TrimSpace(facts.Type) == "" || strings.TrimSpace(facts.Location) == "" {
		return "", ErrMissingFacts
	}
	return a.run(ctx, "generate_description", a.persona.describe, DescriptionPrompt(facts))
}

func (a *assistant) GetRecommendations(ctx context.Context, prefs models.UserPreferences, candidates []models.Property) (string, error) {
	return a.run(ctx, "recommendations", a.persona.recommend, RecommendationPrompt(prefs, candidates))
}

func (a *assistant) Chat(ctx context.Context, message, history string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", ErrEmptyMessage
	}
	return a.run(ctx, "chat", a.persona.chat, ChatPrompt(message, history))
}

func (a *assistant) run(ctx context.Context, op string, p params, prompt string) (string, error) {
	text, err := a.backend.complete(ctx, call{
		op:          op,
		system:      p.system,
		prompt:      prompt,
		temperature: p.temperature,
		maxTokens:   p.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %s %s: %v", ErrCommunication, a.name, op, err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: %s %s: empty response", ErrCommunication, a.name, op)
	}
	return text, nil
}
