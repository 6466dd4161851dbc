package ai

import (
	"CasaFacil/models"
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type traced struct {
	provider string
	next     Gateway
	tracer   trace.Tracer
}

// Traced records one span per gateway call on the global tracer provider.
func Traced(provider string, next Gateway) Gateway {
	return &traced{provider: provider, next: next, tracer: otel.Tracer("CasaFacil/ai")}
}

func (t *traced) start(ctx context.Context, op string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "ai."+op, trace.WithAttributes(attribute.String("ai.provider", t.provider)))
}

func end(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (t *traced) GenerateDescription(ctx context.Context, facts models.PropertyFacts) (string, error) {
	ctx, span := t.start(ctx, "GenerateDescription")
	text, err := t.next.GenerateDescription(ctx, facts)
	end(span, err)
	return text, err
}

func (t *traced) GetRecommendations(ctx context.Context, prefs models.UserPreferences, candidates []models.Property) (string, error) {
	ctx, span := t.start(ctx, "GetRecommendations")
	span.SetAttributes(attribute.Int("ai.candidates", len(candidates)))
	text, err := t.next.GetRecommendations(ctx, prefs, candidates)
	end(span, err)
	return text, err
}

func (t *traced) Chat(ctx context.Context, message, history string) (string, error) {
	ctx, span := t.start(ctx, "Chat")
	text, err := t.next.Chat(ctx, message, history)
	end(span, err)
	return text, err
}
