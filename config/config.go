package config

import (
	"CasaFacil/ai"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type App struct {
	Port string `envconfig:"PORT" default:"8080"`
	Env  string `envconfig:"ENV" default:"dev"`

	// Mongo
	MongoURI             string `envconfig:"MONGODB_URI" required:"true"`
	MongoDatabase        string `envconfig:"MONGODB_DATABASE" default:"casafacil"`
	UsersCollection      string `envconfig:"MONGODB_COLLECTION_USERS" default:"users"`
	PropertiesCollection string `envconfig:"MONGODB_COLLECTION_PROPERTIES" default:"properties"`
	ImagesBucket         string `envconfig:"MONGODB_IMAGES_BUCKET" default:"images"`

	// Redis
	RedisAddr       string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword   string        `envconfig:"REDIS_PASSWORD"`
	ListingCacheTTL time.Duration `envconfig:"LISTING_CACHE_TTL" default:"5m"`

	// JWT
	JWTSecret      string `envconfig:"JWT_SECRET" required:"true"`
	JWTExpiryHours int    `envconfig:"JWT_EXPIRY_HOURS" default:"24"`

	// AI
	AIProvider        string `envconfig:"AI_PROVIDER" default:"anthropic"`
	AIPublishProvider string `envconfig:"AI_PUBLISH_PROVIDER" default:"groq"`
	AnthropicAPIKey   string `envconfig:"ANTHROPIC_API_KEY"`
	AnthropicModel    string `envconfig:"ANTHROPIC_MODEL" default:"claude-3-5-sonnet-20241022"`
	AnthropicBaseURL  string `envconfig:"ANTHROPIC_BASE_URL"`
	GroqAPIKey        string `envconfig:"GROQ_API_KEY"`
	GroqModel         string `envconfig:"GROQ_MODEL" default:"llama-3.3-70b-versatile"`
	GroqBaseURL       string `envconfig:"GROQ_BASE_URL" default:"https://api.groq.com/openai/v1"`

	// Optional collaborators; empty disables them.
	RabbitMQURL    string `envconfig:"RABBITMQ_URL"`
	EventsExchange string `envconfig:"EVENTS_EXCHANGE" default:"casafacil.properties"`
	OTLPEndpoint   string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// Load reads .env when present and then the process environment. Missing
// credentials fail here rather than on first use.
func Load() (App, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	var c App
	if err := envconfig.Process("", &c); err != nil {
		return c, err
	}
	return c, c.Validate()
}

func (c App) Validate() error {
	var errs []error
	if c.MongoURI == "" {
		errs = append(errs, errors.New("MONGODB_URI is required"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.JWTExpiryHours <= 0 {
		errs = append(errs, errors.New("JWT_EXPIRY_HOURS must be positive"))
	}
	for _, provider := range []string{c.AIProvider, c.AIPublishProvider} {
		switch strings.ToLower(strings.TrimSpace(provider)) {
		case ai.ProviderAnthropic:
			if c.AnthropicAPIKey == "" {
				errs = append(errs, fmt.Errorf("ANTHROPIC_API_KEY is required for provider %q", provider))
			}
		case ai.ProviderGroq:
			if c.GroqAPIKey == "" {
				errs = append(errs, fmt.Errorf("GROQ_API_KEY is required for provider %q", provider))
			}
		default:
			errs = append(errs, fmt.Errorf("unknown AI provider %q", provider))
		}
	}
	return errors.Join(errs...)
}

func (c App) TokenTTL() time.Duration {
	return time.Duration(c.JWTExpiryHours) * time.Hour
}

func (c App) AI() ai.Config {
	return ai.Config{
		AnthropicAPIKey:  c.AnthropicAPIKey,
		AnthropicModel:   c.AnthropicModel,
		AnthropicBaseURL: c.AnthropicBaseURL,
		GroqAPIKey:       c.GroqAPIKey,
		GroqModel:        c.GroqModel,
		GroqBaseURL:      c.GroqBaseURL,
	}
}
