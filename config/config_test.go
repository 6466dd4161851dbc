package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("ANTHROPIC_API_KEY", "a-key")
	t.Setenv("GROQ_API_KEY", "g-key")
}

func TestLoadDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "casafacil", cfg.MongoDatabase)
	assert.Equal(t, "properties", cfg.PropertiesCollection)
	assert.Equal(t, "anthropic", cfg.AIProvider)
	assert.Equal(t, "groq", cfg.AIPublishProvider)
	assert.Equal(t, 5*time.Minute, cfg.ListingCacheTTL)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL())
	assert.Equal(t, "g-key", cfg.AI().GroqAPIKey)
}

func TestLoadFailsWithoutMongoURI(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("MONGODB_URI", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadFailsWithoutSelectedProviderKey(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("GROQ_API_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GROQ_API_KEY")
}

func TestLoadSkipsKeyOfUnusedProvider(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("GROQ_API_KEY", "")
	t.Setenv("AI_PUBLISH_PROVIDER", "anthropic")

	_, err := Load()
	assert.NoError(t, err)
}

func TestValidateRejectsUnknownProvider(t *testing.T) {
	cfg := App{MongoURI: "mongodb://x", JWTSecret: "s", JWTExpiryHours: 1, AIProvider: "openai", AIPublishProvider: "groq", GroqAPIKey: "g"}
	assert.Error(t, cfg.Validate())
}
