package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("AUTH_LINE_JWT_SECRET", "secret")
	t.Setenv("PLATFORM_FEE_RATE", "")
	t.Setenv("API_ALLOWED_ORIGINS", "")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "listings", cfg.ListingCollection)
	assert.Equal(t, 0.30, cfg.PlatformFeeRate)
	assert.Equal(t, time.Minute, cfg.ListingCacheTTL)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	require.Len(t, cfg.JWTConfigs, 1)
	assert.Equal(t, "ugym-konect-auth", cfg.JWTConfigs[0].Issuer)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("AUTH_TWITTER_JWT_SECRET", "tw")
	t.Setenv("AUTH_TWITTER_JWT_ISSUER", "issuer-x")
	t.Setenv("PLATFORM_FEE_RATE", "0.25")
	t.Setenv("LISTING_CACHE_TTL", "30s")
	t.Setenv("RATE_LIMIT_BURST", "5")
	t.Setenv("API_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("MESSENGER_GATEWAY_URL", "http://gw:3000/")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, 0.25, cfg.PlatformFeeRate)
	assert.Equal(t, 30*time.Second, cfg.ListingCacheTTL)
	assert.Equal(t, 5, cfg.RateLimitBurst)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, "http://gw:3000", cfg.MessengerEndpoint)
	assert.Equal(t, "issuer-x", cfg.JWTConfigs[len(cfg.JWTConfigs)-1].Issuer)
}

func TestFromEnv_Errors(t *testing.T) {
	t.Run("missing jwt secrets", func(t *testing.T) {
		t.Setenv("AUTH_LINE_JWT_SECRET", "")
		t.Setenv("AUTH_TWITTER_JWT_SECRET", "")
		_, err := FromEnv()
		require.Error(t, err)
	})

	t.Run("fee rate out of range", func(t *testing.T) {
		t.Setenv("AUTH_LINE_JWT_SECRET", "secret")
		t.Setenv("PLATFORM_FEE_RATE", "1.5")
		_, err := FromEnv()
		require.Error(t, err)
	})

	t.Run("malformed rate limit", func(t *testing.T) {
		t.Setenv("AUTH_LINE_JWT_SECRET", "secret")
		t.Setenv("RATE_LIMIT_RPS", "fast")
		_, err := FromEnv()
		require.Error(t, err)
	})
}

func TestStoreFromEnv_NeedsNoSecrets(t *testing.T) {
	t.Setenv("AUTH_LINE_JWT_SECRET", "")
	t.Setenv("AUTH_TWITTER_JWT_SECRET", "")
	t.Setenv("MONGO_DB", "ugym-dev")
	t.Setenv("REDIS_URL", " redis://cache:6379/0 ")

	cfg := StoreFromEnv()
	assert.Equal(t, "ugym-dev", cfg.MongoDatabase)
	assert.Equal(t, "redis://cache:6379/0", cfg.RedisURL)
	assert.Equal(t, "listings", cfg.ListingCollection)
	assert.Empty(t, cfg.JWTConfigs)
}
