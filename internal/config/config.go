package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sngm3741/ugym-konect/api/internal/public/domain"
)

// JWTConfig defines issuer/secret pair for auth verification.
type JWTConfig struct {
	Issuer string
	Secret []byte
}

// Config holds runtime configuration shared across the application.
type Config struct {
	Addr                         string
	MongoURI                     string
	MongoDatabase                string
	ListingCollection            string
	CartCollection               string
	InquiryCollection            string
	FailedNotificationCollection string
	Timeout                      time.Duration
	ServerLog                    *log.Logger
	JWTConfigs                   []JWTConfig
	JWTAudience                  string
	RedisURL                     string
	ListingCacheTTL              time.Duration
	RabbitMQURL                  string
	CheckoutExchange             string
	PlatformFeeRate              float64
	RateLimitRPS                 float64
	RateLimitBurst               int
	MessengerEndpoint            string
	MessengerDestination         string
	DiscordDestination           string
	SlackDestination             string
	MessengerTimeout             time.Duration
	AdminBaseURL                 string
	AllowedOrigins               []string
}

// Load reads environment variables (after an optional .env file) and returns a fully populated Config.
// Missing JWT secrets are fatal.
func Load() Config {
	cfg, err := FromEnv()
	if err != nil {
		log.Fatal(err)
	}
	cfg.ServerLog.Printf("loaded config: mongoDB=%q redis=%t rabbitmq=%t feeRate=%.2f messengerEndpoint=%q",
		cfg.MongoDatabase, cfg.RedisURL != "", cfg.RabbitMQURL != "", cfg.PlatformFeeRate, cfg.MessengerEndpoint)
	return cfg
}

// FromEnv is Load without the process exit, so callers can decide what a bad environment means.
func FromEnv() (Config, error) {
	// .env はローカル開発用。存在しなくてもよい。
	_ = godotenv.Load()

	var jwtConfigs []JWTConfig
	if secret := strings.TrimSpace(os.Getenv("AUTH_LINE_JWT_SECRET")); secret != "" {
		jwtConfigs = append(jwtConfigs, JWTConfig{
			Issuer: envOrDefault("AUTH_LINE_JWT_ISSUER", "ugym-konect-auth"),
			Secret: []byte(secret),
		})
	}
	if secret := strings.TrimSpace(os.Getenv("AUTH_TWITTER_JWT_SECRET")); secret != "" {
		jwtConfigs = append(jwtConfigs, JWTConfig{
			Issuer: envOrDefault("AUTH_TWITTER_JWT_ISSUER", "auth-twitter"),
			Secret: []byte(secret),
		})
	}
	if len(jwtConfigs) == 0 {
		return Config{}, fmt.Errorf("JWT secrets not configured. Set AUTH_TWITTER_JWT_SECRET or AUTH_LINE_JWT_SECRET")
	}

	jwtAudience := strings.TrimSpace(os.Getenv("AUTH_JWT_AUDIENCE"))
	if jwtAudience == "" {
		jwtAudience = strings.TrimSpace(os.Getenv("AUTH_LINE_JWT_AUDIENCE"))
	}

	feeRate, err := parseFloat("PLATFORM_FEE_RATE", domain.DefaultPlatformFeeRate)
	if err != nil {
		return Config{}, err
	}
	if feeRate < 0 || feeRate > 1 {
		return Config{}, fmt.Errorf("PLATFORM_FEE_RATE must be between 0 and 1, got %v", feeRate)
	}

	rps, err := parseFloat("RATE_LIMIT_RPS", 10)
	if err != nil {
		return Config{}, err
	}
	burst, err := parseInt("RATE_LIMIT_BURST", 20)
	if err != nil {
		return Config{}, err
	}

	cfg := StoreFromEnv()
	cfg.Addr = envOrDefault("HTTP_ADDR", ":8080")
	cfg.JWTConfigs = jwtConfigs
	cfg.JWTAudience = jwtAudience
	cfg.RabbitMQURL = strings.TrimSpace(os.Getenv("RABBITMQ_URL"))
	cfg.CheckoutExchange = strings.TrimSpace(os.Getenv("CHECKOUT_EXCHANGE"))
	cfg.PlatformFeeRate = feeRate
	cfg.RateLimitRPS = rps
	cfg.RateLimitBurst = burst
	cfg.MessengerEndpoint = strings.TrimRight(envOrDefault("MESSENGER_GATEWAY_URL", "http://messenger-gateway:3000"), "/")
	cfg.MessengerDestination = envOrDefault("MESSENGER_GATEWAY_DESTINATION", "line")
	cfg.DiscordDestination = strings.TrimSpace(os.Getenv("MESSENGER_DISCORD_INCOMING_DESTINATION"))
	cfg.SlackDestination = strings.TrimSpace(os.Getenv("MESSENGER_SLACK_DESTINATION"))
	cfg.MessengerTimeout = parseDuration("MESSENGER_GATEWAY_TIMEOUT", 3*time.Second)
	cfg.AdminBaseURL = strings.TrimSpace(os.Getenv("ADMIN_BASE_URL"))
	cfg.AllowedOrigins = parseList("API_ALLOWED_ORIGINS", []string{"*"})
	return cfg, nil
}

// StoreFromEnv は MongoDB / Redis まわりだけを読む。認証設定を持たない CLI から使う。
func StoreFromEnv() Config {
	_ = godotenv.Load()
	return Config{
		PlatformFeeRate:              domain.DefaultPlatformFeeRate,
		MongoURI:                     envOrDefault("MONGO_URI", "mongodb://mongo:27017"),
		MongoDatabase:                envOrDefault("MONGO_DB", "ugym-konect"),
		ListingCollection:            envOrDefault("LISTING_COLLECTION", "listings"),
		CartCollection:               envOrDefault("CART_COLLECTION", "carts"),
		InquiryCollection:            envOrDefault("INQUIRY_COLLECTION", "inquiries"),
		FailedNotificationCollection: envOrDefault("FAILED_NOTIFICATION_COLLECTION", "failed_notifications"),
		Timeout:                      parseDuration("MONGO_CONNECT_TIMEOUT", 10*time.Second),
		ServerLog:                    log.New(os.Stdout, "[ugym-konect-api] ", log.LstdFlags|log.Lshortfile),
		RedisURL:                     strings.TrimSpace(os.Getenv("REDIS_URL")),
		ListingCacheTTL:              parseDuration("LISTING_CACHE_TTL", time.Minute),
	}
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// parseDuration は不正値を黙って既定値に倒す。
func parseDuration(key string, fallback time.Duration) time.Duration {
	if raw := strings.TrimSpace(os.Getenv(key)); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			return parsed
		}
	}
	return fallback
}

func parseFloat(key string, fallback float64) (float64, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func parseInt(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func parseList(key string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}

	if len(values) == 0 {
		return fallback
	}
	return values
}
