// Package config builds runtime configuration from the environment so main
// stays lean. Every knob has a development default; production overrides via
// environment variables.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures process-level configuration.
type Config struct {
	Addr        string
	DatabaseURL string
	Redis       RedisConfig

	JWTSigningKey  string
	AccessTokenTTL time.Duration

	// BootstrapAdmin is seeded into the user store on startup so a fresh
	// deployment has a working login.
	BootstrapAdmin AdminConfig

	// StrictValidation switches badge validation to the policy that also
	// requires the company match.
	StrictValidation bool

	Notify NotifyConfig

	// ScanSessionTTL bounds how long a validated scan may wait for check-in
	// confirmation before the session expires.
	ScanSessionTTL time.Duration
}

// AdminConfig is the seeded employee account.
type AdminConfig struct {
	Email    string
	Name     string
	Password string
}

// RedisConfig controls the optional Redis-backed scan session store.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// NotifyConfig holds outbound notification channel settings.
type NotifyConfig struct {
	ResendAPIKey  string
	FromEmail     string
	SecurityEmail string

	WhatsAppToken         string
	WhatsAppPhoneNumberID string
	// PartnerRecipients maps a supplier name to its WhatsApp recipient.
	// Format: "Supplier A=+212600000001,Canon=+212600000002".
	PartnerRecipients map[string]string
	DefaultRecipient  string

	// DispatchTimeout bounds one fan-out across all channels. A hung channel
	// adapter must not stall the join indefinitely.
	DispatchTimeout time.Duration
}

// FromEnv builds a Config from environment variables.
func FromEnv() Config {
	return Config{
		Addr:           envOr("GATEPASS_ADDR", ":8080"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		JWTSigningKey:  envOr("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		AccessTokenTTL: envDurationOr("ACCESS_TOKEN_TTL", time.Hour),
		BootstrapAdmin: AdminConfig{
			Email:    envOr("ADMIN_EMAIL", "admin@gatepass.local"),
			Name:     envOr("ADMIN_NAME", "Administrator"),
			Password: envOr("ADMIN_PASSWORD", "admin-dev-password"),
		},
		StrictValidation: os.Getenv("STRICT_VALIDATION") == "true",
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envIntOr("REDIS_POOL_SIZE", 10),
			MinIdleConns: envIntOr("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDurationOr("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDurationOr("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDurationOr("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Notify: NotifyConfig{
			ResendAPIKey:          os.Getenv("RESEND_API_KEY"),
			FromEmail:             envOr("FROM_EMAIL", "notifications@gatepass.local"),
			SecurityEmail:         envOr("SECURITY_EMAIL", "security@gatepass.local"),
			WhatsAppToken:         os.Getenv("META_WHATSAPP_TOKEN"),
			WhatsAppPhoneNumberID: os.Getenv("META_WHATSAPP_PHONE_NUMBER_ID"),
			PartnerRecipients:     parseRecipients(os.Getenv("PARTNER_WHATSAPP_RECIPIENTS")),
			DefaultRecipient:      envOr("DEFAULT_WHATSAPP_RECIPIENT", "+212638910098"),
			DispatchTimeout:       envDurationOr("NOTIFY_DISPATCH_TIMEOUT", 10*time.Second),
		},
		ScanSessionTTL: envDurationOr("SCAN_SESSION_TTL", 5*time.Minute),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func parseRecipients(raw string) map[string]string {
	out := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		name, number, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		number = strings.TrimSpace(number)
		if name != "" && number != "" {
			out[name] = number
		}
	}
	return out
}
