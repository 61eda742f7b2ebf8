package config

import (
	"os"
	"strings"
)

// DefaultAccessWebhookURL is the n8n automation endpoint notified on every
// access request. Overridable via ACCESS_WEBHOOK_URL.
const DefaultAccessWebhookURL = "https://n8n-sp88.onrender.com/webhook/e61a9bba-b0cc-439a-a106-2cd278fb7867"

// DefaultPlaceholderImageURL is used for templates created from public
// submissions, which carry no image of their own.
const DefaultPlaceholderImageURL = "https://images.unsplash.com/photo-1557804506-669a67965ba0?q=80&w=1674&auto=format&fit=crop"

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Env        string // "development", "production", etc.
	ServerAddr string

	// Supabase project credentials. Both are required for the store to
	// work; their absence is reported at startup but is not fatal.
	SupabaseURL     string
	SupabaseAnonKey string

	// AdminEmails is the admin portal allow-list (comma-separated in the
	// ADMIN_EMAILS variable). Sessions for any other account are rejected.
	AdminEmails []string

	AccessWebhookURL    string
	PlaceholderImageURL string

	LogLevel string
}

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		Env:                 getEnv("ENV", "development"),
		ServerAddr:          getEnv("SERVER_ADDR", ":8080"),
		SupabaseURL:         getEnv("SUPABASE_URL", ""),
		SupabaseAnonKey:     getEnv("SUPABASE_ANON_KEY", ""),
		AdminEmails:         splitList(getEnv("ADMIN_EMAILS", "dev@automaticnation.com")),
		AccessWebhookURL:    getEnv("ACCESS_WEBHOOK_URL", DefaultAccessWebhookURL),
		PlaceholderImageURL: getEnv("PLACEHOLDER_IMAGE_URL", DefaultPlaceholderImageURL),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
	}
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
