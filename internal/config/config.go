package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	Environment string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	// APIKey guards the HTTP API when set; empty disables auth
	// (local development only).
	APIKey string

	// TrustedProxies lists proxy IPs whose X-Forwarded-For is honored.
	TrustedProxies []string

	// AllowedOrigins configures CORS for browser-based dashboards.
	AllowedOrigins []string

	// Discord bot settings.
	DiscordToken      string
	DiscordAppID      string
	AdminUserIDs      []string
	AdminRoleIDs      []string
	AdminLogChannelID string
}

// Load loads the configuration from environment variables.
// A .env file is honored when present but not required.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		Environment: getEnv("ENVIRONMENT", "dev"),

		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBName:     getEnv("DB_NAME", "starstream"),

		APIKey:         getEnv("API_KEY", ""),
		TrustedProxies: splitIDs(getEnv("TRUSTED_PROXIES", "")),
		AllowedOrigins: splitIDs(getEnv("CORS_ALLOWED_ORIGINS", "*")),

		DiscordToken:      getEnv("DISCORD_TOKEN", ""),
		DiscordAppID:      getEnv("DISCORD_APP_ID", ""),
		AdminUserIDs:      splitIDs(getEnv("ADMIN_USER_IDS", "")),
		AdminRoleIDs:      splitIDs(getEnv("ADMIN_ROLE_IDS", "")),
		AdminLogChannelID: getEnv("ADMIN_LOG_CHANNEL_ID", ""),
	}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	return cfg, nil
}

// RequireDiscord validates the settings the bot binary cannot run without.
func (c *Config) RequireDiscord() error {
	if c.DiscordToken == "" {
		return fmt.Errorf("DISCORD_TOKEN must be set")
	}
	if c.DiscordAppID == "" {
		return fmt.Errorf("DISCORD_APP_ID must be set")
	}
	return nil
}

// GetDBConnString returns the PostgreSQL connection string.
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// splitIDs parses a comma-separated ID list, dropping empty entries.
func splitIDs(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			ids = append(ids, p)
		}
	}
	return ids
}
