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
	Port     int
	LogLevel string
	LogDir   string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	APIKey         string   // API key for HTTP authentication
	TrustedProxies []string // CIDRs allowed to set X-Forwarded-For

	DiscordToken string // bot token, used for mod-log channel sync

	GuildID           string
	ModCasesChannelID string
	ModmailChannelID  string
	ModChatChannelIDs []string // moderator-only channels
	CommandChannelIDs []string // bot-command channels, excluded from public counts

	StatbotBaseURL string
	StatbotAPIKey  string

	// AutoTierAdjust enables the opt-in weekly promotion/demotion policy.
	AutoTierAdjust bool
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:   getEnv(EnvLogLevel, "INFO"),
		LogDir:     getEnv(EnvLogDir, "logs"),
		DBUser:     getEnv(EnvDBUser, "postgres"),
		DBPassword: getEnv(EnvDBPassword, "postgres"),
		DBHost:     getEnv(EnvDBHost, "localhost"),
		DBPort:     getEnv(EnvDBPort, "5432"),
		DBName:     getEnv(EnvDBName, "stardustbot"),
		APIKey:         getEnv(EnvAPIKey, ""),
		TrustedProxies: getEnvList(EnvTrustedProxies),

		DiscordToken: getEnv(EnvDiscordToken, ""),

		GuildID:           getEnv(EnvGuildID, ""),
		ModCasesChannelID: getEnv(EnvModCasesChannelID, ""),
		ModmailChannelID:  getEnv(EnvModmailChannelID, ""),
		ModChatChannelIDs: getEnvList(EnvModChatChannelIDs),
		CommandChannelIDs: getEnvList(EnvCommandChannelIDs),

		StatbotBaseURL: getEnv(EnvStatbotBaseURL, DefaultStatbotBaseURL),
		StatbotAPIKey:  getEnv(EnvStatbotAPIKey, ""),

		AutoTierAdjust: getEnv(EnvAutoTierAdjust, "false") == "true",
	}

	portStr := getEnv(EnvPort, "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value: %w", EnvPort, err)
	}
	cfg.Port = port

	// Validate API key is set
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%s environment variable must be set for security", EnvAPIKey)
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvList splits a comma-separated environment variable, dropping empty
// entries.
func getEnvList(key string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
