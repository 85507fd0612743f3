package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"

	"github.com/osse101/StardustBot_Go/internal/discord"
)

// Default values for optional configuration
const (
	DefaultWebhookPort = "8082"
	DefaultAPIURL      = "http://localhost:8080"
)

// CommandFactory creates a Discord command and its handler.
// Used to register all available commands in one place.
type CommandFactory func() (*discordgo.ApplicationCommand, discord.CommandHandler)

func main() {
	// Load .env file
	_ = godotenv.Load()

	// Setup logging
	setupLogger()

	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	// Create bot
	bot, err := discord.New(cfg)
	if err != nil {
		slog.Error("Failed to create bot", "error", err)
		os.Exit(1)
	}

	// Start internal HTTP server (health + announcements)
	webhookPort := os.Getenv("DISCORD_WEBHOOK_PORT")
	if webhookPort == "" {
		webhookPort = DefaultWebhookPort
	}
	announceChannelID := os.Getenv("DISCORD_ANNOUNCE_CHANNEL_ID")

	httpServer := discord.NewHTTPServer(webhookPort, bot, announceChannelID)
	httpServer.Start()
	defer httpServer.Stop()

	// Register all commands
	registerCommands(bot, getCommandFactories())

	// Register with Discord API
	forceUpdate := os.Getenv("DISCORD_FORCE_COMMAND_UPDATE") == "true"
	if forceUpdate {
		slog.Info("Force command update enabled via environment variable")
	}

	if err := bot.RegisterCommands(bot.Registry, forceUpdate); err != nil {
		slog.Error("Failed to register commands", "error", err)
		// Don't exit - bot can still run if commands are already registered
	}

	// Run bot
	if err := bot.Run(); err != nil {
		slog.Error("Bot failed", "error", err)
		os.Exit(1)
	}
}

// setupLogger configures structured logging to stdout.
func setupLogger() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)
}

// loadConfig loads and validates Discord bot configuration from environment variables.
// Returns error if required variables are missing.
func loadConfig() (discord.Config, error) {
	token := os.Getenv("DISCORD_TOKEN")
	if token == "" {
		return discord.Config{}, errors.New("DISCORD_TOKEN is required")
	}

	appID := os.Getenv("DISCORD_APP_ID")
	if appID == "" {
		return discord.Config{}, errors.New("DISCORD_APP_ID is required")
	}

	guildID := os.Getenv("GUILD_ID")
	if guildID == "" {
		return discord.Config{}, errors.New("GUILD_ID is required")
	}

	apiURL := os.Getenv("API_URL")
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	slog.Info("Configured API URL", "url", apiURL)

	apiKey := os.Getenv("API_KEY")
	if apiKey == "" {
		slog.Warn("API_KEY not set, discord bot requests may fail")
	}

	return discord.Config{
		Token:   token,
		AppID:   appID,
		GuildID: guildID,
		APIURL:  apiURL,
		APIKey:  apiKey,
	}, nil
}

// getCommandFactories returns a list of all available Discord command factories.
// This provides a single place to see and manage all registered commands.
func getCommandFactories() []CommandFactory {
	return []CommandFactory{
		discord.PingCommand,
		discord.StardustCommand,
		discord.ProfileCommand,
		discord.TierCommand,
		discord.ModeratorsCommand,
		discord.ReportCommand,
		discord.AdminCommand,
	}
}

// registerCommands adds every factory's command to the bot's registry.
func registerCommands(bot *discord.Bot, factories []CommandFactory) {
	for _, factory := range factories {
		bot.Registry.Register(factory())
	}
	slog.Info("Commands registered", "count", len(factories))
}
