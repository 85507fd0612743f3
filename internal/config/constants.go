package config

// ============================================================================
// Environment Variable Names
// ============================================================================

const (
	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"
	EnvLogDir   = "LOG_DIR"

	EnvDBUser     = "DB_USER"
	EnvDBPassword = "DB_PASSWORD"
	EnvDBHost     = "DB_HOST"
	EnvDBPort     = "DB_PORT"
	EnvDBName     = "DB_NAME"

	EnvAPIKey         = "API_KEY"
	EnvTrustedProxies = "TRUSTED_PROXIES"

	EnvDiscordToken = "DISCORD_TOKEN"

	EnvGuildID           = "GUILD_ID"
	EnvModCasesChannelID = "MOD_CASES_CHANNEL_ID"
	EnvModmailChannelID  = "MODMAIL_CHANNEL_ID"
	EnvModChatChannelIDs = "MOD_CHAT_CHANNEL_IDS"
	EnvCommandChannelIDs = "COMMAND_CHANNEL_IDS"

	EnvStatbotBaseURL = "STATBOT_BASE_URL"
	EnvStatbotAPIKey  = "STATBOT_API_KEY"

	EnvAutoTierAdjust = "STARDUST_AUTO_TIER"
)

// DefaultStatbotBaseURL is the public StatBot API root
const DefaultStatbotBaseURL = "https://api.statbot.net/v1"
