package discord

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/StardustBot_Go/internal/domain"
	"github.com/osse101/StardustBot_Go/internal/week"
)

// StardustCommand returns the stardust command definition and handler.
// Subcommands: points (view a week's record), calculator (what-if preview).
func StardustCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "stardust",
		Description: "Moderator stardust points",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "points",
				Description: "View a moderator's weekly points",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionUser,
						Name:        "moderator",
						Description: "Moderator to look up (default: you)",
						Required:    false,
					},
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "week",
						Description: "ISO week number (default: current week)",
						Required:    false,
					},
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "year",
						Description: "Year (default: current year)",
						Required:    false,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "calculator",
				Description: "Preview points for hypothetical activity",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "mod_chat",
						Description: "Mod chat messages",
						Required:    false,
					},
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "public_chat",
						Description: "Public chat messages",
						Required:    false,
					},
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "voice_minutes",
						Description: "Voice chat minutes",
						Required:    false,
					},
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "mod_actions",
						Description: "Mod actions taken",
						Required:    false,
					},
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "cases",
						Description: "Cases handled",
						Required:    false,
					},
				},
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		options := getOptions(i)
		if len(options) == 0 {
			return
		}

		switch options[0].Name {
		case "points":
			handlePointsView(s, i, client, options[0].Options)
		case "calculator":
			handleCalculator(s, i, client, options[0].Options)
		}
	}

	return cmd, handler
}

func handlePointsView(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient, opts []*discordgo.ApplicationCommandInteractionDataOption) {
	if !deferResponse(s, i) {
		return
	}

	target := getInteractionUser(i)
	weekNum, year := week.Current(time.Now())

	for _, opt := range opts {
		switch opt.Name {
		case "moderator":
			target = opt.UserValue(s)
		case "week":
			weekNum = int(opt.IntValue())
		case "year":
			year = int(opt.IntValue())
		}
	}

	record, err := client.GetWeeklyPoints(target.ID, weekNum, year)
	if err != nil {
		slog.Error("Failed to get weekly points", "error", err, "user_id", target.ID)
		respondFriendlyError(s, i, err.Error())
		return
	}

	sendEmbed(s, i, weeklyRecordEmbed(target.Username, record))
}

func handleCalculator(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient, opts []*discordgo.ApplicationCommandInteractionDataOption) {
	if !deferResponse(s, i) {
		return
	}

	var metrics domain.RawMetrics
	for _, opt := range opts {
		switch opt.Name {
		case "mod_chat":
			metrics.ModChatMessages = int(opt.IntValue())
		case "public_chat":
			metrics.PublicChatMessages = int(opt.IntValue())
		case "voice_minutes":
			metrics.VoiceChatMinutes = int(opt.IntValue())
		case "mod_actions":
			metrics.ModActionsTaken = int(opt.IntValue())
		case "cases":
			metrics.CasesHandled = int(opt.IntValue())
		}
	}

	computation, err := client.Preview(metrics)
	if err != nil {
		slog.Error("Failed to preview points", "error", err)
		respondFriendlyError(s, i, err.Error())
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Stardust Calculator",
		Description: formatDetails(computation.Details),
		Color:       0x9B59B6,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Raw", Value: fmt.Sprintf("%.1f", computation.TotalRawPoints), Inline: true},
			{Name: "Finalized", Value: fmt.Sprintf("%.1f", computation.TotalFinalizedPoints), Inline: true},
			{Name: "Wasted", Value: fmt.Sprintf("%.1f", computation.TotalWastedPoints), Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "Stardust"},
	}
	sendEmbed(s, i, embed)
}

func weeklyRecordEmbed(username string, record *domain.WeeklyPointsRecord) *discordgo.MessageEmbed {
	finalized := record.EffectiveFinalizedPoints()

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s — Week %d/%d", username, record.Week, record.Year),
		Description: formatDetails(record.Details),
		Color:       0xF1C40F,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Finalized", Value: fmt.Sprintf("%.1f", finalized), Inline: true},
			{Name: "Raw", Value: fmt.Sprintf("%.1f", record.TotalRawPoints), Inline: true},
			{Name: "Tier", Value: fmt.Sprintf("%d", record.TierAfterWeek), Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "Stardust"},
	}

	if record.Override.Active {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Override",
			Value: fmt.Sprintf("Applied by <@%s>: %s", record.Override.AppliedByID, record.Override.Reason),
		})
	}

	return embed
}

// formatDetails renders the per-category breakdown as an aligned list.
func formatDetails(details []domain.CategoryPointsDetail) string {
	var b strings.Builder
	for _, d := range details {
		b.WriteString(fmt.Sprintf("**%s** (%s): %d → %.1f applied, %.1f wasted\n",
			categoryLabel(d.Category), d.WeightClass, d.RawAmount, d.AppliedPoints, d.WastedPoints))
	}
	return b.String()
}

func categoryLabel(c domain.Category) string {
	switch c {
	case domain.CategoryModChatMessages:
		return "Mod chat"
	case domain.CategoryPublicChatMessages:
		return "Public chat"
	case domain.CategoryVoiceChatMinutes:
		return "Voice minutes"
	case domain.CategoryModActionsTaken:
		return "Mod actions"
	case domain.CategoryCasesHandled:
		return "Cases handled"
	default:
		return string(c)
	}
}
