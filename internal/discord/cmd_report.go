package discord

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
)

// ReportCommand returns the report command definition and handler.
// Restricted to server managers.
func ReportCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	manageGuild := int64(discordgo.PermissionManageServer)

	cmd := &discordgo.ApplicationCommand{
		Name:                     "report",
		Description:              "Monthly stardust report",
		DefaultMemberPermissions: &manageGuild,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "month",
				Description: "Month (1-12, default: last month)",
				Required:    false,
				MinValue:    float64Ptr(1),
				MaxValue:    12,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "year",
				Description: "Year (default: last month's year)",
				Required:    false,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}

		// Default to the last completed month.
		now := time.Now().UTC()
		prev := now.AddDate(0, 0, -now.Day())
		month, year := int(prev.Month()), prev.Year()

		for _, opt := range getOptions(i) {
			switch opt.Name {
			case "month":
				month = int(opt.IntValue())
			case "year":
				year = int(opt.IntValue())
			}
		}

		report, err := client.MonthlyReport(month, year)
		if err != nil {
			slog.Error("Failed to get monthly report", "error", err, "month", month, "year", year)
			respondFriendlyError(s, i, err.Error())
			return
		}

		userIDs := make([]string, 0, len(report.PerModerator))
		for userID := range report.PerModerator {
			userIDs = append(userIDs, userID)
		}
		sort.Slice(userIDs, func(a, b int) bool {
			return report.PerModerator[userIDs[a]].FinalizedPoints > report.PerModerator[userIDs[b]].FinalizedPoints
		})

		var b strings.Builder
		for _, userID := range userIDs {
			summary := report.PerModerator[userID]
			b.WriteString(fmt.Sprintf("<@%s>: **%.1f** over %d weeks\n",
				userID, summary.FinalizedPoints, summary.WeeksCounted))
		}
		if b.Len() == 0 {
			b.WriteString("No activity recorded.")
		}

		embed := &discordgo.MessageEmbed{
			Title:       fmt.Sprintf("Stardust Report — %s %d", time.Month(report.Month), report.Year),
			Description: b.String(),
			Color:       0x9B59B6,
			Fields: []*discordgo.MessageEmbedField{
				{Name: "Total Finalized", Value: fmt.Sprintf("%.1f", report.Totals.FinalizedPoints), Inline: true},
				{Name: "Total Raw", Value: fmt.Sprintf("%.1f", report.Totals.RawPoints), Inline: true},
				{Name: "Moderators", Value: fmt.Sprintf("%d", len(report.PerModerator)), Inline: true},
			},
			Footer: &discordgo.MessageEmbedFooter{Text: "Stardust"},
		}
		if !report.Persisted {
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name:  "Note",
				Value: "Month still in progress; totals were not persisted.",
			})
		}

		sendEmbed(s, i, embed)
	}

	return cmd, handler
}
