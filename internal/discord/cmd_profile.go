package discord

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/StardustBot_Go/internal/tier"
)

// ProfileCommand returns the profile command definition and handler.
func ProfileCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "profile",
		Description: "View a moderator's stardust profile",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "moderator",
				Description: "Moderator to look up (default: you)",
				Required:    false,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}

		target := getInteractionUser(i)
		for _, opt := range getOptions(i) {
			if opt.Name == "moderator" {
				target = opt.UserValue(s)
			}
		}

		profile, err := client.GetProfile(target.ID)
		if err != nil {
			slog.Error("Failed to get profile", "error", err, "user_id", target.ID)
			respondFriendlyError(s, i, err.Error())
			return
		}

		currentTier := profile.Tier.CurrentTier
		embed := &discordgo.MessageEmbed{
			Title: fmt.Sprintf("%s's Stardust Profile", target.Username),
			Color: 0x3498DB,
			Thumbnail: &discordgo.MessageEmbedThumbnail{
				URL: target.AvatarURL("128"),
			},
			Fields: []*discordgo.MessageEmbedField{
				{Name: "Tier", Value: fmt.Sprintf("%d", currentTier), Inline: true},
				{Name: "Monthly Payout", Value: fmt.Sprintf("%d", tier.PayoutFor(currentTier)), Inline: true},
				{Name: "Enrolled", Value: profile.Enrollment.EnrolledAt.Format("2006-01-02"), Inline: true},
			},
			Footer: &discordgo.MessageEmbedFooter{Text: "Stardust"},
		}

		if len(profile.Weekly) > 0 {
			var b strings.Builder
			for _, rec := range profile.Weekly {
				b.WriteString(fmt.Sprintf("Week %d/%d: **%.1f**\n", rec.Week, rec.Year, rec.EffectiveFinalizedPoints()))
			}
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name:  "Recent Weeks",
				Value: b.String(),
			})
		}

		sendEmbed(s, i, embed)
	}

	return cmd, handler
}
