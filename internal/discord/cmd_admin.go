package discord

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/StardustBot_Go/internal/stardust"
	"github.com/osse101/StardustBot_Go/internal/week"
)

// AdminCommand returns the stardust-admin command definition and handler.
// Subcommands: override, clear-override, process-week, clear-week.
// Restricted to administrators.
func AdminCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	admin := int64(discordgo.PermissionAdministrator)

	weekOptions := []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "week",
			Description: "ISO week number (default: current week)",
			Required:    false,
			MinValue:    float64Ptr(1),
			MaxValue:    53,
		},
		{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "year",
			Description: "Year (default: current year)",
			Required:    false,
		},
	}

	cmd := &discordgo.ApplicationCommand{
		Name:                     "stardust-admin",
		Description:              "Administrative stardust operations",
		DefaultMemberPermissions: &admin,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "override",
				Description: "Replace a moderator's finalized points for a week",
				Options: append([]*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionUser,
						Name:        "moderator",
						Description: "Moderator to override",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionNumber,
						Name:        "points",
						Description: "New finalized points",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "reason",
						Description: "Why the override is applied",
						Required:    true,
					},
				}, weekOptions...),
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "clear-override",
				Description: "Clear an override and restore computed points",
				Options: append([]*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionUser,
						Name:        "moderator",
						Description: "Moderator whose override to clear",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "reason",
						Description: "Why the override is cleared",
						Required:    true,
					},
				}, weekOptions...),
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "process-week",
				Description: "Recompute a week for every active moderator",
				Options:     weekOptions,
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "clear-week",
				Description: "Delete every record for a week",
				Options:     weekOptions,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		options := getOptions(i)
		if len(options) == 0 {
			return
		}

		sub := options[0]
		weekNum, year := week.Current(time.Now())
		var target *discordgo.User
		points := 0.0
		reason := ""
		for _, opt := range sub.Options {
			switch opt.Name {
			case "moderator":
				target = opt.UserValue(s)
			case "points":
				points = opt.FloatValue()
			case "reason":
				reason = opt.StringValue()
			case "week":
				weekNum = int(opt.IntValue())
			case "year":
				year = int(opt.IntValue())
			}
		}
		actor := getInteractionUser(i)

		switch sub.Name {
		case "override":
			handleEmbedResponse(s, i, func() (string, error) {
				record, err := client.SetOverride(target.ID, weekNum, year, points, reason, actor.ID)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("<@%s> week %d/%d finalized points set to **%.1f** (computed: %.1f).",
					target.ID, weekNum, year, record.EffectiveFinalizedPoints(), record.TotalFinalizedPoints), nil
			}, ResponseConfig{Title: "Override Applied", Color: 0xE67E22})
		case "clear-override":
			handleEmbedResponse(s, i, func() (string, error) {
				record, err := client.SetOverride(target.ID, weekNum, year, stardust.OverrideClearSentinel, reason, actor.ID)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("<@%s> week %d/%d restored to computed points **%.1f**.",
					target.ID, weekNum, year, record.EffectiveFinalizedPoints()), nil
			}, ResponseConfig{Title: "Override Cleared", Color: 0x2ECC71})
		case "process-week":
			handleEmbedResponse(s, i, func() (string, error) {
				processed, err := client.ProcessWeek(weekNum, year)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Recomputed week %d/%d for **%d** moderators.", weekNum, year, processed), nil
			}, ResponseConfig{Title: "Week Processed", Color: 0x2ECC71})
		case "clear-week":
			handleEmbedResponse(s, i, func() (string, error) {
				deleted, err := client.ClearWeek(weekNum, year)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Deleted **%d** records for week %d/%d.", deleted, weekNum, year), nil
			}, ResponseConfig{Title: "Week Cleared", Color: 0xE74C3C})
		}
	}

	return cmd, handler
}
