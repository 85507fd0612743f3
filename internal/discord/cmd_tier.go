package discord

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/StardustBot_Go/internal/tier"
)

// TierCommand returns the tier command definition and handler.
// Subcommands: view, set (admin), payouts.
func TierCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	manageGuild := int64(discordgo.PermissionManageServer)

	cmd := &discordgo.ApplicationCommand{
		Name:                     "tier",
		Description:              "Moderator payout tiers",
		DefaultMemberPermissions: &manageGuild,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "view",
				Description: "View a moderator's current tier",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionUser,
						Name:        "moderator",
						Description: "Moderator to look up",
						Required:    true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "set",
				Description: "Set a moderator's tier",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionUser,
						Name:        "moderator",
						Description: "Moderator to update",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "tier",
						Description: "New tier (0-3)",
						Required:    true,
						MinValue:    float64Ptr(0),
						MaxValue:    float64(tier.MaxAssignableTier),
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "payouts",
				Description: "Show the payout table",
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		options := getOptions(i)
		if len(options) == 0 {
			return
		}

		switch options[0].Name {
		case "view":
			handleTierView(s, i, client, options[0].Options)
		case "set":
			handleTierSet(s, i, client, options[0].Options)
		case "payouts":
			handleTierPayouts(s, i)
		}
	}

	return cmd, handler
}

func handleTierView(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient, opts []*discordgo.ApplicationCommandInteractionDataOption) {
	if !deferResponse(s, i) {
		return
	}

	var target *discordgo.User
	for _, opt := range opts {
		if opt.Name == "moderator" {
			target = opt.UserValue(s)
		}
	}
	if target == nil {
		respondFriendlyError(s, i, "moderator is required")
		return
	}

	info, err := client.GetTier(target.ID)
	if err != nil {
		slog.Error("Failed to get tier", "error", err, "user_id", target.ID)
		respondFriendlyError(s, i, err.Error())
		return
	}

	sendEmbed(s, i, &discordgo.MessageEmbed{
		Title: fmt.Sprintf("%s's Tier", target.Username),
		Color: 0x3498DB,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Tier", Value: fmt.Sprintf("%d", info.Tier), Inline: true},
			{Name: "Monthly Payout", Value: fmt.Sprintf("%d", info.Payout), Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "Stardust"},
	})
}

func handleTierSet(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient, opts []*discordgo.ApplicationCommandInteractionDataOption) {
	if !deferResponse(s, i) {
		return
	}

	var target *discordgo.User
	newTier := -1
	for _, opt := range opts {
		switch opt.Name {
		case "moderator":
			target = opt.UserValue(s)
		case "tier":
			newTier = int(opt.IntValue())
		}
	}
	if target == nil || newTier < 0 {
		respondFriendlyError(s, i, "moderator and tier are required")
		return
	}

	actor := getInteractionUser(i)
	if err := client.SetTier(target.ID, newTier, actor.ID); err != nil {
		slog.Error("Failed to set tier", "error", err, "user_id", target.ID, "tier", newTier)
		respondFriendlyError(s, i, err.Error())
		return
	}

	sendEmbed(s, i, &discordgo.MessageEmbed{
		Title:       "Tier Updated",
		Description: fmt.Sprintf("<@%s> is now tier **%d** (payout %d)", target.ID, newTier, tier.PayoutFor(newTier)),
		Color:       0x2ECC71,
		Footer:      &discordgo.MessageEmbedFooter{Text: "Stardust"},
	})
}

func handleTierPayouts(s *discordgo.Session, i *discordgo.InteractionCreate) {
	levels := make([]int, 0, len(tier.Payouts))
	for level := range tier.Payouts {
		levels = append(levels, level)
	}
	sort.Ints(levels)

	handleEmbedResponse(s, i, func() (string, error) {
		var b strings.Builder
		for _, level := range levels {
			label := fmt.Sprintf("Tier %d", level)
			if level > tier.MaxAssignableTier {
				label += " (extension)"
			}
			b.WriteString(fmt.Sprintf("%s: **%d**\n", label, tier.Payouts[level]))
		}
		return b.String(), nil
	}, ResponseConfig{Title: "Payout Table", Color: 0x3498DB})
}

func float64Ptr(v float64) *float64 { return &v }
