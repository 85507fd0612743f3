package discord

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// ModeratorsCommand returns the moderators command definition and handler.
// Subcommands: enroll, remove, list. Restricted to server managers.
func ModeratorsCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	manageGuild := int64(discordgo.PermissionManageServer)

	cmd := &discordgo.ApplicationCommand{
		Name:                     "moderators",
		Description:              "Manage stardust program enrollment",
		DefaultMemberPermissions: &manageGuild,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "enroll",
				Description: "Enroll a moderator in the program",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionUser,
						Name:        "moderator",
						Description: "Moderator to enroll",
						Required:    true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "remove",
				Description: "Remove a moderator from the program",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionUser,
						Name:        "moderator",
						Description: "Moderator to remove",
						Required:    true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "list",
				Description: "List enrolled moderators",
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		options := getOptions(i)
		if len(options) == 0 {
			return
		}

		switch options[0].Name {
		case "enroll":
			handleEnroll(s, i, client, options[0].Options)
		case "remove":
			handleRemove(s, i, client, options[0].Options)
		case "list":
			handleModeratorList(s, i, client)
		}
	}

	return cmd, handler
}

func subcommandUser(s *discordgo.Session, opts []*discordgo.ApplicationCommandInteractionDataOption) *discordgo.User {
	for _, opt := range opts {
		if opt.Name == "moderator" {
			return opt.UserValue(s)
		}
	}
	return nil
}

func handleEnroll(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient, opts []*discordgo.ApplicationCommandInteractionDataOption) {
	target := subcommandUser(s, opts)
	if target == nil {
		respondError(s, i, "moderator is required")
		return
	}
	actor := getInteractionUser(i)

	handleEmbedResponse(s, i, func() (string, error) {
		if err := client.Activate(target.ID, actor.ID); err != nil {
			return "", err
		}
		return fmt.Sprintf("<@%s> is now enrolled in the stardust program.", target.ID), nil
	}, ResponseConfig{Title: "Moderator Enrolled", Color: 0x2ECC71})
}

func handleRemove(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient, opts []*discordgo.ApplicationCommandInteractionDataOption) {
	target := subcommandUser(s, opts)
	if target == nil {
		respondError(s, i, "moderator is required")
		return
	}
	actor := getInteractionUser(i)

	handleEmbedResponse(s, i, func() (string, error) {
		if err := client.Deactivate(target.ID, actor.ID); err != nil {
			return "", err
		}
		return fmt.Sprintf("<@%s> has been removed from the stardust program.", target.ID), nil
	}, ResponseConfig{Title: "Moderator Removed", Color: 0xE74C3C})
}

func handleModeratorList(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
	if !deferResponse(s, i) {
		return
	}

	moderators, err := client.ListModerators()
	if err != nil {
		slog.Error("Failed to list moderators", "error", err)
		respondFriendlyError(s, i, err.Error())
		return
	}

	description := "No moderators enrolled."
	if len(moderators) > 0 {
		var b strings.Builder
		for _, m := range moderators {
			b.WriteString(fmt.Sprintf("<@%s> — enrolled %s\n", m.UserID, m.EnrolledAt.Format("2006-01-02")))
		}
		description = b.String()
	}

	sendEmbed(s, i, &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Enrolled Moderators (%d)", len(moderators)),
		Description: description,
		Color:       0x3498DB,
		Footer:      &discordgo.MessageEmbedFooter{Text: "Stardust"},
	})
}
