package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
)

// Helper to create test interaction
func createTestInteraction(commandName string, options []*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type: discordgo.InteractionApplicationCommand,
			Data: discordgo.ApplicationCommandInteractionData{
				Name:    commandName,
				Options: options,
			},
			Member: &discordgo.Member{
				User: &discordgo.User{
					ID:       "test-user-123",
					Username: "TestUser",
				},
			},
		},
	}
}

// TestCommandRegistry tests the command registry
func TestCommandRegistry(t *testing.T) {
	registry := NewCommandRegistry()

	cmd := &discordgo.ApplicationCommand{
		Name:        "test",
		Description: "Test command",
	}

	handlerCalled := false
	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handlerCalled = true
	}

	registry.Register(cmd, handler)

	if registry.Commands["test"] == nil {
		t.Error("Command not registered")
	}

	if registry.Handlers["test"] == nil {
		t.Error("Handler not registered")
	}

	// Test handle
	registry.Handle(nil, createTestInteraction("test", nil), nil)

	if !handlerCalled {
		t.Error("Handler was not called")
	}
}

// TestRecordCommand tests command tracking
func TestRecordCommand(t *testing.T) {
	// Reset counter
	commandCounter = 0

	RecordCommand()
	RecordCommand()
	RecordCommand()

	if commandCounter != 3 {
		t.Errorf("Expected 3 commands, got %d", commandCounter)
	}
}

// TestCommandsEqual verifies the registration diff check
func TestCommandsEqual(t *testing.T) {
	base := []*discordgo.ApplicationCommand{
		{
			Name:        "stardust",
			Description: "Moderator stardust points",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "points",
					Description: "View a moderator's weekly points",
				},
			},
		},
	}

	same := []*discordgo.ApplicationCommand{
		{
			Name:        "stardust",
			Description: "Moderator stardust points",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "points",
					Description: "View a moderator's weekly points",
				},
			},
		},
	}

	if !commandsEqual(base, same) {
		t.Error("Expected identical commands to compare equal")
	}

	changed := []*discordgo.ApplicationCommand{
		{
			Name:        "stardust",
			Description: "Changed description",
			Options:     base[0].Options,
		},
	}

	if commandsEqual(base, changed) {
		t.Error("Expected changed description to compare unequal")
	}

	if commandsEqual(base, nil) {
		t.Error("Expected different lengths to compare unequal")
	}
}

// TestRegisteredCommandDefinitions sanity-checks the command builders
func TestRegisteredCommandDefinitions(t *testing.T) {
	registry := NewCommandRegistry()
	registry.Register(PingCommand())
	registry.Register(StardustCommand())
	registry.Register(ProfileCommand())
	registry.Register(TierCommand())
	registry.Register(ModeratorsCommand())
	registry.Register(ReportCommand())
	registry.Register(AdminCommand())

	expected := []string{"ping", "stardust", "profile", "tier", "moderators", "report", "stardust-admin"}
	for _, name := range expected {
		if registry.Commands[name] == nil {
			t.Errorf("Command %q not registered", name)
		}
		if registry.Handlers[name] == nil {
			t.Errorf("Handler for %q not registered", name)
		}
	}

	if len(registry.Commands) != len(expected) {
		t.Errorf("Expected %d commands, got %d", len(expected), len(registry.Commands))
	}

	// Admin-only commands must carry restricted default permissions
	for _, name := range []string{"tier", "moderators", "report", "stardust-admin"} {
		if registry.Commands[name].DefaultMemberPermissions == nil {
			t.Errorf("Command %q should restrict default member permissions", name)
		}
	}
}
