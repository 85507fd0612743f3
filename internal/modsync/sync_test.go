package modsync

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/StardustBot_Go/internal/domain"
)

// mockChannelHistory implements ChannelHistory for testing
type mockChannelHistory struct {
	// messages in channel order, newest first
	messages map[string][]*discordgo.Message
	members  map[string]*discordgo.Member
}

func newMockChannelHistory() *mockChannelHistory {
	return &mockChannelHistory{
		messages: make(map[string][]*discordgo.Message),
		members:  make(map[string]*discordgo.Member),
	}
}

func (m *mockChannelHistory) ChannelMessages(channelID string, limit int, beforeID, afterID, aroundID string, options ...discordgo.RequestOption) ([]*discordgo.Message, error) {
	all := m.messages[channelID]
	start := 0
	if beforeID != "" {
		for i, msg := range all {
			if msg.ID == beforeID {
				start = i + 1
				break
			}
		}
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	if start >= len(all) {
		return nil, nil
	}
	return all[start:end], nil
}

func (m *mockChannelHistory) GuildMember(guildID, userID string, options ...discordgo.RequestOption) (*discordgo.Member, error) {
	member, ok := m.members[userID]
	if !ok {
		return nil, fmt.Errorf("unknown member %s", userID)
	}
	return member, nil
}

func (m *mockChannelHistory) GuildMembersSearch(guildID, query string, limit int, options ...discordgo.RequestOption) ([]*discordgo.Member, error) {
	var out []*discordgo.Member
	for _, member := range m.members {
		out = append(out, member)
	}
	return out, nil
}

// mockModLogRepository implements repository.ModLog for testing
type mockModLogRepository struct {
	actions  map[string]*domain.ModAction
	closures map[string]*domain.ModmailClosure
}

func newMockModLogRepository() *mockModLogRepository {
	return &mockModLogRepository{
		actions:  make(map[string]*domain.ModAction),
		closures: make(map[string]*domain.ModmailClosure),
	}
}

func (m *mockModLogRepository) UpsertModAction(ctx context.Context, action *domain.ModAction) error {
	m.actions[action.MessageID] = action
	return nil
}

func (m *mockModLogRepository) ModActionExists(ctx context.Context, messageID string) (bool, error) {
	_, ok := m.actions[messageID]
	return ok, nil
}

func (m *mockModLogRepository) LatestModAction(ctx context.Context, guildID string) (*domain.ModAction, error) {
	var latest *domain.ModAction
	for _, action := range m.actions {
		if latest == nil || action.PerformedAt.After(latest.PerformedAt) {
			latest = action
		}
	}
	return latest, nil
}

func (m *mockModLogRepository) CountModActions(ctx context.Context, guildID, userID string, start, end time.Time) (int, error) {
	count := 0
	for _, action := range m.actions {
		if action.GuildID == guildID && action.ModeratorID == userID {
			count++
		}
	}
	return count, nil
}

func (m *mockModLogRepository) UpsertModmailClosure(ctx context.Context, closure *domain.ModmailClosure) error {
	m.closures[closure.MessageID] = closure
	return nil
}

func (m *mockModLogRepository) ModmailClosureExists(ctx context.Context, messageID string) (bool, error) {
	_, ok := m.closures[messageID]
	return ok, nil
}

func (m *mockModLogRepository) LatestModmailClosure(ctx context.Context, guildID string) (*domain.ModmailClosure, error) {
	var latest *domain.ModmailClosure
	for _, closure := range m.closures {
		if latest == nil || closure.ClosedAt.After(latest.ClosedAt) {
			latest = closure
		}
	}
	return latest, nil
}

func (m *mockModLogRepository) CountModmailClosures(ctx context.Context, guildID, userID string, start, end time.Time) (int, error) {
	count := 0
	for _, closure := range m.closures {
		if closure.GuildID == guildID && closure.ClosedByID == userID && closure.Approved {
			count++
		}
	}
	return count, nil
}

const (
	testGuild   = "guild-1"
	testChannel = "chan-cases"
)

func newTestSyncer(t *testing.T) (*Syncer, *mockChannelHistory, *mockModLogRepository) {
	t.Helper()
	history := newMockChannelHistory()
	modLog := newMockModLogRepository()
	syncer := NewSyncer(history, modLog)
	syncer.sleep = func(time.Duration) {}
	return syncer, history, modLog
}

func caseMessage(id, title string) *discordgo.Message {
	return &discordgo.Message{
		ID:        id,
		ChannelID: testChannel,
		Timestamp: time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC),
		Embeds: []*discordgo.MessageEmbed{{
			Title:  title,
			Footer: &discordgo.MessageEmbedFooter{Text: "by ModUser"},
		}},
	}
}

func modmailMessage(id, title, footer string) *discordgo.Message {
	return &discordgo.Message{
		ID:        id,
		ChannelID: testChannel,
		Timestamp: time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC),
		Embeds: []*discordgo.MessageEmbed{{
			Title:  title,
			Footer: &discordgo.MessageEmbedFooter{Text: footer},
		}},
	}
}

func TestSyncModActions(t *testing.T) {
	syncer, history, modLog := newTestSyncer(t)
	history.messages[testChannel] = []*discordgo.Message{
		caseMessage("3", "Ban `c3`"),
		caseMessage("2", "not a case embed"),
		caseMessage("1", "Warn `c1`"),
	}

	stored, err := syncer.SyncModActions(context.Background(), testGuild, testChannel)
	require.NoError(t, err)
	assert.Equal(t, 2, stored)

	require.Contains(t, modLog.actions, "3")
	assert.Equal(t, domain.ModActionBan, modLog.actions["3"].Action)
	assert.Equal(t, "c3", modLog.actions["3"].CaseID)
	assert.Equal(t, testGuild, modLog.actions["3"].GuildID)
	assert.NotContains(t, modLog.actions, "2")
	require.Contains(t, modLog.actions, "1")
	assert.Equal(t, domain.ModActionWarn, modLog.actions["1"].Action)
}

func TestSyncModActionsUpToDate(t *testing.T) {
	syncer, history, modLog := newTestSyncer(t)
	history.messages[testChannel] = []*discordgo.Message{caseMessage("5", "Ban `c5`")}
	modLog.actions["5"] = &domain.ModAction{MessageID: "5", GuildID: testGuild}

	stored, err := syncer.SyncModActions(context.Background(), testGuild, testChannel)
	require.NoError(t, err)
	assert.Zero(t, stored)
}

func TestSyncModActionsSkipStreakStops(t *testing.T) {
	syncer, history, modLog := newTestSyncer(t)

	messages := []*discordgo.Message{caseMessage("head", "Ban `new`")}
	for i := 0; i < MaxSkipStreak+20; i++ {
		messages = append(messages, caseMessage(fmt.Sprintf("plain-%d", i), "no embed match"))
	}
	messages = append(messages, caseMessage("tail", "Ban `old`"))
	history.messages[testChannel] = messages

	stored, err := syncer.SyncModActions(context.Background(), testGuild, testChannel)
	require.NoError(t, err)

	assert.Equal(t, 1, stored)
	assert.Contains(t, modLog.actions, "head")
	// The old entry past the skip streak is never reached.
	assert.NotContains(t, modLog.actions, "tail")
}

func TestSyncModActionsResolvesModeratorID(t *testing.T) {
	syncer, history, modLog := newTestSyncer(t)
	history.messages[testChannel] = []*discordgo.Message{caseMessage("1", "Kick `k1`")}
	history.members["42"] = &discordgo.Member{User: &discordgo.User{ID: "42", Username: "ModUser"}}

	_, err := syncer.SyncModActions(context.Background(), testGuild, testChannel)
	require.NoError(t, err)

	require.Contains(t, modLog.actions, "1")
	assert.Equal(t, "42", modLog.actions["1"].ModeratorID)
	assert.Equal(t, "ModUser", modLog.actions["1"].PerformedByUsername)
}

func TestSyncModmail(t *testing.T) {
	syncer, history, modLog := newTestSyncer(t)
	history.messages[testChannel] = []*discordgo.Message{
		modmailMessage("2", "UserA (`100`)", "Closed by ModUser (42)"),
		modmailMessage("1", "UserB (`200`)", "Closed by GoneUser (43)"),
	}
	history.members["42"] = &discordgo.Member{User: &discordgo.User{ID: "42", Username: "ModUser"}}

	stored, err := syncer.SyncModmail(context.Background(), testGuild, testChannel)
	require.NoError(t, err)
	assert.Equal(t, 2, stored)

	require.Contains(t, modLog.closures, "2")
	assert.True(t, modLog.closures["2"].Approved)
	assert.Equal(t, "42", modLog.closures["2"].ClosedByID)

	// The closer who left the guild is stored but not approved.
	require.Contains(t, modLog.closures, "1")
	assert.False(t, modLog.closures["1"].Approved)
}

func TestSyncEmptyChannel(t *testing.T) {
	syncer, _, _ := newTestSyncer(t)

	stored, err := syncer.SyncModActions(context.Background(), testGuild, "empty-chan")
	require.NoError(t, err)
	assert.Zero(t, stored)
}
