// Package modsync walks a guild's moderation-log channels and mirrors the
// parseable embeds into the mod-log store. Runs are idempotent: entries are
// keyed by message ID, and a long streak of already-stored messages ends
// the walk early.
package modsync

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/StardustBot_Go/internal/domain"
	"github.com/osse101/StardustBot_Go/internal/logger"
	"github.com/osse101/StardustBot_Go/internal/metrics"
	"github.com/osse101/StardustBot_Go/internal/parser"
	"github.com/osse101/StardustBot_Go/internal/repository"
)

// ChannelHistory is the slice of the Discord session the syncer needs.
// *discordgo.Session satisfies it.
type ChannelHistory interface {
	ChannelMessages(channelID string, limit int, beforeID, afterID, aroundID string, options ...discordgo.RequestOption) ([]*discordgo.Message, error)
	GuildMember(guildID, userID string, options ...discordgo.RequestOption) (*discordgo.Member, error)
	GuildMembersSearch(guildID, query string, limit int, options ...discordgo.RequestOption) ([]*discordgo.Member, error)
}

// Syncer catches the mod-log store up with the mod-cases and modmail
// channels.
type Syncer struct {
	session ChannelHistory
	modLog  repository.ModLog
	sleep   func(time.Duration)
}

// NewSyncer creates a new mod-log syncer
func NewSyncer(session ChannelHistory, modLog repository.ModLog) *Syncer {
	return &Syncer{
		session: session,
		modLog:  modLog,
		sleep:   time.Sleep,
	}
}

// SyncModActions walks the mod-cases channel and stores every parseable
// case embed. Returns how many new entries were stored.
func (s *Syncer) SyncModActions(ctx context.Context, guildID, channelID string) (int, error) {
	latest, err := s.modLog.LatestModAction(ctx, guildID)
	if err != nil {
		return 0, err
	}
	var latestID string
	if latest != nil {
		latestID = latest.MessageID
	}

	return s.catchup(ctx, guildID, channelID, latestID, TypeNameModActions, s.storeModAction)
}

// SyncModmail walks the modmail channel and stores every parseable
// thread-closure embed. Returns how many new entries were stored.
func (s *Syncer) SyncModmail(ctx context.Context, guildID, channelID string) (int, error) {
	latest, err := s.modLog.LatestModmailClosure(ctx, guildID)
	if err != nil {
		return 0, err
	}
	var latestID string
	if latest != nil {
		latestID = latest.MessageID
	}

	return s.catchup(ctx, guildID, channelID, latestID, TypeNameModmail, s.storeModmailClosure)
}

// storeFunc processes one message. It reports true when the message was
// already stored or is not a relevant embed (feeds the skip streak).
type storeFunc func(ctx context.Context, guildID string, msg *discordgo.Message) (skipped bool, err error)

func (s *Syncer) catchup(ctx context.Context, guildID, channelID, latestStoredID, typeName string, store storeFunc) (int, error) {
	log := logger.FromContext(ctx)

	head, err := s.session.ChannelMessages(channelID, 1, "", "", "")
	if err != nil {
		return 0, err
	}
	if len(head) == 0 || (latestStoredID != "" && head[0].ID == latestStoredID) {
		log.Info(LogMsgNothingToSync, "type", typeName, "channel_id", channelID)
		return 0, nil
	}

	log.Info(LogMsgCatchupStarted, "type", typeName, "channel_id", channelID)
	metrics.ModLogSyncRuns.Inc()

	var before string
	stored := 0
	walked := 0
	skipStreak := 0

	for walked < MaxMessagesPerSync {
		if err := ctx.Err(); err != nil {
			return stored, err
		}

		batch, err := s.session.ChannelMessages(channelID, FetchBatchSize, before, "", "")
		if err != nil {
			return stored, err
		}
		if len(batch) == 0 {
			break
		}

		for _, msg := range batch {
			skipped, err := store(ctx, guildID, msg)
			if err != nil {
				return stored, err
			}
			if skipped {
				skipStreak++
				if skipStreak >= MaxSkipStreak {
					log.Info(LogMsgSkipStreakReached, "type", typeName, "stored", stored)
					return stored, nil
				}
				continue
			}
			skipStreak = 0
			stored++
		}

		walked += len(batch)
		before = batch[len(batch)-1].ID
		s.sleep(BatchPause)
	}

	log.Info(LogMsgCatchupCompleted, "type", typeName, "walked", walked, "stored", stored)
	return stored, nil
}

func (s *Syncer) storeModAction(ctx context.Context, guildID string, msg *discordgo.Message) (bool, error) {
	embed := firstEmbed(msg)
	if embed == nil {
		return true, nil
	}

	exists, err := s.modLog.ModActionExists(ctx, msg.ID)
	if err != nil {
		return false, err
	}
	if exists {
		return true, nil
	}

	parsed, ok := parser.ParseCaseEmbed(embed.Title, footerText(embed), embedTimestamp(embed), messageTimestamp(msg))
	if !ok {
		return true, nil
	}

	action := &domain.ModAction{
		MessageID:           msg.ID,
		ChannelID:           msg.ChannelID,
		GuildID:             guildID,
		CaseID:              parsed.CaseID,
		Action:              parsed.Action,
		PerformedByUsername: parsed.PerformedByUsername,
		ModeratorID:         s.resolveModeratorID(guildID, parsed.PerformedByUsername),
		PerformedAt:         parsed.PerformedAt,
	}
	if err := s.modLog.UpsertModAction(ctx, action); err != nil {
		return false, err
	}
	metrics.ModLogMessagesSynced.WithLabelValues(metrics.KindModAction).Inc()
	return false, nil
}

func (s *Syncer) storeModmailClosure(ctx context.Context, guildID string, msg *discordgo.Message) (bool, error) {
	embed := firstEmbed(msg)
	if embed == nil {
		return true, nil
	}

	exists, err := s.modLog.ModmailClosureExists(ctx, msg.ID)
	if err != nil {
		return false, err
	}
	if exists {
		return true, nil
	}

	parsed, ok := parser.ParseModmailEmbed(embed.Title, footerText(embed), embedTimestamp(embed), messageTimestamp(msg))
	if !ok {
		return true, nil
	}

	// A closure only counts when the closer is still a member of the guild.
	approved := false
	if parsed.ClosedByID != "" {
		if _, err := s.session.GuildMember(guildID, parsed.ClosedByID); err == nil {
			approved = true
		}
	}

	closure := &domain.ModmailClosure{
		MessageID:    msg.ID,
		ChannelID:    msg.ChannelID,
		GuildID:      guildID,
		UserID:       parsed.UserID,
		ClosedByID:   parsed.ClosedByID,
		ClosedByName: parsed.ClosedByName,
		Approved:     approved,
		ClosedAt:     parsed.ClosedAt,
	}
	if err := s.modLog.UpsertModmailClosure(ctx, closure); err != nil {
		return false, err
	}
	metrics.ModLogMessagesSynced.WithLabelValues(metrics.KindModmailClosure).Inc()
	return false, nil
}

// resolveModeratorID maps a log-embed username to a member ID, best-effort.
// Case embeds carry only the display name, so an ambiguous or missing match
// leaves the ID empty rather than guessing.
func (s *Syncer) resolveModeratorID(guildID, username string) string {
	if username == "" {
		return ""
	}
	members, err := s.session.GuildMembersSearch(guildID, username, MemberSearchLimit)
	if err != nil {
		return ""
	}

	var matchID string
	for _, member := range members {
		if !strings.EqualFold(memberName(member), username) {
			continue
		}
		if matchID != "" {
			return ""
		}
		matchID = member.User.ID
	}
	return matchID
}

func memberName(member *discordgo.Member) string {
	if member.Nick != "" {
		return member.Nick
	}
	if member.User == nil {
		return ""
	}
	return member.User.Username
}

func firstEmbed(msg *discordgo.Message) *discordgo.MessageEmbed {
	if len(msg.Embeds) == 0 {
		return nil
	}
	return msg.Embeds[0]
}

func footerText(embed *discordgo.MessageEmbed) string {
	if embed.Footer == nil {
		return ""
	}
	return embed.Footer.Text
}

func embedTimestamp(embed *discordgo.MessageEmbed) time.Time {
	if embed.Timestamp == "" {
		return time.Time{}
	}
	ts, err := time.Parse(time.RFC3339, embed.Timestamp)
	if err != nil {
		return time.Time{}
	}
	return ts
}

func messageTimestamp(msg *discordgo.Message) time.Time {
	if msg.Timestamp.IsZero() {
		return time.Now().UTC()
	}
	return msg.Timestamp
}
