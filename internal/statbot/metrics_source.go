package statbot

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/osse101/StardustBot_Go/internal/domain"
	"github.com/osse101/StardustBot_Go/internal/repository"
	"github.com/osse101/StardustBot_Go/internal/week"
)

// MetricsSource assembles a moderator's weekly raw metrics: chat and voice
// activity from the StatBot API, moderation actions and handled cases from
// the synced mod-log store. The five fetches run concurrently.
type MetricsSource struct {
	client            *Client
	modLog            repository.ModLog
	modChannelIDs     []string
	commandChannelIDs []string
}

// NewMetricsSource creates a metrics source. modChannelIDs are the
// moderator-only channels; commandChannelIDs are additionally excluded from
// the public message count (bot-command channels and the like).
func NewMetricsSource(client *Client, modLog repository.ModLog, modChannelIDs, commandChannelIDs []string) *MetricsSource {
	return &MetricsSource{
		client:            client,
		modLog:            modLog,
		modChannelIDs:     modChannelIDs,
		commandChannelIDs: commandChannelIDs,
	}
}

// FetchMetrics implements stardust.MetricsSource.
func (s *MetricsSource) FetchMetrics(ctx context.Context, guildID, userID string, weekNum, year int) (domain.RawMetrics, error) {
	base := ChannelQuery{
		GuildID: guildID,
		UserID:  userID,
		Week:    weekNum,
		Year:    year,
	}
	start := week.Start(weekNum, year)
	end := week.End(weekNum, year)

	var out domain.RawMetrics
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		q := base
		q.ChannelIDs = s.modChannelIDs
		count, err := s.client.FetchModChatMessageCount(groupCtx, q)
		if err != nil {
			return fmt.Errorf("mod chat messages: %w", err)
		}
		out.ModChatMessages = count
		return nil
	})

	group.Go(func() error {
		q := base
		// Public count excludes mod channels and command channels both.
		q.ChannelIDs = append(append([]string{}, s.modChannelIDs...), s.commandChannelIDs...)
		count, err := s.client.FetchPublicChatMessageCount(groupCtx, q)
		if err != nil {
			return fmt.Errorf("public chat messages: %w", err)
		}
		out.PublicChatMessages = count
		return nil
	})

	group.Go(func() error {
		q := base
		q.ChannelIDs = s.modChannelIDs
		minutes, err := s.client.FetchVoiceMinutes(groupCtx, q)
		if err != nil {
			return fmt.Errorf("voice minutes: %w", err)
		}
		out.VoiceChatMinutes = minutes
		return nil
	})

	group.Go(func() error {
		count, err := s.modLog.CountModActions(groupCtx, guildID, userID, start, end)
		if err != nil {
			return fmt.Errorf("mod actions: %w", err)
		}
		out.ModActionsTaken = count
		return nil
	})

	group.Go(func() error {
		count, err := s.modLog.CountModmailClosures(groupCtx, guildID, userID, start, end)
		if err != nil {
			return fmt.Errorf("cases handled: %w", err)
		}
		out.CasesHandled = count
		return nil
	})

	if err := group.Wait(); err != nil {
		return domain.RawMetrics{}, err
	}
	return out, nil
}
