package statbot

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/osse101/StardustBot_Go/internal/week"
)

// ChannelQuery scopes a series fetch to one moderator and a channel set.
type ChannelQuery struct {
	GuildID    string
	UserID     string
	Week       int
	Year       int
	ChannelIDs []string
}

// FetchModChatMessageCount counts the moderator's messages inside the
// moderator channels over the week.
func (c *Client) FetchModChatMessageCount(ctx context.Context, q ChannelQuery) (int, error) {
	query := seriesQuery(q)
	appendAll(query, ParamWhitelistChannels, q.ChannelIDs)

	return c.fetchSeriesTotal(ctx, messagesSeriesPath(q.GuildID), query)
}

// FetchPublicChatMessageCount counts the moderator's messages outside the
// given channels (the moderator-only set is blacklisted).
func (c *Client) FetchPublicChatMessageCount(ctx context.Context, q ChannelQuery) (int, error) {
	query := seriesQuery(q)
	appendAll(query, ParamBlacklistChannels, q.ChannelIDs)

	return c.fetchSeriesTotal(ctx, messagesSeriesPath(q.GuildID), query)
}

// FetchVoiceMinutes counts the moderator's normal-state voice minutes
// outside the given channels.
func (c *Client) FetchVoiceMinutes(ctx context.Context, q ChannelQuery) (int, error) {
	query := seriesQuery(q)
	appendAll(query, ParamBlacklistChannels, q.ChannelIDs)
	query.Add(ParamVoiceStates, VoiceStateNormal)

	return c.fetchSeriesTotal(ctx, voiceSeriesPath(q.GuildID), query)
}

// seriesQuery builds the parameters shared by every series fetch. StatBot
// takes unix-millisecond bounds and buckets by the requested interval.
func seriesQuery(q ChannelQuery) url.Values {
	start := week.Start(q.Week, q.Year)
	end := week.End(q.Week, q.Year)

	query := url.Values{}
	query.Set(ParamStart, strconv.FormatInt(start.UnixMilli(), 10))
	query.Set(ParamEnd, strconv.FormatInt(end.UnixMilli(), 10))
	query.Set(ParamInterval, IntervalWeek)
	query.Add(ParamWhitelistMembers, q.UserID)
	return query
}

func appendAll(query url.Values, key string, values []string) {
	for _, v := range values {
		query.Add(key, v)
	}
}

func messagesSeriesPath(guildID string) string {
	return fmt.Sprintf("/guilds/%s/messages/series", guildID)
}

func voiceSeriesPath(guildID string) string {
	return fmt.Sprintf("/guilds/%s/voice/series", guildID)
}
