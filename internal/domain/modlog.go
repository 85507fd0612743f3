package domain

import "time"

// ModActionType is the kind of moderation action parsed from a case embed.
type ModActionType string

const (
	ModActionBan    ModActionType = "BAN"
	ModActionUnban  ModActionType = "UNBAN"
	ModActionWarn   ModActionType = "WARN"
	ModActionMute   ModActionType = "MUTE"
	ModActionKick   ModActionType = "KICK"
	ModActionUpdate ModActionType = "UPDATE"
)

// CountedModActions are the action types that earn points. UNBAN and UPDATE
// are tracked but never scored.
var CountedModActions = []ModActionType{ModActionBan, ModActionWarn, ModActionMute, ModActionKick}

// ModAction is one parsed moderation-case log entry, keyed by the source
// message ID so re-syncing the log channel is idempotent.
type ModAction struct {
	MessageID           string        `json:"message_id"`
	ChannelID           string        `json:"channel_id"`
	GuildID             string        `json:"guild_id"`
	CaseID              string        `json:"case_id"`
	Action              ModActionType `json:"action"`
	PerformedByUsername string        `json:"performed_by_username,omitempty"`
	ModeratorID         string        `json:"moderator_id,omitempty"`
	PerformedAt         time.Time     `json:"performed_at"`
}

// ModmailClosure is one parsed modmail thread-closure entry. Only approved
// closures (closer confirmed as a guild member) count toward cases handled.
type ModmailClosure struct {
	MessageID    string    `json:"message_id"`
	ChannelID    string    `json:"channel_id"`
	GuildID      string    `json:"guild_id"`
	UserID       string    `json:"user_id"`
	ClosedByID   string    `json:"closed_by_id"`
	ClosedByName string    `json:"closed_by_name,omitempty"`
	Approved     bool      `json:"approved"`
	ClosedAt     time.Time `json:"closed_at"`
}
