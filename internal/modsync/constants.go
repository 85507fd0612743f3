package modsync

import "time"

// ============================================================================
// Walk Limits
// ============================================================================

// MaxMessagesPerSync caps how deep one catch-up run walks into channel
// history
const MaxMessagesPerSync = 5000

// MaxSkipStreak ends the walk after this many consecutive already-stored or
// irrelevant messages
const MaxSkipStreak = 50

// FetchBatchSize is the Discord history page size (API maximum is 100)
const FetchBatchSize = 100

// BatchPause spaces out history fetches to stay clear of Discord rate
// limits
const BatchPause = 500 * time.Millisecond

// MemberSearchLimit bounds the member search when resolving a username to
// an ID
const MemberSearchLimit = 10

// ============================================================================
// Type Names
// ============================================================================

const (
	TypeNameModActions = "mod_actions"
	TypeNameModmail    = "modmail_closures"
)

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgNothingToSync     = "Mod-log channel already up to date"
	LogMsgCatchupStarted    = "Mod-log catch-up started"
	LogMsgCatchupCompleted  = "Mod-log catch-up completed"
	LogMsgSkipStreakReached = "Mod-log skip streak reached, stopping"
)
