package statbot

import "time"

// ============================================================================
// Client Defaults
// ============================================================================

// DefaultBaseURL is the public StatBot API root
const DefaultBaseURL = "https://api.statbot.net/v1"

// DefaultTimeout bounds one HTTP request
const DefaultTimeout = 15 * time.Second

// DefaultMaxRetries is how often 429 and transient errors are retried
const DefaultMaxRetries = 2

// RetryBackoffStep is the linear backoff unit when the server gives no
// reset hint
const RetryBackoffStep = 500 * time.Millisecond

// MaxJitter is the random spread added to every retry wait
const MaxJitter = 200 * time.Millisecond

// ============================================================================
// Query Parameters
// ============================================================================

const (
	ParamStart             = "start"
	ParamEnd               = "end"
	ParamInterval          = "interval"
	ParamWhitelistMembers  = "whitelist_members[]"
	ParamWhitelistChannels = "whitelist_channels[]"
	ParamBlacklistChannels = "blacklist_channels[]"
	ParamVoiceStates       = "voice_states[]"
)

// IntervalWeek buckets a series by week
const IntervalWeek = "week"

// VoiceStateNormal filters voice series to plainly-connected time (not
// muted server-side, not AFK)
const VoiceStateNormal = "normal"

// ============================================================================
// Error Messages
// ============================================================================

const (
	ErrMsgBuildRequestFailed = "failed to build statbot request: %w"
	ErrMsgRequestFailed      = "statbot request failed: %w"
	ErrMsgDecodeFailed       = "failed to decode statbot response: %w"
	ErrMsgRateLimited        = "statbot rate limited: %s"
	ErrMsgBadRequest         = "statbot rejected request: %s"
	ErrMsgUnexpectedStatus   = "statbot returned status %d for %s"
)

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgSeriesFetched = "StatBot series fetched"
	LogMsgRetrying      = "StatBot request retrying"
)
