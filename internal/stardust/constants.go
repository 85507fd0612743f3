package stardust

import "time"

// ============================================================================
// Processing Limits
// ============================================================================

// MaxBackfillWeeks is how many past weeks a backfill run may fill before
// giving up. Backfill also stops at the first week that already has records.
const MaxBackfillWeeks = 10

// ProfileRecentWeeks is how many trailing weeks a moderator profile shows
const ProfileRecentWeeks = 4

// OverrideClearSentinel passed as the override value deactivates an
// existing override instead of setting one
const OverrideClearSentinel = -1

// ============================================================================
// Cache
// ============================================================================

// StatusCacheSize is the maximum number of cached moderator statuses
const StatusCacheSize = 512

// StatusCacheTTL is the time-to-live for cached moderator statuses
const StatusCacheTTL = 5 * time.Minute

// ============================================================================
// Error Messages
// ============================================================================

const (
	ErrMsgFetchMetricsFailed     = "failed to fetch metrics: %w"
	ErrMsgUpsertRecordFailed     = "failed to upsert weekly record: %w"
	ErrMsgSetOverrideFailed      = "failed to set override: %w"
	ErrMsgClearWeekFailed        = "failed to clear week: %w"
	ErrMsgCountRecordsFailed     = "failed to count weekly records: %w"
	ErrMsgListModeratorsFailed   = "failed to list moderators: %w"
	ErrMsgUpsertEnrollmentFailed = "failed to upsert enrollment: %w"
	ErrMsgDeleteEnrollmentFailed = "failed to delete enrollment: %w"
	ErrMsgStampTierFailed        = "failed to stamp tier evaluation: %w"
	ErrMsgSetTierFailed          = "failed to set tier: %w"
)

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgWeekProcessingStarted     = "Week processing started"
	LogMsgWeekProcessingCompleted   = "Week processing completed"
	LogMsgModeratorProcessed        = "Moderator processed"
	LogMsgModeratorProcessingFailed = "Moderator processing failed"
	LogMsgBackfillingWeek           = "Backfilling week"
	LogMsgBackfillStopped           = "Backfill reached populated week"
	LogMsgOverrideApplied           = "Override applied"
	LogMsgWeekCleared               = "Week records cleared"
	LogMsgTierSet                   = "Tier set"
	LogMsgTierAdjusted              = "Tier adjusted by policy"
	LogMsgModeratorActivated        = "Moderator activated"
	LogMsgModeratorDeactivated      = "Moderator deactivated"
	LogMsgModeratorDeleted          = "Moderator enrollment deleted"
)
