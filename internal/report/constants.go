package report

// ============================================================================
// Error Messages
// ============================================================================

const (
	ErrMsgListMonthlyFailed    = "failed to list monthly summaries: %w"
	ErrMsgListWeeklyFailed     = "failed to list weekly records: %w"
	ErrMsgPersistMonthlyFailed = "failed to persist monthly summaries: %w"
)

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgServedFromStore = "Monthly report served from store"
	LogMsgMonthPersisted  = "Monthly summaries persisted"
)
