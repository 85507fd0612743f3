package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details for security reasons.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidQueryParam = "Invalid %s query parameter"

	// Points operation error messages
	ErrMsgGetWeeklyFailed   = "Failed to get weekly points"
	ErrMsgProcessFailed     = "Failed to process points"
	ErrMsgBackfillFailed    = "Failed to backfill points"
	ErrMsgOverrideFailed    = "Failed to apply override"
	ErrMsgClearWeekFailed   = "Failed to clear week"
	ErrMsgMonthlyFailed     = "Failed to build monthly report"
	ErrMsgEnrollmentFailed  = "Failed to update enrollment"
	ErrMsgTierFailed        = "Failed to update tier"
	ErrMsgAdjustTiersFailed = "Failed to adjust tiers"
)
