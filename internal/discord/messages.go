package discord

// Friendly message constants for Discord responses
const (
	// Points
	MsgRecordNotFound = "📭 **No Points Yet**\nThat week has no computed record."
	MsgInvalidWeek    = "📅 **Invalid Week**\nWeeks run 1-53."
	MsgFutureMonth    = "🔮 **Not Yet**\nThat month hasn't started."

	// Enrollment
	MsgNotEnrolled     = "👤 **Not Enrolled**\nThat moderator isn't in the stardust program."
	MsgAlreadyEnrolled = "✨ **Already Enrolled**\nThat moderator is already active."

	// Tiers
	MsgTierOutOfRange = "🚫 **Invalid Tier**\nAssignable tiers run 0-3."

	MsgGenericError = "❌ Something went wrong."
)
