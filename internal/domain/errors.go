package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Record errors
	ErrMsgRecordNotFound        = "weekly record not found"
	ErrMsgOverrideWithoutRecord = "override requires a computed weekly record"

	// Enrollment errors
	ErrMsgModeratorNotFound  = "moderator not enrolled"
	ErrMsgEnrollmentActive   = "enrollment is already active"
	ErrMsgEnrollmentInactive = "enrollment is already inactive"

	// Tier errors
	ErrMsgTierOutOfRange = "tier out of range"

	// Aggregation errors
	ErrMsgFutureMonth = "cannot aggregate a future month"

	// Input errors
	ErrMsgInvalidWeek  = "invalid ISO week"
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrRecordNotFound        = errors.New(ErrMsgRecordNotFound)
	ErrOverrideWithoutRecord = errors.New(ErrMsgOverrideWithoutRecord)

	ErrModeratorNotFound  = errors.New(ErrMsgModeratorNotFound)
	ErrEnrollmentActive   = errors.New(ErrMsgEnrollmentActive)
	ErrEnrollmentInactive = errors.New(ErrMsgEnrollmentInactive)

	ErrTierOutOfRange = errors.New(ErrMsgTierOutOfRange)

	ErrFutureMonth = errors.New(ErrMsgFutureMonth)

	ErrInvalidWeek  = errors.New(ErrMsgInvalidWeek)
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
