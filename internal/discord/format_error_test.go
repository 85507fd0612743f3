package discord

import (
	"testing"

	"github.com/osse101/StardustBot_Go/internal/domain"
)

// TestFormatFriendlyError verifies technical errors map to friendly messages
func TestFormatFriendlyError(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "record not found, API prefix stripped",
			input:    "API error: " + domain.ErrMsgRecordNotFound,
			expected: MsgRecordNotFound,
		},
		{
			name:     "handler phrasing for missing record",
			input:    "API error: No weekly points record exists for that week.",
			expected: MsgRecordNotFound,
		},
		{
			name:     "moderator not found",
			input:    "API error: " + domain.ErrMsgModeratorNotFound,
			expected: MsgNotEnrolled,
		},
		{
			name:     "already enrolled",
			input:    domain.ErrMsgEnrollmentActive,
			expected: MsgAlreadyEnrolled,
		},
		{
			name:     "tier out of range",
			input:    "API error: Tier must be between 0 and 3.",
			expected: MsgTierOutOfRange,
		},
		{
			name:     "future month",
			input:    domain.ErrMsgFutureMonth,
			expected: MsgFutureMonth,
		},
		{
			name:     "invalid week",
			input:    domain.ErrMsgInvalidWeek,
			expected: MsgInvalidWeek,
		},
		{
			name:     "unknown error passed through with marker",
			input:    "something odd happened",
			expected: "❌ something odd happened",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatFriendlyError(tt.input)
			if got != tt.expected {
				t.Errorf("formatFriendlyError(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
