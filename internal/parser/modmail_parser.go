package parser

import (
	"regexp"
	"strings"
	"time"
)

// ModmailClosure is one thread-closure event parsed from a modmail embed.
type ModmailClosure struct {
	UserID       string
	Username     string
	ClosedByID   string
	ClosedByName string
	ClosedAt     time.Time
	RawFooter    string
}

// modmailTitleRegex matches titles like "SomeUser (`123456789`)".
var modmailTitleRegex = regexp.MustCompile("^(?P<username>.+?)\\s*\\(`(?P<userId>\\d+)`\\)$")

// modmailFooterReversedRegex runs against the reversed footer text. Footers
// end with "... Closer (123456789)" but the closer's display name may itself
// contain spaces; reversing and anchoring from the end sidesteps that.
var modmailFooterReversedRegex = regexp.MustCompile(`\)(\d+)\( (\w+)`)

// ParseModmailFooter extracts the closing moderator from a modmail footer.
func ParseModmailFooter(footer string) (id, username string, ok bool) {
	match := modmailFooterReversedRegex.FindStringSubmatch(reverse(footer))
	if match == nil {
		return "", "", false
	}
	return strings.TrimSpace(reverse(match[1])), strings.TrimSpace(reverse(match[2])), true
}

// ParseModmailEmbed parses a modmail thread-closure embed. fallbackTime is
// used when the embed carries no timestamp.
func ParseModmailEmbed(title, footer string, timestamp time.Time, fallbackTime time.Time) (ModmailClosure, bool) {
	match := modmailTitleRegex.FindStringSubmatch(title)
	if match == nil {
		return ModmailClosure{}, false
	}

	closure := ModmailClosure{
		UserID:    match[modmailTitleRegex.SubexpIndex("userId")],
		Username:  strings.TrimSpace(match[modmailTitleRegex.SubexpIndex("username")]),
		RawFooter: strings.TrimSpace(footer),
	}

	if id, name, ok := ParseModmailFooter(closure.RawFooter); ok {
		closure.ClosedByID = id
		closure.ClosedByName = name
	}

	closure.ClosedAt = timestamp
	if closure.ClosedAt.IsZero() {
		closure.ClosedAt = fallbackTime
	}
	return closure, true
}

func reverse(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}
