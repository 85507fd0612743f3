// Package parser extracts moderation events from the embeds the mod-log
// bots post. The formats are not an API, so everything here is best-effort:
// an unrecognized embed yields ok=false, never an error.
package parser

import (
	"regexp"
	"strings"
	"time"

	"github.com/osse101/StardustBot_Go/internal/domain"
)

// CaseAction is one moderation action parsed from a case embed title.
type CaseAction struct {
	CaseID              string
	Action              domain.ModActionType
	PerformedByUsername string
	PerformedAt         time.Time
}

// caseTitleRegex matches titles like "Ban `a1B2c3`", "Case `xyz` updated".
var caseTitleRegex = regexp.MustCompile(`(?i)^(?P<actionWord>Case|Ban|Unban|Warn|Mute|Kick)\s+` + "`" + `(?P<caseId>[A-Za-z0-9]+)` + "`" + `(?:\s+updated)?$`)

// footerByRegex pulls the username out of "by Username" style footers.
var footerByRegex = regexp.MustCompile(`(?i)by\s+(.+)`)

// ParseCaseEmbed parses a moderation-case embed. fallbackTime is used when
// the embed carries no timestamp (typically the message timestamp).
func ParseCaseEmbed(title, footer string, timestamp time.Time, fallbackTime time.Time) (CaseAction, bool) {
	match := caseTitleRegex.FindStringSubmatch(title)
	if match == nil {
		return CaseAction{}, false
	}

	action := domain.ModActionUpdate
	switch strings.ToLower(match[caseTitleRegex.SubexpIndex("actionWord")]) {
	case "ban":
		action = domain.ModActionBan
	case "unban":
		action = domain.ModActionUnban
	case "warn":
		action = domain.ModActionWarn
	case "mute":
		action = domain.ModActionMute
	case "kick":
		action = domain.ModActionKick
	}

	performedBy := strings.TrimSpace(footer)
	if byMatch := footerByRegex.FindStringSubmatch(performedBy); byMatch != nil {
		performedBy = strings.TrimSpace(byMatch[1])
	}

	performedAt := timestamp
	if performedAt.IsZero() {
		performedAt = fallbackTime
	}

	return CaseAction{
		CaseID:              match[caseTitleRegex.SubexpIndex("caseId")],
		Action:              action,
		PerformedByUsername: performedBy,
		PerformedAt:         performedAt,
	}, true
}
