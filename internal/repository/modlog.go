package repository

import (
	"context"
	"time"

	"github.com/osse101/StardustBot_Go/internal/domain"
)

// ModLog defines the interface for parsed moderation-log persistence.
// Entries are keyed by source message ID so channel re-syncs stay idempotent.
type ModLog interface {
	UpsertModAction(ctx context.Context, action *domain.ModAction) error
	ModActionExists(ctx context.Context, messageID string) (bool, error)
	LatestModAction(ctx context.Context, guildID string) (*domain.ModAction, error)
	// CountModActions counts a moderator's scored actions (BAN/WARN/MUTE/KICK)
	// in the half-open interval [start, end].
	CountModActions(ctx context.Context, guildID, userID string, start, end time.Time) (int, error)

	UpsertModmailClosure(ctx context.Context, closure *domain.ModmailClosure) error
	ModmailClosureExists(ctx context.Context, messageID string) (bool, error)
	LatestModmailClosure(ctx context.Context, guildID string) (*domain.ModmailClosure, error)
	// CountModmailClosures counts approved closures credited to the moderator.
	CountModmailClosures(ctx context.Context, guildID, userID string, start, end time.Time) (int, error)
}
