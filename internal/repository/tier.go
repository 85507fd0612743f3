package repository

import (
	"context"

	"github.com/osse101/StardustBot_Go/internal/domain"
)

// Tier defines the interface for moderator tier status persistence
type Tier interface {
	// Get returns nil, nil when no status exists for the moderator.
	Get(ctx context.Context, guildID, userID string) (*domain.TierStatus, error)
	SetTier(ctx context.Context, guildID, userID string, tierLevel int) error
	// StampEvaluated upserts the status row, creating it at defaultTier if
	// absent, and updates only the last-evaluated markers on an existing row.
	StampEvaluated(ctx context.Context, guildID, userID string, week, year, defaultTier int) (*domain.TierStatus, error)
	List(ctx context.Context, guildID string) ([]domain.TierStatus, error)
}
