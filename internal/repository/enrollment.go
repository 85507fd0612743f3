package repository

import (
	"context"

	"github.com/osse101/StardustBot_Go/internal/domain"
)

// Enrollment defines the interface for program enrollment persistence
type Enrollment interface {
	// Get returns nil, nil when the moderator has never been enrolled.
	Get(ctx context.Context, guildID, userID string) (*domain.Enrollment, error)
	Upsert(ctx context.Context, enrollment *domain.Enrollment) error
	Delete(ctx context.Context, guildID, userID string) error
	ListActive(ctx context.Context, guildID string) ([]domain.Enrollment, error)
	List(ctx context.Context, guildID string) ([]domain.Enrollment, error)
}
