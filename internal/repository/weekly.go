package repository

import (
	"context"

	"github.com/osse101/StardustBot_Go/internal/domain"
)

// Weekly defines the interface for weekly points record persistence.
//
// Upsert must be atomic on the (guild, user, week, year) key and must leave
// any existing override sub-record untouched; two concurrent recomputations
// may race freely without clobbering an in-flight override write.
type Weekly interface {
	Upsert(ctx context.Context, record *domain.WeeklyPointsRecord) (*domain.WeeklyPointsRecord, error)
	Get(ctx context.Context, guildID, userID string, week, year int) (*domain.WeeklyPointsRecord, error)
	ListByWeek(ctx context.Context, guildID string, week, year int) ([]domain.WeeklyPointsRecord, error)
	ListByWeeks(ctx context.Context, guildID, userID string, weeks []domain.WeekRef) ([]domain.WeeklyPointsRecord, error)
	ListAllByWeeks(ctx context.Context, guildID string, weeks []domain.WeekRef) ([]domain.WeeklyPointsRecord, error)
	CountByWeek(ctx context.Context, guildID string, week, year int) (int, error)
	CountByUser(ctx context.Context, guildID, userID string) (int, error)
	SetOverride(ctx context.Context, guildID, userID string, week, year int, override domain.Override) (*domain.WeeklyPointsRecord, error)
	DeleteWeek(ctx context.Context, guildID string, week, year int) (int64, error)
}
