package repository

import (
	"context"

	"github.com/osse101/StardustBot_Go/internal/domain"
)

// Monthly defines the interface for persisted monthly aggregates.
// Rows only exist for months that had fully elapsed when aggregated;
// in-progress months are always re-derived from weekly records.
type Monthly interface {
	ListByMonth(ctx context.Context, guildID string, month, year int) ([]domain.MonthlySummary, error)
	UpsertAll(ctx context.Context, summaries []domain.MonthlySummary) error
}
