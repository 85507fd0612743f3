package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/StardustBot_Go/internal/database"
	"github.com/osse101/StardustBot_Go/internal/domain"
	"github.com/osse101/StardustBot_Go/internal/repository"
)

// MonthlyRepository implements the monthly summary repository for PostgreSQL
type MonthlyRepository struct {
	pool *pgxpool.Pool
}

// NewMonthlyRepository creates a new MonthlyRepository
func NewMonthlyRepository(pool *pgxpool.Pool) repository.Monthly {
	return &MonthlyRepository{pool: pool}
}

func (r *MonthlyRepository) ListByMonth(ctx context.Context, guildID string, month, year int) ([]domain.MonthlySummary, error) {
	rows, err := r.pool.Query(ctx, SQLListMonthlyByMonth, guildID, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list monthly summaries: %w", err)
	}
	defer rows.Close()

	var summaries []domain.MonthlySummary
	for rows.Next() {
		var summary domain.MonthlySummary
		err := rows.Scan(
			&summary.GuildID, &summary.UserID, &summary.Month, &summary.Year,
			&summary.Metrics.ModChatMessages, &summary.Metrics.PublicChatMessages,
			&summary.Metrics.VoiceChatMinutes, &summary.Metrics.ModActionsTaken,
			&summary.Metrics.CasesHandled,
			&summary.RawPoints, &summary.FinalizedPoints,
			&summary.WastedPoints, &summary.WeeksCounted,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan monthly summary: %w", err)
		}
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read monthly summaries: %w", err)
	}
	return summaries, nil
}

// UpsertAll persists a batch of summaries in one transaction so a report is
// stored whole or not at all.
func (r *MonthlyRepository) UpsertAll(ctx context.Context, summaries []domain.MonthlySummary) error {
	if len(summaries) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", database.ErrMsgFailedToBeginTransaction, err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	batch := &pgx.Batch{}
	for _, summary := range summaries {
		batch.Queue(SQLUpsertMonthlySummary,
			summary.GuildID, summary.UserID, summary.Month, summary.Year,
			summary.Metrics.ModChatMessages, summary.Metrics.PublicChatMessages,
			summary.Metrics.VoiceChatMinutes, summary.Metrics.ModActionsTaken,
			summary.Metrics.CasesHandled,
			summary.RawPoints, summary.FinalizedPoints,
			summary.WastedPoints, summary.WeeksCounted,
		)
	}

	result := tx.SendBatch(ctx, batch)
	for range summaries {
		if _, err := result.Exec(); err != nil {
			_ = result.Close()
			return fmt.Errorf("failed to upsert monthly summary: %w", err)
		}
	}
	if err := result.Close(); err != nil {
		return fmt.Errorf("failed to close batch: %w", err)
	}

	return tx.Commit(ctx)
}
