package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/StardustBot_Go/internal/domain"
	"github.com/osse101/StardustBot_Go/internal/repository"
)

// TierRepository implements the tier status repository for PostgreSQL
type TierRepository struct {
	pool *pgxpool.Pool
}

// NewTierRepository creates a new TierRepository
func NewTierRepository(pool *pgxpool.Pool) repository.Tier {
	return &TierRepository{pool: pool}
}

func (r *TierRepository) Get(ctx context.Context, guildID, userID string) (*domain.TierStatus, error) {
	row := r.pool.QueryRow(ctx, SQLGetTierStatus, guildID, userID)

	status, err := scanTierStatus(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tier status: %w", err)
	}
	return status, nil
}

func (r *TierRepository) SetTier(ctx context.Context, guildID, userID string, tierLevel int) error {
	if _, err := r.pool.Exec(ctx, SQLSetTier, guildID, userID, tierLevel); err != nil {
		return fmt.Errorf("failed to set tier: %w", err)
	}
	return nil
}

func (r *TierRepository) StampEvaluated(ctx context.Context, guildID, userID string, week, year, defaultTier int) (*domain.TierStatus, error) {
	row := r.pool.QueryRow(ctx, SQLStampTierEvaluated, guildID, userID, defaultTier, week, year)

	status, err := scanTierStatus(row)
	if err != nil {
		return nil, fmt.Errorf("failed to stamp tier evaluation: %w", err)
	}
	return status, nil
}

func (r *TierRepository) List(ctx context.Context, guildID string) ([]domain.TierStatus, error) {
	rows, err := r.pool.Query(ctx, SQLListTierStatuses, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tier statuses: %w", err)
	}
	defer rows.Close()

	var statuses []domain.TierStatus
	for rows.Next() {
		status, err := scanTierStatus(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tier status: %w", err)
		}
		statuses = append(statuses, *status)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tier statuses: %w", err)
	}
	return statuses, nil
}

func scanTierStatus(row pgx.Row) (*domain.TierStatus, error) {
	var status domain.TierStatus
	err := row.Scan(
		&status.GuildID, &status.UserID, &status.CurrentTier,
		&status.LastEvaluatedWeek, &status.LastEvaluatedYear, &status.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &status, nil
}
