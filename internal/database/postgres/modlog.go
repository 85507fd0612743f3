package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/StardustBot_Go/internal/domain"
	"github.com/osse101/StardustBot_Go/internal/repository"
)

// ModLogRepository implements the mod-log repository for PostgreSQL
type ModLogRepository struct {
	pool *pgxpool.Pool
}

// NewModLogRepository creates a new ModLogRepository
func NewModLogRepository(pool *pgxpool.Pool) repository.ModLog {
	return &ModLogRepository{pool: pool}
}

func (r *ModLogRepository) UpsertModAction(ctx context.Context, action *domain.ModAction) error {
	_, err := r.pool.Exec(ctx, SQLUpsertModAction,
		action.MessageID, action.ChannelID, action.GuildID,
		action.CaseID, string(action.Action),
		action.PerformedByUsername, action.ModeratorID, action.PerformedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert mod action: %w", err)
	}
	return nil
}

func (r *ModLogRepository) ModActionExists(ctx context.Context, messageID string) (bool, error) {
	var exists bool
	if err := r.pool.QueryRow(ctx, SQLModActionExists, messageID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check mod action: %w", err)
	}
	return exists, nil
}

func (r *ModLogRepository) LatestModAction(ctx context.Context, guildID string) (*domain.ModAction, error) {
	var action domain.ModAction
	var actionType string

	err := r.pool.QueryRow(ctx, SQLLatestModAction, guildID).Scan(
		&action.MessageID, &action.ChannelID, &action.GuildID,
		&action.CaseID, &actionType,
		&action.PerformedByUsername, &action.ModeratorID, &action.PerformedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest mod action: %w", err)
	}

	action.Action = domain.ModActionType(actionType)
	return &action, nil
}

func (r *ModLogRepository) CountModActions(ctx context.Context, guildID, userID string, start, end time.Time) (int, error) {
	counted := make([]string, len(domain.CountedModActions))
	for i, actionType := range domain.CountedModActions {
		counted[i] = string(actionType)
	}

	var count int
	err := r.pool.QueryRow(ctx, SQLCountModActions, guildID, userID, start, end, counted).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count mod actions: %w", err)
	}
	return count, nil
}

func (r *ModLogRepository) UpsertModmailClosure(ctx context.Context, closure *domain.ModmailClosure) error {
	_, err := r.pool.Exec(ctx, SQLUpsertModmailClosure,
		closure.MessageID, closure.ChannelID, closure.GuildID, closure.UserID,
		closure.ClosedByID, closure.ClosedByName, closure.Approved, closure.ClosedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert modmail closure: %w", err)
	}
	return nil
}

func (r *ModLogRepository) ModmailClosureExists(ctx context.Context, messageID string) (bool, error) {
	var exists bool
	if err := r.pool.QueryRow(ctx, SQLModmailClosureExists, messageID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check modmail closure: %w", err)
	}
	return exists, nil
}

func (r *ModLogRepository) LatestModmailClosure(ctx context.Context, guildID string) (*domain.ModmailClosure, error) {
	var closure domain.ModmailClosure

	err := r.pool.QueryRow(ctx, SQLLatestModmailClosure, guildID).Scan(
		&closure.MessageID, &closure.ChannelID, &closure.GuildID, &closure.UserID,
		&closure.ClosedByID, &closure.ClosedByName, &closure.Approved, &closure.ClosedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest modmail closure: %w", err)
	}
	return &closure, nil
}

func (r *ModLogRepository) CountModmailClosures(ctx context.Context, guildID, userID string, start, end time.Time) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, SQLCountModmailClosures, guildID, userID, start, end).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count modmail closures: %w", err)
	}
	return count, nil
}
