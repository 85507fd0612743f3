package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/StardustBot_Go/internal/domain"
	"github.com/osse101/StardustBot_Go/internal/repository"
)

// WeeklyRepository implements the weekly points repository for PostgreSQL
type WeeklyRepository struct {
	pool *pgxpool.Pool
}

// NewWeeklyRepository creates a new WeeklyRepository
func NewWeeklyRepository(pool *pgxpool.Pool) repository.Weekly {
	return &WeeklyRepository{pool: pool}
}

func (r *WeeklyRepository) Upsert(ctx context.Context, record *domain.WeeklyPointsRecord) (*domain.WeeklyPointsRecord, error) {
	detailsJSON, err := json.Marshal(record.Details)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal details: %w", err)
	}

	row := r.pool.QueryRow(ctx, SQLUpsertWeeklyRecord,
		record.GuildID, record.UserID, record.Week, record.Year,
		record.Metrics.ModChatMessages, record.Metrics.PublicChatMessages,
		record.Metrics.VoiceChatMinutes, record.Metrics.ModActionsTaken,
		record.Metrics.CasesHandled,
		record.MaxPossiblePoints, record.TotalRawPoints,
		record.TotalFinalizedPoints, record.TotalWastedPoints,
		detailsJSON, record.TierAfterWeek,
	)

	stored, err := scanWeeklyRecord(row)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert weekly record: %w", err)
	}
	return stored, nil
}

func (r *WeeklyRepository) Get(ctx context.Context, guildID, userID string, week, year int) (*domain.WeeklyPointsRecord, error) {
	row := r.pool.QueryRow(ctx, SQLGetWeeklyRecord, guildID, userID, week, year)

	record, err := scanWeeklyRecord(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get weekly record: %w", err)
	}
	return record, nil
}

func (r *WeeklyRepository) ListByWeek(ctx context.Context, guildID string, week, year int) ([]domain.WeeklyPointsRecord, error) {
	rows, err := r.pool.Query(ctx, SQLListWeeklyByWeek, guildID, week, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list weekly records: %w", err)
	}
	defer rows.Close()

	return collectWeeklyRecords(rows)
}

func (r *WeeklyRepository) ListByWeeks(ctx context.Context, guildID, userID string, weeks []domain.WeekRef) ([]domain.WeeklyPointsRecord, error) {
	weekNums, years := splitWeekRefs(weeks)

	rows, err := r.pool.Query(ctx, SQLListWeeklyByWeeks, guildID, userID, weekNums, years)
	if err != nil {
		return nil, fmt.Errorf("failed to list weekly records: %w", err)
	}
	defer rows.Close()

	return collectWeeklyRecords(rows)
}

func (r *WeeklyRepository) ListAllByWeeks(ctx context.Context, guildID string, weeks []domain.WeekRef) ([]domain.WeeklyPointsRecord, error) {
	weekNums, years := splitWeekRefs(weeks)

	rows, err := r.pool.Query(ctx, SQLListAllWeeklyByWeeks, guildID, weekNums, years)
	if err != nil {
		return nil, fmt.Errorf("failed to list weekly records: %w", err)
	}
	defer rows.Close()

	return collectWeeklyRecords(rows)
}

func (r *WeeklyRepository) CountByWeek(ctx context.Context, guildID string, week, year int) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, SQLCountWeeklyByWeek, guildID, week, year).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count weekly records: %w", err)
	}
	return count, nil
}

func (r *WeeklyRepository) CountByUser(ctx context.Context, guildID, userID string) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, SQLCountWeeklyByUser, guildID, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count weekly records: %w", err)
	}
	return count, nil
}

func (r *WeeklyRepository) SetOverride(ctx context.Context, guildID, userID string, week, year int, override domain.Override) (*domain.WeeklyPointsRecord, error) {
	var overrideDetails []byte
	if override.Details != nil {
		var err error
		overrideDetails, err = json.Marshal(override.Details)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal override details: %w", err)
		}
	}

	var appliedAt any
	if !override.AppliedAt.IsZero() {
		appliedAt = override.AppliedAt
	}

	row := r.pool.QueryRow(ctx, SQLSetWeeklyOverride,
		guildID, userID, week, year,
		override.Active, override.FinalizedPoints, override.RawPoints,
		overrideDetails, override.Reason, override.AppliedByID, appliedAt,
	)

	record, err := scanWeeklyRecord(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to set override: %w", err)
	}
	return record, nil
}

func (r *WeeklyRepository) DeleteWeek(ctx context.Context, guildID string, week, year int) (int64, error) {
	tag, err := r.pool.Exec(ctx, SQLDeleteWeeklyByWeek, guildID, week, year)
	if err != nil {
		return 0, fmt.Errorf("failed to delete weekly records: %w", err)
	}
	return tag.RowsAffected(), nil
}

// scanWeeklyRecord reads one full weekly row, including the override
// sub-record.
func scanWeeklyRecord(row pgx.Row) (*domain.WeeklyPointsRecord, error) {
	var record domain.WeeklyPointsRecord
	var detailsJSON []byte
	var overrideDetailsJSON []byte
	var overrideAppliedAt *time.Time

	err := row.Scan(
		&record.GuildID, &record.UserID, &record.Week, &record.Year,
		&record.Metrics.ModChatMessages, &record.Metrics.PublicChatMessages,
		&record.Metrics.VoiceChatMinutes, &record.Metrics.ModActionsTaken,
		&record.Metrics.CasesHandled,
		&record.MaxPossiblePoints, &record.TotalRawPoints,
		&record.TotalFinalizedPoints, &record.TotalWastedPoints,
		&detailsJSON, &record.TierAfterWeek,
		&record.Override.Active, &record.Override.FinalizedPoints,
		&record.Override.RawPoints, &overrideDetailsJSON,
		&record.Override.Reason, &record.Override.AppliedByID, &overrideAppliedAt,
		&record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(detailsJSON) > 0 {
		if err := json.Unmarshal(detailsJSON, &record.Details); err != nil {
			return nil, fmt.Errorf("failed to unmarshal details: %w", err)
		}
	}
	if len(overrideDetailsJSON) > 0 {
		if err := json.Unmarshal(overrideDetailsJSON, &record.Override.Details); err != nil {
			return nil, fmt.Errorf("failed to unmarshal override details: %w", err)
		}
	}
	if overrideAppliedAt != nil {
		record.Override.AppliedAt = *overrideAppliedAt
	}

	return &record, nil
}

func collectWeeklyRecords(rows pgx.Rows) ([]domain.WeeklyPointsRecord, error) {
	var records []domain.WeeklyPointsRecord
	for rows.Next() {
		record, err := scanWeeklyRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan weekly record: %w", err)
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read weekly records: %w", err)
	}
	return records, nil
}

// splitWeekRefs converts week refs into parallel arrays for unnest joins.
func splitWeekRefs(weeks []domain.WeekRef) ([]int32, []int32) {
	weekNums := make([]int32, len(weeks))
	years := make([]int32, len(weeks))
	for i, ref := range weeks {
		weekNums[i] = int32(ref.Week)
		years[i] = int32(ref.Year)
	}
	return weekNums, years
}
