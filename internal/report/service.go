package report

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/StardustBot_Go/internal/domain"
	"github.com/osse101/StardustBot_Go/internal/logger"
	"github.com/osse101/StardustBot_Go/internal/repository"
	"github.com/osse101/StardustBot_Go/internal/week"
)

// Service defines the interface for monthly reporting
type Service interface {
	// AggregateMonth builds the monthly report for a guild. A month is the
	// set of ISO weeks whose Monday falls inside it. Future months are
	// rejected. Fully-elapsed months are persisted on first aggregation and
	// served from the store afterwards; the current month is always derived
	// fresh from weekly records.
	AggregateMonth(ctx context.Context, guildID string, month time.Month, year int) (*domain.MonthlyReport, error)
}

type service struct {
	weekly  repository.Weekly
	monthly repository.Monthly
	now     func() time.Time
}

// Option configures optional service behavior.
type Option func(*service)

// WithClock overrides the time source (tests).
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

// NewService creates a new report service
func NewService(weekly repository.Weekly, monthly repository.Monthly, opts ...Option) Service {
	s := &service{weekly: weekly, monthly: monthly, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) AggregateMonth(ctx context.Context, guildID string, month time.Month, year int) (*domain.MonthlyReport, error) {
	log := logger.FromContext(ctx)
	now := s.now()

	if week.MonthInFuture(month, year, now) {
		return nil, fmt.Errorf("%w: %s %d", domain.ErrFutureMonth, month, year)
	}
	elapsed := week.MonthElapsed(month, year, now)

	if elapsed {
		stored, err := s.monthly.ListByMonth(ctx, guildID, int(month), year)
		if err != nil {
			return nil, fmt.Errorf(ErrMsgListMonthlyFailed, err)
		}
		if len(stored) > 0 {
			log.Debug(LogMsgServedFromStore, "guild_id", guildID, "month", int(month), "year", year)
			return reportFromSummaries(guildID, month, year, stored), nil
		}
	}

	refs := week.WeeksInMonth(month, year)
	records, err := s.weekly.ListAllByWeeks(ctx, guildID, refs)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListWeeklyFailed, err)
	}

	report := newReport(guildID, month, year)
	for i := range records {
		record := &records[i]
		summary, ok := report.PerModerator[record.UserID]
		if !ok {
			summary = &domain.MonthlySummary{
				GuildID: guildID,
				UserID:  record.UserID,
				Month:   int(month),
				Year:    year,
			}
			report.PerModerator[record.UserID] = summary
		}
		summary.Accumulate(record)
		report.Totals.Accumulate(record)
	}

	if elapsed {
		summaries := make([]domain.MonthlySummary, 0, len(report.PerModerator))
		for _, summary := range report.PerModerator {
			summaries = append(summaries, *summary)
		}
		if err := s.monthly.UpsertAll(ctx, summaries); err != nil {
			return nil, fmt.Errorf(ErrMsgPersistMonthlyFailed, err)
		}
		report.Persisted = true
		log.Info(LogMsgMonthPersisted, "guild_id", guildID, "month", int(month), "year", year, "moderators", len(summaries))
	}

	return report, nil
}

func newReport(guildID string, month time.Month, year int) *domain.MonthlyReport {
	return &domain.MonthlyReport{
		GuildID:      guildID,
		Month:        int(month),
		Year:         year,
		PerModerator: make(map[string]*domain.MonthlySummary),
		Totals: domain.MonthlySummary{
			GuildID: guildID,
			Month:   int(month),
			Year:    year,
		},
	}
}

func reportFromSummaries(guildID string, month time.Month, year int, summaries []domain.MonthlySummary) *domain.MonthlyReport {
	report := newReport(guildID, month, year)
	report.Persisted = true
	for i := range summaries {
		summary := summaries[i]
		report.PerModerator[summary.UserID] = &summary

		report.Totals.Metrics.Add(summary.Metrics)
		report.Totals.RawPoints += summary.RawPoints
		report.Totals.FinalizedPoints += summary.FinalizedPoints
		report.Totals.WastedPoints += summary.WastedPoints
		report.Totals.WeeksCounted += summary.WeeksCounted
	}
	return report
}
