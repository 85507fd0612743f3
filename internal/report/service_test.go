package report

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/StardustBot_Go/internal/domain"
	"github.com/osse101/StardustBot_Go/internal/week"
)

// mockWeeklyRepository implements repository.Weekly for testing
type mockWeeklyRepository struct {
	records      map[string]*domain.WeeklyPointsRecord
	queriedWeeks []domain.WeekRef
}

func newMockWeeklyRepository() *mockWeeklyRepository {
	return &mockWeeklyRepository{records: make(map[string]*domain.WeeklyPointsRecord)}
}

func key(guildID, userID string, weekNum, year int) string {
	return fmt.Sprintf("%s:%s:%d:%d", guildID, userID, weekNum, year)
}

func (m *mockWeeklyRepository) add(record domain.WeeklyPointsRecord) {
	m.records[key(record.GuildID, record.UserID, record.Week, record.Year)] = &record
}

func (m *mockWeeklyRepository) Upsert(ctx context.Context, record *domain.WeeklyPointsRecord) (*domain.WeeklyPointsRecord, error) {
	m.add(*record)
	return record, nil
}

func (m *mockWeeklyRepository) Get(ctx context.Context, guildID, userID string, weekNum, year int) (*domain.WeeklyPointsRecord, error) {
	record, ok := m.records[key(guildID, userID, weekNum, year)]
	if !ok {
		return nil, nil
	}
	return record, nil
}

func (m *mockWeeklyRepository) ListByWeek(ctx context.Context, guildID string, weekNum, year int) ([]domain.WeeklyPointsRecord, error) {
	var out []domain.WeeklyPointsRecord
	for _, record := range m.records {
		if record.GuildID == guildID && record.Week == weekNum && record.Year == year {
			out = append(out, *record)
		}
	}
	return out, nil
}

func (m *mockWeeklyRepository) ListByWeeks(ctx context.Context, guildID, userID string, weeks []domain.WeekRef) ([]domain.WeeklyPointsRecord, error) {
	var out []domain.WeeklyPointsRecord
	for _, ref := range weeks {
		if record, ok := m.records[key(guildID, userID, ref.Week, ref.Year)]; ok {
			out = append(out, *record)
		}
	}
	return out, nil
}

func (m *mockWeeklyRepository) ListAllByWeeks(ctx context.Context, guildID string, weeks []domain.WeekRef) ([]domain.WeeklyPointsRecord, error) {
	m.queriedWeeks = append(m.queriedWeeks[:0], weeks...)
	var out []domain.WeeklyPointsRecord
	for _, ref := range weeks {
		records, _ := m.ListByWeek(ctx, guildID, ref.Week, ref.Year)
		out = append(out, records...)
	}
	return out, nil
}

func (m *mockWeeklyRepository) CountByWeek(ctx context.Context, guildID string, weekNum, year int) (int, error) {
	records, _ := m.ListByWeek(ctx, guildID, weekNum, year)
	return len(records), nil
}

func (m *mockWeeklyRepository) CountByUser(ctx context.Context, guildID, userID string) (int, error) {
	count := 0
	for _, record := range m.records {
		if record.GuildID == guildID && record.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (m *mockWeeklyRepository) SetOverride(ctx context.Context, guildID, userID string, weekNum, year int, override domain.Override) (*domain.WeeklyPointsRecord, error) {
	record, ok := m.records[key(guildID, userID, weekNum, year)]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	record.Override = override
	return record, nil
}

func (m *mockWeeklyRepository) DeleteWeek(ctx context.Context, guildID string, weekNum, year int) (int64, error) {
	var deleted int64
	for k, record := range m.records {
		if record.GuildID == guildID && record.Week == weekNum && record.Year == year {
			delete(m.records, k)
			deleted++
		}
	}
	return deleted, nil
}

// mockMonthlyRepository implements repository.Monthly for testing
type mockMonthlyRepository struct {
	summaries   map[string][]domain.MonthlySummary
	upsertCalls int
}

func newMockMonthlyRepository() *mockMonthlyRepository {
	return &mockMonthlyRepository{summaries: make(map[string][]domain.MonthlySummary)}
}

func monthKey(guildID string, month, year int) string {
	return fmt.Sprintf("%s:%d:%d", guildID, month, year)
}

func (m *mockMonthlyRepository) ListByMonth(ctx context.Context, guildID string, month, year int) ([]domain.MonthlySummary, error) {
	return m.summaries[monthKey(guildID, month, year)], nil
}

func (m *mockMonthlyRepository) UpsertAll(ctx context.Context, summaries []domain.MonthlySummary) error {
	m.upsertCalls++
	for _, summary := range summaries {
		k := monthKey(summary.GuildID, summary.Month, summary.Year)
		m.summaries[k] = append(m.summaries[k], summary)
	}
	return nil
}

const testGuild = "guild-1"

func weeklyRecord(userID string, weekNum, year int, raw, finalized float64) domain.WeeklyPointsRecord {
	return domain.WeeklyPointsRecord{
		GuildID:              testGuild,
		UserID:               userID,
		Week:                 weekNum,
		Year:                 year,
		Metrics:              domain.RawMetrics{ModActionsTaken: int(raw / 10)},
		TotalRawPoints:       raw,
		TotalFinalizedPoints: finalized,
		TotalWastedPoints:    raw - finalized,
	}
}

// September 15 2026: August has fully elapsed, September is in progress.
var testNow = time.Date(2026, time.September, 15, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (Service, *mockWeeklyRepository, *mockMonthlyRepository) {
	t.Helper()
	weekly := newMockWeeklyRepository()
	monthly := newMockMonthlyRepository()
	svc := NewService(weekly, monthly, WithClock(func() time.Time { return testNow }))
	return svc, weekly, monthly
}

func TestAggregateMonthFutureRejected(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.AggregateMonth(context.Background(), testGuild, time.October, 2026)
	assert.ErrorIs(t, err, domain.ErrFutureMonth)

	_, err = svc.AggregateMonth(context.Background(), testGuild, time.January, 2027)
	assert.ErrorIs(t, err, domain.ErrFutureMonth)
}

func TestAggregateMonthUsesMondayRule(t *testing.T) {
	ctx := context.Background()
	svc, weekly, _ := newTestService(t)

	// August 2026 owns ISO weeks 32 through 36 (their Mondays are Aug 3,
	// 10, 17, 24, 31). Week 31's Monday is July 27, so it belongs to July.
	weekly.add(weeklyRecord("mod-1", 31, 2026, 100, 80))
	weekly.add(weeklyRecord("mod-1", 32, 2026, 100, 80))
	weekly.add(weeklyRecord("mod-1", 36, 2026, 50, 40))

	report, err := svc.AggregateMonth(ctx, testGuild, time.August, 2026)
	require.NoError(t, err)

	summary := report.PerModerator["mod-1"]
	require.NotNil(t, summary)
	assert.Equal(t, 2, summary.WeeksCounted)
	assert.InDelta(t, 150.0, summary.RawPoints, 0.001)
	assert.InDelta(t, 120.0, summary.FinalizedPoints, 0.001)
	assert.InDelta(t, 120.0, report.Totals.FinalizedPoints, 0.001)

	// The store is queried with exactly the month's week set.
	assert.Equal(t, week.WeeksInMonth(time.August, 2026), weekly.queriedWeeks)
}

func TestAggregateMonthUsesOverriddenPoints(t *testing.T) {
	ctx := context.Background()
	svc, weekly, _ := newTestService(t)

	record := weeklyRecord("mod-1", 33, 2026, 100, 80)
	overridden := 200.0
	record.Override = domain.Override{Active: true, FinalizedPoints: &overridden}
	weekly.add(record)

	report, err := svc.AggregateMonth(ctx, testGuild, time.August, 2026)
	require.NoError(t, err)

	summary := report.PerModerator["mod-1"]
	require.NotNil(t, summary)
	assert.InDelta(t, 200.0, summary.FinalizedPoints, 0.001)
	// Waste is recomputed against the effective points.
	assert.InDelta(t, -100.0, summary.WastedPoints, 0.001)
}

func TestAggregateElapsedMonthPersistsOnce(t *testing.T) {
	ctx := context.Background()
	svc, weekly, monthly := newTestService(t)
	weekly.add(weeklyRecord("mod-1", 33, 2026, 100, 80))

	first, err := svc.AggregateMonth(ctx, testGuild, time.August, 2026)
	require.NoError(t, err)
	assert.True(t, first.Persisted)
	assert.Equal(t, 1, monthly.upsertCalls)

	// Second run is served from the store, even if the weekly records have
	// since changed.
	weekly.add(weeklyRecord("mod-2", 34, 2026, 500, 400))

	second, err := svc.AggregateMonth(ctx, testGuild, time.August, 2026)
	require.NoError(t, err)
	assert.True(t, second.Persisted)
	assert.Equal(t, 1, monthly.upsertCalls)
	assert.Len(t, second.PerModerator, 1)
	assert.InDelta(t, 80.0, second.Totals.FinalizedPoints, 0.001)
}

func TestAggregateCurrentMonthNeverPersisted(t *testing.T) {
	ctx := context.Background()
	svc, weekly, monthly := newTestService(t)

	// Week 37's Monday is September 7 2026.
	weekly.add(weeklyRecord("mod-1", 37, 2026, 60, 50))

	report, err := svc.AggregateMonth(ctx, testGuild, time.September, 2026)
	require.NoError(t, err)
	assert.False(t, report.Persisted)
	assert.Zero(t, monthly.upsertCalls)
	assert.InDelta(t, 50.0, report.Totals.FinalizedPoints, 0.001)

	// Repeat aggregation re-derives from weekly records.
	weekly.add(weeklyRecord("mod-2", 38, 2026, 30, 25))
	report, err = svc.AggregateMonth(ctx, testGuild, time.September, 2026)
	require.NoError(t, err)
	assert.Len(t, report.PerModerator, 2)
}

func TestAggregateEmptyMonth(t *testing.T) {
	svc, _, _ := newTestService(t)

	report, err := svc.AggregateMonth(context.Background(), testGuild, time.February, 2026)
	require.NoError(t, err)
	assert.Empty(t, report.PerModerator)
	assert.Zero(t, report.Totals.WeeksCounted)
}
