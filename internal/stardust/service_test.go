package stardust

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/StardustBot_Go/internal/domain"
	"github.com/osse101/StardustBot_Go/internal/tier"
	"github.com/osse101/StardustBot_Go/internal/week"
)

// mockWeeklyRepository implements repository.Weekly for testing
type mockWeeklyRepository struct {
	records     map[string]*domain.WeeklyPointsRecord
	upsertError error
}

func newMockWeeklyRepository() *mockWeeklyRepository {
	return &mockWeeklyRepository{records: make(map[string]*domain.WeeklyPointsRecord)}
}

func recordKey(guildID, userID string, weekNum, year int) string {
	return fmt.Sprintf("%s:%s:%d:%d", guildID, userID, weekNum, year)
}

func (m *mockWeeklyRepository) Upsert(ctx context.Context, record *domain.WeeklyPointsRecord) (*domain.WeeklyPointsRecord, error) {
	if m.upsertError != nil {
		return nil, m.upsertError
	}
	key := recordKey(record.GuildID, record.UserID, record.Week, record.Year)
	stored := *record
	if existing, ok := m.records[key]; ok {
		// Override columns are never touched by a recomputation.
		stored.Override = existing.Override
		stored.CreatedAt = existing.CreatedAt
	} else {
		stored.CreatedAt = time.Now()
	}
	stored.UpdatedAt = time.Now()
	m.records[key] = &stored
	copied := stored
	return &copied, nil
}

func (m *mockWeeklyRepository) Get(ctx context.Context, guildID, userID string, weekNum, year int) (*domain.WeeklyPointsRecord, error) {
	record, ok := m.records[recordKey(guildID, userID, weekNum, year)]
	if !ok {
		return nil, nil
	}
	copied := *record
	return &copied, nil
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
		if record, ok := m.records[recordKey(guildID, userID, ref.Week, ref.Year)]; ok {
			out = append(out, *record)
		}
	}
	return out, nil
}

func (m *mockWeeklyRepository) ListAllByWeeks(ctx context.Context, guildID string, weeks []domain.WeekRef) ([]domain.WeeklyPointsRecord, error) {
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
	record, ok := m.records[recordKey(guildID, userID, weekNum, year)]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	record.Override = override
	copied := *record
	return &copied, nil
}

func (m *mockWeeklyRepository) DeleteWeek(ctx context.Context, guildID string, weekNum, year int) (int64, error) {
	var deleted int64
	for key, record := range m.records {
		if record.GuildID == guildID && record.Week == weekNum && record.Year == year {
			delete(m.records, key)
			deleted++
		}
	}
	return deleted, nil
}

// mockTierRepository implements repository.Tier for testing
type mockTierRepository struct {
	statuses map[string]*domain.TierStatus
}

func newMockTierRepository() *mockTierRepository {
	return &mockTierRepository{statuses: make(map[string]*domain.TierStatus)}
}

func (m *mockTierRepository) Get(ctx context.Context, guildID, userID string) (*domain.TierStatus, error) {
	status, ok := m.statuses[guildID+":"+userID]
	if !ok {
		return nil, nil
	}
	copied := *status
	return &copied, nil
}

func (m *mockTierRepository) SetTier(ctx context.Context, guildID, userID string, tierLevel int) error {
	key := guildID + ":" + userID
	status, ok := m.statuses[key]
	if !ok {
		status = &domain.TierStatus{GuildID: guildID, UserID: userID}
		m.statuses[key] = status
	}
	status.CurrentTier = tierLevel
	status.UpdatedAt = time.Now()
	return nil
}

func (m *mockTierRepository) StampEvaluated(ctx context.Context, guildID, userID string, weekNum, year, defaultTier int) (*domain.TierStatus, error) {
	key := guildID + ":" + userID
	status, ok := m.statuses[key]
	if !ok {
		status = &domain.TierStatus{GuildID: guildID, UserID: userID, CurrentTier: defaultTier}
		m.statuses[key] = status
	}
	status.LastEvaluatedWeek = weekNum
	status.LastEvaluatedYear = year
	status.UpdatedAt = time.Now()
	copied := *status
	return &copied, nil
}

func (m *mockTierRepository) List(ctx context.Context, guildID string) ([]domain.TierStatus, error) {
	var out []domain.TierStatus
	for _, status := range m.statuses {
		if status.GuildID == guildID {
			out = append(out, *status)
		}
	}
	return out, nil
}

// mockEnrollmentRepository implements repository.Enrollment for testing
type mockEnrollmentRepository struct {
	enrollments map[string]*domain.Enrollment
}

func newMockEnrollmentRepository() *mockEnrollmentRepository {
	return &mockEnrollmentRepository{enrollments: make(map[string]*domain.Enrollment)}
}

func (m *mockEnrollmentRepository) Get(ctx context.Context, guildID, userID string) (*domain.Enrollment, error) {
	enrollment, ok := m.enrollments[guildID+":"+userID]
	if !ok {
		return nil, nil
	}
	copied := *enrollment
	return &copied, nil
}

func (m *mockEnrollmentRepository) Upsert(ctx context.Context, enrollment *domain.Enrollment) error {
	copied := *enrollment
	m.enrollments[enrollment.GuildID+":"+enrollment.UserID] = &copied
	return nil
}

func (m *mockEnrollmentRepository) Delete(ctx context.Context, guildID, userID string) error {
	delete(m.enrollments, guildID+":"+userID)
	return nil
}

func (m *mockEnrollmentRepository) ListActive(ctx context.Context, guildID string) ([]domain.Enrollment, error) {
	var out []domain.Enrollment
	for _, enrollment := range m.enrollments {
		if enrollment.GuildID == guildID && enrollment.Active {
			out = append(out, *enrollment)
		}
	}
	return out, nil
}

func (m *mockEnrollmentRepository) List(ctx context.Context, guildID string) ([]domain.Enrollment, error) {
	var out []domain.Enrollment
	for _, enrollment := range m.enrollments {
		if enrollment.GuildID == guildID {
			out = append(out, *enrollment)
		}
	}
	return out, nil
}

// mockMetricsSource implements MetricsSource for testing
type mockMetricsSource struct {
	metrics    map[string]domain.RawMetrics
	fetchError error
	calls      int
}

func newMockMetricsSource() *mockMetricsSource {
	return &mockMetricsSource{metrics: make(map[string]domain.RawMetrics)}
}

func (m *mockMetricsSource) FetchMetrics(ctx context.Context, guildID, userID string, weekNum, year int) (domain.RawMetrics, error) {
	m.calls++
	if m.fetchError != nil {
		return domain.RawMetrics{}, m.fetchError
	}
	return m.metrics[recordKey(guildID, userID, weekNum, year)], nil
}

type testEnv struct {
	weekly      *mockWeeklyRepository
	tiers       *mockTierRepository
	enrollments *mockEnrollmentRepository
	source      *mockMetricsSource
	service     Service
}

func newTestEnv(t *testing.T, opts ...Option) *testEnv {
	t.Helper()
	env := &testEnv{
		weekly:      newMockWeeklyRepository(),
		tiers:       newMockTierRepository(),
		enrollments: newMockEnrollmentRepository(),
		source:      newMockMetricsSource(),
	}
	env.service = NewService(env.weekly, env.tiers, env.enrollments, env.source, opts...)
	return env
}

func (e *testEnv) enroll(t *testing.T, guildID, userID string) {
	t.Helper()
	require.NoError(t, e.enrollments.Upsert(context.Background(), &domain.Enrollment{
		GuildID:    guildID,
		UserID:     userID,
		Active:     true,
		EnrolledAt: time.Now(),
	}))
}

const (
	testGuild = "guild-1"
	testUser  = "mod-1"
)

func TestProcessModerator(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.source.metrics[recordKey(testGuild, testUser, 10, 2026)] = domain.RawMetrics{
		ModChatMessages: 100,
		ModActionsTaken: 5,
	}

	record, err := env.service.ProcessModerator(ctx, testGuild, testUser, 10, 2026)
	require.NoError(t, err)

	assert.Equal(t, 10, record.Week)
	assert.Equal(t, 2026, record.Year)
	assert.InDelta(t, 150.0, record.TotalRawPoints, 0.001)
	assert.Greater(t, record.TotalFinalizedPoints, 0.0)
	assert.Len(t, record.Details, 5)

	// A first-seen moderator lands on the default tier.
	assert.Equal(t, tier.DefaultTier, record.TierAfterWeek)

	status, err := env.tiers.Get(ctx, testGuild, testUser)
	require.NoError(t, err)
	require.NotNil(t, status)
	assert.Equal(t, 10, status.LastEvaluatedWeek)
	assert.Equal(t, 2026, status.LastEvaluatedYear)
}

func TestProcessModeratorInvalidWeek(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.service.ProcessModerator(context.Background(), testGuild, testUser, 0, 2026)
	assert.ErrorIs(t, err, domain.ErrInvalidWeek)

	_, err = env.service.ProcessModerator(context.Background(), testGuild, testUser, 54, 2026)
	assert.ErrorIs(t, err, domain.ErrInvalidWeek)
}

func TestProcessModeratorPreservesOverride(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.source.metrics[recordKey(testGuild, testUser, 10, 2026)] = domain.RawMetrics{ModActionsTaken: 3}

	_, err := env.service.ProcessModerator(ctx, testGuild, testUser, 10, 2026)
	require.NoError(t, err)

	_, err = env.service.SetOverride(ctx, testGuild, testUser, 10, 2026, 250, "manual correction", "admin-1")
	require.NoError(t, err)

	// Re-processing recomputes the calculated columns but must not clobber
	// the override.
	record, err := env.service.ProcessModerator(ctx, testGuild, testUser, 10, 2026)
	require.NoError(t, err)
	assert.True(t, record.Override.Active)
	assert.InDelta(t, 250.0, record.EffectiveFinalizedPoints(), 0.001)
}

func TestProcessWeek(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.enroll(t, testGuild, "mod-1")
	env.enroll(t, testGuild, "mod-2")
	env.enrollments.Upsert(ctx, &domain.Enrollment{GuildID: testGuild, UserID: "mod-3", Active: false})

	processed, err := env.service.ProcessWeek(ctx, testGuild, 10, 2026)
	require.NoError(t, err)
	assert.Equal(t, 2, processed)

	count, err := env.weekly.CountByWeek(ctx, testGuild, 10, 2026)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestProcessWeekContinuesPastFailures(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.enroll(t, testGuild, "mod-1")
	env.source.fetchError = errors.New("upstream down")

	processed, err := env.service.ProcessWeek(ctx, testGuild, 10, 2026)
	require.NoError(t, err)
	assert.Equal(t, 0, processed)
}

func TestProcessBackfill(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, time.March, 18, 12, 0, 0, 0, time.UTC) // week 12
	env := newTestEnv(t, WithClock(func() time.Time { return now }))
	env.enroll(t, testGuild, testUser)

	// Week 8 already has a record; backfill must stop there.
	_, err := env.weekly.Upsert(ctx, &domain.WeeklyPointsRecord{
		GuildID: testGuild, UserID: testUser, Week: 8, Year: 2026,
	})
	require.NoError(t, err)

	filled, err := env.service.ProcessBackfill(ctx, testGuild)
	require.NoError(t, err)
	assert.Equal(t, 3, filled) // weeks 11, 10, 9

	for _, weekNum := range []int{9, 10, 11} {
		count, err := env.weekly.CountByWeek(ctx, testGuild, weekNum, 2026)
		require.NoError(t, err)
		assert.Equal(t, 1, count, "week %d", weekNum)
	}

	// The current week is never backfilled.
	count, err := env.weekly.CountByWeek(ctx, testGuild, 12, 2026)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestProcessBackfillMaxWeeks(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, time.September, 2, 12, 0, 0, 0, time.UTC)
	env := newTestEnv(t, WithClock(func() time.Time { return now }))
	env.enroll(t, testGuild, testUser)

	filled, err := env.service.ProcessBackfill(ctx, testGuild)
	require.NoError(t, err)
	assert.Equal(t, MaxBackfillWeeks, filled)
}

func TestGetWeeklyNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.service.GetWeekly(context.Background(), testGuild, testUser, 10, 2026)
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestSetOverride(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.source.metrics[recordKey(testGuild, testUser, 10, 2026)] = domain.RawMetrics{ModActionsTaken: 4}

	_, err := env.service.ProcessModerator(ctx, testGuild, testUser, 10, 2026)
	require.NoError(t, err)

	record, err := env.service.SetOverride(ctx, testGuild, testUser, 10, 2026, 300, "event bonus", "admin-1")
	require.NoError(t, err)

	assert.True(t, record.Override.Active)
	require.NotNil(t, record.Override.FinalizedPoints)
	assert.InDelta(t, 300.0, *record.Override.FinalizedPoints, 0.001)
	require.NotNil(t, record.Override.RawPoints)
	assert.InDelta(t, record.TotalRawPoints, *record.Override.RawPoints, 0.001)
	assert.Equal(t, "event bonus", record.Override.Reason)
	assert.Equal(t, "admin-1", record.Override.AppliedByID)
	assert.InDelta(t, 300.0, record.EffectiveFinalizedPoints(), 0.001)
}

func TestSetOverrideWithoutRecord(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.service.SetOverride(context.Background(), testGuild, testUser, 10, 2026, 300, "bonus", "admin-1")
	assert.ErrorIs(t, err, domain.ErrOverrideWithoutRecord)
}

func TestClearOverride(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.source.metrics[recordKey(testGuild, testUser, 10, 2026)] = domain.RawMetrics{ModActionsTaken: 4}

	_, err := env.service.ProcessModerator(ctx, testGuild, testUser, 10, 2026)
	require.NoError(t, err)
	_, err = env.service.SetOverride(ctx, testGuild, testUser, 10, 2026, 300, "bonus", "admin-1")
	require.NoError(t, err)

	record, err := env.service.SetOverride(ctx, testGuild, testUser, 10, 2026, OverrideClearSentinel, "entered in error", "admin-2")
	require.NoError(t, err)

	assert.False(t, record.Override.Active)
	// The clear leaves an audit trail behind.
	assert.Equal(t, "entered in error", record.Override.Reason)
	assert.Equal(t, "admin-2", record.Override.AppliedByID)
	assert.InDelta(t, record.TotalFinalizedPoints, record.EffectiveFinalizedPoints(), 0.001)
}

func TestClearWeek(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.enroll(t, testGuild, "mod-1")
	env.enroll(t, testGuild, "mod-2")

	_, err := env.service.ProcessWeek(ctx, testGuild, 10, 2026)
	require.NoError(t, err)

	deleted, err := env.service.ClearWeek(ctx, testGuild, 10, 2026)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	count, err := env.weekly.CountByWeek(ctx, testGuild, 10, 2026)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestActivateAndDeactivateLifecycle(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	require.NoError(t, env.service.Activate(ctx, testGuild, testUser, "admin-1"))

	err := env.service.Activate(ctx, testGuild, testUser, "admin-1")
	assert.ErrorIs(t, err, domain.ErrEnrollmentActive)

	// No weekly history yet, so deactivation removes the row entirely.
	require.NoError(t, env.service.Deactivate(ctx, testGuild, testUser, "admin-1"))
	enrollment, err := env.enrollments.Get(ctx, testGuild, testUser)
	require.NoError(t, err)
	assert.Nil(t, enrollment)

	err = env.service.Deactivate(ctx, testGuild, testUser, "admin-1")
	assert.ErrorIs(t, err, domain.ErrEnrollmentInactive)
}

func TestDeactivateKeepsHistory(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	require.NoError(t, env.service.Activate(ctx, testGuild, testUser, "admin-1"))
	_, err := env.service.ProcessModerator(ctx, testGuild, testUser, 10, 2026)
	require.NoError(t, err)

	require.NoError(t, env.service.Deactivate(ctx, testGuild, testUser, "admin-2"))

	enrollment, err := env.enrollments.Get(ctx, testGuild, testUser)
	require.NoError(t, err)
	require.NotNil(t, enrollment)
	assert.False(t, enrollment.Active)
	require.NotNil(t, enrollment.DeactivatedAt)
	assert.Equal(t, "admin-2", enrollment.DeactivatedByID)

	// Historic records survive the deactivation.
	count, err := env.weekly.CountByUser(ctx, testGuild, testUser)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestReactivateKeepsOriginalEnrollmentDate(t *testing.T) {
	ctx := context.Background()
	enrolledAt := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)
	env := newTestEnv(t)
	require.NoError(t, env.enrollments.Upsert(ctx, &domain.Enrollment{
		GuildID:      testGuild,
		UserID:       testUser,
		Active:       false,
		EnrolledAt:   enrolledAt,
		EnrolledByID: "admin-1",
	}))

	require.NoError(t, env.service.Activate(ctx, testGuild, testUser, "admin-2"))

	enrollment, err := env.enrollments.Get(ctx, testGuild, testUser)
	require.NoError(t, err)
	require.NotNil(t, enrollment)
	assert.True(t, enrollment.Active)
	assert.True(t, enrollment.EnrolledAt.Equal(enrolledAt))
	assert.Equal(t, "admin-1", enrollment.EnrolledByID)
	assert.Nil(t, enrollment.DeactivatedAt)
}

func TestSetTier(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	require.NoError(t, env.service.SetTier(ctx, testGuild, testUser, 2, "admin-1"))

	current, err := env.service.CurrentTier(ctx, testGuild, testUser)
	require.NoError(t, err)
	assert.Equal(t, 2, current)

	err = env.service.SetTier(ctx, testGuild, testUser, tier.MaxDefinedTier, "admin-1")
	assert.ErrorIs(t, err, domain.ErrTierOutOfRange)
	err = env.service.SetTier(ctx, testGuild, testUser, -1, "admin-1")
	assert.ErrorIs(t, err, domain.ErrTierOutOfRange)
}

func TestCurrentTierDefaultsWhenAbsent(t *testing.T) {
	env := newTestEnv(t)

	current, err := env.service.CurrentTier(context.Background(), testGuild, "never-seen")
	require.NoError(t, err)
	assert.Equal(t, tier.DefaultTier, current)
}

func TestAdjustTiersDisabled(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.service.AdjustTiers(context.Background(), testGuild, 10, 2026)
	assert.ErrorIs(t, err, ErrPolicyDisabled)
}

func TestAdjustTiers(t *testing.T) {
	ctx := context.Background()
	policy := tier.NewAdjustmentPolicy()
	env := newTestEnv(t, WithAdjustmentPolicy(policy))

	// Promotion: active this week with enough points.
	env.enroll(t, testGuild, "promoted")
	require.NoError(t, env.tiers.SetTier(ctx, testGuild, "promoted", 1))
	env.source.metrics[recordKey(testGuild, "promoted", 10, 2026)] = domain.RawMetrics{CasesHandled: 10}
	_, err := env.service.ProcessModerator(ctx, testGuild, "promoted", 10, 2026)
	require.NoError(t, err)

	// Demotion: no records for either week.
	env.enroll(t, testGuild, "demoted")
	require.NoError(t, env.tiers.SetTier(ctx, testGuild, "demoted", 2))

	adjusted, err := env.service.AdjustTiers(ctx, testGuild, 10, 2026)
	require.NoError(t, err)
	assert.Equal(t, 2, adjusted)

	promoted, err := env.service.CurrentTier(ctx, testGuild, "promoted")
	require.NoError(t, err)
	assert.Equal(t, 2, promoted)

	demoted, err := env.service.CurrentTier(ctx, testGuild, "demoted")
	require.NoError(t, err)
	assert.Equal(t, 1, demoted)
}

func TestGetProfile(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, time.March, 18, 12, 0, 0, 0, time.UTC) // week 12
	env := newTestEnv(t, WithClock(func() time.Time { return now }))

	_, err := env.service.GetProfile(ctx, testGuild, testUser)
	assert.ErrorIs(t, err, domain.ErrModeratorNotFound)

	require.NoError(t, env.service.Activate(ctx, testGuild, testUser, "admin-1"))
	env.source.metrics[recordKey(testGuild, testUser, 11, 2026)] = domain.RawMetrics{ModActionsTaken: 2}
	_, err = env.service.ProcessModerator(ctx, testGuild, testUser, 11, 2026)
	require.NoError(t, err)

	profile, err := env.service.GetProfile(ctx, testGuild, testUser)
	require.NoError(t, err)
	assert.True(t, profile.Enrollment.Active)
	assert.Equal(t, tier.DefaultTier, profile.Tier.CurrentTier)
	require.Len(t, profile.Weekly, 1)
	assert.Equal(t, 11, profile.Weekly[0].Week)
}

func TestPreviewMatchesEngine(t *testing.T) {
	env := newTestEnv(t)
	rawMetrics := domain.RawMetrics{ModChatMessages: 200, CasesHandled: 5}

	computation := env.service.Preview(rawMetrics)
	assert.InDelta(t, 300.0, computation.TotalRawPoints, 0.001)
	assert.Equal(t, computation.TotalRawPoints, computation.DynamicMaxPossible)
}

func TestCurrentWeekHelper(t *testing.T) {
	// Sanity anchor for the clock used across these tests.
	w, y := week.Current(time.Date(2026, time.March, 18, 12, 0, 0, 0, time.UTC))
	assert.Equal(t, 12, w)
	assert.Equal(t, 2026, y)
}
