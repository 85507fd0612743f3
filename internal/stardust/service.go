package stardust

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/osse101/StardustBot_Go/internal/domain"
	"github.com/osse101/StardustBot_Go/internal/logger"
	"github.com/osse101/StardustBot_Go/internal/metrics"
	"github.com/osse101/StardustBot_Go/internal/points"
	"github.com/osse101/StardustBot_Go/internal/repository"
	"github.com/osse101/StardustBot_Go/internal/tier"
	"github.com/osse101/StardustBot_Go/internal/week"
)

// MetricsSource supplies one moderator's raw activity counts for a week.
// Implementations combine the external stats API with the mod-log store.
type MetricsSource interface {
	FetchMetrics(ctx context.Context, guildID, userID string, weekNum, year int) (domain.RawMetrics, error)
}

// Service defines the interface for stardust operations
type Service interface {
	// ProcessModerator fetches metrics, computes points and upserts the
	// weekly record for one moderator. The moderator's administered tier is
	// read and stamped onto the record, never changed.
	ProcessModerator(ctx context.Context, guildID, userID string, weekNum, year int) (*domain.WeeklyPointsRecord, error)
	// ProcessWeek runs ProcessModerator for every active enrollment.
	// Returns how many moderators were processed.
	ProcessWeek(ctx context.Context, guildID string, weekNum, year int) (int, error)
	// ProcessBackfill walks backwards from the previous ISO week, filling
	// weeks that have no records, stopping at the first populated week or
	// after MaxBackfillWeeks. Returns how many weeks were filled.
	ProcessBackfill(ctx context.Context, guildID string) (int, error)

	GetWeekly(ctx context.Context, guildID, userID string, weekNum, year int) (*domain.WeeklyPointsRecord, error)
	// Preview runs the calculator without touching any store.
	Preview(metrics domain.RawMetrics) domain.Computation

	// SetOverride replaces a record's finalized points. Passing
	// OverrideClearSentinel for finalizedPoints deactivates an existing
	// override while still recording who cleared it and why.
	SetOverride(ctx context.Context, guildID, userID string, weekNum, year int, finalizedPoints float64, reason, appliedByID string) (*domain.WeeklyPointsRecord, error)
	// ClearWeek bulk-deletes every record for a (guild, week, year).
	ClearWeek(ctx context.Context, guildID string, weekNum, year int) (int64, error)

	Activate(ctx context.Context, guildID, userID, actorID string) error
	Deactivate(ctx context.Context, guildID, userID, actorID string) error
	ListModerators(ctx context.Context, guildID string) ([]domain.Enrollment, error)
	GetProfile(ctx context.Context, guildID, userID string) (*domain.ModeratorProfile, error)

	SetTier(ctx context.Context, guildID, userID string, tierLevel int, actorID string) error
	CurrentTier(ctx context.Context, guildID, userID string) (int, error)
	ListTiers(ctx context.Context, guildID string) ([]domain.TierStatus, error)
	// AdjustTiers applies the opt-in promotion/demotion policy for the given
	// week. Returns ErrPolicyDisabled when the deployment has not enabled it.
	AdjustTiers(ctx context.Context, guildID string, weekNum, year int) (int, error)
}

// ErrPolicyDisabled is returned by AdjustTiers when automatic tier
// adjustment is not enabled for this deployment.
var ErrPolicyDisabled = errors.New("tier adjustment policy is disabled")

// service implements the Service interface
type service struct {
	weekly      repository.Weekly
	tiers       repository.Tier
	enrollments repository.Enrollment
	source      MetricsSource
	engine      *points.Engine
	cache       *statusCache
	policy      *tier.AdjustmentPolicy
	now         func() time.Time
}

// Option configures optional service behavior.
type Option func(*service)

// WithAdjustmentPolicy enables automatic tier adjustment via AdjustTiers.
func WithAdjustmentPolicy(policy *tier.AdjustmentPolicy) Option {
	return func(s *service) { s.policy = policy }
}

// WithClock overrides the time source (tests).
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

// NewService creates a new stardust service
func NewService(weekly repository.Weekly, tiers repository.Tier, enrollments repository.Enrollment, source MetricsSource, opts ...Option) Service {
	s := &service{
		weekly:      weekly,
		tiers:       tiers,
		enrollments: enrollments,
		source:      source,
		engine:      points.NewEngine(),
		cache:       newStatusCache(StatusCacheSize, StatusCacheTTL),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) ProcessModerator(ctx context.Context, guildID, userID string, weekNum, year int) (*domain.WeeklyPointsRecord, error) {
	log := logger.FromContext(ctx)

	if !week.Valid(weekNum, year) {
		return nil, fmt.Errorf("%w: week %d of %d", domain.ErrInvalidWeek, weekNum, year)
	}

	rawMetrics, err := s.source.FetchMetrics(ctx, guildID, userID, weekNum, year)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgFetchMetricsFailed, err)
	}

	computation := s.engine.Compute(rawMetrics)
	metrics.PointsComputationsTotal.Inc()
	metrics.PointsWasted.Observe(computation.TotalWastedPoints)

	// Stamp the evaluation markers. The tier itself is only ever changed by
	// an explicit admin action or the opt-in policy.
	status, err := s.tiers.StampEvaluated(ctx, guildID, userID, weekNum, year, tier.DefaultTier)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgStampTierFailed, err)
	}
	s.cache.SetTier(guildID, userID, status.CurrentTier)

	record := &domain.WeeklyPointsRecord{
		GuildID:              guildID,
		UserID:               userID,
		Week:                 weekNum,
		Year:                 year,
		Metrics:              rawMetrics,
		MaxPossiblePoints:    computation.DynamicMaxPossible,
		TotalRawPoints:       computation.TotalRawPoints,
		TotalFinalizedPoints: computation.TotalFinalizedPoints,
		TotalWastedPoints:    computation.TotalWastedPoints,
		Details:              computation.Details,
		TierAfterWeek:        status.CurrentTier,
	}

	stored, err := s.weekly.Upsert(ctx, record)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgUpsertRecordFailed, err)
	}

	log.Debug(LogMsgModeratorProcessed,
		"guild_id", guildID,
		"user_id", userID,
		"week", weekNum,
		"year", year,
		"raw_points", stored.TotalRawPoints,
		"finalized_points", stored.TotalFinalizedPoints,
		"wasted_points", stored.TotalWastedPoints)

	return stored, nil
}

func (s *service) ProcessWeek(ctx context.Context, guildID string, weekNum, year int) (int, error) {
	log := logger.FromContext(ctx)

	enrolled, err := s.enrollments.ListActive(ctx, guildID)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgListModeratorsFailed, err)
	}

	log.Info(LogMsgWeekProcessingStarted, "guild_id", guildID, "week", weekNum, "year", year, "moderators", len(enrolled))

	processed := 0
	for _, enrollment := range enrolled {
		if _, err := s.ProcessModerator(ctx, guildID, enrollment.UserID, weekNum, year); err != nil {
			// One moderator's failure should not sink the whole run.
			log.Error(LogMsgModeratorProcessingFailed, "error", err, "user_id", enrollment.UserID, "week", weekNum, "year", year)
			continue
		}
		processed++
	}

	metrics.WeeksProcessed.Inc()
	log.Info(LogMsgWeekProcessingCompleted, "guild_id", guildID, "week", weekNum, "year", year, "processed", processed)
	return processed, nil
}

func (s *service) ProcessBackfill(ctx context.Context, guildID string) (int, error) {
	log := logger.FromContext(ctx)

	weekNum, year := week.Current(s.now())
	weekNum, year = week.Previous(weekNum, year)

	filled := 0
	for i := 0; i < MaxBackfillWeeks; i++ {
		count, err := s.weekly.CountByWeek(ctx, guildID, weekNum, year)
		if err != nil {
			return filled, fmt.Errorf(ErrMsgCountRecordsFailed, err)
		}
		if count > 0 {
			log.Info(LogMsgBackfillStopped, "guild_id", guildID, "week", weekNum, "year", year)
			break
		}

		log.Info(LogMsgBackfillingWeek, "guild_id", guildID, "week", weekNum, "year", year)
		if _, err := s.ProcessWeek(ctx, guildID, weekNum, year); err != nil {
			return filled, err
		}
		filled++

		weekNum, year = week.Previous(weekNum, year)
	}

	return filled, nil
}

func (s *service) GetWeekly(ctx context.Context, guildID, userID string, weekNum, year int) (*domain.WeeklyPointsRecord, error) {
	record, err := s.weekly.Get(ctx, guildID, userID, weekNum, year)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("%w: user %s week %d/%d", domain.ErrRecordNotFound, userID, weekNum, year)
	}
	return record, nil
}

func (s *service) Preview(rawMetrics domain.RawMetrics) domain.Computation {
	return s.engine.Compute(rawMetrics)
}

func (s *service) SetOverride(ctx context.Context, guildID, userID string, weekNum, year int, finalizedPoints float64, reason, appliedByID string) (*domain.WeeklyPointsRecord, error) {
	log := logger.FromContext(ctx)

	existing, err := s.weekly.Get(ctx, guildID, userID, weekNum, year)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		// An override layers onto a computed week; there is nothing to
		// override otherwise.
		return nil, fmt.Errorf("%w: user %s week %d/%d", domain.ErrOverrideWithoutRecord, userID, weekNum, year)
	}

	override := domain.Override{
		Reason:      reason,
		AppliedByID: appliedByID,
		AppliedAt:   s.now().UTC(),
	}

	if finalizedPoints == OverrideClearSentinel {
		// Deactivate, keeping the audit fields as a record of the clear.
		override.Active = false
	} else {
		value := finalizedPoints
		raw := existing.TotalRawPoints
		override.Active = true
		override.FinalizedPoints = &value
		override.RawPoints = &raw
		override.Details = existing.Details
	}

	updated, err := s.weekly.SetOverride(ctx, guildID, userID, weekNum, year, override)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgSetOverrideFailed, err)
	}
	metrics.OverridesApplied.Inc()

	log.Info(LogMsgOverrideApplied,
		"guild_id", guildID,
		"user_id", userID,
		"week", weekNum,
		"year", year,
		"active", override.Active,
		"applied_by", appliedByID)

	return updated, nil
}

func (s *service) ClearWeek(ctx context.Context, guildID string, weekNum, year int) (int64, error) {
	log := logger.FromContext(ctx)

	deleted, err := s.weekly.DeleteWeek(ctx, guildID, weekNum, year)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgClearWeekFailed, err)
	}

	log.Warn(LogMsgWeekCleared, "guild_id", guildID, "week", weekNum, "year", year, "deleted", deleted)
	return deleted, nil
}

func (s *service) SetTier(ctx context.Context, guildID, userID string, tierLevel int, actorID string) error {
	log := logger.FromContext(ctx)

	if !tier.ValidAssignment(tierLevel) {
		return fmt.Errorf("%w: %d", domain.ErrTierOutOfRange, tierLevel)
	}

	if err := s.tiers.SetTier(ctx, guildID, userID, tierLevel); err != nil {
		return fmt.Errorf(ErrMsgSetTierFailed, err)
	}
	s.cache.SetTier(guildID, userID, tierLevel)

	log.Info(LogMsgTierSet, "guild_id", guildID, "user_id", userID, "tier", tierLevel, "actor_id", actorID)
	return nil
}

func (s *service) CurrentTier(ctx context.Context, guildID, userID string) (int, error) {
	if cached, ok := s.cache.GetTier(guildID, userID); ok {
		return cached, nil
	}

	status, err := s.tiers.Get(ctx, guildID, userID)
	if err != nil {
		return 0, err
	}
	if status == nil {
		return tier.DefaultTier, nil
	}

	current := tier.Clamp(status.CurrentTier)
	s.cache.SetTier(guildID, userID, current)
	return current, nil
}

func (s *service) ListTiers(ctx context.Context, guildID string) ([]domain.TierStatus, error) {
	return s.tiers.List(ctx, guildID)
}

func (s *service) AdjustTiers(ctx context.Context, guildID string, weekNum, year int) (int, error) {
	log := logger.FromContext(ctx)

	if s.policy == nil {
		return 0, ErrPolicyDisabled
	}

	prevWeek, prevYear := week.Previous(weekNum, year)

	enrolled, err := s.enrollments.ListActive(ctx, guildID)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgListModeratorsFailed, err)
	}

	adjusted := 0
	for _, enrollment := range enrolled {
		current, err := s.weekly.Get(ctx, guildID, enrollment.UserID, weekNum, year)
		if err != nil {
			return adjusted, err
		}
		previous, err := s.weekly.Get(ctx, guildID, enrollment.UserID, prevWeek, prevYear)
		if err != nil {
			return adjusted, err
		}

		currentTier, err := s.CurrentTier(ctx, guildID, enrollment.UserID)
		if err != nil {
			return adjusted, err
		}

		adjustment := s.policy.Evaluate(currentTier, effectivePoints(current), effectivePoints(previous))
		if !adjustment.Changed {
			continue
		}

		if err := s.tiers.SetTier(ctx, guildID, enrollment.UserID, adjustment.NewTier); err != nil {
			return adjusted, fmt.Errorf(ErrMsgSetTierFailed, err)
		}
		s.cache.SetTier(guildID, enrollment.UserID, adjustment.NewTier)
		adjusted++

		direction := metrics.DirectionPromoted
		if adjustment.NewTier < currentTier {
			direction = metrics.DirectionDemoted
		}
		metrics.TiersAdjusted.WithLabelValues(direction).Inc()

		log.Info(LogMsgTierAdjusted,
			"guild_id", guildID,
			"user_id", enrollment.UserID,
			"from", currentTier,
			"to", adjustment.NewTier,
			"reason", adjustment.Reason)
	}

	return adjusted, nil
}

// effectivePoints converts a record into the policy's nullable points input.
func effectivePoints(record *domain.WeeklyPointsRecord) *float64 {
	if record == nil {
		return nil
	}
	value := record.EffectiveFinalizedPoints()
	return &value
}
