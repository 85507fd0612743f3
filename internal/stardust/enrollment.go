package stardust

import (
	"context"
	"fmt"

	"github.com/osse101/StardustBot_Go/internal/domain"
	"github.com/osse101/StardustBot_Go/internal/logger"
	"github.com/osse101/StardustBot_Go/internal/tier"
	"github.com/osse101/StardustBot_Go/internal/week"
)

func (s *service) Activate(ctx context.Context, guildID, userID, actorID string) error {
	log := logger.FromContext(ctx)

	existing, err := s.enrollments.Get(ctx, guildID, userID)
	if err != nil {
		return err
	}
	if existing != nil && existing.Active {
		return fmt.Errorf("%w: user %s", domain.ErrEnrollmentActive, userID)
	}

	now := s.now().UTC()
	enrollment := &domain.Enrollment{
		GuildID:      guildID,
		UserID:       userID,
		Active:       true,
		EnrolledAt:   now,
		EnrolledByID: actorID,
	}
	if existing != nil {
		// Reactivation keeps the original enrollment date.
		enrollment.EnrolledAt = existing.EnrolledAt
		enrollment.EnrolledByID = existing.EnrolledByID
	}

	if err := s.enrollments.Upsert(ctx, enrollment); err != nil {
		return fmt.Errorf(ErrMsgUpsertEnrollmentFailed, err)
	}
	s.cache.SetEnrolled(guildID, userID, true)

	log.Info(LogMsgModeratorActivated, "guild_id", guildID, "user_id", userID, "actor_id", actorID)
	return nil
}

func (s *service) Deactivate(ctx context.Context, guildID, userID, actorID string) error {
	log := logger.FromContext(ctx)

	existing, err := s.enrollments.Get(ctx, guildID, userID)
	if err != nil {
		return err
	}
	if existing == nil || !existing.Active {
		return fmt.Errorf("%w: user %s", domain.ErrEnrollmentInactive, userID)
	}

	history, err := s.weekly.CountByUser(ctx, guildID, userID)
	if err != nil {
		return fmt.Errorf(ErrMsgCountRecordsFailed, err)
	}
	if history == 0 {
		// An enrollment that never earned a record leaves no trace.
		if err := s.enrollments.Delete(ctx, guildID, userID); err != nil {
			return fmt.Errorf(ErrMsgDeleteEnrollmentFailed, err)
		}
		s.cache.SetEnrolled(guildID, userID, false)
		log.Info(LogMsgModeratorDeleted, "guild_id", guildID, "user_id", userID, "actor_id", actorID)
		return nil
	}

	now := s.now().UTC()
	existing.Active = false
	existing.DeactivatedAt = &now
	existing.DeactivatedByID = actorID

	if err := s.enrollments.Upsert(ctx, existing); err != nil {
		return fmt.Errorf(ErrMsgUpsertEnrollmentFailed, err)
	}
	s.cache.SetEnrolled(guildID, userID, false)

	log.Info(LogMsgModeratorDeactivated, "guild_id", guildID, "user_id", userID, "actor_id", actorID)
	return nil
}

func (s *service) ListModerators(ctx context.Context, guildID string) ([]domain.Enrollment, error) {
	return s.enrollments.List(ctx, guildID)
}

func (s *service) GetProfile(ctx context.Context, guildID, userID string) (*domain.ModeratorProfile, error) {
	enrollment, err := s.enrollments.Get(ctx, guildID, userID)
	if err != nil {
		return nil, err
	}
	if enrollment == nil {
		return nil, fmt.Errorf("%w: user %s", domain.ErrModeratorNotFound, userID)
	}

	status, err := s.tiers.Get(ctx, guildID, userID)
	if err != nil {
		return nil, err
	}
	if status == nil {
		status = &domain.TierStatus{GuildID: guildID, UserID: userID, CurrentTier: tier.DefaultTier}
	}

	weekNum, year := week.Current(s.now())
	refs := recentWeeks(weekNum, year, ProfileRecentWeeks)

	records, err := s.weekly.ListByWeeks(ctx, guildID, userID, refs)
	if err != nil {
		return nil, err
	}

	return &domain.ModeratorProfile{
		Enrollment: *enrollment,
		Tier:       *status,
		Weekly:     records,
	}, nil
}

// recentWeeks lists count week refs walking backwards from (w, y) inclusive.
func recentWeeks(w, y, count int) []domain.WeekRef {
	refs := make([]domain.WeekRef, 0, count)
	for i := 0; i < count; i++ {
		refs = append(refs, domain.WeekRef{Week: w, Year: y})
		w, y = week.Previous(w, y)
	}
	return refs
}
