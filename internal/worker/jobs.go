package worker

import (
	"context"
	"errors"
	"time"

	"github.com/osse101/StardustBot_Go/internal/logger"
	"github.com/osse101/StardustBot_Go/internal/modsync"
	"github.com/osse101/StardustBot_Go/internal/report"
	"github.com/osse101/StardustBot_Go/internal/stardust"
	"github.com/osse101/StardustBot_Go/internal/week"
)

// WeeklyPointsJob recomputes the current and previous ISO week for every
// active moderator. Upserts are idempotent, so re-running only refreshes the
// computed columns. When the deployment has tier adjustment enabled, the
// previous week's results also drive promotions and demotions.
type WeeklyPointsJob struct {
	service stardust.Service
	guildID string
	now     func() time.Time
}

// NewWeeklyPointsJob creates a job for one guild.
func NewWeeklyPointsJob(service stardust.Service, guildID string) *WeeklyPointsJob {
	return &WeeklyPointsJob{service: service, guildID: guildID, now: time.Now}
}

func (j *WeeklyPointsJob) Process(ctx context.Context) error {
	log := logger.FromContext(ctx)

	currentWeek, currentYear := week.Current(j.now())
	prevWeek, prevYear := week.Previous(currentWeek, currentYear)

	log.Info(LogMsgWeeklyJobStarting, "guild_id", j.guildID, "week", currentWeek, "year", currentYear)

	processed, err := j.service.ProcessWeek(ctx, j.guildID, currentWeek, currentYear)
	if err != nil {
		return err
	}

	// The previous week stays open to late mod-log syncs for one more cycle.
	if _, err := j.service.ProcessWeek(ctx, j.guildID, prevWeek, prevYear); err != nil {
		return err
	}

	adjusted, err := j.service.AdjustTiers(ctx, j.guildID, prevWeek, prevYear)
	if err != nil {
		if errors.Is(err, stardust.ErrPolicyDisabled) {
			log.Debug(LogMsgTierAdjustSkipped, "guild_id", j.guildID)
		} else {
			return err
		}
	}

	log.Info(LogMsgWeeklyJobCompleted, "guild_id", j.guildID, "processed", processed, "tiers_adjusted", adjusted)
	return nil
}

// MonthlyReportJob aggregates the previous calendar month. Elapsed months
// are persisted on first aggregation, so repeated runs are cheap reads.
type MonthlyReportJob struct {
	service report.Service
	guildID string
	now     func() time.Time
}

// NewMonthlyReportJob creates a job for one guild.
func NewMonthlyReportJob(service report.Service, guildID string) *MonthlyReportJob {
	return &MonthlyReportJob{service: service, guildID: guildID, now: time.Now}
}

func (j *MonthlyReportJob) Process(ctx context.Context) error {
	log := logger.FromContext(ctx)

	prev := j.now().UTC().AddDate(0, 0, -j.now().UTC().Day())
	month, year := prev.Month(), prev.Year()

	log.Info(LogMsgMonthlyJobStarting, "guild_id", j.guildID, "month", int(month), "year", year)

	monthlyReport, err := j.service.AggregateMonth(ctx, j.guildID, month, year)
	if err != nil {
		return err
	}

	log.Info(LogMsgMonthlyJobCompleted,
		"guild_id", j.guildID,
		"month", int(month),
		"year", year,
		"moderators", len(monthlyReport.PerModerator),
		"persisted", monthlyReport.Persisted)
	return nil
}

// ModLogSyncJob catches the mod-log store up with the moderation channels.
type ModLogSyncJob struct {
	syncer            *modsync.Syncer
	guildID           string
	modCasesChannelID string
	modmailChannelID  string
}

// NewModLogSyncJob creates a job for one guild's moderation channels.
func NewModLogSyncJob(syncer *modsync.Syncer, guildID, modCasesChannelID, modmailChannelID string) *ModLogSyncJob {
	return &ModLogSyncJob{
		syncer:            syncer,
		guildID:           guildID,
		modCasesChannelID: modCasesChannelID,
		modmailChannelID:  modmailChannelID,
	}
}

func (j *ModLogSyncJob) Process(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgModLogSyncStarting, "guild_id", j.guildID)

	actions, err := j.syncer.SyncModActions(ctx, j.guildID, j.modCasesChannelID)
	if err != nil {
		return err
	}

	closures, err := j.syncer.SyncModmail(ctx, j.guildID, j.modmailChannelID)
	if err != nil {
		return err
	}

	log.Info(LogMsgModLogSyncCompleted, "guild_id", j.guildID, "mod_actions", actions, "modmail_closures", closures)
	return nil
}

// BackfillJob fills historical weeks that have no records. Intended to run
// once at startup rather than on a schedule.
type BackfillJob struct {
	service stardust.Service
	guildID string
}

// NewBackfillJob creates a job for one guild.
func NewBackfillJob(service stardust.Service, guildID string) *BackfillJob {
	return &BackfillJob{service: service, guildID: guildID}
}

func (j *BackfillJob) Process(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgBackfillStarting, "guild_id", j.guildID)

	filled, err := j.service.ProcessBackfill(ctx, j.guildID)
	if err != nil {
		return err
	}

	log.Info(LogMsgBackfillCompleted, "guild_id", j.guildID, "weeks_filled", filled)
	return nil
}
