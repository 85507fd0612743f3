package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/StardustBot_Go/internal/bootstrap"
	"github.com/osse101/StardustBot_Go/internal/config"
	"github.com/osse101/StardustBot_Go/internal/database"
	"github.com/osse101/StardustBot_Go/internal/modsync"
	"github.com/osse101/StardustBot_Go/internal/report"
	"github.com/osse101/StardustBot_Go/internal/scheduler"
	"github.com/osse101/StardustBot_Go/internal/server"
	"github.com/osse101/StardustBot_Go/internal/stardust"
	"github.com/osse101/StardustBot_Go/internal/statbot"
	"github.com/osse101/StardustBot_Go/internal/tier"
	"github.com/osse101/StardustBot_Go/internal/worker"
)

// Database pool tuning
const (
	dbMaxConnections = 10
	dbMaxIdleTime    = 30 * time.Minute
	dbMaxLifetime    = time.Hour
)

// Background job cadence
const (
	weeklyJobInterval  = time.Hour
	monthlyJobInterval = 6 * time.Hour
	modSyncInterval    = 15 * time.Minute
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration first so the logger can use it
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration failed: %v", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		log.Fatalf("Logger setup failed: %v", err)
	}
	defer logFile.Close()

	if err := run(cfg); err != nil {
		slog.Error("Application failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	// Database
	dbPool, err := database.NewPool(context.Background(), cfg.GetDBConnString(), dbMaxConnections, dbMaxIdleTime, dbMaxLifetime)
	if err != nil {
		return err
	}

	repos := bootstrap.InitializeRepositories(dbPool)

	// Metrics source: StatBot API for chat/voice activity, synced mod-log
	// store for actions and cases
	statbotClient := statbot.NewClient(cfg.StatbotBaseURL, cfg.StatbotAPIKey)
	metricsSource := statbot.NewMetricsSource(statbotClient, repos.ModLog, cfg.ModChatChannelIDs, cfg.CommandChannelIDs)

	// Core services
	var opts []stardust.Option
	if cfg.AutoTierAdjust {
		opts = append(opts, stardust.WithAdjustmentPolicy(tier.NewAdjustmentPolicy()))
		slog.Info("Automatic tier adjustment enabled")
	}
	stardustService := stardust.NewService(repos.Weekly, repos.Tier, repos.Enrollment, metricsSource, opts...)
	reportService := report.NewService(repos.Weekly, repos.Monthly)

	// Background jobs
	pool := worker.NewPool(2, 16)
	pool.Start()

	sched := scheduler.New(pool)
	sched.Schedule(weeklyJobInterval, worker.NewWeeklyPointsJob(stardustService, cfg.GuildID))
	sched.Schedule(monthlyJobInterval, worker.NewMonthlyReportJob(reportService, cfg.GuildID))

	closeFuncs := []func() error{
		func() error { dbPool.Close(); return nil },
	}

	// Mod-log channel sync needs a Discord session; skip when no token is
	// configured (metrics then rely on whatever is already synced)
	if cfg.DiscordToken != "" {
		session, err := discordgo.New("Bot " + cfg.DiscordToken)
		if err != nil {
			return err
		}
		syncer := modsync.NewSyncer(session, repos.ModLog)
		sched.Schedule(modSyncInterval, worker.NewModLogSyncJob(syncer, cfg.GuildID, cfg.ModCasesChannelID, cfg.ModmailChannelID))
		closeFuncs = append(closeFuncs, session.Close)
	} else {
		slog.Warn("DISCORD_TOKEN not set, mod-log sync disabled")
	}

	sched.Start()

	// Fill any missing weeks since the last computed one
	pool.Enqueue(worker.NewBackfillJob(stardustService, cfg.GuildID))

	// HTTP server
	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, dbPool, stardustService, reportService)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return err
	case sig := <-stop:
		slog.Info("Received shutdown signal", "signal", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(ctx, bootstrap.ShutdownComponents{
		Server:     srv,
		Scheduler:  sched,
		WorkerPool: pool,
		CloseFuncs: closeFuncs,
	})

	return nil
}
