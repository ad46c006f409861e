package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/joshu-sajeev/jobboard/internal/admin"
	"github.com/joshu-sajeev/jobboard/internal/cache"
	"github.com/joshu-sajeev/jobboard/internal/config"
	"github.com/joshu-sajeev/jobboard/internal/logger"
	"github.com/joshu-sajeev/jobboard/internal/storage/postgres"
	"github.com/joshu-sajeev/jobboard/internal/sweeper"
)

func main() {
	configPath := flag.String("config", "", "optional YAML config file")
	once := flag.Bool("once", false, "run a single sweep and exit")
	flag.Parse()

	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx, *configPath)
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	log = log.With(slog.String("app", cfg.App.Name+"-sweeper"))

	if err := run(ctx, cfg, *once, log); err != nil {
		log.Error("sweeper stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, once bool, log *slog.Logger) error {
	dbCfg, err := postgres.LoadConfigFromEnv(ctx)
	if err != nil {
		return err
	}

	db, err := postgres.ConnectDB(ctx, dbCfg, log)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	jobRepo := postgres.NewJobRepository(db)
	companyRepo := postgres.NewCompanyRepository(db)

	var invalidator cache.Invalidator = cache.NewLogInvalidator(log)
	if cfg.Broker.Enabled {
		conn, err := cache.Dial(cfg.Broker, log)
		if err != nil {
			return err
		}
		defer conn.Close()
		invalidator = cache.NewBrokerInvalidator(cfg.Broker, conn.Channel(), log)
	}

	moderation := admin.NewModerationService(jobRepo, companyRepo, invalidator, log)

	sw, err := sweeper.New(moderation, cfg.Sweeper.Schedule, cfg.Sweeper.Timeout, log)
	if err != nil {
		return err
	}

	if once {
		_, err := sw.RunOnce(ctx)
		return err
	}

	sw.Start()
	log.Info("sweeper scheduled", slog.String("schedule", cfg.Sweeper.Schedule))
	<-ctx.Done()
	sw.Stop()
	return nil
}
