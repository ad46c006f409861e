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
	"github.com/joshu-sajeev/jobboard/internal/job"
	"github.com/joshu-sajeev/jobboard/internal/logger"
	"github.com/joshu-sajeev/jobboard/internal/payment"
	"github.com/joshu-sajeev/jobboard/internal/server"
	"github.com/joshu-sajeev/jobboard/internal/storage/postgres"
	"github.com/joshu-sajeev/jobboard/internal/subscription"
)

func main() {
	configPath := flag.String("config", "", "optional YAML config file")
	flag.Parse()

	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx, *configPath)
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	log = log.With(slog.String("app", cfg.App.Name), slog.String("env", cfg.App.Environment))

	if err := cfg.ValidateAPI(); err != nil {
		log.Error("invalid api config", slog.Any("error", err))
		os.Exit(1)
	}

	if err := run(ctx, cfg, *configPath, log); err != nil {
		log.Error("api stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
	log.Info("shutdown complete")
}

func run(ctx context.Context, cfg *config.Config, configPath string, log *slog.Logger) error {
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

	if err := postgres.RunMigrations(ctx, db); err != nil {
		return err
	}
	log.Info("database ready", slog.String("host", dbCfg.Host), slog.String("database", dbCfg.Database))

	jobRepo := postgres.NewJobRepository(db)
	companyRepo := postgres.NewCompanyRepository(db)
	paymentRepo := postgres.NewPaymentRepository(db)
	subscriptionRepo := postgres.NewSubscriptionRepository(db)

	var invalidator cache.Invalidator = cache.NewLogInvalidator(log)
	if cfg.Broker.Enabled {
		conn, err := cache.Dial(cfg.Broker, log)
		if err != nil {
			return err
		}
		defer conn.Close()
		invalidator = cache.NewBrokerInvalidator(cfg.Broker, conn.Channel(), log)
	}

	gateway := payment.NewStripeGateway(cfg.Stripe, cfg.App)

	jobService := job.NewJobService(jobRepo, companyRepo, paymentRepo, gateway, cfg.Stripe, log)
	moderation := admin.NewModerationService(jobRepo, companyRepo, invalidator, log)
	reconciler := payment.NewReconciliationService(gateway, paymentRepo, jobRepo, log)
	subscriptions := subscription.NewSubscriptionService(subscriptionRepo, log)

	router := server.NewRouter(
		server.RouterConfig{
			RequestTimeout: cfg.Server.RequestTimeout,
			AdminToken:     cfg.Admin.Token,
			Logger:         log,
		},
		server.Handlers{
			Jobs:          job.NewJobHandler(jobService),
			Admin:         admin.NewAdminHandler(moderation),
			Webhooks:      payment.NewWebhookHandler(reconciler),
			Subscriptions: subscription.NewSubscriptionHandler(subscriptions),
		},
	)

	srv := server.NewHTTPServer(cfg.Server, router)
	log.Info("api listening", slog.String("addr", srv.Addr), slog.String("config", configPath))

	return server.Run(ctx, srv, cfg.Server.ShutdownTimeout)
}
