package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/minicrmhq/minicrm-backend/api/routes"
	"github.com/minicrmhq/minicrm-backend/internal/customers"
	"github.com/minicrmhq/minicrm-backend/internal/dashboard"
	"github.com/minicrmhq/minicrm-backend/internal/funnel"
	"github.com/minicrmhq/minicrm-backend/internal/loyalty"
	"github.com/minicrmhq/minicrm-backend/internal/notes"
	"github.com/minicrmhq/minicrm-backend/internal/reminders"
	"github.com/minicrmhq/minicrm-backend/internal/stores"
	"github.com/minicrmhq/minicrm-backend/pkg/config"
	"github.com/minicrmhq/minicrm-backend/pkg/db"
	"github.com/minicrmhq/minicrm-backend/pkg/logger"
	"github.com/minicrmhq/minicrm-backend/pkg/migrate"
	"github.com/minicrmhq/minicrm-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	customersRepo := customers.NewRepository(dbClient.DB())
	funnelRepo := funnel.NewRepository(dbClient.DB())
	remindersRepo := reminders.NewRepository(dbClient.DB())
	notesRepo := notes.NewRepository(dbClient.DB())
	loyaltyRepo := loyalty.NewRepository(dbClient.DB())

	funnelSvc, err := funnel.NewService(funnelRepo, customersRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create funnel service", err)
		os.Exit(1)
	}
	remindersSvc, err := reminders.NewService(remindersRepo, customersRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create reminders service", err)
		os.Exit(1)
	}
	notesSvc, err := notes.NewService(notesRepo, customersRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create notes service", err)
		os.Exit(1)
	}
	loyaltySvc, err := loyalty.NewService(loyaltyRepo, customersRepo, dbClient, cfg.Loyalty)
	if err != nil {
		logg.Error(context.Background(), "failed to create loyalty service", err)
		os.Exit(1)
	}
	customersSvc, err := customers.NewService(customersRepo, funnelSvc, funnelRepo, remindersSvc, notesSvc)
	if err != nil {
		logg.Error(context.Background(), "failed to create customers service", err)
		os.Exit(1)
	}
	dashboardSvc, err := dashboard.NewService(customersRepo, loyaltyRepo, remindersSvc)
	if err != nil {
		logg.Error(context.Background(), "failed to create dashboard service", err)
		os.Exit(1)
	}
	storesSvc, err := stores.NewService(stores.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create store service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.RouterParams{
			Config:    cfg,
			Logger:    logg,
			DB:        dbClient,
			Redis:     redisClient,
			Metrics:   registry,
			Customers: customersSvc,
			Loyalty:   loyaltySvc,
			Funnel:    funnelSvc,
			Reminders: remindersSvc,
			Notes:     notesSvc,
			Dashboard: dashboardSvc,
			Stores:    storesSvc,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
