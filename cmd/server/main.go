package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/soundsystems/shirtcalc/internal/config"
	"github.com/soundsystems/shirtcalc/internal/pricing"
	"github.com/soundsystems/shirtcalc/internal/repository/mongodb"
	"github.com/soundsystems/shirtcalc/internal/repository/postgres"
	"github.com/soundsystems/shirtcalc/internal/repository/sheets"
	"github.com/soundsystems/shirtcalc/internal/scheduler"
	"github.com/soundsystems/shirtcalc/internal/server/handlers"
	"github.com/soundsystems/shirtcalc/internal/server/router"
	commandsvc "github.com/soundsystems/shirtcalc/internal/service/commands"
	quotingsvc "github.com/soundsystems/shirtcalc/internal/service/quoting"
	reportingsvc "github.com/soundsystems/shirtcalc/internal/service/reporting"
	whatsappsvc "github.com/soundsystems/shirtcalc/internal/service/whatsapp"
	whatsappclient "github.com/soundsystems/shirtcalc/pkg/clients/whatsapp"
	"github.com/soundsystems/shirtcalc/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Server.LogLevel))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	catalog, err := pricing.LoadCatalog(cfg.Pricing.CatalogPath)
	if err != nil {
		baseLogger.Fatal("failed to load pricing catalog", zap.String("path", cfg.Pricing.CatalogPath), zap.Error(err))
	}
	baseLogger.Info("pricing catalog loaded", zap.Int("brands", len(catalog.Brands)), zap.String("default_brand", catalog.DefaultBrand))

	archives := map[string]quotingsvc.Archive{}
	var source reportingsvc.QuoteSource

	if cfg.Sheets.Enabled() {
		sheetsRepo, err := sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		archives["sheets"] = sheetsRepo
		source = sheetsRepo
	} else {
		baseLogger.Warn("google sheets not configured, quote export disabled")
	}

	if cfg.MongoDB.Enabled() {
		mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		archives["mongodb"] = mongoRepo
		source = mongoRepo
	} else {
		baseLogger.Warn("mongodb not configured, quote archive disabled")
	}

	if cfg.Postgres.Enabled() {
		pool, err := postgres.NewPool(context.Background(), cfg.Postgres.URL)
		if err != nil {
			baseLogger.Fatal("failed to connect to postgres", zap.Error(err))
		}
		defer pool.Close()

		pgRepo, err := postgres.NewRepository(context.Background(), pool)
		if err != nil {
			baseLogger.Fatal("failed to init postgres repository", zap.Error(err))
		}
		archives["postgres"] = pgRepo
		source = pgRepo
	}

	quoter := quotingsvc.NewService(catalog, archives, baseLogger.Named("svc.quoting"))
	sessions := quotingsvc.NewSessionManager()

	h := router.Handlers{
		Form:   handlers.NewFormHandler(quoter, sessions, baseLogger.Named("handlers.form")),
		Quotes: handlers.NewQuoteHandler(quoter, baseLogger.Named("handlers.quotes")),
	}

	var notifier scheduler.Notifier
	if cfg.WhatsApp.Enabled() {
		whatsClient := whatsappclient.NewClient(cfg.WhatsApp)
		dispatcher := commandsvc.NewService(quoter, baseLogger.Named("svc.commands"))
		messagingSvc := whatsappsvc.NewMetaWhatsAppService(cfg.WhatsApp, whatsClient, dispatcher, baseLogger.Named("svc.whatsapp"))
		h.Webhook = handlers.NewWebhookHandler(messagingSvc, baseLogger.Named("handlers.whatsapp"))
		notifier = messagingSvc
	} else {
		baseLogger.Warn("whatsapp not configured, chat commands disabled")
	}

	var digest scheduler.DigestBuilder
	if source != nil {
		digest = reportingsvc.NewService(source, baseLogger.Named("svc.reporting"))
	}

	sched := scheduler.NewScheduler(*cfg, digest, notifier, sessions, baseLogger.Named("scheduler"))
	if err := sched.Register(cfg.Reporting.CronSchedule); err != nil {
		baseLogger.Fatal("failed to register scheduled jobs", zap.Error(err))
	}
	sched.Start()
	defer sched.Stop()

	gin.SetMode(gin.ReleaseMode)
	engine := router.New(h, baseLogger.Named("router"))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
