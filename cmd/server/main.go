// Command server runs the reclamation API: the REST endpoints, the
// automatic reminder scheduler, and the notification sinks.
//
//	@title			Reclamation API
//	@version		1.0
//	@description	Case management for customer reclamations: status workflow, history, reminders and notifications.
//	@BasePath		/api/v1
//	@securityDefinitions.apikey	UserID
//	@in							header
//	@name						X-User-ID
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"

	_ "github.com/solrobto/reclamation-mytsinjo/docs"
	"github.com/solrobto/reclamation-mytsinjo/internal/clock"
	"github.com/solrobto/reclamation-mytsinjo/internal/config"
	httpapi "github.com/solrobto/reclamation-mytsinjo/internal/http"
	"github.com/solrobto/reclamation-mytsinjo/internal/notify"
	"github.com/solrobto/reclamation-mytsinjo/internal/observability"
	"github.com/solrobto/reclamation-mytsinjo/internal/reminder"
	"github.com/solrobto/reclamation-mytsinjo/internal/repo"
	"github.com/solrobto/reclamation-mytsinjo/internal/services"
	"github.com/solrobto/reclamation-mytsinjo/internal/sysutil"
)

// version is set at build time with -ldflags "-X main.version=...".
var version string

const shutdownTimeout = 10 * time.Second

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file, using process environment")
	}

	cfg := config.MustLoad()
	sysutil.SetupLogger(os.Stdout, cfg.LogLevel, cfg.LogPretty, cfg.OTEL.ServiceName)
	gin.SetMode(cfg.GinMode)

	appVersion := sysutil.FirstNonEmpty(version, os.Getenv("APP_VERSION"), "dev")
	dbSystem := "sqlite"
	if cfg.UsePostgres() {
		dbSystem = "postgresql"
	}

	otelShutdown, err := observability.SetupOTel(context.Background(), cfg.OTEL, appVersion,
		attribute.String("db.system", dbSystem),
		attribute.String("app.timezone", cfg.Timezone),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup")
	}
	defer func() { _ = otelShutdown(context.Background()) }()

	db, err := openDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("db", dbSystem).Msg("database")
	}

	clk, err := clock.NewLocal(cfg.Timezone)
	if err != nil {
		log.Fatal().Err(err).Msg("timezone")
	}

	sinks := notify.Multi{notify.Log{}}
	if cfg.NATS.URL != "" {
		nc, err := notify.Connect(cfg.NATS.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("nats")
		}
		defer nc.Drain()
		sinks = append(sinks, &notify.NATS{Conn: nc, Subject: cfg.NATS.Subject, Now: clk.Now})
		log.Info().Str("subject", cfg.NATS.Subject).Msg("publishing notifications to NATS")
	}

	store := services.GormRepo{}
	reclSvc := services.NewReclamationService(db, store, clk, sinks)
	remSvc := services.NewReminderService(db, store, clk, sinks)
	remSvc.Cooldown = cfg.Reminder.Cooldown
	remSvc.AutoDelay = cfg.Reminder.AutoDelay

	var sched *reminder.Scheduler
	if cfg.Reminder.Enabled {
		schedule, err := config.ParseSchedule(cfg.Reminder.Schedule)
		if err != nil {
			log.Fatal().Err(err).Msg("reminder schedule")
		}
		sched = reminder.New(remSvc,
			reminder.WithClock(clk),
			reminder.WithSchedule(schedule),
			reminder.WithLogger(log.Logger),
		)
		sched.Start()
	}

	r := gin.New()
	httpapi.RegisterRoutes(r, httpapi.Deps{
		DB:           db,
		Clock:        clk,
		Reclamations: reclSvc,
		Reminders:    remSvc,
	}, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("version", appVersion).
			Str("db", dbSystem).
			Bool("reminders", cfg.Reminder.Enabled).
			Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	if sched != nil {
		sched.Stop()
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info().Msg("stopped")
}

// openDB opens PostgreSQL when DATABASE_URL is set, the SQLite file
// otherwise, then installs tracing and migrates the schema.
func openDB(cfg config.Config) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)
	if cfg.UsePostgres() {
		db, err = repo.OpenPostgres(cfg.DatabaseURL)
	} else {
		db, err = repo.OpenSQLite(cfg.DBPath)
	}
	if err != nil {
		return nil, err
	}
	if cfg.OTEL.Enabled {
		if err := repo.EnableTracing(db); err != nil {
			return nil, err
		}
	}
	if err := repo.AutoMigrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
