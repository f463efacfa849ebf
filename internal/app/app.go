package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/semmidev/pgvault/internal/adapter/database"
	"github.com/semmidev/pgvault/internal/adapter/notifier"
	"github.com/semmidev/pgvault/internal/adapter/storage"
	"github.com/semmidev/pgvault/internal/config"
	"github.com/semmidev/pgvault/internal/domain"
	"github.com/semmidev/pgvault/internal/dump"
	"github.com/semmidev/pgvault/internal/infrastructure/logger"
	"github.com/semmidev/pgvault/internal/infrastructure/scheduler"
	"github.com/semmidev/pgvault/internal/usecase"
)

type Logger interface {
	Infof(template string, args ...interface{})
	Errorf(template string, args ...interface{})
	Warnf(template string, args ...interface{})
}

type App struct {
	config    *config.Config
	logger    *logger.Logger
	scheduler *scheduler.Scheduler
	server    *http.Server
	backupUC  *usecase.Backup
	driveAuth *DriveAuth
}

func New(cfg *config.Config) (*App, error) {
	// Initialize logger
	log, err := logger.New(cfg.App.LogLevel, cfg.App.LogFile)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	log.Infof("Starting %s", cfg.App.Name)

	// Initialize storage sink
	sink, err := newSink(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Initialize Drive OAuth helper
	var driveAuth *DriveAuth
	if cfg.Storage.Type == "gdrive" && cfg.Storage.OAuthClientSecret != "" {
		driveAuth, err = NewDriveAuth(log, cfg.Storage.OAuthClientSecret)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize drive oauth helper: %w", err)
		}
		log.Infof("✓ Drive OAuth helper enabled")
	}

	// Initialize dump pipeline
	connector := database.NewPostgres(cfg.Database.URL)
	builder := dump.NewBuilder(cfg.Database.Schema)
	log.Infof("✓ Target database: %s (schema %s)", connector.DatabaseName(), cfg.Database.Schema)

	// Initialize notifier
	var notify usecase.Notifier
	if cfg.Notify.Telegram.Enabled {
		tg, err := notifier.NewTelegram(cfg.Notify.Telegram.BotToken, cfg.Notify.Telegram.ChatID)
		if err != nil {
			log.Errorf("Failed to initialize Telegram notifier: %v", err)
		} else {
			notify = tg
			log.Infof("✓ Telegram notifications enabled")
		}
	}

	backupUC := usecase.NewBackup(connector, builder, sink, notify, log)

	// Initialize HTTP server
	srv := &http.Server{
		Addr:              cfg.App.ListenAddr,
		Handler:           NewServer(cfg.App.APISecret, backupUC, sink, log).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &App{
		config:    cfg,
		logger:    log,
		scheduler: scheduler.New(log),
		server:    srv,
		backupUC:  backupUC,
		driveAuth: driveAuth,
	}, nil
}

func newSink(cfg *config.Config, log *logger.Logger) (domain.Sink, error) {
	switch cfg.Storage.Type {
	case "s3":
		sink, err := storage.NewS3(&cfg.Storage)
		if err != nil {
			return nil, err
		}
		log.Infof("✓ AWS S3 storage enabled (bucket: %s)", cfg.Storage.Bucket)
		return sink, nil

	case "gdrive":
		sink, err := storage.NewGDrive(&cfg.Storage)
		if err != nil {
			return nil, err
		}
		log.Infof("✓ Google Drive storage enabled")
		return sink, nil

	case "local":
		sink, err := storage.NewLocal(cfg.Storage.Path)
		if err != nil {
			return nil, err
		}
		log.Infof("✓ Local storage enabled (path: %s)", cfg.Storage.Path)
		return sink, nil

	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Storage.Type)
	}
}

func (a *App) Run(ctx context.Context) error {
	if schedule := a.config.Backup.Schedule; schedule != "" {
		err := a.scheduler.AddJob(schedule, func(ctx context.Context) error {
			a.logger.Infof("=== Triggered scheduled backup ===")
			_, err := a.backupUC.Execute(ctx)
			return err
		})
		if err != nil {
			return fmt.Errorf("failed to schedule backup: %w", err)
		}

		a.scheduler.Start()
		a.logger.Infof("Scheduler started: %s", schedule)
	}

	if a.driveAuth != nil {
		a.driveAuth.Start(a.config.Storage.OAuthListenAddr)
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("API listening on %s", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Errorf("HTTP server shutdown: %v", err)
	}
	if a.driveAuth != nil {
		if err := a.driveAuth.Shutdown(shutdownCtx); err != nil {
			a.logger.Errorf("Drive OAuth helper shutdown: %v", err)
		}
	}

	return nil
}

func (a *App) Shutdown() {
	a.logger.Infof("Shutting down application...")
	a.scheduler.Stop()
	a.logger.Close()
}
