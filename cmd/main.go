package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dosada05/tournament-dashboard/config"
	"github.com/Dosada05/tournament-dashboard/db"
	"github.com/Dosada05/tournament-dashboard/handlers"
	"github.com/Dosada05/tournament-dashboard/notify"
	"github.com/Dosada05/tournament-dashboard/realtime"
	"github.com/Dosada05/tournament-dashboard/repositories"
	api "github.com/Dosada05/tournament-dashboard/routes"
	"github.com/Dosada05/tournament-dashboard/services"
	"github.com/Dosada05/tournament-dashboard/storage"
	"github.com/go-chi/chi/v5"
)

const initialLoadTimeout = 30 * time.Second

// @title Tournament Dashboard API
// @version 1.0
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded",
		slog.Int("port", cfg.ServerPort),
		slog.String("document_store", cfg.DocumentStore))

	// Хранилище документов
	docs, dbConn, err := openDocumentStore(cfg)
	if err != nil {
		logger.Error("failed to open document store", slog.Any("error", err))
		os.Exit(1)
	}
	if dbConn != nil {
		defer func() {
			if err := dbConn.Close(); err != nil {
				logger.Error("failed to close database connection", slog.Any("error", err))
			} else {
				logger.Info("database connection closed")
			}
		}()
	}
	logger.Info("document store ready", slog.Int("max_batch_size", docs.MaxBatchSize()))

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Первичная загрузка данных
	store := services.NewEntityStore()
	gateway := services.NewPersistenceGateway(docs, store, logger)
	loadCtx, cancelLoad := context.WithTimeout(ctx, initialLoadTimeout)
	if err := gateway.Load(loadCtx); err != nil {
		logger.Error("initial load failed, serving built-in defaults", slog.Any("error", err))
	} else {
		logger.Info("dashboard data loaded")
	}
	cancelLoad()

	// Инициализация WebSocket Hub
	wsHub := realtime.NewHub(logger)
	go wsHub.Run(ctx)
	logger.Info("WebSocket Hub started")

	notifiers := services.MultiNotifier{wsHub}
	if cfg.DiscordEnabled() {
		discord, err := notify.NewDiscordNotifier(cfg.DiscordWebhookID, cfg.DiscordWebhookToken, logger)
		if err != nil {
			logger.Error("failed to initialize Discord notifier", slog.Any("error", err))
			os.Exit(1)
		}
		notifiers = append(notifiers, discord)
		logger.Info("Discord webhook notifier enabled")
	}

	// Инициализация загрузчика файлов (Cloudflare R2)
	var uploader storage.FileUploader
	if cfg.R2.Enabled() {
		uploader, err = storage.NewCloudflareR2Uploader(ctx, storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2.AccountID,
			AccessKeyID:     cfg.R2.AccessKeyID,
			SecretAccessKey: cfg.R2.SecretAccessKey,
			BucketName:      cfg.R2.BucketName,
			PublicBaseURL:   cfg.R2.PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	} else {
		logger.Info("Cloudflare R2 is not configured, media uploads disabled")
	}

	// Инициализация сервисов
	authService, err := services.NewAuthService(cfg.AdminPassword)
	if err != nil {
		logger.Error("failed to initialize auth service", slog.Any("error", err))
		os.Exit(1)
	}
	sessions := services.NewSessionController(authService, store, gateway, notifiers, cfg.SessionTTL, logger)
	adminService := services.NewAdminService(store, sessions, notifiers)
	bracketService := services.NewBracketService(store, sessions, notifiers)
	mediaService := services.NewMediaService(store, sessions, uploader, notifiers, logger)
	dashboardService := services.NewDashboardService(store)
	logger.Info("Services initialized")

	// Инициализация обработчиков HTTP
	authHandler := handlers.NewAuthHandler(sessions, cfg.JWTSecretKey)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	editHandler := handlers.NewEditHandler(sessions)
	teamHandler := handlers.NewTeamHandler(adminService, mediaService)
	playerHandler := handlers.NewPlayerHandler(adminService, mediaService)
	bracketHandler := handlers.NewBracketHandler(adminService, bracketService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub, store, cfg.CORSAllowedOrigins, logger)
	logger.Info("HTTP handlers initialized")

	// Настройка маршрутизатора
	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		[]byte(cfg.JWTSecretKey),
		cfg.CORSAllowedOrigins,
		authHandler,
		dashboardHandler,
		editHandler,
		teamHandler,
		playerHandler,
		bracketHandler,
		webSocketHandler,
	)
	logger.Info("Routes configured")

	// Настройка и запуск HTTP-сервера
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		stop()

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}

	if store.HasChanges() {
		logger.Warn("exiting with unsaved dashboard changes")
	}
	logger.Info("application exited")
}

// openDocumentStore returns the configured store and, for SQL stores, the
// underlying connection so main can close it.
func openDocumentStore(cfg *config.Config) (repositories.DocumentStore, *sql.DB, error) {
	switch cfg.DocumentStore {
	case config.StoreMemory:
		return repositories.NewMemoryDocumentStore(cfg.BatchSize), nil, nil
	case config.StorePostgres:
		return openSQLStore("postgres", cfg.DatabaseURL, repositories.DialectPostgres, cfg.BatchSize)
	case config.StoreSQLite:
		return openSQLStore("sqlite", cfg.SQLitePath, repositories.DialectSQLite, cfg.BatchSize)
	default:
		return nil, nil, fmt.Errorf("unknown document store %q", cfg.DocumentStore)
	}
}

func openSQLStore(driver, dsn string, dialect repositories.Dialect, batchSize int) (repositories.DocumentStore, *sql.DB, error) {
	conn, err := db.Connect(driver, dsn, 5*time.Second)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Migrate(conn, driver); err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	return repositories.NewSQLDocumentStore(conn, dialect, batchSize), conn, nil
}
