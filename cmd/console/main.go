package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/eduplatform/authoring/docs"
	"github.com/eduplatform/authoring/internal/config"
	"github.com/eduplatform/authoring/internal/draft"
	"github.com/eduplatform/authoring/internal/gateway"
	"github.com/eduplatform/authoring/internal/handlers"
	"github.com/eduplatform/authoring/internal/logger"
	"github.com/eduplatform/authoring/internal/middleware"
	"github.com/eduplatform/authoring/internal/notify"
	"github.com/eduplatform/authoring/internal/querycache"
	"github.com/eduplatform/authoring/internal/repositories"
	"github.com/eduplatform/authoring/internal/selection"
	"github.com/eduplatform/authoring/internal/services"
	"github.com/eduplatform/authoring/internal/storage"
	"github.com/eduplatform/authoring/internal/wizard"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// @title Authoring Console API
// @version 1.0
// @description API of the course authoring console
// @termsOfService http://swagger.io/terms/

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api/v1
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting authoring console", zap.String("draft_storage", cfg.Draft.Storage))

	// Open draft storage
	draftStorage, closeStorage, err := openDraftStorage(cfg)
	if err != nil {
		logger.Logger.Fatal("Failed to open draft storage", zap.Error(err))
	}
	defer closeStorage()

	// Query cache and its eviction schedule
	cache := querycache.New(querycache.Options{
		StaleTime: cfg.Cache.StaleTime,
		GCTime:    cfg.Cache.GCTime,
	}, logger.Logger)
	janitor, err := querycache.NewJanitor(cache, cfg.Cache.GCTime, logger.Logger)
	if err != nil {
		logger.Logger.Fatal("Failed to create cache janitor", zap.Error(err))
	}
	janitor.Start()
	defer janitor.Stop()

	// Gateway client
	gw := gateway.NewClient(gateway.Options{
		BaseURL: cfg.Gateway.BaseURL,
		Token:   cfg.Gateway.Token,
		Timeout: cfg.Gateway.Timeout,
	}, logger.Logger)

	notifications := notify.NewCenter(0, logger.Logger)

	// Initialize services
	courseService := services.NewCourseService(gw, cache, notifications, cfg.Gateway.AcademyID, logger.Logger)
	sectionService := services.NewSectionService(gw, cache, notifications, logger.Logger)
	lessonService := services.NewLessonService(gw, cache, notifications, logger.Logger)
	toolService := services.NewToolService(gw, cache, notifications, logger.Logger)
	treeService := services.NewTreeService(courseService, sectionService, lessonService, toolService)

	selectionController := selection.NewController(toolService, logger.Logger)
	drafts := draft.NewManager(draftStorage, cfg.Draft.Debounce, logger.Logger)
	defer drafts.Close()

	// Initialize handlers
	coursesHandler := handlers.NewCoursesHandler(courseService, treeService, cache.Locks(), selectionController, logger.Logger)
	contentHandler := handlers.NewContentHandler(sectionService, lessonService, toolService, selectionController, logger.Logger)
	selectionHandler := handlers.NewSelectionHandler(selectionController, sectionService, lessonService, logger.Logger)
	courseFormHandler := handlers.NewCourseFormHandler(courseService, drafts, wizard.New(wizard.ModeCreate), logger.Logger)
	notificationsHandler := handlers.NewNotificationsHandler(notifications, logger.Logger)

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger.Logger))
	r.Use(middleware.Recovery(logger.Logger))
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	r.Use(httprate.LimitByIP(cfg.Server.RateLimitPerMinute, time.Minute))

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://localhost:%d/swagger/doc.json", cfg.Server.Port)),
	))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RequestSizeLimit(middleware.MaxUploadBodySize))
		coursesHandler.RegisterRoutes(r)
		contentHandler.RegisterRoutes(r)
		selectionHandler.RegisterRoutes(r)
		courseFormHandler.RegisterRoutes(r)
		notificationsHandler.RegisterRoutes(r)
	})

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  5 * time.Minute,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}

// openDraftStorage opens the configured draft backend and returns its close function
func openDraftStorage(cfg *config.Config) (draft.Storage, func(), error) {
	switch cfg.Draft.Storage {
	case config.DraftStorageMySQL:
		db, err := connectDB(cfg.DSN())
		if err != nil {
			return nil, nil, err
		}
		if err := runMigrations(db); err != nil {
			db.Close()
			return nil, nil, err
		}
		return repositories.NewDraftRepository(db, cfg.Gateway.AcademyID, logger.Logger), func() { db.Close() }, nil
	case config.DraftStorageRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			rdb.Close()
			return nil, nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		return storage.NewRedisStorage(rdb, cfg.Draft.TTL), func() { rdb.Close() }, nil
	}
	return storage.NewFileStorage(cfg.Draft.FilePath), func() {}, nil
}

// connectDB connects to the database
func connectDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// runMigrations creates the drafts table
func runMigrations(db *sql.DB) error {
	driver, err := mysql.WithInstance(db, &mysql.Config{
		MigrationsTable: "authoring_schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	migrationPath := "file://migrations"
	if _, err := os.Stat("migrations"); os.IsNotExist(err) {
		if _, err := os.Stat("../../migrations"); err == nil {
			migrationPath = "file://../../migrations"
		}
	}

	m, err := migrate.NewWithDatabaseInstance(migrationPath, "mysql", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
