package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"devdesk-server/internal/config"
	"devdesk-server/internal/handler"
	"devdesk-server/internal/middleware"
	"devdesk-server/internal/repository"
	"devdesk-server/internal/service"

	_ "github.com/go-kivik/kivik/v4/couchdb"

	"github.com/go-kivik/kivik/v4"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

func main() {
	propertiesPath := flag.String("config", "", "path to app.properties (defaults to $APP_PROPERTIES or ./app.properties)")
	migrateOnly := flag.Bool("migrate", false, "backfill legacy entries and exit")
	flag.Parse()

	cfg, err := config.Load(*propertiesPath)
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	logger := newLogger(cfg.Logging)

	for _, dir := range []string{cfg.Storage.NotesDir, cfg.Storage.DiaryDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Fatalf("Failed to create %s: %v", dir, err)
		}
	}

	entryRepo, err := newEntryRepository(cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to open entry storage: %v", err)
	}

	entryService := service.NewEntryService(
		entryRepo,
		service.EntryDefaults{AppName: cfg.Entries.DefaultAppName, User: cfg.Entries.DefaultUser},
		cfg.Entries.LazyMigration,
		logger,
	)

	migrated, err := entryService.Migrate(context.Background())
	if err != nil {
		logger.WithError(err).Error("Entry migration failed")
	} else if migrated > 0 {
		logger.WithField("count", migrated).Info("Backfilled legacy entries")
	}
	if *migrateOnly {
		if err != nil {
			os.Exit(1)
		}
		return
	}

	todoService := service.NewTodoService(
		repository.NewTodoRepository(cfg.Storage.TodoFile),
		repository.NewLinesRepository(cfg.Storage.MasterlistFile),
		logger,
	)
	noteService := service.NewNoteService(repository.NewTextRepository(cfg.Storage.NotesDir), cfg.Notes.RecentDays, logger)
	diaryService := service.NewDiaryService(repository.NewTextRepository(cfg.Storage.DiaryDir))
	searchService := service.NewSearchService(cfg.Storage.SearchRoot, cfg.Search.Extensions, cfg.Search.MaxFileBytes, logger)
	browseService := service.NewBrowseService(cfg.Storage.SearchRoot)
	libraryService := service.NewLibraryService(
		repository.NewLinesRepository(cfg.Storage.FrequentItemsFile),
		repository.NewTextRepository(cfg.Storage.TemplatesDir),
		logger,
	)

	handlers := &handler.Handlers{
		Entries: handler.NewEntryHandler(entryService),
		Todos:   handler.NewTodoHandler(todoService),
		Notes:   handler.NewNoteHandler(noteService),
		Diary:   handler.NewDiaryHandler(diaryService),
		Search:  handler.NewSearchHandler(searchService, browseService),
		Library: handler.NewLibraryHandler(libraryService),
	}

	r := mux.NewRouter()

	r.Use(middleware.LoggerMiddleware(logger))
	r.Use(middleware.CORSMiddleware(
		cfg.CORS.AllowedOrigins,
		cfg.CORS.AllowedMethods,
		cfg.CORS.AllowedHeaders,
	))
	if cfg.RateLimit.Enabled {
		r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.TrustProxy))
	}

	handlers.Register(r.PathPrefix("/api").Subrouter())

	r.HandleFunc("/health", healthHandler).Methods("GET")
	r.HandleFunc("/", rootHandler).Methods("GET")

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.WithFields(logrus.Fields{
			"addr":    addr,
			"env":     cfg.Server.Env,
			"backend": cfg.Entries.Backend,
		}).Info("Starting DevDesk server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server stopped gracefully")
}

func newLogger(cfg config.LoggingConfig) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		logger.Warnf("Unknown log level %q, using info", cfg.Level)
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return logger
}

func newEntryRepository(cfg *config.Config, logger *logrus.Logger) (repository.EntryRepository, error) {
	if cfg.Entries.Backend != "couchdb" {
		return repository.NewEntryFileRepository(cfg.Storage.EntriesFile), nil
	}

	couchURL := fmt.Sprintf("http://%s:%s@%s:%s",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
	)

	client, err := kivik.New("couch", couchURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to CouchDB: %w", err)
	}

	exists, err := client.DBExists(context.Background(), cfg.Database.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to check database existence: %w", err)
	}

	if !exists {
		if err := client.CreateDB(context.Background(), cfg.Database.Name); err != nil {
			return nil, fmt.Errorf("failed to create database: %w", err)
		}
		logger.WithField("database", cfg.Database.Name).Info("Created database")
	}

	logger.WithFields(logrus.Fields{
		"host":     cfg.Database.Host,
		"port":     cfg.Database.Port,
		"database": cfg.Database.Name,
	}).Info("Storing entries in CouchDB")

	return repository.NewEntryCouchRepository(client, cfg.Database.Name), nil
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy","service":"devdesk-server"}`))
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message":"DevDesk API","version":"1.0.0","endpoints":{"/api/entries":"GET, POST","/api/todos":"GET, POST","/api/notes":"POST","/api/search":"GET","/api/browse":"GET","/api/diary/{date}":"GET, POST"}}`))
}
