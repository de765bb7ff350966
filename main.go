package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	"mediacatalog/config"
	"mediacatalog/database"
	_ "mediacatalog/docs" // Swagger docs
	"mediacatalog/handlers"
	"mediacatalog/logger"
	"mediacatalog/middleware"
	"mediacatalog/scheduler"
	"mediacatalog/services"
	"mediacatalog/storage"
)

// @title Media Catalog API
// @version 1.0
// @description Catalog of movies and series with poster and technical-sheet storage

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

func main() {
	cfg := config.Load()

	logConfig := logger.Config{
		Level:    logger.INFO,
		LogDir:   cfg.LogDir,
		MaxAge:   7,
		UseColor: true,
	}
	if err := logger.Initialize(logConfig); err != nil {
		logger.Fatal("Failed to initialize logger: %v", err)
	}

	logger.Info("Media Catalog Server starting")

	if err := database.Initialize(cfg.DBType, cfg.DBDSN); err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}
	defer database.Close()

	store, localStore, err := buildBlobStore(cfg)
	if err != nil {
		logger.Fatal("Failed to build blob store: %v", err)
	}

	// The process cannot serve uploads without its container.
	ensureCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := store.EnsureContainer(ensureCtx); err != nil {
		cancel()
		logger.Fatal("Failed to ensure storage container: %v", err)
	}
	cancel()

	sqlExecutor := services.NewSQLExecutor(database.DB)
	attachmentRepo := services.NewAttachmentRepository(sqlExecutor)
	attachmentService := services.NewAttachmentService(sqlExecutor, attachmentRepo, store)
	catalogService := services.NewCatalogService(sqlExecutor, attachmentService)
	genreService := services.NewGenreService(sqlExecutor)
	dashboardService := services.NewDashboardService(sqlExecutor, store)

	titleHandler := handlers.NewTitleHandler(catalogService)
	genreHandler := handlers.NewGenreHandler(genreService)
	attachmentHandler := handlers.NewAttachmentHandler(attachmentService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	var sweeper *scheduler.Sweeper
	if cfg.SweepInterval > 0 {
		sweeper = scheduler.NewSweeper(attachmentRepo, store, cfg.SweepInterval)
		sweeper.Start()
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)
	mux.HandleFunc("GET /health", healthHandler)
	mux.HandleFunc("GET /{$}", homeHandler)

	api := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.ChainMiddleware(
			h,
			middleware.LoggingMiddleware,
			middleware.TimeoutMiddleware(cfg.RequestTimeout),
			middleware.CORSMiddleware,
			middleware.SetJSONHeader,
		)
	}

	mux.HandleFunc("GET /api/titles", api(titleHandler.List))
	mux.HandleFunc("POST /api/titles", api(titleHandler.Create))
	mux.HandleFunc("GET /api/titles/{id}", api(titleHandler.Get))
	mux.HandleFunc("PUT /api/titles/{id}", api(titleHandler.Update))
	mux.HandleFunc("DELETE /api/titles/{id}", api(titleHandler.Delete))

	mux.HandleFunc("GET /api/titles/{id}/poster", api(attachmentHandler.GetPoster))
	mux.HandleFunc("POST /api/titles/{id}/poster", api(attachmentHandler.UploadPoster))
	mux.HandleFunc("GET /api/titles/{id}/sheets", api(attachmentHandler.ListSheets))
	mux.HandleFunc("POST /api/titles/{id}/sheets", api(attachmentHandler.UploadTechnicalSheet))
	mux.HandleFunc("GET /api/titles/{id}/attachments", api(attachmentHandler.List))
	mux.HandleFunc("DELETE /api/attachments/{id}", api(attachmentHandler.Delete))
	mux.HandleFunc("GET /api/attachments/{id}/download-url", api(attachmentHandler.DownloadURL))

	mux.HandleFunc("GET /api/genres", api(genreHandler.List))
	mux.HandleFunc("POST /api/genres", api(genreHandler.Create))
	mux.HandleFunc("PUT /api/genres/{id}", api(genreHandler.Rename))
	mux.HandleFunc("DELETE /api/genres/{id}", api(genreHandler.Delete))

	mux.HandleFunc("GET /api/dashboard/stats", api(dashboardHandler.Stats))

	if localStore != nil {
		mediaHandler := handlers.NewMediaHandler(localStore)
		mux.HandleFunc("GET /media/", middleware.ChainMiddleware(
			mediaHandler.Serve,
			middleware.LoggingMiddleware,
		))
	}

	addr := cfg.Host + ":" + cfg.Port
	server := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan

		logger.Warn("Received shutdown signal")
		if sweeper != nil {
			sweeper.Stop()
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown failed: %v", err)
		}
	}()

	logger.Info("Server listening on http://%s", addr)
	logger.Info("Swagger UI: http://%s/swagger/index.html", addr)
	logger.Info("Storage backend: %s", cfg.StorageBackend)
	logger.Info("Database: %s", cfg.DBType)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("Server failed to start: %v", err)
	}

	logger.Info("Server stopped")
}

// buildBlobStore picks the configured backend. The local store is also
// returned concretely so the media handler can be wired when it is in use.
func buildBlobStore(cfg *config.Config) (storage.BlobStore, *storage.LocalStore, error) {
	switch cfg.StorageBackend {
	case config.BackendMinIO:
		store, err := storage.NewMinIOStore(storage.MinIOConfig{
			Endpoint:  cfg.MinIOEndpoint,
			AccessKey: cfg.MinIOAccessKey,
			SecretKey: cfg.MinIOSecretKey,
			UseSSL:    cfg.MinIOUseSSL,
			Bucket:    cfg.Container,
		})
		return store, nil, err
	default:
		local := storage.NewLocalStore(cfg.LocalStorageDir, cfg.PublicBaseURL, cfg.SignedURLSecret)
		return local, local, nil
	}
}

func homeHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"success","message":"Media Catalog Server","version":"1.0.0"}`))
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"success","message":"Server is healthy"}`))
}
