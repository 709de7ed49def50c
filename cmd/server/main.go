package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/solestack/catalog-service/config"
	"github.com/solestack/catalog-service/internal/auth"
	"github.com/solestack/catalog-service/internal/blob/fsstore"
	"github.com/solestack/catalog-service/internal/imaging"
	"github.com/solestack/catalog-service/internal/pdfgen"
	"github.com/solestack/catalog-service/internal/pkg/broker"
	"github.com/solestack/catalog-service/internal/pkg/cache"
	"github.com/solestack/catalog-service/internal/pkg/logger"
	"github.com/solestack/catalog-service/internal/pkg/postgres"
	"github.com/solestack/catalog-service/internal/pkg/web"

	brandH "github.com/solestack/catalog-service/internal/brand/handler"
	brandRepoPkg "github.com/solestack/catalog-service/internal/brand/repository"
	brandUCPkg "github.com/solestack/catalog-service/internal/brand/usecase"

	prodH "github.com/solestack/catalog-service/internal/product/handler"
	prodRepoPkg "github.com/solestack/catalog-service/internal/product/repository"
	prodUCPkg "github.com/solestack/catalog-service/internal/product/usecase"

	catH "github.com/solestack/catalog-service/internal/catalog/handler"
	catRepoPkg "github.com/solestack/catalog-service/internal/catalog/repository"
	catUCPkg "github.com/solestack/catalog-service/internal/catalog/usecase"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             "info",
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.Server.AppEnv == "development" || cfg.Server.AppEnv == "dev" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = cfg.Logger.Encoding
		logConfig.Level = cfg.Logger.Level
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Connect to Database
	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	// 4. Initialize Redis (optional; brand list caching only)
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Warn("Could not connect to Redis (caching disabled)", zap.Error(err))
		redisClient = nil
	} else {
		defer redisClient.Close()
		appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
	}

	// 5. Initialize Kafka Publisher (best-effort event stream)
	publisher := broker.NewPublisher(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
	})
	defer publisher.Close()
	appLogger.Info("Kafka publisher configured",
		zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))

	// 6. Initialize Blob Store
	blobStore, err := fsstore.New(cfg.Blob.RootDir, cfg.Server.PublicBaseURL)
	if err != nil {
		appLogger.Fatal("Could not initialize blob store", zap.Error(err))
	}

	// 7. Initialize Repositories
	brandRepo := brandRepoPkg.NewPGRepository(db)
	prodRepo := prodRepoPkg.NewPGRepository(db)
	docRepo := catRepoPkg.NewPGRepository(db)

	// 8. Initialize domain components
	resizer := imaging.NewResizer()
	acquirer := imaging.NewAcquirer(
		blobStore,
		cfg.Blob.ImagesBucket,
		time.Duration(cfg.Server.FetchTimeoutSec)*time.Second,
		appLogger,
	)
	builder := pdfgen.NewBuilder(pdfgen.NewComposer())

	// 9. Initialize UseCases
	brandUC := brandUCPkg.NewBrandUseCase(brandRepo, redisClient, appLogger)
	prodUC := prodUCPkg.NewProductUseCase(
		prodRepo, brandUC, resizer, blobStore, cfg.Blob.ImagesBucket, publisher, appLogger)
	catUC := catUCPkg.NewCatalogUseCase(
		docRepo, prodRepo, acquirer, builder, blobStore, cfg.Blob.DocumentsBucket, publisher, appLogger)

	// 10. Initialize Handlers
	brandHandler := brandH.NewBrandHandler(brandUC, prodUC, appLogger)
	prodHandler := prodH.NewProductHandler(prodUC, appLogger)
	catHandler := catH.NewCatalogHandler(catUC, appLogger)

	// 11. Routes
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", auth.LoginHandler)
	mux.HandleFunc("GET /brands", brandHandler.List)
	mux.HandleFunc("POST /brands", brandHandler.Create)
	mux.HandleFunc("GET /brands/{id}/products", brandHandler.ListProducts)
	mux.HandleFunc("POST /products", prodHandler.Create)
	mux.HandleFunc("POST /pdf/generate", catHandler.Generate)
	mux.HandleFunc("GET /pdf/{filename}", catHandler.Download)

	// Blob buckets are served statically so public URLs resolve without a
	// separate object-storage frontend. Directory listings are suppressed.
	imagesDir := filepath.Join(cfg.Blob.RootDir, cfg.Blob.ImagesBucket)
	documentsDir := filepath.Join(cfg.Blob.RootDir, cfg.Blob.DocumentsBucket)
	mux.Handle("GET /"+cfg.Blob.ImagesBucket+"/",
		http.StripPrefix("/"+cfg.Blob.ImagesBucket+"/", web.FilesOnly(imagesDir)))
	mux.Handle("GET /"+cfg.Blob.DocumentsBucket+"/",
		http.StripPrefix("/"+cfg.Blob.DocumentsBucket+"/", web.FilesOnly(documentsDir)))

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		dbStatus := "connected"
		if err := db.PingContext(r.Context()); err != nil {
			dbStatus = "disconnected"
		}
		web.JSON(w, http.StatusOK, struct {
			Status   string `json:"status"`
			Message  string `json:"message"`
			Database string `json:"database"`
		}{Status: "OK", Message: "Server is running", Database: dbStatus})
	})

	// 12. Start HTTP Server
	port := cfg.Server.HTTPPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:         port,
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
	}

	go func() {
		appLogger.Info("Starting HTTP server", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("forced shutdown", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}
