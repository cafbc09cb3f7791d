package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/kevinaaaquil/myb/backend/config"
	"github.com/kevinaaaquil/myb/backend/handlers"
	"github.com/kevinaaaquil/myb/backend/middleware"
	"github.com/kevinaaaquil/myb/backend/service"
	"github.com/kevinaaaquil/myb/backend/store"
	"github.com/kevinaaaquil/myb/backend/utils"
	"github.com/kevinaaaquil/myb/backend/validation"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config: ", err)
	}
	logger, err := utils.NewLogger(cfg.LogLevel, cfg.IsProduction())
	if err != nil {
		log.Fatal("logger: ", err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	if err := config.ValidateEnv(cfg, logger); err != nil {
		return err
	}

	ctx := context.Background()
	backend, err := openBackend(ctx, cfg, logger)
	if err != nil {
		return err
	}
	db := store.New(backend, logger)
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := db.Close(closeCtx); err != nil {
			logger.Warn("closing store", zap.Error(err))
		}
	}()

	content, err := openContentStore(ctx, cfg, logger)
	if err != nil {
		return err
	}

	var notifier handlers.ReportNotifier
	if m := service.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.ReportNotifyFrom, cfg.ReportNotifyTo); m != nil {
		notifier = m
	}

	done := make(chan struct{})
	defer close(done)
	var limiter *middleware.RateLimiter
	if cfg.LoginRatePerMin > 0 {
		limiter = middleware.NewRateLimiter(cfg.LoginRatePerMin, logger)
		limiter.StartCleanup(10*time.Minute, done)
	}

	router := handlers.NewRouter(handlers.RouterConfig{
		DB:                db,
		Validate:          validation.New(),
		Logger:            logger,
		Tokens:            middleware.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL),
		AdminUser:         cfg.AdminUser,
		AdminPass:         cfg.AdminPass,
		AdminPassHash:     cfg.AdminPassHash,
		Content:           content,
		MaxUploadBytes:    cfg.MaxUploadBytes(),
		UploadRequireAuth: cfg.UploadRequireAuth,
		TrustProxy:        cfg.TrustProxy,
		LoginLimiter:      limiter,
		Notifier:          notifier,
		StaticDir:         cfg.StaticDir,
		Port:              cfg.Port,
	})

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", server.Addr))
		if addrs := handlers.LANAddrs(); len(addrs) > 0 {
			logger.Info("reachable on LAN", zap.Strings("addrs", addrs), zap.Int("port", cfg.Port))
		}
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
	return nil
}

func openBackend(ctx context.Context, cfg *config.Config, logger *zap.Logger) (store.Backend, error) {
	switch cfg.StoreBackend {
	case config.BackendSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
			return nil, err
		}
		logger.Info("using sqlite store", zap.String("path", cfg.SQLitePath))
		return store.NewSQLiteBackend(cfg.SQLitePath)
	case config.BackendMongo:
		connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()
		return store.NewMongoBackend(connectCtx, cfg.MongoURI, cfg.MongoDB, logger)
	case config.BackendFile:
		logger.Info("using file store", zap.String("dir", cfg.DataDir))
		return store.NewFileBackend(cfg.DataDir)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

func openContentStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (service.ContentStore, error) {
	if cfg.S3Bucket != "" {
		s3Service, err := service.NewS3Service(ctx, cfg.S3Bucket, cfg.S3Region, cfg.S3AccessKeyID, cfg.S3SecretKey, cfg.S3Prefix)
		if err != nil {
			return nil, fmt.Errorf("s3: %w", err)
		}
		logger.Info("uploads stored in s3", zap.String("bucket", cfg.S3Bucket))
		return s3Service, nil
	}
	logger.Info("uploads stored on disk", zap.String("dir", cfg.UploadsDir))
	return service.NewDiskStore(cfg.UploadsDir)
}
