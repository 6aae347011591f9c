package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/Skufu/cardiocare/internal/chat"
	"github.com/Skufu/cardiocare/internal/config"
	"github.com/Skufu/cardiocare/internal/logger"
	"github.com/Skufu/cardiocare/internal/metrics"
	"github.com/Skufu/cardiocare/internal/predictor"
	"github.com/Skufu/cardiocare/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	gin.SetMode(cfg.GinMode)

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat, "cardiocare")
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx := context.Background()
	var db server.HealthChecker
	if cfg.EnableDB {
		pool, err := connectDB(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal("database connection failed", zap.Error(err))
		}
		defer pool.Close()
		db = pool
	}

	router := server.NewRouter(server.Deps{
		Model:        loadModel(log, cfg.ModelPath),
		Chat:         chat.NewResponder(),
		Metrics:      metrics.New(),
		Logger:       log,
		DB:           db,
		WebRoot:      resolveWebRoot(cfg.WebRoot),
		MaxBodyBytes: cfg.MaxBodyBytes,
		ChatLimiter:  chatLimiter(cfg),
	})
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	log.Info("server listening", zap.String("port", cfg.Port))
	waitForShutdown(log, srv)
}

// loadModel returns nil when the artifact cannot be used; prediction
// endpoints then answer 503 instead of the process exiting.
func loadModel(log *zap.Logger, path string) *predictor.Service {
	loaded, err := predictor.Load(path)
	if err != nil {
		log.Error("model not loaded", zap.String("path", path), zap.Error(err))
		return nil
	}

	svc := predictor.NewService(loaded.Model)
	log.Info("model loaded",
		zap.String("path", path),
		zap.String("format", loaded.Format),
		zap.String("kind", loaded.Kind),
		zap.Bool("probability", svc.SupportsProbability()),
	)
	return svc
}

func chatLimiter(cfg *config.Config) *rate.Limiter {
	if cfg.ChatRateLimit <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(cfg.ChatRateLimit), cfg.ChatRateBurst)
}

func connectDB(ctx context.Context, url string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse db url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	return pool, nil
}

func waitForShutdown(log *zap.Logger, srv *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}

// resolveWebRoot prefers the configured directory, then looks for web/ in the
// working directory and up to two parents.
func resolveWebRoot(configured string) string {
	if configured != "" {
		return configured
	}

	startDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	candidates := []string{
		startDir,
		filepath.Dir(startDir),
		filepath.Dir(filepath.Dir(startDir)),
	}

	for _, dir := range candidates {
		root := filepath.Join(dir, "web")
		if fileExists(filepath.Join(root, "templates", "index.html")) {
			return root
		}
	}

	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
