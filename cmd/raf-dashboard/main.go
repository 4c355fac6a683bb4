package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/raf-aleaqarih/raf-dashboard-main/internal/config"
	"github.com/raf-aleaqarih/raf-dashboard-main/internal/database"
	"github.com/raf-aleaqarih/raf-dashboard-main/internal/httpapi"
	"github.com/raf-aleaqarih/raf-dashboard-main/internal/logger"
	"github.com/raf-aleaqarih/raf-dashboard-main/internal/repository"
	"github.com/raf-aleaqarih/raf-dashboard-main/internal/service"
	"github.com/raf-aleaqarih/raf-dashboard-main/internal/store"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, "raf-dashboard")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// Storage: Postgres when reachable, memory repos otherwise so the admin
	// pages keep working in local dev.
	var db *sql.DB
	var contactRepo repository.ContactRepository
	var historyRepo repository.HistoryRepository
	var unitStatusRepo repository.UnitStatusRepository
	if cfg.DBEnabled {
		if d, err := database.NewPostgresDB(&cfg.Database); err == nil {
			db = d
			log.Info("database connected")
		} else {
			log.Warn("database enabled but connection failed, falling back to memory stores", zap.Error(err))
		}
	}
	if db != nil {
		contactRepo = repository.NewPostgresContactRepository(db)
		historyRepo = repository.NewPostgresHistoryRepository(db)
		unitStatusRepo = repository.NewPostgresUnitStatusRepository(db)
	} else {
		contactRepo = repository.NewMemoryContactRepository()
		historyRepo = repository.NewMemoryHistoryRepository()
		unitStatusRepo = repository.NewMemoryUnitStatusRepository()
	}

	ttl := time.Duration(cfg.Cache.TTLSeconds) * time.Second
	var cache store.ContactCache
	if cfg.Cache.Backend == "redis" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		cache = store.NewRedisCache(redisClient, ttl)
		log.Info("using redis contact cache", zap.String("addr", cfg.Redis.Addr))
	} else {
		cache = store.NewMemoryCache(ttl)
	}

	var backend *service.BackendClient
	if cfg.BackendAPIURL != "" {
		backend = service.NewBackendClient(cfg.BackendAPIURL, log)
	}

	audit := service.NewAuditRecorder(historyRepo, log)
	contactSvc := service.NewContactService(contactRepo, cache, audit, log)
	historySvc := service.NewHistoryService(historyRepo, log)
	unitStatusSvc := service.NewUnitStatusService(unitStatusRepo, backend, log)

	router := httpapi.NewRouter(log, httpapi.AuthMiddleware(cfg.AuthToken))
	router.RegisterContactSettingsRoutes(httpapi.NewContactSettingsHandler(contactSvc, cfg.IsDevelopment(), log))
	router.RegisterContactHistoryRoutes(httpapi.NewContactHistoryHandler(historySvc, log))
	router.RegisterUnitStatusRoutes(httpapi.NewUnitStatusHandler(unitStatusSvc, log))
	router.RegisterHealthRoutes(httpapi.NewHealthHandler(db, backend, cfg.Env))

	srv := service.NewServer(cfg.HTTP.Addr, router, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			log.Fatal("server stopped", zap.Error(err))
		}
	case sig := <-sigCh:
		log.Info("shutting down", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Stop(ctx); err != nil {
			log.Error("graceful shutdown failed", zap.Error(err))
		}
	}

	if db != nil {
		_ = database.Close(db)
	}
}
