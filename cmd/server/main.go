package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"threadboard/internal/auth"
	"threadboard/internal/config"
	apphttp "threadboard/internal/http"
	"threadboard/internal/metrics"
	"threadboard/internal/repository/sqlite"
	"threadboard/internal/service"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	if strings.TrimSpace(cfg.Auth.SessionSecret) == "" {
		logger.Fatalf("auth session secret is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	if err := sqlite.CreateAll(ctx, db); err != nil {
		logger.Fatalf("create schema: %v", err)
	}

	userRepo := sqlite.NewUserRepository(db)
	categoryRepo := sqlite.NewCategoryRepository(db)
	threadRepo := sqlite.NewThreadRepository(db)
	commentRepo := sqlite.NewCommentRepository(db)

	userService := service.NewUserService(userRepo)
	forumService := service.NewForumService(userRepo, categoryRepo, threadRepo, commentRepo)
	directoryService := service.NewDirectoryService(sqlite.NewCityRepository(db), sqlite.NewCustomerRepository(db))

	var revocations auth.Revocations
	if cfg.Redis.Addr != "" {
		rdb, err := auth.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Fatalf("connect redis: %v", err)
		}
		defer rdb.Close()
		revocations = auth.NewRedisRevocations(rdb)
		logger.Infof("session revocation backed by redis at %s", cfg.Redis.Addr)
	}

	sessions, err := auth.NewSessions(cfg.Auth.SessionSecret, time.Duration(cfg.Auth.SessionTTLMinutes)*time.Minute, revocations)
	if err != nil {
		logger.Fatalf("setup sessions: %v", err)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler := apphttp.NewHandler(apphttp.Options{
		Users:          userService,
		Forum:          forumService,
		Directory:      directoryService,
		Sessions:       sessions,
		Metrics:        metrics.New(),
		Logger:         logger,
		SecureCookies:  cfg.Auth.CookieSecure,
		RateLimitRPS:   cfg.RateLimit.RPS,
		RateLimitBurst: cfg.RateLimit.Burst,
	})
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
}
