package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/portfolio-api/config"
	"github.com/oksasatya/portfolio-api/internal/application"
	"github.com/oksasatya/portfolio-api/internal/container"
	"github.com/oksasatya/portfolio-api/internal/domain/repository"
	pginfra "github.com/oksasatya/portfolio-api/internal/infrastructure/postgres"
	"github.com/oksasatya/portfolio-api/internal/infrastructure/search"
	"github.com/oksasatya/portfolio-api/internal/infrastructure/storage"
	"github.com/oksasatya/portfolio-api/internal/interface/middleware"
	"github.com/oksasatya/portfolio-api/internal/router"
	"github.com/oksasatya/portfolio-api/pkg/helpers"
	"github.com/oksasatya/portfolio-api/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("invalid configuration: %v", err)
	}
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	if err := pginfra.MigrateUp(cfg.PostgresDSN(), logger); err != nil {
		logger.Fatalf("migration failed: %v", err)
	}

	c := &container.Container{
		Config: cfg,
		Logger: logger,
		Pool:   pool,
		JWT:    helpers.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL),
	}

	if cfg.RedisEnabled {
		rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer func() { _ = rdb.Close() }()
		if err := rdb.Ping(ctx).Err(); err != nil {
			helpers.LogWarn(logger, "redis unreachable, rate limits fail open", err, nil)
		}
		c.Redis = rdb
	}

	store, closeStore, err := newObjectStore(ctx, cfg)
	if err != nil {
		logger.Fatalf("failed to init %s storage: %v", cfg.StorageDriver, err)
	}
	defer closeStore()
	c.Store = store

	if cfg.SearchEnabled {
		es, err := helpers.NewESClient(helpers.ESOptions{
			Addrs:    cfg.ESAddrs(),
			Username: cfg.ElasticsearchUser,
			Password: cfg.ElasticsearchPass,
		})
		if err != nil {
			logger.Fatalf("failed to init elasticsearch client: %v", err)
		}
		if err := helpers.PingES(ctx, es); err != nil {
			helpers.LogWarn(logger, "elasticsearch unreachable, project search degraded", err, nil)
		}
		idx := search.NewProjectIndex(es, cfg.ESProjectsIndex, logger)
		if err := idx.EnsureIndex(ctx); err != nil {
			helpers.LogWarn(logger, "ensure project index failed", err, logrus.Fields{"index": cfg.ESProjectsIndex})
		}
		c.Search = idx
	}

	if cfg.MailSendEnabled {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			logger.Fatalf("failed to connect to rabbitmq: %v", err)
		}
		defer pub.Close()
		c.Mail = &application.Notifier{Publisher: pub, Logger: logger}
	}

	// Gin engine and global middleware. ErrorHandler wraps Recovery and
	// renders recovered panics.
	r := gin.New()
	r.Use(middleware.RequestIDMiddleware(), middleware.RealIP())
	if cfg.HTTPLogEnabled {
		r.Use(middleware.AccessLog(logger))
	}
	r.Use(middleware.ErrorHandler(logger, cfg.IsDevelopment()), middleware.Recovery(), middleware.SecureHeaders())

	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders: []string{"Content-Length", middleware.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}
	if origins := cfg.CORSOrigins(); len(origins) > 0 {
		corsCfg.AllowOrigins = origins
		corsCfg.AllowCredentials = true
	} else {
		corsCfg.AllowAllOrigins = true
	}
	r.Use(cors.New(corsCfg))

	reg := router.NewRegistry(r, cfg.APIPrefix)
	router.InitModules(reg, c)
	reg.RegisterAll()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Errorf("server forced to shutdown: %v", err)
	}
	logger.Info("server exited properly")
}

func newObjectStore(ctx context.Context, cfg *config.Config) (repository.ObjectStore, func(), error) {
	if cfg.StorageDriver == config.StorageGCS {
		client, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			return nil, nil, err
		}
		return storage.NewGCSStore(client, cfg.GCSBucket), func() { _ = client.Close() }, nil
	}
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return nil, nil, err
	}
	return storage.NewLocalStore(cfg.UploadDir), func() {}, nil
}
