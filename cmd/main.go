package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/fathima-sithara/media-vault/internal/auth"
	"github.com/fathima-sithara/media-vault/internal/bootstrap"
	"github.com/fathima-sithara/media-vault/internal/config"
	"github.com/fathima-sithara/media-vault/internal/database"
	"github.com/fathima-sithara/media-vault/internal/events"
	"github.com/fathima-sithara/media-vault/internal/handlers"
	"github.com/fathima-sithara/media-vault/internal/logger"
	"github.com/fathima-sithara/media-vault/internal/middleware"
	"github.com/fathima-sithara/media-vault/internal/notifier"
	"github.com/fathima-sithara/media-vault/internal/repository"
	"github.com/fathima-sithara/media-vault/internal/routes"
	"github.com/fathima-sithara/media-vault/internal/services"
	"github.com/fathima-sithara/media-vault/internal/storage"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.App.Env == "development")
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	db, client, err := database.Connect(cfg.Mongo.URI, cfg.Mongo.Database, log)
	if err != nil {
		log.Fatalf("mongo: %v", err)
	}

	bootCtx, cancelBoot := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelBoot()
	if err := bootstrap.EnsureIndexes(bootCtx, db); err != nil {
		log.Fatalf("ensure indexes: %v", err)
	}

	userRepo := repository.NewMongoUserRepo(db)
	mediaRepo := repository.NewMongoMediaRepo(db)
	adminRepo := repository.NewMongoAdminRepo(db)

	if err := bootstrap.SeedAdmin(bootCtx, adminRepo, cfg.Admin, log); err != nil {
		log.Fatalf("seed admin: %v", err)
	}

	store, err := storage.NewS3Store(context.Background(), storage.Options{
		Region:    cfg.S3.Region,
		Bucket:    cfg.S3.Bucket,
		Endpoint:  cfg.S3.Endpoint,
		AccessKey: cfg.S3.AccessKey,
		SecretKey: cfg.S3.SecretKey,
		Timeout:   cfg.S3Timeout,
	})
	if err != nil {
		log.Fatalf("s3 init: %v", err)
	}

	var pub events.Publisher = events.NopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		pub = events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	}
	defer func() { _ = pub.Close() }()

	tokens := auth.NewManager(cfg.JWT.Secret, cfg.TokenTTL)
	authSvc := services.NewAuthService(userRepo, adminRepo, tokens)
	mediaSvc := services.NewMediaService(mediaRepo, store, pub, log)
	profileSvc := services.NewProfileService(userRepo, store, log)

	var authLimiter fiber.Handler
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		authLimiter = middleware.NewRateLimiter(rdb, "auth", cfg.Redis.AuthLimit, time.Minute).ByIP()
	}

	consumerCtx, cancelConsumer := context.WithCancel(context.Background())
	defer cancelConsumer()
	if len(cfg.Kafka.Brokers) > 0 {
		consumer := notifier.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.GroupID, userRepo, log)
		go func() {
			if err := consumer.Start(consumerCtx); err != nil && consumerCtx.Err() == nil {
				log.Errorf("notifier stopped: %v", err)
			}
		}()
		defer func() { _ = consumer.Close() }()
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    256 * 1024 * 1024,
	})
	routes.Register(app, routes.Deps{
		Tokens:      tokens,
		Auth:        handlers.NewAuthHandler(authSvc, log),
		Media:       handlers.NewMediaHandler(mediaSvc, log),
		Profile:     handlers.NewProfileHandler(profileSvc, log),
		AuthLimiter: authLimiter,
	})

	go func() {
		addr := fmt.Sprintf(":%d", cfg.App.Port)
		log.Infof("starting media-vault on %s", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info("shutdown requested")

	cancelConsumer()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	_ = app.Shutdown()
	_ = client.Disconnect(shutdownCtx)
	log.Info("shutdown completed")
}
