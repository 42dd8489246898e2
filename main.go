package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-service/config"
	"storefront-service/controllers"
	"storefront-service/database"
	"storefront-service/events"
	"storefront-service/logger"
	"storefront-service/middleware"
	"storefront-service/repository"
	"storefront-service/routes"
	"storefront-service/services"
	"storefront-service/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to open store", zap.Error(err))
	}
	defer closeStore()

	sessions, closeSessions, err := openSessions(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to open session store", zap.Error(err))
	}
	defer closeSessions()

	publisher, err := openPublisher(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to create event publisher", zap.Error(err))
	}
	defer publisher.Close()

	if cfg.SeedFile != "" {
		products, err := database.LoadSeedProducts(cfg.SeedFile)
		if err != nil {
			log.Fatal("Failed to load seed file", zap.String("path", cfg.SeedFile), zap.Error(err))
		}
		if _, err := database.SeedProducts(ctx, store, products, log); err != nil {
			log.Fatal("Failed to seed catalog", zap.Error(err))
		}
	}

	cartService := services.NewCartService(store, sessions, log)
	checkoutService := services.NewCheckoutService(store, publisher, services.CheckoutOptions{StrictStock: cfg.StrictStock}, log)
	orderService := services.NewOrderService(store.Orders())
	productService := services.NewProductService(store)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	limiter := middleware.NewRateLimiter(ctx, rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst, 5*time.Minute)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		logger.RequestLogger(log),
		middleware.SecurityHeaders(),
		limiter.Middleware(),
		middleware.Timeout(cfg.RequestTimeout),
		middleware.Session(cfg.SessionCookie, cfg.SessionTTL),
	)
	routes.RegisterRoutes(router, routes.Controllers{
		Products: controllers.NewProductController(productService, cartService, log),
		Cart:     controllers.NewCartController(cartService, checkoutService, log),
		Checkout: controllers.NewCheckoutController(cartService, checkoutService, log),
		Orders:   controllers.NewOrderController(orderService, log),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Storefront service is running",
			zap.String("port", cfg.Port),
			zap.String("store", cfg.StoreDriver),
			zap.String("sessions", cfg.SessionDriver),
			zap.String("events", cfg.EventSink),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("Shutting down gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Shutdown error", zap.Error(err))
	}
	log.Info("Server shutdown complete.")
}

func openStore(ctx context.Context, cfg config.Config, log *zap.Logger) (repository.Store, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverMemory:
		log.Warn("Using in-memory store, data is lost on restart")
		return repository.NewMemoryStore(), func() {}, nil
	case config.DriverPostgres:
		db, err := database.ConnectPostgres(ctx, cfg.Postgres, log)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewGormStore(db), func() {
			if err := database.Close(db); err != nil {
				log.Error("Failed to close database", zap.Error(err))
			}
		}, nil
	default:
		return nil, nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}

func openSessions(ctx context.Context, cfg config.Config) (session.CartLookup, func(), error) {
	switch cfg.SessionDriver {
	case config.DriverMemory:
		return session.NewMemoryLookup(), func() {}, nil
	case config.DriverRedis:
		client, err := database.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return session.NewRedisLookup(client, cfg.SessionTTL), func() { client.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown SESSION_DRIVER %q", cfg.SessionDriver)
	}
}

func openPublisher(ctx context.Context, cfg config.Config) (events.Publisher, error) {
	switch cfg.EventSink {
	case config.SinkNone, "":
		return events.NopPublisher{}, nil
	case config.SinkKafka:
		return events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic), nil
	case config.SinkSNS:
		awsCfg, err := events.LoadAWSConfig(ctx, cfg.AWSRegion, cfg.AWSEndpoint)
		if err != nil {
			return nil, err
		}
		return events.NewSNSPublisher(awsCfg, cfg.SNSTopicARN)
	default:
		return nil, fmt.Errorf("unknown EVENT_SINK %q", cfg.EventSink)
	}
}
