package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/example/storefront/internal/api"
	"github.com/example/storefront/internal/auth"
	"github.com/example/storefront/internal/config"
	"github.com/example/storefront/internal/domain/cart"
	"github.com/example/storefront/internal/domain/catalog"
	"github.com/example/storefront/internal/domain/order"
	"github.com/example/storefront/internal/domain/user"
	"github.com/example/storefront/internal/infrastructure/kafka"
	"github.com/example/storefront/internal/infrastructure/store"
	"github.com/example/storefront/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{Service: "api", Env: cfg.Env, Level: cfg.LogLevel})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Error("failed to open store", "backend", cfg.StoreBackend, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	// Kafka is optional; without brokers order events are simply not published.
	var publisher order.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		producer := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer producer.Close()
		publisher = producer
		log.Info("kafka producer ready", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	} else {
		log.Warn("KAFKA_BROKERS not set, order events disabled")
	}

	catalogSvc := catalog.NewService(st)
	cartSvc := cart.NewService(st, st, log)
	orderSvc := order.NewService(st, st, cartSvc, publisher, log)
	userSvc := user.NewService(st)

	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.TokenExpiry)

	handlers := api.NewHandlers(catalogSvc, cartSvc, orderSvc, log)
	authHandlers := api.NewAuthHandlers(userSvc, jwtService, log)
	router := api.NewRouter(api.RouterConfig{
		Handlers:     handlers,
		AuthHandlers: authHandlers,
		JWTService:   jwtService,
		Logger:       log,
		WebDir:       cfg.WebDir,
	})

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		log.Info("server started", "addr", cfg.HTTPAddr, "store", cfg.StoreBackend)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}
	log.Info("server stopped")
}

// openStore builds the configured store backend and returns a close
// function suitable for defer.
func openStore(ctx context.Context, cfg config.Config, log *slog.Logger) (store.Store, func(), error) {
	switch cfg.StoreBackend {
	case config.StoreMongo:
		ms, err := store.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, nil, err
		}
		if err := ms.EnsureIndexes(ctx); err != nil {
			ms.Close(context.Background())
			return nil, nil, err
		}
		log.Info("connected to mongodb", "database", cfg.MongoDatabase)
		return ms, func() {
			closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer closeCancel()
			if err := ms.Close(closeCtx); err != nil {
				log.Error("mongo close error", "error", err)
			}
		}, nil

	case config.StoreDynamo:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, nil, err
		}
		client := dynamodb.NewFromConfig(awsCfg)
		log.Info("using dynamodb", "table_prefix", cfg.DynamoTablePrefix)
		return store.NewDynamoStore(client, cfg.DynamoTablePrefix), func() {}, nil

	case config.StoreMemory:
		log.Warn("using in-memory store, data will not survive restarts")
		return store.NewMemoryStore(), func() {}, nil
	}

	return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}
