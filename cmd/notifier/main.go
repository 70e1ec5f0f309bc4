package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/example/storefront/internal/config"
	"github.com/example/storefront/internal/email"
	"github.com/example/storefront/internal/infrastructure/kafka"
	"github.com/example/storefront/internal/infrastructure/store"
	"github.com/example/storefront/internal/logger"
	"github.com/example/storefront/internal/notification"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{Service: "notifier", Env: cfg.Env, Level: cfg.LogLevel})

	if len(cfg.KafkaBrokers) == 0 {
		log.Error("KAFKA_BROKERS is required for the notifier")
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The notifier only reads users, to resolve recipient addresses.
	var users store.Store
	switch cfg.StoreBackend {
	case config.StoreMongo:
		ms, err := store.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			log.Error("failed to connect to mongodb", "error", err)
			os.Exit(1)
		}
		defer ms.Close(context.Background())
		users = ms
	case config.StoreDynamo:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			log.Error("failed to load aws config", "error", err)
			os.Exit(1)
		}
		users = store.NewDynamoStore(dynamodb.NewFromConfig(awsCfg), cfg.DynamoTablePrefix)
	case config.StoreMemory:
		log.Warn("using in-memory store, recipient lookups will find no users")
		users = store.NewMemoryStore()
	}

	emailSvc := email.NewService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom)
	handler := notification.NewHandler(emailSvc, users, log)

	consumer := kafka.NewConsumer(cfg.KafkaBrokers, cfg.KafkaTopic, "notifier", log)
	defer consumer.Close()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down")
		cancel()
	}()

	log.Info("notifier started", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	if err := consumer.Consume(ctx, handler.HandleMessage); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("consumer error", "error", err)
		os.Exit(1)
	}
	log.Info("notifier stopped")
}
