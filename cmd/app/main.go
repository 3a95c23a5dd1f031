package main

import (
	"context"
	"log"
	"net/http"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/go-chi/chi/v5"

	"github.com/rtgspay/settlement-engine/pkg/config"
	"github.com/rtgspay/settlement-engine/pkg/handlers"
	"github.com/rtgspay/settlement-engine/pkg/logger"
	"github.com/rtgspay/settlement-engine/pkg/middleware"
	"github.com/rtgspay/settlement-engine/pkg/notify"
	"github.com/rtgspay/settlement-engine/pkg/orchestrator"
	"github.com/rtgspay/settlement-engine/pkg/rtgs"
	"github.com/rtgspay/settlement-engine/pkg/settlement"
	dydbstore "github.com/rtgspay/settlement-engine/pkg/storage/dynamodb"
	"github.com/rtgspay/settlement-engine/pkg/validation"
)

func main() {
	cfg := config.Load()

	if cfg.Storage.TransactionsTable == "" || cfg.Storage.BatchesTable == "" || cfg.Storage.AuditTable == "" {
		log.Fatal("One or more DynamoDB table name environment variables are not set")
	}
	if cfg.Gateway.BaseURL == "" {
		log.Fatal("RTGS_GATEWAY_URL environment variable not set")
	}

	appLogger := logger.New(cfg.Logging.Level)
	defer appLogger.Sync()

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := dynamodb.NewFromConfig(awsCfg)
	store := dydbstore.New(dbClient, cfg.Storage.TransactionsTable, cfg.Storage.BatchesTable, cfg.Storage.AuditTable)

	var notifier notify.Notifier
	if cfg.Notify.QueueURL != "" {
		notifier = notify.NewSQSNotifier(sqs.NewFromConfig(awsCfg), cfg.Notify.QueueURL)
	}

	gateway := rtgs.NewHTTPAdapter(cfg.Gateway.BaseURL, cfg.Gateway.APIKey,
		cfg.Gateway.TransactionTimeout, cfg.Gateway.BatchTimeout)

	service := orchestrator.New(orchestrator.Params{
		Transactions: store,
		Batches:      store,
		Audit:        store,
		Gateway:      gateway,
		Notifier:     notifier,
		Validator: validation.New(validation.Config{
			MinAmount: cfg.Validation.MinAmount,
			MaxAmount: cfg.Validation.MaxAmount,
		}),
		Window: settlement.NewCalculator(settlement.Config{
			StartHour:       cfg.Window.StartHour,
			EndHour:         cfg.Window.EndHour,
			EndMinute:       cfg.Window.EndMinute,
			CutoffHour:      cfg.Window.CutoffHour,
			CutoffMinute:    cfg.Window.CutoffMinute,
			SettlementDelay: cfg.Window.SettlementDelay,
			NextDayHour:     cfg.Window.NextDayHour,
		}),
		Logger: appLogger,
	})

	handler := handlers.NewApiHandler(service, appLogger)

	router := chi.NewRouter()
	router.Use(middleware.NewStructuredLogger(appLogger))
	router.Mount("/", handler.Routes())

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	appLogger.Info(context.Background(), "starting server", "addr", addr)

	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
