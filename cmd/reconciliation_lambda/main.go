package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"github.com/rtgspay/settlement-engine/pkg/config"
	"github.com/rtgspay/settlement-engine/pkg/logger"
	"github.com/rtgspay/settlement-engine/pkg/models"
	"github.com/rtgspay/settlement-engine/pkg/notify"
	"github.com/rtgspay/settlement-engine/pkg/orchestrator"
	"github.com/rtgspay/settlement-engine/pkg/rtgs"
	dydbstore "github.com/rtgspay/settlement-engine/pkg/storage/dynamodb"
)

var (
	service   *orchestrator.Service
	appLogger *logger.Logger
)

func init() {
	cfg := config.Load()

	if cfg.Storage.TransactionsTable == "" || cfg.Storage.BatchesTable == "" || cfg.Storage.AuditTable == "" {
		log.Fatal("One or more DynamoDB table name environment variables are not set")
	}
	if cfg.Gateway.BaseURL == "" {
		log.Fatal("RTGS_GATEWAY_URL environment variable not set")
	}

	appLogger = logger.New(cfg.Logging.Level)

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

	service = orchestrator.New(orchestrator.Params{
		Transactions: store,
		Batches:      store,
		Audit:        store,
		Gateway:      gateway,
		Notifier:     notifier,
		Logger:       appLogger,
	})
}

// HandleRequest runs on a schedule and reconciles every batch whose settlement
// outcome is not yet known: PROCESSING batches whose submission timed out, and
// SENT batches with transactions still awaiting a terminal status.
func HandleRequest(ctx context.Context, event events.CloudWatchEvent) error {
	reconciled := 0
	for _, status := range []models.BatchStatus{models.BatchProcessing, models.BatchSent} {
		batches, err := service.ListBatchesByStatus(ctx, status)
		if err != nil {
			appLogger.Error(ctx, "failed to list batches", "status", string(status), "error", err)
			return err
		}

		for _, batch := range batches {
			if _, err := service.ReconcileBatch(ctx, batch.Id); err != nil {
				// A gateway outage should not fail the whole run; the next
				// schedule retries.
				appLogger.Error(ctx, "failed to reconcile batch",
					"batch_id", batch.Id, "batch_number", batch.BatchNumber, "error", err)
				continue
			}
			reconciled++
		}
	}

	appLogger.Info(ctx, "reconciliation run complete", "batches", reconciled)
	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
