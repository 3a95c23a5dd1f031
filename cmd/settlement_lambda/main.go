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

// HandleRequest runs on a schedule and submits every due batch to the
// settlement network. A batch that cannot be submitted is logged and skipped
// so one bad batch does not block the rest of the run.
func HandleRequest(ctx context.Context, event events.CloudWatchEvent) error {
	batches, err := service.ListBatchesByStatus(ctx, models.BatchCreated)
	if err != nil {
		appLogger.Error(ctx, "failed to list due batches", "error", err)
		return err
	}

	due := 0
	for _, batch := range batches {
		if batch.ScheduledAt.After(event.Time) {
			continue
		}
		due++

		if _, err := service.ProcessBatch(ctx, batch.Id); err != nil {
			switch orchestrator.KindOf(err) {
			case orchestrator.KindEmptyBatch:
				appLogger.Info(ctx, "skipping empty batch", "batch_id", batch.Id)
			case orchestrator.KindInvalidState:
				// Another run got there first.
				appLogger.Info(ctx, "batch already picked up", "batch_id", batch.Id)
			default:
				appLogger.Error(ctx, "failed to process batch", "batch_id", batch.Id, "error", err)
			}
			continue
		}
		appLogger.Info(ctx, "batch submitted", "batch_id", batch.Id, "batch_number", batch.BatchNumber)
	}

	if due == 0 {
		appLogger.Info(ctx, "no batches due")
	}
	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
