package dynamodb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/rtgspay/settlement-engine/pkg/models"
)

const auditTransactionGSI = "transaction_id-timestamp-index"

// LogEvent appends a single audit event. The table is append-only: events are
// never updated or deleted by this store.
func (s *Store) LogEvent(ctx context.Context, event *models.AuditEvent) error {
	if event.EventID == "" {
		event.EventID = uuid.New().String()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	event.GSI1PK = "AUDIT_EVENTS"

	eventAV, err := attributevalue.MarshalMap(event)
	if err != nil {
		return fmt.Errorf("failed to marshal audit event: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(s.AuditTableName),
		Item:                eventAV,
		ConditionExpression: aws.String("attribute_not_exists(event_id)"),
	}

	if _, err := s.Client.PutItem(ctx, input); err != nil {
		return fmt.Errorf("failed to persist audit event: %w", err)
	}

	return nil
}

// ListEventsByTransaction retrieves the audit trail for one transaction, most
// recent first.
func (s *Store) ListEventsByTransaction(ctx context.Context, txID string, limit int32) ([]models.AuditEvent, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.AuditTableName),
		IndexName:              aws.String(auditTransactionGSI),
		KeyConditionExpression: aws.String("transaction_id = :txid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":txid": &types.AttributeValueMemberS{Value: txID},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(limit),
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit events: %w", err)
	}

	var events []models.AuditEvent
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &events); err != nil {
		return nil, fmt.Errorf("failed to unmarshal audit events: %w", err)
	}

	return events, nil
}
