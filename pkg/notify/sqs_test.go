package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rtgspay/settlement-engine/pkg/models"
)

type fakeSQS struct {
	inputs   []*sqs.SendMessageInput
	failures int
}

func (f *fakeSQS) SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	f.inputs = append(f.inputs, params)
	if f.failures > 0 {
		f.failures--
		return nil, errors.New("throttled")
	}
	return &sqs.SendMessageOutput{}, nil
}

func TestNotify(t *testing.T) {
	tx := &models.Transaction{
		Id:              "tx-1",
		ReferenceNumber: "RTGS20240604ABCDEF01",
		UTRNumber:       "UTR123",
		CustomerID:      "cust-1",
		Details:         models.PaymentDetails{Amount: 500_000},
	}

	t.Run("Success", func(t *testing.T) {
		client := &fakeSQS{}
		notifier := NewSQSNotifier(client, "https://sqs.example/notifications")

		err := notifier.Notify(context.Background(), NewEvent(EventTransactionCompleted, tx))

		require.NoError(t, err)
		require.Len(t, client.inputs, 1)
		assert.Equal(t, "https://sqs.example/notifications", *client.inputs[0].QueueUrl)

		var got Event
		require.NoError(t, json.Unmarshal([]byte(*client.inputs[0].MessageBody), &got))
		assert.Equal(t, EventTransactionCompleted, got.Type)
		assert.Equal(t, "tx-1", got.TransactionID)
		assert.Equal(t, "UTR123", got.UTRNumber)
		assert.Equal(t, int64(500_000), got.Amount)
	})

	t.Run("RetriesTransientFailure", func(t *testing.T) {
		client := &fakeSQS{failures: 2}
		notifier := NewSQSNotifier(client, "https://sqs.example/notifications")

		err := notifier.Notify(context.Background(), NewEvent(EventTransactionInitiated, tx))

		require.NoError(t, err)
		assert.Len(t, client.inputs, 3)
	})

	t.Run("GivesUpAfterBudget", func(t *testing.T) {
		client := &fakeSQS{failures: 5}
		notifier := NewSQSNotifier(client, "https://sqs.example/notifications")

		err := notifier.Notify(context.Background(), NewEvent(EventTransactionFailed, tx))

		require.Error(t, err)
		assert.Len(t, client.inputs, 3)
	})
}

func TestNewEvent(t *testing.T) {
	tx := &models.Transaction{Id: "tx-9", ReferenceNumber: "RTGS20240604AA11BB22", Details: models.PaymentDetails{Amount: 250_000}}

	event := NewEvent(EventTransactionCancelled, tx)

	assert.Equal(t, EventTransactionCancelled, event.Type)
	assert.Equal(t, "tx-9", event.TransactionID)
	assert.Equal(t, "RTGS20240604AA11BB22", event.ReferenceNumber)
	assert.Equal(t, int64(250_000), event.Amount)
	assert.WithinDuration(t, time.Now(), event.Timestamp, time.Minute)
}
