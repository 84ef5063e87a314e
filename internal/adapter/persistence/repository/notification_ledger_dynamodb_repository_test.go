package repository

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type fakeLedgerDynamoAPI struct {
	pages []*dynamodb.QueryOutput
	calls []*dynamodb.QueryInput
}

func (f *fakeLedgerDynamoAPI) GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	return &dynamodb.GetItemOutput{}, nil
}

func (f *fakeLedgerDynamoAPI) UpdateItem(ctx context.Context, in *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	return &dynamodb.UpdateItemOutput{}, nil
}

func (f *fakeLedgerDynamoAPI) Query(ctx context.Context, in *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.calls = append(f.calls, in)
	page := f.pages[0]
	f.pages = f.pages[1:]
	return page, nil
}

func pendingRow(t *testing.T, referenceNo string, retryCount int) map[string]types.AttributeValue {
	t.Helper()
	raw, err := attributevalue.MarshalMap(notificationItem{
		ReferenceNo:      referenceNo,
		ReceivedAt:       formatTime(time.Now().UTC()),
		RetryCount:       retryCount,
		PendingPartition: pendingPartitionValue,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return raw
}

func TestNotificationLedgerDynamoRepository_ListUnprocessed(t *testing.T) {
	t.Run("paginates past a page the filter emptied", func(t *testing.T) {
		// The index head holds only exhausted rows: the server evaluates them,
		// the filter drops them all, and the first page comes back empty with a
		// continuation key. Retryable rows live on the next page.
		lastKey := map[string]types.AttributeValue{
			"reference_no": &types.AttributeValueMemberS{Value: "ref-exhausted-10"},
		}
		fake := &fakeLedgerDynamoAPI{pages: []*dynamodb.QueryOutput{
			{Items: nil, LastEvaluatedKey: lastKey},
			{Items: []map[string]types.AttributeValue{
				pendingRow(t, "ref-1", 0),
				pendingRow(t, "ref-2", 2),
			}},
		}}
		repo := &NotificationLedgerDynamoRepository{ddb: fake, tableName: "payment_notifications"}

		rows, err := repo.ListUnprocessed(context.Background(), 10, 5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(rows) != 2 || rows[0].ReferenceNo != "ref-1" || rows[1].ReferenceNo != "ref-2" {
			t.Fatalf("unexpected rows: %+v", rows)
		}
		if len(fake.calls) != 2 {
			t.Fatalf("expected 2 query pages, got %d", len(fake.calls))
		}
		if fake.calls[0].ExclusiveStartKey != nil {
			t.Fatalf("first page must start at the index head")
		}
		got, ok := fake.calls[1].ExclusiveStartKey["reference_no"].(*types.AttributeValueMemberS)
		if !ok || got.Value != "ref-exhausted-10" {
			t.Fatalf("expected second page to continue from the last evaluated key, got %+v", fake.calls[1].ExclusiveStartKey)
		}
	})

	t.Run("stops once the limit is reached", func(t *testing.T) {
		lastKey := map[string]types.AttributeValue{
			"reference_no": &types.AttributeValueMemberS{Value: "ref-2"},
		}
		fake := &fakeLedgerDynamoAPI{pages: []*dynamodb.QueryOutput{
			{Items: []map[string]types.AttributeValue{
				pendingRow(t, "ref-1", 0),
				pendingRow(t, "ref-2", 1),
			}, LastEvaluatedKey: lastKey},
		}}
		repo := &NotificationLedgerDynamoRepository{ddb: fake, tableName: "payment_notifications"}

		rows, err := repo.ListUnprocessed(context.Background(), 1, 5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(rows) != 1 || rows[0].ReferenceNo != "ref-1" {
			t.Fatalf("unexpected rows: %+v", rows)
		}
		if len(fake.calls) != 1 {
			t.Fatalf("expected a single query page, got %d", len(fake.calls))
		}
	})

	t.Run("empty partition", func(t *testing.T) {
		fake := &fakeLedgerDynamoAPI{pages: []*dynamodb.QueryOutput{{}}}
		repo := &NotificationLedgerDynamoRepository{ddb: fake, tableName: "payment_notifications"}

		rows, err := repo.ListUnprocessed(context.Background(), 10, 5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(rows) != 0 {
			t.Fatalf("expected no rows, got %+v", rows)
		}
	})
}
