package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"escrowpay/internal/domain/entities"
	"escrowpay/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultNotificationsTableName = "payment_notifications"
	notificationsPendingIndex     = "pending-index"
	pendingPartitionValue         = "PENDING"

	// A claim older than this is considered abandoned (crashed attempt) and may
	// be taken over.
	processingClaimTTL = 5 * time.Minute
)

type notificationItem struct {
	ReferenceNo      string `dynamodbav:"reference_no"`
	RawPayload       string `dynamodbav:"raw_payload,omitempty"`
	Succeeded        bool   `dynamodbav:"succeeded"`
	ReceivedAt       string `dynamodbav:"received_at"`
	LastRetryAt      string `dynamodbav:"last_retry_at,omitempty"`
	ProcessedAt      string `dynamodbav:"processed_at,omitempty"`
	ClaimedAt        string `dynamodbav:"claimed_at,omitempty"`
	EscalatedAt      string `dynamodbav:"escalated_at,omitempty"`
	RetryCount       int    `dynamodbav:"retry_count"`
	LastError        string `dynamodbav:"last_error,omitempty"`
	PendingPartition string `dynamodbav:"pending_partition,omitempty"`
}

// NotificationLedgerDynamoRepository persists the webhook idempotency ledger
// in DynamoDB.
//
// Table requirements:
//   - PK: reference_no (string)
//   - GSI: pending-index (PK: pending_partition, SK: received_at) — sparse:
//     pending_partition is removed when the row is marked processed, so only
//     unprocessed rows are indexed.
//
// All state transitions are conditional writes; ConditionalCheckFailed maps to
// the sentinel errors in the interfaces package.

// notificationLedgerDynamoAPI is the subset of the DynamoDB client the ledger
// uses; *dynamodb.Client satisfies it.
type notificationLedgerDynamoAPI interface {
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	UpdateItem(ctx context.Context, in *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Query(ctx context.Context, in *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

type NotificationLedgerDynamoRepository struct {
	ddb       notificationLedgerDynamoAPI
	tableName string
}

var _ interfaces.INotificationLedgerRepository = (*NotificationLedgerDynamoRepository)(nil)

func NewNotificationLedgerDynamoRepository(ddb *dynamodb.Client) *NotificationLedgerDynamoRepository {
	return &NotificationLedgerDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("NOTIFICATIONS_TABLE", defaultNotificationsTableName),
	}
}

func (r *NotificationLedgerDynamoRepository) GetByReferenceNo(ctx context.Context, referenceNo string) (entities.Notification, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"reference_no": &types.AttributeValueMemberS{Value: referenceNo},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Notification{}, err
	}
	if len(out.Item) == 0 {
		return entities.Notification{}, nil
	}

	var it notificationItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Notification{}, err
	}
	return fromNotificationItem(it), nil
}

// Upsert inserts or overwrites the unprocessed ledger row for the reference
// number: new payload and succeeded flag, retry_count back to 0, retry
// bookkeeping cleared. The claim and escalation stamps are left untouched so
// an in-flight attempt keeps its serialization guarantee.
func (r *NotificationLedgerDynamoRepository) Upsert(ctx context.Context, n entities.Notification) error {
	_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"reference_no": &types.AttributeValueMemberS{Value: n.ReferenceNo},
		},
		UpdateExpression:    aws.String("SET raw_payload = :payload, succeeded = :succeeded, received_at = :received, retry_count = :zero, pending_partition = :pending REMOVE last_retry_at, last_error"),
		ConditionExpression: aws.String("attribute_not_exists(processed_at)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":payload":   &types.AttributeValueMemberS{Value: string(n.RawPayload)},
			":succeeded": &types.AttributeValueMemberBOOL{Value: n.Succeeded},
			":received":  &types.AttributeValueMemberS{Value: formatTime(n.ReceivedAt)},
			":zero":      &types.AttributeValueMemberN{Value: "0"},
			":pending":   &types.AttributeValueMemberS{Value: pendingPartitionValue},
		},
	})
	if isConditionalCheckFailed(err) {
		return interfaces.ErrNotificationAlreadyProcessed
	}
	return err
}

// Claim takes the single-writer processing claim for the row. The condition
// admits the claim only for unprocessed rows whose previous claim is absent or
// stale, so two near-simultaneous attempts cannot both proceed.
func (r *NotificationLedgerDynamoRepository) Claim(ctx context.Context, referenceNo string, now time.Time) error {
	stale := now.Add(-processingClaimTTL)
	_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"reference_no": &types.AttributeValueMemberS{Value: referenceNo},
		},
		UpdateExpression:    aws.String("SET claimed_at = :now"),
		ConditionExpression: aws.String("attribute_exists(reference_no) AND attribute_not_exists(processed_at) AND (attribute_not_exists(claimed_at) OR claimed_at < :stale)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":now":   &types.AttributeValueMemberS{Value: formatTime(now)},
			":stale": &types.AttributeValueMemberS{Value: formatTime(stale)},
		},
	})
	if isConditionalCheckFailed(err) {
		return interfaces.ErrProcessingInFlight
	}
	return err
}

// MarkProcessed stamps processed_at (freezing the row), records an optional
// terminal note, releases the claim and drops the row out of the pending index.
func (r *NotificationLedgerDynamoRepository) MarkProcessed(ctx context.Context, referenceNo string, processedAt time.Time, note string) error {
	update := "SET processed_at = :processed REMOVE claimed_at, pending_partition"
	values := map[string]types.AttributeValue{
		":processed": &types.AttributeValueMemberS{Value: formatTime(processedAt)},
	}
	if note != "" {
		update = "SET processed_at = :processed, last_error = :note REMOVE claimed_at, pending_partition"
		values[":note"] = &types.AttributeValueMemberS{Value: note}
	}

	_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"reference_no": &types.AttributeValueMemberS{Value: referenceNo},
		},
		UpdateExpression:          aws.String(update),
		ConditionExpression:       aws.String("attribute_exists(reference_no)"),
		ExpressionAttributeValues: values,
	})
	return err
}

// RecordFailure increments the retry counter, stamps last_retry_at/last_error
// and releases the claim so the reconciliation pass can pick the row up again.
func (r *NotificationLedgerDynamoRepository) RecordFailure(ctx context.Context, referenceNo string, at time.Time, cause string) (entities.Notification, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"reference_no": &types.AttributeValueMemberS{Value: referenceNo},
		},
		UpdateExpression:    aws.String("SET retry_count = retry_count + :one, last_retry_at = :at, last_error = :cause REMOVE claimed_at"),
		ConditionExpression: aws.String("attribute_exists(reference_no) AND attribute_not_exists(processed_at)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one":   &types.AttributeValueMemberN{Value: "1"},
			":at":    &types.AttributeValueMemberS{Value: formatTime(at)},
			":cause": &types.AttributeValueMemberS{Value: cause},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if isConditionalCheckFailed(err) {
		return entities.Notification{}, interfaces.ErrNotificationAlreadyProcessed
	}
	if err != nil {
		return entities.Notification{}, err
	}

	var it notificationItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Notification{}, err
	}
	return fromNotificationItem(it), nil
}

func (r *NotificationLedgerDynamoRepository) ListUnprocessed(ctx context.Context, limit int, maxRetries int) ([]entities.Notification, error) {
	return r.queryPending(ctx, limit, "retry_count < :max", maxRetries)
}

func (r *NotificationLedgerDynamoRepository) ListExhausted(ctx context.Context, limit int, maxRetries int) ([]entities.Notification, error) {
	return r.queryPending(ctx, limit, "retry_count >= :max", maxRetries)
}

// queryPending collects up to limit rows from the pending index that match the
// retry-count filter. Query's Limit bounds the items *evaluated* before the
// filter runs, and the index head can be occupied entirely by rows the filter
// rejects (exhausted rows stay unprocessed forever), so the query paginates
// with ExclusiveStartKey until it has enough matches or the partition is done.
func (r *NotificationLedgerDynamoRepository) queryPending(ctx context.Context, limit int, filter string, maxRetries int) ([]entities.Notification, error) {
	items := make([]entities.Notification, 0, limit)
	var startKey map[string]types.AttributeValue

	for {
		out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(r.tableName),
			IndexName:              aws.String(notificationsPendingIndex),
			KeyConditionExpression: aws.String("pending_partition = :pending"),
			FilterExpression:       aws.String(filter),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":pending": &types.AttributeValueMemberS{Value: pendingPartitionValue},
				":max":     &types.AttributeValueMemberN{Value: itoa(maxRetries)},
			},
			Limit:             aws.Int32(int32(limit)),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, err
		}

		for _, raw := range out.Items {
			var it notificationItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			items = append(items, fromNotificationItem(it))
			if len(items) >= limit {
				return items, nil
			}
		}
		if len(out.LastEvaluatedKey) == 0 {
			return items, nil
		}
		startKey = out.LastEvaluatedKey
	}
}

// MarkEscalated stamps escalated_at if no escalation exists inside the
// suppression window; ErrEscalationSuppressed otherwise.
func (r *NotificationLedgerDynamoRepository) MarkEscalated(ctx context.Context, referenceNo string, now time.Time, suppressionWindow time.Duration) error {
	cutoff := now.Add(-suppressionWindow)
	_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"reference_no": &types.AttributeValueMemberS{Value: referenceNo},
		},
		UpdateExpression:    aws.String("SET escalated_at = :now"),
		ConditionExpression: aws.String("attribute_exists(reference_no) AND attribute_not_exists(processed_at) AND (attribute_not_exists(escalated_at) OR escalated_at < :cutoff)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":now":    &types.AttributeValueMemberS{Value: formatTime(now)},
			":cutoff": &types.AttributeValueMemberS{Value: formatTime(cutoff)},
		},
	})
	if isConditionalCheckFailed(err) {
		return interfaces.ErrEscalationSuppressed
	}
	return err
}

func fromNotificationItem(it notificationItem) entities.Notification {
	n := entities.Notification{
		ReferenceNo: it.ReferenceNo,
		Succeeded:   it.Succeeded,
		RetryCount:  it.RetryCount,
		LastError:   it.LastError,
	}
	if it.RawPayload != "" {
		n.RawPayload = json.RawMessage(it.RawPayload)
	}
	n.ReceivedAt, _ = time.Parse(time.RFC3339Nano, it.ReceivedAt)
	n.LastRetryAt = parseTimePtr(it.LastRetryAt)
	n.ProcessedAt = parseTimePtr(it.ProcessedAt)
	n.ClaimedAt = parseTimePtr(it.ClaimedAt)
	n.EscalatedAt = parseTimePtr(it.EscalatedAt)
	return n
}

func isConditionalCheckFailed(err error) bool {
	if err == nil {
		return false
	}
	var ccf *types.ConditionalCheckFailedException
	return errors.As(err, &ccf)
}
