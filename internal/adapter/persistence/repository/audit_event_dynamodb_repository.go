package repository

import (
	"context"
	"time"

	"escrowpay/internal/domain/entities"
	"escrowpay/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/google/uuid"
)

const defaultAuditEventsTableName = "audit_events"

type auditEventItem struct {
	ID         string                 `dynamodbav:"id"`
	EventType  string                 `dynamodbav:"event_type"`
	Severity   string                 `dynamodbav:"severity"`
	ResourceID string                 `dynamodbav:"resource_id"`
	Data       map[string]interface{} `dynamodbav:"data,omitempty"`
	CreatedAt  string                 `dynamodbav:"created_at"`
}

// AuditEventDynamoRepository is the IAuditSink backed by DynamoDB.
//
// Table requirements:
//   - PK: id (uuid string)

type AuditEventDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IAuditSink = (*AuditEventDynamoRepository)(nil)

func NewAuditEventDynamoRepository(ddb *dynamodb.Client) *AuditEventDynamoRepository {
	return &AuditEventDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("AUDIT_EVENTS_TABLE", defaultAuditEventsTableName),
	}
}

func (r *AuditEventDynamoRepository) Record(ctx context.Context, eventType string, severity entities.AuditSeverity, resourceID string, data map[string]interface{}) error {
	it := auditEventItem{
		ID:         uuid.NewString(),
		EventType:  eventType,
		Severity:   string(severity),
		ResourceID: resourceID,
		Data:       data,
		CreatedAt:  formatTime(time.Now()),
	}
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	return err
}
