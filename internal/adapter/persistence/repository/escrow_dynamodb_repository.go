package repository

import (
	"context"
	"time"

	"escrowpay/internal/domain/entities"
	"escrowpay/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultEscrowsTableName = "escrows"

type escrowItem struct {
	PaymentID     string  `dynamodbav:"payment_id"`
	Status        string  `dynamodbav:"status"`
	HolderID      string  `dynamodbav:"holder_id"`
	BeneficiaryID string  `dynamodbav:"beneficiary_id"`
	Amount        float64 `dynamodbav:"amount"`
	Fee           float64 `dynamodbav:"fee"`
	NetAmount     float64 `dynamodbav:"net_amount"`
	HeldAt        string  `dynamodbav:"held_at"`
	ReleasedAt    string  `dynamodbav:"released_at,omitempty"`
}

// EscrowDynamoRepository persists EscrowRecord entities in DynamoDB.
//
// Table requirements:
//   - PK: payment_id (string)
//
// Create is conditional on the key not existing: a duplicated success
// notification can never mint a second record for the same payment.

type EscrowDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IEscrowRepository = (*EscrowDynamoRepository)(nil)

func NewEscrowDynamoRepository(ddb *dynamodb.Client) *EscrowDynamoRepository {
	return &EscrowDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("ESCROWS_TABLE", defaultEscrowsTableName),
	}
}

func (r *EscrowDynamoRepository) Create(ctx context.Context, e entities.EscrowRecord) (entities.EscrowRecord, error) {
	av, err := attributevalue.MarshalMap(toEscrowItem(e))
	if err != nil {
		return entities.EscrowRecord{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(payment_id)"),
	})
	if isConditionalCheckFailed(err) {
		return entities.EscrowRecord{}, interfaces.ErrEscrowAlreadyExists
	}
	if err != nil {
		return entities.EscrowRecord{}, err
	}
	return e, nil
}

func (r *EscrowDynamoRepository) GetByPaymentID(ctx context.Context, paymentID string) (entities.EscrowRecord, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"payment_id": &types.AttributeValueMemberS{Value: paymentID},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.EscrowRecord{}, err
	}
	if len(out.Item) == 0 {
		return entities.EscrowRecord{}, nil
	}

	var it escrowItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.EscrowRecord{}, err
	}
	return fromEscrowItem(it), nil
}

func (r *EscrowDynamoRepository) Release(ctx context.Context, paymentID string, releasedAt time.Time) (entities.EscrowRecord, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"payment_id": &types.AttributeValueMemberS{Value: paymentID},
		},
		UpdateExpression:    aws.String("SET #status = :released, released_at = :at"),
		ConditionExpression: aws.String("attribute_exists(payment_id) AND #status = :held"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":released": &types.AttributeValueMemberS{Value: string(entities.EscrowRecordStatusReleased)},
			":held":     &types.AttributeValueMemberS{Value: string(entities.EscrowRecordStatusHeld)},
			":at":       &types.AttributeValueMemberS{Value: formatTime(releasedAt)},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if isConditionalCheckFailed(err) {
		return entities.EscrowRecord{}, interfaces.ErrEscrowStateConflict
	}
	if err != nil {
		return entities.EscrowRecord{}, err
	}

	var it escrowItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.EscrowRecord{}, err
	}
	return fromEscrowItem(it), nil
}

func toEscrowItem(e entities.EscrowRecord) escrowItem {
	it := escrowItem{
		PaymentID:     e.PaymentID,
		Status:        string(e.Status),
		HolderID:      e.HolderID,
		BeneficiaryID: e.BeneficiaryID,
		Amount:        e.Amount,
		Fee:           e.Fee,
		NetAmount:     e.NetAmount,
		HeldAt:        formatTime(e.HeldAt),
	}
	if e.ReleasedAt != nil {
		it.ReleasedAt = formatTime(*e.ReleasedAt)
	}
	return it
}

func fromEscrowItem(it escrowItem) entities.EscrowRecord {
	e := entities.EscrowRecord{
		PaymentID:     it.PaymentID,
		Status:        entities.EscrowRecordStatus(it.Status),
		HolderID:      it.HolderID,
		BeneficiaryID: it.BeneficiaryID,
		Amount:        it.Amount,
		Fee:           it.Fee,
		NetAmount:     it.NetAmount,
	}
	e.HeldAt, _ = time.Parse(time.RFC3339Nano, it.HeldAt)
	e.ReleasedAt = parseTimePtr(it.ReleasedAt)
	return e
}
