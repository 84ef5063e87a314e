package repository

import (
	"context"
	"fmt"
	"time"

	"escrowpay/internal/domain/entities"
	"escrowpay/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultPaymentsTableName = "payments"

type paymentItem struct {
	ID            string  `dynamodbav:"id"`
	PayerID       string  `dynamodbav:"payer_id"`
	BeneficiaryID string  `dynamodbav:"beneficiary_id"`
	Amount        float64 `dynamodbav:"amount"`
	Status        string  `dynamodbav:"status"`
	EscrowStatus  string  `dynamodbav:"escrow_status"`

	AuthorizationCode string  `dynamodbav:"authorization_code,omitempty"`
	ProviderOrderID   string  `dynamodbav:"provider_order_id,omitempty"`
	TransactionDate   string  `dynamodbav:"xact_date,omitempty"`
	Fee               float64 `dynamodbav:"fee,omitempty"`
	FailureReason     string  `dynamodbav:"failure_reason,omitempty"`

	CreatedAt   string `dynamodbav:"created_at"`
	UpdatedAt   string `dynamodbav:"updated_at"`
	CompletedAt string `dynamodbav:"completed_at,omitempty"`
	FailedAt    string `dynamodbav:"failed_at,omitempty"`
}

// PaymentDynamoRepository persists Payment entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string, equal to the provider reference_no)
//
// Status transitions are conditional on status = pending so that terminal
// statuses can never be flipped by a late or duplicated notification.

type PaymentDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IPaymentRepository = (*PaymentDynamoRepository)(nil)

func NewPaymentDynamoRepository(ddb *dynamodb.Client) *PaymentDynamoRepository {
	return &PaymentDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("PAYMENTS_TABLE", defaultPaymentsTableName),
	}
}

func (r *PaymentDynamoRepository) Create(ctx context.Context, p entities.Payment) (entities.Payment, error) {
	av, err := attributevalue.MarshalMap(toPaymentItem(p))
	if err != nil {
		return entities.Payment{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if isConditionalCheckFailed(err) {
		return entities.Payment{}, interfaces.ErrPaymentAlreadyExists
	}
	if err != nil {
		return entities.Payment{}, err
	}
	return p, nil
}

func (r *PaymentDynamoRepository) GetByID(ctx context.Context, id string) (entities.Payment, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Payment{}, err
	}
	if len(out.Item) == 0 {
		return entities.Payment{}, nil
	}

	var it paymentItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Payment{}, err
	}
	return fromPaymentItem(it), nil
}

func (r *PaymentDynamoRepository) CompleteFromPending(ctx context.Context, id string, stamp entities.PaymentCompletion) (entities.Payment, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		UpdateExpression:    aws.String("SET #status = :completed, authorization_code = :auth, provider_order_id = :order, xact_date = :xact, fee = :fee, completed_at = :at, updated_at = :at"),
		ConditionExpression: aws.String("attribute_exists(id) AND #status = :pending"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":completed": &types.AttributeValueMemberS{Value: string(entities.PaymentStatusCompleted)},
			":pending":   &types.AttributeValueMemberS{Value: string(entities.PaymentStatusPending)},
			":auth":      &types.AttributeValueMemberS{Value: stamp.AuthorizationCode},
			":order":     &types.AttributeValueMemberS{Value: stamp.ProviderOrderID},
			":xact":      &types.AttributeValueMemberS{Value: stamp.TransactionDate},
			":fee":       &types.AttributeValueMemberN{Value: formatFloat(stamp.Fee)},
			":at":        &types.AttributeValueMemberS{Value: formatTime(stamp.CompletedAt)},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if isConditionalCheckFailed(err) {
		return entities.Payment{}, interfaces.ErrPaymentStateConflict
	}
	if err != nil {
		return entities.Payment{}, err
	}

	var it paymentItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Payment{}, err
	}
	return fromPaymentItem(it), nil
}

func (r *PaymentDynamoRepository) FailFromPending(ctx context.Context, id string, reason string, failedAt time.Time) (entities.Payment, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		UpdateExpression:    aws.String("SET #status = :failed, failure_reason = :reason, failed_at = :at, updated_at = :at"),
		ConditionExpression: aws.String("attribute_exists(id) AND #status = :pending"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":failed":  &types.AttributeValueMemberS{Value: string(entities.PaymentStatusFailed)},
			":pending": &types.AttributeValueMemberS{Value: string(entities.PaymentStatusPending)},
			":reason":  &types.AttributeValueMemberS{Value: reason},
			":at":      &types.AttributeValueMemberS{Value: formatTime(failedAt)},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if isConditionalCheckFailed(err) {
		return entities.Payment{}, interfaces.ErrPaymentStateConflict
	}
	if err != nil {
		return entities.Payment{}, err
	}

	var it paymentItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Payment{}, err
	}
	return fromPaymentItem(it), nil
}

func (r *PaymentDynamoRepository) SetEscrowStatus(ctx context.Context, id string, status entities.EscrowStatus, at time.Time) error {
	_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		UpdateExpression:    aws.String("SET escrow_status = :status, updated_at = :at"),
		ConditionExpression: aws.String("attribute_exists(id)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: string(status)},
			":at":     &types.AttributeValueMemberS{Value: formatTime(at)},
		},
	})
	return err
}

func toPaymentItem(p entities.Payment) paymentItem {
	it := paymentItem{
		ID:                p.ID,
		PayerID:           p.PayerID,
		BeneficiaryID:     p.BeneficiaryID,
		Amount:            p.Amount,
		Status:            string(p.Status),
		EscrowStatus:      string(p.EscrowStatus),
		AuthorizationCode: p.AuthorizationCode,
		ProviderOrderID:   p.ProviderOrderID,
		TransactionDate:   p.TransactionDate,
		Fee:               p.Fee,
		FailureReason:     p.FailureReason,
		CreatedAt:         formatTime(p.CreatedAt),
		UpdatedAt:         formatTime(p.UpdatedAt),
	}
	if p.CompletedAt != nil {
		it.CompletedAt = formatTime(*p.CompletedAt)
	}
	if p.FailedAt != nil {
		it.FailedAt = formatTime(*p.FailedAt)
	}
	return it
}

func fromPaymentItem(it paymentItem) entities.Payment {
	p := entities.Payment{
		ID:                it.ID,
		PayerID:           it.PayerID,
		BeneficiaryID:     it.BeneficiaryID,
		Amount:            it.Amount,
		Status:            entities.PaymentStatus(it.Status),
		EscrowStatus:      entities.EscrowStatus(it.EscrowStatus),
		AuthorizationCode: it.AuthorizationCode,
		ProviderOrderID:   it.ProviderOrderID,
		TransactionDate:   it.TransactionDate,
		Fee:               it.Fee,
		FailureReason:     it.FailureReason,
	}
	p.CreatedAt, _ = time.Parse(time.RFC3339Nano, it.CreatedAt)
	p.UpdatedAt, _ = time.Parse(time.RFC3339Nano, it.UpdatedAt)
	p.CompletedAt = parseTimePtr(it.CompletedAt)
	p.FailedAt = parseTimePtr(it.FailedAt)
	return p
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%g", v)
}
