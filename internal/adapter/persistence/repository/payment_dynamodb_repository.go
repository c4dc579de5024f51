package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"payment_adapter/internal/domain/entities"
	"payment_adapter/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultPaymentsTableName = "payments"
	paymentsGatewayRefIndex  = "gateway_reference-index"
	paymentsGatewayRefAttr   = "gateway_reference"
	paymentsVersionAttrName  = "version"
	paymentsIDAttrName       = "id"
	paymentsTimestampFormat  = time.RFC3339Nano
)

// SequenceNumber is a pointer so an item written without the attribute (the
// checkout flow creates transactions before any dispatch) unmarshals as
// unbound (-1) instead of as the legitimate sequence 0.
type transactionItem struct {
	ID             string `dynamodbav:"id"`
	Type           string `dynamodbav:"type"`
	State          string `dynamodbav:"state"`
	Amount         int64  `dynamodbav:"amount"`
	Currency       string `dynamodbav:"currency"`
	SequenceNumber *int   `dynamodbav:"sequence_number"`
	Timestamp      string `dynamodbav:"timestamp"`
}

type interactionItem struct {
	ID             string            `dynamodbav:"id"`
	Kind           string            `dynamodbav:"kind"`
	TransactionID  string            `dynamodbav:"transaction_id,omitempty"`
	SequenceNumber int               `dynamodbav:"sequence_number"`
	Timestamp      string            `dynamodbav:"timestamp"`
	Payload        map[string]string `dynamodbav:"payload,omitempty"`
}

type paymentItem struct {
	ID               string            `dynamodbav:"id"`
	Version          int64             `dynamodbav:"version"`
	Interface        string            `dynamodbav:"interface"`
	Method           string            `dynamodbav:"method"`
	GatewayReference string            `dynamodbav:"gateway_reference,omitempty"`
	RedirectURL      string            `dynamodbav:"redirect_url,omitempty"`
	Amount           int64             `dynamodbav:"amount"`
	Currency         string            `dynamodbav:"currency"`
	Transactions     []transactionItem `dynamodbav:"transactions,omitempty"`
	Interactions     []interactionItem `dynamodbav:"interactions,omitempty"`
}

// PaymentDynamoRepository is the client for the commerce-platform-owned
// payment aggregate table.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: gateway_reference-index (PK: gateway_reference)
//
// The optimistic concurrency discipline is a conditional write on the version
// attribute: a stale expected version fails the condition instead of
// rewriting history.

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
	p.Version = 1
	av, err := attributevalue.MarshalMap(toPaymentItem(p))
	if err != nil {
		return entities.Payment{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": paymentsIDAttrName,
		},
	})
	if err != nil {
		return entities.Payment{}, err
	}
	return p, nil
}

func (r *PaymentDynamoRepository) GetByID(ctx context.Context, id string) (entities.Payment, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			paymentsIDAttrName: &types.AttributeValueMemberS{Value: id},
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

func (r *PaymentDynamoRepository) GetByGatewayReference(ctx context.Context, reference string) (entities.Payment, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(paymentsGatewayRefIndex),
		KeyConditionExpression: aws.String(paymentsGatewayRefAttr + " = :ref"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":ref": &types.AttributeValueMemberS{Value: reference},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.Payment{}, err
	}
	if len(out.Items) == 0 {
		return entities.Payment{}, nil
	}

	var it paymentItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &it); err != nil {
		return entities.Payment{}, err
	}
	return fromPaymentItem(it), nil
}

func (r *PaymentDynamoRepository) UpdateWithVersion(ctx context.Context, p entities.Payment, expectedVersion int64) (entities.Payment, error) {
	p.Version = expectedVersion + 1
	av, err := attributevalue.MarshalMap(toPaymentItem(p))
	if err != nil {
		return entities.Payment{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("#version = :expected"),
		ExpressionAttributeNames: map[string]string{
			"#version": paymentsVersionAttrName,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":expected": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", expectedVersion)},
		},
	})
	if err != nil {
		var conditionErr *types.ConditionalCheckFailedException
		if errors.As(err, &conditionErr) {
			return entities.Payment{}, interfaces.ErrVersionConflict
		}
		return entities.Payment{}, err
	}
	return p, nil
}

func toPaymentItem(p entities.Payment) paymentItem {
	txs := make([]transactionItem, 0, len(p.Transactions))
	for _, tx := range p.Transactions {
		txs = append(txs, transactionItem{
			ID:             tx.ID,
			Type:           string(tx.Type),
			State:          string(tx.State),
			Amount:         tx.Amount,
			Currency:       tx.Currency,
			SequenceNumber: aws.Int(tx.SequenceNumber),
			Timestamp:      tx.Timestamp.UTC().Format(paymentsTimestampFormat),
		})
	}
	ias := make([]interactionItem, 0, len(p.Interactions))
	for _, ia := range p.Interactions {
		ias = append(ias, interactionItem{
			ID:             ia.ID,
			Kind:           string(ia.Kind),
			TransactionID:  ia.TransactionID,
			SequenceNumber: ia.SequenceNumber,
			Timestamp:      ia.Timestamp.UTC().Format(paymentsTimestampFormat),
			Payload:        ia.Payload,
		})
	}
	return paymentItem{
		ID:               p.ID,
		Version:          p.Version,
		Interface:        p.Interface,
		Method:           p.Method,
		GatewayReference: p.GatewayReference,
		RedirectURL:      p.RedirectURL,
		Amount:           p.Amount,
		Currency:         p.Currency,
		Transactions:     txs,
		Interactions:     ias,
	}
}

func fromPaymentItem(it paymentItem) entities.Payment {
	txs := make([]entities.Transaction, 0, len(it.Transactions))
	for _, tx := range it.Transactions {
		ts, _ := time.Parse(paymentsTimestampFormat, tx.Timestamp)
		seq := -1
		if tx.SequenceNumber != nil {
			seq = *tx.SequenceNumber
		}
		txs = append(txs, entities.Transaction{
			ID:             tx.ID,
			Type:           entities.TransactionType(tx.Type),
			State:          entities.TransactionState(tx.State),
			Amount:         tx.Amount,
			Currency:       tx.Currency,
			SequenceNumber: seq,
			Timestamp:      ts,
		})
	}
	ias := make([]entities.InterfaceInteraction, 0, len(it.Interactions))
	for _, ia := range it.Interactions {
		ts, _ := time.Parse(paymentsTimestampFormat, ia.Timestamp)
		ias = append(ias, entities.InterfaceInteraction{
			ID:             ia.ID,
			Kind:           entities.InteractionKind(ia.Kind),
			TransactionID:  ia.TransactionID,
			SequenceNumber: ia.SequenceNumber,
			Timestamp:      ts,
			Payload:        ia.Payload,
		})
	}
	return entities.Payment{
		ID:               it.ID,
		Version:          it.Version,
		Interface:        it.Interface,
		Method:           it.Method,
		GatewayReference: it.GatewayReference,
		RedirectURL:      it.RedirectURL,
		Amount:           it.Amount,
		Currency:         it.Currency,
		Transactions:     txs,
		Interactions:     ias,
	}
}
