package repository

import (
	"context"
	"sort"

	"mecanica_hub/internal/domain/entities"
	"mecanica_hub/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const paymentsServiceRequestIndex = "service_request_id-index"

type servicePaymentItem struct {
	ID               string                 `dynamodbav:"id"`
	ServiceRequestID string                 `dynamodbav:"service_request_id"`
	ClientID         string                 `dynamodbav:"client_id"`
	Amount           float64                `dynamodbav:"amount"`
	Date             string                 `dynamodbav:"date"`
	Status           string                 `dynamodbav:"status"`
	MPPayload        map[string]interface{} `dynamodbav:"mp_payload,omitempty"`
	MPPayloadRaw     string                 `dynamodbav:"mp_payload_raw,omitempty"`
}

// ServicePaymentDynamoRepository persists ServicePayment entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: service_request_id-index (PK: service_request_id)
type ServicePaymentDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IServicePaymentRepository = (*ServicePaymentDynamoRepository)(nil)

func NewServicePaymentDynamoRepository(ddb DynamoAPI, tableName string) *ServicePaymentDynamoRepository {
	return &ServicePaymentDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *ServicePaymentDynamoRepository) Create(ctx context.Context, p entities.ServicePayment) (entities.ServicePayment, error) {
	av, err := attributevalue.MarshalMap(toServicePaymentItem(p))
	if err != nil {
		return entities.ServicePayment{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return entities.ServicePayment{}, interfaces.ErrStatusConflict
		}
		return entities.ServicePayment{}, err
	}
	return p, nil
}

func (r *ServicePaymentDynamoRepository) GetByID(ctx context.Context, id string) (entities.ServicePayment, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            stringKey("id", id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.ServicePayment{}, err
	}
	if len(out.Item) == 0 {
		return entities.ServicePayment{}, nil
	}

	var it servicePaymentItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.ServicePayment{}, err
	}
	return fromServicePaymentItem(it), nil
}

func (r *ServicePaymentDynamoRepository) ListByServiceRequestID(ctx context.Context, serviceRequestID string) ([]entities.ServicePayment, error) {
	raw, err := queryAll(ctx, r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(paymentsServiceRequestIndex),
		KeyConditionExpression: aws.String("service_request_id = :sid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":sid": &types.AttributeValueMemberS{Value: serviceRequestID},
		},
	})
	if err != nil {
		return nil, err
	}

	items := make([]entities.ServicePayment, 0, len(raw))
	for _, av := range raw {
		var it servicePaymentItem
		if err := attributevalue.UnmarshalMap(av, &it); err != nil {
			return nil, err
		}
		items = append(items, fromServicePaymentItem(it))
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Date.Before(items[j].Date) })
	return items, nil
}

func toServicePaymentItem(p entities.ServicePayment) servicePaymentItem {
	return servicePaymentItem{
		ID:               p.ID,
		ServiceRequestID: p.ServiceRequestID,
		ClientID:         p.ClientID,
		Amount:           p.Amount,
		Date:             formatTime(p.Date),
		Status:           string(p.Status),
		MPPayload:        p.MPPayload,
		MPPayloadRaw:     string(p.MPPayloadRaw),
	}
}

func fromServicePaymentItem(it servicePaymentItem) entities.ServicePayment {
	return entities.ServicePayment{
		ID:               it.ID,
		ServiceRequestID: it.ServiceRequestID,
		ClientID:         it.ClientID,
		Amount:           it.Amount,
		Date:             parseTime(it.Date),
		Status:           entities.PaymentStatus(it.Status),
		MPPayload:        it.MPPayload,
		MPPayloadRaw:     []byte(it.MPPayloadRaw),
	}
}
