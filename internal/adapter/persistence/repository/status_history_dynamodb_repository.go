package repository

import (
	"context"

	"mecanica_hub/internal/domain/entities"
	"mecanica_hub/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type statusHistoryItem struct {
	ServiceID      string `dynamodbav:"service_id"`
	SK             string `dynamodbav:"sk"`
	ID             string `dynamodbav:"id"`
	PreviousStatus string `dynamodbav:"previous_status"`
	NewStatus      string `dynamodbav:"new_status"`
	ChangedBy      string `dynamodbav:"changed_by"`
	Role           string `dynamodbav:"role"`
	RecordedAt     string `dynamodbav:"recorded_at"`
}

// StatusHistoryDynamoRepository reads the audit trail of service requests.
// Rows are written by ServiceRequestDynamoRepository inside the same
// transaction as the status change.
//
// Table requirements:
//   - PK: service_id (string)
//   - SK: sk (string) = recorded_at#id
type StatusHistoryDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IStatusHistoryRepository = (*StatusHistoryDynamoRepository)(nil)

func NewStatusHistoryDynamoRepository(ddb DynamoAPI, tableName string) *StatusHistoryDynamoRepository {
	return &StatusHistoryDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *StatusHistoryDynamoRepository) ListByServiceID(ctx context.Context, serviceID string) ([]entities.StatusHistory, error) {
	raw, err := queryAll(ctx, r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		KeyConditionExpression: aws.String("service_id = :sid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":sid": &types.AttributeValueMemberS{Value: serviceID},
		},
		ScanIndexForward: aws.Bool(true),
		ConsistentRead:   aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}

	items := make([]entities.StatusHistory, 0, len(raw))
	for _, av := range raw {
		var it statusHistoryItem
		if err := attributevalue.UnmarshalMap(av, &it); err != nil {
			return nil, err
		}
		items = append(items, fromStatusHistoryItem(it))
	}
	return items, nil
}

func historyPut(tableName string, h entities.StatusHistory) (types.TransactWriteItem, error) {
	av, err := attributevalue.MarshalMap(toStatusHistoryItem(h))
	if err != nil {
		return types.TransactWriteItem{}, err
	}
	return types.TransactWriteItem{Put: &types.Put{
		TableName: aws.String(tableName),
		Item:      av,
	}}, nil
}

func toStatusHistoryItem(h entities.StatusHistory) statusHistoryItem {
	recordedAt := formatTime(h.RecordedAt)
	return statusHistoryItem{
		ServiceID:      h.ServiceID,
		SK:             recordedAt + "#" + h.ID,
		ID:             h.ID,
		PreviousStatus: string(h.PreviousStatus),
		NewStatus:      string(h.NewStatus),
		ChangedBy:      h.ChangedBy,
		Role:           string(h.Role),
		RecordedAt:     recordedAt,
	}
}

func fromStatusHistoryItem(it statusHistoryItem) entities.StatusHistory {
	return entities.StatusHistory{
		ID:             it.ID,
		ServiceID:      it.ServiceID,
		PreviousStatus: entities.ServiceStatus(it.PreviousStatus),
		NewStatus:      entities.ServiceStatus(it.NewStatus),
		ChangedBy:      it.ChangedBy,
		Role:           entities.Role(it.Role),
		RecordedAt:     parseTime(it.RecordedAt),
	}
}
