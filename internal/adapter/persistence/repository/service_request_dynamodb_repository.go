package repository

import (
	"context"
	"fmt"
	"strings"

	"mecanica_hub/internal/config"
	"mecanica_hub/internal/domain/entities"
	"mecanica_hub/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	serviceRequestsStatusIndex   = "status-index"
	serviceRequestsMechanicIndex = "mechanic_id-index"
	serviceRequestsClientIndex   = "client_id-index"

	caseNumberKeyPrefix     = "case_number#"
	mechanicActiveKeyPrefix = "mechanic_active#"
)

type serviceRequestItem struct {
	ID            string   `dynamodbav:"id"`
	CaseNumber    string   `dynamodbav:"case_number"`
	ClientID      string   `dynamodbav:"client_id"`
	MechanicID    string   `dynamodbav:"mechanic_id,omitempty"`
	ServiceTypeID string   `dynamodbav:"service_type_id"`
	Description   string   `dynamodbav:"description"`
	Address       string   `dynamodbav:"address"`
	ScheduledAt   string   `dynamodbav:"scheduled_at"`
	Price         *float64 `dynamodbav:"price,omitempty"`
	MechanicNotes string   `dynamodbav:"mechanic_notes,omitempty"`
	Status        string   `dynamodbav:"status"`
	CreatedAt     string   `dynamodbav:"created_at"`
	UpdatedAt     string   `dynamodbav:"updated_at"`
}

// guardItem lives in the keys table and reserves a unique value for one
// service request.
type guardItem struct {
	Key       string `dynamodbav:"key"`
	ServiceID string `dynamodbav:"service_id"`
}

// ServiceRequestDynamoRepository persists ServiceRequest entities in DynamoDB.
//
// Table requirements:
//   - service_requests PK: id; GSIs status-index, mechanic_id-index, client_id-index
//   - service_request_keys PK: key (case number and active-mechanic guards)
//   - status_history PK: service_id, SK: sk
//
// Every state change is one TransactWriteItems call: the request update, its
// history row and any guard item commit or fail together.
type ServiceRequestDynamoRepository struct {
	ddb          DynamoAPI
	tableName    string
	keysTable    string
	historyTable string
}

var _ interfaces.IServiceRequestRepository = (*ServiceRequestDynamoRepository)(nil)

func NewServiceRequestDynamoRepository(ddb DynamoAPI, tables config.Tables) *ServiceRequestDynamoRepository {
	return &ServiceRequestDynamoRepository{
		ddb:          ddb,
		tableName:    tables.ServiceRequests,
		keysTable:    tables.ServiceRequestKeys,
		historyTable: tables.StatusHistory,
	}
}

func (r *ServiceRequestDynamoRepository) Create(ctx context.Context, sr entities.ServiceRequest) (entities.ServiceRequest, error) {
	av, err := attributevalue.MarshalMap(toServiceRequestItem(sr))
	if err != nil {
		return entities.ServiceRequest{}, err
	}
	guard, err := r.guardPut(caseNumberKeyPrefix+sr.CaseNumber, sr.ID, false)
	if err != nil {
		return entities.ServiceRequest{}, err
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: &types.Put{
				TableName:                aws.String(r.tableName),
				Item:                     av,
				ConditionExpression:      aws.String("attribute_not_exists(#id)"),
				ExpressionAttributeNames: map[string]string{"#id": "id"},
			}},
			guard,
		},
	})
	if err != nil {
		failed := failedConditions(err)
		switch {
		case containsIndex(failed, 1):
			return entities.ServiceRequest{}, interfaces.ErrCaseNumberTaken
		case containsIndex(failed, 0):
			return entities.ServiceRequest{}, interfaces.ErrStatusConflict
		}
		return entities.ServiceRequest{}, err
	}
	return sr, nil
}

func (r *ServiceRequestDynamoRepository) GetByID(ctx context.Context, id string) (entities.ServiceRequest, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            stringKey("id", id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.ServiceRequest{}, err
	}
	if len(out.Item) == 0 {
		return entities.ServiceRequest{}, nil
	}

	var it serviceRequestItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.ServiceRequest{}, err
	}
	return fromServiceRequestItem(it), nil
}

// maxInOperands is DynamoDB's limit on the operand list of an IN comparison.
const maxInOperands = 100

// ListAvailable queries pending unassigned requests, splitting serviceTypeIDs
// into IN lists DynamoDB accepts.
func (r *ServiceRequestDynamoRepository) ListAvailable(ctx context.Context, serviceTypeIDs []string) ([]entities.ServiceRequest, error) {
	items := []entities.ServiceRequest{}
	for start := 0; start < len(serviceTypeIDs); start += maxInOperands {
		end := min(start+maxInOperands, len(serviceTypeIDs))
		chunk, err := r.listAvailableChunk(ctx, serviceTypeIDs[start:end])
		if err != nil {
			return nil, err
		}
		items = append(items, chunk...)
	}
	sortNewestFirst(items)
	return items, nil
}

func (r *ServiceRequestDynamoRepository) listAvailableChunk(ctx context.Context, serviceTypeIDs []string) ([]entities.ServiceRequest, error) {
	values := map[string]types.AttributeValue{
		":status": &types.AttributeValueMemberS{Value: string(entities.StatusPendiente)},
	}
	placeholders := make([]string, 0, len(serviceTypeIDs))
	for i, id := range serviceTypeIDs {
		ph := fmt.Sprintf(":st%d", i)
		placeholders = append(placeholders, ph)
		values[ph] = &types.AttributeValueMemberS{Value: id}
	}

	return r.query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(serviceRequestsStatusIndex),
		KeyConditionExpression: aws.String("#status = :status"),
		FilterExpression: aws.String(fmt.Sprintf(
			"#service_type_id IN (%s) AND attribute_not_exists(#mechanic_id)", strings.Join(placeholders, ", "))),
		ExpressionAttributeNames: map[string]string{
			"#status":          "status",
			"#service_type_id": "service_type_id",
			"#mechanic_id":     "mechanic_id",
		},
		ExpressionAttributeValues: values,
	})
}

func (r *ServiceRequestDynamoRepository) ListByMechanicID(ctx context.Context, mechanicID string) ([]entities.ServiceRequest, error) {
	return r.query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(serviceRequestsMechanicIndex),
		KeyConditionExpression:    aws.String("mechanic_id = :mid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{":mid": &types.AttributeValueMemberS{Value: mechanicID}},
	})
}

func (r *ServiceRequestDynamoRepository) ListByClientID(ctx context.Context, clientID string) ([]entities.ServiceRequest, error) {
	return r.query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(serviceRequestsClientIndex),
		KeyConditionExpression:    aws.String("client_id = :cid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{":cid": &types.AttributeValueMemberS{Value: clientID}},
	})
}

func (r *ServiceRequestDynamoRepository) Assign(ctx context.Context, id, mechanicID string, entry entities.StatusHistory) (entities.ServiceRequest, error) {
	guard, err := r.guardPut(mechanicActiveKeyPrefix+mechanicID, id, false)
	if err != nil {
		return entities.ServiceRequest{}, err
	}
	history, err := historyPut(r.historyTable, entry)
	if err != nil {
		return entities.ServiceRequest{}, err
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Update: &types.Update{
				TableName:           aws.String(r.tableName),
				Key:                 stringKey("id", id),
				ConditionExpression: aws.String("attribute_exists(#id) AND #status = :pending AND attribute_not_exists(#mechanic_id)"),
				UpdateExpression:    aws.String("SET #mechanic_id = :mid, #status = :accepted, #updated_at = :now"),
				ExpressionAttributeNames: map[string]string{
					"#id":          "id",
					"#status":      "status",
					"#mechanic_id": "mechanic_id",
					"#updated_at":  "updated_at",
				},
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":pending":  &types.AttributeValueMemberS{Value: string(entities.StatusPendiente)},
					":accepted": &types.AttributeValueMemberS{Value: string(entities.StatusAceptado)},
					":mid":      &types.AttributeValueMemberS{Value: mechanicID},
					":now":      &types.AttributeValueMemberS{Value: formatTime(entry.RecordedAt)},
				},
			}},
			guard,
			history,
		},
	})
	if err != nil {
		failed := failedConditions(err)
		switch {
		case containsIndex(failed, 0):
			return entities.ServiceRequest{}, interfaces.ErrStatusConflict
		case containsIndex(failed, 1):
			return entities.ServiceRequest{}, interfaces.ErrMechanicSlotTaken
		}
		return entities.ServiceRequest{}, err
	}
	return r.GetByID(ctx, id)
}

func (r *ServiceRequestDynamoRepository) UpdateStatus(ctx context.Context, current entities.ServiceRequest, next entities.ServiceStatus, entry entities.StatusHistory) (entities.ServiceRequest, error) {
	updated := current
	updated.Status = next
	updated.UpdatedAt = entry.RecordedAt

	history, err := historyPut(r.historyTable, entry)
	if err != nil {
		return entities.ServiceRequest{}, err
	}
	items := []types.TransactWriteItem{
		{Update: &types.Update{
			TableName:           aws.String(r.tableName),
			Key:                 stringKey("id", current.ID),
			ConditionExpression: aws.String("attribute_exists(#id) AND #status = :prev"),
			UpdateExpression:    aws.String("SET #status = :next, #updated_at = :now"),
			ExpressionAttributeNames: map[string]string{
				"#id":         "id",
				"#status":     "status",
				"#updated_at": "updated_at",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":prev": &types.AttributeValueMemberS{Value: string(current.Status)},
				":next": &types.AttributeValueMemberS{Value: string(next)},
				":now":  &types.AttributeValueMemberS{Value: formatTime(entry.RecordedAt)},
			},
		}},
		history,
	}

	guardIndex := -1
	switch {
	case current.HoldsMechanic() && !updated.HoldsMechanic():
		guardIndex = len(items)
		items = append(items, r.guardDelete(mechanicActiveKeyPrefix+current.MechanicID, current.ID))
	case !current.HoldsMechanic() && updated.HoldsMechanic():
		guard, err := r.guardPut(mechanicActiveKeyPrefix+current.MechanicID, current.ID, true)
		if err != nil {
			return entities.ServiceRequest{}, err
		}
		guardIndex = len(items)
		items = append(items, guard)
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err != nil {
		failed := failedConditions(err)
		switch {
		case containsIndex(failed, 0):
			return entities.ServiceRequest{}, interfaces.ErrStatusConflict
		case guardIndex >= 0 && containsIndex(failed, guardIndex):
			return entities.ServiceRequest{}, interfaces.ErrMechanicSlotTaken
		}
		return entities.ServiceRequest{}, err
	}
	return updated, nil
}

func (r *ServiceRequestDynamoRepository) UpdateQuote(ctx context.Context, id, mechanicID string, price *float64, notes string) (entities.ServiceRequest, error) {
	names := map[string]string{
		"#id":             "id",
		"#status":         "status",
		"#mechanic_id":    "mechanic_id",
		"#mechanic_notes": "mechanic_notes",
		"#updated_at":     "updated_at",
		"#price":          "price",
	}
	values := map[string]types.AttributeValue{
		":mid":        &types.AttributeValueMemberS{Value: mechanicID},
		":notes":      &types.AttributeValueMemberS{Value: notes},
		":now":        &types.AttributeValueMemberS{Value: formatTime(nowUTC())},
		":aceptado":   &types.AttributeValueMemberS{Value: string(entities.StatusAceptado)},
		":en_camino":  &types.AttributeValueMemberS{Value: string(entities.StatusEnCamino)},
		":en_proceso": &types.AttributeValueMemberS{Value: string(entities.StatusEnProceso)},
	}
	expr := "SET #mechanic_notes = :notes, #updated_at = :now"
	if price != nil {
		expr += ", #price = :price"
		values[":price"] = &types.AttributeValueMemberN{Value: floatToString(*price)}
	} else {
		expr += " REMOVE #price"
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       stringKey("id", id),
		ConditionExpression:       aws.String("attribute_exists(#id) AND #mechanic_id = :mid AND #status IN (:aceptado, :en_camino, :en_proceso)"),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return entities.ServiceRequest{}, interfaces.ErrStatusConflict
		}
		return entities.ServiceRequest{}, err
	}

	var it serviceRequestItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.ServiceRequest{}, err
	}
	return fromServiceRequestItem(it), nil
}

func (r *ServiceRequestDynamoRepository) query(ctx context.Context, in *dynamodb.QueryInput) ([]entities.ServiceRequest, error) {
	raw, err := queryAll(ctx, r.ddb, in)
	if err != nil {
		return nil, err
	}
	items := make([]entities.ServiceRequest, 0, len(raw))
	for _, av := range raw {
		var it serviceRequestItem
		if err := attributevalue.UnmarshalMap(av, &it); err != nil {
			return nil, err
		}
		items = append(items, fromServiceRequestItem(it))
	}
	sortNewestFirst(items)
	return items, nil
}

// guardPut reserves key for serviceID. With reentrant set, a guard already
// held by the same request also passes.
func (r *ServiceRequestDynamoRepository) guardPut(key, serviceID string, reentrant bool) (types.TransactWriteItem, error) {
	av, err := attributevalue.MarshalMap(guardItem{Key: key, ServiceID: serviceID})
	if err != nil {
		return types.TransactWriteItem{}, err
	}
	put := &types.Put{
		TableName:                aws.String(r.keysTable),
		Item:                     av,
		ConditionExpression:      aws.String("attribute_not_exists(#key)"),
		ExpressionAttributeNames: map[string]string{"#key": "key"},
	}
	if reentrant {
		put.ConditionExpression = aws.String("attribute_not_exists(#key) OR #service_id = :sid")
		put.ExpressionAttributeNames["#service_id"] = "service_id"
		put.ExpressionAttributeValues = map[string]types.AttributeValue{":sid": &types.AttributeValueMemberS{Value: serviceID}}
	}
	return types.TransactWriteItem{Put: put}, nil
}

// guardDelete releases key only if serviceID holds it.
func (r *ServiceRequestDynamoRepository) guardDelete(key, serviceID string) types.TransactWriteItem {
	return types.TransactWriteItem{Delete: &types.Delete{
		TableName:                 aws.String(r.keysTable),
		Key:                       stringKey("key", key),
		ConditionExpression:       aws.String("attribute_not_exists(#key) OR #service_id = :sid"),
		ExpressionAttributeNames:  map[string]string{"#key": "key", "#service_id": "service_id"},
		ExpressionAttributeValues: map[string]types.AttributeValue{":sid": &types.AttributeValueMemberS{Value: serviceID}},
	}}
}

func toServiceRequestItem(sr entities.ServiceRequest) serviceRequestItem {
	return serviceRequestItem{
		ID:            sr.ID,
		CaseNumber:    sr.CaseNumber,
		ClientID:      sr.ClientID,
		MechanicID:    sr.MechanicID,
		ServiceTypeID: sr.ServiceTypeID,
		Description:   sr.Description,
		Address:       sr.Address,
		ScheduledAt:   formatTime(sr.ScheduledAt),
		Price:         sr.Price,
		MechanicNotes: sr.MechanicNotes,
		Status:        string(sr.Status),
		CreatedAt:     formatTime(sr.CreatedAt),
		UpdatedAt:     formatTime(sr.UpdatedAt),
	}
}

func fromServiceRequestItem(it serviceRequestItem) entities.ServiceRequest {
	return entities.ServiceRequest{
		ID:            it.ID,
		CaseNumber:    it.CaseNumber,
		ClientID:      it.ClientID,
		MechanicID:    it.MechanicID,
		ServiceTypeID: it.ServiceTypeID,
		Description:   it.Description,
		Address:       it.Address,
		ScheduledAt:   parseTime(it.ScheduledAt),
		Price:         it.Price,
		MechanicNotes: it.MechanicNotes,
		Status:        entities.ServiceStatus(it.Status),
		CreatedAt:     parseTime(it.CreatedAt),
		UpdatedAt:     parseTime(it.UpdatedAt),
	}
}
