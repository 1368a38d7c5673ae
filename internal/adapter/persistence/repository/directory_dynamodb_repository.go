package repository

import (
	"context"

	"mecanica_hub/internal/domain/entities"
	"mecanica_hub/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

type userItem struct {
	ID    string `dynamodbav:"id"`
	Name  string `dynamodbav:"name"`
	Email string `dynamodbav:"email"`
	Role  string `dynamodbav:"role"`
}

type serviceTypeItem struct {
	ID   string `dynamodbav:"id"`
	Name string `dynamodbav:"name"`
}

// DirectoryDynamoRepository reads users and service types. Both tables are
// owned by the account side of the product; this service never writes them.
type DirectoryDynamoRepository struct {
	ddb               DynamoAPI
	usersTable        string
	serviceTypesTable string
}

var _ interfaces.IDirectory = (*DirectoryDynamoRepository)(nil)

func NewDirectoryDynamoRepository(ddb DynamoAPI, usersTable, serviceTypesTable string) *DirectoryDynamoRepository {
	return &DirectoryDynamoRepository{ddb: ddb, usersTable: usersTable, serviceTypesTable: serviceTypesTable}
}

func (r *DirectoryDynamoRepository) GetUser(ctx context.Context, id string) (entities.User, error) {
	if id == "" {
		return entities.User{}, nil
	}
	var it userItem
	found, err := r.get(ctx, r.usersTable, id, &it)
	if err != nil || !found {
		return entities.User{}, err
	}
	return entities.User{ID: it.ID, Name: it.Name, Email: it.Email, Role: entities.Role(it.Role)}, nil
}

func (r *DirectoryDynamoRepository) GetServiceType(ctx context.Context, id string) (entities.ServiceType, error) {
	if id == "" {
		return entities.ServiceType{}, nil
	}
	var it serviceTypeItem
	found, err := r.get(ctx, r.serviceTypesTable, id, &it)
	if err != nil || !found {
		return entities.ServiceType{}, err
	}
	return entities.ServiceType{ID: it.ID, Name: it.Name}, nil
}

func (r *DirectoryDynamoRepository) get(ctx context.Context, table, id string, into any) (bool, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(table),
		Key:       stringKey("id", id),
	})
	if err != nil {
		return false, err
	}
	if len(out.Item) == 0 {
		return false, nil
	}
	return true, attributevalue.UnmarshalMap(out.Item, into)
}
