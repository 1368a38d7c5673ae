package database

import (
	"context"
	"errors"
	"fmt"

	appconfig "mecanica_hub/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// TableCreator is the part of *dynamodb.Client used to provision tables.
type TableCreator interface {
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
}

// TableDefinitions returns the CreateTable inputs for every table the
// service reads or writes.
func TableDefinitions(t appconfig.Tables) []*dynamodb.CreateTableInput {
	return []*dynamodb.CreateTableInput{
		{
			TableName:            aws.String(t.ServiceRequests),
			AttributeDefinitions: stringAttrs("id", "status", "mechanic_id", "client_id"),
			KeySchema:            hashKey("id"),
			GlobalSecondaryIndexes: []types.GlobalSecondaryIndex{
				gsi("status-index", "status"),
				gsi("mechanic_id-index", "mechanic_id"),
				gsi("client_id-index", "client_id"),
			},
			BillingMode: types.BillingModePayPerRequest,
		},
		{
			TableName:            aws.String(t.StatusHistory),
			AttributeDefinitions: stringAttrs("service_id", "sk"),
			KeySchema: append(hashKey("service_id"), types.KeySchemaElement{
				AttributeName: aws.String("sk"), KeyType: types.KeyTypeRange,
			}),
			BillingMode: types.BillingModePayPerRequest,
		},
		{
			TableName:            aws.String(t.ServiceRequestKeys),
			AttributeDefinitions: stringAttrs("key"),
			KeySchema:            hashKey("key"),
			BillingMode:          types.BillingModePayPerRequest,
		},
		{
			TableName:            aws.String(t.Users),
			AttributeDefinitions: stringAttrs("id"),
			KeySchema:            hashKey("id"),
			BillingMode:          types.BillingModePayPerRequest,
		},
		{
			TableName:            aws.String(t.ServiceTypes),
			AttributeDefinitions: stringAttrs("id"),
			KeySchema:            hashKey("id"),
			BillingMode:          types.BillingModePayPerRequest,
		},
		{
			TableName:              aws.String(t.Payments),
			AttributeDefinitions:   stringAttrs("id", "service_request_id"),
			KeySchema:              hashKey("id"),
			GlobalSecondaryIndexes: []types.GlobalSecondaryIndex{gsi("service_request_id-index", "service_request_id")},
			BillingMode:            types.BillingModePayPerRequest,
		},
	}
}

// CreateTables creates the missing tables. Tables that already exist are
// left untouched.
func CreateTables(ctx context.Context, ddb TableCreator, t appconfig.Tables, logger *zap.Logger) error {
	for _, in := range TableDefinitions(t) {
		name := aws.ToString(in.TableName)
		_, err := ddb.CreateTable(ctx, in)
		var inUse *types.ResourceInUseException
		switch {
		case errors.As(err, &inUse):
			logger.Info("[database] table exists", zap.String("table", name))
		case err != nil:
			return fmt.Errorf("create table %s: %w", name, err)
		default:
			logger.Info("[database] table created", zap.String("table", name))
		}
	}
	return nil
}

func stringAttrs(names ...string) []types.AttributeDefinition {
	out := make([]types.AttributeDefinition, 0, len(names))
	for _, n := range names {
		out = append(out, types.AttributeDefinition{AttributeName: aws.String(n), AttributeType: types.ScalarAttributeTypeS})
	}
	return out
}

func hashKey(name string) []types.KeySchemaElement {
	return []types.KeySchemaElement{{AttributeName: aws.String(name), KeyType: types.KeyTypeHash}}
}

func gsi(name, attr string) types.GlobalSecondaryIndex {
	return types.GlobalSecondaryIndex{
		IndexName:  aws.String(name),
		KeySchema:  hashKey(attr),
		Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
	}
}
