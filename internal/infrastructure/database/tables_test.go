package database

import (
	"context"
	"errors"
	"testing"

	appconfig "mecanica_hub/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeCreator struct {
	created []string
	errs    map[string]error
}

func (f *fakeCreator) CreateTable(_ context.Context, in *dynamodb.CreateTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error) {
	name := aws.ToString(in.TableName)
	if err := f.errs[name]; err != nil {
		return nil, err
	}
	f.created = append(f.created, name)
	return &dynamodb.CreateTableOutput{}, nil
}

func testTables() appconfig.Tables {
	return appconfig.Tables{
		ServiceRequests:    "sr",
		StatusHistory:      "hist",
		ServiceRequestKeys: "keys",
		Users:              "users",
		ServiceTypes:       "types",
		Payments:           "payments",
	}
}

func TestTableDefinitions(t *testing.T) {
	defs := TableDefinitions(testTables())
	require.Len(t, defs, 6)

	byName := map[string]*dynamodb.CreateTableInput{}
	for _, d := range defs {
		byName[aws.ToString(d.TableName)] = d
		assert.Equal(t, types.BillingModePayPerRequest, d.BillingMode)
	}

	hist := byName["hist"]
	require.NotNil(t, hist)
	require.Len(t, hist.KeySchema, 2)
	assert.Equal(t, "sk", aws.ToString(hist.KeySchema[1].AttributeName))
	assert.Equal(t, types.KeyTypeRange, hist.KeySchema[1].KeyType)

	sr := byName["sr"]
	require.NotNil(t, sr)
	var indexes []string
	for _, g := range sr.GlobalSecondaryIndexes {
		indexes = append(indexes, aws.ToString(g.IndexName))
	}
	assert.ElementsMatch(t, []string{"status-index", "mechanic_id-index", "client_id-index"}, indexes)
}

func TestCreateTables(t *testing.T) {
	t.Run("existing tables are skipped", func(t *testing.T) {
		f := &fakeCreator{errs: map[string]error{"users": &types.ResourceInUseException{}}}
		require.NoError(t, CreateTables(context.Background(), f, testTables(), zap.NewNop()))
		assert.Len(t, f.created, 5)
		assert.NotContains(t, f.created, "users")
	})

	t.Run("other errors stop provisioning", func(t *testing.T) {
		boom := errors.New("boom")
		f := &fakeCreator{errs: map[string]error{"hist": boom}}
		err := CreateTables(context.Background(), f, testTables(), zap.NewNop())
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "hist")
	})
}
