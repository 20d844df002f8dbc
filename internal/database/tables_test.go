package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/dimitrije/portal-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockTableClient struct {
	mock.Mock
}

func (m *mockTableClient) DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
	args := m.Called(aws.ToString(params.TableName))
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dynamodb.DescribeTableOutput), args.Error(1)
}

func (m *mockTableClient) CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error) {
	args := m.Called(params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dynamodb.CreateTableOutput), args.Error(1)
}

func active(name string) *dynamodb.DescribeTableOutput {
	return &dynamodb.DescribeTableOutput{Table: &types.TableDescription{
		TableName:   aws.String(name),
		TableStatus: types.TableStatusActive,
	}}
}

func notFound() error {
	return &types.ResourceNotFoundException{Message: aws.String("Requested resource not found")}
}

func testTables() config.TableConfig {
	return config.TableConfig{
		Deliverables:   "d",
		Metrics:        "m",
		Meetings:       "mt",
		ActionItems:    "ai",
		Updates:        "u",
		SampleProjects: "sp",
		Users:          "us",
		Counters:       "c",
	}
}

func TestTables(t *testing.T) {
	defs := Tables(testTables())
	require.Len(t, defs, 8)

	byName := map[string]TableDef{}
	for _, d := range defs {
		byName[d.Name] = d
	}

	assert.Equal(t, "name", byName["c"].Key)
	assert.Equal(t, types.ScalarAttributeTypeS, byName["c"].KeyType)
	assert.Equal(t, "id", byName["d"].Key)
	assert.Equal(t, types.ScalarAttributeTypeN, byName["d"].KeyType)

	var indexes []string
	for _, idx := range byName["ai"].Indexes {
		indexes = append(indexes, idx.Name)
	}
	assert.Equal(t, []string{"StatusIndex", "ResponsiblePartyIndex", "MeetingIdIndex"}, indexes)
	assert.Equal(t, types.ScalarAttributeTypeN, byName["ai"].Indexes[2].Type)
	assert.Equal(t, "update_type", byName["u"].Indexes[0].Attribute)
}

func TestTableDef_CreateInput(t *testing.T) {
	def := TableDef{
		Name:    "users",
		Key:     "id",
		KeyType: types.ScalarAttributeTypeN,
		Indexes: []IndexDef{
			{Name: "EmailIndex", Attribute: "email", Type: types.ScalarAttributeTypeS},
			{Name: "EmailCopyIndex", Attribute: "email", Type: types.ScalarAttributeTypeS},
		},
	}

	in := def.CreateInput()

	assert.Equal(t, "users", aws.ToString(in.TableName))
	assert.Equal(t, types.BillingModePayPerRequest, in.BillingMode)
	require.Len(t, in.KeySchema, 1)
	assert.Equal(t, "id", aws.ToString(in.KeySchema[0].AttributeName))
	assert.Len(t, in.AttributeDefinitions, 2, "shared index attributes are defined once")
	require.Len(t, in.GlobalSecondaryIndexes, 2)
	assert.Equal(t, types.ProjectionTypeAll, in.GlobalSecondaryIndexes[0].Projection.ProjectionType)
}

func TestTableDef_CreateInputWithoutIndexes(t *testing.T) {
	in := TableDef{Name: "counters", Key: "name", KeyType: types.ScalarAttributeTypeS}.CreateInput()

	assert.Nil(t, in.GlobalSecondaryIndexes)
	assert.Len(t, in.AttributeDefinitions, 1)
}

func TestEnsureTables(t *testing.T) {
	ctx := context.Background()
	defs := []TableDef{
		{Name: "existing", Key: "id", KeyType: types.ScalarAttributeTypeN},
		{Name: "missing", Key: "id", KeyType: types.ScalarAttributeTypeN},
	}

	t.Run("creates only missing tables", func(t *testing.T) {
		client := new(mockTableClient)
		client.On("DescribeTable", "existing").Return(active("existing"), nil).Once()
		client.On("DescribeTable", "missing").Return(nil, notFound()).Once()
		client.On("CreateTable", mock.MatchedBy(func(in *dynamodb.CreateTableInput) bool {
			return aws.ToString(in.TableName) == "missing"
		})).Return(&dynamodb.CreateTableOutput{}, nil).Once()
		client.On("DescribeTable", "missing").Return(active("missing"), nil)

		created, err := EnsureTables(ctx, client, defs, time.Minute)

		require.NoError(t, err)
		assert.Equal(t, []string{"missing"}, created)
		client.AssertNumberOfCalls(t, "CreateTable", 1)
	})

	t.Run("table created concurrently", func(t *testing.T) {
		client := new(mockTableClient)
		client.On("DescribeTable", "existing").Return(active("existing"), nil)
		client.On("DescribeTable", "missing").Return(nil, notFound()).Once()
		client.On("CreateTable", mock.Anything).
			Return(nil, &types.ResourceInUseException{Message: aws.String("in use")})

		created, err := EnsureTables(ctx, client, defs, time.Minute)

		require.NoError(t, err)
		assert.Empty(t, created)
	})

	t.Run("describe failure", func(t *testing.T) {
		client := new(mockTableClient)
		client.On("DescribeTable", "existing").Return(nil, errors.New("connection refused"))

		_, err := EnsureTables(ctx, client, defs, time.Minute)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "existing")
		client.AssertNotCalled(t, "CreateTable", mock.Anything)
	})

	t.Run("create failure", func(t *testing.T) {
		client := new(mockTableClient)
		client.On("DescribeTable", "existing").Return(active("existing"), nil)
		client.On("DescribeTable", "missing").Return(nil, notFound())
		client.On("CreateTable", mock.Anything).Return(nil, errors.New("limit exceeded"))

		created, err := EnsureTables(ctx, client, defs, time.Minute)

		require.Error(t, err)
		assert.Empty(t, created)
		assert.Contains(t, err.Error(), "limit exceeded")
	})
}
