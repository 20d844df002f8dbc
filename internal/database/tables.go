package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/dimitrije/portal-api/internal/config"
	"github.com/dimitrije/portal-api/internal/document"
)

const DefaultTableWait = 2 * time.Minute

type TableDef struct {
	Name    string
	Key     string
	KeyType types.ScalarAttributeType
	Indexes []IndexDef
}

// IndexDef is a global secondary index with a single hash key that projects
// every attribute.
type IndexDef struct {
	Name      string
	Attribute string
	Type      types.ScalarAttributeType
}

// Tables describes every table the API reads or writes.
func Tables(cfg config.TableConfig) []TableDef {
	n, s := types.ScalarAttributeTypeN, types.ScalarAttributeTypeS
	return []TableDef{
		{Name: cfg.Deliverables, Key: document.FieldID, KeyType: n},
		{Name: cfg.Metrics, Key: document.FieldID, KeyType: n},
		{Name: cfg.Meetings, Key: document.FieldID, KeyType: n, Indexes: []IndexDef{
			{Name: "MeetingDateIndex", Attribute: "meeting_date", Type: s},
		}},
		{Name: cfg.ActionItems, Key: document.FieldID, KeyType: n, Indexes: []IndexDef{
			{Name: "StatusIndex", Attribute: "status", Type: s},
			{Name: "ResponsiblePartyIndex", Attribute: "responsible_party", Type: s},
			{Name: "MeetingIdIndex", Attribute: "meeting_id", Type: n},
		}},
		{Name: cfg.Updates, Key: document.FieldID, KeyType: n, Indexes: []IndexDef{
			{Name: "TypeIndex", Attribute: "update_type", Type: s},
		}},
		{Name: cfg.SampleProjects, Key: document.FieldID, KeyType: n, Indexes: []IndexDef{
			{Name: "DeliveryMethodIndex", Attribute: "delivery_method", Type: s},
		}},
		{Name: cfg.Users, Key: document.FieldID, KeyType: n, Indexes: []IndexDef{
			{Name: "EmailIndex", Attribute: "email", Type: s},
			{Name: "Auth0IdIndex", Attribute: "auth0_id", Type: s},
		}},
		{Name: cfg.Counters, Key: document.CounterKey, KeyType: s},
	}
}

// TableClient is the part of *dynamodb.Client used to manage tables.
type TableClient interface {
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
}

// EnsureTables creates every table in defs that does not exist yet and waits
// for it to become active. Existing tables are left untouched. It returns
// the names of the tables it created.
func EnsureTables(ctx context.Context, client TableClient, defs []TableDef, maxWait time.Duration) ([]string, error) {
	var created []string
	for _, def := range defs {
		exists, err := tableExists(ctx, client, def.Name)
		if err != nil {
			return created, err
		}
		if exists {
			continue
		}

		if _, err := client.CreateTable(ctx, def.CreateInput()); err != nil {
			var inUse *types.ResourceInUseException
			if errors.As(err, &inUse) {
				continue
			}
			return created, fmt.Errorf("failed to create table %s: %w", def.Name, err)
		}

		waiter := dynamodb.NewTableExistsWaiter(client)
		if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(def.Name)}, maxWait); err != nil {
			return created, fmt.Errorf("table %s did not become active: %w", def.Name, err)
		}
		created = append(created, def.Name)
	}
	return created, nil
}

func tableExists(ctx context.Context, client TableClient, name string) (bool, error) {
	_, err := client.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(name)})
	if err == nil {
		return true, nil
	}
	var notFound *types.ResourceNotFoundException
	if errors.As(err, &notFound) {
		return false, nil
	}
	return false, fmt.Errorf("failed to describe table %s: %w", name, err)
}

func (d TableDef) CreateInput() *dynamodb.CreateTableInput {
	attrs := []types.AttributeDefinition{{
		AttributeName: aws.String(d.Key),
		AttributeType: d.KeyType,
	}}
	seen := map[string]bool{d.Key: true}

	var indexes []types.GlobalSecondaryIndex
	for _, idx := range d.Indexes {
		if !seen[idx.Attribute] {
			seen[idx.Attribute] = true
			attrs = append(attrs, types.AttributeDefinition{
				AttributeName: aws.String(idx.Attribute),
				AttributeType: idx.Type,
			})
		}
		indexes = append(indexes, types.GlobalSecondaryIndex{
			IndexName: aws.String(idx.Name),
			KeySchema: []types.KeySchemaElement{{
				AttributeName: aws.String(idx.Attribute),
				KeyType:       types.KeyTypeHash,
			}},
			Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
		})
	}

	return &dynamodb.CreateTableInput{
		TableName:            aws.String(d.Name),
		AttributeDefinitions: attrs,
		KeySchema: []types.KeySchemaElement{{
			AttributeName: aws.String(d.Key),
			KeyType:       types.KeyTypeHash,
		}},
		BillingMode:            types.BillingModePayPerRequest,
		GlobalSecondaryIndexes: indexes,
	}
}
