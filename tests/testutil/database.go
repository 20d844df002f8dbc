package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/dimitrije/portal-api/internal/config"
	"github.com/dimitrije/portal-api/internal/database"
	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB wraps a DynamoDB Local container with the portal tables created
type TestDB struct {
	DB        *database.DB
	Config    *config.Config
	Container testcontainers.Container
}

// SetupTestDB starts a DynamoDB Local testcontainer and creates every table
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "amazon/dynamodb-local:latest",
		ExposedPorts: []string{"8000/tcp"},
		Cmd:          []string{"-jar", "DynamoDBLocal.jar", "-inMemory", "-sharedDb"},
		WaitingFor: wait.ForListeningPort("8000/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("failed to start dynamodb container: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get container host: %v", err)
	}

	port, err := container.MappedPort(ctx, "8000")
	if err != nil {
		t.Fatalf("failed to get container port: %v", err)
	}

	cfg := TestConfig(fmt.Sprintf("http://%s:%s", host, port.Port()))

	db, err := database.New(ctx, cfg)
	if err != nil {
		t.Fatalf("failed to create dynamodb client: %v", err)
	}

	if _, err := db.EnsureTables(ctx); err != nil {
		t.Fatalf("failed to create tables: %v", err)
	}

	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		DB:        db,
		Config:    cfg,
		Container: container,
	}
}

// TestConfig builds a configuration pointing at a local DynamoDB endpoint.
// Table names carry a random suffix so runs sharing a container never collide.
func TestConfig(endpoint string) *config.Config {
	suffix := uuid.NewString()[:8]
	table := func(name string) string { return "portal-" + name + "-" + suffix }

	return &config.Config{
		Port:     "8000",
		Env:      "test",
		LogLevel: "error",
		Auth0: config.Auth0Config{
			JWKSTimeout: 5 * time.Second,
		},
		AWS: config.AWSConfig{
			Region:           "us-east-1",
			DynamoDBEndpoint: endpoint,
			MaxAttempts:      3,
		},
		Tables: config.TableConfig{
			Deliverables:   table("deliverables"),
			Metrics:        table("metrics"),
			Meetings:       table("meetings"),
			ActionItems:    table("action-items"),
			Updates:        table("updates"),
			SampleProjects: table("sample-projects"),
			Users:          table("users"),
			Counters:       table("counters"),
		},
	}
}

// CleanTables deletes every item so tests start from empty tables
func (tdb *TestDB) CleanTables(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	for _, def := range database.Tables(tdb.Config.Tables) {
		p := dynamodb.NewScanPaginator(tdb.DB.Client, &dynamodb.ScanInput{
			TableName:            aws.String(def.Name),
			ProjectionExpression: aws.String("#k"),
			ExpressionAttributeNames: map[string]string{
				"#k": def.Key,
			},
		})
		for p.HasMorePages() {
			page, err := p.NextPage(ctx)
			if err != nil {
				t.Fatalf("failed to scan table %s: %v", def.Name, err)
			}
			for _, item := range page.Items {
				_, err := tdb.DB.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
					TableName: aws.String(def.Name),
					Key:       item,
				})
				if err != nil {
					t.Fatalf("failed to clean table %s: %v", def.Name, err)
				}
			}
		}
	}
}
