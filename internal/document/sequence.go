package document

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	CounterKey   = "name"
	counterValue = "seq"
)

// Sequence hands out ids for one table from an atomic counter item stored in
// a separate counters table. The counter starts from the table's highest
// existing id, so tables that were filled before the counter existed keep
// numbering after their last record.
type Sequence struct {
	client  Client
	table   string
	name    string
	floorFn func(ctx context.Context) (int64, error)

	mu       sync.Mutex
	floor    int64
	floorSet bool
}

func NewSequence(client Client, countersTable, name string, floorFn func(ctx context.Context) (int64, error)) *Sequence {
	return &Sequence{
		client:  client,
		table:   countersTable,
		name:    name,
		floorFn: floorFn,
	}
}

// SequenceFor is a Sequence named after the adapter's table and floored at its
// highest id.
func SequenceFor(client Client, countersTable string, adapter *Adapter) *Sequence {
	return NewSequence(client, countersTable, adapter.Table(), adapter.MaxID)
}

func (s *Sequence) Next(ctx context.Context) (int64, error) {
	floor, err := s.floorValue(ctx)
	if err != nil {
		return 0, err
	}

	out, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(s.table),
		Key: map[string]types.AttributeValue{
			CounterKey: &types.AttributeValueMemberS{Value: s.name},
		},
		UpdateExpression:         aws.String("SET #seq = if_not_exists(#seq, :floor) + :one"),
		ExpressionAttributeNames: map[string]string{"#seq": counterValue},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":floor": &types.AttributeValueMemberN{Value: strconv.FormatInt(floor, 10)},
			":one":   &types.AttributeValueMemberN{Value: "1"},
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to advance sequence %s: %w", s.name, err)
	}

	n, ok := out.Attributes[counterValue].(*types.AttributeValueMemberN)
	if !ok {
		return 0, fmt.Errorf("sequence %s returned no value", s.name)
	}
	id, err := strconv.ParseInt(n.Value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("sequence %s returned %q: %w", s.name, n.Value, err)
	}
	return id, nil
}

// Raise moves a counter that fell behind the table, for example after
// records were written directly, up to the table's current highest id.
func (s *Sequence) Raise(ctx context.Context) error {
	if s.floorFn == nil {
		return nil
	}
	floor, err := s.floorFn(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed sequence %s: %w", s.name, err)
	}

	s.mu.Lock()
	s.floor = floor
	s.floorSet = true
	s.mu.Unlock()

	_, err = s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(s.table),
		Key: map[string]types.AttributeValue{
			CounterKey: &types.AttributeValueMemberS{Value: s.name},
		},
		UpdateExpression:         aws.String("SET #seq = :floor"),
		ConditionExpression:      aws.String("attribute_not_exists(#seq) OR #seq < :floor"),
		ExpressionAttributeNames: map[string]string{"#seq": counterValue},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":floor": &types.AttributeValueMemberN{Value: strconv.FormatInt(floor, 10)},
		},
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return nil
		}
		return fmt.Errorf("failed to raise sequence %s: %w", s.name, err)
	}
	return nil
}

func (s *Sequence) floorValue(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.floorSet || s.floorFn == nil {
		return s.floor, nil
	}
	floor, err := s.floorFn(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to seed sequence %s: %w", s.name, err)
	}
	s.floor = floor
	s.floorSet = true
	return floor, nil
}
