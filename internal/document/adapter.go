package document

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Client is the part of *dynamodb.Client the adapter depends on.
type Client interface {
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// SortPolicy orders scan and query results by one field.
type SortPolicy struct {
	Field      string
	Descending bool
}

var ByID = SortPolicy{Field: FieldID}

func NewestFirst(field string) SortPolicy {
	return SortPolicy{Field: field, Descending: true}
}

type Adapter struct {
	client Client
	table  string
	order  SortPolicy
	now    func() time.Time
}

type Option func(*Adapter)

func WithSort(order SortPolicy) Option {
	return func(a *Adapter) { a.order = order }
}

func WithClock(now func() time.Time) Option {
	return func(a *Adapter) { a.now = now }
}

func NewAdapter(client Client, table string, opts ...Option) *Adapter {
	a := &Adapter{
		client: client,
		table:  table,
		order:  ByID,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Adapter) Table() string {
	return a.table
}

// ScanAll returns every record in the table, following continuation tokens
// until the store reports no more pages.
func (a *Adapter) ScanAll(ctx context.Context) ([]Record, error) {
	return a.scan(ctx, &dynamodb.ScanInput{TableName: aws.String(a.table)})
}

// ScanWhere is ScanAll restricted to records whose field equals value.
func (a *Adapter) ScanWhere(ctx context.Context, field string, value any) ([]Record, error) {
	v, err := marshalValue(value)
	if err != nil {
		return nil, err
	}
	return a.scan(ctx, &dynamodb.ScanInput{
		TableName:                 aws.String(a.table),
		FilterExpression:          aws.String("#f = :v"),
		ExpressionAttributeNames:  map[string]string{"#f": field},
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": v},
	})
}

// MaxID is the highest id in the table, 0 when it is empty.
func (a *Adapter) MaxID(ctx context.Context) (int64, error) {
	records, err := a.scan(ctx, &dynamodb.ScanInput{
		TableName:                aws.String(a.table),
		ProjectionExpression:     aws.String("#id"),
		ExpressionAttributeNames: map[string]string{"#id": FieldID},
	})
	if err != nil {
		return 0, err
	}
	var max int64
	for _, r := range records {
		if id, ok := r.ID(); ok && id > max {
			max = id
		}
	}
	return max, nil
}

func (a *Adapter) scan(ctx context.Context, input *dynamodb.ScanInput) ([]Record, error) {
	var records []Record
	p := dynamodb.NewScanPaginator(a.client, input)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", a.table, err)
		}
		decoded, err := decodeItems(page.Items)
		if err != nil {
			return nil, err
		}
		records = append(records, decoded...)
	}
	a.sort(records)
	return records, nil
}

// QueryByIndex returns the records whose key attribute on the named secondary
// index equals value.
func (a *Adapter) QueryByIndex(ctx context.Context, index, key string, value any) ([]Record, error) {
	v, err := marshalValue(value)
	if err != nil {
		return nil, err
	}

	var records []Record
	p := dynamodb.NewQueryPaginator(a.client, &dynamodb.QueryInput{
		TableName:                 aws.String(a.table),
		IndexName:                 aws.String(index),
		KeyConditionExpression:    aws.String("#k = :v"),
		ExpressionAttributeNames:  map[string]string{"#k": key},
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": v},
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to query %s on %s: %w", a.table, index, err)
		}
		decoded, err := decodeItems(page.Items)
		if err != nil {
			return nil, err
		}
		records = append(records, decoded...)
	}
	a.sort(records)
	return records, nil
}

// Get returns the record with the given id. The boolean is false when no such
// record exists; an error means the store could not be asked.
func (a *Adapter) Get(ctx context.Context, id int64) (Record, bool, error) {
	out, err := a.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(a.table),
		Key:       idKey(id),
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to get %s/%d: %w", a.table, id, err)
	}
	if len(out.Item) == 0 {
		return nil, false, nil
	}
	record, err := decodeItem(out.Item)
	if err != nil {
		return nil, false, err
	}
	return record, true, nil
}

// Create stamps created_at and updated_at, normalizes numbers and writes the
// record unconditionally, replacing any record with the same id.
func (a *Adapter) Create(ctx context.Context, record Record) (Record, error) {
	return a.put(ctx, record, false)
}

// CreateNew is Create that never replaces a record. It returns ErrExists when
// the id is already taken.
func (a *Adapter) CreateNew(ctx context.Context, record Record) (Record, error) {
	return a.put(ctx, record, true)
}

func (a *Adapter) put(ctx context.Context, record Record, onlyNew bool) (Record, error) {
	now := FormatTimestamp(a.now())
	stamped := record.clone()
	stamped[FieldCreatedAt] = now
	stamped[FieldUpdatedAt] = now

	normalized, err := outboundMap(stamped)
	if err != nil {
		return nil, err
	}
	item, err := attributevalue.MarshalMap(normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s record: %w", a.table, err)
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(a.table),
		Item:      item,
	}
	if onlyNew {
		input.ConditionExpression = aws.String("attribute_not_exists(#key)")
		input.ExpressionAttributeNames = map[string]string{"#key": FieldID}
	}

	if _, err := a.client.PutItem(ctx, input); err != nil {
		var ccf *types.ConditionalCheckFailedException
		if onlyNew && errors.As(err, &ccf) {
			return nil, ErrExists
		}
		return nil, fmt.Errorf("failed to put %s record: %w", a.table, err)
	}

	return inboundRecord(normalized), nil
}

// Update merges fields into the existing record and refreshes updated_at in
// the same write. The id, created_at and updated_at keys of fields are
// ignored. Returns ErrNotFound if there is no record with the id.
func (a *Adapter) Update(ctx context.Context, id int64, fields map[string]any) (Record, error) {
	clean := make(map[string]any, len(fields))
	for k, v := range fields {
		if k == FieldID || k == FieldCreatedAt || k == FieldUpdatedAt {
			continue
		}
		n, err := Outbound(v)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}
		clean[k] = n
	}

	expr := BuildUpdate(clean, FormatTimestamp(a.now()))
	values, err := attributevalue.MarshalMap(expr.Values)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s update: %w", a.table, err)
	}
	names := expr.Names
	names["#key"] = FieldID

	out, err := a.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(a.table),
		Key:                       idKey(id),
		UpdateExpression:          aws.String(expr.Expression),
		ConditionExpression:       aws.String("attribute_exists(#key)"),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update %s/%d: %w", a.table, id, err)
	}

	return decodeItem(out.Attributes)
}

// Append adds value to the end of the list in field within a single write,
// starting the list when the record has none. With unique set, a value that
// is already listed is left alone and ErrDuplicate is returned. Returns
// ErrNotFound if there is no record with the id.
func (a *Adapter) Append(ctx context.Context, id int64, field string, value any, unique bool) (Record, error) {
	n, err := Outbound(value)
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", field, err)
	}
	values, err := attributevalue.MarshalMap(map[string]any{
		":empty":      []any{},
		":items":      []any{n},
		":updated_at": FormatTimestamp(a.now()),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s append: %w", a.table, err)
	}

	cond := "attribute_exists(#key)"
	if unique {
		item, err := attributevalue.Marshal(n)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s append: %w", a.table, err)
		}
		values[":item"] = item
		cond += " AND NOT contains(#list, :item)"
	}

	out, err := a.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(a.table),
		Key:                 idKey(id),
		UpdateExpression:    aws.String("SET #list = list_append(if_not_exists(#list, :empty), :items), #updated_at = :updated_at"),
		ConditionExpression: aws.String(cond),
		ExpressionAttributeNames: map[string]string{
			"#key":        FieldID,
			"#list":       field,
			"#updated_at": FieldUpdatedAt,
		},
		ExpressionAttributeValues: values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if !errors.As(err, &ccf) {
			return nil, fmt.Errorf("failed to append to %s/%d: %w", a.table, id, err)
		}
		if !unique {
			return nil, ErrNotFound
		}
		_, found, err := a.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, ErrNotFound
		}
		return nil, ErrDuplicate
	}

	return decodeItem(out.Attributes)
}

// Delete removes the record with the given id. It reports whether a record
// was actually removed; deleting an absent id is not an error.
func (a *Adapter) Delete(ctx context.Context, id int64) (bool, error) {
	out, err := a.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:    aws.String(a.table),
		Key:          idKey(id),
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete %s/%d: %w", a.table, id, err)
	}
	return len(out.Attributes) > 0, nil
}

func (a *Adapter) sort(records []Record) {
	field := a.order.Field
	if field == "" {
		return
	}
	sort.SliceStable(records, func(i, j int) bool {
		c := compareValues(records[i][field], records[j][field])
		if a.order.Descending {
			return c > 0
		}
		return c < 0
	})
}

// compareValues orders numbers numerically and everything else by its text.
// Missing values sort first.
func compareValues(a, b any) int {
	af, aNum := toFloat(a)
	bf, bNum := toFloat(b)
	if aNum && bNum {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		}
		return 0
	}
	as, bs := toText(a), toText(b)
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	}
	return 0
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case nil:
		return 0, true
	}
	return 0, false
}

func toText(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return ""
	}
	return fmt.Sprint(v)
}

func idKey(id int64) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		FieldID: &types.AttributeValueMemberN{Value: strconv.FormatInt(id, 10)},
	}
}

func marshalValue(value any) (types.AttributeValue, error) {
	n, err := Outbound(value)
	if err != nil {
		return nil, err
	}
	v, err := attributevalue.Marshal(n)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal key value: %w", err)
	}
	return v, nil
}

func decodeItems(items []map[string]types.AttributeValue) ([]Record, error) {
	records := make([]Record, 0, len(items))
	for _, item := range items {
		r, err := decodeItem(item)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, nil
}

func decodeItem(item map[string]types.AttributeValue) (Record, error) {
	raw := map[string]any{}
	err := attributevalue.UnmarshalMapWithOptions(item, &raw, func(o *attributevalue.DecoderOptions) {
		o.UseNumber = true
	})
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal record: %w", err)
	}
	return inboundRecord(raw), nil
}
