// Package documenttest provides an in-memory stand-in for the DynamoDB client
// used by package document. It understands only the expression shapes that
// package document produces.
package documenttest

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type Item = map[string]types.AttributeValue

type table struct {
	key     string
	indexed []string
	items   map[string]Item
}

// Store holds any number of tables. PageSize, when positive, caps every scan
// and query page so callers have to follow continuation tokens.
type Store struct {
	mu       sync.Mutex
	tables   map[string]*table
	PageSize int
	calls    map[string]int
	failures map[string]error
}

func NewStore() *Store {
	return &Store{
		tables:   map[string]*table{},
		calls:    map[string]int{},
		failures: map[string]error{},
	}
}

func (s *Store) CreateTable(name, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[name] = &table{key: key, items: map[string]Item{}}
}

// IndexKeys declares the secondary index key attributes of a table. Like
// DynamoDB, the store then rejects writes that set one of them to "".
func (s *Store) IndexKeys(name string, attrs ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.tables[name]; ok {
		t.indexed = append(t.indexed, attrs...)
	}
}

// Fail makes every subsequent call of op ("Scan", "GetItem", ...) return err.
// A nil err clears the failure.
func (s *Store) Fail(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, op)
		return
	}
	s.failures[op] = err
}

func (s *Store) Calls(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

// Seed writes a plain Go map, marshalled the way the SDK would.
func (s *Store) Seed(tableName string, record map[string]any) error {
	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return err
	}
	_, err = s.PutItem(context.Background(), &dynamodb.PutItemInput{TableName: aws.String(tableName), Item: item})
	return err
}

func (s *Store) Len(tableName string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.tables[tableName]; ok {
		return len(t.items)
	}
	return 0
}

// Raw returns a copy of the stored item with the given key value.
func (s *Store) Raw(tableName string, key types.AttributeValue) (Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tables[tableName]
	if !ok {
		return nil, false
	}
	item, ok := t.items[keyString(key)]
	return copyItem(item), ok
}

func (s *Store) begin(op string, tableName *string) (*table, error) {
	s.calls[op]++
	if err := s.failures[op]; err != nil {
		return nil, err
	}
	t, ok := s.tables[aws.ToString(tableName)]
	if !ok {
		return nil, &types.ResourceNotFoundException{Message: aws.String("table not found: " + aws.ToString(tableName))}
	}
	return t, nil
}

func (s *Store) Scan(ctx context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.begin("Scan", in.TableName)
	if err != nil {
		return nil, err
	}

	page, last := s.page(t, t.sorted(), in.ExclusiveStartKey, aws.ToInt32(in.Limit))
	if in.FilterExpression != nil {
		attr, want, err := parseEquality(*in.FilterExpression, in.ExpressionAttributeNames, in.ExpressionAttributeValues)
		if err != nil {
			return nil, err
		}
		page = filter(page, attr, want)
	}
	if in.ProjectionExpression != nil {
		page = project(page, *in.ProjectionExpression, in.ExpressionAttributeNames)
	}
	return &dynamodb.ScanOutput{Items: page, Count: int32(len(page)), LastEvaluatedKey: last}, nil
}

func (s *Store) Query(ctx context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.begin("Query", in.TableName)
	if err != nil {
		return nil, err
	}
	attr, want, err := parseEquality(aws.ToString(in.KeyConditionExpression), in.ExpressionAttributeNames, in.ExpressionAttributeValues)
	if err != nil {
		return nil, err
	}

	matching := filter(t.sorted(), attr, want)
	page, last := s.page(t, matching, in.ExclusiveStartKey, aws.ToInt32(in.Limit))
	return &dynamodb.QueryOutput{Items: page, Count: int32(len(page)), LastEvaluatedKey: last}, nil
}

func (s *Store) GetItem(ctx context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.begin("GetItem", in.TableName)
	if err != nil {
		return nil, err
	}
	item, ok := t.items[keyString(in.Key[t.key])]
	if !ok {
		return &dynamodb.GetItemOutput{}, nil
	}
	return &dynamodb.GetItemOutput{Item: copyItem(item)}, nil
}

func (s *Store) PutItem(ctx context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.begin("PutItem", in.TableName)
	if err != nil {
		return nil, err
	}
	key, ok := in.Item[t.key]
	if !ok {
		return nil, fmt.Errorf("item is missing key attribute %q", t.key)
	}
	existing, exists := t.items[keyString(key)]
	if err := check(in.ConditionExpression, existing, exists, in.ExpressionAttributeNames, in.ExpressionAttributeValues); err != nil {
		return nil, err
	}
	if err := t.validate(in.Item); err != nil {
		return nil, err
	}
	t.items[keyString(key)] = copyItem(in.Item)
	return &dynamodb.PutItemOutput{}, nil
}

func (s *Store) UpdateItem(ctx context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.begin("UpdateItem", in.TableName)
	if err != nil {
		return nil, err
	}
	k := keyString(in.Key[t.key])
	existing, exists := t.items[k]

	if err := check(in.ConditionExpression, existing, exists, in.ExpressionAttributeNames, in.ExpressionAttributeValues); err != nil {
		return nil, err
	}

	assignments, err := parseSet(aws.ToString(in.UpdateExpression))
	if err != nil {
		return nil, err
	}

	next := copyItem(existing)
	if next == nil {
		next = copyItem(in.Key)
	}
	updated := Item{}
	for _, a := range assignments {
		attr, ok := in.ExpressionAttributeNames[a.name]
		if !ok {
			return nil, fmt.Errorf("unknown attribute name placeholder %s", a.name)
		}
		v, err := evaluate(a.expr, existing, in.ExpressionAttributeNames, in.ExpressionAttributeValues)
		if err != nil {
			return nil, err
		}
		next[attr] = v
		updated[attr] = v
	}
	if err := t.validate(next); err != nil {
		return nil, err
	}
	t.items[k] = next

	out := &dynamodb.UpdateItemOutput{}
	switch in.ReturnValues {
	case types.ReturnValueAllNew:
		out.Attributes = copyItem(next)
	case types.ReturnValueUpdatedNew:
		out.Attributes = updated
	case types.ReturnValueAllOld:
		out.Attributes = copyItem(existing)
	}
	return out, nil
}

func (s *Store) DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.begin("DeleteItem", in.TableName)
	if err != nil {
		return nil, err
	}
	k := keyString(in.Key[t.key])
	old, ok := t.items[k]
	delete(t.items, k)

	out := &dynamodb.DeleteItemOutput{}
	if ok && in.ReturnValues == types.ReturnValueAllOld {
		out.Attributes = copyItem(old)
	}
	return out, nil
}

func (s *Store) page(t *table, items []Item, start Item, limit int32) ([]Item, Item) {
	if start != nil {
		startKey := keyString(start[t.key])
		for i, item := range items {
			if keyString(item[t.key]) == startKey {
				items = items[i+1:]
				break
			}
		}
	}

	size := s.PageSize
	if limit > 0 && (size <= 0 || int(limit) < size) {
		size = int(limit)
	}
	if size <= 0 || len(items) <= size {
		return copyItems(items), nil
	}
	page := items[:size]
	last := Item{t.key: page[len(page)-1][t.key]}
	return copyItems(page), last
}

func (t *table) validate(item Item) error {
	for _, attr := range t.indexed {
		if v, ok := item[attr].(*types.AttributeValueMemberS); ok && v.Value == "" {
			return fmt.Errorf("ValidationException: index key attribute %q cannot contain an empty string value", attr)
		}
	}
	return nil
}

func (t *table) sorted() []Item {
	keys := make([]string, 0, len(t.items))
	for k := range t.items {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return lessKey(t.items[keys[i]][t.key], t.items[keys[j]][t.key])
	})
	out := make([]Item, len(keys))
	for i, k := range keys {
		out[i] = t.items[k]
	}
	return out
}

func lessKey(a, b types.AttributeValue) bool {
	an, aok := a.(*types.AttributeValueMemberN)
	bn, bok := b.(*types.AttributeValueMemberN)
	if aok && bok {
		ar, _ := new(big.Rat).SetString(an.Value)
		br, _ := new(big.Rat).SetString(bn.Value)
		if ar != nil && br != nil {
			return ar.Cmp(br) < 0
		}
	}
	return keyString(a) < keyString(b)
}

func keyString(v types.AttributeValue) string {
	switch t := v.(type) {
	case *types.AttributeValueMemberN:
		if r, ok := new(big.Rat).SetString(t.Value); ok {
			return "N:" + r.RatString()
		}
		return "N:" + t.Value
	case *types.AttributeValueMemberS:
		return "S:" + t.Value
	}
	return fmt.Sprintf("%T:%v", v, v)
}

func equal(a, b types.AttributeValue) bool {
	an, aok := a.(*types.AttributeValueMemberN)
	bn, bok := b.(*types.AttributeValueMemberN)
	if aok && bok {
		return keyString(an) == keyString(bn)
	}
	return reflect.DeepEqual(a, b)
}

func filter(items []Item, attr string, want types.AttributeValue) []Item {
	var out []Item
	for _, item := range items {
		if got, ok := item[attr]; ok && equal(got, want) {
			out = append(out, item)
		}
	}
	return out
}

func project(items []Item, expr string, names map[string]string) []Item {
	var attrs []string
	for _, p := range strings.Split(expr, ",") {
		p = strings.TrimSpace(p)
		if n, ok := names[p]; ok {
			p = n
		}
		attrs = append(attrs, p)
	}
	out := make([]Item, len(items))
	for i, item := range items {
		projected := Item{}
		for _, a := range attrs {
			if v, ok := item[a]; ok {
				projected[a] = v
			}
		}
		out[i] = projected
	}
	return out
}

func copyItem(item Item) Item {
	if item == nil {
		return nil
	}
	out := make(Item, len(item))
	for k, v := range item {
		out[k] = v
	}
	return out
}

func copyItems(items []Item) []Item {
	out := make([]Item, len(items))
	for i, item := range items {
		out[i] = copyItem(item)
	}
	return out
}

var errUnsupported = errors.New("expression not supported by documenttest")

func parseEquality(expr string, names map[string]string, values map[string]types.AttributeValue) (string, types.AttributeValue, error) {
	lhs, rhs, ok := strings.Cut(expr, "=")
	if !ok {
		return "", nil, fmt.Errorf("%w: %q", errUnsupported, expr)
	}
	attr, ok := names[strings.TrimSpace(lhs)]
	if !ok {
		return "", nil, fmt.Errorf("%w: unknown name in %q", errUnsupported, expr)
	}
	v, ok := values[strings.TrimSpace(rhs)]
	if !ok {
		return "", nil, fmt.Errorf("%w: unknown value in %q", errUnsupported, expr)
	}
	return attr, v, nil
}

// check evaluates a condition made of OR-ed groups of AND-ed terms. Terms are
// attribute_exists, attribute_not_exists, contains (each optionally under NOT)
// and "#name < :value".
func check(cond *string, existing Item, exists bool, names map[string]string, values map[string]types.AttributeValue) error {
	expr := strings.TrimSpace(aws.ToString(cond))
	if expr == "" {
		return nil
	}
	if !exists {
		existing = Item{}
	}
	for _, group := range strings.Split(expr, " OR ") {
		ok := true
		for _, term := range strings.Split(group, " AND ") {
			held, err := holds(strings.TrimSpace(term), existing, names, values)
			if err != nil {
				return err
			}
			if !held {
				ok = false
				break
			}
		}
		if ok {
			return nil
		}
	}
	return &types.ConditionalCheckFailedException{Message: aws.String("The conditional request failed")}
}

func holds(term string, item Item, names map[string]string, values map[string]types.AttributeValue) (bool, error) {
	if inner, ok := strings.CutPrefix(term, "NOT "); ok {
		held, err := holds(strings.TrimSpace(inner), item, names, values)
		return !held, err
	}

	if lhs, rhs, ok := strings.Cut(term, " < "); ok {
		attr, ok := names[strings.TrimSpace(lhs)]
		if !ok {
			return false, fmt.Errorf("%w: unknown name in %q", errUnsupported, term)
		}
		got, ok := item[attr].(*types.AttributeValueMemberN)
		if !ok {
			return false, nil
		}
		want, ok := values[strings.TrimSpace(rhs)].(*types.AttributeValueMemberN)
		if !ok {
			return false, fmt.Errorf("%w: %q", errUnsupported, term)
		}
		return lessKey(got, want), nil
	}

	fn, args, err := call(term)
	if err != nil {
		return false, err
	}
	attr, ok := names[args[0]]
	if !ok {
		return false, fmt.Errorf("%w: unknown name in %q", errUnsupported, term)
	}
	v, present := item[attr]

	switch {
	case fn == "attribute_exists" && len(args) == 1:
		return present, nil
	case fn == "attribute_not_exists" && len(args) == 1:
		return !present, nil
	case fn == "contains" && len(args) == 2:
		want, ok := values[args[1]]
		if !ok {
			return false, fmt.Errorf("%w: unknown value in %q", errUnsupported, term)
		}
		list, ok := v.(*types.AttributeValueMemberL)
		if !ok {
			return false, nil
		}
		for _, el := range list.Value {
			if equal(el, want) {
				return true, nil
			}
		}
		return false, nil
	}
	return false, fmt.Errorf("%w: %q", errUnsupported, term)
}

// call splits "fn(a, b(c, d))" into fn and its top-level arguments.
func call(expr string) (string, []string, error) {
	open := strings.Index(expr, "(")
	if open <= 0 || !strings.HasSuffix(expr, ")") {
		return "", nil, fmt.Errorf("%w: %q", errUnsupported, expr)
	}
	body := expr[open+1 : len(expr)-1]

	var args []string
	depth, start := 0, 0
	for i, r := range body {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(body[start:i]))
				start = i + 1
			}
		}
	}
	args = append(args, strings.TrimSpace(body[start:]))
	return expr[:open], args, nil
}

type assignment struct {
	name string
	expr string
}

func parseSet(expr string) ([]assignment, error) {
	body, ok := strings.CutPrefix(strings.TrimSpace(expr), "SET ")
	if !ok {
		return nil, fmt.Errorf("%w: %q", errUnsupported, expr)
	}

	var parts []string
	depth, start := 0, 0
	for i, r := range body {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, body[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, body[start:])

	out := make([]assignment, 0, len(parts))
	for _, p := range parts {
		lhs, rhs, ok := strings.Cut(p, "=")
		if !ok {
			return nil, fmt.Errorf("%w: %q", errUnsupported, p)
		}
		out = append(out, assignment{name: strings.TrimSpace(lhs), expr: strings.TrimSpace(rhs)})
	}
	return out, nil
}

func evaluate(expr string, existing Item, names map[string]string, values map[string]types.AttributeValue) (types.AttributeValue, error) {
	if lhs, rhs, ok := strings.Cut(expr, " + "); ok {
		a, err := evaluate(lhs, existing, names, values)
		if err != nil {
			return nil, err
		}
		b, err := evaluate(rhs, existing, names, values)
		if err != nil {
			return nil, err
		}
		return add(a, b)
	}

	expr = strings.TrimSpace(expr)
	if strings.HasPrefix(expr, "if_not_exists(") || strings.HasPrefix(expr, "list_append(") {
		fn, args, err := call(expr)
		if err != nil {
			return nil, err
		}
		if len(args) != 2 {
			return nil, fmt.Errorf("%w: %q", errUnsupported, expr)
		}
		if fn == "if_not_exists" {
			if v, ok := existing[names[args[0]]]; ok {
				return v, nil
			}
			return evaluate(args[1], existing, names, values)
		}
		a, err := evaluate(args[0], existing, names, values)
		if err != nil {
			return nil, err
		}
		b, err := evaluate(args[1], existing, names, values)
		if err != nil {
			return nil, err
		}
		al, aok := a.(*types.AttributeValueMemberL)
		bl, bok := b.(*types.AttributeValueMemberL)
		if !aok || !bok {
			return nil, errors.New("list_append requires list operands")
		}
		joined := make([]types.AttributeValue, 0, len(al.Value)+len(bl.Value))
		joined = append(joined, al.Value...)
		joined = append(joined, bl.Value...)
		return &types.AttributeValueMemberL{Value: joined}, nil
	}
	if strings.HasPrefix(expr, ":") {
		v, ok := values[expr]
		if !ok {
			return nil, fmt.Errorf("%w: unknown value %s", errUnsupported, expr)
		}
		return v, nil
	}
	if strings.HasPrefix(expr, "#") {
		v, ok := existing[names[expr]]
		if !ok {
			return nil, fmt.Errorf("attribute %s does not exist", expr)
		}
		return v, nil
	}
	return nil, fmt.Errorf("%w: %q", errUnsupported, expr)
}

func add(a, b types.AttributeValue) (types.AttributeValue, error) {
	an, aok := a.(*types.AttributeValueMemberN)
	bn, bok := b.(*types.AttributeValueMemberN)
	if !aok || !bok {
		return nil, errors.New("addition requires number operands")
	}
	ar, ok1 := new(big.Rat).SetString(an.Value)
	br, ok2 := new(big.Rat).SetString(bn.Value)
	if !ok1 || !ok2 {
		return nil, errors.New("invalid number operand")
	}
	sum := new(big.Rat).Add(ar, br)
	if sum.IsInt() {
		return &types.AttributeValueMemberN{Value: sum.Num().String()}, nil
	}
	return &types.AttributeValueMemberN{Value: sum.FloatString(10)}, nil
}
