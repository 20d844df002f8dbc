package document

import (
	"fmt"
	"sort"
	"strings"
)

// UpdateExpression is a SET instruction whose field names and values are only
// ever referenced through placeholders.
type UpdateExpression struct {
	Expression string
	Names      map[string]string
	Values     map[string]any
}

// BuildUpdate assigns each field a #attrN/:valN placeholder pair, in field
// name order, and always finishes with an assignment of updated_at = now.
// A caller-supplied updated_at is dropped in favour of now.
func BuildUpdate(fields map[string]any, now string) UpdateExpression {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		if k == FieldUpdatedAt {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	expr := UpdateExpression{
		Names:  make(map[string]string, len(keys)+1),
		Values: make(map[string]any, len(keys)+1),
	}

	assignments := make([]string, 0, len(keys)+1)
	for i, k := range keys {
		name := fmt.Sprintf("#attr%d", i)
		value := fmt.Sprintf(":val%d", i)
		assignments = append(assignments, name+" = "+value)
		expr.Names[name] = k
		expr.Values[value] = fields[k]
	}

	assignments = append(assignments, "#updated_at = :updated_at")
	expr.Names["#updated_at"] = FieldUpdatedAt
	expr.Values[":updated_at"] = now

	expr.Expression = "SET " + strings.Join(assignments, ", ")
	return expr
}
