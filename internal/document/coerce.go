package document

import (
	"fmt"
	"math"
	"math/big"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
)

// Number is the exact decimal form every numeric value takes in the store.
type Number = attributevalue.Number

// Outbound converts native numbers to Number, walking slices and maps.
// Everything else passes through unchanged.
func Outbound(v any) (any, error) {
	switch t := v.(type) {
	case int:
		return Number(strconv.FormatInt(int64(t), 10)), nil
	case int8:
		return Number(strconv.FormatInt(int64(t), 10)), nil
	case int16:
		return Number(strconv.FormatInt(int64(t), 10)), nil
	case int32:
		return Number(strconv.FormatInt(int64(t), 10)), nil
	case int64:
		return Number(strconv.FormatInt(t, 10)), nil
	case uint:
		return Number(strconv.FormatUint(uint64(t), 10)), nil
	case uint8:
		return Number(strconv.FormatUint(uint64(t), 10)), nil
	case uint16:
		return Number(strconv.FormatUint(uint64(t), 10)), nil
	case uint32:
		return Number(strconv.FormatUint(uint64(t), 10)), nil
	case uint64:
		return Number(strconv.FormatUint(t, 10)), nil
	case float32:
		return formatFloat(float64(t), 32)
	case float64:
		return formatFloat(t, 64)
	case []int:
		out := make([]any, len(t))
		for i, n := range t {
			out[i] = Number(strconv.Itoa(n))
		}
		return out, nil
	case []int64:
		out := make([]any, len(t))
		for i, n := range t {
			out[i] = Number(strconv.FormatInt(n, 10))
		}
		return out, nil
	case []float64:
		out := make([]any, len(t))
		for i, f := range t {
			n, err := formatFloat(f, 64)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			n, err := Outbound(item)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	case Record:
		return outboundMap(t)
	case map[string]any:
		return outboundMap(t)
	}
	return v, nil
}

func outboundMap(m map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(m))
	for k, item := range m {
		n, err := Outbound(item)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}
		out[k] = n
	}
	return out, nil
}

func formatFloat(f float64, bits int) (any, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidNumber, f)
	}
	return Number(strconv.FormatFloat(f, 'f', -1, bits)), nil
}

// Inbound converts Number values back to int64 when the fractional part is
// zero and to float64 otherwise, walking slices and maps.
func Inbound(v any) any {
	switch t := v.(type) {
	case Number:
		return nativeNumber(string(t))
	case []Number:
		out := make([]any, len(t))
		for i, n := range t {
			out[i] = nativeNumber(string(n))
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = Inbound(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = Inbound(item)
		}
		return out
	}
	return v
}

func nativeNumber(s string) any {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return s
	}
	if r.IsInt() && r.Num().IsInt64() {
		return r.Num().Int64()
	}
	f, _ := r.Float64()
	return f
}

func inboundRecord(m map[string]any) Record {
	out := make(Record, len(m))
	for k, v := range m {
		out[k] = Inbound(v)
	}
	return out
}
