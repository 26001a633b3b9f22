package repository

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// cloneValue deep copies the container types a decoded document can hold. Scalars
// are immutable and returned as is.
func cloneValue(v any) any {
	switch t := v.(type) {
	case bson.M:
		return cloneDoc(t)
	case map[string]any:
		return map[string]any(cloneDoc(t))
	case bson.A:
		out := make(bson.A, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}

func cloneDoc(doc map[string]any) bson.M {
	if doc == nil {
		return nil
	}
	out := make(bson.M, len(doc))
	for k, v := range doc {
		out[k] = cloneValue(v)
	}
	return out
}

func asDoc(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case bson.M:
		return t, true
	case map[string]any:
		return t, true
	default:
		return nil, false
	}
}

// getPath resolves a dotted path such as contact.email.
func getPath(doc map[string]any, path string) (any, bool) {
	var cur any = doc
	for _, part := range strings.Split(path, ".") {
		m, ok := asDoc(cur)
		if !ok {
			return nil, false
		}
		if cur, ok = m[part]; !ok {
			return nil, false
		}
	}
	return cur, true
}

// setPath assigns value at a dotted path, creating intermediate documents.
func setPath(doc map[string]any, path string, value any) error {
	parts := strings.Split(path, ".")
	cur := doc
	for _, part := range parts[:len(parts)-1] {
		next, exists := cur[part]
		if !exists || next == nil {
			child := bson.M{}
			cur[part] = child
			cur = child
			continue
		}
		m, ok := asDoc(next)
		if !ok {
			return fmt.Errorf("cannot create field %q in element {%s: %v}", path, part, next)
		}
		cur = m
	}
	cur[parts[len(parts)-1]] = value
	return nil
}

// typeRank orders values of different types the way MongoDB sorts them.
func typeRank(v any) int {
	switch v.(type) {
	case nil:
		return 1
	case float64, float32, int, int32, int64:
		return 2
	case string:
		return 3
	case bson.M, map[string]any:
		return 4
	case bson.A, []any:
		return 5
	case bson.ObjectID:
		return 7
	case bool:
		return 8
	case time.Time, bson.DateTime:
		return 9
	default:
		return 10
	}
}

func toFloat(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case float32:
		return float64(t)
	case int:
		return float64(t)
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	}
	return 0
}

func toTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case bson.DateTime:
		return t.Time()
	}
	return time.Time{}
}

// compareValues returns -1, 0 or 1. Values of different types compare by typeRank;
// containers of the same type compare equal.
func compareValues(a, b any) int {
	ra, rb := typeRank(a), typeRank(b)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}

	switch ra {
	case 2:
		fa, fb := toFloat(a), toFloat(b)
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}
	case 3:
		return strings.Compare(a.(string), b.(string))
	case 7:
		ia, ib := a.(bson.ObjectID), b.(bson.ObjectID)
		return bytes.Compare(ia[:], ib[:])
	case 8:
		ba, bb := a.(bool), b.(bool)
		switch {
		case !ba && bb:
			return -1
		case ba && !bb:
			return 1
		}
	case 9:
		return toTime(a).Compare(toTime(b))
	}
	return 0
}
