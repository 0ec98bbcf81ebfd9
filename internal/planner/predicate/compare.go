package predicate

import "strings"

// CompareValues applies a comparison operator to two cell values.
// NULL on either side yields false. INT and FLOAT compare numerically.
// Values of unrelated types are only ever unequal.
func CompareValues(a any, operator string, b any) bool {
	if a == nil || b == nil {
		return false
	}

	c, ok := Order(a, b)
	if !ok {
		return operator == "!="
	}

	switch operator {
	case "=":
		return c == 0
	case "!=":
		return c != 0
	case "<":
		return c < 0
	case ">":
		return c > 0
	case "<=":
		return c <= 0
	case ">=":
		return c >= 0
	default:
		return false
	}
}

// Order returns -1, 0 or 1 comparing two non-null values of compatible types.
// The boolean is false when the types cannot be ordered against each other.
func Order(a, b any) (int, bool) {
	if fa, ok := numeric(a); ok {
		fb, ok := numeric(b)
		if !ok {
			return 0, false
		}
		// Exact comparison for two integers
		if ia, ok := a.(int64); ok {
			if ib, ok := b.(int64); ok {
				return cmpInt(ia, ib), true
			}
		}
		switch {
		case fa < fb:
			return -1, true
		case fa > fb:
			return 1, true
		default:
			return 0, true
		}
	}

	switch x := a.(type) {
	case string:
		y, ok := b.(string)
		if !ok {
			return 0, false
		}
		return strings.Compare(x, y), true
	case bool:
		y, ok := b.(bool)
		if !ok {
			return 0, false
		}
		switch {
		case x == y:
			return 0, true
		case !x:
			return -1, true
		default:
			return 1, true
		}
	}
	return 0, false
}

func numeric(v any) (float64, bool) {
	switch x := v.(type) {
	case int64:
		return float64(x), true
	case float64:
		return x, true
	}
	return 0, false
}

func cmpInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
