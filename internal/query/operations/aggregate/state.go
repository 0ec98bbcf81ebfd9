package aggregate

import (
	"math"
	"sort"
	"strings"

	"github.com/leengari/rabbet/internal/domain/schema"
)

// numericState holds the non-null values of one group for a numeric column
type numericState struct {
	ints   bool // every value is int64
	values []float64
	intSum int64
}

func newNumericState(values []any, colType schema.ColumnType) *numericState {
	s := &numericState{ints: colType == schema.ColumnTypeInt}
	for _, v := range values {
		switch n := v.(type) {
		case int64:
			s.values = append(s.values, float64(n))
			s.intSum += n
		case float64:
			s.values = append(s.values, n)
		}
	}
	return s
}

func (s *numericState) count() int {
	return len(s.values)
}

func (s *numericState) sum() any {
	if s.ints {
		return s.intSum
	}
	total := 0.0
	for _, v := range s.values {
		total += v
	}
	return total
}

func (s *numericState) mean() (float64, bool) {
	if len(s.values) == 0 {
		return 0, false
	}
	total := 0.0
	for _, v := range s.values {
		total += v
	}
	return total / float64(len(s.values)), true
}

func (s *numericState) median() (float64, bool) {
	n := len(s.values)
	if n == 0 {
		return 0, false
	}
	sorted := append([]float64(nil), s.values...)
	sort.Float64s(sorted)
	if n%2 == 1 {
		return sorted[n/2], true
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2, true
}

// variance is the sample variance (n-1 denominator); undefined below two values
func (s *numericState) variance() (float64, bool) {
	n := len(s.values)
	if n < 2 {
		return 0, false
	}
	mean, _ := s.mean()
	ss := 0.0
	for _, v := range s.values {
		d := v - mean
		ss += d * d
	}
	return ss / float64(n-1), true
}

func (s *numericState) stddev() (float64, bool) {
	v, ok := s.variance()
	if !ok {
		return 0, false
	}
	return math.Sqrt(v), true
}

// extreme returns the smallest (sign < 0) or largest (sign > 0) non-null value
func extreme(values []any, sign int) any {
	var best any
	for _, v := range values {
		if v == nil {
			continue
		}
		if best == nil || compare(v, best)*sign > 0 {
			best = v
		}
	}
	return best
}

// compare orders two non-null values of the same column
func compare(a, b any) int {
	switch x := a.(type) {
	case int64:
		if y, ok := b.(int64); ok {
			switch {
			case x < y:
				return -1
			case x > y:
				return 1
			}
			return 0
		}
	case float64:
		if y, ok := b.(float64); ok {
			switch {
			case x < y:
				return -1
			case x > y:
				return 1
			}
			return 0
		}
	case bool:
		if y, ok := b.(bool); ok {
			switch {
			case x == y:
				return 0
			case !x:
				return -1
			}
			return 1
		}
	case string:
		if y, ok := b.(string); ok {
			return strings.Compare(x, y)
		}
	}
	return 0
}
