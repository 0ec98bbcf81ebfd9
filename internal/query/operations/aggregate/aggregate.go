package aggregate

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/leengari/rabbet/internal/domain/data"
	domainerrors "github.com/leengari/rabbet/internal/domain/errors"
	"github.com/leengari/rabbet/internal/domain/schema"
	"github.com/leengari/rabbet/internal/storage/writer"
)

type group struct {
	first int   // position of the group's first row
	rows  []int // row positions, in input order
}

// Aggregate groups t by the given columns and applies every spec to each group.
// Groups appear in the order their first row appears. Without grouping columns the
// whole table is a single group, so the result always has exactly one row.
func Aggregate(t *schema.Table, by []string, specs []Spec) (*schema.Table, error) {
	if len(specs) == 0 {
		return nil, domainerrors.NewValidation("At least one aggregation operation must be specified with --with")
	}

	byIdx := make([]int, len(by))
	for i, name := range by {
		byIdx[i] = t.Schema.Index(name)
		if byIdx[i] < 0 {
			return nil, &domainerrors.ColumnNotFoundError{TableName: tableName(t), ColumnName: name}
		}
	}

	specIdx := make([]int, len(specs))
	cols := make([]schema.Column, 0, len(by)+len(specs))
	for _, i := range byIdx {
		cols = append(cols, t.Schema.Columns[i])
	}
	for i, spec := range specs {
		if spec.Column == RowColumn {
			specIdx[i] = -1
			cols = append(cols, schema.Column{Name: spec.OutputName(), Type: schema.ColumnTypeInt})
			continue
		}

		specIdx[i] = t.Schema.Index(spec.Column)
		if specIdx[i] < 0 {
			return nil, &domainerrors.ColumnNotFoundError{TableName: tableName(t), ColumnName: spec.Column}
		}
		colType := t.Schema.Columns[specIdx[i]].Type
		if spec.Op.numeric() && !colType.IsNumeric() {
			return nil, fmt.Errorf("cannot compute %s of non-numeric column '%s' (%s)", spec.Op, spec.Column, colType)
		}
		cols = append(cols, schema.Column{Name: spec.OutputName(), Type: outputType(spec.Op, colType)})
	}

	groups := groupRows(t, byIdx)

	rows := make([]data.Row, 0, len(groups))
	for _, g := range groups {
		row := data.NewRow(len(cols))
		for i, pos := range byIdx {
			if len(g.rows) > 0 {
				row[i] = t.Rows[g.first][pos]
			}
		}
		for i, spec := range specs {
			out := len(byIdx) + i
			if specIdx[i] < 0 {
				row[out] = int64(len(g.rows))
				continue
			}
			values := make([]any, len(g.rows))
			for j, r := range g.rows {
				values[j] = t.Rows[r][specIdx[i]]
			}
			row[out] = apply(spec.Op, values, t.Schema.Columns[specIdx[i]].Type)
		}
		rows = append(rows, row)
	}

	slog.Debug("aggregation completed",
		slog.String("table", t.Label),
		slog.Any("by", by),
		slog.Int("groups", len(rows)),
	)

	out := schema.NewTable(schema.NewTableSchema(cols...), rows)
	out.Label = t.Label
	return out, nil
}

func tableName(t *schema.Table) string {
	if t.Label != "" {
		return t.Label
	}
	return t.Path
}

func groupRows(t *schema.Table, byIdx []int) []*group {
	if len(byIdx) == 0 {
		g := &group{rows: make([]int, len(t.Rows))}
		for i := range t.Rows {
			g.rows[i] = i
		}
		return []*group{g}
	}

	var order []*group
	index := make(map[string]*group)
	for i, row := range t.Rows {
		key := groupKey(row, byIdx)
		g, ok := index[key]
		if !ok {
			g = &group{first: i}
			index[key] = g
			order = append(order, g)
		}
		g.rows = append(g.rows, i)
	}
	return order
}

// groupKey encodes the grouping values; NULLs group together
func groupKey(row data.Row, byIdx []int) string {
	var sb strings.Builder
	for _, pos := range byIdx {
		v := row[pos]
		if v == nil {
			sb.WriteString("\x00;")
			continue
		}
		s := fmt.Sprintf("%T:%v", v, v)
		fmt.Fprintf(&sb, "%d:%s;", len(s), s)
	}
	return sb.String()
}

func outputType(op Operation, colType schema.ColumnType) schema.ColumnType {
	switch op {
	case OpCount, OpLen, OpNRow:
		return schema.ColumnTypeInt
	case OpSum, OpRange:
		if colType == schema.ColumnTypeInt {
			return schema.ColumnTypeInt
		}
		return schema.ColumnTypeFloat
	case OpMean, OpMedian, OpVariance, OpStdDev:
		return schema.ColumnTypeFloat
	case OpDescribe:
		return schema.ColumnTypeText
	default:
		return colType
	}
}

func apply(op Operation, values []any, colType schema.ColumnType) any {
	switch op {
	case OpCount:
		n := int64(0)
		for _, v := range values {
			if v != nil {
				n++
			}
		}
		return n
	case OpLen, OpNRow:
		return int64(len(values))
	case OpFirst:
		if len(values) == 0 {
			return nil
		}
		return values[0]
	case OpLast:
		if len(values) == 0 {
			return nil
		}
		return values[len(values)-1]
	case OpMin:
		return extreme(values, -1)
	case OpMax:
		return extreme(values, 1)
	case OpRange:
		lo, hi := extreme(values, -1), extreme(values, 1)
		if lo == nil {
			return nil
		}
		if colType == schema.ColumnTypeInt {
			return hi.(int64) - lo.(int64)
		}
		return hi.(float64) - lo.(float64)
	}

	s := newNumericState(values, colType)
	switch op {
	case OpSum:
		return s.sum()
	case OpMean:
		return optional(s.mean())
	case OpMedian:
		return optional(s.median())
	case OpVariance:
		return optional(s.variance())
	case OpStdDev:
		return optional(s.stddev())
	case OpDescribe:
		return describe(s, values)
	}
	return nil
}

// describe summarises a column; any undefined statistic makes the whole summary NULL
func describe(s *numericState, values []any) any {
	mean, ok := s.mean()
	if !ok {
		return nil
	}
	std, ok := s.stddev()
	if !ok {
		return nil
	}
	return fmt.Sprintf("count: %d, mean: %s, std: %s, min: %s, max: %s",
		s.count(),
		writer.FormatValue(mean),
		writer.FormatValue(std),
		writer.FormatValue(extreme(values, -1)),
		writer.FormatValue(extreme(values, 1)),
	)
}

func optional(v float64, ok bool) any {
	if !ok {
		return nil
	}
	return v
}
