package join_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leengari/rabbet/internal/domain/schema"
	"github.com/leengari/rabbet/internal/query/operations/join"
	"github.com/leengari/rabbet/internal/query/operations/testutil"
)

func threeTables() (a, b, c *schema.Table) {
	a = testutil.NewTable("A", []string{"id"},
		[]schema.Column{testutil.Int("id"), testutil.Text("a")},
		testutil.Row(1, "a1"), testutil.Row(2, "a2"), testutil.Row(3, "a3"),
	)
	b = testutil.NewTable("B", []string{"id"},
		[]schema.Column{testutil.Int("id"), testutil.Text("b")},
		testutil.Row(2, "b2"), testutil.Row(3, "b3"), testutil.Row(4, "b4"),
	)
	c = testutil.NewTable("C", []string{"id"},
		[]schema.Column{testutil.Int("id"), testutil.Text("c")},
		testutil.Row(3, "c3"), testutil.Row(4, "c4"), testutil.Row(1, "c1"),
	)
	return a, b, c
}

func TestFold_InnerIsIntersection(t *testing.T) {
	a, b, c := threeTables()

	for _, order := range [][]*schema.Table{{a, b, c}, {c, b, a}, {b, c, a}} {
		result, err := join.Fold(order, join.JoinTypeInner)
		require.NoError(t, err)
		require.Len(t, result.Rows, 1, "first table %s", order[0].Label)

		id, _ := result.Value(0, "id")
		assert.Equal(t, int64(3), id)
	}
}

func TestFold_ReportsSteps(t *testing.T) {
	a, b, c := threeTables()

	var steps []join.StepInfo
	result, err := join.Fold([]*schema.Table{a, b, c}, join.JoinTypeLeft,
		join.WithStepObserver(func(s join.StepInfo) { steps = append(steps, s) }),
	)
	require.NoError(t, err)
	testutil.AssertColumns(t, result, []string{"id", "a", "b", "c"}, "left fold")
	testutil.AssertRowCount(t, result.Height(), 3, "left fold")

	require.Len(t, steps, 2)
	assert.Equal(t, join.StepInfo{Step: 1, Left: "A", Right: "B", Type: join.JoinTypeLeft, LeftRows: 3, Rows: 3}, steps[0])
	assert.Equal(t, join.StepInfo{Step: 2, Left: "A", Right: "C", Type: join.JoinTypeLeft, LeftRows: 3, Rows: 3}, steps[1])
}

func TestFold_RightStepProvenance(t *testing.T) {
	a, b, c := threeTables()

	result, err := join.Fold([]*schema.Table{a, b, c}, join.JoinTypeRight)
	require.NoError(t, err)
	assert.Equal(t, "C", result.Label)

	// C drives the layout: its rows in order, unmatched ones null-filled
	testutil.AssertColumns(t, result, []string{"id", "c", "b", "a"}, "right fold")
	testutil.AssertRowCount(t, result.Height(), 3, "right fold")
	assert.Equal(t, testutil.Row(3, "c3", "b3", "a3"), result.Rows[0])
	assert.Equal(t, testutil.Row(4, "c4", "b4", nil), result.Rows[1])
	assert.Equal(t, testutil.Row(1, "c1", nil, nil), result.Rows[2])

	legacy, err := join.Fold([]*schema.Table{a, b, c}, join.JoinTypeRight, join.WithLegacyProvenance())
	require.NoError(t, err)
	assert.Equal(t, "A", legacy.Label)
}

func TestFold_FailureAbortsWithoutPartialResult(t *testing.T) {
	a, b, _ := threeTables()
	bad := testutil.NewTable("bad", []string{"missing"}, []schema.Column{testutil.Int("id")})

	result, err := join.Fold([]*schema.Table{a, b, bad}, join.JoinTypeInner)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "failed to join 'A' with 'bad'")
}

func TestFold_SingleTable(t *testing.T) {
	a, _, _ := threeTables()

	result, err := join.Fold([]*schema.Table{a}, join.JoinTypeInner)
	require.NoError(t, err)
	assert.Equal(t, a.Rows, result.Rows)
	assert.NotSame(t, a, result)

	_, err = join.Fold(nil, join.JoinTypeInner)
	require.Error(t, err)
}
