package integration_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/leengari/rabbet/internal/domain/errors"
	"github.com/leengari/rabbet/internal/engine"
	"github.com/leengari/rabbet/internal/parser"
	"github.com/leengari/rabbet/internal/query/operations/aggregate"
)

func loadedEngine(t *testing.T) *engine.Engine {
	t.Helper()
	eng := newEngine()
	require.NoError(t, eng.Load(
		[]string{fixture("users.csv"), fixture("orders.csv"), fixture("reviews.csv")},
		[]string{"users", "orders", "reviews"},
	))
	return eng
}

func TestQueries(t *testing.T) {
	eng := loadedEngine(t)

	tests := []struct {
		name string
		sql  string
		want string
	}{
		{
			name: "join with filter and order",
			sql: `SELECT u.username, o.amount
			      FROM users u JOIN orders o ON u.id = o.user_id
			      WHERE o.amount >= 20
			      ORDER BY u.username DESC`,
			want: "username,amount\nbob,25.5\nalice,25.5\n",
		},
		{
			name: "left join anti pattern",
			sql:  "SELECT u.username FROM users u LEFT JOIN orders o ON u.id = o.user_id WHERE o.order_id IS NULL ORDER BY u.username",
			want: "username\ncarol\ndave\n",
		},
		{
			name: "three tables",
			sql: `SELECT u.username, o.order_id, r.stars AS rating
			      FROM users u
			      JOIN orders o ON o.user_id = u.id
			      JOIN reviews r ON r.uid = u.id
			      ORDER BY o.order_id`,
			want: "username,order_id,rating\nalice,100,5\nalice,101,5\nbob,102,3\n",
		},
		{
			name: "booleans and nulls",
			sql:  "SELECT username FROM users WHERE active = TRUE AND email IS NOT NULL",
			want: "username\nalice\ndave\n",
		},
		{
			name: "or with parentheses and limit",
			sql:  "SELECT order_id FROM orders WHERE (user_id = 1 OR user_id = 5) AND NOT amount < 10 ORDER BY amount DESC LIMIT 1",
			want: "order_id\n100\n",
		},
		{
			name: "full join keeps both sides",
			sql:  "SELECT users.id, orders.order_id FROM users FULL JOIN orders ON users.id = orders.user_id WHERE users.id IS NULL OR orders.order_id IS NULL",
			want: "id,order_id\n3,\n4,\n,103\n",
		},
		{
			name: "star over a join qualifies duplicate names",
			sql:  "SELECT * FROM reviews r JOIN reviews r2 ON r2.review_id = r.review_id WHERE r.stars = 5",
			want: "r.review_id,r.uid,r.stars,r2.review_id,r2.uid,r2.stars\n900,1,5,900,1,5\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := eng.Execute(tt.sql)
			require.NoError(t, err)
			assert.Equal(t, tt.want, csvText(t, result.Table))
		})
	}
}

func TestQueryErrors(t *testing.T) {
	eng := loadedEngine(t)

	// id only exists in users, so it needs no qualifier
	_, err := eng.Execute("SELECT id FROM users JOIN orders ON users.id = orders.user_id")
	require.NoError(t, err)

	var ambiguous *domainerrors.AmbiguousColumnError
	_, err = eng.Execute("SELECT id FROM users u JOIN reviews r ON r.uid = u.id JOIN reviews r2 ON r2.uid = u.id WHERE review_id = 1")
	require.True(t, errors.As(err, &ambiguous), "got %v", err)

	_, err = eng.Execute("SELECT * FROM payments")
	var missing *domainerrors.TableNotFoundError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "payments", missing.TableName)

	_, err = eng.Execute("SELECT *\nFROM users\nWHERE")
	var pe *parser.ParseError
	require.True(t, errors.As(err, &pe), "got %v", err)
	assert.Equal(t, 3, pe.Line)
	assert.True(t, strings.HasPrefix(err.Error(), "parse error: syntax error at line 3"))
}

func TestExplainFixture(t *testing.T) {
	eng := loadedEngine(t)

	tree, err := eng.Explain("SELECT u.username FROM users u JOIN orders o ON u.id = o.user_id WHERE o.amount > 1")
	require.NoError(t, err)
	assert.Equal(t, `PROJECT [columns=[username]]
  FILTER [condition=(o.amount > 1)]
    JOIN [algorithm=hash, on=u.id = o.user_id, type=inner]
      SCAN [alias=u, rows=4, table=users]
      SCAN [alias=o, rows=4, table=orders]
`, tree)
}

func TestAggregateFixture(t *testing.T) {
	orders, err := newEngine().Read(fixture("orders.csv"))
	require.NoError(t, err)

	specs, err := aggregate.ParseSpecs([]string{"amount=sum", "amount=mean", "_=nrow"})
	require.NoError(t, err)

	result, err := aggregate.Aggregate(orders, []string{"user_id"}, specs)
	require.NoError(t, err)
	assert.Equal(t, "user_id,amount_sum,amount_mean,nrow\n1,37.5,18.75,2\n2,25.5,25.5,1\n5,7.25,7.25,1\n", csvText(t, result))
}
