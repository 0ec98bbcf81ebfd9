package binding_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leengari/rabbet/internal/query/binding"
)

func TestParseOnSpecs_Qualified(t *testing.T) {
	km := binding.ParseOnSpecs([]string{"A.x=B.y=C.z"})

	assert.Equal(t, []string{"x"}, km.Columns("A"))
	assert.Equal(t, []string{"y"}, km.Columns("B"))
	assert.Equal(t, []string{"z"}, km.Columns("C"))
	assert.Empty(t, km.Wildcard())
	assert.Equal(t, []string{"A", "B", "C"}, km.Labels())
}

func TestParseOnSpecs_Unqualified(t *testing.T) {
	km := binding.ParseOnSpecs([]string{"id", "name", "id"})

	assert.Equal(t, []string{"id", "name", "id"}, km.Wildcard())
	assert.Empty(t, km.Labels())
}

func TestParseOnSpecs_AccumulatesAcrossStrings(t *testing.T) {
	km := binding.ParseOnSpecs([]string{"users.id=orders.user_id", "users.region=orders.region", "day"})

	assert.Equal(t, []string{"id", "region"}, km.Columns("users"))
	assert.Equal(t, []string{"user_id", "region"}, km.Columns("orders"))
	assert.Equal(t, []string{"day", "id", "region"}, km.Resolve("users"))
	assert.Equal(t, []string{"day"}, km.Resolve("missing"))
}

func TestParseOnSpecs_UnqualifiedWithoutPair(t *testing.T) {
	cases := []string{
		"A.x",   // single token
		"A.x=B", // unqualified token
		"user-id",
		"",
	}
	for _, spec := range cases {
		km := binding.ParseOnSpecs([]string{spec})
		assert.Equal(t, []string{spec}, km.Wildcard(), spec)
		assert.Empty(t, km.Labels(), spec)
	}
}

func TestParseOnSpecs_PairAnywhereQualifies(t *testing.T) {
	km := binding.ParseOnSpecs([]string{"users.id=orders.user-id"})
	assert.Empty(t, km.Wildcard())
	assert.Equal(t, []string{"id"}, km.Columns("users"))
	assert.Equal(t, []string{"user-id"}, km.Columns("orders"))

	// tokens split on their first dot
	km = binding.ParseOnSpecs([]string{"a.b.c=d.e"})
	assert.Equal(t, []string{"b.c"}, km.Columns("a"))
	assert.Equal(t, []string{"e"}, km.Columns("d"))

	km = binding.ParseOnSpecs([]string{"A.x=B.y junk"})
	assert.Equal(t, []string{"A", "B"}, km.Labels())
	assert.Equal(t, []string{"y junk"}, km.Columns("B"))
}

func TestParseOnSpecs_Unicode(t *testing.T) {
	km := binding.ParseOnSpecs([]string{"ä.größe=β_2.größe"})

	assert.Equal(t, []string{"größe"}, km.Columns("ä"))
	assert.Equal(t, []string{"größe"}, km.Columns("β_2"))
}

func TestKeyMap_AccessorsReturnCopies(t *testing.T) {
	km := binding.ParseOnSpecs([]string{"id", "A.x=B.y"})

	w := km.Wildcard()
	w[0] = "changed"
	cols := km.Columns("A")
	cols[0] = "changed"

	assert.Equal(t, []string{"id"}, km.Wildcard())
	assert.Equal(t, []string{"x"}, km.Columns("A"))
}
