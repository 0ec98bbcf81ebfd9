package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leengari/rabbet/internal/domain/schema"
	"github.com/leengari/rabbet/internal/query/operations/testutil"
)

func render(t *testing.T, tbl *schema.Table, s Settings) []string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, RenderTable(&buf, tbl, s))
	return strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
}

func TestRenderTable_Basic(t *testing.T) {
	tbl := testutil.NewTable("t", nil, []schema.Column{testutil.Int("a")},
		testutil.Row(1),
		testutil.Row(nil),
	)

	assert.Equal(t, []string{
		"╭──────╮",
		"│ a    │",
		"╞══════╡",
		"│ 1    │",
		"│ null │",
		"╰──────╯",
	}, render(t, tbl, DefaultSettings()))
}

func TestRenderTable_Elision(t *testing.T) {
	tbl := testutil.NewTable("t", nil,
		[]schema.Column{testutil.Int("x"), testutil.Int("y"), testutil.Int("z")},
		testutil.Row(1, 2, 3),
		testutil.Row(4, 5, 6),
		testutil.Row(7, 8, 9),
	)

	lines := render(t, tbl, Settings{Width: 300, MaxRows: 2, StrLen: 16, MaxCols: 2})
	assert.Equal(t, []string{
		"╭─────────╮",
		"│ x  …  z │",
		"╞═════════╡",
		"│ 1  …  3 │",
		"│ …  …  … │",
		"│ 7  …  9 │",
		"╰─────────╯",
	}, lines)
}

func TestRenderTable_NarrowWidthDropsColumns(t *testing.T) {
	cols := make([]schema.Column, 20)
	values := make([]any, 20)
	for i := range cols {
		cols[i] = testutil.Text(strings.Repeat("c", 10) + string(rune('a'+i)))
		values[i] = "value"
	}
	tbl := testutil.NewTable("t", nil, cols, testutil.Row(values...))

	lines := render(t, tbl, Settings{Width: 80, MaxRows: 10, StrLen: 16, MaxCols: 100})
	for _, line := range lines {
		assert.LessOrEqual(t, len([]rune(line)), 80)
	}
	assert.Contains(t, lines[1], "…")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc…", truncate("abcdef", 4))
	assert.Equal(t, "abcd", truncate("abcd", 4))
	assert.Equal(t, "größ…", truncate("größenordnung", 5))
}

func TestSettingsForSize(t *testing.T) {
	assert.Equal(t, Settings{Width: 80, MaxRows: 10, StrLen: 16, MaxCols: 100}, SettingsForSize(50, 8))
	assert.Equal(t, Settings{Width: 300, MaxRows: 1000, StrLen: 16, MaxCols: 100}, SettingsForSize(400, 2000))
	assert.Equal(t, Settings{Width: 150, MaxRows: 35, StrLen: 16, MaxCols: 100}, SettingsForSize(150, 40))
	assert.Equal(t, DefaultSettings(), SettingsForSize(0, 0))
	assert.Equal(t, 120, DefaultSettings().Width)
	assert.Equal(t, 25, DefaultSettings().MaxRows)
}

func TestSettingsOverride(t *testing.T) {
	s := DefaultSettings().Override(Settings{StrLen: 40})
	assert.Equal(t, 40, s.StrLen)
	assert.Equal(t, 120, s.Width)
}

func TestFormat(t *testing.T) {
	f, err := ParseFormat("CSV")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	_, err = ParseFormat("json")
	assert.Error(t, err)

	assert.True(t, FormatAuto.UseTable(true, false))
	assert.True(t, FormatAuto.UseTable(false, true))
	assert.False(t, FormatAuto.UseTable(false, false))
	assert.True(t, FormatTable.UseTable(false, false))
	assert.False(t, FormatCSV.UseTable(true, true))
}

func TestWrite_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, testutil.CreateUsersTable().Head(1), false, DefaultSettings()))
	assert.Equal(t, "id,username,email\n1,alice,alice@example.com\n", buf.String())
}
