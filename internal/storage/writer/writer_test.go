package writer_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leengari/rabbet/internal/domain/schema"
	"github.com/leengari/rabbet/internal/query/operations/testutil"
	"github.com/leengari/rabbet/internal/storage"
	"github.com/leengari/rabbet/internal/storage/writer"
)

func sampleTable() *schema.Table {
	return testutil.NewTable("t", nil,
		[]schema.Column{testutil.Int("id"), testutil.Float("score"), testutil.Bool("ok"), testutil.Text("note")},
		testutil.Row(1, 2.0, true, "a,b"),
		testutil.Row(2, 2.5, false, nil),
		testutil.Row(nil, nil, nil, "plain"),
	)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writer.WriteCSV(&buf, sampleTable(), ','))

	assert.Equal(t,
		"id,score,ok,note\n"+
			"1,2.0,true,\"a,b\"\n"+
			"2,2.5,false,\n"+
			",,,plain\n",
		buf.String())
}

func TestWriteCSV_Delimiter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writer.WriteCSV(&buf, testutil.CreateUsersTable().Head(1), '\t'))
	assert.Equal(t, "id\tusername\temail\n1\talice\talice@example.com\n", buf.String())
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "", writer.FormatValue(nil))
	assert.Equal(t, "-7", writer.FormatValue(int64(-7)))
	assert.Equal(t, "3.0", writer.FormatValue(3.0))
	assert.Equal(t, "0.1", writer.FormatValue(0.1))
	assert.Equal(t, "false", writer.FormatValue(false))
}

func TestSaveCSV_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	original := sampleTable()

	require.NoError(t, writer.SaveCSV(path, original, ','))

	loaded, err := storage.NewCSVReader(',', nil).ReadTable(path)
	require.NoError(t, err)
	assert.Equal(t, original.Schema.Columns, loaded.Schema.Columns)
	assert.Equal(t, original.Rows, loaded.Rows)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file left behind")
}
