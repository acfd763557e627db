package tablefor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStringRecords(t *testing.T) {
	records, err := StringRecords("post", [][]string{
		{" id ", "title", ""},
		{"1", "Hello", "x"},
		{"2"},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"id", "title", "column3"}, records.Model().Schema().Fields)
	require.Equal(t, map[string]string{"id": "1", "title": "Hello", "column3": "x"}, records.Record(0))
	require.Equal(t, map[string]string{"id": "2"}, records.Record(1))

	_, err = StringRecords("post", nil)
	require.ErrorIs(t, err, ErrNoHeader)

	_, err = StringRecords("post", [][]string{{"a", "a"}})
	require.Error(t, err)
}

func TestRemoveEmptyStrings(t *testing.T) {
	rows := [][]string{
		{},
		{"", "a", "b", ""},
		{" ", " "},
		{"", "", "c"},
	}
	rows = RemoveEmptyStringRows(rows)
	require.Len(t, rows, 2)
	numCols := RemoveEmptyStringColumns(rows)
	require.Equal(t, 2, numCols)
	require.Equal(t, [][]string{{"a", "b"}, {"", "c"}}, rows)

	empty := [][]string{{""}, {" "}}
	require.Zero(t, RemoveEmptyStringColumns(empty))
	require.Empty(t, RemoveEmptyStringRows(empty))
}
