package tables

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_DecodeEncode(t *testing.T) {
	input := "date,open,close\n2024-01-01 09:15:00,100.0,101.0\n2024-01-01 09:16:00,102.0,103.0\n"

	table := new(Table)
	require.NoError(t, table.Decode(strings.NewReader(input)))
	assert.Equal(t, []string{"date", "open", "close"}, table.Header)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "2024-01-01 09:15:00", table.Rows[0].Date)

	buffer := new(bytes.Buffer)
	require.NoError(t, table.Encode(buffer))
	assert.Equal(t, input, buffer.String())
}

func TestTable_DecodeInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"header without date", "open,close\n1,2\n"},
		{"single column header", "date\n2024-01-01\n"},
		{"short row", "date,open,close\n2024-01-01,1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := new(Table).Decode(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestTable_Merge(t *testing.T) {
	table := &Table{
		Header: []string{"date", "open", "close"},
		Rows: []Row{
			{Date: "2024-01-01 09:16:00", Values: []string{"3", "4"}},
			{Date: "2024-01-01 09:15:00", Values: []string{"1", "2"}},
			{Date: "2024-01-01 09:16:00", Values: []string{"5", "6"}},
		},
	}

	table.Merge()

	require.Len(t, table.Rows, 2)
	assert.Equal(t, "2024-01-01 09:15:00", table.Rows[0].Date)
	assert.Equal(t, []string{"5", "6"}, table.Rows[1].Values)
}
