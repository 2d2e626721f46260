package tables

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"go.uber.org/zap"
)

// ErrCorruptTable define error raised when an existing table file cannot be read
var ErrCorruptTable = errors.New("corrupt table file")

// Table define an in-memory view of one on-disk time-series table.
// Header holds the field names with "date" first, Rows are kept sorted
// ascending by date.
type Table struct {
	Header []string
	Rows   []Row
}

// ReadTable read and decode a whole table file
func ReadTable(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	table := new(Table)
	err = table.Decode(file)
	if err != nil {
		zap.L().Error("decode table failed", zap.Error(err), zap.String("path", path))
		return nil, fmt.Errorf("%w: %s: %s", ErrCorruptTable, path, err.Error())
	}

	return table, nil
}

// Decode decode csv table from reader
func (t *Table) Decode(r io.Reader) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return err
	}

	if len(records) == 0 {
		return errors.New("missing header row")
	}

	header := records[0]
	if len(header) < 2 || header[0] != "date" {
		return fmt.Errorf("invalid header row: %v", header)
	}

	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) != len(header) {
			return fmt.Errorf("row field count %d mismatch header %d", len(record), len(header))
		}

		rows = append(rows, Row{Date: record[0], Values: record[1:]})
	}

	t.Header = header
	t.Rows = rows

	return nil
}

// Encode encode csv table to writer
func (t Table) Encode(w io.Writer) error {
	writer := csv.NewWriter(w)

	err := writer.Write(t.Header)
	if err != nil {
		return err
	}

	record := make([]string, len(t.Header))
	for _, row := range t.Rows {
		record = record[:0]
		record = append(record, row.Date)
		record = append(record, row.Values...)

		err = writer.Write(record)
		if err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// Dates collect the set of date keys present
func (t Table) Dates() map[string]bool {
	dates := make(map[string]bool, len(t.Rows))
	for _, row := range t.Rows {
		dates[row.Date] = true
	}

	return dates
}

// Merge dedup rows by date keeping the last occurrence, then sort ascending
func (t *Table) Merge() {
	last := make(map[string]int, len(t.Rows))
	for index, row := range t.Rows {
		last[row.Date] = index
	}

	rows := make([]Row, 0, len(last))
	for index, row := range t.Rows {
		if last[row.Date] == index {
			rows = append(rows, row)
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Date < rows[j].Date
	})

	t.Rows = rows
}
