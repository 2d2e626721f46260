package tables

import "errors"

var (
	// ErrMissingDate define error raised by a candidate row without a date
	ErrMissingDate = errors.New("row date is empty")
	// ErrFieldCount define error raised by a candidate row with wrong arity
	ErrFieldCount = errors.New("row field count mismatch")
)

// Row define one observation keyed by its date string.
// Values are kept as opaque text so repeated merges never re-parse numerics.
type Row struct {
	Date   string
	Values []string
}

// Validate check row against the table field schema
func (r Row) Validate(header []string) error {
	if r.Date == "" {
		return ErrMissingDate
	}

	if len(r.Values) != len(header)-1 {
		return ErrFieldCount
	}

	return nil
}
