package constants

import "errors"

var (
	// ErrTableNotFound table not found error
	ErrTableNotFound = errors.New("table not found")
)
