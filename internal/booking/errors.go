package booking

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound    = errors.New("booking not found")
	ErrDuplicateID = errors.New("booking id already exists")

	// ErrConflict means the record changed between read and write; the caller
	// must re-fetch and retry.
	ErrConflict = errors.New("booking was modified concurrently")
)

// ValidationError carries field-keyed messages back to the form that
// submitted them. It is a recoverable outcome, not a server fault.
type ValidationError struct {
	Fields map[string]string
}

func (e ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
