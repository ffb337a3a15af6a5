package domain

import "fmt"

// ParseError reports a single record or sub-field that did not match its
// expected textual shape. It carries the offending raw value for diagnostics.
type ParseError struct {
	Field string // field group that failed, e.g. "month", "latitude", "magnitude value"
	Value string // offending raw input
	Msg   string
}

func (e *ParseError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("parse %s: %s", e.Field, e.Msg)
	}
	return fmt.Sprintf("parse %s: %s (got %q)", e.Field, e.Msg, e.Value)
}

// QueryError reports a pipeline-level query failure, e.g. a degenerate input
// that a filtering or hotspot stage cannot operate on.
type QueryError struct {
	Stage string
	Msg   string
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query %s: %s", e.Stage, e.Msg)
}
