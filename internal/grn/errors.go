package grn

import "fmt"

// SourceReadError indicates a backing source that could not be read or
// does not have the expected edge-list schema. A query over multiple
// sources fails as a whole on the first such error; no partial results
// are returned.
type SourceReadError struct {
	Source string
	Err    error
}

func (e *SourceReadError) Error() string {
	return fmt.Sprintf("cannot read backing source %s: %v", e.Source, e.Err)
}

func (e *SourceReadError) Unwrap() error { return e.Err }
