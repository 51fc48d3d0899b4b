package pipeline

import "errors"

var (
	// ErrEmptyInput means the input contained no analyzable text after
	// trimming. Fatal to the request; no report is produced.
	ErrEmptyInput = errors.New("input text is empty")

	// ErrExtractionUnavailable means a ranking or analysis capability could
	// not be reached. Non-fatal; the affected report section stays empty.
	ErrExtractionUnavailable = errors.New("extraction capability unavailable")
)
