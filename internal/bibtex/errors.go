package bibtex

import "fmt"

// ParseError reports malformed entry structure: unbalanced braces, a missing
// cite key, a field without '='. Structural failures are fatal for the whole
// run; the file cannot be partially trusted once one occurs.
type ParseError struct {
	// Offset is the byte offset of the problem in the input.
	Offset int

	// Line is the 1-based line number of the problem.
	Line int

	// Msg describes what was expected.
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("bibtex: parse error at line %d (offset %d): %s", e.Line, e.Offset, e.Msg)
}
