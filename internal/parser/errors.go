package parser

import "fmt"

// EmptyInputError means there was no usable text to parse.
type EmptyInputError struct {
	// Source names where the text came from, e.g. "clipboard". May be empty.
	Source string
}

func (e *EmptyInputError) Error() string {
	if e.Source == "" {
		return "the input tree structure is empty"
	}
	return fmt.Sprintf("the %s is empty", e.Source)
}

// MalformedLineError means a line doesn't fit the indent, connector and name grammar.
type MalformedLineError struct {
	Line   int
	Text   string
	Reason string
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("invalid line format at line %d: %s: '%s'", e.Line, e.Reason, e.Text)
}

// InconsistentIndentationError means a line is nested deeper than the
// number of entries currently open above it.
type InconsistentIndentationError struct {
	Line  int
	Text  string
	Depth int
	Open  int
}

func (e *InconsistentIndentationError) Error() string {
	return fmt.Sprintf("inconsistent indentation at line %d (depth %d, %d open): '%s'", e.Line, e.Depth, e.Open, e.Text)
}
