package parser

import "fmt"

// ParseError reports a grammar violation in an annotated SQL source.
//
// Line is the cursor's 1-based line counter at the moment the violation
// was detected. Because detection happens on read of the next line, this
// can be the line after the semantically wrong one.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

func errorf(line int, format string, args ...any) *ParseError {
	return &ParseError{Line: line, Message: fmt.Sprintf(format, args...)}
}
