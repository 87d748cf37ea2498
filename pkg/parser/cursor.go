package parser

import "strings"

// Cursor is a forward-only, line-granular reader over a source string.
//
// The current line is available via Line() until Advance() moves past the
// last line, after which AtEnd() reports true and Line() is meaningless.
// LineNumber() is 1-based and counts lines consumed so far; it is the value
// used in parse error messages.
type Cursor struct {
	lines   []string
	index   int
	line    string
	atEnd   bool
	lineNum int
}

// NewCursor returns a cursor positioned on the first line of src.
// An empty source starts at end of input.
func NewCursor(src string) *Cursor {
	c := &Cursor{lines: splitLines(src)}
	c.Advance()
	return c
}

// splitLines mirrors Python's str.splitlines for the subset pyesql files
// use: "" yields no lines, and a trailing newline does not produce an
// empty final line.
func splitLines(src string) []string {
	if src == "" {
		return nil
	}
	src = strings.ReplaceAll(src, "\r\n", "\n")
	src = strings.TrimSuffix(src, "\n")
	return strings.Split(src, "\n")
}

// Advance moves to the next line, incrementing the line counter when a
// line was available. Past the last line the cursor enters the end state.
func (c *Cursor) Advance() {
	if c.index >= len(c.lines) {
		c.atEnd = true
		c.line = ""
		return
	}
	c.line = c.lines[c.index]
	c.index++
	c.lineNum++
}

// AtEnd reports whether no current line is available.
func (c *Cursor) AtEnd() bool {
	return c.atEnd
}

// Line returns the current line. Only valid when AtEnd() is false.
func (c *Cursor) Line() string {
	return c.line
}

// LineNumber returns the 1-based number of the line most recently made
// current. It is 0 only for an empty source.
func (c *Cursor) LineNumber() int {
	return c.lineNum
}

// SkipBlank advances past empty and whitespace-only lines. It is a no-op
// at end of input or when the current line is non-blank.
func (c *Cursor) SkipBlank() {
	for !c.atEnd && isBlank(c.line) {
		c.Advance()
	}
}
