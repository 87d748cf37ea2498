// Package parser turns annotated SQL text into named query records.
//
// The recognized format is a sequence of blocks:
//
//	-- name: find_users
//	-- optional documentation
//	SELECT * FROM users
//	WHERE active = :active
//
// A name ending in "!" marks a statement query (no rows returned); the
// bang is stripped from the stored name. Parsing is line oriented and
// fails fast: the first malformed line aborts the whole parse with a
// ParseError carrying the 1-based line number.
package parser

import (
	"regexp"
	"strings"

	"github.com/ulule/pyesql/pkg/core"
)

// Line patterns. Kept as three independent patterns rather than derived
// from a shared constant: a name line also matches the doc pattern, so
// classification order matters and the patterns are not supersets of one
// another in every dialect.
var (
	nameRe = regexp.MustCompile(`^\s*--\s*name:\s*([a-zA-Z0-9_]+!?)\s*$`)
	docRe  = regexp.MustCompile(`^\s*--\s*`)
)

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// matchName returns the declared identifier of a name line, bang
// included, or ok=false when the line is not a name line.
func matchName(line string) (ident string, ok bool) {
	m := nameRe.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func isDocLine(line string) bool {
	return docRe.MatchString(line)
}

// stripDocMarker removes the leading comment marker and the whitespace
// that follows it, keeping the remainder (possibly empty).
func stripDocMarker(line string) string {
	return docRe.ReplaceAllString(line, "")
}

// ParseQuery consumes one query block from cur and returns its record.
//
// The cursor is left on the line that terminated the block: the next name
// line, or end of input.
func ParseQuery(cur *Cursor) (*core.Query, error) {
	cur.SkipBlank()

	var name string
	if cur.AtEnd() {
		return nil, errorf(cur.LineNumber(), "expecting '-- name: <query-name>'")
	}
	ident, ok := matchName(cur.Line())
	if !ok {
		return nil, errorf(cur.LineNumber(), "expecting '-- name: <query-name>'")
	}
	name = ident
	statement := false
	if strings.HasSuffix(name, "!") {
		statement = true
		name = name[:len(name)-1]
	}

	cur.Advance()
	cur.SkipBlank()

	if cur.AtEnd() {
		return nil, errorf(cur.LineNumber(), "expecting documentation or query body for query %s", name)
	}

	var docLines []string
	for !cur.AtEnd() && isDocLine(cur.Line()) {
		docLines = append(docLines, stripDocMarker(cur.Line()))
		cur.Advance()
	}

	cur.SkipBlank()

	if cur.AtEnd() {
		return nil, errorf(cur.LineNumber(), "expecting query body for query %s", name)
	}
	if _, next := matchName(cur.Line()); next {
		return nil, errorf(cur.LineNumber(), "expecting query body for query %s", name)
	}

	var bodyLines []string
	for !cur.AtEnd() {
		if _, next := matchName(cur.Line()); next {
			break
		}
		bodyLines = append(bodyLines, cur.Line())
		cur.Advance()
	}

	return &core.Query{
		Name:        name,
		IsStatement: statement,
		Doc:         strings.Join(docLines, "\n"),
		Body:        strings.Join(bodyLines, "\n"),
	}, nil
}

// Parse reads every query block in src and returns the resulting set,
// ordered by first definition. A later block reusing a name silently
// replaces the earlier record. An empty or all-blank source yields an
// empty set.
func Parse(src string) (*core.Queries, error) {
	queries := core.NewQueries()
	cur := NewCursor(src)
	cur.SkipBlank()
	for !cur.AtEnd() {
		q, err := ParseQuery(cur)
		if err != nil {
			return nil, err
		}
		queries.Add(q)
		cur.SkipBlank()
	}
	return queries, nil
}
