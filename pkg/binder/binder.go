// Package binder resolves :name placeholders in query bodies into
// driver-level positional arguments.
//
// Placeholder names follow the same character class as query identifiers
// ([a-zA-Z0-9_]). Scanning is quote-aware: placeholders inside string
// literals, quoted identifiers, and line comments are left alone, and a
// double colon (PostgreSQL cast, e.g. ::text) is never a placeholder.
package binder

import "strings"

// ParsedQuery is a query body with its placeholders located.
type ParsedQuery struct {
	// fragments are the literal SQL chunks between placeholders;
	// len(fragments) == len(names)+1.
	fragments []string

	// names are the placeholder names in order of appearance, one entry
	// per occurrence (a repeated name appears repeatedly).
	names []string
}

// Names returns the distinct placeholder names in order of first
// appearance.
func (pq *ParsedQuery) Names() []string {
	var out []string
	seen := make(map[string]bool)
	for _, n := range pq.names {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}

// MissingParamError reports a placeholder with no value supplied.
type MissingParamError struct {
	Name string
}

func (e *MissingParamError) Error() string {
	return "missing value for parameter :" + e.Name
}

func isIdentChar(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}

// Parse scans body once and records every :name occurrence.
func Parse(body string) *ParsedQuery {
	pq := &ParsedQuery{}
	var frag strings.Builder

	i := 0
	n := len(body)
	for i < n {
		c := body[i]
		switch {
		case c == '\'' || c == '"':
			// Copy the quoted region verbatim, honoring doubled quotes.
			quote := c
			frag.WriteByte(c)
			i++
			for i < n {
				frag.WriteByte(body[i])
				if body[i] == quote {
					if i+1 < n && body[i+1] == quote {
						frag.WriteByte(quote)
						i += 2
						continue
					}
					i++
					break
				}
				i++
			}
		case c == '-' && i+1 < n && body[i+1] == '-':
			// Line comment: copy through end of line.
			for i < n && body[i] != '\n' {
				frag.WriteByte(body[i])
				i++
			}
		case c == ':' && i+1 < n && body[i+1] == ':':
			// Cast, not a placeholder.
			frag.WriteString("::")
			i += 2
		case c == ':' && i+1 < n && isIdentChar(body[i+1]):
			j := i + 1
			for j < n && isIdentChar(body[j]) {
				j++
			}
			pq.fragments = append(pq.fragments, frag.String())
			frag.Reset()
			pq.names = append(pq.names, body[i+1:j])
			i = j
		default:
			frag.WriteByte(c)
			i++
		}
	}
	pq.fragments = append(pq.fragments, frag.String())
	return pq
}

// Bind rewrites the query with driver placeholders produced by
// placeholder (1-based) and returns the argument list in placeholder
// order. Every name must be present in params; extra params are ignored.
func (pq *ParsedQuery) Bind(placeholder func(int) string, params map[string]any) (string, []any, error) {
	var sql strings.Builder
	args := make([]any, 0, len(pq.names))

	for i, name := range pq.names {
		val, ok := params[name]
		if !ok {
			return "", nil, &MissingParamError{Name: name}
		}
		sql.WriteString(pq.fragments[i])
		sql.WriteString(placeholder(i + 1))
		args = append(args, val)
	}
	sql.WriteString(pq.fragments[len(pq.fragments)-1])
	return sql.String(), args, nil
}
