// Package core defines the shared types used across pyesql: the parsed
// query records, the ordered query set, adapter configuration, and
// invocation history records.
//
// This package has no dependencies on the parser or the adapters so that
// both sides can import it without cycles.
package core

// Query is one parsed annotated SQL block.
//
// A Query is fully constructed by the parser and never mutated afterward.
// Body is the raw SQL text with lines joined by newlines; it is opaque to
// pyesql except for :name placeholders resolved at bind time.
type Query struct {
	// Name is the identifier from the "-- name:" header, without the
	// trailing bang.
	Name string

	// IsStatement is true when the declared name ended in "!". Statement
	// queries are executed for their side effects and return no rows.
	IsStatement bool

	// Doc is the documentation text from the comment lines following the
	// header, joined by newlines. Empty when no doc lines were present.
	Doc string

	// Body is the SQL text, verbatim, lines joined by newlines. Never
	// empty for a successfully parsed query.
	Body string
}

// Queries is a set of named queries ordered by first definition.
//
// Redefining a name replaces the stored record but keeps the original
// position in iteration order.
type Queries struct {
	order  []string
	byName map[string]*Query
}

// NewQueries returns an empty query set.
func NewQueries() *Queries {
	return &Queries{byName: make(map[string]*Query)}
}

// Add stores q under q.Name. A later query with the same name overwrites
// an earlier one silently.
func (qs *Queries) Add(q *Query) {
	if _, exists := qs.byName[q.Name]; !exists {
		qs.order = append(qs.order, q.Name)
	}
	qs.byName[q.Name] = q
}

// Get returns the query stored under name, or nil if absent.
func (qs *Queries) Get(name string) *Query {
	return qs.byName[name]
}

// Has reports whether a query named name exists.
func (qs *Queries) Has(name string) bool {
	_, ok := qs.byName[name]
	return ok
}

// Names returns the query names in first-definition order.
func (qs *Queries) Names() []string {
	out := make([]string, len(qs.order))
	copy(out, qs.order)
	return out
}

// All returns the queries in first-definition order.
func (qs *Queries) All() []*Query {
	out := make([]*Query, 0, len(qs.order))
	for _, name := range qs.order {
		out = append(out, qs.byName[name])
	}
	return out
}

// Len returns the number of distinct query names.
func (qs *Queries) Len() int {
	return len(qs.order)
}

// Merge adds every query from other into qs, preserving other's order.
// Names already present in qs are overwritten in place.
func (qs *Queries) Merge(other *Queries) {
	for _, q := range other.All() {
		qs.Add(q)
	}
}
