package adapter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ulule/pyesql/pkg/binder"
	"github.com/ulule/pyesql/pkg/core"
)

// Binding exposes every query of a parsed set as an invocable operation
// against one adapter.
type Binding struct {
	queries *core.Queries
	adapter Adapter
	parsed  map[string]*binder.ParsedQuery
	logger  *slog.Logger
}

// UnknownQueryError is returned when invoking a name the set doesn't hold.
type UnknownQueryError struct {
	Name      string
	Available []string
}

func (e *UnknownQueryError) Error() string {
	return fmt.Sprintf("unknown query %q\nAvailable queries: %v", e.Name, e.Available)
}

// Bind ties a query set to an adapter. The query bodies are scanned for
// :name placeholders once, up front.
func Bind(qs *core.Queries, a Adapter, logger *slog.Logger) *Binding {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	parsed := make(map[string]*binder.ParsedQuery, qs.Len())
	for _, q := range qs.All() {
		parsed[q.Name] = binder.Parse(q.Body)
	}
	return &Binding{queries: qs, adapter: a, parsed: parsed, logger: logger}
}

// Queries returns the underlying query set.
func (b *Binding) Queries() *core.Queries {
	return b.queries
}

// Invoke executes the named query with the given parameters.
//
// For a statement query the write is performed and a core.ExecResult is
// returned; no rows are fetched. For a row query the full result set is
// returned as []map[string]any in column order of the driver.
func (b *Binding) Invoke(ctx context.Context, name string, params map[string]any) (any, error) {
	q := b.queries.Get(name)
	if q == nil {
		return nil, &UnknownQueryError{Name: name, Available: b.queries.Names()}
	}

	sqlText, args, err := b.parsed[name].Bind(b.adapter.Placeholder, params)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", name, err)
	}

	b.logger.Debug("invoking query",
		slog.String("name", name),
		slog.Bool("statement", q.IsStatement),
		slog.Int("args", len(args)))

	if q.IsStatement {
		res, err := b.adapter.Exec(ctx, sqlText, args...)
		if err != nil {
			return nil, fmt.Errorf("query %s: %w", name, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			affected = -1
		}
		return core.ExecResult{RowsAffected: affected}, nil
	}

	rows, err := b.adapter.Query(ctx, sqlText, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", name, err)
	}
	defer func() { _ = rows.Close() }()

	return collectRows(rows)
}

// Operation is one bound query, callable with named parameters.
type Operation struct {
	binding *Binding
	query   *core.Query
}

// Operation returns the callable for name, or an UnknownQueryError.
func (b *Binding) Operation(name string) (*Operation, error) {
	q := b.queries.Get(name)
	if q == nil {
		return nil, &UnknownQueryError{Name: name, Available: b.queries.Names()}
	}
	return &Operation{binding: b, query: q}, nil
}

// Call invokes the operation. See Binding.Invoke for the result shape.
func (op *Operation) Call(ctx context.Context, params map[string]any) (any, error) {
	return op.binding.Invoke(ctx, op.query.Name, params)
}

// Doc returns the operation's descriptive text, taken from the query's
// documentation comment.
func (op *Operation) Doc() string {
	return op.query.Doc
}

// Name returns the query name.
func (op *Operation) Name() string {
	return op.query.Name
}

// Params returns the distinct placeholder names the operation expects.
func (op *Operation) Params() []string {
	return op.binding.parsed[op.query.Name].Names()
}

// collectRows drains rows into maps, converting []byte values to strings
// for readability.
func collectRows(rows *core.Rows) ([]map[string]any, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	results := []map[string]any{}
	for rows.Next() {
		values := make([]any, len(cols))
		valuePtrs := make([]any, len(cols))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, err
		}

		row := make(map[string]any)
		for i, col := range cols {
			val := values[i]
			if bts, ok := val.([]byte); ok {
				val = string(bts)
			}
			row[col] = val
		}
		results = append(results, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
