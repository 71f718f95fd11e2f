package query

import (
	"fmt"
	"strings"

	"cloud.google.com/go/spanner"
)

// Direction is an ORDER BY direction.
type Direction int

const (
	// Asc sorts ascending.
	Asc Direction = iota
	// Desc sorts descending.
	Desc
)

func (d Direction) String() string {
	if d == Desc {
		return "DESC"
	}
	return "ASC"
}

type ordering struct {
	column    string
	direction Direction
}

// Builder assembles Spanner SELECT statements. Condition parameters are named
// @p0, @p1, ... in the order the conditions were added.
//
// Builders are values in disguise: every method returns a copy, so a base
// query can be shared and extended without the branches seeing each other.
type Builder struct {
	table      string
	index      string
	columns    []string
	conditions []Condition
	orderings  []ordering
	limit      int64
	count      bool
}

// From starts a query on table.
func From(table string) *Builder {
	return &Builder{table: table}
}

// Select appends columns to the projection.
func (b *Builder) Select(columns ...string) *Builder {
	next := b.clone()
	next.columns = append(next.columns, columns...)
	return next
}

// ForceIndex adds a FORCE_INDEX table hint. Use it when the plan must read through a
// secondary index that already holds the ordering.
func (b *Builder) ForceIndex(index string) *Builder {
	next := b.clone()
	next.index = index
	return next
}

// Where ANDs a condition onto the query.
func (b *Builder) Where(condition Condition) *Builder {
	next := b.clone()
	next.conditions = append(next.conditions, condition)
	return next
}

// OrderBy replaces the ordering with a single column.
func (b *Builder) OrderBy(column string, direction Direction) *Builder {
	next := b.clone()
	next.orderings = []ordering{{column: column, direction: direction}}
	return next
}

// ThenBy adds a tie-breaking column after the existing ordering.
func (b *Builder) ThenBy(column string, direction Direction) *Builder {
	next := b.clone()
	next.orderings = append(next.orderings, ordering{column: column, direction: direction})
	return next
}

// Limit caps the number of rows. Zero means no limit.
func (b *Builder) Limit(limit int64) *Builder {
	next := b.clone()
	next.limit = limit
	return next
}

// Count returns a builder for COUNT(*) over the same FROM and WHERE clauses,
// without ordering or limit.
func (b *Builder) Count() *Builder {
	next := b.clone()
	next.count = true
	next.orderings = nil
	next.limit = 0
	return next
}

// Build renders the statement.
func (b *Builder) Build() spanner.Statement {
	var sql strings.Builder
	params := make(map[string]interface{})

	sql.WriteString("SELECT ")
	sql.WriteString(b.projection())
	sql.WriteString(" FROM ")
	sql.WriteString(b.table)
	if b.index != "" {
		fmt.Fprintf(&sql, "@{FORCE_INDEX=%s}", b.index)
	}

	if len(b.conditions) > 0 {
		parts := make([]string, 0, len(b.conditions))
		next := 0
		for _, condition := range b.conditions {
			fragment, condParams := condition.SQL(next)
			parts = append(parts, fragment)
			for name, value := range condParams {
				params[name] = value
			}
			next += len(condParams)
		}
		sql.WriteString(" WHERE ")
		sql.WriteString(strings.Join(parts, " AND "))
	}

	if len(b.orderings) > 0 {
		parts := make([]string, len(b.orderings))
		for i, o := range b.orderings {
			parts[i] = o.column + " " + o.direction.String()
		}
		sql.WriteString(" ORDER BY ")
		sql.WriteString(strings.Join(parts, ", "))
	}

	if b.limit > 0 {
		sql.WriteString(" LIMIT @limit")
		params["limit"] = b.limit
	}

	return spanner.Statement{SQL: sql.String(), Params: params}
}

func (b *Builder) projection() string {
	switch {
	case b.count:
		return "COUNT(*)"
	case len(b.columns) == 0:
		return "*"
	default:
		return strings.Join(b.columns, ", ")
	}
}

func (b *Builder) clone() *Builder {
	next := *b
	next.columns = append([]string(nil), b.columns...)
	next.conditions = append([]Condition(nil), b.conditions...)
	next.orderings = append([]ordering(nil), b.orderings...)
	return &next
}

// String renders the statement for logs and debugging.
func (b *Builder) String() string {
	stmt := b.Build()
	return fmt.Sprintf("SQL: %s\nParams: %v", stmt.SQL, stmt.Params)
}
