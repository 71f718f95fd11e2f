package query

import "fmt"

// Condition represents a WHERE clause condition.
// Implementations render a SQL fragment using Spanner named parameters (@p0, @p1, ...).
type Condition interface {
	// SQL returns the fragment and its parameters. paramIndex is the first free parameter number.
	SQL(paramIndex int) (string, map[string]interface{})
}

// compareCondition implements a binary comparison (field <op> value).
type compareCondition struct {
	field string
	op    string
	value interface{}
}

// Eq creates an equality condition.
// Example: Eq("price_list_id", "pl-1") generates "price_list_id = @p0"
func Eq(field string, value interface{}) Condition {
	return &compareCondition{field: field, op: "=", value: value}
}

// Lt creates a strictly-less-than condition, used for keyset pagination on descending keys.
// Example: Lt("created_at", cursor) generates "created_at < @p0"
func Lt(field string, value interface{}) Condition {
	return &compareCondition{field: field, op: "<", value: value}
}

// Gte creates a greater-or-equal condition.
func Gte(field string, value interface{}) Condition {
	return &compareCondition{field: field, op: ">=", value: value}
}

// SQL generates the SQL fragment for the comparison.
func (c *compareCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	paramName := fmt.Sprintf("p%d", paramIndex)
	sql := fmt.Sprintf("%s %s @%s", c.field, c.op, paramName)
	return sql, map[string]interface{}{paramName: c.value}
}

// IsNull creates a WHERE condition for NULL checks.
// Example: IsNull("price_list_id") generates "price_list_id IS NULL"
func IsNull(field string) Condition {
	return &nullCondition{field: field}
}

// IsNotNull creates a WHERE condition for NOT NULL checks.
func IsNotNull(field string) Condition {
	return &nullCondition{field: field, not: true}
}

type nullCondition struct {
	field string
	not   bool
}

// SQL generates the SQL fragment for the NULL check.
func (c *nullCondition) SQL(int) (string, map[string]interface{}) {
	if c.not {
		return fmt.Sprintf("%s IS NOT NULL", c.field), map[string]interface{}{}
	}
	return fmt.Sprintf("%s IS NULL", c.field), map[string]interface{}{}
}
