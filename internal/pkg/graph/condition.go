package graph

import "strings"

// Condition contributes one entry to a request's filters object.
// Dotted field paths ("categories.id") nest into sub-objects.
type Condition interface {
	apply(filters map[string]interface{})
}

// Eq creates an equality filter.
// Example: Eq("status", "published") generates {"status": "published"}.
func Eq(field string, value interface{}) Condition {
	return eqCondition{field: field, value: value}
}

// In creates a membership filter. A single value collapses to plain
// equality, matching the provider's accepted shapes.
// Example: In("categories.id", ids) generates
// {"categories": {"id": {"$in": [...]}}}.
func In(field string, values []string) Condition {
	return inCondition{field: field, values: values}
}

type eqCondition struct {
	field string
	value interface{}
}

func (c eqCondition) apply(filters map[string]interface{}) {
	set(filters, c.field, c.value)
}

type inCondition struct {
	field  string
	values []string
}

func (c inCondition) apply(filters map[string]interface{}) {
	if len(c.values) == 1 {
		set(filters, c.field, c.values[0])
		return
	}
	set(filters, c.field, map[string]interface{}{"$in": c.values})
}

// set writes value at a dotted path, creating intermediate objects.
func set(filters map[string]interface{}, path string, value interface{}) {
	parts := strings.Split(path, ".")
	current := filters
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]interface{})
		if !ok {
			next = map[string]interface{}{}
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}
