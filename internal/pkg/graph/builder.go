// Package graph builds the JSON query envelopes the commerce platform's
// graph endpoint accepts: {entity, fields, filters, context}.
package graph

import (
	"encoding/json"
	"fmt"
)

// Request is the wire shape of a graph query.
type Request struct {
	Entity  string                 `json:"entity"`
	Fields  []string               `json:"fields"`
	Filters map[string]interface{} `json:"filters,omitempty"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// Response is the wire shape of a graph reply. Data is decoded by the
// caller into the entity's record type.
type Response struct {
	Data json.RawMessage `json:"data"`
}

// Builder constructs graph Requests. It provides a fluent API for entity,
// fields, filter conditions, and query context. Builders are immutable;
// every method returns a copy, so partial queries can be shared safely.
type Builder struct {
	entity     string
	fields     []string
	conditions []Condition
	context    map[string]interface{}
}

// Entity creates a new Builder for the given entity name.
func Entity(entity string) *Builder {
	return &Builder{entity: entity}
}

// Fields appends the fields to retrieve.
func (b *Builder) Fields(fields ...string) *Builder {
	nb := b.clone()
	nb.fields = append(nb.fields, fields...)
	return nb
}

// Where adds a filter condition. Multiple conditions are combined into a
// single filters object.
func (b *Builder) Where(condition Condition) *Builder {
	nb := b.clone()
	nb.conditions = append(nb.conditions, condition)
	return nb
}

// Context sets a top-level context key, e.g. the pricing context applied
// to variants.
func (b *Builder) Context(key string, value interface{}) *Builder {
	nb := b.clone()
	if nb.context == nil {
		nb.context = map[string]interface{}{}
	}
	nb.context[key] = value
	return nb
}

// Build constructs the final Request.
func (b *Builder) Build() Request {
	req := Request{
		Entity: b.entity,
		Fields: b.fields,
	}
	if len(b.conditions) > 0 {
		req.Filters = map[string]interface{}{}
		for _, c := range b.conditions {
			c.apply(req.Filters)
		}
	}
	if len(b.context) > 0 {
		req.Context = map[string]interface{}{}
		for k, v := range b.context {
			req.Context[k] = v
		}
	}
	return req
}

// clone creates a shallow copy of the builder for immutability.
func (b *Builder) clone() *Builder {
	nb := &Builder{
		entity:     b.entity,
		fields:     make([]string, len(b.fields)),
		conditions: make([]Condition, len(b.conditions)),
	}
	copy(nb.fields, b.fields)
	copy(nb.conditions, b.conditions)
	if b.context != nil {
		nb.context = make(map[string]interface{}, len(b.context))
		for k, v := range b.context {
			nb.context[k] = v
		}
	}
	return nb
}

// String returns a human-readable representation for debugging.
func (b *Builder) String() string {
	raw, err := json.Marshal(b.Build())
	if err != nil {
		return fmt.Sprintf("graph.Builder(%s): %v", b.entity, err)
	}
	return string(raw)
}
