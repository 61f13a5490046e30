// Package exemplar synthesizes sample JSON payloads from parsed signatures.
// Everything here is pure and deterministic so cached results stay byte-stable
package exemplar

import (
	"fmt"

	"stencil/internal/core/schema"
)

// MaxDepth bounds object recursion during generation. Objects below this
// depth degrade to an empty placeholder object
const MaxDepth = 3

// array cardinality: three items demonstrate plurality for primitives,
// one keeps composite examples compact
const (
	primitiveItems = 3
	compositeItems = 1
)

// FromSchema maps a parsed signature to a sample payload
// A schema with zero fields is an error so the caller can degrade to Fallback
func FromSchema(s *schema.Schema) (map[string]any, error) {
	if s == nil || len(s.Fields) == 0 {
		return nil, fmt.Errorf("exemplar: schema has no fields")
	}
	out := make(map[string]any, len(s.Fields))
	for _, f := range s.Fields {
		out[f.Name] = value(f, 1)
	}
	return out, nil
}

// value produces the placeholder for one field
func value(f schema.Field, depth int) any {
	switch f.Kind {
	case schema.KindString:
		return "example_" + f.Name
	case schema.KindInteger:
		return 1
	case schema.KindFloat:
		return 1.5
	case schema.KindBoolean:
		return true
	case schema.KindArray:
		return arrayValue(f, depth)
	case schema.KindObject:
		return objectValue(f, depth)
	}
	// unreachable with a parsed schema; keep the payload well formed anyway
	return nil
}

func arrayValue(f schema.Field, depth int) []any {
	if f.Item == nil {
		// element type unspecified; the annotation lives on the schema field
		return []any{}
	}
	n := primitiveItems
	if !f.Item.Kind.Primitive() {
		n = compositeItems
	}
	items := make([]any, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, value(*f.Item, depth))
	}
	return items
}

func objectValue(f schema.Field, depth int) map[string]any {
	if depth >= MaxDepth || len(f.Fields) == 0 {
		return map[string]any{}
	}
	out := make(map[string]any, len(f.Fields))
	for _, sub := range f.Fields {
		out[sub.Name] = value(sub, depth+1)
	}
	return out
}

// Chat returns the constant chat-completions payload used by the fast path.
// A fresh map is built per call so callers can edit the result freely
func Chat() map[string]any {
	return map[string]any{
		"messages": []any{
			map[string]any{"role": "system", "content": "You are a helpful assistant."},
			map[string]any{"role": "user", "content": "Hello!"},
		},
		"max_tokens":  128,
		"temperature": 0.7,
	}
}

// Fallback returns the constant generic payload used when no schema could
// be determined. A fresh map is built per call
func Fallback() map[string]any {
	return map[string]any{
		"dataframe_records": []any{
			map[string]any{"feature": "example_value"},
		},
	}
}
