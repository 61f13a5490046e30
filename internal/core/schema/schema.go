// Package schema models serving-endpoint input signatures as a closed tagged union.
// The registry returns loosely-typed column specs; Parse converts them into
// Field values the example generator is total over
package schema

import (
	"encoding/json"
	"fmt"
)

// MaxParseDepth bounds signature nesting. Structure below this depth is
// pruned to an opaque object field flagged Truncated
const MaxParseDepth = 6

// Kind is the closed set of field types a signature can declare
type Kind uint8

// Field kinds in wire order
const (
	KindString Kind = iota
	KindInteger
	KindFloat
	KindBoolean
	KindArray
	KindObject
)

var kindNames = [...]string{
	KindString:  "string",
	KindInteger: "integer",
	KindFloat:   "float",
	KindBoolean: "boolean",
	KindArray:   "array",
	KindObject:  "object",
}

// String returns the canonical type token
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// MarshalJSON writes the canonical token so wire payloads stay readable
func (k Kind) MarshalJSON() ([]byte, error) { return json.Marshal(k.String()) }

// UnmarshalJSON accepts any token ParseKind accepts
func (k *Kind) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, ok := ParseKind(s)
	if !ok {
		return fmt.Errorf("schema: unknown type token %q", s)
	}
	*k = v
	return nil
}

// ParseKind maps a registry type token to a Kind
// tokens are matched as-is; registries emit lowercase
func ParseKind(tok string) (Kind, bool) {
	switch tok {
	case "string", "str", "text":
		return KindString, true
	case "integer", "int", "long":
		return KindInteger, true
	case "float", "double", "number":
		return KindFloat, true
	case "boolean", "bool":
		return KindBoolean, true
	case "array", "list":
		return KindArray, true
	case "object", "struct", "map":
		return KindObject, true
	default:
		return 0, false
	}
}

// Primitive reports whether k is a leaf kind
func (k Kind) Primitive() bool {
	switch k {
	case KindString, KindInteger, KindFloat, KindBoolean:
		return true
	}
	return false
}

// Field is one named slot in a signature
// Item is set only for KindArray (nil means the element type was not declared)
// Fields is set only for KindObject
type Field struct {
	Name      string  `json:"name"`
	Kind      Kind    `json:"kind"`
	Required  bool    `json:"required"`
	Item      *Field  `json:"item,omitempty"`
	Fields    []Field `json:"fields,omitempty"`
	Note      string  `json:"note,omitempty"`
	Truncated bool    `json:"truncated,omitempty"`
}

// Schema is a parsed signature. Zero fields is valid and means the
// signature declared nothing usable
type Schema struct {
	Fields []Field `json:"fields"`
}

// rawField mirrors the registry column spec shape
type rawField struct {
	Name       string     `json:"name"`
	Type       string     `json:"type"`
	Required   *bool      `json:"required,omitempty"`
	Items      *rawField  `json:"items,omitempty"`
	Properties []rawField `json:"properties,omitempty"`
}

// Parse converts a raw registry signature payload (JSON array of column
// specs) into a Schema. Any shape or type-token violation is an error;
// the caller classifies it as a malformed upstream payload
func Parse(raw []byte) (*Schema, error) {
	var cols []rawField
	if err := json.Unmarshal(raw, &cols); err != nil {
		return nil, fmt.Errorf("schema: parse signature: %w", err)
	}

	s := &Schema{}
	for i, c := range cols {
		if c.Name == "" {
			return nil, fmt.Errorf("schema: column %d: missing name", i)
		}
		f, err := convert(c, 1)
		if err != nil {
			return nil, err
		}
		s.Fields = append(s.Fields, f)
	}
	return s, nil
}

// convert maps one raw column to a Field, recursing into items and
// properties until MaxParseDepth
func convert(c rawField, depth int) (Field, error) {
	k, ok := ParseKind(c.Type)
	if !ok {
		return Field{}, fmt.Errorf("schema: column %q: unknown type %q", c.Name, c.Type)
	}

	f := Field{
		Name: c.Name,
		Kind: k,
		// registries list inputs that are required unless flagged otherwise
		Required: c.Required == nil || *c.Required,
	}

	if k.Primitive() {
		return f, nil
	}

	// composite at the depth ceiling collapses to an opaque object
	if depth >= MaxParseDepth {
		f.Kind = KindObject
		f.Item = nil
		f.Fields = nil
		f.Truncated = true
		f.Note = fmt.Sprintf("nested structure beyond depth %d pruned", MaxParseDepth)
		return f, nil
	}

	switch k {
	case KindArray:
		if c.Items == nil {
			f.Note = "array element type unspecified"
			return f, nil
		}
		item := *c.Items
		// element specs may be anonymous; inherit the array's name for placeholders
		if item.Name == "" {
			item.Name = c.Name
		}
		inner, err := convert(item, depth+1)
		if err != nil {
			return Field{}, err
		}
		f.Item = &inner
	case KindObject:
		for _, p := range c.Properties {
			if p.Name == "" {
				return Field{}, fmt.Errorf("schema: column %q: object property missing name", c.Name)
			}
			inner, err := convert(p, depth+1)
			if err != nil {
				return Field{}, err
			}
			f.Fields = append(f.Fields, inner)
		}
	}
	return f, nil
}
