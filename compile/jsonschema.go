package compile

import (
	"fmt"
	"slices"

	"github.com/c360studio/bizspec/typeexpr"
)

const jsonSchemaDraft = "http://json-schema.org/draft-07/schema#"

// JSONSchema compiles the ontology to a draft-07 JSON Schema document.
// With a segment name the schema covers that segment's properties; with an
// empty name it covers every segment, one object-typed properties entry
// per segment.
func (c *Compiler) JSONSchema(segmentName string) (map[string]any, error) {
	schema := map[string]any{
		"$schema":    jsonSchemaDraft,
		"type":       "object",
		"properties": map[string]any{},
		"required":   []any{},
	}

	if segmentName != "" {
		seg, err := c.segment(segmentName)
		if err != nil {
			return nil, err
		}
		props, err := c.schemaProperties(seg.Properties)
		if err != nil {
			return nil, fmt.Errorf("segment %s: %w", segmentName, err)
		}
		schema["title"] = segmentName + " Schema"
		schema["properties"] = props
		return schema, nil
	}

	schema["title"] = "Business Ontology Schema"
	properties := schema["properties"].(map[string]any)
	for _, name := range c.ont.SegmentNames() {
		props, err := c.schemaProperties(c.ont.Segments[name].Properties)
		if err != nil {
			return nil, fmt.Errorf("segment %s: %w", name, err)
		}
		properties[name] = map[string]any{
			"type":       "object",
			"title":      name,
			"properties": props,
		}
	}
	return schema, nil
}

func (c *Compiler) schemaProperties(props map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(props))
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		expr, err := typeexpr.ParseDefinition(props[name])
		if err != nil {
			return nil, fmt.Errorf("property %s: %w", name, err)
		}
		out[name] = schemaForExpr(expr)
	}
	return out, nil
}

// schemaForExpr renders one parsed type expression as a JSON Schema
// fragment.
func schemaForExpr(expr *typeexpr.Expr) map[string]any {
	switch expr.Kind {
	case typeexpr.KindEnum:
		values := make([]any, len(expr.Enum))
		for i, v := range expr.Enum {
			values[i] = v
		}
		return map[string]any{"type": "string", "enum": values}

	case typeexpr.KindList:
		return map[string]any{"type": "array", "items": schemaForExpr(expr.Elem)}

	case typeexpr.KindRange:
		return map[string]any{"type": "number", "minimum": expr.Min, "maximum": expr.Max}

	case typeexpr.KindBoolean:
		return map[string]any{"type": "boolean"}

	case typeexpr.KindInt:
		return map[string]any{"type": "integer"}

	case typeexpr.KindFloat:
		return map[string]any{"type": "number"}

	case typeexpr.KindDatetime:
		return map[string]any{"type": "string", "format": "date-time"}

	case typeexpr.KindObject:
		props := make(map[string]any, len(expr.Props))
		for name, sub := range expr.Props {
			props[name] = schemaForExpr(sub)
		}
		return map[string]any{"type": "object", "properties": props}

	default:
		return map[string]any{"type": "string"}
	}
}
