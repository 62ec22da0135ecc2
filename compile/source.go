package compile

import (
	"fmt"
	"slices"
	"strings"

	"github.com/c360studio/bizspec/typeexpr"
)

// ModelField is one rendered field binding for the source-model targets.
type ModelField struct {
	Name string
	Type string
}

// ModelBinding is the binding context for one generated model or
// interface.
type ModelBinding struct {
	Name        string
	Description string
	Fields      []ModelField
	Constraints []string
}

// CampaignBinding carries the campaign metadata the source targets render.
type CampaignBinding struct {
	Name         string
	OwnerTeam    string
	CampaignType string
}

// PropertyDoc is one property row for documentation bindings, keeping the
// raw definition string.
type PropertyDoc struct {
	Name       string
	Definition string
}

// ScoringBinding carries the lead-scoring shape for source and doc
// targets.
type ScoringBinding struct {
	Name   string
	Inputs []PropertyDoc
	Output []PropertyDoc
}

// SourceBindings is the whole binding context handed to the pydantic and
// typescript templates.
type SourceBindings struct {
	Segments    []ModelBinding
	Types       []ModelBinding
	Campaigns   []CampaignBinding
	LeadScoring *ScoringBinding
}

// typeRenderer converts a parsed expression to a target-language type
// string.
type typeRenderer func(*typeexpr.Expr) string

// Pydantic compiles to pydantic model source. Scope is one named segment
// or, with an empty name, the whole ontology (segments, free types,
// campaigns, lead scoring).
func (c *Compiler) Pydantic(segmentName string) (string, error) {
	return c.sourceTarget("pydantic_model", segmentName, pydanticType)
}

// TypeScript compiles to TypeScript interface declarations, with the same
// scoping rules as Pydantic.
func (c *Compiler) TypeScript(segmentName string) (string, error) {
	return c.sourceTarget("typescript_interfaces", segmentName, tsType)
}

func (c *Compiler) sourceTarget(templateID, segmentName string, render typeRenderer) (string, error) {
	if segmentName != "" {
		seg, err := c.segment(segmentName)
		if err != nil {
			return "", err
		}
		binding, err := modelBinding(seg.Name, seg.Description, seg.Properties, seg.Constraints, render)
		if err != nil {
			return "", err
		}
		return c.renderer.Render(templateID, SourceBindings{Segments: []ModelBinding{binding}})
	}

	bindings, err := c.sourceBindings(render)
	if err != nil {
		return "", err
	}
	return c.renderer.Render(templateID, bindings)
}

func (c *Compiler) sourceBindings(render typeRenderer) (SourceBindings, error) {
	var bindings SourceBindings

	for _, name := range c.ont.SegmentNames() {
		seg := c.ont.Segments[name]
		b, err := modelBinding(name, seg.Description, seg.Properties, seg.Constraints, render)
		if err != nil {
			return bindings, err
		}
		bindings.Segments = append(bindings.Segments, b)
	}

	for _, name := range c.ont.TypeNames() {
		def, ok := c.ont.Types[name].(map[string]any)
		if !ok {
			continue
		}
		props, _ := def["properties"].(map[string]any)
		b, err := modelBinding(name, "", props, nil, render)
		if err != nil {
			return bindings, err
		}
		bindings.Types = append(bindings.Types, b)
	}

	for _, name := range c.ont.CampaignNames() {
		camp := c.ont.Campaigns[name]
		bindings.Campaigns = append(bindings.Campaigns, CampaignBinding{
			Name:         name,
			OwnerTeam:    metadataString(camp.Metadata, "owner_team"),
			CampaignType: metadataString(camp.Metadata, "campaign_type"),
		})
	}

	if scoring := c.ont.LeadScoring; scoring != nil {
		bindings.LeadScoring = &ScoringBinding{
			Name:   scoring.Name,
			Inputs: propertyDocs(scoring.Inputs),
			Output: propertyDocs(scoring.Output),
		}
	}

	return bindings, nil
}

func modelBinding(name, description string, props map[string]any, constraints []string, render typeRenderer) (ModelBinding, error) {
	binding := ModelBinding{Name: name, Description: description, Constraints: constraints}

	for _, propName := range sortedKeys(props) {
		expr, err := typeexpr.ParseDefinition(props[propName])
		if err != nil {
			return binding, fmt.Errorf("property %s: %w", propName, err)
		}
		binding.Fields = append(binding.Fields, ModelField{Name: propName, Type: render(expr)})
	}
	return binding, nil
}

// pydanticType renders an expression as a pydantic/typing annotation.
func pydanticType(expr *typeexpr.Expr) string {
	switch expr.Kind {
	case typeexpr.KindEnum:
		quoted := make([]string, len(expr.Enum))
		for i, v := range expr.Enum {
			quoted[i] = fmt.Sprintf("%q", v)
		}
		return "Literal[" + strings.Join(quoted, ", ") + "]"
	case typeexpr.KindList:
		return "List[" + pydanticType(expr.Elem) + "]"
	case typeexpr.KindRange, typeexpr.KindFloat:
		return "float"
	case typeexpr.KindInt:
		return "int"
	case typeexpr.KindBoolean:
		return "bool"
	case typeexpr.KindDatetime:
		return "datetime"
	case typeexpr.KindObject:
		return "Dict[str, Any]"
	default:
		return "str"
	}
}

// tsType renders an expression as a TypeScript type.
func tsType(expr *typeexpr.Expr) string {
	switch expr.Kind {
	case typeexpr.KindEnum:
		quoted := make([]string, len(expr.Enum))
		for i, v := range expr.Enum {
			quoted[i] = fmt.Sprintf("%q", v)
		}
		return strings.Join(quoted, " | ")
	case typeexpr.KindList:
		inner := tsType(expr.Elem)
		if expr.Elem.Kind == typeexpr.KindEnum {
			inner = "(" + inner + ")"
		}
		return inner + "[]"
	case typeexpr.KindRange, typeexpr.KindInt, typeexpr.KindFloat:
		return "number"
	case typeexpr.KindBoolean:
		return "boolean"
	case typeexpr.KindObject:
		var parts []string
		for _, name := range sortedExprKeys(expr.Props) {
			parts = append(parts, name+": "+tsType(expr.Props[name]))
		}
		return "{ " + strings.Join(parts, "; ") + " }"
	default:
		// datetime renders as an ISO string on the wire.
		return "string"
	}
}

func metadataString(metadata map[string]any, key string) string {
	if v, ok := metadata[key].(string); ok {
		return v
	}
	return ""
}

func propertyDocs(props map[string]any) []PropertyDoc {
	docs := make([]PropertyDoc, 0, len(props))
	for _, name := range sortedKeys(props) {
		docs = append(docs, PropertyDoc{Name: name, Definition: definitionString(props[name])})
	}
	return docs
}

// definitionString renders a raw property definition for documentation:
// the string itself, or "object" for nested mappings.
func definitionString(def any) string {
	if s, ok := def.(string); ok {
		return s
	}
	return "object"
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func sortedExprKeys(m map[string]*typeexpr.Expr) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
