package typeexpr

import (
	"fmt"
	"strconv"
	"strings"
)

// Grammar markers form a disjoint prefix set, so dispatch needs no
// tokenizer: one prefix test selects the variant.
const (
	enumPrefix  = "enum["
	listPrefix  = "list["
	rangePrefix = "range("
)

// memberSeparator separates enum members and range bounds. Members
// containing ", " are not expressible in this grammar.
const memberSeparator = ", "

// Parse parses a type-definition string into an Expr.
//
// Parse is permissive by design: a bare token that is not a known scalar
// keyword and not a compound marker parses as the string scalar rather than
// failing. Errors are returned only for malformed compound expressions
// (missing closing delimiter, unparseable range bound), which the strict
// Check gate rejects ahead of Parse in the intended pipeline.
func Parse(s string) (*Expr, error) {
	s = strings.TrimSpace(s)

	switch {
	case strings.HasPrefix(s, enumPrefix):
		if !strings.HasSuffix(s, "]") {
			return nil, fmt.Errorf("enum definition missing closing bracket: %s", s)
		}
		body := s[len(enumPrefix) : len(s)-1]
		members := strings.Split(body, memberSeparator)
		values := make([]string, 0, len(members))
		for _, m := range members {
			values = append(values, strings.Trim(strings.TrimSpace(m), `"`))
		}
		return &Expr{Kind: KindEnum, Enum: values}, nil

	case strings.HasPrefix(s, listPrefix):
		if !strings.HasSuffix(s, "]") {
			return nil, fmt.Errorf("list definition missing closing bracket: %s", s)
		}
		inner, err := Parse(s[len(listPrefix) : len(s)-1])
		if err != nil {
			return nil, err
		}
		return &Expr{Kind: KindList, Elem: inner}, nil

	case strings.HasPrefix(s, rangePrefix):
		if !strings.HasSuffix(s, ")") {
			return nil, fmt.Errorf("range definition missing closing parenthesis: %s", s)
		}
		bounds := strings.Split(s[len(rangePrefix):len(s)-1], memberSeparator)
		if len(bounds) != 2 {
			return nil, fmt.Errorf("range definition needs exactly two bounds: %s", s)
		}
		min, err := ParseBound(bounds[0])
		if err != nil {
			return nil, fmt.Errorf("range minimum: %w", err)
		}
		max, err := ParseBound(bounds[1])
		if err != nil {
			return nil, fmt.Errorf("range maximum: %w", err)
		}
		return &Expr{Kind: KindRange, Min: min, Max: max}, nil
	}

	if kind, ok := scalarKinds[s]; ok {
		return &Expr{Kind: kind}, nil
	}
	// Unknown scalar keywords degrade to string; Check reports them.
	return &Expr{Kind: KindString}, nil
}

// ParseDefinition parses a property definition as it appears in an
// ontology document: either a type-definition string or a nested mapping
// with a "properties" key (the complex/object case). Any other shape
// degrades to the string scalar.
func ParseDefinition(def any) (*Expr, error) {
	switch v := def.(type) {
	case string:
		return Parse(v)
	case map[string]any:
		expr := &Expr{Kind: KindObject, Props: make(map[string]*Expr)}
		props, _ := v["properties"].(map[string]any)
		for name, sub := range props {
			parsed, err := ParseDefinition(sub)
			if err != nil {
				return nil, fmt.Errorf("property %s: %w", name, err)
			}
			expr.Props[name] = parsed
		}
		return expr, nil
	default:
		return &Expr{Kind: KindString}, nil
	}
}

// ParseBound resolves a range bound: a numeric literal with an optional
// magnitude suffix (K=1e3, M=1e6, B=1e9) and an optional trailing "+".
// The "+" is a documentation marker for "or more" and carries no semantic
// effect: "1B+" resolves to 1e9 and the interval stays closed.
func ParseBound(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "+")

	multiplier := 1.0
	switch {
	case strings.HasSuffix(s, "K"):
		multiplier, s = 1e3, s[:len(s)-1]
	case strings.HasSuffix(s, "M"):
		multiplier, s = 1e6, s[:len(s)-1]
	case strings.HasSuffix(s, "B"):
		multiplier, s = 1e9, s[:len(s)-1]
	}

	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid numeric bound %q", s)
	}
	return n * multiplier, nil
}
