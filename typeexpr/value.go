package typeexpr

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ValueError reports the first conformance violation found while checking a
// value against a type definition. Path identifies the offending element,
// including list indices (e.g. "channels[2]") and nested sub-properties.
type ValueError struct {
	Path    string
	Message string
}

// Error implements the error interface.
func (e *ValueError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// CheckValue validates a concrete value against a property definition (a
// type-definition string or a nested object mapping). It returns nil when
// the value conforms, or the first violation found; violations within one
// definition are not aggregated.
func CheckValue(value any, def any, path string) error {
	expr, err := ParseDefinition(def)
	if err != nil {
		return &ValueError{Path: path, Message: err.Error()}
	}
	return checkExpr(value, expr, path)
}

func checkExpr(value any, expr *Expr, path string) error {
	switch expr.Kind {
	case KindEnum:
		s, ok := value.(string)
		if !ok || !slices.Contains(expr.Enum, s) {
			return &ValueError{
				Path:    path,
				Message: fmt.Sprintf("value %v not in enum %v", value, expr.Enum),
			}
		}

	case KindList:
		seq, ok := value.([]any)
		if !ok {
			return &ValueError{Path: path, Message: "value must be a list"}
		}
		for i, item := range seq {
			if err := checkExpr(item, expr.Elem, fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}

	case KindRange:
		n, ok := toFloat(value)
		if !ok {
			return &ValueError{Path: path, Message: "value must be numeric for range type"}
		}
		if n < expr.Min || n > expr.Max {
			return &ValueError{
				Path:    path,
				Message: fmt.Sprintf("value %v not in range [%v, %v]", value, expr.Min, expr.Max),
			}
		}

	case KindBoolean:
		if !coercibleToBool(value) {
			return &ValueError{Path: path, Message: "value must be boolean"}
		}

	case KindInt:
		if !coercibleToInt(value) {
			return &ValueError{Path: path, Message: "value must be integer"}
		}

	case KindFloat:
		if _, ok := toFloat(value); !ok {
			return &ValueError{Path: path, Message: "value must be numeric"}
		}

	case KindObject:
		m, ok := value.(map[string]any)
		if !ok {
			return &ValueError{Path: path, Message: "value must be an object for complex type"}
		}
		// A declared sub-property absent from the value is not an error
		// here; presence is enforced at the whole-segment level.
		for _, name := range sortedKeys(expr.Props) {
			sub, present := m[name]
			if !present {
				continue
			}
			if err := checkExpr(sub, expr.Props[name], path+"."+name); err != nil {
				return err
			}
		}
	}

	// string and datetime accept any value.
	return nil
}

// toFloat reports whether a value is coercible to a float64. Values are not
// required to already be numeric: numeric strings pass, matching the
// permissive data-ingestion posture.
func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return n, err == nil
	default:
		return 0, false
	}
}

func coercibleToInt(value any) bool {
	switch v := value.(type) {
	case int, int64:
		return true
	case float32, float64:
		// Fractional floats truncate on conversion; that counts as coercible.
		return true
	case string:
		_, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		return err == nil
	default:
		return false
	}
}

func coercibleToBool(value any) bool {
	switch v := value.(type) {
	case bool:
		return true
	case string:
		_, err := strconv.ParseBool(strings.TrimSpace(v))
		return err == nil
	default:
		return false
	}
}

func sortedKeys(m map[string]*Expr) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
