package typeexpr

import (
	"fmt"
	"strings"
)

// Check performs the strict syntactic gate over a type-definition string
// and returns one problem message per violation. An empty result means the
// definition is well-formed.
//
// Check is independent of Parse on purpose: Parse tolerates what Check
// rejects, so callers can run a best-effort compile over input that a
// validation pass would flag. Check does not recurse into list inner
// expressions and does not verify range bound numerics; both match the
// historical gate, which only enforced delimiters, quoting and arity.
func Check(s string) []string {
	var problems []string
	s = strings.TrimSpace(s)

	switch {
	case strings.HasPrefix(s, enumPrefix):
		if !strings.HasSuffix(s, "]") {
			return append(problems, fmt.Sprintf("Invalid enum definition: %s", s))
		}
		members := strings.Split(s[len(enumPrefix):len(s)-1], memberSeparator)
		for _, m := range members {
			t := strings.TrimSpace(m)
			if !strings.HasPrefix(t, `"`) || !strings.HasSuffix(t, `"`) {
				return append(problems, fmt.Sprintf("Enum values must be quoted: %s", s))
			}
		}
		for _, m := range members {
			if m == "" {
				return append(problems, fmt.Sprintf("Enum must have at least one value: %s", s))
			}
		}

	case strings.HasPrefix(s, listPrefix):
		if !strings.HasSuffix(s, "]") {
			return append(problems, fmt.Sprintf("Invalid list definition: %s", s))
		}
		if s[len(listPrefix):len(s)-1] == "" {
			return append(problems, fmt.Sprintf("List must specify inner type: %s", s))
		}

	case strings.HasPrefix(s, rangePrefix):
		if !strings.HasSuffix(s, ")") {
			return append(problems, fmt.Sprintf("Invalid range definition: %s", s))
		}
		if len(strings.Split(s[len(rangePrefix):len(s)-1], memberSeparator)) != 2 {
			return append(problems, fmt.Sprintf("Range must have min and max values: %s", s))
		}

	default:
		if _, ok := scalarKinds[s]; !ok {
			return append(problems, fmt.Sprintf("Unknown type: %s", s))
		}
	}

	return problems
}
