// Package typeexpr implements the type-definition mini-language used by
// ontology property declarations: enum["a", "b"], list[<expr>],
// range(<bound>, <bound>), and the scalar keywords string, int, float,
// boolean and datetime.
//
// The package deliberately splits three concerns over the same grammar:
// Parse is the permissive consumer (unknown scalar keywords fall back to
// string and never fail), Check is the strict syntactic gate, and
// CheckValue validates concrete data against a definition. Parse and Check
// must not be unified: compilation stays best-effort over malformed entries
// while an explicit validation pass still surfaces them.
package typeexpr

// Kind identifies the variant of a parsed type expression.
type Kind string

const (
	// KindString is the string scalar and the fallback for unknown keywords.
	KindString Kind = "string"

	// KindInt is the integer scalar.
	KindInt Kind = "int"

	// KindFloat is the floating-point scalar.
	KindFloat Kind = "float"

	// KindBoolean is the boolean scalar.
	KindBoolean Kind = "boolean"

	// KindDatetime is the date-time scalar.
	KindDatetime Kind = "datetime"

	// KindEnum is a closed set of string members.
	KindEnum Kind = "enum"

	// KindList is a homogeneous sequence of an inner expression.
	KindList Kind = "list"

	// KindRange is a closed numeric interval.
	KindRange Kind = "range"

	// KindObject is a nested mapping of named sub-properties.
	KindObject Kind = "object"
)

// Expr is the parsed form of a type-definition. Exactly one variant is
// populated, selected by Kind. Every output target and the data validator
// consume this shared descriptor so the grammar is implemented once.
type Expr struct {
	Kind Kind

	// Enum holds the ordered, quote-stripped members (KindEnum).
	Enum []string

	// Elem is the inner expression (KindList).
	Elem *Expr

	// Min and Max are the resolved interval bounds (KindRange).
	Min float64
	Max float64

	// Props maps sub-property names to their expressions (KindObject).
	Props map[string]*Expr
}

// scalarKinds maps the fixed scalar keywords to their kinds. Anything
// outside this set parses as string.
var scalarKinds = map[string]Kind{
	"string":   KindString,
	"int":      KindInt,
	"float":    KindFloat,
	"boolean":  KindBoolean,
	"datetime": KindDatetime,
}
