package typeexpr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheck_WellFormed(t *testing.T) {
	tests := []string{
		"string",
		"int",
		"float",
		"boolean",
		"datetime",
		`enum["a", "b"]`,
		`enum["financial", "healthcare", "retail"]`,
		"list[string]",
		"list[int]",
		"range(0, 100)",
		"range(100K, 10M)",
		"range(10M, 1B+)",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			assert.Empty(t, Check(input))
		})
	}
}

func TestCheck_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"enum missing bracket", `enum["a", "b"`, "Invalid enum definition"},
		{"enum unquoted values", "enum[a, b]", "Enum values must be quoted"},
		{"enum partially quoted", `enum["a", b]`, "Enum values must be quoted"},
		{"list missing bracket", "list[string", "Invalid list definition"},
		{"list empty inner", "list[]", "List must specify inner type"},
		{"range missing paren", "range(1, 10", "Invalid range definition"},
		{"range single bound", "range(10)", "Range must have min and max values"},
		{"range three bounds", "range(1, 2, 3)", "Range must have min and max values"},
		{"unknown keyword", "decimal", "Unknown type"},
		{"unknown keyword text", "text", "Unknown type"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			problems := Check(tc.input)
			assert.NotEmpty(t, problems)
			assert.Contains(t, problems[0], tc.want)
		})
	}
}

func TestCheck_StricterThanParse(t *testing.T) {
	// The validator gate rejects what the permissive parser accepts.
	input := "decimal"

	assert.NotEmpty(t, Check(input))

	expr, err := Parse(input)
	assert.NoError(t, err)
	assert.Equal(t, KindString, expr.Kind)
}
