package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateForLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		limit  int
		expect string
	}{
		{name: "non-positive limit", input: `{"ranking_explanation": "ok"}`, limit: 0, expect: ""},
		{name: "fits", input: "Jane Doe", limit: 20, expect: "Jane Doe"},
		{name: "cut with ellipsis", input: "Excellent overall match (96.0%)", limit: 9, expect: "Excellent..."},
		{name: "whitespace trimmed first", input: "\n  candidate  \n", limit: 9, expect: "candidate"},
		{name: "multibyte runes kept whole", input: "Zoë Müller-Lüdenscheidt", limit: 3, expect: "Zoë..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expect, TruncateForLog(tt.input, tt.limit))
		})
	}
}
