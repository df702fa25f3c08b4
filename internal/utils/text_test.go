package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain", input: "late checkout", expected: "late checkout"},
		{name: "trims", input: "  2nd floor \n", expected: "2nd floor"},
		{name: "nul bytes", input: "towels\x00 needed", expected: "towels needed"},
		{name: "invalid utf8", input: "bad\xffbyte", expected: "badbyte"},
		{name: "cyrillic kept", input: "Мария", expected: "Мария"},
		{name: "empty", input: "   ", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanText(tt.input))
		})
	}
}
