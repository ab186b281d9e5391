package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "nil slice",
			input:    nil,
			expected: nil,
		},
		{
			name:     "only blanks",
			input:    []string{"", " , ,"},
			expected: nil,
		},
		{
			name:     "single element",
			input:    []string{"0xaa"},
			expected: []string{"0xaa"},
		},
		{
			name:     "comma separated",
			input:    []string{"0xaa,0xbb , 0xcc"},
			expected: []string{"0xaa", "0xbb", "0xcc"},
		},
		{
			name:     "repeated and mixed case duplicates",
			input:    []string{"0xAA", "0xbb,0xaa", "0xBB"},
			expected: []string{"0xaa", "0xbb"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitList(tt.input, ","))
		})
	}
}
