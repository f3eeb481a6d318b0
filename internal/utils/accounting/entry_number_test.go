package accounting_test

import (
	"testing"

	"github.com/corefin/corefin/internal/utils/accounting"
	"github.com/stretchr/testify/assert"
)

func TestNextEntryNumber(t *testing.T) {
	tests := []struct {
		current string
		want    string
	}{
		{"", "JE-0001"},
		{"JE-0001", "JE-0002"},
		{"JE-0099", "JE-0100"},
		{"JE-9999", "JE-10000"}, // width grows on overflow
		{"ADJ-007", "ADJ-008"},
		{"2025-JE-0042", "2025-JE-0043"},
		{"NONUMERIC", "JE-0001"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, accounting.NextEntryNumber(tt.current), "current=%q", tt.current)
	}
}
