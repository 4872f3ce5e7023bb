package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchScore(t *testing.T) {
	tests := []struct {
		answered, recommended int
		want                  int
	}{
		{6, 12, 100},
		{3, 0, 35},
		{0, 0, 0},
		{6, 0, 70},
		{0, 12, 30},
		{4, 5, 59},
		{9, 12, 100},
		{6, 20, 100},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MatchScore(tt.answered, tt.recommended), "answered=%d recommended=%d", tt.answered, tt.recommended)
	}
}
