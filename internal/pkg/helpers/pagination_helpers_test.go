package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessageWindow(t *testing.T) {
	tests := []struct {
		name        string
		scrollIndex int
		batchLength int
		wantOffset  int
		wantLimit   int
	}{
		{"defaults", 0, 0, 0, DefaultBatchLength},
		{"first page explicit batch", 0, 10, 0, 10},
		{"second page", 1, 10, 10, 10},
		{"third page default batch", 2, 0, 2 * DefaultBatchLength, DefaultBatchLength},
		{"negative index clamps to zero", -3, 10, 0, 10},
		{"negative batch falls back to default", 1, -5, DefaultBatchLength, DefaultBatchLength},
		{"oversized batch clamps to max", 0, 500, 0, MaxBatchLength},
		{"oversized batch on later page", 2, 500, 2 * MaxBatchLength, MaxBatchLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, limit := MessageWindow(tt.scrollIndex, tt.batchLength)
			assert.Equal(t, tt.wantOffset, offset)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}
