package schema_test

import (
	"testing"

	"github.com/huangsam/divrank/schema"
	"github.com/stretchr/testify/assert"
)

func TestRankedViewLimit(t *testing.T) {
	view := &schema.RankedView{
		Metric: schema.DescriptiveGender,
		Rows: []schema.RankedRow{
			{Rank: 1, Institution: "C"},
			{Rank: 2, Institution: "A"},
			{Rank: 3, Institution: "B"},
		},
	}

	tests := []struct {
		name     string
		limit    int
		expected int
	}{
		{"zero keeps all", 0, 3},
		{"negative keeps all", -1, 3},
		{"prefix", 2, 2},
		{"larger than view", 10, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limited := view.Limit(tt.limit)
			assert.Len(t, limited.Rows, tt.expected)
			for i, row := range limited.Rows {
				assert.Equal(t, i+1, row.Rank)
			}
		})
	}

	assert.Len(t, view.Rows, 3, "original view must not be modified")
}
