package algo

import (
	"testing"

	"github.com/huangsam/divrank/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidate(name string, score float64) Candidate {
	return Candidate{Record: schema.Institution{Institution: name, State: "CA"}, Score: score}
}

// TestRankCandidates tests ordering, numbering and limiting.
func TestRankCandidates(t *testing.T) {
	build := func() []Candidate {
		return []Candidate{
			candidate("Low College", 10),
			candidate("High University", 90),
			candidate("Mid Institute", 50),
			candidate("Apex Academy", 90),
		}
	}

	t.Run("score descending then name ascending", func(t *testing.T) {
		rows := RankCandidates(build(), 0)
		require.Len(t, rows, 4)
		assert.Equal(t, "Apex Academy", rows[0].Institution)
		assert.Equal(t, "High University", rows[1].Institution)
		assert.Equal(t, "Mid Institute", rows[2].Institution)
		assert.Equal(t, "Low College", rows[3].Institution)
	})

	t.Run("ranks are contiguous", func(t *testing.T) {
		rows := RankCandidates(build(), 0)
		for i, row := range rows {
			assert.Equal(t, i+1, row.Rank)
		}
	})

	t.Run("limit keeps the prefix", func(t *testing.T) {
		rows := RankCandidates(build(), 2)
		require.Len(t, rows, 2)
		assert.Equal(t, 1, rows[0].Rank)
		assert.Equal(t, 2, rows[1].Rank)
		assert.Equal(t, "High University", rows[1].Institution)
	})

	t.Run("limit exceeds length", func(t *testing.T) {
		assert.Len(t, RankCandidates(build(), 10), 4)
	})

	t.Run("empty input", func(t *testing.T) {
		rows := RankCandidates(nil, 0)
		assert.NotNil(t, rows)
		assert.Empty(t, rows)
	})
}

// TestSortCandidatesStable tests that full ties keep their input order.
func TestSortCandidatesStable(t *testing.T) {
	first := candidate("Same Name", 70)
	first.Record.City = "First"
	second := candidate("Same Name", 70)
	second.Record.City = "Second"

	c := []Candidate{first, candidate("Other", 99), second}
	SortCandidates(c)

	assert.Equal(t, "Other", c[0].Record.Institution)
	assert.Equal(t, "First", c[1].Record.City)
	assert.Equal(t, "Second", c[2].Record.City)
}

// TestSortCandidatesByteOrder tests that names compare byte-wise.
func TestSortCandidatesByteOrder(t *testing.T) {
	c := []Candidate{candidate("b", 1), candidate("B", 1), candidate("a", 1)}
	SortCandidates(c)
	assert.Equal(t, []string{"B", "a", "b"}, []string{c[0].Record.Institution, c[1].Record.Institution, c[2].Record.Institution})
}
