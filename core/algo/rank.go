// Package algo has the ordering and numbering rules behind every ranked view.
package algo

import (
	"cmp"
	"slices"

	"github.com/huangsam/divrank/schema"
)

// Candidate pairs an institution with its score for the metric being ranked.
type Candidate struct {
	Record schema.Institution
	Score  float64
}

// SortCandidates orders candidates by score descending, then by institution
// name ascending. The sort is stable, so rows tied on both keys keep their
// source order.
func SortCandidates(candidates []Candidate) {
	slices.SortStableFunc(candidates, func(a, b Candidate) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.Record.Institution, b.Record.Institution)
	})
}

// RankCandidates sorts candidates and numbers them 1..N in the resulting
// order. If limit is positive and smaller than N, only the top 'limit' rows
// are returned.
func RankCandidates(candidates []Candidate, limit int) []schema.RankedRow {
	SortCandidates(candidates)
	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	rows := make([]schema.RankedRow, len(candidates))
	for i, c := range candidates {
		rows[i] = schema.RankedRow{
			Rank:           i + 1,
			Institution:    c.Record.Institution,
			City:           c.Record.City,
			State:          c.Record.State,
			DiversityScore: c.Score,
			PercentFemale:  c.Record.PercentFemale,
			PercentOfColor: c.Record.PercentOfColor,
		}
	}
	return rows
}
