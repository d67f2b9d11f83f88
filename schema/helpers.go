package schema

import (
	"slices"
	"strings"
)

// NormalizeStates splits comma-separated entries, trims whitespace, drops
// blanks and duplicates, and returns the result sorted. A nil or empty input
// yields an empty selection, which means "all states".
func NormalizeStates(raw []string) []string {
	seen := make(map[string]struct{})
	states := make([]string, 0, len(raw))
	for _, entry := range raw {
		for part := range strings.SplitSeq(entry, ",") {
			s := strings.TrimSpace(part)
			if s == "" {
				continue
			}
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			states = append(states, s)
		}
	}
	slices.Sort(states)
	return states
}

// FormatStates renders a state selection for headers and history records.
func FormatStates(states []string) string {
	return strings.Join(states, ",")
}

// DescribeStates is the human form of a state selection.
func DescribeStates(states []string) string {
	if len(states) == 0 {
		return "all states"
	}
	return strings.Join(states, ", ")
}
