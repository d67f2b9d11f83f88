package core

import (
	"errors"
	"testing"
)

// FuzzParseProportions ensures arbitrary cells either parse or fail with ErrMalformedProportions.
func FuzzParseProportions(f *testing.F) {
	seeds := []string{
		"{'female': 0.6, 'male': 0.4}",
		`{"white_nh": 0.2}`,
		"{}",
		"",
		"{'o'brien': 0.1}",
		"[1, 2]",
		"{'female': 1e400}",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, raw string) {
		p, err := ParseProportions(raw)
		if err != nil {
			if !errors.Is(err, ErrMalformedProportions) {
				t.Fatalf("ParseProportions(%q) returned unexpected error %v", raw, err)
			}
			return
		}
		if p == nil {
			t.Fatalf("ParseProportions(%q) returned nil without error", raw)
		}
		_ = PercentFemale(p)
		_ = PercentOfColor(p)
	})
}
