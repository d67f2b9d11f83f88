package core

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/huangsam/divrank/schema"
)

// ParseProportions converts a dictionary-like text cell into Proportions.
//
// The dataset stores the mappings with single-quoted keys, e.g.
// {'female': 0.6, 'male': 0.4}. Every single quote is replaced with a double
// quote before JSON decoding, so a cell that is already JSON parses the same
// way. A label containing an apostrophe cannot survive that substitution and
// is reported as malformed.
func ParseProportions(raw string) (schema.Proportions, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return nil, fmt.Errorf("%w: empty value", ErrMalformedProportions)
	}
	text = strings.ReplaceAll(text, "'", `"`)

	var values map[string]float64
	if err := json.Unmarshal([]byte(text), &values); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedProportions, err)
	}
	if values == nil {
		return nil, fmt.Errorf("%w: not a mapping", ErrMalformedProportions)
	}
	return schema.Proportions(values), nil
}

// PercentFemale derives the female share as a percentage rounded to two decimals.
func PercentFemale(gender schema.Proportions) float64 {
	return round2(gender.Get(schema.FemaleKey) * 100)
}

// PercentOfColor derives the non-"white_nh" share as a percentage rounded to two decimals.
func PercentOfColor(race schema.Proportions) float64 {
	return round2((1.0 - race.Get(schema.WhiteNHKey)) * 100)
}

// round2 rounds to two decimals using the exact binary value with ties to even,
// which is what strconv's correctly rounded formatting gives us.
func round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	if err != nil {
		return math.Round(v*100) / 100
	}
	return r
}
