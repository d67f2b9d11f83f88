package schema

import "strings"

// MetricOption pairs a human-facing label with its dataset column.
type MetricOption struct {
	Label string    `json:"label"`
	Key   MetricKey `json:"key"`
}

// AllMetrics is the fixed metric catalogue in display order.
var AllMetrics = []MetricOption{
	{Label: "Descriptive (Gender)", Key: DescriptiveGender},
	{Label: "Descriptive (Race)", Key: DescriptiveRace},
	{Label: "Descriptive (Joint)", Key: DescriptiveJoint},
	{Label: "Representative (Gender)", Key: RepresentativeGender},
	{Label: "Representative (Race)", Key: RepresentativeRace},
	{Label: "Representative (Joint)", Key: RepresentativeJoint},
	{Label: "Compensatory (Gender)", Key: CompensatoryGender},
	{Label: "Compensatory (Race)", Key: CompensatoryRace},
	{Label: "Compensatory (Joint)", Key: CompensatoryJoint},
	{Label: "Blau Index (Gender)", Key: BlausGender},
	{Label: "Blau Index (Race)", Key: BlausRace},
}

// ValidMetricKeys lists all valid metric keys.
var ValidMetricKeys = func() map[MetricKey]struct{} {
	keys := make(map[MetricKey]struct{}, len(AllMetrics))
	for _, m := range AllMetrics {
		keys[m.Key] = struct{}{}
	}
	return keys
}()

// LookupMetric resolves either a metric key (case-insensitive) or a display
// label to its MetricKey.
func LookupMetric(s string) (MetricKey, bool) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", false
	}
	if key := MetricKey(strings.ToLower(trimmed)); isValidMetric(key) {
		return key, true
	}
	for _, m := range AllMetrics {
		if strings.EqualFold(m.Label, trimmed) {
			return m.Key, true
		}
	}
	return "", false
}

// MetricLabel returns the display label for a key, or the key itself when
// it is not part of the catalogue.
func MetricLabel(key MetricKey) string {
	for _, m := range AllMetrics {
		if m.Key == key {
			return m.Label
		}
	}
	return string(key)
}

func isValidMetric(key MetricKey) bool {
	_, ok := ValidMetricKeys[key]
	return ok
}
