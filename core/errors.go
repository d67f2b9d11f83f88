package core

import "errors"

// Sentinel errors returned by the loader and the ranking engine.
// Callers match them with errors.Is; the wrapped message carries the detail.
var (
	// ErrDataUnavailable means the dataset could not be read or is not tabular.
	ErrDataUnavailable = errors.New("dataset unavailable")

	// ErrMalformedProportions means a proportion cell is not a valid mapping.
	ErrMalformedProportions = errors.New("malformed proportions")

	// ErrUnknownMetric means the metric is not a dataset column.
	ErrUnknownMetric = errors.New("unknown metric")
)
