package core

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/divrank/schema"
	"github.com/spf13/afero"
)

// naTokens are the cell values read as missing, matching the default NA
// spellings used by common dataframe tooling.
var naTokens = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {},
	"NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

// requiredColumns must all appear in the header row.
var requiredColumns = []string{
	schema.InstitutionColumn,
	schema.CityColumn,
	schema.StateColumn,
	schema.GenderProportionsColumn,
	schema.RaceProportionsColumn,
}

// LoadTable reads and normalizes the dataset at path.
//
// The whole load fails on the first bad row: a malformed proportion cell
// returns ErrMalformedProportions and an unreadable file or non-numeric metric
// returns ErrDataUnavailable. Both name the 1-based data row.
func LoadTable(fs afero.Fs, path string) (*schema.Table, error) {
	file, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	defer func() { _ = file.Close() }()

	table, err := parseTable(file)
	if err != nil {
		return nil, err
	}
	table.Source = path
	return table, nil
}

// parseTable does the CSV decoding for LoadTable.
func parseTable(r io.Reader) (*schema.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // row width is checked against the header below

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty file", ErrDataUnavailable)
		}
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: missing required column %q", ErrDataUnavailable, col)
		}
	}

	var columns []schema.MetricKey
	for _, m := range schema.AllMetrics {
		if _, ok := index[string(m.Key)]; ok {
			columns = append(columns, m.Key)
		}
	}

	table := &schema.Table{
		Columns:  columns,
		Records:  make([]schema.Institution, 0),
		LoadedAt: time.Now(),
	}

	for row := 1; ; row++ {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrDataUnavailable, row, err)
		}
		if len(fields) != len(header) {
			return nil, fmt.Errorf("%w: row %d has %d fields, header has %d", ErrDataUnavailable, row, len(fields), len(header))
		}

		rec, err := parseRecord(fields, index, columns, row)
		if err != nil {
			return nil, err
		}
		table.Records = append(table.Records, rec)
	}

	return table, nil
}

// parseRecord turns one CSV row into an Institution with derived percentages.
func parseRecord(fields []string, index map[string]int, columns []schema.MetricKey, row int) (schema.Institution, error) {
	gender, err := ParseProportions(fields[index[schema.GenderProportionsColumn]])
	if err != nil {
		return schema.Institution{}, fmt.Errorf("row %d column %s: %w", row, schema.GenderProportionsColumn, err)
	}
	race, err := ParseProportions(fields[index[schema.RaceProportionsColumn]])
	if err != nil {
		return schema.Institution{}, fmt.Errorf("row %d column %s: %w", row, schema.RaceProportionsColumn, err)
	}

	scores := make(map[schema.MetricKey]float64, len(columns))
	for _, key := range columns {
		v, present, err := parseMetricCell(fields[index[string(key)]])
		if err != nil {
			return schema.Institution{}, fmt.Errorf("%w: row %d column %s: %v", ErrDataUnavailable, row, key, err)
		}
		if present {
			scores[key] = v
		}
	}

	return schema.Institution{
		Institution:       fields[index[schema.InstitutionColumn]],
		City:              fields[index[schema.CityColumn]],
		State:             fields[index[schema.StateColumn]],
		GenderProportions: gender,
		RaceProportions:   race,
		Scores:            scores,
		PercentFemale:     PercentFemale(gender),
		PercentOfColor:    PercentOfColor(race),
	}, nil
}

// parseMetricCell returns the numeric value of a metric cell and whether it
// is present. NA tokens and non-finite numbers count as missing.
func parseMetricCell(cell string) (float64, bool, error) {
	text := strings.TrimSpace(cell)
	if _, ok := naTokens[text]; ok {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, false, fmt.Errorf("not a number: %q", cell)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false, nil
	}
	return v, true, nil
}
