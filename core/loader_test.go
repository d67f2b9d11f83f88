package core

import (
	"testing"

	"github.com/huangsam/divrank/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadTable tests loading and normalizing the sample dataset.
func TestLoadTable(t *testing.T) {
	fs, path := writeDataset(t, sampleCSV)
	table, err := LoadTable(fs, path)
	require.NoError(t, err)

	assert.Equal(t, path, table.Source)
	assert.Equal(t, []schema.MetricKey{schema.DescriptiveGender, schema.DescriptiveRace}, table.Columns)
	require.Len(t, table.Records, 3)

	a := table.Records[0]
	assert.Equal(t, "A", a.Institution)
	assert.Equal(t, "Los Angeles", a.City)
	assert.Equal(t, "CA", a.State)
	assert.Equal(t, 60.0, a.PercentFemale)
	assert.Equal(t, 50.0, a.PercentOfColor)
	score, ok := a.Score(schema.DescriptiveGender)
	assert.True(t, ok)
	assert.Equal(t, 80.0, score)

	b := table.Records[1]
	_, ok = b.Score(schema.DescriptiveRace)
	assert.False(t, ok, "empty cell reads as missing")
	assert.Equal(t, 25.0, b.PercentOfColor)

	c := table.Records[2]
	assert.Equal(t, 50.0, c.PercentFemale)
	assert.Equal(t, 80.0, c.PercentOfColor)
}

// TestLoadTablePercentagesInRange tests that derived percentages stay within [0, 100].
func TestLoadTablePercentagesInRange(t *testing.T) {
	fs, path := writeDataset(t, sampleCSV)
	table, err := LoadTable(fs, path)
	require.NoError(t, err)
	for _, rec := range table.Records {
		assert.GreaterOrEqual(t, rec.PercentFemale, 0.0)
		assert.LessOrEqual(t, rec.PercentFemale, 100.0)
		assert.GreaterOrEqual(t, rec.PercentOfColor, 0.0)
		assert.LessOrEqual(t, rec.PercentOfColor, 100.0)
	}
}

// TestLoadTableHeaderHandling tests BOM stripping, extra columns and partial metric sets.
func TestLoadTableHeaderHandling(t *testing.T) {
	content := "\ufeffinstitution,city,state,gender_proportions,race_proportions,blaus_race,notes\n" +
		`Solo,Austin,TX,"{'female': 0.5}","{'white_nh': 0.5}",0.61,ignored` + "\n"
	fs, path := writeDataset(t, content)
	table, err := LoadTable(fs, path)
	require.NoError(t, err)
	assert.Equal(t, []schema.MetricKey{schema.BlausRace}, table.Columns)
	require.Len(t, table.Records, 1)
	assert.Equal(t, "Solo", table.Records[0].Institution)
}

// TestLoadTableMissingValues tests the tokens that read as a missing metric.
func TestLoadTableMissingValues(t *testing.T) {
	for _, token := range []string{"", "NA", "N/A", "NaN", "nan", "null", "None", "<NA>", "inf", "-Inf"} {
		t.Run(token, func(t *testing.T) {
			content := "institution,city,state,gender_proportions,race_proportions,descriptive_gender\n" +
				`X,Y,CA,{},{},` + token + "\n"
			fs, path := writeDataset(t, content)
			table, err := LoadTable(fs, path)
			require.NoError(t, err)
			_, ok := table.Records[0].Score(schema.DescriptiveGender)
			assert.False(t, ok)
		})
	}
}

// TestLoadTableEmptyData tests a header-only file.
func TestLoadTableEmptyData(t *testing.T) {
	fs, path := writeDataset(t, sampleHeader)
	table, err := LoadTable(fs, path)
	require.NoError(t, err)
	assert.Empty(t, table.Records)
	assert.Empty(t, table.States())
}

// TestLoadTableErrors tests the failure modes of the loader.
func TestLoadTableErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		fs, _ := writeDataset(t, sampleCSV)
		_, err := LoadTable(fs, "/data/nope.csv")
		assert.ErrorIs(t, err, ErrDataUnavailable)
	})

	tests := []struct {
		name    string
		content string
		target  error
		detail  string
	}{
		{"empty file", "", ErrDataUnavailable, "empty"},
		{"missing column", "institution,city,state,gender_proportions\n", ErrDataUnavailable, "race_proportions"},
		{"ragged row", sampleHeader + "A,B,CA\n", ErrDataUnavailable, "row 1"},
		{"non numeric metric", sampleHeader + `A,L,CA,{},{},high,1` + "\n", ErrDataUnavailable, "descriptive_gender"},
		{"malformed proportions", sampleHeader + `A,L,CA,"{'female': }",{},1,1` + "\n", ErrMalformedProportions, "gender_proportions"},
		{"apostrophe in label", sampleCSV + `D,L,CA,{},"{'o'brien': 0.1}",1,1` + "\n", ErrMalformedProportions, "row 4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs, path := writeDataset(t, tt.content)
			table, err := LoadTable(fs, path)
			assert.Nil(t, table)
			require.ErrorIs(t, err, tt.target)
			assert.Contains(t, err.Error(), tt.detail)
		})
	}
}
