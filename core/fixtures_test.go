package core

import (
	"sync/atomic"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

const sampleHeader = "institution,city,state,gender_proportions,race_proportions,descriptive_gender,descriptive_race\n"

// sampleCSV holds three institutions: A and B tie in CA on descriptive_gender,
// C leads in NY, and B has no descriptive_race value.
const sampleCSV = sampleHeader +
	`A,Los Angeles,CA,"{'female': 0.6, 'male': 0.4}","{'white_nh': 0.5, 'black_nh': 0.5}",80,0.7` + "\n" +
	`B,San Diego,CA,"{'female': 0.4, 'male': 0.6}","{'white_nh': 0.75}",80,` + "\n" +
	`C,New York,NY,"{'female': 0.5}","{'white_nh': 0.2}",90,0.4` + "\n"

// writeDataset writes content to an in-memory filesystem and returns it with the file path.
func writeDataset(t *testing.T, content string) (afero.Fs, string) {
	t.Helper()
	fs := afero.NewMemMapFs()
	path := "/data/institutional_diversity_metric.csv"
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
	return fs, path
}

// countingFs counts how many times files are opened.
type countingFs struct {
	afero.Fs
	opens atomic.Int32
}

func (c *countingFs) Open(name string) (afero.File, error) {
	c.opens.Add(1)
	return c.Fs.Open(name)
}
