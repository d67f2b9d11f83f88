package schema

// Custom string types for type safety.
type (
	// MetricKey is the column name of one pre-computed diversity metric.
	MetricKey string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for caching and history.
	DatabaseBackend string
)

// All diversity metrics carried by the dataset.
const (
	DescriptiveGender    MetricKey = "descriptive_gender" // default
	DescriptiveRace      MetricKey = "descriptive_race"
	DescriptiveJoint     MetricKey = "descriptive_joint"
	RepresentativeGender MetricKey = "representative_gender"
	RepresentativeRace   MetricKey = "representative_race"
	RepresentativeJoint  MetricKey = "representative_joint"
	CompensatoryGender   MetricKey = "compensatory_gender"
	CompensatoryRace     MetricKey = "compensatory_race"
	CompensatoryJoint    MetricKey = "compensatory_joint"
	BlausGender          MetricKey = "blaus_gender"
	BlausRace            MetricKey = "blaus_race"
)

// Required input columns besides the metric columns.
const (
	InstitutionColumn       = "institution"
	CityColumn              = "city"
	StateColumn             = "state"
	GenderProportionsColumn = "gender_proportions"
	RaceProportionsColumn   = "race_proportions"
)

// Proportion keys consulted by the derived percentages.
const (
	FemaleKey  = "female"
	WhiteNHKey = "white_nh"
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// Dashboard and export naming.
const (
	AppTitle       = "INSTITUTIONAL DIVERSITY RANKING"
	ExportFileName = "diversity_rankings.csv"
	ExportMimeType = "text/csv"
)

// RankedColumns is the column order of every ranked export.
var RankedColumns = []string{
	"rank",
	"institution",
	"city",
	"state",
	"diversity_score",
	"percent_female",
	"percent_of_color",
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
