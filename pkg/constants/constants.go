// Package constants provides shared constants for the unit-analytics application.
package constants

// DateLayout is the ISO date format expected for contract and handover dates.
const DateLayout = "2006-01-02"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DaysPerYear is the average year length used for day-count year fractions
	DaysPerYear = 365.25

	// MonthlyFrequency is the frequency for monthly installments
	MonthlyFrequency = 1

	// QuarterlyFrequency is the frequency for quarterly installments and the
	// default when none is given
	QuarterlyFrequency = 3

	// SemiAnnualFrequency is the frequency for semi-annual installments
	SemiAnnualFrequency = 6

	// AnnualFrequency is the frequency for annual installments
	AnnualFrequency = 12

	// MaxProjectionYears is the length of the longest cash-flow horizon
	MaxProjectionYears = 20
)

// ProjectionHorizons are the horizon lengths, in years, exposed to callers.
var ProjectionHorizons = []int{5, 10, 15, 20}

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// ConfigEnvVar names the environment variable holding the config path
	ConfigEnvVar = "UNIT_ANALYTICS_CONFIG"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum request body size (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024
)

// Formatting defaults
const (
	// DefaultLocale is the language tag used for digit grouping
	DefaultLocale = "en"

	// NotAvailable is rendered in place of non-finite values
	NotAvailable = "N/A"
)

// Validation constants
const (
	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// BoundaryEpsilon nudges whole-year boundaries down when flooring elapsed years
	BoundaryEpsilon = 1e-9
)
