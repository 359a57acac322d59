// Package constants provides shared constants for the mortgage-calculator application.
package constants

// DateLayout is the format expected for payment dates in config files and API
// requests and is also the output date format.
const DateLayout = "2006-01-02"

// Financial constants
const (
	// DefaultPaymentsPerYear is the payment frequency used when none is given
	DefaultPaymentsPerYear = 12

	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPlaces is the number of places currency is rounded to
	DecimalPlaces = 2

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// GroupSize is the number of digits between thousands separators
	GroupSize = 3

	// GroupSeparator separates digit groups in user-facing amounts
	GroupSeparator = ','
)

// Recalculation gate limits
const (
	// MaxAnnualRatePercent is the highest annual rate accepted by the gate
	MaxAnnualRatePercent = 20.0

	// MaxTermYears is the longest loan term accepted by the gate
	MaxTermYears = 30.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (64 KB)
	DefaultMaxBodySizeBytes int64 = 64 * 1024

	// DefaultCacheTTLSeconds is how long computed schedules stay cached
	DefaultCacheTTLSeconds = 300

	// DefaultCompareConcurrency bounds parallel scenario evaluation
	DefaultCompareConcurrency = 4

	// MaxCompareScenarios caps the scenarios accepted by a single compare call
	MaxCompareScenarios = 32
)

// Cache backend names
const (
	// CacheBackendNone disables result caching
	CacheBackendNone = "none"

	// CacheBackendMemory keeps results in process memory
	CacheBackendMemory = "memory"

	// CacheBackendRedis keeps results in redis
	CacheBackendRedis = "redis"
)

// Host request limits
const (
	// MaxPaymentsPerYear is the most frequent payment schedule a host accepts
	MaxPaymentsPerYear = 365
)
