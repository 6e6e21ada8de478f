// Package constants provides shared constants for the mortgage calculation engine.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// BiweeklyPeriodsPerYear is the number of biweekly payment periods in a year
	BiweeklyPeriodsPerYear = 26

	// WeeklyPeriodsPerYear is the number of weekly payment periods in a year
	WeeklyPeriodsPerYear = 52

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01
)

// Qualification constants
const (
	// DefaultGDSLimit is the regulatory Gross Debt Service ceiling
	DefaultGDSLimit = 0.32

	// DefaultTDSLimit is the regulatory Total Debt Service ceiling
	DefaultTDSLimit = 0.40

	// DefaultStressTestBufferPercent is added to the contract rate when
	// deriving a qualifying rate
	DefaultStressTestBufferPercent = 2.0

	// DefaultBenchmarkRatePercent is the minimum qualifying rate floor used
	// by the stress test
	DefaultBenchmarkRatePercent = 5.25
)

// Down payment and insurance constants
const (
	// FirstTierUpperBound is the price below which a 5% minimum down payment applies
	FirstTierUpperBound = 500000.0

	// SecondTierUpperBound is the price at and above which default insurance
	// is unavailable and a 20% down payment is required
	SecondTierUpperBound = 1000000.0

	// FirstTierMinPercent applies to the portion of price below $500k
	FirstTierMinPercent = 0.05

	// SecondTierMinPercent applies to the portion of price in [$500k, $1M)
	SecondTierMinPercent = 0.10

	// TopTierMinPercent applies to the whole price at or above $1M
	TopTierMinPercent = 0.20

	// MaxConventionalLTVPercent is the LTV at or below which no default
	// insurance is required
	MaxConventionalLTVPercent = 80.0

	// MaxInsurableLTVPercent is the LTV above which a mortgage cannot be insured
	MaxInsurableLTVPercent = 95.0
)

// Validation constants
const (
	// MinAmortizationYears is the shortest supported amortization
	MinAmortizationYears = 1

	// MaxAmortizationYears is the longest supported amortization
	MaxAmortizationYears = 30
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
	// DefaultServerAddress is the default HTTP listen address for the calculator API
	DefaultServerAddress = ":8080"

	// DefaultMaxRequestSizeBytes is the default maximum JSON request body size (64 KB)
	DefaultMaxRequestSizeBytes int64 = 64 * 1024

	// DefaultCacheTTLSeconds is the default lifetime for cached calculation responses
	DefaultCacheTTLSeconds = 300
)
