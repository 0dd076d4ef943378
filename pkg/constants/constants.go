// Package constants provides shared constants for the tjm-calculator application.
package constants

// Tax regime constants
const (
	// TaxRate is the URSSAF contribution rate applied to gross revenue for
	// micro-entreprise service activities (prestations de services, 2026).
	TaxRate = 0.212

	// TaxRegime identifies the regime in outbound notification payloads.
	TaxRegime = "micro_prestations_services"
)

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Example form values used by "fill example".
const (
	ExampleMonthlyNetTarget     = 2500
	ExampleMonthlyExpenses      = 300
	ExampleBillableDaysPerMonth = 15
	ExampleCurrentDailyRate     = 150
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatJSON is the machine-readable output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Notification defaults
const (
	// DefaultNotificationEndpoint is the Formspree form receiving email captures.
	DefaultNotificationEndpoint = "https://formspree.io/f/xreajabj"

	// DefaultNotificationTimeout bounds a single notification request.
	DefaultNotificationTimeout = "10s"

	// NotApplicable is used in payloads for values the user did not supply.
	NotApplicable = "N/A"
)

// Upsell defaults
const (
	// DefaultUpsellURL is the payment link for the rate increase kit.
	DefaultUpsellURL = "https://tally.so/r/2E44Q9"

	// DefaultUpsellPrice is the displayed kit price in euros.
	DefaultUpsellPrice = 29
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the web UI
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (64 KB)
	DefaultMaxBodySizeBytes int64 = 64 * 1024

	// DefaultShutdownTimeout bounds graceful shutdown of the HTTP server.
	DefaultShutdownTimeout = "5s"
)
