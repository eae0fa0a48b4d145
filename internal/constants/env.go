// Package constants provides centralized definitions of constants used throughout the application
package constants

// Environment variable names
const (
	// EnvAPIBase is the base URL the CLI uses to reach the API server
	EnvAPIBase = "INTAKEFLOW_API_BASE"

	// EnvAPIKey is the shared write key; the server enforces it and the CLI sends it
	EnvAPIKey = "INTAKEFLOW_API_KEY"

	// EnvPreferencesFile overrides where the CLI stores its filter selections
	EnvPreferencesFile = "INTAKEFLOW_PREFERENCES"

	// EnvDatabaseURL is a full database URL for the migrate binary, overriding the DB_* settings
	EnvDatabaseURL = "DATABASE_URL"
)

// DefaultAPIKey is the development write key used when none is configured
const DefaultAPIKey = "dev-12345"

// DefaultAPIKeyHeader is the request header carrying the write key
const DefaultAPIKeyHeader = "x-api-key"
