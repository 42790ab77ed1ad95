// Package config loads rent's configuration.
//
// Configuration comes from a YAML (.yaml, .yml) or CUE (.cue) file. Loading
// runs in a fixed order:
//
//  1. Parse the file and check it against the embedded CUE schema
//  2. Apply default values for anything left unset
//  3. Apply RENT_* environment variable overrides
//  4. Validate the final configuration
//
// Every field has a default, so an empty path yields a usable configuration
// built from defaults and environment overrides alone.
//
// # Environment Variables
//
//	RENT_TOTAL_RENT              total monthly rent
//	RENT_FALLBACK_POLICY         sequential | minimum-envy
//	RENT_DATABASE_PATH           SQLite file
//	RENT_LOGGING_LEVEL           debug | info | warn | error
//	RENT_LOGGING_FORMAT          json | console
//	RENT_SERVER_LISTEN_ADDRESS   host:port for rent serve
//	RENT_SERVER_READ_TIMEOUT     duration, e.g. 15s
//	RENT_SERVER_WRITE_TIMEOUT    duration
//	RENT_SERVER_SHUTDOWN_TIMEOUT duration
//	RENT_METRICS_ENABLED         true | false
//	RENT_METRICS_NAMESPACE       prometheus namespace
package config
