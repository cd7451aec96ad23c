// Package cli implements the statusgen command line.
//
// Parse enforces the flag contract: exactly one of --generate, --add,
// --check or --init; --add needs both --http and --desc; --generate takes
// none of them. Violations are returned as *ExitError with code 2. Run
// loads the configuration, applies flag overrides, sets up logging,
// tracing and notification, and executes the selected operation.
package cli
