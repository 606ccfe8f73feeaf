// Package logging builds the slog logger used across streamhub.
//
// Two formats are supported: "console", a compact human-readable handler that
// colors level tags when writing to a terminal, and "json" for machine
// consumption. NewFromConfig tees output to stdout and a streamhub.log file
// under the configured log directory.
package logging
