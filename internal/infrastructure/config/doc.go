// Package config loads and validates the HomeLink bridge configuration.
//
// Configuration comes from a single YAML file with three layers of
// precedence: hardcoded defaults, file values, then HOMELINK_* environment
// variable overrides. The loaded Config is passed by value (per section)
// into the components that need it; nothing reads configuration globally.
package config
