// Package config loads, merges and validates the go-pass-sync configuration.
//
// Layers, from lowest to highest priority (later layers override non-zero
// fields of earlier ones):
//  1. built-in defaults
//  2. JSON config file
//  3. environment variables
//  4. command-line overrides
//
// The entry point is [GetStructuredConfig].
package config
