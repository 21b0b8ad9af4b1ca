// Package config loads, merges and validates configuration for the server
// and the CLI client.
//
// Configuration is assembled from several sources, merged with mergo so that
// a field set by an earlier source is never overwritten by a later one:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file (path taken from 1 or 2)
//  4. Built-in defaults
//
// The entry points are [GetStructuredConfig] for the server and
// [GetClientConfig] for the client.
package config
