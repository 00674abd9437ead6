// Package config handles configuration loading, parsing, and validation
// from environment variables and an optional config.yaml. It provides
// type-safe access to the server, store and write settings while keeping
// configuration details separate from request handling.
package config
