// Package shared contains request and response helpers used by the api
// handlers and middleware.
package shared
