// Package middleware holds the HTTP middleware specific to this application.
// Generic concerns (request IDs, panic recovery, real IPs) come from chi.
package middleware
