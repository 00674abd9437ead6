// Package store defines the task persistence contract and the connection
// gate shared by every backend. Backends live under internal/platform; this
// package keeps request handling independent of the database in use.
package store
