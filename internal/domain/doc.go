// Package domain defines the Task entity and the helpers used to create it
// and parse its identifier. It has no dependencies on storage or transport.
package domain
