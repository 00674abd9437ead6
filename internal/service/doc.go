// Package service contains the task use cases. It sits between the HTTP
// handlers and the store.TaskStore implementations, turning raw request
// values into domain operations and optionally deferring writes to the
// background worker pool.
package service
