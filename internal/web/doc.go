// Package web holds the HTML views and static assets served by the
// application. Both are embedded into the binary.
package web
