// Package api handles incoming HTTP requests. Its handlers translate
// requests into TaskService calls and answer with plain text, rendered
// views, static files or redirects.
//
// Store failures never reach the client: they are logged, the task list
// degrades to empty, and mutating routes redirect back to /tasks.
package api
