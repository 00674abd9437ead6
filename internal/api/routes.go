package api

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts every application route on r.
// Static paths take precedence over the /{name} greeting in chi.
func RegisterRoutes(r chi.Router, pages *PageHandler, tasks *TaskHandler) {
	r.Get("/", pages.Home)
	r.Get("/about", pages.About)
	r.Get("/image", pages.Image)
	r.Get("/index", pages.Index)
	r.Get("/health", pages.Health)

	r.Get("/tasks", tasks.ListTasks)
	r.Post("/tasks", tasks.CreateTask)
	r.Post("/tasks/delete/{taskId}", tasks.DeleteTask)

	r.Get("/{name}", pages.Hello)
}
