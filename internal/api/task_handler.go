package api

import (
	"net/http"

	"github.com/phrazzld/taskboard/internal/api/shared"
	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/service"
	"github.com/phrazzld/taskboard/internal/web"
)

// TasksPath is where every mutating task route redirects to.
const TasksPath = "/tasks"

// TaskHandler handles the task routes.
type TaskHandler struct {
	tasks    service.TaskService
	renderer *web.Renderer
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(tasks service.TaskService, renderer *web.Renderer) *TaskHandler {
	return &TaskHandler{tasks: tasks, renderer: renderer}
}

// ListTasks handles GET /tasks. A store failure is logged and the page is
// rendered with an empty list.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.ListTasks(r.Context())
	if err != nil {
		shared.LogError(r, http.StatusInternalServerError, "failed to list tasks", err)
		tasks = []domain.Task{}
	}
	render(w, r, h.renderer, web.PageTasks, web.TasksData{Tasks: tasks})
}

// CreateTask handles POST /tasks. The text comes from a form or JSON body
// and a missing field means empty text. It always redirects to /tasks; an
// unreadable body creates nothing.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	text, err := shared.FormOrJSONValue(r, "text")
	if err != nil {
		shared.LogError(r, http.StatusBadRequest, "failed to read task text", err)
		shared.Redirect(w, r, TasksPath)
		return
	}

	if _, err := h.tasks.CreateTask(r.Context(), text); err != nil {
		shared.LogError(r, http.StatusInternalServerError, "failed to create task", err)
	}

	shared.Redirect(w, r, TasksPath)
}

// DeleteTask handles POST /tasks/delete/{taskId}. It always redirects to /tasks.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	rawID := shared.PathParam(r, "taskId")

	if err := h.tasks.DeleteTask(r.Context(), rawID); err != nil {
		shared.LogError(r, http.StatusInternalServerError, "failed to delete task", err)
	}

	shared.Redirect(w, r, TasksPath)
}
