package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/tasklist/internal/api/shared"
	"github.com/phrazzld/tasklist/internal/platform/logger"
	"github.com/phrazzld/tasklist/internal/service"
)

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	tasks  service.TaskService
	logger *slog.Logger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(tasks service.TaskService, logger *slog.Logger) *TaskHandler {
	if tasks == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("task service cannot be nil for TaskHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TaskHandler")
	}

	return &TaskHandler{
		tasks:  tasks,
		logger: logger.With(slog.String("component", "task_handler")),
	}
}

// Mount registers the /task routes on r.
func (h *TaskHandler) Mount(r chi.Router) {
	r.Route("/task", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Delete("/", h.DeleteAll)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Replace)
		r.Patch("/{id}", h.Alter)
		r.Delete("/{id}", h.Delete)
	})
}

// List handles GET /task requests
// The optional completed query parameter filters by completion flag.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	completed, err := getCompletedFilter(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	tasks, err := h.tasks.List(r.Context(), completed)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list tasks")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// Create handles POST /task requests
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req TaskRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	id, err := h.tasks.Create(r.Context(), req.toPatch())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create task")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).
		Debug("task created", slog.String("task_id", id.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, CreatedResponse{ID: id})
}

// Get handles GET /task/{id} requests
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := h.tasks.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// Replace handles PUT /task/{id} requests
// Fields absent from the body are reset to their defaults.
func (h *TaskHandler) Replace(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req TaskRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	if err := h.tasks.Replace(r.Context(), id, req.toPatch()); err != nil {
		HandleAPIError(w, r, err, "Failed to replace task")
		return
	}

	shared.RespondNoContent(w)
}

// Alter handles PATCH /task/{id} requests
func (h *TaskHandler) Alter(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req TaskPatchRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	if err := h.tasks.Alter(r.Context(), id, req.toPatch()); err != nil {
		HandleAPIError(w, r, err, "Failed to update task")
		return
	}

	shared.RespondNoContent(w)
}

// Delete handles DELETE /task/{id} requests
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.tasks.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete task")
		return
	}

	shared.RespondNoContent(w)
}

// DeleteAll handles DELETE /task requests
func (h *TaskHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	if err := h.tasks.DeleteAll(r.Context()); err != nil {
		HandleAPIError(w, r, err, "Failed to delete tasks")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Info("all tasks deleted via api")
	shared.RespondNoContent(w)
}
