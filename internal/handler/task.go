package handler

import (
	"net/http"

	"github.com/msomdec/taskboard/internal/service"
)

// TaskHandler serves the per-user task CRUD endpoints. Every route expects
// RequireAuth to have put the caller's identity on the context.
type TaskHandler struct {
	tasks *service.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(tasks *service.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// HandleList returns the caller's tasks, newest first.
// GET /api/tasks
func (h *TaskHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	tasks, err := h.tasks.List(r.Context(), identity.UserID)
	if err != nil {
		writeServiceError(w, "list tasks", err)
		return
	}

	writeJSON(w, http.StatusOK, toTaskDTOs(tasks))
}

// HandleCreate creates a task owned by the caller.
// POST /api/tasks
// Request:  {"title":"...","description":"..."}
// Response: 201 with the task
func (h *TaskHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req createTaskRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	task, err := h.tasks.Create(r.Context(), identity.UserID, req.Title, req.Description)
	if err != nil {
		writeServiceError(w, "create task", err)
		return
	}

	writeJSON(w, http.StatusCreated, toTaskDTO(task))
}

// HandleGet returns one of the caller's tasks.
// GET /api/tasks/{id}
func (h *TaskHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	task, err := h.tasks.Get(r.Context(), identity.UserID, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, "get task", err)
		return
	}

	writeJSON(w, http.StatusOK, toTaskDTO(task))
}

// HandleUpdate applies a partial update to one of the caller's tasks.
// PUT /api/tasks/{id}
// Request:  any of {"title":"...","description":"...","completed":true}
func (h *TaskHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req updateTaskRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	task, err := h.tasks.Update(r.Context(), identity.UserID, r.PathValue("id"), service.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		writeServiceError(w, "update task", err)
		return
	}

	writeJSON(w, http.StatusOK, toTaskDTO(task))
}

// HandleDelete removes one of the caller's tasks.
// DELETE /api/tasks/{id}
// Response: 204 No Content
func (h *TaskHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	if err := h.tasks.Delete(r.Context(), identity.UserID, r.PathValue("id")); err != nil {
		writeServiceError(w, "delete task", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func requireIdentity(w http.ResponseWriter, r *http.Request) (Identity, bool) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
	}
	return identity, ok
}
