// Package api provides HTTP handlers for the API.
package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taskhub/taskhub-api/internal/api/shared"
	"github.com/taskhub/taskhub-api/internal/domain"
	"github.com/taskhub/taskhub-api/internal/notifier"
	"github.com/taskhub/taskhub-api/internal/platform/logger"
	"github.com/taskhub/taskhub-api/internal/service"
)

// TaskRequest represents the request body for creating or updating a task.
type TaskRequest struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"       validate:"required"`
	Description string    `json:"description" validate:"required"`
	DueDate     time.Time `json:"dueDate"`
}

// TaskResponse represents the response data for a task.
type TaskResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"dueDate"`
}

// MessageResponse is a minimal confirmation payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// TaskHandler handles task-related HTTP requests. Handlers are
// stateless per request; the service and notifier are long-lived
// injected dependencies.
type TaskHandler struct {
	taskService service.TaskService
	notifier    notifier.TaskNotifier
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(
	taskService service.TaskService,
	taskNotifier notifier.TaskNotifier,
	log *slog.Logger,
) *TaskHandler {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TaskHandler")
	}

	return &TaskHandler{
		taskService: taskService,
		notifier:    taskNotifier,
		logger:      log.With(slog.String("component", "task_handler")),
	}
}

// CreateTask handles POST /tasks requests.
//
// Responds 400 when the body is missing or title/description is empty,
// 422 when a task with the same normalized title exists, 500 when the
// store commit fails, and 200 with a confirmation on success. The
// created task is broadcast to all realtime subscribers.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req TaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Validation error", err)
		return
	}

	existing, err := h.taskService.FindByTitle(r.Context(), req.Title)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	if existing != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, "Task already exists")
		return
	}

	task := &domain.Task{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	}

	if err := h.taskService.Create(r.Context(), task); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	h.notifier.Broadcast(r.Context(), task)

	log.Debug("task created", slog.Int64("task_id", task.ID))
	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Successfully created"})
}

// ListTasks handles GET /tasks requests, returning the full collection.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.List(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	response := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		response = append(response, taskToResponse(task))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// UpdateTask handles PUT /tasks/{id} requests.
//
// Responds 400 on malformed input, empty title/description or a
// path/body id mismatch, 404 when the id is unknown, 500 when the store
// commit fails, and 204 on success. The updated task is broadcast to
// all realtime subscribers.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := parseTaskID(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID")
		return
	}

	var req TaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Validation error", err)
		return
	}

	if id != req.ID {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Task ID mismatch")
		return
	}

	exists, err := h.taskService.Exists(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	if !exists {
		shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
		return
	}

	task := &domain.Task{
		ID:          req.ID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	}

	if err := h.taskService.Update(r.Context(), task); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	h.notifier.Broadcast(r.Context(), task)

	log.Debug("task updated", slog.Int64("task_id", task.ID))
	w.WriteHeader(http.StatusNoContent)
}

// DeleteTask handles DELETE /tasks/{id} requests.
//
// Responds 400 on a malformed id, 404 when the id is unknown, 500 when
// the store commit fails, and 204 on success. Deletes are not
// broadcast.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := parseTaskID(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID")
		return
	}

	exists, err := h.taskService.Exists(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	if !exists {
		shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
		return
	}

	// Delete is by value: fetch the current task so a concurrently
	// modified row is not deleted out from under its writer.
	task, err := h.taskService.Get(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	if err := h.taskService.Delete(r.Context(), task); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("task deleted", slog.Int64("task_id", id))
	w.WriteHeader(http.StatusNoContent)
}

// parseTaskID extracts the numeric task id from the URL path.
func parseTaskID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}

// taskToResponse converts a domain.Task to a TaskResponse.
func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		DueDate:     task.DueDate,
	}
}
