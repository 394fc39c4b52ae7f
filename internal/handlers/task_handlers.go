package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"taskflow/internal/handlers/dto"
	"taskflow/internal/logger"
	"taskflow/internal/models"
	"taskflow/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type TaskHandler struct {
	Service Service
}

func NewTaskHandler(svc Service) TaskHandler {
	return TaskHandler{Service: svc}
}

func (h *TaskHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP: Health check")

	healthCheck(w)
}

// GetTasks returns every task the caller may see.
func (h *TaskHandler) GetTasks(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	viewer := viewerFrom(r)
	tasks := h.Service.VisibleTasks(viewer)

	logger.Info("HTTP_OUT: tasks listed",
		zap.Int("count", len(tasks)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK,
		toPayload("tasks", dto.FromTaskList(tasks, h.Service.Directory(), time.Now())))
}

// GetTasksByDay returns the caller's visible tasks grouped by due day,
// keyed "2006-01-02".
func (h *TaskHandler) GetTasksByDay(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	viewer := viewerFrom(r)
	now := time.Now()
	dir := h.Service.Directory()

	grouped := make(map[string][]dto.TaskResponse)
	for day, tasks := range h.Service.TasksByDueDay(viewer) {
		grouped[day] = dto.FromTaskList(tasks, dir, now)
	}

	logger.Info("HTTP_OUT: task board built",
		zap.Int("days", len(grouped)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, toPayload("days", grouped))
}

func (h *TaskHandler) GetTaskByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id := chi.URLParam(r, "id")
	if id == "" {
		logger.Warn("HTTP: missing task id",
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "task id must not be empty")
		return
	}

	viewer := viewerFrom(r)
	task, err := h.Service.Task(id)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: service error", err,
			zap.String("operation", "get_task"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// a task the caller may not see is indistinguishable from a
	// missing one
	if !service.Visible(task, viewer) {
		logger.Warn("HTTP: task not visible to caller",
			zap.String("task_id", id),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusNotFound, "task not found")
		return
	}

	logger.Info("HTTP_OUT: task fetched",
		zap.String("task_id", id),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK,
		toPayload("task", dto.FromTask(task, h.Service.Directory(), time.Now())))
}

func (h *TaskHandler) PostTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	if !checkContentType(r, "application/json") {
		logger.Warn("HTTP: wrong content type",
			zap.String("expected", "application/json"),
			zap.String("received", r.Header.Get("Content-Type")),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var request dto.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: failed to read JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	task, err := h.Service.CreateTask(r.Context(), viewerFrom(r), taskInputFrom(request))
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: service error", err,
			zap.String("operation", "create_task"),
			zap.String("client_ip", r.RemoteAddr),
			zap.Duration("ms", time.Since(start)))
		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("HTTP_OUT: task created",
		zap.String("task_id", task.ID),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	responseWithJSON(w, http.StatusCreated,
		toPayload("task", dto.FromTask(task, h.Service.Directory(), time.Now())))
}

func (h *TaskHandler) UpdateTaskByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id := chi.URLParam(r, "id")
	if id == "" {
		logger.Warn("HTTP: missing task id",
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "task id must not be empty")
		return
	}

	var request dto.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: failed to read JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	task, err := h.Service.UpdateTask(r.Context(), viewerFrom(r), id, taskInputFrom(request))
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: service error", err,
			zap.String("operation", "update_task"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("HTTP_OUT: task updated",
		zap.String("task_id", id),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK,
		toPayload("task", dto.FromTask(task, h.Service.Directory(), time.Now())))
}

func (h *TaskHandler) UpdateAssignment(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id := chi.URLParam(r, "id")

	var request dto.UpdateAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: failed to read JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	task, err := h.Service.UpdateAssignment(r.Context(), viewerFrom(r), id,
		request.AssignedUserIDs, request.ReferenceContactIDs)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: service error", err,
			zap.String("operation", "update_assignment"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("HTTP_OUT: assignment updated",
		zap.String("task_id", id),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK,
		toPayload("task", dto.FromTask(task, h.Service.Directory(), time.Now())))
}

func (h *TaskHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id := chi.URLParam(r, "id")

	var request dto.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: failed to read JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	task, err := h.Service.UpdateStatus(r.Context(), viewerFrom(r), id, models.Status(request.Status))
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: service error", err,
			zap.String("operation", "update_status"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("HTTP_OUT: status updated",
		zap.String("task_id", id),
		zap.String("status", request.Status),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK,
		toPayload("task", dto.FromTask(task, h.Service.Directory(), time.Now())))
}

func (h *TaskHandler) DeleteTaskByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id := chi.URLParam(r, "id")
	if id == "" {
		logger.Warn("HTTP: missing task id",
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "task id must not be empty")
		return
	}

	if err := h.Service.DeleteTask(r.Context(), viewerFrom(r), id); err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: service error", err,
			zap.String("operation", "delete_task"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("HTTP_OUT: task deleted",
		zap.String("task_id", id),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusNoContent))

	w.WriteHeader(http.StatusNoContent)
}

func (h *TaskHandler) LogTime(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id := chi.URLParam(r, "id")

	var request dto.LogTimeRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: failed to read JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	task, err := h.Service.LogTime(r.Context(), viewerFrom(r), id, request.Minutes, request.Date)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: service error", err,
			zap.String("operation", "log_time"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("HTTP_OUT: time logged",
		zap.String("task_id", id),
		zap.Float64("minutes", request.Minutes),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	responseWithJSON(w, http.StatusCreated,
		toPayload("task", dto.FromTask(task, h.Service.Directory(), time.Now())))
}

func (h *TaskHandler) GetComments(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id := chi.URLParam(r, "id")
	comments := h.Service.ListComments(id)

	logger.Info("HTTP_OUT: comments listed",
		zap.String("task_id", id),
		zap.Int("count", len(comments)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK,
		toPayload("comments", dto.FromCommentList(comments, h.Service.Directory())))
}

func (h *TaskHandler) PostComment(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id := chi.URLParam(r, "id")

	var request dto.AddCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: failed to read JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	comment, err := h.Service.AddComment(r.Context(), viewerFrom(r), id, request.Comment)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: service error", err,
			zap.String("operation", "add_comment"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("HTTP_OUT: comment added",
		zap.String("task_id", id),
		zap.String("comment_id", comment.ID),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	responseWithJSON(w, http.StatusCreated,
		toPayload("comment", dto.FromComment(*comment, h.Service.Directory())))
}

func taskInputFrom(request dto.CreateTaskRequest) service.TaskInput {
	return service.TaskInput{
		Title:               request.Title,
		Description:         request.Description,
		DueDate:             request.DueDate,
		StartDate:           request.StartDate,
		ExpectedMinutes:     request.ExpectedMinutes,
		AssignedUserIDs:     request.AssignedUserIDs,
		AssignedByID:        request.AssignedByID,
		ReferenceContactIDs: request.ReferenceContactIDs,
		Status:              models.Status(request.Status),
		Priority:            models.Priority(request.Priority),
		IsPrivate:           request.IsPrivate,
		Links:               request.Links,
		RepeatDate:          request.RepeatDate,
	}
}
