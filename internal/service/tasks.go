package service

import (
	"context"
	"errors"
	"time"

	"taskflow/internal/logger"
	"taskflow/internal/models"
	"taskflow/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TaskInput carries the caller-editable task fields for create and
// edit.
type TaskInput struct {
	Title               string
	Description         string
	DueDate             time.Time
	StartDate           time.Time
	ExpectedMinutes     int
	AssignedUserIDs     []string
	AssignedByID        string
	ReferenceContactIDs []string
	Status              models.Status
	Priority            models.Priority
	IsPrivate           bool
	Links               string
	RepeatDate          string
}

func validateTaskInput(in TaskInput, now time.Time) *BusinessError {
	if in.Title == "" || in.DueDate.IsZero() || len(in.AssignedUserIDs) == 0 {
		return NewValidationError("task", "title, due date and at least one assigned user are required")
	}
	today := models.DayOf(now)
	if models.DayOf(in.DueDate) < today {
		return NewValidationError("dueDate", "cannot be older than today")
	}
	if !in.StartDate.IsZero() && models.DayOf(in.StartDate) < today {
		return NewValidationError("startDate", "cannot be older than today")
	}
	if in.Status != "" && !in.Status.Storable() {
		return NewValidationError("status", "must be pending, in_progress or completed")
	}
	if in.Priority != "" && !in.Priority.Valid() {
		return NewValidationError("priority", "must be low, medium or high")
	}
	if in.ExpectedMinutes < 0 {
		return NewValidationError("expectedMinutes", "must not be negative")
	}
	return nil
}

func applyInput(t *models.Task, in TaskInput) {
	t.Title = in.Title
	t.Description = in.Description
	t.DueDate = in.DueDate
	t.StartDate = in.StartDate
	if t.StartDate.IsZero() {
		t.StartDate = in.DueDate
	}
	t.ExpectedMinutes = in.ExpectedMinutes
	t.AssignedUserIDs = append([]string(nil), in.AssignedUserIDs...)
	t.AssignedByID = in.AssignedByID
	t.ReferenceContactIDs = append([]string(nil), in.ReferenceContactIDs...)
	t.Status = in.Status
	if t.Status == "" {
		t.Status = models.StatusPending
	}
	t.Priority = in.Priority
	if t.Priority == "" {
		t.Priority = models.PriorityMedium
	}
	t.IsPrivate = in.IsPrivate
	t.Links = in.Links
	t.RepeatDate = in.RepeatDate
}

// CreateTask validates the input and persists a new task stamped with
// the creator's email.
func (s *Service) CreateTask(ctx context.Context, v models.Viewer, in TaskInput) (*models.Task, error) {
	if _, berr := s.requireActor(v); berr != nil {
		return nil, berr
	}
	now := time.Now()
	if berr := validateTaskInput(in, now); berr != nil {
		return nil, berr
	}

	task := &models.Task{
		ID:             uuid.NewString(),
		CreatedByEmail: v.Email,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	applyInput(task, in)

	if err := s.store.SaveTask(ctx, task); err != nil {
		logger.Error("Service: create task failed", err)
		return nil, NewPersistenceError("create task", err)
	}

	logger.Info("Service: task created",
		zap.String("task_id", task.ID),
		zap.String("created_by", v.Email))
	return task, nil
}

// UpdateTask replaces the editable fields of an existing task. The
// append-only ledgers and provenance fields are untouched.
func (s *Service) UpdateTask(ctx context.Context, v models.Viewer, taskID string, in TaskInput) (*models.Task, error) {
	if _, berr := s.requireActor(v); berr != nil {
		return nil, berr
	}
	now := time.Now()
	if berr := validateTaskInput(in, now); berr != nil {
		return nil, berr
	}
	task, err := s.store.Task(taskID)
	if err != nil {
		return nil, NewNotFound("task", taskID)
	}

	applyInput(task, in)
	task.UpdatedAt = now

	if err := s.store.SaveTask(ctx, task); err != nil {
		logger.Error("Service: update task failed", err, zap.String("task_id", taskID))
		return nil, NewPersistenceError("update task", err)
	}
	return task, nil
}

// UpdateAssignment replaces the assignee and contact reference sets.
func (s *Service) UpdateAssignment(ctx context.Context, v models.Viewer, taskID string, userIDs, contactIDs []string) (*models.Task, error) {
	if _, berr := s.requireActor(v); berr != nil {
		return nil, berr
	}
	if len(userIDs) == 0 {
		return nil, NewValidationError("assignedUserIds", "at least one assigned user is required")
	}
	task, err := s.store.Task(taskID)
	if err != nil {
		return nil, NewNotFound("task", taskID)
	}

	task.AssignedUserIDs = append([]string(nil), userIDs...)
	task.ReferenceContactIDs = append([]string(nil), contactIDs...)
	task.UpdatedAt = time.Now()

	if err := s.store.SaveTask(ctx, task); err != nil {
		logger.Error("Service: update assignment failed", err, zap.String("task_id", taskID))
		return nil, NewPersistenceError("update assignment", err)
	}
	return task, nil
}

// DeleteTask removes a task outright (the admin surface's explicit
// delete, distinct from the retention sweep).
func (s *Service) DeleteTask(ctx context.Context, v models.Viewer, taskID string) error {
	if _, berr := s.requireActor(v); berr != nil {
		return berr
	}
	if err := s.store.DeleteTask(ctx, taskID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return NewNotFound("task", taskID)
		}
		logger.Error("Service: delete task failed", err, zap.String("task_id", taskID))
		return NewPersistenceError("delete task", err)
	}
	logger.Info("Service: task deleted", zap.String("task_id", taskID))
	return nil
}
