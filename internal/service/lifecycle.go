package service

import (
	"context"
	"math"
	"strings"
	"time"

	"taskflow/internal/logger"
	"taskflow/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UpdateStatus moves a task to any of the three stored states. Every
// transition into in_progress appends a LoginTime for the actor, on
// repeat entries too. The derived overdue status is never accepted
// here.
func (s *Service) UpdateStatus(ctx context.Context, v models.Viewer, taskID string, status models.Status) (*models.Task, error) {
	if !status.Storable() {
		return nil, NewValidationError("status", "must be pending, in_progress or completed")
	}
	actor, berr := s.requireActor(v)
	if berr != nil {
		return nil, berr
	}
	task, err := s.store.Task(taskID)
	if err != nil {
		return nil, NewNotFound("task", taskID)
	}

	now := time.Now()
	task.Status = status
	if status == models.StatusInProgress {
		task.LoginTimes = append(task.LoginTimes, models.LoginTime{
			UserID:    actor.ID,
			Timestamp: now,
		})
	}
	task.UpdatedAt = now

	if err := s.store.SaveTask(ctx, task); err != nil {
		logger.Error("Service: status update failed", err, zap.String("task_id", taskID))
		return nil, NewPersistenceError("update task status", err)
	}

	logger.Info("Service: status updated",
		zap.String("task_id", taskID),
		zap.String("status", string(status)),
		zap.String("actor", actor.ID))
	return task, nil
}

// hasLogged is the single per-user-per-day predicate, used both to
// gate the action and to guard the mutation so the two can never
// disagree.
func hasLogged(t *models.Task, userID, day string) bool {
	for _, l := range t.TimeLogs {
		if l.UserID == userID && l.Date == day {
			return true
		}
	}
	return false
}

// HasLogged reports whether the user already logged time on the task
// for the given calendar day.
func (s *Service) HasLogged(taskID, userID, day string) bool {
	t, err := s.store.Task(taskID)
	if err != nil {
		return false
	}
	return hasLogged(t, userID, day)
}

// LogTime appends a time entry for the actor on the given calendar
// day. At most one entry per (user, day) per task; a second attempt is
// rejected and the ledger left unchanged.
func (s *Service) LogTime(ctx context.Context, v models.Viewer, taskID string, minutes float64, day string) (*models.Task, error) {
	if math.IsNaN(minutes) || math.IsInf(minutes, 0) || minutes <= 0 {
		return nil, NewValidationError("minutes", "must be a positive number")
	}
	if _, err := time.Parse(models.DayLayout, day); err != nil {
		return nil, NewValidationError("day", "must be a calendar day like 2006-01-02")
	}
	actor, berr := s.requireActor(v)
	if berr != nil {
		return nil, berr
	}
	task, err := s.store.Task(taskID)
	if err != nil {
		return nil, NewNotFound("task", taskID)
	}

	if hasLogged(task, actor.ID, day) {
		logger.Warn("Service: duplicate time log rejected",
			zap.String("task_id", taskID),
			zap.String("user_id", actor.ID),
			zap.String("day", day))
		return nil, NewDuplicateLog(taskID, actor.ID, day)
	}

	task.TimeLogs = append(task.TimeLogs, models.TimeLog{
		Date:    day,
		Minutes: minutes,
		UserID:  actor.ID,
	})
	task.UpdatedAt = time.Now()

	if err := s.store.SaveTask(ctx, task); err != nil {
		logger.Error("Service: time log failed", err, zap.String("task_id", taskID))
		return nil, NewPersistenceError("log time", err)
	}

	logger.Info("Service: time logged",
		zap.String("task_id", taskID),
		zap.String("user_id", actor.ID),
		zap.Float64("minutes", minutes))
	return task, nil
}

// AddComment appends a comment to the task's thread. Comments are
// immutable once written.
func (s *Service) AddComment(ctx context.Context, v models.Viewer, taskID, text string) (*models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, NewValidationError("comment", "must not be empty")
	}
	actor, berr := s.requireActor(v)
	if berr != nil {
		return nil, berr
	}
	if _, err := s.store.Task(taskID); err != nil {
		return nil, NewNotFound("task", taskID)
	}

	comment := models.Comment{
		ID:        uuid.NewString(),
		TaskID:    taskID,
		UserID:    actor.ID,
		Comment:   text,
		CreatedAt: time.Now(),
	}
	if err := s.store.AppendComment(ctx, comment); err != nil {
		logger.Error("Service: add comment failed", err, zap.String("task_id", taskID))
		return nil, NewPersistenceError("add comment", err)
	}

	return &comment, nil
}

// ListComments returns the task's comments, oldest first. That
// ascending order is the one order every surface uses.
func (s *Service) ListComments(taskID string) []models.Comment {
	return s.store.Comments(taskID)
}
