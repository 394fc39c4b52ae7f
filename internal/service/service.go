// Package service is the shared task lifecycle core: one
// implementation of the visibility, status, time-log and comment rules,
// consumed by thin presentation adapters. Every operation takes the
// acting viewer explicitly; the core reads no ambient session state.
package service

import (
	"context"

	"taskflow/internal/logger"
	"taskflow/internal/models"
	"taskflow/internal/refcodec"
	"taskflow/internal/store"

	"go.uber.org/zap"
)

type Service struct {
	store *store.Store
}

func New(st *store.Store) *Service {
	return &Service{store: st}
}

// Reload rebuilds the session snapshot from the backing store,
// including the retention sweep.
func (s *Service) Reload(ctx context.Context) error {
	return s.store.Load(ctx)
}

// requireActor resolves the viewer against the user collection. An
// unknown actor blocks every mutation; nothing is partially written.
func (s *Service) requireActor(v models.Viewer) (models.User, *BusinessError) {
	if v.UserID == "" {
		return models.User{}, NewUnauthenticated()
	}
	u, ok := s.store.User(v.UserID)
	if !ok {
		logger.Warn("Service: unknown actor", zap.String("user_id", v.UserID))
		return models.User{}, NewUnauthenticated()
	}
	return u, nil
}

// Visible is the visibility rule: private tasks belong to their
// creator's email alone; everything else is visible to its assignees.
func Visible(t *models.Task, v models.Viewer) bool {
	if t.IsPrivate {
		return t.CreatedByEmail == v.Email
	}
	return t.AssignedTo(v.UserID)
}

// VisibleTasks returns the tasks the viewer may see, in load order.
// The filter is evaluated per call, not reactively.
func (s *Service) VisibleTasks(v models.Viewer) []*models.Task {
	var visible []*models.Task
	for _, t := range s.store.Tasks() {
		if Visible(t, v) {
			visible = append(visible, t)
		}
	}
	return visible
}

// TasksByDueDay groups the viewer's visible tasks by due calendar day,
// for the calendar adapter. Tasks without a due date are omitted.
func (s *Service) TasksByDueDay(v models.Viewer) map[string][]*models.Task {
	byDay := make(map[string][]*models.Task)
	for _, t := range s.VisibleTasks(v) {
		if t.DueDate.IsZero() {
			continue
		}
		day := models.DayOf(t.DueDate)
		byDay[day] = append(byDay[day], t)
	}
	return byDay
}

// Task returns the task by id, visible or not; presentation adapters
// apply Visible before exposing it.
func (s *Service) Task(id string) (*models.Task, error) {
	t, err := s.store.Task(id)
	if err != nil {
		return nil, NewNotFound("task", id)
	}
	return t, nil
}

func (s *Service) Users() []models.User {
	return s.store.Users()
}

func (s *Service) Contacts() []models.Contact {
	return s.store.Contacts()
}

// Directory resolves identity references to display names and phones.
func (s *Service) Directory() *refcodec.Directory {
	return s.store.Directory()
}
