// Package store holds the authoritative in-memory collection of tasks,
// users, contacts and comments for the session, synchronized with the
// backing document store. Writes are confirmed-then-applied: the
// snapshot only changes after the document store accepted the write.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"taskflow/internal/docstore"
	"taskflow/internal/logger"
	"taskflow/internal/models"
	"taskflow/internal/refcodec"

	"go.uber.org/zap"
)

var ErrNotFound = errors.New("not found")

const DefaultRetention = 30 * 24 * time.Hour

type Store struct {
	db        docstore.Store
	retention time.Duration

	mtx          sync.RWMutex
	tasks        map[string]*models.Task
	taskOrder    []string
	users        map[string]models.User
	userOrder    []string
	contacts     map[string]models.Contact
	contactOrder []string
	comments     map[string][]models.Comment
}

func New(db docstore.Store, retention time.Duration) *Store {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &Store{
		db:        db,
		retention: retention,
		tasks:     make(map[string]*models.Task),
		users:     make(map[string]models.User),
		contacts:  make(map[string]models.Contact),
		comments:  make(map[string][]models.Comment),
	}
}

// Load reads every collection and rebuilds the snapshot. Completed
// tasks not updated within the retention window are purged from the
// backing store during the sweep; a failed purge is logged and the
// task kept for the next load.
func (s *Store) Load(ctx context.Context) error {
	userDocs, err := s.db.LoadAll(ctx, docstore.CollectionUsers)
	if err != nil {
		return fmt.Errorf("load users: %w", err)
	}
	contactDocs, err := s.db.LoadAll(ctx, docstore.CollectionContacts)
	if err != nil {
		return fmt.Errorf("load contacts: %w", err)
	}
	taskDocs, err := s.db.LoadAll(ctx, docstore.CollectionTasks)
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}
	commentDocs, err := s.db.LoadAll(ctx, docstore.CollectionComments)
	if err != nil {
		return fmt.Errorf("load comments: %w", err)
	}

	users := make(map[string]models.User, len(userDocs))
	userOrder := make([]string, 0, len(userDocs))
	for _, doc := range userDocs {
		var r userRecord
		if err := json.Unmarshal(doc.Data, &r); err != nil {
			logger.Warn("Store: skipping malformed user document",
				zap.String("id", doc.ID), zap.Error(err))
			continue
		}
		users[doc.ID] = r.toModel(doc.ID)
		userOrder = append(userOrder, doc.ID)
	}

	contacts := make(map[string]models.Contact, len(contactDocs))
	contactOrder := make([]string, 0, len(contactDocs))
	for _, doc := range contactDocs {
		var r contactRecord
		if err := json.Unmarshal(doc.Data, &r); err != nil {
			logger.Warn("Store: skipping malformed contact document",
				zap.String("id", doc.ID), zap.Error(err))
			continue
		}
		contacts[doc.ID] = r.toModel(doc.ID)
		contactOrder = append(contactOrder, doc.ID)
	}

	now := time.Now()
	tasks := make(map[string]*models.Task, len(taskDocs))
	taskOrder := make([]string, 0, len(taskDocs))
	purged := 0
	for _, doc := range taskDocs {
		var r taskRecord
		if err := json.Unmarshal(doc.Data, &r); err != nil {
			logger.Warn("Store: skipping malformed task document",
				zap.String("id", doc.ID), zap.Error(err))
			continue
		}
		t := r.toModel(doc.ID)

		if s.expired(t, now) {
			if err := s.db.Delete(ctx, docstore.CollectionTasks, t.ID); err != nil {
				logger.Warn("Store: purge failed, keeping task until next load",
					zap.String("task_id", t.ID), zap.Error(err))
			} else {
				purged++
				continue
			}
		}

		tasks[t.ID] = t
		taskOrder = append(taskOrder, t.ID)
	}

	comments := make(map[string][]models.Comment)
	for _, doc := range commentDocs {
		var r commentRecord
		if err := json.Unmarshal(doc.Data, &r); err != nil {
			logger.Warn("Store: skipping malformed comment document",
				zap.String("id", doc.ID), zap.Error(err))
			continue
		}
		c := r.toModel(doc.ID)
		comments[c.TaskID] = append(comments[c.TaskID], c)
	}
	for taskID := range comments {
		list := comments[taskID]
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].CreatedAt.Before(list[j].CreatedAt)
		})
	}

	s.mtx.Lock()
	s.users = users
	s.userOrder = userOrder
	s.contacts = contacts
	s.contactOrder = contactOrder
	s.tasks = tasks
	s.taskOrder = taskOrder
	s.comments = comments
	s.mtx.Unlock()

	logger.Info("Store: loaded",
		zap.Int("tasks", len(tasks)),
		zap.Int("users", len(users)),
		zap.Int("contacts", len(contacts)),
		zap.Int("purged", purged))
	return nil
}

func (s *Store) expired(t *models.Task, now time.Time) bool {
	return t.Status == models.StatusCompleted &&
		!t.UpdatedAt.IsZero() &&
		now.Sub(t.UpdatedAt) > s.retention
}

// Purge re-runs the retention sweep over the current snapshot without
// a full reload. Each deletion is independent: a failure is logged and
// skipped, the rest of the sweep continues.
func (s *Store) Purge(ctx context.Context) (int, error) {
	now := time.Now()

	s.mtx.RLock()
	var candidates []string
	for _, id := range s.taskOrder {
		if s.expired(s.tasks[id], now) {
			candidates = append(candidates, id)
		}
	}
	s.mtx.RUnlock()

	purged := 0
	for _, id := range candidates {
		if err := s.db.Delete(ctx, docstore.CollectionTasks, id); err != nil {
			logger.Warn("Store: purge failed, skipping task",
				zap.String("task_id", id), zap.Error(err))
			continue
		}
		s.mtx.Lock()
		s.removeTaskLocked(id)
		s.mtx.Unlock()
		purged++
	}
	return purged, nil
}

func (s *Store) removeTaskLocked(id string) {
	delete(s.tasks, id)
	for i, existing := range s.taskOrder {
		if existing == id {
			s.taskOrder = append(s.taskOrder[:i], s.taskOrder[i+1:]...)
			break
		}
	}
}

// Tasks returns clones of every task in load order.
func (s *Store) Tasks() []*models.Task {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	out := make([]*models.Task, 0, len(s.taskOrder))
	for _, id := range s.taskOrder {
		out = append(out, s.tasks[id].Clone())
	}
	return out
}

// Task returns a clone of the task, so callers can stage changes and
// commit them through SaveTask.
func (s *Store) Task(id string) (*models.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	t, ok := s.tasks[id]
	if !ok {
		return nil, ErrNotFound
	}
	return t.Clone(), nil
}

func (s *Store) Users() []models.User {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	out := make([]models.User, 0, len(s.userOrder))
	for _, id := range s.userOrder {
		out = append(out, s.users[id])
	}
	return out
}

func (s *Store) User(id string) (models.User, bool) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	u, ok := s.users[id]
	return u, ok
}

func (s *Store) UserByEmail(email string) (models.User, bool) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	for _, id := range s.userOrder {
		if s.users[id].Email == email {
			return s.users[id], true
		}
	}
	return models.User{}, false
}

func (s *Store) Contacts() []models.Contact {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	out := make([]models.Contact, 0, len(s.contactOrder))
	for _, id := range s.contactOrder {
		out = append(out, s.contacts[id])
	}
	return out
}

// Comments returns the comments for a task in ascending CreatedAt
// (insertion) order.
func (s *Store) Comments(taskID string) []models.Comment {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	return append([]models.Comment(nil), s.comments[taskID]...)
}

// Directory builds a resolver over the loaded users and contacts.
func (s *Store) Directory() *refcodec.Directory {
	return refcodec.NewDirectory(s.Users(), s.Contacts())
}

// SaveTask persists the task and, only on success, applies it to the
// snapshot. On failure the snapshot is untouched.
func (s *Store) SaveTask(ctx context.Context, t *models.Task) error {
	data, err := json.Marshal(taskToRecord(t))
	if err != nil {
		return fmt.Errorf("encode task %s: %w", t.ID, err)
	}
	if err := s.db.Put(ctx, docstore.CollectionTasks, t.ID, data); err != nil {
		return fmt.Errorf("save task %s: %w", t.ID, err)
	}

	s.mtx.Lock()
	if _, exists := s.tasks[t.ID]; !exists {
		s.taskOrder = append(s.taskOrder, t.ID)
	}
	s.tasks[t.ID] = t.Clone()
	s.mtx.Unlock()
	return nil
}

func (s *Store) DeleteTask(ctx context.Context, id string) error {
	s.mtx.RLock()
	_, ok := s.tasks[id]
	s.mtx.RUnlock()
	if !ok {
		return ErrNotFound
	}

	if err := s.db.Delete(ctx, docstore.CollectionTasks, id); err != nil {
		return fmt.Errorf("delete task %s: %w", id, err)
	}

	s.mtx.Lock()
	s.removeTaskLocked(id)
	s.mtx.Unlock()
	return nil
}

func (s *Store) SaveContact(ctx context.Context, c models.Contact) error {
	data, err := json.Marshal(contactToRecord(c))
	if err != nil {
		return fmt.Errorf("encode contact %s: %w", c.ID, err)
	}
	if err := s.db.Put(ctx, docstore.CollectionContacts, c.ID, data); err != nil {
		return fmt.Errorf("save contact %s: %w", c.ID, err)
	}

	s.mtx.Lock()
	if _, exists := s.contacts[c.ID]; !exists {
		s.contactOrder = append(s.contactOrder, c.ID)
	}
	s.contacts[c.ID] = c
	s.mtx.Unlock()
	return nil
}

func (s *Store) AppendComment(ctx context.Context, c models.Comment) error {
	data, err := json.Marshal(commentToRecord(c))
	if err != nil {
		return fmt.Errorf("encode comment %s: %w", c.ID, err)
	}
	if err := s.db.Put(ctx, docstore.CollectionComments, c.ID, data); err != nil {
		return fmt.Errorf("save comment %s: %w", c.ID, err)
	}

	s.mtx.Lock()
	s.comments[c.TaskID] = append(s.comments[c.TaskID], c)
	s.mtx.Unlock()
	return nil
}
