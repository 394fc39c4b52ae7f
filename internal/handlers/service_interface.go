package handlers

import (
	"context"

	"taskflow/internal/models"
	"taskflow/internal/refcodec"
	"taskflow/internal/service"
)

// Service is what the HTTP adapter needs from the core. Every mutating
// call takes the viewer explicitly.
type Service interface {
	VisibleTasks(v models.Viewer) []*models.Task
	TasksByDueDay(v models.Viewer) map[string][]*models.Task
	Task(id string) (*models.Task, error)
	CreateTask(ctx context.Context, v models.Viewer, in service.TaskInput) (*models.Task, error)
	UpdateTask(ctx context.Context, v models.Viewer, taskID string, in service.TaskInput) (*models.Task, error)
	UpdateAssignment(ctx context.Context, v models.Viewer, taskID string, userIDs, contactIDs []string) (*models.Task, error)
	UpdateStatus(ctx context.Context, v models.Viewer, taskID string, status models.Status) (*models.Task, error)
	DeleteTask(ctx context.Context, v models.Viewer, taskID string) error
	LogTime(ctx context.Context, v models.Viewer, taskID string, minutes float64, day string) (*models.Task, error)
	AddComment(ctx context.Context, v models.Viewer, taskID, text string) (*models.Comment, error)
	ListComments(taskID string) []models.Comment
	CreateContact(ctx context.Context, v models.Viewer, in service.ContactInput) (*models.Contact, error)
	Users() []models.User
	Contacts() []models.Contact
	Categories() []string
	Directory() *refcodec.Directory
}
