package models

import "time"

// Comment lives in its own collection, associated to a task by TaskID.
// Comments are append-only: no edit or delete.
type Comment struct {
	ID        string
	TaskID    string
	UserID    string
	Comment   string
	CreatedAt time.Time
}
