package models

import "time"

type Status string
type Priority string

const StatusPending Status = "pending"
const StatusInProgress Status = "in_progress"
const StatusCompleted Status = "completed"

// StatusOverdue is a derived display status, never stored: a task
// whose due day has passed and which is not completed presents as
// overdue while its persisted status stays untouched.
const StatusOverdue Status = "overdue"

const PriorityLow Priority = "low"
const PriorityMedium Priority = "medium"
const PriorityHigh Priority = "high"

// Storable reports whether s is a status that may be written back.
func (s Status) Storable() bool {
	return s == StatusPending || s == StatusInProgress || s == StatusCompleted
}

func (p Priority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

const DayLayout = "2006-01-02"

// DayOf truncates an instant to its calendar day key.
func DayOf(t time.Time) string {
	return t.Format(DayLayout)
}

type TimeLog struct {
	Date    string  `json:"date"`
	Minutes float64 `json:"minutes"`
	UserID  string  `json:"userId"`
}

type LoginTime struct {
	UserID    string    `json:"userId"`
	Timestamp time.Time `json:"timestamp"`
}

type Task struct {
	ID                  string
	Title               string
	Description         string
	DueDate             time.Time
	StartDate           time.Time
	ExpectedMinutes     int
	AssignedUserIDs     []string
	AssignedByID        string
	ReferenceContactIDs []string
	Status              Status
	Priority            Priority
	IsPrivate           bool
	Links               string
	RepeatDate          string
	TimeLogs            []TimeLog
	LoginTimes          []LoginTime
	CreatedByEmail      string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// EffectiveStatus is the display status: overdue when the due day is
// strictly before now's day and the task is not completed, the stored
// status otherwise.
func (t *Task) EffectiveStatus(now time.Time) Status {
	if t.Status == StatusCompleted || t.DueDate.IsZero() {
		return t.Status
	}
	if DayOf(t.DueDate) < DayOf(now) {
		return StatusOverdue
	}
	return t.Status
}

// AssignedTo reports whether the user id appears in the assignee set.
func (t *Task) AssignedTo(userID string) bool {
	for _, id := range t.AssignedUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// Clone returns a copy with its own slices, so callers can stage
// mutations without touching the store's snapshot.
func (t *Task) Clone() *Task {
	c := *t
	c.AssignedUserIDs = append([]string(nil), t.AssignedUserIDs...)
	c.ReferenceContactIDs = append([]string(nil), t.ReferenceContactIDs...)
	c.TimeLogs = append([]TimeLog(nil), t.TimeLogs...)
	c.LoginTimes = append([]LoginTime(nil), t.LoginTimes...)
	return &c
}
