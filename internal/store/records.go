package store

import (
	"time"

	"taskflow/internal/models"
	"taskflow/internal/refcodec"
)

// Record types mirror the backing store's document shapes: flat fields,
// camelCase keys, multi-references as single comma-joined strings. The
// codec is applied here and nowhere above this layer.

type userRecord struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type contactRecord struct {
	Name              string   `json:"name"`
	Email             string   `json:"email"`
	Phone             string   `json:"phone"`
	Address           string   `json:"address"`
	CompanyName       string   `json:"company_name"`
	DateOfBirth       string   `json:"date_of_birth"`
	DateOfAnniversary string   `json:"date_of_anniversary"`
	Categories        []string `json:"categories,omitempty"`
	// Category is the legacy singular field; upgraded to a one-element
	// Categories on read.
	Category  string `json:"category,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

type timeLogRecord struct {
	Date    string  `json:"date"`
	Minutes float64 `json:"minutes"`
	UserID  string  `json:"userId"`
}

type loginTimeRecord struct {
	UserID    string `json:"userId"`
	Timestamp string `json:"timestamp"`
}

type taskRecord struct {
	Title              string            `json:"title"`
	Description        string            `json:"description"`
	DueDate            string            `json:"dueDate"`
	StartDate          string            `json:"startDate"`
	ExpectedMinutes    int               `json:"expectedMinutes"`
	AssignedUserID     string            `json:"assignedUserId"`
	AssignedByID       string            `json:"assignedById"`
	ReferenceContactID string            `json:"referenceContactId"`
	Status             string            `json:"status"`
	Priority           string            `json:"priority"`
	IsPrivate          bool              `json:"isPrivate"`
	Links              string            `json:"links"`
	RepeatDate         string            `json:"repeatDate"`
	TimeLogs           []timeLogRecord   `json:"timeLogs"`
	LoginTimes         []loginTimeRecord `json:"loginTimes"`
	CreatedByEmail     string            `json:"createdByEmail"`
	CreatedAt          string            `json:"createdAt"`
	UpdatedAt          string            `json:"updatedAt"`
}

type commentRecord struct {
	TaskID    string `json:"taskId"`
	UserID    string `json:"userId"`
	Comment   string `json:"comment"`
	CreatedAt string `json:"createdAt"`
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02",
}

func parseTime(s string) time.Time {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func (r userRecord) toModel(id string) models.User {
	return models.User{ID: id, Name: r.Name, Email: r.Email, Phone: r.Phone}
}

func (r contactRecord) toModel(id string) models.Contact {
	categories := r.Categories
	if len(categories) == 0 && r.Category != "" {
		categories = []string{r.Category}
	}
	return models.Contact{
		ID:                id,
		Name:              r.Name,
		Email:             r.Email,
		Phone:             r.Phone,
		Address:           r.Address,
		CompanyName:       r.CompanyName,
		DateOfBirth:       r.DateOfBirth,
		DateOfAnniversary: r.DateOfAnniversary,
		Categories:        categories,
		CreatedAt:         parseTime(r.CreatedAt),
	}
}

func contactToRecord(c models.Contact) contactRecord {
	return contactRecord{
		Name:              c.Name,
		Email:             c.Email,
		Phone:             c.Phone,
		Address:           c.Address,
		CompanyName:       c.CompanyName,
		DateOfBirth:       c.DateOfBirth,
		DateOfAnniversary: c.DateOfAnniversary,
		Categories:        c.Categories,
		CreatedAt:         formatTime(c.CreatedAt),
	}
}

// toModel applies the defaulting rules for absent optional fields:
// status pending, priority medium, empty log slices and so on.
func (r taskRecord) toModel(id string) *models.Task {
	status := models.Status(r.Status)
	if !status.Storable() {
		status = models.StatusPending
	}
	priority := models.Priority(r.Priority)
	if !priority.Valid() {
		priority = models.PriorityMedium
	}

	t := &models.Task{
		ID:                  id,
		Title:               r.Title,
		Description:         r.Description,
		DueDate:             parseTime(r.DueDate),
		StartDate:           parseTime(r.StartDate),
		ExpectedMinutes:     r.ExpectedMinutes,
		AssignedUserIDs:     refcodec.Decode(r.AssignedUserID),
		AssignedByID:        r.AssignedByID,
		ReferenceContactIDs: refcodec.Decode(r.ReferenceContactID),
		Status:              status,
		Priority:            priority,
		IsPrivate:           r.IsPrivate,
		Links:               r.Links,
		RepeatDate:          r.RepeatDate,
		TimeLogs:            make([]models.TimeLog, 0, len(r.TimeLogs)),
		LoginTimes:          make([]models.LoginTime, 0, len(r.LoginTimes)),
		CreatedByEmail:      r.CreatedByEmail,
		CreatedAt:           parseTime(r.CreatedAt),
		UpdatedAt:           parseTime(r.UpdatedAt),
	}
	if t.ExpectedMinutes < 0 {
		t.ExpectedMinutes = 0
	}
	for _, l := range r.TimeLogs {
		t.TimeLogs = append(t.TimeLogs, models.TimeLog{Date: l.Date, Minutes: l.Minutes, UserID: l.UserID})
	}
	for _, l := range r.LoginTimes {
		t.LoginTimes = append(t.LoginTimes, models.LoginTime{UserID: l.UserID, Timestamp: parseTime(l.Timestamp)})
	}
	return t
}

func taskToRecord(t *models.Task) taskRecord {
	r := taskRecord{
		Title:              t.Title,
		Description:        t.Description,
		DueDate:            formatTime(t.DueDate),
		StartDate:          formatTime(t.StartDate),
		ExpectedMinutes:    t.ExpectedMinutes,
		AssignedUserID:     refcodec.Encode(t.AssignedUserIDs),
		AssignedByID:       t.AssignedByID,
		ReferenceContactID: refcodec.Encode(t.ReferenceContactIDs),
		Status:             string(t.Status),
		Priority:           string(t.Priority),
		IsPrivate:          t.IsPrivate,
		Links:              t.Links,
		RepeatDate:         t.RepeatDate,
		TimeLogs:           make([]timeLogRecord, 0, len(t.TimeLogs)),
		LoginTimes:         make([]loginTimeRecord, 0, len(t.LoginTimes)),
		CreatedByEmail:     t.CreatedByEmail,
		CreatedAt:          formatTime(t.CreatedAt),
		UpdatedAt:          formatTime(t.UpdatedAt),
	}
	for _, l := range t.TimeLogs {
		r.TimeLogs = append(r.TimeLogs, timeLogRecord{Date: l.Date, Minutes: l.Minutes, UserID: l.UserID})
	}
	for _, l := range t.LoginTimes {
		r.LoginTimes = append(r.LoginTimes, loginTimeRecord{UserID: l.UserID, Timestamp: formatTime(l.Timestamp)})
	}
	return r
}

func (r commentRecord) toModel(id string) models.Comment {
	return models.Comment{
		ID:        id,
		TaskID:    r.TaskID,
		UserID:    r.UserID,
		Comment:   r.Comment,
		CreatedAt: parseTime(r.CreatedAt),
	}
}

func commentToRecord(c models.Comment) commentRecord {
	return commentRecord{
		TaskID:    c.TaskID,
		UserID:    c.UserID,
		Comment:   c.Comment,
		CreatedAt: formatTime(c.CreatedAt),
	}
}
