package dto

import (
	"time"

	"taskflow/internal/duedate"
	"taskflow/internal/models"
	"taskflow/internal/refcodec"
)

type CreateTaskRequest struct {
	Title               string    `json:"title"`
	Description         string    `json:"description"`
	DueDate             time.Time `json:"due_date"`
	StartDate           time.Time `json:"start_date"`
	ExpectedMinutes     int       `json:"expected_minutes"`
	AssignedUserIDs     []string  `json:"assigned_user_ids"`
	AssignedByID        string    `json:"assigned_by_id"`
	ReferenceContactIDs []string  `json:"reference_contact_ids"`
	Status              string    `json:"status"`
	Priority            string    `json:"priority"`
	IsPrivate           bool      `json:"is_private"`
	Links               string    `json:"links"`
	RepeatDate          string    `json:"repeat_date"`
}

type UpdateAssignmentRequest struct {
	AssignedUserIDs     []string `json:"assigned_user_ids"`
	ReferenceContactIDs []string `json:"reference_contact_ids"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type LogTimeRequest struct {
	Minutes float64 `json:"minutes"`
	Date    string  `json:"date"`
}

type AddCommentRequest struct {
	Comment string `json:"comment"`
}

type CreateContactRequest struct {
	Name              string   `json:"name"`
	Email             string   `json:"email"`
	Phone             string   `json:"phone"`
	Address           string   `json:"address"`
	CompanyName       string   `json:"company_name"`
	DateOfBirth       string   `json:"date_of_birth"`
	DateOfAnniversary string   `json:"date_of_anniversary"`
	Categories        []string `json:"categories"`
}

// TaskResponse is the enriched task view: the stored fields plus the
// derived display status, urgency bucket, the "overdue by" string and
// resolved assignee/contact names.
type TaskResponse struct {
	ID                    string             `json:"id"`
	Title                 string             `json:"title"`
	Description           string             `json:"description,omitempty"`
	Status                string             `json:"status"`
	EffectiveStatus       string             `json:"effective_status"`
	Urgency               string             `json:"urgency"`
	StartUrgency          string             `json:"start_urgency,omitempty"`
	OverdueBy             string             `json:"overdue_by,omitempty"`
	DueDate               time.Time          `json:"due_date"`
	StartDate             time.Time          `json:"start_date"`
	ExpectedMinutes       int                `json:"expected_minutes"`
	ExpectedLabel         string             `json:"expected_label"`
	Priority              string             `json:"priority"`
	IsPrivate             bool               `json:"is_private"`
	Links                 string             `json:"links,omitempty"`
	RepeatDate            string             `json:"repeat_date,omitempty"`
	AssignedUserIDs       []string           `json:"assigned_user_ids"`
	AssignedUserNames     string             `json:"assigned_user_names"`
	AssignedByID          string             `json:"assigned_by_id,omitempty"`
	ReferenceContactIDs   []string           `json:"reference_contact_ids"`
	ReferenceContactNames string             `json:"reference_contact_names"`
	AssigneePhones        []string           `json:"assignee_phones"`
	TimeLogs              []models.TimeLog   `json:"time_logs"`
	LoginTimes            []models.LoginTime `json:"login_times"`
	TotalLoggedMinutes    float64            `json:"total_logged_minutes"`
	ShareText             string             `json:"share_text"`
	CreatedBy             string             `json:"created_by"`
	CreatedAt             time.Time          `json:"created_at"`
	UpdatedAt             time.Time          `json:"updated_at"`
}

// shareText builds the plain message used when forwarding a task to a
// messenger: "title - description - link", with placeholders for the
// optional parts.
func shareText(t *models.Task) string {
	description := t.Description
	if description == "" {
		description = "No description"
	}
	links := t.Links
	if links == "" {
		links = "No link"
	}
	return t.Title + " - " + description + " - " + links
}

func FromTask(t *models.Task, dir *refcodec.Directory, now time.Time) TaskResponse {
	var total float64
	for _, tl := range t.TimeLogs {
		total += tl.Minutes
	}

	var overdueBy string
	if t.EffectiveStatus(now) == models.StatusOverdue {
		overdueBy = "overdue by " + duedate.OverdueBy(t.DueDate, now).String()
	}

	// Older documents may carry no start date at all.
	startUrgency := ""
	if !t.StartDate.IsZero() {
		startUrgency = string(duedate.Classify(t.StartDate, now))
	}

	return TaskResponse{
		ID:                    t.ID,
		Title:                 t.Title,
		Description:           t.Description,
		Status:                string(t.Status),
		EffectiveStatus:       string(t.EffectiveStatus(now)),
		Urgency:               string(duedate.Classify(t.DueDate, now)),
		StartUrgency:          startUrgency,
		OverdueBy:             overdueBy,
		DueDate:               t.DueDate,
		StartDate:             t.StartDate,
		ExpectedMinutes:       t.ExpectedMinutes,
		ExpectedLabel:         duedate.FormatExpectedMinutes(t.ExpectedMinutes),
		Priority:              string(t.Priority),
		IsPrivate:             t.IsPrivate,
		Links:                 t.Links,
		RepeatDate:            t.RepeatDate,
		AssignedUserIDs:       t.AssignedUserIDs,
		AssignedUserNames:     dir.UserNames(t.AssignedUserIDs),
		AssignedByID:          t.AssignedByID,
		ReferenceContactIDs:   t.ReferenceContactIDs,
		ReferenceContactNames: dir.ContactNames(t.ReferenceContactIDs),
		AssigneePhones:        dir.UserPhones(t.AssignedUserIDs),
		TimeLogs:              t.TimeLogs,
		LoginTimes:            t.LoginTimes,
		TotalLoggedMinutes:    total,
		ShareText:             shareText(t),
		CreatedBy:             t.CreatedByEmail,
		CreatedAt:             t.CreatedAt,
		UpdatedAt:             t.UpdatedAt,
	}
}

func FromTaskList(tasks []*models.Task, dir *refcodec.Directory, now time.Time) []TaskResponse {
	result := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		result[i] = FromTask(t, dir, now)
	}
	return result
}

type CommentResponse struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"task_id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

func FromComment(c models.Comment, dir *refcodec.Directory) CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		TaskID:    c.TaskID,
		UserID:    c.UserID,
		UserName:  dir.UserNames([]string{c.UserID}),
		Comment:   c.Comment,
		CreatedAt: c.CreatedAt,
	}
}

func FromCommentList(comments []models.Comment, dir *refcodec.Directory) []CommentResponse {
	result := make([]CommentResponse, len(comments))
	for i, c := range comments {
		result[i] = FromComment(c, dir)
	}
	return result
}

type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

func FromUserList(users []models.User) []UserResponse {
	result := make([]UserResponse, len(users))
	for i, u := range users {
		result[i] = UserResponse{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone}
	}
	return result
}

type ContactResponse struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Email             string   `json:"email,omitempty"`
	Phone             string   `json:"phone"`
	Address           string   `json:"address,omitempty"`
	CompanyName       string   `json:"company_name,omitempty"`
	DateOfBirth       string   `json:"date_of_birth,omitempty"`
	DateOfAnniversary string   `json:"date_of_anniversary,omitempty"`
	Categories        []string `json:"categories"`
}

func FromContact(c models.Contact) ContactResponse {
	return ContactResponse{
		ID:                c.ID,
		Name:              c.Name,
		Email:             c.Email,
		Phone:             c.Phone,
		Address:           c.Address,
		CompanyName:       c.CompanyName,
		DateOfBirth:       c.DateOfBirth,
		DateOfAnniversary: c.DateOfAnniversary,
		Categories:        c.Categories,
	}
}

func FromContactList(contacts []models.Contact) []ContactResponse {
	result := make([]ContactResponse, len(contacts))
	for i, c := range contacts {
		result[i] = FromContact(c)
	}
	return result
}
