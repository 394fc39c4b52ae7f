package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"taskflow/internal/handlers"
	"taskflow/internal/logger"
	"taskflow/internal/models"
	"taskflow/internal/refcodec"
	"taskflow/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Init(true)
	os.Exit(m.Run())
}

type MockService struct {
	mock.Mock
}

func (m *MockService) VisibleTasks(v models.Viewer) []*models.Task {
	args := m.Called(v)
	return args.Get(0).([]*models.Task)
}

func (m *MockService) TasksByDueDay(v models.Viewer) map[string][]*models.Task {
	args := m.Called(v)
	return args.Get(0).(map[string][]*models.Task)
}

func (m *MockService) Task(id string) (*models.Task, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *MockService) CreateTask(ctx context.Context, v models.Viewer, in service.TaskInput) (*models.Task, error) {
	args := m.Called(ctx, v, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *MockService) UpdateTask(ctx context.Context, v models.Viewer, taskID string, in service.TaskInput) (*models.Task, error) {
	args := m.Called(ctx, v, taskID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *MockService) UpdateAssignment(ctx context.Context, v models.Viewer, taskID string, userIDs, contactIDs []string) (*models.Task, error) {
	args := m.Called(ctx, v, taskID, userIDs, contactIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *MockService) UpdateStatus(ctx context.Context, v models.Viewer, taskID string, status models.Status) (*models.Task, error) {
	args := m.Called(ctx, v, taskID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *MockService) DeleteTask(ctx context.Context, v models.Viewer, taskID string) error {
	args := m.Called(ctx, v, taskID)
	return args.Error(0)
}

func (m *MockService) LogTime(ctx context.Context, v models.Viewer, taskID string, minutes float64, day string) (*models.Task, error) {
	args := m.Called(ctx, v, taskID, minutes, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *MockService) AddComment(ctx context.Context, v models.Viewer, taskID, text string) (*models.Comment, error) {
	args := m.Called(ctx, v, taskID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockService) ListComments(taskID string) []models.Comment {
	args := m.Called(taskID)
	return args.Get(0).([]models.Comment)
}

func (m *MockService) CreateContact(ctx context.Context, v models.Viewer, in service.ContactInput) (*models.Contact, error) {
	args := m.Called(ctx, v, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Contact), args.Error(1)
}

func (m *MockService) Users() []models.User {
	args := m.Called()
	return args.Get(0).([]models.User)
}

func (m *MockService) Contacts() []models.Contact {
	args := m.Called()
	return args.Get(0).([]models.Contact)
}

func (m *MockService) Categories() []string {
	args := m.Called()
	return args.Get(0).([]string)
}

func (m *MockService) Directory() *refcodec.Directory {
	args := m.Called()
	return args.Get(0).(*refcodec.Directory)
}

var _ handlers.Service = (*MockService)(nil)

func emptyDirectory() *refcodec.Directory {
	return refcodec.NewDirectory(nil, nil)
}

func sampleTask() *models.Task {
	return &models.Task{
		ID:              "t1",
		Title:           "Sample",
		DueDate:         time.Now().Add(48 * time.Hour),
		StartDate:       time.Now(),
		Status:          models.StatusPending,
		Priority:        models.PriorityMedium,
		AssignedUserIDs: []string{"u1"},
		CreatedByEmail:  "a@x.com",
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
}

// serve routes the request through the full router so URL params and
// middleware behave as in production.
func serve(svc handlers.Service, req *http.Request) *httptest.ResponseRecorder {
	handler := handlers.NewTaskHandler(svc)
	router := handlers.NewRouter(handler, 1000, 5*time.Second)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func asViewer(req *http.Request, userID, email string) *http.Request {
	req.Header.Set("X-User-ID", userID)
	req.Header.Set("X-User-Email", email)
	return req
}

func TestHealthCheck(t *testing.T) {
	mockService := new(MockService)

	req := httptest.NewRequest("GET", "/health", nil)
	w := serve(mockService, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "taskflow")
}

func TestGetTasks(t *testing.T) {
	mockService := new(MockService)
	viewer := models.Viewer{UserID: "u1", Email: "a@x.com"}
	mockService.On("VisibleTasks", viewer).Return([]*models.Task{sampleTask()})
	mockService.On("Directory").Return(emptyDirectory())

	req := asViewer(httptest.NewRequest("GET", "/tasks", nil), "u1", "a@x.com")
	w := serve(mockService, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Tasks []struct {
			ID              string `json:"id"`
			EffectiveStatus string `json:"effective_status"`
			Urgency         string `json:"urgency"`
			ShareText       string `json:"share_text"`
		} `json:"tasks"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Tasks, 1)
	assert.Equal(t, "t1", body.Tasks[0].ID)
	assert.Equal(t, "pending", body.Tasks[0].EffectiveStatus)
	assert.Equal(t, "due_soon", body.Tasks[0].Urgency)
	assert.Equal(t, "Sample - No description - No link", body.Tasks[0].ShareText)

	mockService.AssertExpectations(t)
}

func TestGetTaskByID(t *testing.T) {
	overdueTask := sampleTask()
	overdueTask.DueDate = time.Now().Add(-50 * time.Hour)
	overdueTask.Status = models.StatusInProgress

	private := sampleTask()
	private.IsPrivate = true
	private.CreatedByEmail = "someone-else@x.com"

	tests := []struct {
		name           string
		setupMock      func(*MockService)
		expectedStatus int
		contains       string
	}{
		{
			name: "success",
			setupMock: func(m *MockService) {
				m.On("Task", "t1").Return(sampleTask(), nil)
				m.On("Directory").Return(emptyDirectory())
			},
			expectedStatus: http.StatusOK,
			contains:       `"id":"t1"`,
		},
		{
			name: "overdue task carries overdue_by",
			setupMock: func(m *MockService) {
				m.On("Task", "t1").Return(overdueTask, nil)
				m.On("Directory").Return(emptyDirectory())
			},
			expectedStatus: http.StatusOK,
			contains:       "overdue by 2d",
		},
		{
			name: "not found",
			setupMock: func(m *MockService) {
				m.On("Task", "t1").Return(nil, service.NewNotFound("task", "t1"))
			},
			expectedStatus: http.StatusNotFound,
			contains:       "NOT_FOUND",
		},
		{
			name: "private task of another creator is hidden",
			setupMock: func(m *MockService) {
				m.On("Task", "t1").Return(private, nil)
			},
			expectedStatus: http.StatusNotFound,
			contains:       "not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			req := asViewer(httptest.NewRequest("GET", "/tasks/t1", nil), "u1", "a@x.com")
			w := serve(mockService, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.contains)

			mockService.AssertExpectations(t)
		})
	}
}

func TestPostTask(t *testing.T) {
	due := time.Now().Add(72 * time.Hour)

	tests := []struct {
		name           string
		requestBody    string
		contentType    string
		setupMock      func(*MockService)
		expectedStatus int
	}{
		{
			name: "success",
			requestBody: fmt.Sprintf(`{
				"title": "New task",
				"due_date": "%s",
				"assigned_user_ids": ["u1"]
			}`, due.Format(time.RFC3339)),
			contentType: "application/json",
			setupMock: func(m *MockService) {
				m.On("CreateTask", mock.Anything, models.Viewer{UserID: "u1", Email: "a@x.com"}, mock.Anything).
					Return(sampleTask(), nil)
				m.On("Directory").Return(emptyDirectory())
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "wrong content type",
			requestBody:    `{}`,
			contentType:    "text/plain",
			setupMock:      func(m *MockService) {},
			expectedStatus: http.StatusUnsupportedMediaType,
		},
		{
			name:           "malformed json",
			requestBody:    `{"title": `,
			contentType:    "application/json",
			setupMock:      func(m *MockService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "validation error from core",
			requestBody: `{"title": ""}`,
			contentType: "application/json",
			setupMock: func(m *MockService) {
				m.On("CreateTask", mock.Anything, mock.Anything, mock.Anything).
					Return(nil, service.NewValidationError("task", "title, due date and at least one assigned user are required"))
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "unauthenticated",
			requestBody: `{"title": "x"}`,
			contentType: "application/json",
			setupMock: func(m *MockService) {
				m.On("CreateTask", mock.Anything, mock.Anything, mock.Anything).
					Return(nil, service.NewUnauthenticated())
			},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			req := httptest.NewRequest("POST", "/tasks", bytes.NewBufferString(tt.requestBody))
			req.Header.Set("Content-Type", tt.contentType)
			req = asViewer(req, "u1", "a@x.com")
			w := serve(mockService, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			mockService.AssertExpectations(t)
		})
	}
}

func TestUpdateStatus(t *testing.T) {
	inProgress := sampleTask()
	inProgress.Status = models.StatusInProgress
	inProgress.LoginTimes = []models.LoginTime{{UserID: "u1", Timestamp: time.Now()}}

	mockService := new(MockService)
	mockService.On("UpdateStatus", mock.Anything, models.Viewer{UserID: "u1", Email: "a@x.com"}, "t1", models.StatusInProgress).
		Return(inProgress, nil)
	mockService.On("Directory").Return(emptyDirectory())

	req := httptest.NewRequest("PUT", "/tasks/t1/status", bytes.NewBufferString(`{"status": "in_progress"}`))
	req = asViewer(req, "u1", "a@x.com")
	w := serve(mockService, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"in_progress"`)

	mockService.AssertExpectations(t)
}

func TestLogTimeConflict(t *testing.T) {
	mockService := new(MockService)
	mockService.On("LogTime", mock.Anything, mock.Anything, "t1", 30.0, "2024-01-10").
		Return(nil, service.NewDuplicateLog("t1", "u1", "2024-01-10"))

	req := httptest.NewRequest("POST", "/tasks/t1/timelogs",
		bytes.NewBufferString(`{"minutes": 30, "date": "2024-01-10"}`))
	req = asViewer(req, "u1", "a@x.com")
	w := serve(mockService, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "DUPLICATE_LOG")

	mockService.AssertExpectations(t)
}

func TestPostComment(t *testing.T) {
	mockService := new(MockService)
	mockService.On("AddComment", mock.Anything, mock.Anything, "t1", "looks good").
		Return(&models.Comment{ID: "c1", TaskID: "t1", UserID: "u1", Comment: "looks good", CreatedAt: time.Now()}, nil)
	mockService.On("Directory").Return(emptyDirectory())

	req := httptest.NewRequest("POST", "/tasks/t1/comments",
		bytes.NewBufferString(`{"comment": "looks good"}`))
	req = asViewer(req, "u1", "a@x.com")
	w := serve(mockService, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"c1"`)

	mockService.AssertExpectations(t)
}

func TestDeleteTask(t *testing.T) {
	tests := []struct {
		name           string
		setupMock      func(*MockService)
		expectedStatus int
	}{
		{
			name: "success",
			setupMock: func(m *MockService) {
				m.On("DeleteTask", mock.Anything, mock.Anything, "t1").Return(nil)
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name: "not found",
			setupMock: func(m *MockService) {
				m.On("DeleteTask", mock.Anything, mock.Anything, "t1").
					Return(service.NewNotFound("task", "t1"))
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			req := asViewer(httptest.NewRequest("DELETE", "/tasks/t1", nil), "u1", "a@x.com")
			w := serve(mockService, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			mockService.AssertExpectations(t)
		})
	}
}

func TestPostContact(t *testing.T) {
	mockService := new(MockService)
	mockService.On("CreateContact", mock.Anything, mock.Anything,
		service.ContactInput{Name: "Acme", Phone: "555", Categories: []string{"clients"}}).
		Return(&models.Contact{ID: "c1", Name: "Acme", Phone: "555", Categories: []string{"clients"}}, nil)

	req := httptest.NewRequest("POST", "/contacts",
		bytes.NewBufferString(`{"name": "Acme", "phone": "555", "categories": ["clients"]}`))
	req.Header.Set("Content-Type", "application/json")
	req = asViewer(req, "u1", "a@x.com")
	w := serve(mockService, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Acme"`)

	mockService.AssertExpectations(t)
}

func TestGetCategories(t *testing.T) {
	mockService := new(MockService)
	mockService.On("Categories").Return([]string{"clients", "vip"})

	req := asViewer(httptest.NewRequest("GET", "/contacts/categories", nil), "u1", "a@x.com")
	w := serve(mockService, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "vip")

	mockService.AssertExpectations(t)
}

func TestGetTasksByDay(t *testing.T) {
	task := sampleTask()
	day := models.DayOf(task.DueDate)

	mockService := new(MockService)
	mockService.On("TasksByDueDay", mock.Anything).
		Return(map[string][]*models.Task{day: {task}})
	mockService.On("Directory").Return(emptyDirectory())

	req := asViewer(httptest.NewRequest("GET", "/calendar", nil), "u1", "a@x.com")
	w := serve(mockService, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), day)

	mockService.AssertExpectations(t)
}
