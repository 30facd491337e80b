package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"todai/internal/domain"
	"todai/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type fakeStore struct {
	tasks map[string]*domain.Task
	order []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{tasks: map[string]*domain.Task{}}
}

func (s *fakeStore) List(ctx context.Context) ([]domain.Task, error) {
	out := []domain.Task{}
	for _, id := range s.order {
		out = append(out, *s.tasks[id])
	}
	return out, nil
}

func (s *fakeStore) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	t, ok := s.tasks[id]
	if !ok {
		return nil, domain.NewNotFoundError("Task not found")
	}
	return t, nil
}

func (s *fakeStore) Create(ctx context.Context, t *domain.Task) error {
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	s.tasks[t.ID] = t
	s.order = append(s.order, t.ID)
	return nil
}

func (s *fakeStore) Update(ctx context.Context, id string, p domain.TaskPatch) (*domain.Task, error) {
	t, ok := s.tasks[id]
	if !ok {
		return nil, domain.NewNotFoundError("Task not found")
	}
	if p.Title.Set {
		t.Title = strings.TrimSpace(p.Title.Value)
	}
	if p.Status.Present() {
		t.Status = p.Status.Value
	}
	if p.Priority.Set {
		if p.Priority.Null {
			t.Priority = nil
		} else {
			v := p.PriorityInt()
			t.Priority = &v
		}
	}
	t.UpdatedAt = time.Now().UTC()
	return t, nil
}

func (s *fakeStore) Delete(ctx context.Context, id string) error {
	if _, ok := s.tasks[id]; !ok {
		return domain.NewNotFoundError("Task not found")
	}
	delete(s.tasks, id)
	return nil
}

func newTestRouter() (*gin.Engine, *fakeStore) {
	gin.SetMode(gin.TestMode)
	store := newFakeStore()
	h := NewHandler(service.NewTaskService(store))

	r := gin.New()
	api := r.Group("/api")
	api.GET("/tasks", h.ListTasks)
	api.POST("/tasks", h.CreateTask)
	api.GET("/tasks/:id", h.GetTask)
	api.PUT("/tasks/:id", h.UpdateTask)
	api.DELETE("/tasks/:id", h.DeleteTask)
	return r, store
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type wireError struct {
	Message string              `json:"message"`
	Errors  []domain.FieldError `json:"errors"`
}

func TestCreateTask(t *testing.T) {
	r, _ := newTestRouter()

	w := doJSON(r, http.MethodPost, "/api/tasks", `{"title":"Buy Milk","priority":3}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d; body %s", w.Code, w.Body.String())
	}

	var task domain.Task
	if err := json.Unmarshal(w.Body.Bytes(), &task); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if task.ID == "" || task.Title != "Buy Milk" || task.Status != domain.StatusTodo {
		t.Fatalf("unexpected task %+v", task)
	}
	if task.Priority == nil || *task.Priority != 3 {
		t.Fatalf("priority = %v", task.Priority)
	}
}

func TestCreateTaskValidationErrorBody(t *testing.T) {
	r, _ := newTestRouter()

	w := doJSON(r, http.MethodPost, "/api/tasks", `{"title":"","priority":0}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}

	var e wireError
	if err := json.Unmarshal(w.Body.Bytes(), &e); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if e.Message != "Validation Error" {
		t.Fatalf("message = %q", e.Message)
	}
	if len(e.Errors) != 2 {
		t.Fatalf("expected both field violations, got %v", e.Errors)
	}
}

func TestCreateTaskMalformedBody(t *testing.T) {
	r, _ := newTestRouter()

	w := doJSON(r, http.MethodPost, "/api/tasks", `{"title":`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestListTasks(t *testing.T) {
	r, _ := newTestRouter()
	doJSON(r, http.MethodPost, "/api/tasks", `{"title":"one"}`)
	doJSON(r, http.MethodPost, "/api/tasks", `{"title":"two"}`)

	w := doJSON(r, http.MethodGet, "/api/tasks", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var tasks []domain.Task
	if err := json.Unmarshal(w.Body.Bytes(), &tasks); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("len = %d", len(tasks))
	}
}

func TestGetTaskIdentifierErrors(t *testing.T) {
	r, _ := newTestRouter()

	// malformed identifier
	w := doJSON(r, http.MethodGet, "/api/tasks/not-a-uuid", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("malformed id status = %d", w.Code)
	}

	// well-formed but unknown
	w = doJSON(r, http.MethodGet, "/api/tasks/"+uuid.NewString(), "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown id status = %d", w.Code)
	}

	var e wireError
	if err := json.Unmarshal(w.Body.Bytes(), &e); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if e.Message != "Task not found" {
		t.Fatalf("message = %q", e.Message)
	}
}

func TestUpdateTask(t *testing.T) {
	r, _ := newTestRouter()

	w := doJSON(r, http.MethodPost, "/api/tasks", `{"title":"t","priority":5}`)
	var created domain.Task
	_ = json.Unmarshal(w.Body.Bytes(), &created)

	w = doJSON(r, http.MethodPut, "/api/tasks/"+created.ID, `{"status":"done","priority":null}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; body %s", w.Code, w.Body.String())
	}

	var updated domain.Task
	if err := json.Unmarshal(w.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if updated.Status != domain.StatusDone {
		t.Fatalf("status = %q", updated.Status)
	}
	if updated.Priority != nil {
		t.Fatal("explicit null should have cleared the priority")
	}

	w = doJSON(r, http.MethodPut, "/api/tasks/"+uuid.NewString(), `{"status":"done"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown id status = %d", w.Code)
	}
}

func TestDeleteTask(t *testing.T) {
	r, _ := newTestRouter()

	w := doJSON(r, http.MethodPost, "/api/tasks", `{"title":"t"}`)
	var created domain.Task
	_ = json.Unmarshal(w.Body.Bytes(), &created)

	w = doJSON(r, http.MethodDelete, "/api/tasks/"+created.ID, "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d", w.Code)
	}

	w = doJSON(r, http.MethodDelete, "/api/tasks/"+created.ID, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d", w.Code)
	}
}
