package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"todai/internal/domain"
)

func TestCacheServesAndInvalidates(t *testing.T) {
	var listCalls atomic.Int64

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/tasks":
			listCalls.Add(1)
			w.Header().Set("Content-Type", "application/json")
			io.WriteString(w, `[{"id":"a","title":"one","status":"todo"}]`)
		case r.Method == http.MethodPost && r.URL.Path == "/api/tasks":
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			io.WriteString(w, `{"id":"b","title":"two","status":"todo"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
			io.WriteString(w, `{"message":"Task not found"}`)
		}
	}))
	defer srv.Close()

	cache := NewCache(New(srv.URL))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		tasks, err := cache.Tasks(ctx)
		if err != nil {
			t.Fatalf("tasks: %v", err)
		}
		if len(tasks) != 1 || tasks[0].Title != "one" {
			t.Fatalf("unexpected tasks %v", tasks)
		}
	}
	if got := listCalls.Load(); got != 1 {
		t.Fatalf("expected a single fetch for repeated reads, got %d", got)
	}

	title := "two"
	if _, err := cache.Create(ctx, TaskInput{Title: &title}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := cache.Tasks(ctx); err != nil {
		t.Fatalf("tasks after create: %v", err)
	}
	if got := listCalls.Load(); got != 2 {
		t.Fatalf("mutation should invalidate the cache, fetches = %d", got)
	}
}

func TestCacheKeptOnFailedMutation(t *testing.T) {
	var listCalls atomic.Int64

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			listCalls.Add(1)
			io.WriteString(w, `[]`)
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"message":"Validation Error","errors":[{"field":"title","message":"Title is required"}]}`)
	}))
	defer srv.Close()

	cache := NewCache(New(srv.URL))
	ctx := context.Background()

	if _, err := cache.Tasks(ctx); err != nil {
		t.Fatalf("tasks: %v", err)
	}

	title := ""
	if _, err := cache.Create(ctx, TaskInput{Title: &title}); err == nil {
		t.Fatal("expected create to fail")
	}

	if _, err := cache.Tasks(ctx); err != nil {
		t.Fatalf("tasks: %v", err)
	}
	if got := listCalls.Load(); got != 1 {
		t.Fatalf("failed mutation must not invalidate, fetches = %d", got)
	}
}

func TestErrorDecoding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"message":"Validation Error","errors":[{"field":"priority","message":"Priority must be at most 9"}]}`)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.CreateTask(context.Background(), TaskInput{})

	var derr *domain.Error
	if !errors.As(err, &derr) {
		t.Fatalf("expected *domain.Error, got %T (%v)", err, err)
	}
	if derr.Kind != domain.KindValidation {
		t.Fatalf("kind = %d", derr.Kind)
	}
	if len(derr.Fields) != 1 || derr.Fields[0].Field != "priority" {
		t.Fatalf("fields = %v", derr.Fields)
	}
}

func TestTaskInputExplicitNulls(t *testing.T) {
	var body map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		io.WriteString(w, `{"id":"a","title":"t","status":"todo"}`)
	}))
	defer srv.Close()

	c := New(srv.URL)
	if _, err := c.UpdateTask(context.Background(), "a", TaskInput{ClearPriority: true, ClearDueDate: true}); err != nil {
		t.Fatalf("update: %v", err)
	}

	v, ok := body["priority"]
	if !ok || v != nil {
		t.Fatalf("expected explicit null priority, body %v", body)
	}
	v, ok = body["dueDate"]
	if !ok || v != nil {
		t.Fatalf("expected explicit null dueDate, body %v", body)
	}
	if _, ok := body["project"]; ok {
		t.Fatalf("untouched project must stay absent, body %v", body)
	}
	if _, ok := body["title"]; ok {
		t.Fatalf("untouched title must stay absent, body %v", body)
	}
}
