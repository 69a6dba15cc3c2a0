package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second), srv
}

func TestRegister_Success(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/signup" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode error: %v", err)
		}
		if body["email"] != "alice@example.com" {
			t.Fatalf("unexpected body: %v", body)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"id": "u-1", "username": "alice", "email": "alice@example.com"})
	})

	acc, err := c.Register(context.Background(), "alice", "alice@example.com", "s3cret")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if acc.ID != "u-1" || acc.Username != "alice" {
		t.Fatalf("unexpected account: %+v", acc)
	}
}

func TestLogin_StoresToken(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"token": "tok-123"})
	})

	if c.Authenticated() {
		t.Fatal("fresh client must not be authenticated")
	}
	if err := c.Login(context.Background(), "alice@example.com", "s3cret"); err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if !c.Authenticated() {
		t.Fatal("client must be authenticated after login")
	}

	c.ClearToken()
	if c.Authenticated() {
		t.Fatal("ClearToken must drop the session")
	}
}

func TestListTasks_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/signin" {
			json.NewEncoder(w).Encode(map[string]string{"token": "tok-123"})
			return
		}
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]Task{{ID: "t-1", Title: "buy milk"}})
	})

	if err := c.Login(context.Background(), "a@b.c", "pw"); err != nil {
		t.Fatalf("Login error: %v", err)
	}
	tasks, err := c.ListTasks(context.Background())
	if err != nil {
		t.Fatalf("ListTasks error: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("Authorization header = %q", gotAuth)
	}
	if len(tasks) != 1 || tasks[0].ID != "t-1" {
		t.Fatalf("unexpected tasks: %+v", tasks)
	}
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{"unauthorized", http.StatusUnauthorized, ErrUnauthenticated},
		{"forbidden", http.StatusForbidden, ErrUnauthenticated},
		{"not found", http.StatusNotFound, ErrNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				json.NewEncoder(w).Encode(map[string]string{"message": "nope"})
			})

			_, err := c.ListTasks(context.Background())
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("want %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestServerErrorCarriesMessage(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"message": "Error signing up user"})
	})

	_, err := c.Register(context.Background(), "alice", "a@b.c", "pw")
	if err == nil || err.Error() != "server error: Error signing up user" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestToggleAndDelete(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPut && r.URL.Path == "/tasks/t-1":
			json.NewEncoder(w).Encode(map[string]any{"message": "Task updated successfully", "completed": true})
		case r.Method == http.MethodDelete && r.URL.Path == "/tasks/t-1":
			json.NewEncoder(w).Encode(map[string]any{
				"message":     "Task deleted successfully",
				"deletedTask": Task{ID: "t-1", Title: "buy milk", Completed: true},
			})
		default:
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
	})

	completed, err := c.ToggleTask(context.Background(), "t-1")
	if err != nil || !completed {
		t.Fatalf("ToggleTask: completed=%v err=%v", completed, err)
	}

	deleted, err := c.DeleteTask(context.Background(), "t-1")
	if err != nil {
		t.Fatalf("DeleteTask error: %v", err)
	}
	if deleted == nil || deleted.ID != "t-1" {
		t.Fatalf("unexpected deleted task: %+v", deleted)
	}
}

func TestUnreachableServer(t *testing.T) {
	c := New("http://127.0.0.1:1", 500*time.Millisecond)

	_, err := c.ListTasks(context.Background())
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("want ErrUnavailable, got %v", err)
	}
}
