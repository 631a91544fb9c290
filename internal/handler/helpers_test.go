package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/msomdec/taskboard/internal/handler"
	"github.com/msomdec/taskboard/internal/repository/sqlite"
	"github.com/msomdec/taskboard/internal/service"
)

const testJWTSecret = "test-secret-for-handler-tests-0123456789"

type testApp struct {
	db     *sqlite.DB
	users  *service.UserService
	tasks  *service.TaskService
	tokens *service.TokenService
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	tokens := service.NewTokenService(testJWTSecret, time.Hour)
	return &testApp{
		db:     db,
		users:  service.NewUserService(db.Users(), tokens),
		tasks:  service.NewTaskService(db.Tasks()),
		tokens: tokens,
	}
}

func (a *testApp) routes() handler.Routes {
	return handler.Routes{Users: a.users, Tasks: a.tasks, Tokens: a.tokens}
}

func (a *testApp) server(t *testing.T, rt handler.Routes) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, rt)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// login signs email in through the service and returns the bearer token.
func (a *testApp) login(t *testing.T, email string) string {
	t.Helper()
	result, err := a.users.Login(context.Background(), email)
	if err != nil {
		t.Fatalf("Login %s: %v", email, err)
	}
	return result.Token
}

// doJSON sends a request with an optional JSON body and bearer token.
func doJSON(t *testing.T, method, url, token string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return v
}

func expectStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("%s %s: expected %d, got %d: %s", resp.Request.Method, resp.Request.URL.Path, want, resp.StatusCode, body)
	}
}
