package service_test

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/msomdec/taskboard/internal/domain"
	"github.com/msomdec/taskboard/internal/repository/sqlite"
)

// fakeTaskRepo is an in-memory TaskRepository that records mutating calls.
type fakeTaskRepo struct {
	mu      sync.Mutex
	tasks   map[string]domain.Task
	order   []string
	nextID  int
	getErr  error
	creates int
	updates []domain.TaskPatch
	deletes []string
}

func newFakeTaskRepo(tasks ...domain.Task) *fakeTaskRepo {
	r := &fakeTaskRepo{tasks: make(map[string]domain.Task)}
	for _, t := range tasks {
		r.tasks[t.ID] = t
		r.order = append(r.order, t.ID)
	}
	return r
}

func (r *fakeTaskRepo) ListByUser(ctx context.Context, userID string) ([]domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Task
	for _, id := range r.order {
		if t := r.tasks[id]; t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &t, nil
}

func (r *fakeTaskRepo) Create(ctx context.Context, task *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creates++
	r.nextID++
	task.ID = fmt.Sprintf("task-%d", r.nextID)
	r.tasks[task.ID] = *task
	r.order = append(r.order, task.ID)
	return nil
}

func (r *fakeTaskRepo) Update(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates = append(r.updates, patch)
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Completed != nil {
		t.Completed = *patch.Completed
	}
	t.UpdatedAt = patch.UpdatedAt
	r.tasks[id] = t
	return &t, nil
}

func (r *fakeTaskRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deletes = append(r.deletes, id)
	if _, ok := r.tasks[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.tasks, id)
	return nil
}

// fakeUserRepo is an in-memory UserRepository that counts creates.
type fakeUserRepo struct {
	mu      sync.Mutex
	byEmail map[string]domain.User
	creates int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]domain.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creates++
	if _, ok := r.byEmail[user.Email]; ok {
		return domain.ErrDuplicateEmail
	}
	user.ID = fmt.Sprintf("user-%d", r.creates)
	r.byEmail[user.Email] = *user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byEmail {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

// stubTokens issues predictable tokens.
type stubTokens struct{}

func (stubTokens) Generate(userID, email string) (string, error) {
	return "token-" + userID, nil
}

func newTestDB(t *testing.T) *sqlite.DB {
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
	return db
}

func ptr[T any](v T) *T {
	return &v
}
