package domain

import (
	"context"
	"time"
)

// Task is a single to-do item owned by one user.
type Task struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskPatch is a sparse set of field changes. Nil fields are left untouched;
// a pointer to the zero value is an explicit change.
type TaskPatch struct {
	Title       *string
	Description *string
	Completed   *bool
	UpdatedAt   time.Time
}

// TaskRepository defines persistence operations for tasks.
type TaskRepository interface {
	ListByUser(ctx context.Context, userID string) ([]Task, error)
	// GetByID returns ErrNotFound when the task does not exist.
	GetByID(ctx context.Context, id string) (*Task, error)
	// Create assigns task.ID.
	Create(ctx context.Context, task *Task) error
	// Update applies the patch and returns the stored task, or ErrNotFound.
	Update(ctx context.Context, id string, patch TaskPatch) (*Task, error)
	Delete(ctx context.Context, id string) error
}
