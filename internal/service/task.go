package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/msomdec/taskboard/internal/domain"
)

// TaskUpdate carries the fields a caller wants to change. Nil fields are
// left as they are.
type TaskUpdate struct {
	Title       *string
	Description *string
	Completed   *bool
}

// TaskService handles task CRUD with validation and ownership checks.
type TaskService struct {
	tasks domain.TaskRepository
	now   func() time.Time
}

// NewTaskService creates a new TaskService.
func NewTaskService(tasks domain.TaskRepository) *TaskService {
	return &TaskService{tasks: tasks, now: time.Now}
}

// Create validates and stores a new, incomplete task for userID.
func (s *TaskService) Create(ctx context.Context, userID, title, description string) (*domain.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: task title is required", domain.ErrInvalidInput)
	}
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}

	now := s.now().UTC()
	task := &domain.Task{
		UserID:      userID,
		Title:       title,
		Description: strings.TrimSpace(description),
		Completed:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

// List returns every task owned by userID, newest first.
func (s *TaskService) List(ctx context.Context, userID string) ([]domain.Task, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}

	tasks, err := s.tasks.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})
	return tasks, nil
}

// Get returns a task if it belongs to userID.
func (s *TaskService) Get(ctx context.Context, userID, taskID string) (*domain.Task, error) {
	return s.owned(ctx, userID, taskID, "access")
}

// Update applies a partial update to a task owned by userID. Only the fields
// present in the update, plus UpdatedAt, reach the repository.
func (s *TaskService) Update(ctx context.Context, userID, taskID string, update TaskUpdate) (*domain.Task, error) {
	if _, err := s.owned(ctx, userID, taskID, "update"); err != nil {
		return nil, err
	}

	patch := domain.TaskPatch{UpdatedAt: s.now().UTC()}

	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: task title cannot be empty", domain.ErrInvalidInput)
		}
		patch.Title = &title
	}
	if update.Description != nil {
		description := strings.TrimSpace(*update.Description)
		patch.Description = &description
	}
	if update.Completed != nil {
		completed := *update.Completed
		patch.Completed = &completed
	}

	task, err := s.tasks.Update(ctx, taskID, patch)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return task, nil
}

// Delete removes a task owned by userID.
func (s *TaskService) Delete(ctx context.Context, userID, taskID string) error {
	if _, err := s.owned(ctx, userID, taskID, "delete"); err != nil {
		return err
	}

	if err := s.tasks.Delete(ctx, taskID); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// owned loads a task and checks that userID owns it. action names the
// operation in the permission error.
func (s *TaskService) owned(ctx context.Context, userID, taskID, action string) (*domain.Task, error) {
	if taskID == "" {
		return nil, fmt.Errorf("%w: task id is required", domain.ErrInvalidInput)
	}

	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: task does not exist", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get task: %w", err)
	}

	if task.UserID != userID {
		return nil, fmt.Errorf("%w: you do not have permission to %s this task", domain.ErrForbidden, action)
	}
	return task, nil
}
