package task

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/meetmind-team/meetmind/errors"
	"github.com/meetmind-team/meetmind/internal/domain/entities"
)

// Store is the persistence surface the task service needs
type Store interface {
	Create(ctx context.Context, task *entities.Task) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]entities.Task, error)
	FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*entities.Task, error)
	Update(ctx context.Context, task *entities.Task) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

// CreateInput carries fields for a manually created board task
type CreateInput struct {
	Title           string
	Description     string
	Priority        entities.TaskPriority
	Status          entities.TaskStatus
	Tags            []string
	SourceMeetingID *uuid.UUID
}

// UpdateInput is a partial patch; nil fields are left untouched. Status
// changes here are advisory, any column is accepted.
type UpdateInput struct {
	Title       *string
	Description *string
	Priority    *entities.TaskPriority
	Status      *entities.TaskStatus
	Tags        []string
}

// Service provides owner-scoped task CRUD and the kanban advance operation
type Service struct {
	tasks  Store
	logger *zap.Logger
}

// NewService constructs the task service
func NewService(tasks Store, logger *zap.Logger) *Service {
	return &Service{
		tasks:  tasks,
		logger: logger,
	}
}

// List returns the user's tasks newest-first
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]entities.Task, error) {
	tasks, err := s.tasks.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.ErrDBQueryFailed("list tasks", err)
	}
	return tasks, nil
}

// Create adds a manually authored task to the board
func (s *Service) Create(ctx context.Context, userID uuid.UUID, in CreateInput) (*entities.Task, error) {
	if in.Title == "" {
		return nil, apperrors.ErrInvalidArgument("title is required")
	}

	task := entities.NewTask(userID, in.Title)
	task.Description = in.Description
	if in.Priority != "" {
		if !in.Priority.IsValid() {
			return nil, apperrors.ErrInvalidArgument("invalid priority")
		}
		task.Priority = in.Priority
	}
	if in.Status != "" {
		if !in.Status.IsValid() {
			return nil, apperrors.ErrInvalidArgument("invalid status")
		}
		task.Status = in.Status
	}
	if in.Tags != nil {
		raw, err := json.Marshal(in.Tags)
		if err != nil {
			return nil, apperrors.ErrInternal(err)
		}
		task.Tags = raw
	}
	task.SourceMeetingID = in.SourceMeetingID

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, apperrors.ErrDBQueryFailed("create task", err)
	}

	if s.logger != nil {
		s.logger.Info("task created", zap.String("task_id", task.ID.String()))
	}
	return task, nil
}

// Get returns one task scoped to its owner
func (s *Service) Get(ctx context.Context, id, userID uuid.UUID) (*entities.Task, error) {
	task, err := s.tasks.FindByIDForUser(ctx, id, userID)
	if err == entities.ErrTaskNotFound {
		return nil, apperrors.ErrTaskNotFound(id.String())
	}
	if err != nil {
		return nil, apperrors.ErrDBQueryFailed("find task", err)
	}
	return task, nil
}

// Update applies a partial patch to a task
func (s *Service) Update(ctx context.Context, id, userID uuid.UUID, in UpdateInput) (*entities.Task, error) {
	task, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		if *in.Title == "" {
			return nil, apperrors.ErrInvalidArgument("title is required")
		}
		task.Title = *in.Title
	}
	if in.Description != nil {
		task.Description = *in.Description
	}
	if in.Priority != nil {
		if !in.Priority.IsValid() {
			return nil, apperrors.ErrInvalidArgument("invalid priority")
		}
		task.Priority = *in.Priority
	}
	if in.Status != nil {
		if !in.Status.IsValid() {
			return nil, apperrors.ErrInvalidArgument("invalid status")
		}
		task.Status = *in.Status
	}
	if in.Tags != nil {
		raw, err := json.Marshal(in.Tags)
		if err != nil {
			return nil, apperrors.ErrInternal(err)
		}
		task.Tags = raw
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, apperrors.ErrDBQueryFailed("update task", err)
	}
	return task, nil
}

// Advance moves a task to the next kanban column. Unlike Update, the board
// order is enforced here: a Completed task cannot advance.
func (s *Service) Advance(ctx context.Context, id, userID uuid.UUID) (*entities.Task, error) {
	task, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if err := task.Advance(); err != nil {
		return nil, apperrors.ErrTaskAlreadyCompleted(id.String())
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, apperrors.ErrDBQueryFailed("advance task", err)
	}

	if s.logger != nil {
		s.logger.Info("task advanced",
			zap.String("task_id", task.ID.String()),
			zap.String("status", string(task.Status)))
	}
	return task, nil
}

// Delete removes a task
func (s *Service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	err := s.tasks.Delete(ctx, id, userID)
	if err == entities.ErrTaskNotFound {
		return apperrors.ErrTaskNotFound(id.String())
	}
	if err != nil {
		return apperrors.ErrDBQueryFailed("delete task", err)
	}
	return nil
}
