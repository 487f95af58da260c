package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/meetmind-team/meetmind/internal/domain/entities"
)

// TaskRepository implements the task repository interface using GORM
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{
		db: db,
	}
}

// Create creates a new task
func (r *TaskRepository) Create(ctx context.Context, task *entities.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// ListByUser returns a user's tasks newest-first with the source meeting
// preloaded so the board can show where a suggestion came from.
func (r *TaskRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]entities.Task, error) {
	var tasks []entities.Task
	if err := r.db.WithContext(ctx).
		Preload("SourceMeeting").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// FindByIDForUser finds a task by ID scoped to its owner
func (r *TaskRepository) FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*entities.Task, error) {
	var task entities.Task
	if err := r.db.WithContext(ctx).
		Preload("SourceMeeting").
		Where("id = ? AND user_id = ?", id, userID).
		First(&task).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, entities.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return &task, nil
}

// Update saves changed task fields
func (r *TaskRepository) Update(ctx context.Context, task *entities.Task) error {
	if err := r.db.WithContext(ctx).Save(task).Error; err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return nil
}

// Delete removes a task scoped to its owner
func (r *TaskRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&entities.Task{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete task: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return entities.ErrTaskNotFound
	}
	return nil
}
