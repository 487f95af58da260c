package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/meetmind-team/meetmind/internal/domain/entities"
)

// MeetingRepository implements the meeting repository interface using GORM
type MeetingRepository struct {
	db *gorm.DB
}

// NewMeetingRepository creates a new meeting repository
func NewMeetingRepository(db *gorm.DB) *MeetingRepository {
	return &MeetingRepository{
		db: db,
	}
}

// Create creates a meeting without any attached tasks
func (r *MeetingRepository) Create(ctx context.Context, meeting *entities.Meeting) error {
	if err := r.db.WithContext(ctx).Create(meeting).Error; err != nil {
		return fmt.Errorf("failed to create meeting: %w", err)
	}
	return nil
}

// CreateWithTasks persists a meeting and its suggested tasks in one
// transaction. Tasks are linked to the meeting and the meeting's task_ids
// list is written back before commit, so a failure anywhere leaves no
// orphaned rows.
func (r *MeetingRepository) CreateWithTasks(ctx context.Context, meeting *entities.Meeting, tasks []*entities.Task) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(meeting).Error; err != nil {
			return fmt.Errorf("failed to create meeting: %w", err)
		}

		taskIDs := make([]uuid.UUID, 0, len(tasks))
		for _, task := range tasks {
			task.SourceMeetingID = &meeting.ID
			if err := tx.Create(task).Error; err != nil {
				return fmt.Errorf("failed to create task: %w", err)
			}
			taskIDs = append(taskIDs, task.ID)
		}

		raw, err := json.Marshal(taskIDs)
		if err != nil {
			return fmt.Errorf("failed to marshal task ids: %w", err)
		}
		meeting.TaskIDs = raw
		if err := tx.Model(meeting).Update("task_ids", meeting.TaskIDs).Error; err != nil {
			return fmt.Errorf("failed to link tasks to meeting: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to persist analysis result: %w", err)
	}
	return nil
}

// ListByUser returns a user's meetings newest-first with tasks preloaded
func (r *MeetingRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]entities.Meeting, error) {
	var meetings []entities.Meeting
	if err := r.db.WithContext(ctx).
		Preload("Tasks").
		Where("user_id = ?", userID).
		Order("date DESC").
		Find(&meetings).Error; err != nil {
		return nil, fmt.Errorf("failed to list meetings: %w", err)
	}
	return meetings, nil
}

// FindByIDForUser finds a meeting by ID scoped to its owner
func (r *MeetingRepository) FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*entities.Meeting, error) {
	var meeting entities.Meeting
	if err := r.db.WithContext(ctx).
		Preload("Tasks").
		Where("id = ? AND user_id = ?", id, userID).
		First(&meeting).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, entities.ErrMeetingNotFound
		}
		return nil, fmt.Errorf("failed to find meeting: %w", err)
	}
	return &meeting, nil
}

// Update saves changed meeting fields
func (r *MeetingRepository) Update(ctx context.Context, meeting *entities.Meeting) error {
	if err := r.db.WithContext(ctx).Save(meeting).Error; err != nil {
		return fmt.Errorf("failed to update meeting: %w", err)
	}
	return nil
}

// DeleteCascade removes a meeting, deletes its suggested tasks and detaches
// manually created ones, all in one transaction.
func (r *MeetingRepository) DeleteCascade(ctx context.Context, id, userID uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The FK on tasks.source_meeting_id is ON DELETE SET NULL, so the
		// meeting row must go last or the constraint clears the references
		// before these matches run. A missing meeting rolls it all back.
		if err := tx.Where("source_meeting_id = ? AND suggested = ?", id, true).
			Delete(&entities.Task{}).Error; err != nil {
			return fmt.Errorf("failed to delete suggested tasks: %w", err)
		}
		if err := tx.Model(&entities.Task{}).
			Where("source_meeting_id = ?", id).
			Update("source_meeting_id", nil).Error; err != nil {
			return fmt.Errorf("failed to detach tasks: %w", err)
		}

		result := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&entities.Meeting{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete meeting: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return entities.ErrMeetingNotFound
		}
		return nil
	})
	if err == entities.ErrMeetingNotFound {
		return err
	}
	if err != nil {
		return fmt.Errorf("failed to delete meeting cascade: %w", err)
	}
	return nil
}
