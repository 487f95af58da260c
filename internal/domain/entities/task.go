package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TaskPriority represents how urgent a task is
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "Low"
	TaskPriorityMedium TaskPriority = "Medium"
	TaskPriorityHigh   TaskPriority = "High"
)

// IsValid checks if the priority is a known value
func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

// TaskStatus represents a kanban column. The board order is
// Backlog, In Progress, Review, Completed.
type TaskStatus string

const (
	TaskStatusBacklog    TaskStatus = "Backlog"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusReview     TaskStatus = "Review"
	TaskStatusCompleted  TaskStatus = "Completed"
)

// IsValid checks if the status is a known column
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusBacklog, TaskStatusInProgress, TaskStatusReview, TaskStatusCompleted:
		return true
	}
	return false
}

// Next returns the following column on the board. The second return is
// false when the task is already Completed and cannot advance.
func (s TaskStatus) Next() (TaskStatus, bool) {
	switch s {
	case TaskStatusBacklog:
		return TaskStatusInProgress, true
	case TaskStatusInProgress:
		return TaskStatusReview, true
	case TaskStatusReview:
		return TaskStatusCompleted, true
	default:
		return s, false
	}
}

// Task is an action item, either extracted from a meeting transcript by the
// AI pipeline (Suggested=true, SourceMeetingID set) or created manually on
// the board.
type Task struct {
	ID          uuid.UUID    `json:"id" gorm:"type:uuid;primaryKey"`
	Title       string       `json:"title" gorm:"type:varchar(500);not null"`
	Description string       `json:"description" gorm:"type:text"`
	Priority    TaskPriority `json:"priority" gorm:"type:varchar(20);not null;default:'Medium'"`
	Status      TaskStatus   `json:"status" gorm:"type:varchar(20);not null;default:'Backlog'"`

	Tags      datatypes.JSON `json:"tags" gorm:"type:jsonb"`
	Suggested bool           `json:"suggested" gorm:"not null;default:false"`

	SourceMeetingID *uuid.UUID `json:"source_meeting_id,omitempty" gorm:"type:uuid;index"`
	SourceMeeting   *Meeting   `json:"source_meeting,omitempty" gorm:"foreignKey:SourceMeetingID;constraint:OnDelete:SET NULL"`

	UserID uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// NewTask creates a manually authored task for a user
func NewTask(userID uuid.UUID, title string) *Task {
	now := time.Now()
	return &Task{
		ID:        uuid.New(),
		Title:     title,
		Priority:  TaskPriorityMedium,
		Status:    TaskStatusBacklog,
		Suggested: false,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewSuggestedTask creates a task proposed by transcript analysis. The
// source meeting is linked by the caller once the meeting row exists.
func NewSuggestedTask(userID uuid.UUID, title, description string, priority TaskPriority) *Task {
	t := NewTask(userID, title)
	t.Description = description
	t.Suggested = true
	if priority.IsValid() {
		t.Priority = priority
	}
	return t
}

// BeforeCreate assigns an ID and fills enum defaults when the caller did not
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Priority == "" {
		t.Priority = TaskPriorityMedium
	}
	if t.Status == "" {
		t.Status = TaskStatusBacklog
	}
	return nil
}

// IsCompleted reports whether the task reached the final column
func (t *Task) IsCompleted() bool {
	return t.Status == TaskStatusCompleted
}

// Advance moves the task to the next board column
func (t *Task) Advance() error {
	next, ok := t.Status.Next()
	if !ok {
		return ErrTaskCompleted
	}
	t.Status = next
	return nil
}
