package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MeetingStatus represents the lifecycle state of a meeting
type MeetingStatus string

const (
	MeetingStatusScheduled MeetingStatus = "Scheduled"
	MeetingStatusCompleted MeetingStatus = "Completed"
	MeetingStatusCancelled MeetingStatus = "Cancelled"
)

// IsValid checks if the status is a known value
func (s MeetingStatus) IsValid() bool {
	switch s {
	case MeetingStatusScheduled, MeetingStatusCompleted, MeetingStatusCancelled:
		return true
	}
	return false
}

// MOMEntry is one minutes-of-meeting item. Type is one of
// "decision", "action" or "info".
type MOMEntry struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// TranscriptLine is one speaker turn in a structured transcript
type TranscriptLine struct {
	Speaker   string `json:"speaker"`
	Timestamp string `json:"timestamp"`
	Text      string `json:"text"`
}

// Meeting is an analyzed or manually recorded meeting owned by one user.
// Collection-valued fields are stored as JSONB so the archive stays a
// single row per meeting.
type Meeting struct {
	ID      uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Title   string    `json:"title" gorm:"type:varchar(500);not null"`
	Summary string    `json:"summary" gorm:"type:text"`

	Date     time.Time `json:"date" gorm:"not null;index"`
	Duration string    `json:"duration" gorm:"type:varchar(50);not null;default:'0m'"`

	Transcript      string         `json:"transcript" gorm:"type:text"`
	TranscriptLines datatypes.JSON `json:"transcript_lines" gorm:"type:jsonb"`
	MOM             datatypes.JSON `json:"mom" gorm:"column:mom;type:jsonb"`

	VideoURL      *string `json:"video_url,omitempty" gorm:"type:varchar(500)"`
	TranscriptURL *string `json:"transcript_url,omitempty" gorm:"type:varchar(500)"`

	ConfidenceLevel int            `json:"confidence_level" gorm:"not null;default:0"`
	Tags            datatypes.JSON `json:"tags" gorm:"type:jsonb"`
	Category        string         `json:"category" gorm:"type:varchar(100)"`
	Status          MeetingStatus  `json:"status" gorm:"type:varchar(20);not null;default:'Completed'"`

	// TaskIDs duplicates the reverse relation as a forward list so a meeting
	// row alone can answer "which tasks came out of this meeting".
	TaskIDs datatypes.JSON `json:"task_ids" gorm:"type:jsonb"`

	UserID uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	Tasks  []Task    `json:"tasks,omitempty" gorm:"foreignKey:SourceMeetingID"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// NewMeeting creates a meeting for a user with the entity defaults applied
func NewMeeting(userID uuid.UUID, title string, date time.Time) *Meeting {
	now := time.Now()
	return &Meeting{
		ID:        uuid.New(),
		Title:     title,
		Date:      date,
		Duration:  "0m",
		Status:    MeetingStatusCompleted,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// BeforeCreate assigns an ID and fills defaults when the caller did not
func (m *Meeting) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Duration == "" {
		m.Duration = "0m"
	}
	if m.Status == "" {
		m.Status = MeetingStatusCompleted
	}
	return nil
}

// Validate validates meeting data
func (m *Meeting) Validate() error {
	if m.Title == "" {
		return ErrMissingTitle
	}
	if m.Date.IsZero() {
		return ErrMissingDate
	}
	return nil
}
