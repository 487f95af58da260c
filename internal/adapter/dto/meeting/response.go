package meeting

import (
	"time"

	taskDTO "github.com/meetmind-team/meetmind/internal/adapter/dto/task"
)

// TranscriptLinePayload is one speaker turn in a structured transcript
type TranscriptLinePayload struct {
	Speaker   string `json:"speaker"`
	Timestamp string `json:"timestamp"`
	Text      string `json:"text"`
}

// MeetingResponse represents a meeting in API responses
type MeetingResponse struct {
	ID              string                  `json:"id"`
	Title           string                  `json:"title"`
	Summary         string                  `json:"summary,omitempty"`
	Date            time.Time               `json:"date"`
	Duration        string                  `json:"duration"`
	Transcript      string                  `json:"transcript,omitempty"`
	TranscriptLines []TranscriptLinePayload `json:"transcript_lines"`
	MOM             []MOMEntryPayload       `json:"mom"`
	VideoURL        *string                 `json:"video_url,omitempty"`
	TranscriptURL   *string                 `json:"transcript_url,omitempty"`
	ConfidenceLevel int                     `json:"confidence_level"`
	Tags            []string                `json:"tags"`
	Category        string                  `json:"category,omitempty"`
	Status          string                  `json:"status"`
	TaskIDs         []string                `json:"task_ids"`
	UserID          string                  `json:"user_id"`
	Tasks           []*taskDTO.TaskResponse `json:"tasks,omitempty"`
	CreatedAt       time.Time               `json:"created_at"`
	UpdatedAt       time.Time               `json:"updated_at"`
}

// AnalyzeMeetingResponse is the result of the analysis pipeline
type AnalyzeMeetingResponse struct {
	Meeting *MeetingResponse        `json:"meeting"`
	Tasks   []*taskDTO.TaskResponse `json:"tasks"`
}
