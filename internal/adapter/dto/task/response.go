package task

import "time"

// TaskResponse represents a task in API responses. SourceMeetingTitle is
// populated when the source meeting relation is loaded so the board can show
// where a suggestion came from.
type TaskResponse struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	Description        string    `json:"description,omitempty"`
	Priority           string    `json:"priority"`
	Status             string    `json:"status"`
	Tags               []string  `json:"tags"`
	Suggested          bool      `json:"suggested"`
	SourceMeetingID    *string   `json:"source_meeting_id,omitempty"`
	SourceMeetingTitle string    `json:"source_meeting_title,omitempty"`
	UserID             string    `json:"user_id"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
