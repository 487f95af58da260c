package task

// CreateTaskRequest represents the request to create a board task manually
type CreateTaskRequest struct {
	Title           string   `json:"title" validate:"required,min=1,max=500"`
	Description     string   `json:"description,omitempty"`
	Priority        string   `json:"priority,omitempty" validate:"omitempty,oneof=Low Medium High"`
	Status          string   `json:"status,omitempty" validate:"omitempty,oneof=Backlog 'In Progress' Review Completed"`
	Tags            []string `json:"tags,omitempty"`
	SourceMeetingID *string  `json:"source_meeting_id,omitempty" validate:"omitempty,uuid"`
}

// UpdateTaskRequest represents a partial task patch. Status accepts any
// board column; ordering is only enforced by the advance endpoint.
type UpdateTaskRequest struct {
	Title       *string  `json:"title,omitempty" validate:"omitempty,min=1,max=500"`
	Description *string  `json:"description,omitempty"`
	Priority    *string  `json:"priority,omitempty" validate:"omitempty,oneof=Low Medium High"`
	Status      *string  `json:"status,omitempty" validate:"omitempty,oneof=Backlog 'In Progress' Review Completed"`
	Tags        []string `json:"tags,omitempty"`
}
