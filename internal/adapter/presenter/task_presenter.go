package presenter

import (
	"encoding/json"

	taskDTO "github.com/meetmind-team/meetmind/internal/adapter/dto/task"
	"github.com/meetmind-team/meetmind/internal/domain/entities"
)

// ToTaskResponse converts a Task entity to TaskResponse DTO
func ToTaskResponse(t *entities.Task) *taskDTO.TaskResponse {
	if t == nil {
		return nil
	}

	var tags []string
	if t.Tags != nil {
		json.Unmarshal(t.Tags, &tags)
	}
	if tags == nil {
		tags = make([]string, 0)
	}

	response := &taskDTO.TaskResponse{
		ID:          t.ID.String(),
		Title:       t.Title,
		Description: t.Description,
		Priority:    string(t.Priority),
		Status:      string(t.Status),
		Tags:        tags,
		Suggested:   t.Suggested,
		UserID:      t.UserID.String(),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}

	if t.SourceMeetingID != nil {
		id := t.SourceMeetingID.String()
		response.SourceMeetingID = &id
	}
	if t.SourceMeeting != nil {
		response.SourceMeetingTitle = t.SourceMeeting.Title
	}

	return response
}

// ToTaskResponses converts a slice of Task entities
func ToTaskResponses(tasks []entities.Task) []*taskDTO.TaskResponse {
	responses := make([]*taskDTO.TaskResponse, 0, len(tasks))
	for i := range tasks {
		responses = append(responses, ToTaskResponse(&tasks[i]))
	}
	return responses
}

// ToTaskResponsesFromPtrs converts a slice of Task pointers
func ToTaskResponsesFromPtrs(tasks []*entities.Task) []*taskDTO.TaskResponse {
	responses := make([]*taskDTO.TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		responses = append(responses, ToTaskResponse(t))
	}
	return responses
}
