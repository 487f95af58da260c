package presenter

import (
	"encoding/json"

	meetingDTO "github.com/meetmind-team/meetmind/internal/adapter/dto/meeting"
	"github.com/meetmind-team/meetmind/internal/domain/entities"
)

// ToMeetingResponse converts a Meeting entity to MeetingResponse DTO
func ToMeetingResponse(m *entities.Meeting) *meetingDTO.MeetingResponse {
	if m == nil {
		return nil
	}

	var lines []meetingDTO.TranscriptLinePayload
	if m.TranscriptLines != nil {
		json.Unmarshal(m.TranscriptLines, &lines)
	}
	if lines == nil {
		lines = make([]meetingDTO.TranscriptLinePayload, 0)
	}

	var mom []meetingDTO.MOMEntryPayload
	if m.MOM != nil {
		json.Unmarshal(m.MOM, &mom)
	}
	if mom == nil {
		mom = make([]meetingDTO.MOMEntryPayload, 0)
	}

	var tags []string
	if m.Tags != nil {
		json.Unmarshal(m.Tags, &tags)
	}
	if tags == nil {
		tags = make([]string, 0)
	}

	var taskIDs []string
	if m.TaskIDs != nil {
		json.Unmarshal(m.TaskIDs, &taskIDs)
	}
	if taskIDs == nil {
		taskIDs = make([]string, 0)
	}

	response := &meetingDTO.MeetingResponse{
		ID:              m.ID.String(),
		Title:           m.Title,
		Summary:         m.Summary,
		Date:            m.Date,
		Duration:        m.Duration,
		Transcript:      m.Transcript,
		TranscriptLines: lines,
		MOM:             mom,
		VideoURL:        m.VideoURL,
		TranscriptURL:   m.TranscriptURL,
		ConfidenceLevel: m.ConfidenceLevel,
		Tags:            tags,
		Category:        m.Category,
		Status:          string(m.Status),
		TaskIDs:         taskIDs,
		UserID:          m.UserID.String(),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}

	if len(m.Tasks) > 0 {
		response.Tasks = ToTaskResponses(m.Tasks)
	}

	return response
}

// ToMeetingResponses converts a slice of Meeting entities
func ToMeetingResponses(meetings []entities.Meeting) []*meetingDTO.MeetingResponse {
	responses := make([]*meetingDTO.MeetingResponse, 0, len(meetings))
	for i := range meetings {
		responses = append(responses, ToMeetingResponse(&meetings[i]))
	}
	return responses
}
