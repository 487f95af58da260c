package meeting

// MOMEntryPayload is one minutes-of-meeting item in a request or response
type MOMEntryPayload struct {
	Type string `json:"type" validate:"omitempty,oneof=decision action info"`
	Text string `json:"text"`
}

// AnalyzeMeetingRequest represents the JSON body for transcript analysis.
// Title, date and category are optional overrides that win over whatever
// the model extracts. The same field names are accepted as multipart form
// values.
type AnalyzeMeetingRequest struct {
	Transcript    string `json:"transcript"`
	Title         string `json:"title,omitempty" validate:"omitempty,max=500"`
	Date          string `json:"date,omitempty"`
	Category      string `json:"category,omitempty" validate:"omitempty,max=100"`
	TranscriptURL string `json:"transcriptUrl,omitempty" validate:"omitempty,max=500"`
	VideoURL      string `json:"videoUrl,omitempty" validate:"omitempty,max=500"`
}

// CreateMeetingRequest represents the request to record a meeting manually
type CreateMeetingRequest struct {
	Title           string            `json:"title" validate:"required,min=1,max=500"`
	Date            string            `json:"date" validate:"required"`
	Duration        string            `json:"duration,omitempty" validate:"omitempty,max=50"`
	Summary         string            `json:"summary,omitempty"`
	Transcript      string            `json:"transcript,omitempty"`
	MOM             []MOMEntryPayload `json:"mom,omitempty"`
	Tags            []string          `json:"tags,omitempty"`
	Category        string            `json:"category,omitempty" validate:"omitempty,max=100"`
	Status          string            `json:"status,omitempty" validate:"omitempty,oneof=Scheduled Completed Cancelled"`
	VideoURL        *string           `json:"videoUrl,omitempty" validate:"omitempty,max=500"`
	TranscriptURL   *string           `json:"transcriptUrl,omitempty" validate:"omitempty,max=500"`
	ConfidenceLevel int               `json:"confidenceLevel,omitempty" validate:"omitempty,min=0,max=100"`
}

// UpdateMeetingRequest represents a partial meeting patch
type UpdateMeetingRequest struct {
	Title           *string           `json:"title,omitempty" validate:"omitempty,min=1,max=500"`
	Date            *string           `json:"date,omitempty"`
	Duration        *string           `json:"duration,omitempty" validate:"omitempty,max=50"`
	Summary         *string           `json:"summary,omitempty"`
	Transcript      *string           `json:"transcript,omitempty"`
	MOM             []MOMEntryPayload `json:"mom,omitempty"`
	Tags            []string          `json:"tags,omitempty"`
	Category        *string           `json:"category,omitempty" validate:"omitempty,max=100"`
	Status          *string           `json:"status,omitempty" validate:"omitempty,oneof=Scheduled Completed Cancelled"`
	VideoURL        *string           `json:"videoUrl,omitempty" validate:"omitempty,max=500"`
	TranscriptURL   *string           `json:"transcriptUrl,omitempty" validate:"omitempty,max=500"`
	ConfidenceLevel *int              `json:"confidenceLevel,omitempty" validate:"omitempty,min=0,max=100"`
}
