package entities

// AnalysisResult is the structured output of transcript analysis. Field
// names follow the JSON contract the extraction prompt asks the model for.
type AnalysisResult struct {
	Title           string           `json:"title"`
	Summary         string           `json:"summary"`
	Transcript      []TranscriptLine `json:"transcript"`
	MOM             []MOMEntry       `json:"mom"`
	Tags            []string         `json:"tags"`
	Category        string           `json:"category"`
	ConfidenceLevel int              `json:"confidence_level"`
	Tasks           []TaskCandidate  `json:"tasks"`
}

// TaskCandidate is one action item the model proposed from the transcript
type TaskCandidate struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    string   `json:"priority"`
	Tags        []string `json:"tags"`
}
