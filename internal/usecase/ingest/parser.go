package ingest

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/meetmind-team/meetmind/internal/domain/entities"
)

// Parser handles parsing and validation of LLM analysis responses
type Parser struct{}

// NewParser creates a new Parser instance
func NewParser() *Parser {
	return &Parser{}
}

// ParseAnalysis parses the model output into an AnalysisResult
func (p *Parser) ParseAnalysis(content string) (*entities.AnalysisResult, error) {
	// Extract JSON from response (the model might wrap it in markdown code blocks)
	content = extractJSON(content)

	var result entities.AnalysisResult
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if err := p.ValidateAnalysisResult(&result); err != nil {
		return nil, err
	}

	return &result, nil
}

// ValidateAnalysisResult checks required fields and fills defaults so the
// rest of the pipeline never sees nil collections or out-of-range values.
func (p *Parser) ValidateAnalysisResult(result *entities.AnalysisResult) error {
	if result == nil {
		return fmt.Errorf("analysis result is nil")
	}

	if result.Summary == "" {
		return fmt.Errorf("missing summary in response")
	}

	if result.Title == "" {
		result.Title = "Untitled Meeting"
	}
	if result.Category == "" {
		result.Category = "General"
	}

	// Collections can be empty for short meetings, just ensure they're initialized
	if result.Transcript == nil {
		result.Transcript = make([]entities.TranscriptLine, 0)
	}
	if result.MOM == nil {
		result.MOM = make([]entities.MOMEntry, 0)
	}
	if result.Tags == nil {
		result.Tags = make([]string, 0)
	}
	if result.Tasks == nil {
		result.Tasks = make([]entities.TaskCandidate, 0)
	}

	if result.ConfidenceLevel < 0 {
		result.ConfidenceLevel = 0
	}
	if result.ConfidenceLevel > 100 {
		result.ConfidenceLevel = 100
	}

	for i := range result.Tasks {
		if !entities.TaskPriority(result.Tasks[i].Priority).IsValid() {
			result.Tasks[i].Priority = string(entities.TaskPriorityMedium)
		}
	}

	return nil
}

// extractJSON extracts JSON content from markdown code blocks or plain text
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	// Check if wrapped in markdown code block
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	}

	return strings.TrimSpace(content)
}
