package ingest

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/meetmind-team/meetmind/errors"
	"github.com/meetmind-team/meetmind/internal/domain/entities"
)

// Analyzer produces structured analysis content for a transcript
type Analyzer interface {
	AnalyzeTranscript(ctx context.Context, transcript string) (string, error)
}

// Transcriber converts an audio recording into transcript text
type Transcriber interface {
	TranscribeFromURL(ctx context.Context, audioURL string) (string, error)
}

// MeetingWriter persists a meeting together with its suggested tasks
type MeetingWriter interface {
	CreateWithTasks(ctx context.Context, meeting *entities.Meeting, tasks []*entities.Task) error
}

// Input carries everything a single analyze request provides. Explicit
// Title/Date/Category always win over whatever the model infers.
type Input struct {
	UserID        uuid.UUID
	Transcript    string
	AudioURL      string
	Title         string
	Date          *time.Time
	Category      string
	TranscriptURL *string
	VideoURL      *string
}

// Output is the created meeting and its suggested tasks
type Output struct {
	Meeting *entities.Meeting
	Tasks   []*entities.Task
}

// Service runs the transcript analysis pipeline: resolve text, extract with
// the LLM, persist meeting and suggested tasks atomically.
type Service struct {
	meetings    MeetingWriter
	analyzer    Analyzer
	transcriber Transcriber
	parser      *Parser
	timeout     time.Duration
	logger      *zap.Logger
}

// NewService constructs the ingestion service. transcriber may be nil when
// audio support is not configured.
func NewService(meetings MeetingWriter, analyzer Analyzer, transcriber Transcriber, timeout time.Duration, logger *zap.Logger) *Service {
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	return &Service{
		meetings:    meetings,
		analyzer:    analyzer,
		transcriber: transcriber,
		parser:      NewParser(),
		timeout:     timeout,
		logger:      logger,
	}
}

// Analyze runs the full pipeline for one submission. Resubmitting the same
// transcript creates a new meeting every time, there is no deduplication.
func (s *Service) Analyze(ctx context.Context, in Input) (*Output, error) {
	text := strings.TrimSpace(in.Transcript)

	if text == "" && in.AudioURL != "" && s.transcriber != nil {
		transcribed, err := s.transcriber.TranscribeFromURL(ctx, in.AudioURL)
		if err != nil {
			if s.logger != nil {
				s.logger.Error("transcription failed", zap.Error(err))
			}
			return nil, apperrors.ErrAITranscriptionFailed(err)
		}
		text = strings.TrimSpace(transcribed)
	}

	if text == "" {
		return nil, apperrors.ErrTranscriptRequired()
	}

	// The analysis call gets its own deadline so a stuck upstream cannot
	// hold the request open indefinitely. No retry on failure.
	analysisCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	content, err := s.analyzer.AnalyzeTranscript(analysisCtx, text)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("analysis failed", zap.Error(err))
		}
		return nil, apperrors.ErrAIAnalysisFailed(err)
	}

	result, err := s.parser.ParseAnalysis(content)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("analysis response unparsable", zap.Error(err))
		}
		return nil, apperrors.ErrAIResponseUnparsable(err)
	}

	meeting, err := s.buildMeeting(in, text, result)
	if err != nil {
		return nil, apperrors.ErrInternal(err)
	}
	tasks := buildSuggestedTasks(in.UserID, result)

	if err := s.meetings.CreateWithTasks(ctx, meeting, tasks); err != nil {
		if s.logger != nil {
			s.logger.Error("failed to persist analysis", zap.Error(err))
		}
		return nil, apperrors.ErrDBTransactionFailed(err)
	}

	if s.logger != nil {
		s.logger.Info("meeting analyzed",
			zap.String("meeting_id", meeting.ID.String()),
			zap.Int("tasks", len(tasks)),
			zap.Int("confidence", meeting.ConfidenceLevel))
	}

	return &Output{Meeting: meeting, Tasks: tasks}, nil
}

func (s *Service) buildMeeting(in Input, text string, result *entities.AnalysisResult) (*entities.Meeting, error) {
	title := result.Title
	if in.Title != "" {
		title = in.Title
	}
	date := time.Now()
	if in.Date != nil {
		date = *in.Date
	}
	category := result.Category
	if in.Category != "" {
		category = in.Category
	}

	meeting := entities.NewMeeting(in.UserID, title, date)
	meeting.Summary = result.Summary
	meeting.Transcript = text
	meeting.Category = category
	meeting.ConfidenceLevel = result.ConfidenceLevel
	meeting.TranscriptURL = in.TranscriptURL
	meeting.VideoURL = in.VideoURL

	lines, err := json.Marshal(result.Transcript)
	if err != nil {
		return nil, err
	}
	meeting.TranscriptLines = lines

	mom, err := json.Marshal(result.MOM)
	if err != nil {
		return nil, err
	}
	meeting.MOM = mom

	tags, err := json.Marshal(result.Tags)
	if err != nil {
		return nil, err
	}
	meeting.Tags = tags

	return meeting, nil
}

func buildSuggestedTasks(userID uuid.UUID, result *entities.AnalysisResult) []*entities.Task {
	tasks := make([]*entities.Task, 0, len(result.Tasks))
	for _, candidate := range result.Tasks {
		if strings.TrimSpace(candidate.Title) == "" {
			continue
		}
		task := entities.NewSuggestedTask(userID, candidate.Title, candidate.Description, entities.TaskPriority(candidate.Priority))
		if len(candidate.Tags) > 0 {
			if raw, err := json.Marshal(candidate.Tags); err == nil {
				task.Tags = raw
			}
		}
		tasks = append(tasks, task)
	}
	return tasks
}
