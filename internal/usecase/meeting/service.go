package meeting

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/meetmind-team/meetmind/errors"
	"github.com/meetmind-team/meetmind/internal/domain/entities"
)

// Store is the persistence surface the meeting service needs
type Store interface {
	Create(ctx context.Context, meeting *entities.Meeting) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]entities.Meeting, error)
	FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*entities.Meeting, error)
	Update(ctx context.Context, meeting *entities.Meeting) error
	DeleteCascade(ctx context.Context, id, userID uuid.UUID) error
}

// CreateInput carries fields for manually recording a meeting
type CreateInput struct {
	Title           string
	Date            time.Time
	Duration        string
	Summary         string
	Transcript      string
	MOM             []entities.MOMEntry
	Tags            []string
	Category        string
	Status          entities.MeetingStatus
	VideoURL        *string
	TranscriptURL   *string
	ConfidenceLevel int
}

// UpdateInput is a partial patch; nil fields are left untouched
type UpdateInput struct {
	Title           *string
	Date            *time.Time
	Duration        *string
	Summary         *string
	Transcript      *string
	MOM             []entities.MOMEntry
	Tags            []string
	Category        *string
	Status          *entities.MeetingStatus
	VideoURL        *string
	TranscriptURL   *string
	ConfidenceLevel *int
}

// Service provides owner-scoped meeting CRUD for the dashboard
type Service struct {
	meetings Store
	logger   *zap.Logger
}

// NewService constructs the meeting service
func NewService(meetings Store, logger *zap.Logger) *Service {
	return &Service{
		meetings: meetings,
		logger:   logger,
	}
}

// List returns the user's meetings newest-first
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]entities.Meeting, error) {
	meetings, err := s.meetings.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.ErrDBQueryFailed("list meetings", err)
	}
	return meetings, nil
}

// Create records a meeting manually, without running analysis
func (s *Service) Create(ctx context.Context, userID uuid.UUID, in CreateInput) (*entities.Meeting, error) {
	if in.Title == "" || in.Date.IsZero() {
		return nil, apperrors.ErrMeetingFieldsRequired()
	}

	meeting := entities.NewMeeting(userID, in.Title, in.Date)
	if in.Duration != "" {
		meeting.Duration = in.Duration
	}
	meeting.Summary = in.Summary
	meeting.Transcript = in.Transcript
	meeting.Category = in.Category
	meeting.ConfidenceLevel = in.ConfidenceLevel
	meeting.VideoURL = in.VideoURL
	meeting.TranscriptURL = in.TranscriptURL
	if in.Status.IsValid() {
		meeting.Status = in.Status
	}
	if in.MOM != nil {
		raw, err := json.Marshal(in.MOM)
		if err != nil {
			return nil, apperrors.ErrInternal(err)
		}
		meeting.MOM = raw
	}
	if in.Tags != nil {
		raw, err := json.Marshal(in.Tags)
		if err != nil {
			return nil, apperrors.ErrInternal(err)
		}
		meeting.Tags = raw
	}

	if err := s.meetings.Create(ctx, meeting); err != nil {
		return nil, apperrors.ErrDBQueryFailed("create meeting", err)
	}

	if s.logger != nil {
		s.logger.Info("meeting created", zap.String("meeting_id", meeting.ID.String()))
	}
	return meeting, nil
}

// Get returns one meeting scoped to its owner
func (s *Service) Get(ctx context.Context, id, userID uuid.UUID) (*entities.Meeting, error) {
	meeting, err := s.meetings.FindByIDForUser(ctx, id, userID)
	if err == entities.ErrMeetingNotFound {
		return nil, apperrors.ErrMeetingNotFound(id.String())
	}
	if err != nil {
		return nil, apperrors.ErrDBQueryFailed("find meeting", err)
	}
	return meeting, nil
}

// Update applies a partial patch to a meeting
func (s *Service) Update(ctx context.Context, id, userID uuid.UUID, in UpdateInput) (*entities.Meeting, error) {
	meeting, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		meeting.Title = *in.Title
	}
	if in.Date != nil {
		meeting.Date = *in.Date
	}
	if in.Duration != nil {
		meeting.Duration = *in.Duration
	}
	if in.Summary != nil {
		meeting.Summary = *in.Summary
	}
	if in.Transcript != nil {
		meeting.Transcript = *in.Transcript
	}
	if in.Category != nil {
		meeting.Category = *in.Category
	}
	if in.Status != nil {
		if !in.Status.IsValid() {
			return nil, apperrors.ErrInvalidArgument("invalid meeting status")
		}
		meeting.Status = *in.Status
	}
	if in.VideoURL != nil {
		meeting.VideoURL = in.VideoURL
	}
	if in.TranscriptURL != nil {
		meeting.TranscriptURL = in.TranscriptURL
	}
	if in.ConfidenceLevel != nil {
		meeting.ConfidenceLevel = *in.ConfidenceLevel
	}
	if in.MOM != nil {
		raw, err := json.Marshal(in.MOM)
		if err != nil {
			return nil, apperrors.ErrInternal(err)
		}
		meeting.MOM = raw
	}
	if in.Tags != nil {
		raw, err := json.Marshal(in.Tags)
		if err != nil {
			return nil, apperrors.ErrInternal(err)
		}
		meeting.Tags = raw
	}

	if err := meeting.Validate(); err != nil {
		return nil, apperrors.ErrMeetingFieldsRequired()
	}

	if err := s.meetings.Update(ctx, meeting); err != nil {
		return nil, apperrors.ErrDBQueryFailed("update meeting", err)
	}
	return meeting, nil
}

// Delete removes a meeting. Suggested tasks that came out of it are deleted
// with it; manually created tasks only lose the link.
func (s *Service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	err := s.meetings.DeleteCascade(ctx, id, userID)
	if err == entities.ErrMeetingNotFound {
		return apperrors.ErrMeetingNotFound(id.String())
	}
	if err != nil {
		return apperrors.ErrDBQueryFailed("delete meeting", err)
	}

	if s.logger != nil {
		s.logger.Info("meeting deleted", zap.String("meeting_id", id.String()))
	}
	return nil
}
