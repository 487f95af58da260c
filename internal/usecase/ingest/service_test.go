package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	apperrors "github.com/meetmind-team/meetmind/errors"
	"github.com/meetmind-team/meetmind/internal/adapter/repository"
	"github.com/meetmind-team/meetmind/internal/domain/entities"
)

// fakeAnalyzer returns canned model output or an error
type fakeAnalyzer struct {
	content string
	err     error
}

func (f *fakeAnalyzer) AnalyzeTranscript(ctx context.Context, transcript string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.content, nil
}

type IngestServiceTestSuite struct {
	suite.Suite
	db     *gorm.DB
	userID uuid.UUID
}

func (suite *IngestServiceTestSuite) SetupTest() {
	var err error
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(&entities.User{}, &entities.Meeting{}, &entities.Task{})
	suite.Require().NoError(err)

	user := entities.NewUser("subj_1", "alice@example.com")
	suite.Require().NoError(suite.db.Create(user).Error)
	suite.userID = user.ID
}

func (suite *IngestServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *IngestServiceTestSuite) newService(analyzer Analyzer) *Service {
	repo := repository.NewMeetingRepository(suite.db)
	return NewService(repo, analyzer, nil, 5*time.Second, nil)
}

const standupAnalysis = `{
	"title": "General sync",
	"summary": "The team discussed deploy readiness.",
	"transcript": [{"speaker": "Dana", "timestamp": "00:00:05", "text": "I will fix the login bug"}],
	"mom": [{"type": "action", "text": "Fix the login bug"}],
	"tags": ["deploy"],
	"category": "General",
	"confidence_level": 85,
	"tasks": [{"title": "Fix the login bug", "description": "Reported by QA", "priority": "High", "tags": ["bug"]}]
}`

func (suite *IngestServiceTestSuite) TestAnalyze_StandupScenario() {
	svc := suite.newService(&fakeAnalyzer{content: standupAnalysis})

	date := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	out, err := svc.Analyze(context.Background(), Input{
		UserID:     suite.userID,
		Transcript: "Dana: I will fix the login bug before the deploy.",
		Title:      "Standup",
		Date:       &date,
		Category:   "Eng",
	})
	suite.Require().NoError(err)

	// Explicit values win over extracted ones
	suite.Equal("Standup", out.Meeting.Title)
	suite.Equal("Eng", out.Meeting.Category)
	suite.True(out.Meeting.Date.Equal(date))

	suite.Equal("0m", out.Meeting.Duration)
	suite.Equal(entities.MeetingStatusCompleted, out.Meeting.Status)
	suite.Equal(85, out.Meeting.ConfidenceLevel)
	suite.Equal(suite.userID, out.Meeting.UserID)

	suite.Require().Len(out.Tasks, 1)
	task := out.Tasks[0]
	suite.Equal("Fix the login bug", task.Title)
	suite.Equal(entities.TaskPriorityHigh, task.Priority)
	suite.Equal(entities.TaskStatusBacklog, task.Status)
	suite.True(task.Suggested)
	suite.Require().NotNil(task.SourceMeetingID)
	suite.Equal(out.Meeting.ID, *task.SourceMeetingID)

	// task_ids on the meeting matches the created task set
	var stored entities.Meeting
	suite.Require().NoError(suite.db.First(&stored, "id = ?", out.Meeting.ID).Error)
	var taskIDs []uuid.UUID
	suite.Require().NoError(json.Unmarshal(stored.TaskIDs, &taskIDs))
	suite.Require().Len(taskIDs, 1)
	suite.Equal(task.ID, taskIDs[0])
}

func (suite *IngestServiceTestSuite) TestAnalyze_EmptyTranscript() {
	svc := suite.newService(&fakeAnalyzer{content: standupAnalysis})

	_, err := svc.Analyze(context.Background(), Input{
		UserID:     suite.userID,
		Transcript: "   \n\t ",
	})
	suite.Require().Error(err)

	var appErr apperrors.AppError
	suite.Require().ErrorAs(err, &appErr)
	suite.Equal(apperrors.ErrorCode_TRANSCRIPT_REQUIRED, appErr.Code)
	suite.Equal(400, appErr.HTTPCode)

	// Nothing was written
	var meetingCount, taskCount int64
	suite.db.Model(&entities.Meeting{}).Count(&meetingCount)
	suite.db.Model(&entities.Task{}).Count(&taskCount)
	suite.Zero(meetingCount)
	suite.Zero(taskCount)
}

func (suite *IngestServiceTestSuite) TestAnalyze_UpstreamFailureWritesNothing() {
	svc := suite.newService(&fakeAnalyzer{err: errors.New("upstream exploded")})

	_, err := svc.Analyze(context.Background(), Input{
		UserID:     suite.userID,
		Transcript: "A transcript.",
	})
	suite.Require().Error(err)

	var appErr apperrors.AppError
	suite.Require().ErrorAs(err, &appErr)
	suite.Equal(apperrors.ErrorCode_AI_ANALYSIS_FAILED, appErr.Code)
	suite.Equal(500, appErr.HTTPCode)

	var meetingCount int64
	suite.db.Model(&entities.Meeting{}).Count(&meetingCount)
	suite.Zero(meetingCount)
}

func (suite *IngestServiceTestSuite) TestAnalyze_UnparsableResponse() {
	svc := suite.newService(&fakeAnalyzer{content: "sorry, I cannot do that"})

	_, err := svc.Analyze(context.Background(), Input{
		UserID:     suite.userID,
		Transcript: "A transcript.",
	})
	suite.Require().Error(err)

	var appErr apperrors.AppError
	suite.Require().ErrorAs(err, &appErr)
	suite.Equal(apperrors.ErrorCode_AI_RESPONSE_UNPARSABLE, appErr.Code)
}

func (suite *IngestServiceTestSuite) TestAnalyze_ResubmissionCreatesNewMeeting() {
	svc := suite.newService(&fakeAnalyzer{content: standupAnalysis})

	in := Input{UserID: suite.userID, Transcript: "Same transcript."}
	first, err := svc.Analyze(context.Background(), in)
	suite.Require().NoError(err)
	second, err := svc.Analyze(context.Background(), in)
	suite.Require().NoError(err)

	suite.NotEqual(first.Meeting.ID, second.Meeting.ID)

	var meetingCount int64
	suite.db.Model(&entities.Meeting{}).Count(&meetingCount)
	suite.EqualValues(2, meetingCount)
}

func (suite *IngestServiceTestSuite) TestAnalyze_TimeoutSurfacesAsAnalysisFailure() {
	slow := &slowAnalyzer{delay: 100 * time.Millisecond}
	repo := repository.NewMeetingRepository(suite.db)
	svc := NewService(repo, slow, nil, 10*time.Millisecond, nil)

	_, err := svc.Analyze(context.Background(), Input{
		UserID:     suite.userID,
		Transcript: "A transcript.",
	})
	suite.Require().Error(err)

	var appErr apperrors.AppError
	suite.Require().ErrorAs(err, &appErr)
	suite.Equal(apperrors.ErrorCode_AI_ANALYSIS_FAILED, appErr.Code)
}

type slowAnalyzer struct {
	delay time.Duration
}

func (s *slowAnalyzer) AnalyzeTranscript(ctx context.Context, transcript string) (string, error) {
	select {
	case <-time.After(s.delay):
		return standupAnalysis, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func TestIngestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(IngestServiceTestSuite))
}
