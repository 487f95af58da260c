package meeting

import (
	"context"
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

type MeetingServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	svc     *Service
	ownerID uuid.UUID
}

func (suite *MeetingServiceTestSuite) SetupTest() {
	var err error
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(&entities.User{}, &entities.Meeting{}, &entities.Task{})
	suite.Require().NoError(err)

	owner := entities.NewUser("subj_owner", "owner@example.com")
	suite.Require().NoError(suite.db.Create(owner).Error)
	suite.ownerID = owner.ID

	suite.svc = NewService(repository.NewMeetingRepository(suite.db), nil)
}

func (suite *MeetingServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *MeetingServiceTestSuite) TestCreate_RequiresTitleAndDate() {
	_, err := suite.svc.Create(context.Background(), suite.ownerID, CreateInput{Title: "No date"})
	suite.Require().Error(err)

	var appErr apperrors.AppError
	suite.Require().ErrorAs(err, &appErr)
	suite.Equal(apperrors.ErrorCode_MEETING_FIELDS_REQUIRED, appErr.Code)

	_, err = suite.svc.Create(context.Background(), suite.ownerID, CreateInput{Date: time.Now()})
	suite.Require().Error(err)
}

func (suite *MeetingServiceTestSuite) TestCreate_Defaults() {
	created, err := suite.svc.Create(context.Background(), suite.ownerID, CreateInput{
		Title: "Kickoff",
		Date:  time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC),
	})
	suite.Require().NoError(err)

	suite.Equal("0m", created.Duration)
	suite.Equal(entities.MeetingStatusCompleted, created.Status)
}

func (suite *MeetingServiceTestSuite) TestList_NewestFirstByDate() {
	older, err := suite.svc.Create(context.Background(), suite.ownerID, CreateInput{
		Title: "older", Date: time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC),
	})
	suite.Require().NoError(err)
	newer, err := suite.svc.Create(context.Background(), suite.ownerID, CreateInput{
		Title: "newer", Date: time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC),
	})
	suite.Require().NoError(err)

	meetings, err := suite.svc.List(context.Background(), suite.ownerID)
	suite.Require().NoError(err)
	suite.Require().Len(meetings, 2)
	suite.Equal(newer.ID, meetings[0].ID)
	suite.Equal(older.ID, meetings[1].ID)
}

func (suite *MeetingServiceTestSuite) TestUpdate_PartialPatch() {
	created, err := suite.svc.Create(context.Background(), suite.ownerID, CreateInput{
		Title: "Before", Date: time.Now(), Summary: "keep me",
	})
	suite.Require().NoError(err)

	title := "After"
	updated, err := suite.svc.Update(context.Background(), created.ID, suite.ownerID, UpdateInput{Title: &title})
	suite.Require().NoError(err)

	suite.Equal("After", updated.Title)
	suite.Equal("keep me", updated.Summary)
}

func (suite *MeetingServiceTestSuite) TestDelete_CascadesSuggestedDetachesManual() {
	meeting, err := suite.svc.Create(context.Background(), suite.ownerID, CreateInput{
		Title: "Doomed", Date: time.Now(),
	})
	suite.Require().NoError(err)

	suggested := entities.NewSuggestedTask(suite.ownerID, "from the meeting", "", entities.TaskPriorityMedium)
	suggested.SourceMeetingID = &meeting.ID
	suite.Require().NoError(suite.db.Create(suggested).Error)

	manual := entities.NewTask(suite.ownerID, "added by hand")
	manual.SourceMeetingID = &meeting.ID
	suite.Require().NoError(suite.db.Create(manual).Error)

	suite.Require().NoError(suite.svc.Delete(context.Background(), meeting.ID, suite.ownerID))

	var suggestedCount int64
	suite.db.Model(&entities.Task{}).Where("id = ?", suggested.ID).Count(&suggestedCount)
	suite.Zero(suggestedCount)

	var survivor entities.Task
	suite.Require().NoError(suite.db.First(&survivor, "id = ?", manual.ID).Error)
	suite.Nil(survivor.SourceMeetingID)
}

func (suite *MeetingServiceTestSuite) TestDelete_NotFound() {
	err := suite.svc.Delete(context.Background(), uuid.New(), suite.ownerID)
	suite.Require().Error(err)

	var appErr apperrors.AppError
	suite.Require().ErrorAs(err, &appErr)
	suite.Equal(apperrors.ErrorCode_MEETING_NOT_FOUND, appErr.Code)
	suite.Equal(404, appErr.HTTPCode)
}

func TestMeetingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MeetingServiceTestSuite))
}
