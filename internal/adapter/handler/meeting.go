package handler

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/meetmind-team/meetmind/errors"
	meetingDTO "github.com/meetmind-team/meetmind/internal/adapter/dto/meeting"
	"github.com/meetmind-team/meetmind/internal/adapter/presenter"
	"github.com/meetmind-team/meetmind/internal/domain/entities"
	"github.com/meetmind-team/meetmind/internal/usecase/identity"
	"github.com/meetmind-team/meetmind/internal/usecase/ingest"
	meetingUC "github.com/meetmind-team/meetmind/internal/usecase/meeting"
)

// Meeting handles meeting analysis and CRUD endpoints
type Meeting struct {
	identity *identity.Service
	ingest   *ingest.Service
	meetings *meetingUC.Service
	store    ObjectStore
	logger   *zap.Logger
}

// NewMeeting creates a new meeting handler. store may be nil when object
// storage is not configured; audio uploads are rejected in that case.
func NewMeeting(identitySvc *identity.Service, ingestSvc *ingest.Service, meetingSvc *meetingUC.Service, store ObjectStore, logger *zap.Logger) *Meeting {
	return &Meeting{
		identity: identitySvc,
		ingest:   ingestSvc,
		meetings: meetingSvc,
		store:    store,
		logger:   logger,
	}
}

func (h *Meeting) resolveUser(c echo.Context) (*entities.User, error) {
	claims, err := currentClaims(c)
	if err != nil {
		return nil, err
	}
	return h.identity.Resolve(c.Request().Context(), claims.Subject)
}

// Analyze runs the transcript analysis pipeline
// @Summary      Analyze a meeting transcript
// @Description  Extracts summary, minutes, tags and suggested tasks from a transcript and persists the meeting with its tasks
// @Tags         Meetings
// @Accept       json
// @Accept       multipart/form-data
// @Produce      json
// @Param        request  body  meeting.AnalyzeMeetingRequest  false  "Transcript and optional overrides"
// @Success      201  {object}  meeting.AnalyzeMeetingResponse
// @Failure      400  {object}  map[string]interface{}  "Transcript missing"
// @Failure      404  {object}  map[string]interface{}  "User not synced"
// @Failure      500  {object}  map[string]interface{}  "Analysis failed"
// @Security     BearerAuth
// @Router       /meetings/analyze [post]
func (h *Meeting) Analyze(c echo.Context) error {
	user, err := h.resolveUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	in := ingest.Input{UserID: user.ID}

	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if strings.HasPrefix(contentType, echo.MIMEMultipartForm) {
		if err := h.bindMultipartAnalyze(c, &in); err != nil {
			return HandleError(h.logger, c, err)
		}
	} else {
		var req meetingDTO.AnalyzeMeetingRequest
		if err := c.Bind(&req); err != nil {
			return HandleError(h.logger, c, errors.ErrInvalidPayload())
		}
		if err := c.Validate(&req); err != nil {
			return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
		}
		if err := applyAnalyzeRequest(&req, &in); err != nil {
			return HandleError(h.logger, c, err)
		}
	}

	if in.Transcript != "" && in.TranscriptURL == nil && h.store != nil {
		h.archiveTranscript(c, &in)
	}

	out, err := h.ingest.Analyze(c.Request().Context(), in)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	resp := meetingDTO.AnalyzeMeetingResponse{
		Meeting: presenter.ToMeetingResponse(out.Meeting),
		Tasks:   presenter.ToTaskResponsesFromPtrs(out.Tasks),
	}
	return HandleCreated(h.logger, c, resp)
}

// archiveTranscript stores the raw inline transcript and records its URL on
// the input. Failures are logged, they do not block analysis.
func (h *Meeting) archiveTranscript(c echo.Context, in *ingest.Input) {
	ctx := c.Request().Context()
	objectName := fmt.Sprintf("transcripts/%s/%s.txt", in.UserID, uuid.New().String())
	if err := h.store.UploadText(ctx, objectName, in.Transcript); err != nil {
		if h.logger != nil {
			h.logger.Warn("failed to archive transcript", zap.Error(err))
		}
		return
	}
	url, err := h.store.GetFileURL(ctx, objectName, 24*time.Hour)
	if err != nil {
		if h.logger != nil {
			h.logger.Warn("failed to resolve transcript url", zap.Error(err))
		}
		return
	}
	in.TranscriptURL = &url
}

func applyAnalyzeRequest(req *meetingDTO.AnalyzeMeetingRequest, in *ingest.Input) error {
	in.Transcript = req.Transcript
	in.Title = req.Title
	in.Category = req.Category
	if req.Date != "" {
		date, err := parseDate(req.Date)
		if err != nil {
			return errors.ErrInvalidArgument("invalid date format")
		}
		in.Date = &date
	}
	if req.TranscriptURL != "" {
		transcriptURL := req.TranscriptURL
		in.TranscriptURL = &transcriptURL
	}
	if req.VideoURL != "" {
		videoURL := req.VideoURL
		in.VideoURL = &videoURL
	}
	return nil
}

// bindMultipartAnalyze reads form fields and the optional file part. A text
// file supplies the transcript body; an audio or video file is stored and
// later transcribed.
func (h *Meeting) bindMultipartAnalyze(c echo.Context, in *ingest.Input) error {
	req := meetingDTO.AnalyzeMeetingRequest{
		Transcript:    c.FormValue("transcript"),
		Title:         c.FormValue("title"),
		Date:          c.FormValue("date"),
		Category:      c.FormValue("category"),
		TranscriptURL: c.FormValue("transcriptUrl"),
	}
	if err := applyAnalyzeRequest(&req, in); err != nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		// No file part; the transcript form value must carry the text
		return nil
	}

	src, err := fileHeader.Open()
	if err != nil {
		return errors.ErrInternal(err)
	}
	defer src.Close()

	fileType := fileHeader.Header.Get("Content-Type")
	if strings.HasPrefix(fileType, "audio/") || strings.HasPrefix(fileType, "video/") {
		if h.store == nil {
			return errors.ErrInvalidArgument("audio uploads are not configured")
		}
		objectName := fmt.Sprintf("recordings/%s%s", uuid.New().String(), filepath.Ext(fileHeader.Filename))
		ctx := c.Request().Context()
		if err := h.store.UploadFile(ctx, objectName, src, fileHeader.Size, fileType); err != nil {
			return errors.ErrStorageFailed("upload recording", err)
		}
		url, err := h.store.GetFileURL(ctx, objectName, 24*time.Hour)
		if err != nil {
			return errors.ErrStorageFailed("resolve recording url", err)
		}
		in.AudioURL = url
		in.VideoURL = &url
		return nil
	}

	content, err := io.ReadAll(src)
	if err != nil {
		return errors.ErrInternal(err)
	}
	if in.Transcript == "" {
		in.Transcript = string(content)
	}
	return nil
}

// List returns the caller's meetings
// @Summary      List meetings
// @Description  Returns the caller's meetings newest-first with their tasks
// @Tags         Meetings
// @Produce      json
// @Success      200  {array}  meeting.MeetingResponse
// @Security     BearerAuth
// @Router       /meetings [get]
func (h *Meeting) List(c echo.Context) error {
	user, err := h.resolveUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	meetings, err := h.meetings.List(c.Request().Context(), user.ID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToMeetingResponses(meetings))
}

// Create records a meeting manually
// @Summary      Create a meeting
// @Description  Records a meeting without running analysis; title and date are required
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Param        request  body  meeting.CreateMeetingRequest  true  "Meeting fields"
// @Success      201  {object}  meeting.MeetingResponse
// @Failure      400  {object}  map[string]interface{}  "Title or date missing"
// @Security     BearerAuth
// @Router       /meetings [post]
func (h *Meeting) Create(c echo.Context) error {
	user, err := h.resolveUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req meetingDTO.CreateMeetingRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrMeetingFieldsRequired())
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid date format"))
	}

	in := meetingUC.CreateInput{
		Title:           req.Title,
		Date:            date,
		Duration:        req.Duration,
		Summary:         req.Summary,
		Transcript:      req.Transcript,
		MOM:             toMOMEntries(req.MOM),
		Tags:            req.Tags,
		Category:        req.Category,
		Status:          entities.MeetingStatus(req.Status),
		VideoURL:        req.VideoURL,
		TranscriptURL:   req.TranscriptURL,
		ConfidenceLevel: req.ConfidenceLevel,
	}

	created, err := h.meetings.Create(c.Request().Context(), user.ID, in)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleCreated(h.logger, c, presenter.ToMeetingResponse(created))
}

// Get returns one meeting
// @Summary      Get a meeting
// @Tags         Meetings
// @Produce      json
// @Param        id  path  string  true  "Meeting ID"
// @Success      200  {object}  meeting.MeetingResponse
// @Failure      404  {object}  map[string]interface{}  "Meeting not found"
// @Security     BearerAuth
// @Router       /meetings/{id} [get]
func (h *Meeting) Get(c echo.Context) error {
	user, err := h.resolveUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid meeting id"))
	}

	found, err := h.meetings.Get(c.Request().Context(), id, user.ID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToMeetingResponse(found))
}

// Update patches a meeting
// @Summary      Update a meeting
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Param        id       path  string                        true  "Meeting ID"
// @Param        request  body  meeting.UpdateMeetingRequest  true  "Fields to change"
// @Success      200  {object}  meeting.MeetingResponse
// @Failure      404  {object}  map[string]interface{}  "Meeting not found"
// @Security     BearerAuth
// @Router       /meetings/{id} [put]
func (h *Meeting) Update(c echo.Context) error {
	user, err := h.resolveUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid meeting id"))
	}

	var req meetingDTO.UpdateMeetingRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	in := meetingUC.UpdateInput{
		Title:           req.Title,
		Duration:        req.Duration,
		Summary:         req.Summary,
		Transcript:      req.Transcript,
		MOM:             toMOMEntries(req.MOM),
		Tags:            req.Tags,
		Category:        req.Category,
		VideoURL:        req.VideoURL,
		TranscriptURL:   req.TranscriptURL,
		ConfidenceLevel: req.ConfidenceLevel,
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid date format"))
		}
		in.Date = &date
	}
	if req.Status != nil {
		status := entities.MeetingStatus(*req.Status)
		in.Status = &status
	}

	updated, err := h.meetings.Update(c.Request().Context(), id, user.ID, in)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToMeetingResponse(updated))
}

// Delete removes a meeting and its suggested tasks
// @Summary      Delete a meeting
// @Description  Deletes a meeting; suggested tasks go with it, manual tasks are detached
// @Tags         Meetings
// @Produce      json
// @Param        id  path  string  true  "Meeting ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}  "Meeting not found"
// @Security     BearerAuth
// @Router       /meetings/{id} [delete]
func (h *Meeting) Delete(c echo.Context) error {
	user, err := h.resolveUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid meeting id"))
	}

	if err := h.meetings.Delete(c.Request().Context(), id, user.ID); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, map[string]interface{}{"deleted": id.String()})
}

func toMOMEntries(payload []meetingDTO.MOMEntryPayload) []entities.MOMEntry {
	if payload == nil {
		return nil
	}
	entries := make([]entities.MOMEntry, 0, len(payload))
	for _, p := range payload {
		entries = append(entries, entities.MOMEntry{Type: p.Type, Text: p.Text})
	}
	return entries
}
