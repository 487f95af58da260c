package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/meetmind-team/meetmind/errors"
	taskDTO "github.com/meetmind-team/meetmind/internal/adapter/dto/task"
	"github.com/meetmind-team/meetmind/internal/adapter/presenter"
	"github.com/meetmind-team/meetmind/internal/domain/entities"
	"github.com/meetmind-team/meetmind/internal/usecase/identity"
	taskUC "github.com/meetmind-team/meetmind/internal/usecase/task"
)

// Task handles kanban board task endpoints
type Task struct {
	identity *identity.Service
	tasks    *taskUC.Service
	logger   *zap.Logger
}

// NewTask creates a new task handler
func NewTask(identitySvc *identity.Service, taskSvc *taskUC.Service, logger *zap.Logger) *Task {
	return &Task{
		identity: identitySvc,
		tasks:    taskSvc,
		logger:   logger,
	}
}

func (h *Task) resolveUser(c echo.Context) (*entities.User, error) {
	claims, err := currentClaims(c)
	if err != nil {
		return nil, err
	}
	return h.identity.Resolve(c.Request().Context(), claims.Subject)
}

// List returns the caller's tasks
// @Summary      List tasks
// @Description  Returns the caller's tasks newest-first with source meeting titles
// @Tags         Tasks
// @Produce      json
// @Success      200  {array}  task.TaskResponse
// @Security     BearerAuth
// @Router       /tasks [get]
func (h *Task) List(c echo.Context) error {
	user, err := h.resolveUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	tasks, err := h.tasks.List(c.Request().Context(), user.ID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToTaskResponses(tasks))
}

// Create adds a task to the board
// @Summary      Create a task
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Param        request  body  task.CreateTaskRequest  true  "Task fields"
// @Success      201  {object}  task.TaskResponse
// @Failure      400  {object}  map[string]interface{}  "Title missing"
// @Security     BearerAuth
// @Router       /tasks [post]
func (h *Task) Create(c echo.Context) error {
	user, err := h.resolveUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req taskDTO.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	in := taskUC.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    entities.TaskPriority(req.Priority),
		Status:      entities.TaskStatus(req.Status),
		Tags:        req.Tags,
	}
	if req.SourceMeetingID != nil {
		meetingID, err := uuid.Parse(*req.SourceMeetingID)
		if err != nil {
			return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid source meeting id"))
		}
		in.SourceMeetingID = &meetingID
	}

	created, err := h.tasks.Create(c.Request().Context(), user.ID, in)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleCreated(h.logger, c, presenter.ToTaskResponse(created))
}

// Get returns one task
// @Summary      Get a task
// @Tags         Tasks
// @Produce      json
// @Param        id  path  string  true  "Task ID"
// @Success      200  {object}  task.TaskResponse
// @Failure      404  {object}  map[string]interface{}  "Task not found"
// @Security     BearerAuth
// @Router       /tasks/{id} [get]
func (h *Task) Get(c echo.Context) error {
	user, err := h.resolveUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid task id"))
	}

	found, err := h.tasks.Get(c.Request().Context(), id, user.ID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToTaskResponse(found))
}

// Update patches a task
// @Summary      Update a task
// @Description  Partial update; status changes here accept any board column
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Param        id       path  string                  true  "Task ID"
// @Param        request  body  task.UpdateTaskRequest  true  "Fields to change"
// @Success      200  {object}  task.TaskResponse
// @Failure      404  {object}  map[string]interface{}  "Task not found"
// @Security     BearerAuth
// @Router       /tasks/{id} [put]
func (h *Task) Update(c echo.Context) error {
	user, err := h.resolveUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid task id"))
	}

	var req taskDTO.UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	in := taskUC.UpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
	}
	if req.Priority != nil {
		priority := entities.TaskPriority(*req.Priority)
		in.Priority = &priority
	}
	if req.Status != nil {
		status := entities.TaskStatus(*req.Status)
		in.Status = &status
	}

	updated, err := h.tasks.Update(c.Request().Context(), id, user.ID, in)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToTaskResponse(updated))
}

// Advance moves a task to the next board column
// @Summary      Advance a task
// @Description  Moves the task along Backlog, In Progress, Review, Completed; a completed task cannot advance
// @Tags         Tasks
// @Produce      json
// @Param        id  path  string  true  "Task ID"
// @Success      200  {object}  task.TaskResponse
// @Failure      400  {object}  map[string]interface{}  "Task already completed"
// @Failure      404  {object}  map[string]interface{}  "Task not found"
// @Security     BearerAuth
// @Router       /tasks/{id}/advance [post]
func (h *Task) Advance(c echo.Context) error {
	user, err := h.resolveUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid task id"))
	}

	advanced, err := h.tasks.Advance(c.Request().Context(), id, user.ID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToTaskResponse(advanced))
}

// Delete removes a task
// @Summary      Delete a task
// @Tags         Tasks
// @Produce      json
// @Param        id  path  string  true  "Task ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}  "Task not found"
// @Security     BearerAuth
// @Router       /tasks/{id} [delete]
func (h *Task) Delete(c echo.Context) error {
	user, err := h.resolveUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid task id"))
	}

	if err := h.tasks.Delete(c.Request().Context(), id, user.ID); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, map[string]interface{}{"deleted": id.String()})
}
