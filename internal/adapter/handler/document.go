package handler

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/meetmind-team/meetmind/errors"
	documentDTO "github.com/meetmind-team/meetmind/internal/adapter/dto/document"
	"github.com/meetmind-team/meetmind/internal/infrastructure/storage"
	"github.com/meetmind-team/meetmind/internal/usecase/identity"
)

const downloadURLExpiry = 1 * time.Hour

// ObjectStore is the storage surface the handlers need
type ObjectStore interface {
	UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error
	UploadText(ctx context.Context, objectName string, content string) error
	GetFileURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
	ResolveDownloadURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
	ListFiles(ctx context.Context, prefix string) ([]string, error)
}

// Document handles meeting document upload and download endpoints
type Document struct {
	identity      *identity.Service
	store         ObjectStore
	maxUploadSize int64
	logger        *zap.Logger
}

// NewDocument creates a new document handler
func NewDocument(identitySvc *identity.Service, store ObjectStore, maxUploadSize int64, logger *zap.Logger) *Document {
	if maxUploadSize <= 0 {
		maxUploadSize = 500 * 1024 * 1024
	}
	return &Document{
		identity:      identitySvc,
		store:         store,
		maxUploadSize: maxUploadSize,
		logger:        logger,
	}
}

// Upload stores a meeting document
// @Summary      Upload a document
// @Description  Stores a meeting document (transcript file, recording, attachment) and returns its object id and URL
// @Tags         Documents
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Document to upload"
// @Success      200  {object}  document.UploadResponse
// @Failure      400  {object}  map[string]interface{}  "File missing or too large"
// @Security     BearerAuth
// @Router       /documents/upload [post]
func (h *Document) Upload(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	user, err := h.identity.Resolve(c.Request().Context(), claims.Subject)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return HandleError(h.logger, c, errors.ErrFileNotProvided())
	}
	if fileHeader.Size > h.maxUploadSize {
		return HandleError(h.logger, c, errors.ErrFileTooLarge(h.maxUploadSize))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}
	defer src.Close()

	// Objects live under a per-user prefix so listing stays owner-scoped
	objectID := fmt.Sprintf("documents/%s/%s%s", user.ID, uuid.New().String(), filepath.Ext(fileHeader.Filename))
	contentType := fileHeader.Header.Get("Content-Type")

	ctx := c.Request().Context()
	if err := h.store.UploadFile(ctx, objectID, src, fileHeader.Size, contentType); err != nil {
		return HandleError(h.logger, c, errors.ErrStorageFailed("upload document", err))
	}

	url, err := h.store.GetFileURL(ctx, objectID, downloadURLExpiry)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrStorageFailed("resolve document url", err))
	}

	if h.logger != nil {
		h.logger.Info("document uploaded",
			zap.String("object_id", objectID),
			zap.Int64("size", fileHeader.Size))
	}

	return HandleSuccess(h.logger, c, documentDTO.UploadResponse{
		URL:      url,
		ObjectID: objectID,
	})
}

// Download resolves a time-limited download URL for a stored document
// @Summary      Download a document
// @Description  Returns a presigned URL for a previously uploaded document
// @Tags         Documents
// @Produce      json
// @Param        fileId  query  string  true  "Object id returned by upload"
// @Success      200  {object}  document.DownloadResponse
// @Failure      400  {object}  map[string]interface{}  "fileId missing"
// @Failure      404  {object}  map[string]interface{}  "File not found"
// @Security     BearerAuth
// @Router       /documents/download [get]
func (h *Document) Download(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	if _, err := h.identity.Resolve(c.Request().Context(), claims.Subject); err != nil {
		return HandleError(h.logger, c, err)
	}

	fileID := c.QueryParam("fileId")
	if fileID == "" {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("fileId is required"))
	}

	url, err := h.store.ResolveDownloadURL(c.Request().Context(), fileID, downloadURLExpiry)
	if err == storage.ErrObjectNotFound {
		return HandleError(h.logger, c, errors.ErrFileNotFound(fileID))
	}
	if err != nil {
		return HandleError(h.logger, c, errors.ErrStorageFailed("resolve download url", err))
	}

	return HandleSuccess(h.logger, c, documentDTO.DownloadResponse{URL: url})
}

// List returns the caller's stored document object ids
// @Summary      List documents
// @Description  Returns the object ids of all documents the caller has uploaded
// @Tags         Documents
// @Produce      json
// @Success      200  {object}  document.ListResponse
// @Security     BearerAuth
// @Router       /documents [get]
func (h *Document) List(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	user, err := h.identity.Resolve(c.Request().Context(), claims.Subject)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	objects, err := h.store.ListFiles(c.Request().Context(), fmt.Sprintf("documents/%s/", user.ID))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrStorageFailed("list documents", err))
	}
	if objects == nil {
		objects = []string{}
	}

	return HandleSuccess(h.logger, c, documentDTO.ListResponse{Objects: objects})
}
