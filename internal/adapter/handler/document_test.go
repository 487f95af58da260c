package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/meetmind-team/meetmind/internal/adapter/repository"
	"github.com/meetmind-team/meetmind/internal/domain/entities"
	"github.com/meetmind-team/meetmind/internal/infrastructure/cache"
	"github.com/meetmind-team/meetmind/internal/infrastructure/http/middleware"
	"github.com/meetmind-team/meetmind/internal/infrastructure/storage"
	"github.com/meetmind-team/meetmind/internal/usecase/identity"
	"github.com/meetmind-team/meetmind/pkg/session"
)

// fakeStore records uploads in memory
type fakeStore struct {
	objects map[string][]byte
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: make(map[string][]byte)}
}

func (f *fakeStore) UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	f.objects[objectName] = data
	return nil
}

func (f *fakeStore) GetFileURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	return "https://storage.test/" + objectName, nil
}

func (f *fakeStore) UploadText(ctx context.Context, objectName string, content string) error {
	f.objects[objectName] = []byte(content)
	return nil
}

func (f *fakeStore) ResolveDownloadURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	if _, ok := f.objects[objectName]; !ok {
		return "", storage.ErrObjectNotFound
	}
	return "https://storage.test/" + objectName, nil
}

func (f *fakeStore) ListFiles(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	for key := range f.objects {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

type DocumentHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	e       *echo.Echo
	store   *fakeStore
	handler *Document
	userID  string
}

func (suite *DocumentHandlerTestSuite) SetupTest() {
	var err error
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)
	suite.Require().NoError(suite.db.AutoMigrate(&entities.User{}, &entities.Meeting{}, &entities.Task{}))

	user := entities.NewUser("subj_docs", "docs@example.com")
	suite.Require().NoError(suite.db.Create(user).Error)
	suite.userID = user.ID.String()

	identitySvc := identity.NewService(repository.NewUserRepository(suite.db), cache.NewMemoryStore(), nil)
	suite.store = newFakeStore()
	// Small ceiling so the size check is testable without huge payloads
	suite.handler = NewDocument(identitySvc, suite.store, 64, nil)

	suite.e = echo.New()
}

func (suite *DocumentHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *DocumentHandlerTestSuite) withSession(c echo.Context) {
	c.Set(middleware.SessionContextKey, &session.Claims{
		Email:            "docs@example.com",
		RegisteredClaims: jwt.RegisteredClaims{Subject: "subj_docs"},
	})
}

func (suite *DocumentHandlerTestSuite) uploadRequest(fileContent []byte) (echo.Context, *httptest.ResponseRecorder) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if fileContent != nil {
		part, err := writer.CreateFormFile("file", "notes.txt")
		suite.Require().NoError(err)
		_, err = part.Write(fileContent)
		suite.Require().NoError(err)
	}
	suite.Require().NoError(writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/documents/upload", &buf)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	rec := httptest.NewRecorder()
	c := suite.e.NewContext(req, rec)
	suite.withSession(c)
	return c, rec
}

func (suite *DocumentHandlerTestSuite) TestUpload_Success() {
	c, rec := suite.uploadRequest([]byte("meeting notes"))

	suite.Require().NoError(suite.handler.Upload(c))
	suite.Require().Equal(http.StatusOK, rec.Code)

	var body struct {
		Data struct {
			URL      string `json:"url"`
			ObjectID string `json:"objectId"`
		} `json:"data"`
	}
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	suite.NotEmpty(body.Data.ObjectID)
	suite.True(strings.HasPrefix(body.Data.ObjectID, "documents/"+suite.userID+"/"))
	suite.Contains(body.Data.URL, body.Data.ObjectID)
	suite.Contains(suite.store.objects, body.Data.ObjectID)
}

func (suite *DocumentHandlerTestSuite) TestUpload_NoFile() {
	c, rec := suite.uploadRequest(nil)

	suite.Require().NoError(suite.handler.Upload(c))
	suite.Equal(http.StatusBadRequest, rec.Code)
}

func (suite *DocumentHandlerTestSuite) TestUpload_TooLarge() {
	c, rec := suite.uploadRequest(bytes.Repeat([]byte("x"), 128))

	suite.Require().NoError(suite.handler.Upload(c))
	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.Empty(suite.store.objects)
}

func (suite *DocumentHandlerTestSuite) downloadRequest(query string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/v1/documents/download"+query, nil)
	rec := httptest.NewRecorder()
	c := suite.e.NewContext(req, rec)
	suite.withSession(c)
	return c, rec
}

func (suite *DocumentHandlerTestSuite) TestDownload_MissingFileID() {
	c, rec := suite.downloadRequest("")

	suite.Require().NoError(suite.handler.Download(c))
	suite.Equal(http.StatusBadRequest, rec.Code)
}

func (suite *DocumentHandlerTestSuite) TestDownload_NotFound() {
	c, rec := suite.downloadRequest("?fileId=documents/missing.txt")

	suite.Require().NoError(suite.handler.Download(c))
	suite.Equal(http.StatusNotFound, rec.Code)
}

func (suite *DocumentHandlerTestSuite) TestDownload_Success() {
	suite.store.objects["documents/abc.txt"] = []byte("hi")

	c, rec := suite.downloadRequest("?fileId=documents/abc.txt")

	suite.Require().NoError(suite.handler.Download(c))
	suite.Require().Equal(http.StatusOK, rec.Code)

	var body struct {
		Data struct {
			URL string `json:"url"`
		} `json:"data"`
	}
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	suite.Equal("https://storage.test/documents/abc.txt", body.Data.URL)
}

func (suite *DocumentHandlerTestSuite) TestList_OnlyOwnDocuments() {
	mine := "documents/" + suite.userID + "/a.txt"
	theirs := "documents/" + uuid.New().String() + "/b.txt"
	suite.store.objects[mine] = []byte("mine")
	suite.store.objects[theirs] = []byte("theirs")

	req := httptest.NewRequest(http.MethodGet, "/v1/documents", nil)
	rec := httptest.NewRecorder()
	c := suite.e.NewContext(req, rec)
	suite.withSession(c)

	suite.Require().NoError(suite.handler.List(c))
	suite.Require().Equal(http.StatusOK, rec.Code)

	var body struct {
		Data struct {
			Objects []string `json:"objects"`
		} `json:"data"`
	}
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	suite.Equal([]string{mine}, body.Data.Objects)
}

func TestDocumentHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(DocumentHandlerTestSuite))
}
