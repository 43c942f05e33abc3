package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nasiya/backend/internal/application/upload"
	"github.com/nasiya/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockObjectStorage implements upload.ObjectStorage for testing
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) Put(ctx context.Context, storageKey string, data []byte, contentType string) error {
	args := m.Called(ctx, storageKey, data, contentType)
	return args.Error(0)
}

func (m *MockObjectStorage) Get(ctx context.Context, storageKey string) (io.ReadCloser, string, error) {
	args := m.Called(ctx, storageKey)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.String(1), args.Error(2)
}

func (m *MockObjectStorage) Delete(ctx context.Context, storageKey string) error {
	args := m.Called(ctx, storageKey)
	return args.Error(0)
}

func (m *MockObjectStorage) Exists(ctx context.Context, storageKey string) (bool, error) {
	args := m.Called(ctx, storageKey)
	return args.Bool(0), args.Error(1)
}

func (m *MockObjectStorage) PublicURL(storageKey string) string {
	args := m.Called(storageKey)
	return args.String(0)
}

func setupUploadHandler(storage *MockObjectStorage) *UploadHandler {
	service := upload.NewUploadService(storage, 1<<20, zap.NewNop())
	return NewUploadHandler(service, zap.NewNop())
}

func multipartImageRequest(t *testing.T, field, filename, contentType string, data []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	header := make(map[string][]string)
	header["Content-Disposition"] = []string{`form-data; name="` + field + `"; filename="` + filename + `"`}
	header["Content-Type"] = []string{contentType}
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/uploads", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUploadHandler_Upload_Success(t *testing.T) {
	storage := new(MockObjectStorage)
	handler := setupUploadHandler(storage)

	storage.On("Put", mock.Anything, mock.AnythingOfType("string"), mock.Anything, "image/jpeg").Return(nil)
	storage.On("PublicURL", mock.AnythingOfType("string")).Return("https://cdn.example.com/object")

	router := setupTestRouter()
	router.POST("/uploads", handler.Upload)

	req := multipartImageRequest(t, "image", "photo.jpg", "image/jpeg", []byte("jpeg-bytes"))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	storage.AssertExpectations(t)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	assert.NotEmpty(t, data["url"])
	// Objects are namespaced under the uploading seller
	assert.True(t, strings.HasPrefix(data["path"].(string), "sellers/"+testSellerID.String()+"/"))
}

func TestUploadHandler_Upload_UnsupportedType(t *testing.T) {
	storage := new(MockObjectStorage)
	handler := setupUploadHandler(storage)

	router := setupTestRouter()
	router.POST("/uploads", handler.Upload)

	req := multipartImageRequest(t, "image", "notes.txt", "text/plain", []byte("hello"))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
	storage.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadHandler_Upload_MissingFile(t *testing.T) {
	storage := new(MockObjectStorage)
	handler := setupUploadHandler(storage)

	router := setupTestRouter()
	router.POST("/uploads", handler.Upload)

	req := httptest.NewRequest(http.MethodPost, "/uploads", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadHandler_Fetch_Success(t *testing.T) {
	storage := new(MockObjectStorage)
	handler := setupUploadHandler(storage)

	key := "sellers/" + testSellerID.String() + "/some-object.jpg"
	storage.On("Get", mock.Anything, key).
		Return(io.NopCloser(strings.NewReader("jpeg-bytes")), "image/jpeg", nil)

	router := setupTestRouter()
	router.GET("/uploads/*path", handler.Fetch)

	req := httptest.NewRequest(http.MethodGet, "/uploads/"+key, nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/jpeg", w.Header().Get("Content-Type"))
	assert.Equal(t, "jpeg-bytes", w.Body.String())
}

func TestUploadHandler_Fetch_Traversal(t *testing.T) {
	storage := new(MockObjectStorage)
	handler := setupUploadHandler(storage)

	router := setupTestRouter()
	router.GET("/uploads/*path", handler.Fetch)

	req := httptest.NewRequest(http.MethodGet, "/uploads/sellers/../secrets.txt", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	storage.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}
