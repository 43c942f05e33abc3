// Package upload handles seller image uploads backed by object storage.
package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/nasiya/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ErrObjectNotFound is returned when the requested object does not exist
var ErrObjectNotFound = errors.New("object not found")

// ObjectStorage abstracts the S3-compatible backend
type ObjectStorage interface {
	Put(ctx context.Context, storageKey string, data []byte, contentType string) error
	Get(ctx context.Context, storageKey string) (io.ReadCloser, string, error)
	Delete(ctx context.Context, storageKey string) error
	Exists(ctx context.Context, storageKey string) (bool, error)
	PublicURL(storageKey string) string
}

// allowedImageTypes maps accepted content types to file extensions
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// UploadService stores and serves seller-scoped images
type UploadService struct {
	storage       ObjectStorage
	maxUploadSize int64
	logger        *zap.Logger
}

// NewUploadService creates a new upload service
func NewUploadService(storage ObjectStorage, maxUploadSize int64, logger *zap.Logger) *UploadService {
	return &UploadService{
		storage:       storage,
		maxUploadSize: maxUploadSize,
		logger:        logger,
	}
}

// UploadResult is returned after a successful upload
type UploadResult struct {
	URL  string `json:"url"`
	Path string `json:"path"`
}

// UploadImage validates and stores an image for the seller.
// Keys are namespaced per seller so one seller cannot overwrite
// another's objects.
func (s *UploadService) UploadImage(ctx context.Context, sellerID uuid.UUID, data []byte, contentType string) (*UploadResult, error) {
	if int64(len(data)) > s.maxUploadSize {
		return nil, shared.NewDomainError("FILE_TOO_LARGE",
			fmt.Sprintf("File exceeds the maximum upload size of %d bytes", s.maxUploadSize))
	}
	if len(data) == 0 {
		return nil, shared.NewDomainError("EMPTY_FILE", "Uploaded file is empty")
	}

	ext, ok := allowedImageTypes[strings.ToLower(contentType)]
	if !ok {
		return nil, shared.NewDomainError("UNSUPPORTED_MEDIA_TYPE", "Only JPEG, PNG and WebP images are accepted")
	}

	storageKey := fmt.Sprintf("sellers/%s/%s%s", sellerID, uuid.New(), ext)
	if err := s.storage.Put(ctx, storageKey, data, contentType); err != nil {
		s.logger.Error("Failed to store uploaded image",
			zap.String("seller_id", sellerID.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("UPLOAD_FAILED", "Failed to store the uploaded file")
	}

	s.logger.Info("Image uploaded",
		zap.String("seller_id", sellerID.String()),
		zap.String("path", storageKey),
		zap.Int("size", len(data)))

	return &UploadResult{
		URL:  s.storage.PublicURL(storageKey),
		Path: storageKey,
	}, nil
}

// FetchImage streams a stored object back. Traversal outside the
// sellers/ namespace is rejected.
func (s *UploadService) FetchImage(ctx context.Context, storageKey string) (io.ReadCloser, string, error) {
	cleaned := path.Clean(strings.TrimPrefix(storageKey, "/"))
	if !strings.HasPrefix(cleaned, "sellers/") {
		return nil, "", shared.ErrNotFound
	}

	body, contentType, err := s.storage.Get(ctx, cleaned)
	if err != nil {
		if errors.Is(err, ErrObjectNotFound) {
			return nil, "", shared.ErrNotFound
		}
		return nil, "", err
	}
	return body, contentType, nil
}
