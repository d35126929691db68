package service

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
)

// Upload limits mirror what the public form renderer enforces client-side.
const maxUploadSize = 10 << 20 // 10 MiB

var allowedUploadTypes = map[string]struct{}{
	"image/jpeg":      {},
	"image/png":       {},
	"image/gif":       {},
	"application/pdf": {},
	"application/msword": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
	"text/plain": {},
}

// ObjectStore is the narrow blob-store surface the upload service needs.
// minio.Client satisfies it.
type ObjectStore interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	EndpointURL() *url.URL
}

// UploadResult describes a stored file.
type UploadResult struct {
	URL          string `json:"url"`
	ObjectKey    string `json:"fileName"`
	Size         int64  `json:"size"`
	ContentType  string `json:"type"`
	OriginalName string `json:"originalName"`
}

// UploadService is a validated pass-through to the blob store. It keeps no
// state of its own.
type UploadService interface {
	Upload(ctx context.Context, formID, fieldID, fileName, contentType string, size int64, reader io.Reader) (UploadResult, error)
}

type uploadService struct {
	store  ObjectStore
	bucket string
	now    func() time.Time
}

// NewUploadService constructs an uploadService writing into bucket.
func NewUploadService(store ObjectStore, bucket string) UploadService {
	return &uploadService{
		store:  store,
		bucket: bucket,
		now:    time.Now,
	}
}

func (s *uploadService) Upload(ctx context.Context, formID, fieldID, fileName, contentType string, size int64, reader io.Reader) (UploadResult, error) {
	if formID == "" || fieldID == "" || fileName == "" {
		return UploadResult{}, &ValidationError{Message: "formId, fieldId and file are required"}
	}

	if _, ok := allowedUploadTypes[contentType]; !ok {
		return UploadResult{}, &ValidationError{Message: fmt.Sprintf("file type %s is not allowed", contentType)}
	}

	if size > maxUploadSize {
		return UploadResult{}, &ValidationError{Message: "file size exceeds 10MB limit"}
	}

	objectKey := s.objectKey(formID, fieldID, fileName)

	info, err := s.store.PutObject(ctx, s.bucket, objectKey, reader, size, minio.PutObjectOptions{
		ContentType:  contentType,
		CacheControl: "max-age=3600",
	})
	if err != nil {
		return UploadResult{}, fmt.Errorf("upload object: %w", err)
	}

	return UploadResult{
		URL:          fmt.Sprintf("%s/%s/%s", strings.TrimRight(s.store.EndpointURL().String(), "/"), s.bucket, objectKey),
		ObjectKey:    objectKey,
		Size:         info.Size,
		ContentType:  contentType,
		OriginalName: fileName,
	}, nil
}

func (s *uploadService) objectKey(formID, fieldID, fileName string) string {
	ext := strings.TrimPrefix(path.Ext(fileName), ".")
	if ext == "" {
		ext = "bin"
	}
	return fmt.Sprintf("%s/%s/%d_%06x.%s", formID, fieldID, s.now().UnixMilli(), rand.Intn(1<<24), ext)
}
