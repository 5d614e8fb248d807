package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/SscSPs/investment_ledger_app/internal/apperrors"
	"github.com/SscSPs/investment_ledger_app/internal/core/ports/gateways"
	"github.com/google/uuid"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	gcs "google.golang.org/api/storage/v1"
)

// GCSStorage uploads documents to a Google Cloud Storage bucket.
type GCSStorage struct {
	bucket  string
	service *gcs.Service
}

var _ gateways.DocumentStorage = (*GCSStorage)(nil)

// NewGCSStorage authenticates with credentialsJSON, or application default
// credentials when it is empty.
func NewGCSStorage(ctx context.Context, bucket string, credentialsJSON string) (*GCSStorage, error) {
	var creds *google.Credentials
	var err error
	if credentialsJSON != "" {
		creds, err = google.CredentialsFromJSON(ctx, []byte(credentialsJSON), gcs.DevstorageReadWriteScope)
	} else {
		creds, err = google.FindDefaultCredentials(ctx, gcs.DevstorageReadWriteScope)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load GCS credentials: %w", err)
	}
	service, err := gcs.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}
	return &GCSStorage{bucket: bucket, service: service}, nil
}

func (s *GCSStorage) Upload(ctx context.Context, content []byte, filename string, folderHint string) (string, error) {
	contentType, ext, err := DetectDocumentType(content)
	if err != nil {
		return "", err
	}
	name := path.Join(sanitizeFolder(folderHint), uuid.NewString()+ext)
	obj := &gcs.Object{Name: name, ContentType: contentType, Metadata: map[string]string{"originalName": filename}}

	_, err = s.service.Objects.Insert(s.bucket, obj).
		Media(bytes.NewReader(content), googleapi.ContentType(contentType)).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("%w: gcs insert %s: %v", apperrors.ErrUploadFailed, name, err)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, name), nil
}
