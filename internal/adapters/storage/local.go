package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/SscSPs/investment_ledger_app/internal/apperrors"
	"github.com/SscSPs/investment_ledger_app/internal/core/ports/gateways"
	"github.com/google/uuid"
)

// LocalStorage writes documents under a directory served at /uploads.
type LocalStorage struct {
	dir           string
	publicBaseURL string
}

var _ gateways.DocumentStorage = (*LocalStorage)(nil)

// NewLocalStorage creates dir if needed.
func NewLocalStorage(dir, publicBaseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir %s: %w", dir, err)
	}
	return &LocalStorage{dir: dir, publicBaseURL: strings.TrimSuffix(publicBaseURL, "/")}, nil
}

func (s *LocalStorage) Upload(ctx context.Context, content []byte, filename string, folderHint string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrUploadFailed, err)
	}
	_, ext, err := DetectDocumentType(content)
	if err != nil {
		return "", err
	}
	folder := sanitizeFolder(folderHint)
	name := uuid.NewString() + ext

	target := filepath.Join(s.dir, folder)
	if err := os.MkdirAll(target, 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrUploadFailed, err)
	}
	if err := os.WriteFile(filepath.Join(target, name), content, 0o644); err != nil {
		return "", fmt.Errorf("%w: writing %s: %v", apperrors.ErrUploadFailed, filename, err)
	}
	return s.publicBaseURL + "/" + path.Join("uploads", folder, name), nil
}

// sanitizeFolder keeps letters, digits, dashes and underscores.
func sanitizeFolder(hint string) string {
	var b strings.Builder
	for _, r := range hint {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "documents"
	}
	return b.String()
}
