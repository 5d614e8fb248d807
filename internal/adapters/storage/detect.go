// Package storage keeps identity proof documents on disk or in Google Cloud Storage.
package storage

import (
	"fmt"

	"github.com/SscSPs/investment_ledger_app/internal/apperrors"
	"github.com/gabriel-vasile/mimetype"
)

var allowedDocumentTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"application/pdf": ".pdf",
}

// DetectDocumentType sniffs content and returns its MIME type and file extension.
// Only JPEG, PNG and PDF documents are accepted.
func DetectDocumentType(content []byte) (string, string, error) {
	if len(content) == 0 {
		return "", "", fmt.Errorf("%w: document is empty", apperrors.ErrValidation)
	}
	mt := mimetype.Detect(content)
	for m := mt; m != nil; m = m.Parent() {
		if ext, ok := allowedDocumentTypes[m.String()]; ok {
			return m.String(), ext, nil
		}
	}
	return "", "", fmt.Errorf("%w: unsupported document type %s", apperrors.ErrValidation, mt.String())
}
