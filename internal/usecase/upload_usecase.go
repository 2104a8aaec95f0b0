package usecase

import (
	"context"
	"io"
)

// UploadOutput returns the generated filenames for a stored upload.
// ThumbnailPath is empty when no frame could be extracted.
type UploadOutput struct {
	FilePath      string
	ThumbnailPath string
}

// UploadUsecase defines media-upload business operations.
type UploadUsecase interface {
	// Store writes the uploaded file under a timestamp-prefixed name and,
	// when the source is a playable video, extracts the first readable frame
	// as a thumbnail.
	Store(ctx context.Context, filename string, r io.Reader) (*UploadOutput, error)
}
