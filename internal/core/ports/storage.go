package ports

import (
	"context"
	"io"
)

// ImageStorage stores an uploaded image and returns its public URL.
type ImageStorage interface {
	UploadImage(ctx context.Context, r io.Reader, filename string) (string, error)
}
