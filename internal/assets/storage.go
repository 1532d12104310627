package assets

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/openmotors/car-ledger-api/internal/adapter"
	"github.com/openmotors/car-ledger-api/internal/domain"
	"github.com/openmotors/car-ledger-api/internal/logger"
)

// Storage persists uploaded listing images
//
//go:generate mockgen -source=storage.go -destination=../mocks/assets_storage.go -package=mocks -mock_names=Storage=MockAssetStorage
type Storage interface {
	// SaveImage stores an uploaded image and returns the path to reference
	// it from a listing
	SaveImage(ctx context.Context, r io.Reader) (string, error)
}

type storage struct {
	dir         string
	maxFileSize int64
	fs          adapter.FileSystem
}

// NewStorage creates an image storage rooted at dir
func NewStorage(dir string, maxFileSize int64, fs adapter.FileSystem) Storage {
	return &storage{dir: dir, maxFileSize: maxFileSize, fs: fs}
}

// SaveImage sniffs the upload's content type, rejects anything that is not
// an image, and writes it under a collision-free uuid filename. The stored
// name keeps the sniffed extension, never the client-supplied one.
func (s *storage) SaveImage(ctx context.Context, r io.Reader) (string, error) {
	limited := io.LimitReader(r, s.maxFileSize+1)
	data, err := io.ReadAll(limited)
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > s.maxFileSize {
		return "", &domain.ValidationError{
			Field:  "image",
			Reason: fmt.Sprintf("exceeds the %d byte size limit", s.maxFileSize),
		}
	}
	if len(data) == 0 {
		return "", &domain.ValidationError{Field: "image", Reason: "required"}
	}

	mime := mimetype.Detect(data)
	if !strings.HasPrefix(mime.String(), "image/") {
		return "", &domain.ValidationError{
			Field:  "image",
			Reason: fmt.Sprintf("unsupported content type %s", mime.String()),
		}
	}

	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create uploads directory: %w", err)
	}

	name := uuid.NewString() + mime.Extension()
	path := filepath.Join(s.dir, name)

	f, err := s.fs.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		s.cleanup(ctx, path)
		return "", fmt.Errorf("failed to write image file: %w", err)
	}
	if err := f.Close(); err != nil {
		s.cleanup(ctx, path)
		return "", fmt.Errorf("failed to close image file: %w", err)
	}

	return path, nil
}

func (s *storage) cleanup(ctx context.Context, path string) {
	if err := s.fs.Remove(path); err != nil {
		logger.WarnCtx(ctx, "Failed to remove partially written image",
			zap.Error(err),
			zap.String("path", path),
		)
	}
}
