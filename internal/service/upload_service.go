package service

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	_ "golang.org/x/image/webp" // register WebP decoder

	apperrors "supanos/internal/errors"
	"supanos/internal/model"
	"supanos/internal/repository"
)

// UploadURLPrefix is the public path under which stored images are served.
const UploadURLPrefix = "/uploads"

var allowedImageTypes = map[string]string{
	".jpeg": "image/jpeg",
	".jpg":  "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// UploadService stores images in the public upload directory.
type UploadService interface {
	SaveImage(ctx context.Context, file *multipart.FileHeader) (*model.Upload, error)
}

type uploadService struct {
	repo     repository.UploadRepository
	dir      string
	maxBytes int64
}

// NewUploadService creates an upload service writing to dir.
func NewUploadService(repo repository.UploadRepository, dir string, maxBytes int64) UploadService {
	return &uploadService{repo: repo, dir: dir, maxBytes: maxBytes}
}

// SaveImage accepts jpeg, png, gif and webp images up to the configured size.
// Both the file extension and the declared MIME type must agree with the
// allowed set, and the content must decode as an image.
func (s *uploadService) SaveImage(ctx context.Context, file *multipart.FileHeader) (*model.Upload, error) {
	if file == nil {
		return nil, apperrors.ErrNoFile
	}
	if file.Size > s.maxBytes {
		return nil, apperrors.ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	mime, ok := allowedImageTypes[ext]
	if !ok {
		return nil, apperrors.ErrInvalidUpload
	}
	declared := strings.ToLower(strings.TrimSpace(strings.Split(file.Header.Get("Content-Type"), ";")[0]))
	if declared != mime && !(declared == "image/jpg" && mime == "image/jpeg") {
		return nil, apperrors.ErrInvalidUpload
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	cfg, _, err := image.DecodeConfig(src)
	if err != nil {
		return nil, apperrors.ErrInvalidUpload
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind upload: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("create upload file: %w", err)
	}
	written, err := io.Copy(dst, io.LimitReader(src, s.maxBytes+1))
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err == nil && written > s.maxBytes {
		err = apperrors.ErrFileTooLarge
	}
	if err != nil {
		_ = os.Remove(filepath.Join(s.dir, name))
		return nil, fmt.Errorf("write upload: %w", err)
	}

	width, height := cfg.Width, cfg.Height
	upload := &model.Upload{
		FileName: name,
		URL:      path.Join(UploadURLPrefix, name),
		Mime:     mime,
		Size:     written,
		Width:    &width,
		Height:   &height,
	}
	if err := s.repo.Create(ctx, upload); err != nil {
		_ = os.Remove(filepath.Join(s.dir, name))
		return nil, fmt.Errorf("record upload: %w", err)
	}
	return upload, nil
}
