package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"photo-template-backend/internal/models"
)

const (
	UploadsPrefix   = "/uploads"
	ProcessedPrefix = "/processed"
	TemplatesPrefix = "/templates"

	sniffLen = 512
)

// Mirror receives a copy of every processed image. Implemented by
// supabase.StorageClient.
type Mirror interface {
	UploadFile(filename, contentType string, data []byte) (string, string, error)
}

// StorageService owns the uploads and processed directories.
type StorageService struct {
	uploadsDir     string
	processedDir   string
	maxUploadBytes int64
	mirror         Mirror
	logger         *zap.Logger
	now            func() time.Time
}

func NewStorageService(uploadsDir, processedDir string, maxUploadBytes int64, mirror Mirror, logger *zap.Logger) (*StorageService, error) {
	for _, dir := range []string{uploadsDir, processedDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return &StorageService{
		uploadsDir:     uploadsDir,
		processedDir:   processedDir,
		maxUploadBytes: maxUploadBytes,
		mirror:         mirror,
		logger:         logger,
		now:            time.Now,
	}, nil
}

func (s *StorageService) MaxUploadBytes() int64 {
	return s.maxUploadBytes
}

// SaveUpload writes the photo under a fresh name of the form
// <unix-millis>-<uuid><ext>. The content must sniff as an image and
// must not exceed the upload limit; on either failure nothing is left
// on disk.
func (s *StorageService) SaveUpload(ctx context.Context, upload *models.Upload) (models.Photo, error) {
	if upload == nil || upload.Data == nil {
		return models.Photo{}, models.ErrMissingFile
	}
	if upload.Size > s.maxUploadBytes {
		return models.Photo{}, fmt.Errorf("%w: %d bytes exceeds limit of %d", models.ErrPayloadTooLarge, upload.Size, s.maxUploadBytes)
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(upload.Data, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return models.Photo{}, fmt.Errorf("%w: read upload: %v", models.ErrPersistence, err)
	}
	head = head[:n]
	if n == 0 {
		return models.Photo{}, fmt.Errorf("%w: photo is empty", models.ErrMalformedInput)
	}
	detected := mimetype.Detect(head)
	contentType := detected.String()
	if !strings.HasPrefix(contentType, "image/") {
		return models.Photo{}, fmt.Errorf("%w: photo must be an image, got %s", models.ErrMalformedInput, contentType)
	}

	filename := s.uploadFilename(upload.Filename, detected.Extension())
	path := filepath.Join(s.uploadsDir, filename)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return models.Photo{}, fmt.Errorf("%w: create upload: %v", models.ErrPersistence, err)
	}

	src := io.LimitReader(io.MultiReader(bytes.NewReader(head), upload.Data), s.maxUploadBytes+1)
	written, copyErr := copyWithContext(ctx, f, src)
	closeErr := f.Close()

	switch {
	case copyErr != nil:
		s.discard(path)
		if errors.Is(copyErr, context.Canceled) || errors.Is(copyErr, context.DeadlineExceeded) {
			return models.Photo{}, copyErr
		}
		return models.Photo{}, fmt.Errorf("%w: write upload: %v", models.ErrPersistence, copyErr)
	case written > s.maxUploadBytes:
		s.discard(path)
		return models.Photo{}, fmt.Errorf("%w: upload exceeds limit of %d bytes", models.ErrPayloadTooLarge, s.maxUploadBytes)
	case closeErr != nil:
		s.discard(path)
		return models.Photo{}, fmt.Errorf("%w: close upload: %v", models.ErrPersistence, closeErr)
	}

	return models.Photo{
		Filename:    filename,
		ContentType: contentType,
		Size:        written,
	}, nil
}

// RemoveUpload deletes a stored upload. Missing files are not an error.
func (s *StorageService) RemoveUpload(filename string) error {
	err := os.Remove(filepath.Join(s.uploadsDir, filepath.Base(filename)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// OpenUpload opens a stored upload for reading.
func (s *StorageService) OpenUpload(filename string) (io.ReadCloser, error) {
	if filename == "" || filepath.Base(filename) != filename {
		return nil, fmt.Errorf("%w: upload %q", models.ErrNotFound, filename)
	}
	f, err := os.Open(filepath.Join(s.uploadsDir, filename))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: upload %q", models.ErrNotFound, filename)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: open upload: %v", models.ErrPersistence, err)
	}
	return f, nil
}

// SaveProcessed atomically replaces processed/<filename> with data and
// returns its public path. When a mirror is configured the image is also
// uploaded there; a mirror failure is logged and leaves url empty.
func (s *StorageService) SaveProcessed(filename, contentType string, data []byte) (path, url string, err error) {
	tmp, err := os.CreateTemp(s.processedDir, ".tmp-*")
	if err != nil {
		return "", "", fmt.Errorf("%w: create processed file: %v", models.ErrPersistence, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		s.discard(tmpName)
		return "", "", fmt.Errorf("%w: write processed file: %v", models.ErrPersistence, err)
	}
	if err := tmp.Close(); err != nil {
		s.discard(tmpName)
		return "", "", fmt.Errorf("%w: close processed file: %v", models.ErrPersistence, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		s.discard(tmpName)
		return "", "", fmt.Errorf("%w: chmod processed file: %v", models.ErrPersistence, err)
	}
	if err := os.Rename(tmpName, filepath.Join(s.processedDir, filename)); err != nil {
		s.discard(tmpName)
		return "", "", fmt.Errorf("%w: rename processed file: %v", models.ErrPersistence, err)
	}

	if s.mirror != nil {
		_, publicURL, err := s.mirror.UploadFile(filename, contentType, data)
		if err != nil {
			s.logger.Warn("failed to mirror processed image",
				zap.String("filename", filename), zap.Error(err))
		} else {
			url = publicURL
		}
	}

	return ProcessedPrefix + "/" + filename, url, nil
}

func (s *StorageService) uploadFilename(original, detectedExt string) string {
	ext := sanitizeExt(filepath.Ext(filepath.Base(original)))
	if ext == "" {
		ext = detectedExt
	}
	return fmt.Sprintf("%d-%s%s", s.now().UnixMilli(), strings.ReplaceAll(uuid.NewString(), "-", ""), ext)
}

func (s *StorageService) discard(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.logger.Warn("failed to remove partial file", zap.String("path", path), zap.Error(err))
	}
}

// sanitizeExt keeps short alphanumeric extensions and drops anything else.
func sanitizeExt(ext string) string {
	ext = strings.ToLower(ext)
	if len(ext) < 2 || len(ext) > 6 {
		return ""
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}

func copyWithContext(ctx context.Context, dst io.Writer, src io.Reader) (int64, error) {
	buf := make([]byte, 32*1024)
	var written int64
	for {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		n, rerr := src.Read(buf)
		if n > 0 {
			w, werr := dst.Write(buf[:n])
			written += int64(w)
			if werr != nil {
				return written, werr
			}
		}
		if rerr == io.EOF {
			return written, nil
		}
		if rerr != nil {
			return written, rerr
		}
	}
}
