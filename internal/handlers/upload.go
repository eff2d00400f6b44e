package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"photo-template-backend/internal/models"
)

const (
	// formOverhead is allowed on top of the upload limit for the other
	// multipart fields and boundaries.
	formOverhead = 1 << 20

	// maxFormMemory is how much of the form is held in memory before
	// file parts spill to temp files.
	maxFormMemory = 8 << 20
)

// parseMultipart caps the request body and parses the multipart form.
func parseMultipart(c *gin.Context, maxUploadBytes int64) error {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes+formOverhead)

	if err := c.Request.ParseMultipartForm(maxFormMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return fmt.Errorf("%w: request body exceeds %d bytes", models.ErrPayloadTooLarge, tooLarge.Limit)
		}
		// A body that isn't multipart cannot carry a file part.
		if errors.Is(err, http.ErrNotMultipart) {
			return fmt.Errorf("%w: expected multipart/form-data", models.ErrMissingFile)
		}
		return fmt.Errorf("%w: failed to parse multipart form: %v", models.ErrMalformedInput, err)
	}
	return nil
}

// formUpload opens the named file part. It returns (nil, nil, nil) when
// the part is absent so callers report MissingFile consistently. The
// returned close func must be called once the upload has been consumed.
func formUpload(c *gin.Context, field string) (*models.Upload, func(), error) {
	fh, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, func() {}, nil
	}
	if err != nil {
		return nil, func() {}, fmt.Errorf("%w: %s: %v", models.ErrMalformedInput, field, err)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, func() {}, fmt.Errorf("%w: open %s: %v", models.ErrPersistence, field, err)
	}

	return uploadFromHeader(fh, f), func() { f.Close() }, nil
}

func uploadFromHeader(fh *multipart.FileHeader, f multipart.File) *models.Upload {
	return &models.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Data:        f,
	}
}

// cleanupForm removes temp files created while parsing the form.
func cleanupForm(c *gin.Context) {
	if c.Request.MultipartForm != nil {
		_ = c.Request.MultipartForm.RemoveAll()
	}
}
