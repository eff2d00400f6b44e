package services_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"photo-template-backend/internal/models"
	"photo-template-backend/internal/services"
)

func TestCompositeService_ProcessOrder(t *testing.T) {
	mirror := &recordingMirror{}
	f := newFixture(t, withMirror(mirror))
	ctx := context.Background()

	order, err := f.orders.Submit(ctx, f.input())
	require.NoError(t, err)

	processed, err := f.composites.ProcessOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, processed.OrderID)
	assert.Equal(t, "/processed/"+order.ID.String()+".png", processed.Path)
	assert.Equal(t, "https://cdn.test/processed/"+order.ID.String()+".png", processed.URL)
	assert.Equal(t, []string{order.ID.String() + ".png"}, mirror.names)

	first, err := os.ReadFile(filepath.Join(f.processedDir, order.ID.String()+".png"))
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(first))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 320, 240), img.Bounds())

	// photo is 200x200 centered at (60,20)
	r, g, b, _ := img.At(160, 120).RGBA()
	assert.Equal(t, [3]uint32{0, 0, 0xffff}, [3]uint32{r, g, b})
	r, _, b, _ = img.At(10, 10).RGBA()
	assert.Greater(t, r, uint32(0x8000))
	assert.Less(t, b, uint32(0x2000))

	_, err = f.composites.ProcessOrder(ctx, order.ID)
	require.NoError(t, err)
	second, err := os.ReadFile(filepath.Join(f.processedDir, order.ID.String()+".png"))
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, countFiles(t, f.processedDir))
}

func TestCompositeService_ProcessOrderMirrorFailure(t *testing.T) {
	f := newFixture(t, withMirror(&recordingMirror{err: errors.New("bucket gone")}))
	ctx := context.Background()

	order, err := f.orders.Submit(ctx, f.input())
	require.NoError(t, err)

	processed, err := f.composites.ProcessOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Empty(t, processed.URL)
	assert.FileExists(t, filepath.Join(f.processedDir, order.ID.String()+".png"))
}

func TestCompositeService_ProcessOrderNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.composites.ProcessOrder(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, models.ErrNotFound))
	assert.Equal(t, 0, countFiles(t, f.processedDir))
}

func TestCompositeService_ProcessOrderMissingTemplate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	in := f.input()
	in.Template = "nope.png"
	order, err := f.orders.Submit(ctx, in)
	require.NoError(t, err)

	_, err = f.composites.ProcessOrder(ctx, order.ID)
	assert.True(t, errors.Is(err, models.ErrNotFound))
	assert.Equal(t, 0, countFiles(t, f.processedDir))
}

func TestCompositeService_ProcessOrderMissingUpload(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order, err := f.orders.Submit(ctx, f.input())
	require.NoError(t, err)
	require.NoError(t, f.storage.RemoveUpload(order.Photo.Filename))

	_, err = f.composites.ProcessOrder(ctx, order.ID)
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestCompositeService_ProcessInline(t *testing.T) {
	f := newFixture(t)

	res, err := f.composites.ProcessInline(context.Background(), "t1.jpg", &models.Upload{
		Filename: "me.png",
		Size:     -1,
		Data:     bytes.NewReader(f.photo),
	})
	require.NoError(t, err)
	assert.Equal(t, "image/png", res.ContentType)
	assert.Equal(t, 320, res.Width)
	assert.Equal(t, 240, res.Height)

	img, err := png.Decode(bytes.NewReader(res.Data))
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{B: 255, A: 255}, color.RGBAModel.Convert(img.At(160, 120)))

	assert.Equal(t, 0, countFiles(t, f.processedDir))
	assert.Equal(t, 0, countFiles(t, f.uploadsDir))
}

func TestCompositeService_ProcessInlineErrors(t *testing.T) {
	tests := []struct {
		name     string
		template string
		upload   func(f *fixture) *models.Upload
		want     error
	}{
		{
			name:     "missing photo",
			template: "t1.jpg",
			upload:   func(*fixture) *models.Upload { return nil },
			want:     models.ErrMissingFile,
		},
		{
			name:     "unknown template",
			template: "missing.png",
			upload: func(f *fixture) *models.Upload {
				return &models.Upload{Size: -1, Data: bytes.NewReader(f.photo)}
			},
			want: models.ErrNotFound,
		},
		{
			name:     "template traversal",
			template: "../orders.db",
			upload: func(f *fixture) *models.Upload {
				return &models.Upload{Size: -1, Data: bytes.NewReader(f.photo)}
			},
			want: models.ErrNotFound,
		},
		{
			name:     "undecodable photo",
			template: "t1.jpg",
			upload: func(*fixture) *models.Upload {
				return &models.Upload{Size: -1, Data: bytes.NewReader([]byte("not an image at all"))}
			},
			want: models.ErrProcessing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			_, err := f.composites.ProcessInline(context.Background(), tt.template, tt.upload(f))
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
			assert.Equal(t, 0, countFiles(t, f.processedDir))
		})
	}
}

func TestCompositeService_ProcessInlineTooLarge(t *testing.T) {
	f := newFixture(t, withMaxUpload(64))

	_, err := f.composites.ProcessInline(context.Background(), "t1.jpg", &models.Upload{
		Size: -1,
		Data: bytes.NewReader(f.photo),
	})
	assert.True(t, errors.Is(err, models.ErrPayloadTooLarge))
}

func TestCompositeService_Templates(t *testing.T) {
	f := newFixture(t)

	names, err := f.composites.Templates()
	require.NoError(t, err)
	assert.Equal(t, []string{"t1.jpg"}, names)
}

func TestStorageService_SaveProcessedReplaces(t *testing.T) {
	f := newFixture(t)

	path, url, err := f.storage.SaveProcessed("x.png", "image/png", []byte("one"))
	require.NoError(t, err)
	assert.Equal(t, services.ProcessedPrefix+"/x.png", path)
	assert.Empty(t, url)

	_, _, err = f.storage.SaveProcessed("x.png", "image/png", []byte("two"))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(f.processedDir, "x.png"))
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))
	assert.Equal(t, 1, countFiles(t, f.processedDir))
}

func TestStorageService_SaveUploadExtension(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	photo, err := f.storage.SaveUpload(ctx, &models.Upload{Filename: "noext", Size: -1, Data: bytes.NewReader(f.photo)})
	require.NoError(t, err)
	assert.Equal(t, ".png", filepath.Ext(photo.Filename))

	photo, err = f.storage.SaveUpload(ctx, &models.Upload{Filename: "weird.p$g", Size: -1, Data: bytes.NewReader(f.photo)})
	require.NoError(t, err)
	assert.Equal(t, ".png", filepath.Ext(photo.Filename))
}

func TestStorageService_SaveUploadCanceled(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.storage.SaveUpload(ctx, &models.Upload{Filename: "a.png", Size: -1, Data: bytes.NewReader(f.photo)})
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 0, countFiles(t, f.uploadsDir))
}

func TestStorageService_OpenUploadRejectsPaths(t *testing.T) {
	f := newFixture(t)

	_, err := f.storage.OpenUpload("../orders.db")
	assert.True(t, errors.Is(err, models.ErrNotFound))
}
