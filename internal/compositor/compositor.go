// Package compositor overlays a photo onto a template image.
//
// The photo keeps its native resolution and is centered on the template
// canvas. Pixels falling outside the template are clipped. Output is
// always PNG so identical inputs yield identical bytes.
package compositor

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"time"

	"photo-template-backend/internal/models"

	_ "golang.org/x/image/webp"
)

const (
	// DefaultMaxPixels bounds decoded image area to keep memory use in check.
	DefaultMaxPixels = 40_000_000

	ContentTypePNG = "image/png"
)

type Result struct {
	Data        []byte
	ContentType string
	Width       int
	Height      int
}

type Compositor struct {
	maxPixels int
	timeout   time.Duration
}

func New(timeout time.Duration, maxPixels int) *Compositor {
	if maxPixels <= 0 {
		maxPixels = DefaultMaxPixels
	}
	return &Compositor{
		maxPixels: maxPixels,
		timeout:   timeout,
	}
}

// Compose decodes both images, overlays photo centered on template and
// encodes the result. It gives up once ctx is done or the configured
// timeout elapses.
func (c *Compositor) Compose(ctx context.Context, template, photo io.Reader) (*Result, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	type outcome struct {
		res *Result
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := c.compose(template, photo)
		done <- outcome{res: res, err: err}
	}()

	select {
	case out := <-done:
		return out.res, out.err
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", models.ErrProcessing, ctx.Err())
	}
}

func (c *Compositor) compose(templateSrc, photoSrc io.Reader) (*Result, error) {
	tmpl, err := c.decode(templateSrc)
	if err != nil {
		return nil, fmt.Errorf("%w: decode template: %v", models.ErrProcessing, err)
	}
	photo, err := c.decode(photoSrc)
	if err != nil {
		return nil, fmt.Errorf("%w: decode photo: %v", models.ErrProcessing, err)
	}

	out := Overlay(tmpl, photo)

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, fmt.Errorf("%w: encode: %v", models.ErrProcessing, err)
	}

	bounds := out.Bounds()
	return &Result{
		Data:        buf.Bytes(),
		ContentType: ContentTypePNG,
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
	}, nil
}

// decode reads the header first so oversized images are rejected before
// any pixel buffer is allocated.
func (c *Compositor) decode(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("empty image %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Width*cfg.Height > c.maxPixels {
		return nil, fmt.Errorf("image %dx%d exceeds %d pixels", cfg.Width, cfg.Height, c.maxPixels)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return img, nil
}

// Overlay returns a new canvas the size of template with photo drawn
// centered over it. The offset uses integer division, so a photo one
// pixel narrower than the template sits flush left.
func Overlay(template, photo image.Image) *image.RGBA {
	tb := template.Bounds()
	canvas := image.NewRGBA(image.Rect(0, 0, tb.Dx(), tb.Dy()))
	draw.Draw(canvas, canvas.Bounds(), template, tb.Min, draw.Src)

	pb := photo.Bounds()
	offset := CenterOffset(tb.Dx(), tb.Dy(), pb.Dx(), pb.Dy())
	dst := image.Rectangle{Min: offset, Max: offset.Add(pb.Size())}
	draw.Draw(canvas, dst, photo, pb.Min, draw.Over)

	return canvas
}

// CenterOffset is the top-left position of a photo centered on a
// template. It is negative on an axis where the photo is larger.
func CenterOffset(templateW, templateH, photoW, photoH int) image.Point {
	return image.Pt((templateW-photoW)/2, (templateH-photoH)/2)
}
