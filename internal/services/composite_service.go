package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"photo-template-backend/internal/compositor"
	"photo-template-backend/internal/metrics"
	"photo-template-backend/internal/models"
)

const (
	ModeOrder  = "order"
	ModeInline = "inline"
)

// ProcessedImage references a composite persisted for an order.
type ProcessedImage struct {
	OrderID uuid.UUID
	Path    string
	URL     string
}

type CompositeService struct {
	store      OrderStore
	storage    *StorageService
	templates  *compositor.TemplateLibrary
	compositor *compositor.Compositor
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

func NewCompositeService(
	store OrderStore,
	storage *StorageService,
	templates *compositor.TemplateLibrary,
	comp *compositor.Compositor,
	m *metrics.Metrics,
	logger *zap.Logger,
) *CompositeService {
	return &CompositeService{
		store:      store,
		storage:    storage,
		templates:  templates,
		compositor: comp,
		metrics:    m,
		logger:     logger,
	}
}

func (s *CompositeService) Templates() ([]string, error) {
	return s.templates.List()
}

// ProcessOrder composites the stored photo of an order onto the order's
// template and writes the result to processed/<order id>.png. Repeating
// the call overwrites the file with identical content.
func (s *CompositeService) ProcessOrder(ctx context.Context, orderID uuid.UUID) (*ProcessedImage, error) {
	start := time.Now()
	img, err := s.processOrder(ctx, orderID)
	s.metrics.RecordComposite(ModeOrder, resultLabel(err), time.Since(start))
	if err != nil {
		s.logger.Warn("order compositing failed", zap.String("order_id", orderID.String()), zap.Error(err))
		return nil, err
	}
	return img, nil
}

func (s *CompositeService) processOrder(ctx context.Context, orderID uuid.UUID) (*ProcessedImage, error) {
	order, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}

	tmpl, err := s.openTemplate(order.Template)
	if err != nil {
		return nil, err
	}
	defer tmpl.Close()

	photo, err := s.storage.OpenUpload(order.Photo.Filename)
	if err != nil {
		return nil, err
	}
	defer photo.Close()

	res, err := s.compositor.Compose(ctx, tmpl, photo)
	if err != nil {
		return nil, err
	}

	path, url, err := s.storage.SaveProcessed(order.ID.String()+".png", res.ContentType, res.Data)
	if err != nil {
		return nil, err
	}

	return &ProcessedImage{OrderID: order.ID, Path: path, URL: url}, nil
}

// ProcessInline composites an uploaded photo onto the named template and
// returns the encoded image without writing anything to disk.
func (s *CompositeService) ProcessInline(ctx context.Context, templateName string, photo *models.Upload) (*compositor.Result, error) {
	start := time.Now()
	res, err := s.processInline(ctx, templateName, photo)
	s.metrics.RecordComposite(ModeInline, resultLabel(err), time.Since(start))
	if err != nil {
		s.logger.Warn("inline compositing failed", zap.String("template", templateName), zap.Error(err))
		return nil, err
	}
	return res, nil
}

func (s *CompositeService) processInline(ctx context.Context, templateName string, photo *models.Upload) (*compositor.Result, error) {
	if photo == nil || photo.Data == nil {
		return nil, models.ErrMissingFile
	}
	limit := s.storage.MaxUploadBytes()
	if photo.Size > limit {
		return nil, fmt.Errorf("%w: %d bytes exceeds limit of %d", models.ErrPayloadTooLarge, photo.Size, limit)
	}

	tmpl, err := s.openTemplate(templateName)
	if err != nil {
		return nil, err
	}
	defer tmpl.Close()

	data, err := io.ReadAll(io.LimitReader(photo.Data, limit+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read photo: %v", models.ErrProcessing, err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: upload exceeds limit of %d bytes", models.ErrPayloadTooLarge, limit)
	}

	return s.compositor.Compose(ctx, tmpl, bytes.NewReader(data))
}

func (s *CompositeService) openTemplate(name string) (*os.File, error) {
	path, err := s.templates.Resolve(name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: template %q", models.ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: open template: %v", models.ErrProcessing, err)
	}
	return f, nil
}

func resultLabel(err error) string {
	if err == nil {
		return "success"
	}
	return models.ErrorCode(err)
}
