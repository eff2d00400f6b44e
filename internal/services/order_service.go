package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"photo-template-backend/internal/compositor"
	"photo-template-backend/internal/metrics"
	"photo-template-backend/internal/models"
)

// OrderStore persists orders. Implementations return an error wrapping
// models.ErrNotFound from GetOrder when the id is unknown.
type OrderStore interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error)
	Close() error
}

type OrderService struct {
	store    OrderStore
	storage  *StorageService
	validate *validator.Validate
	metrics  *metrics.Metrics
	logger   *zap.Logger
	now      func() time.Time
}

func NewOrderService(store OrderStore, storage *StorageService, m *metrics.Metrics, logger *zap.Logger) *OrderService {
	return &OrderService{
		store:    store,
		storage:  storage,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		metrics:  m,
		logger:   logger,
		now:      time.Now,
	}
}

// Submit validates an intake submission, stores the photo and inserts the
// order. Nothing is recorded unless every step succeeds.
func (s *OrderService) Submit(ctx context.Context, input models.SubmitOrderInput) (*models.Order, error) {
	order, err := s.submit(ctx, input)
	s.metrics.RecordOrder(resultLabel(err))
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *OrderService) submit(ctx context.Context, input models.SubmitOrderInput) (*models.Order, error) {
	if input.Photo == nil || input.Photo.Data == nil {
		return nil, models.ErrMissingFile
	}
	if input.Photo.Size > s.storage.MaxUploadBytes() {
		return nil, fmt.Errorf("%w: %d bytes exceeds limit of %d", models.ErrPayloadTooLarge, input.Photo.Size, s.storage.MaxUploadBytes())
	}

	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	input.Template = strings.TrimSpace(input.Template)
	if err := s.validate.StructCtx(ctx, input); err != nil {
		return nil, fmt.Errorf("%w: %s", models.ErrMalformedInput, describeValidation(err))
	}
	if !compositor.ValidName(input.Template) {
		return nil, fmt.Errorf("%w: template must be a plain file name", models.ErrMalformedInput)
	}
	address, err := ParseAddress(input.Address)
	if err != nil {
		return nil, err
	}

	photo, err := s.storage.SaveUpload(ctx, input.Photo)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		ID:        uuid.New(),
		Name:      input.Name,
		Email:     input.Email,
		Address:   address,
		Template:  input.Template,
		Photo:     photo,
		CreatedAt: s.now().UTC(),
	}

	if err := s.store.CreateOrder(ctx, order); err != nil {
		s.logger.Error("failed to save order", zap.String("order_id", order.ID.String()), zap.Error(err))
		if rmErr := s.storage.RemoveUpload(photo.Filename); rmErr != nil {
			s.logger.Warn("orphaned upload left behind",
				zap.String("filename", photo.Filename), zap.Error(rmErr))
		}
		return nil, fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}

	s.logger.Info("order saved",
		zap.String("order_id", order.ID.String()),
		zap.String("template", order.Template),
		zap.String("photo", photo.Filename),
		zap.Int64("photo_size", photo.Size))

	return order, nil
}

func (s *OrderService) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.store.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}
	return order, nil
}

// ParseAddress decodes the JSON-encoded address form field. Only JSON
// objects are accepted.
func ParseAddress(raw string) (models.Address, error) {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "{") {
		return models.Address{}, fmt.Errorf("%w: address must be a JSON object", models.ErrMalformedInput)
	}
	var address models.Address
	if err := json.Unmarshal([]byte(trimmed), &address); err != nil {
		return models.Address{}, fmt.Errorf("%w: address: %v", models.ErrMalformedInput, err)
	}
	return address, nil
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "email":
			msgs = append(msgs, field+" must be a valid email address")
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", field, fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}
