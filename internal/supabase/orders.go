package supabase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"photo-template-backend/internal/models"
)

// orderRow mirrors the orders table as exposed through PostgREST.
type orderRow struct {
	ID               uuid.UUID      `json:"id"`
	Name             string         `json:"name"`
	Email            string         `json:"email"`
	Address          models.Address `json:"address"`
	Template         string         `json:"template"`
	PhotoFilename    string         `json:"photo_filename"`
	PhotoContentType string         `json:"photo_content_type"`
	PhotoSize        int64          `json:"photo_size"`
	CreatedAt        time.Time      `json:"created_at"`
}

func toRow(o *models.Order) orderRow {
	return orderRow{
		ID:               o.ID,
		Name:             o.Name,
		Email:            o.Email,
		Address:          o.Address,
		Template:         o.Template,
		PhotoFilename:    o.Photo.Filename,
		PhotoContentType: o.Photo.ContentType,
		PhotoSize:        o.Photo.Size,
		CreatedAt:        o.CreatedAt,
	}
}

func (r orderRow) toOrder() *models.Order {
	return &models.Order{
		ID:       r.ID,
		Name:     r.Name,
		Email:    r.Email,
		Address:  r.Address,
		Template: r.Template,
		Photo: models.Photo{
			Filename:    r.PhotoFilename,
			ContentType: r.PhotoContentType,
			Size:        r.PhotoSize,
		},
		CreatedAt: r.CreatedAt.UTC(),
	}
}

// OrderStore persists orders through the Supabase REST API. The table
// layout matches internal/database/migrations.
type OrderStore struct {
	client *Client
	table  string
}

func NewOrderStore(client *Client, table string) *OrderStore {
	return &OrderStore{client: client, table: table}
}

// The PostgREST client has no context support; ctx is only checked
// before the call.
func (s *OrderStore) CreateOrder(ctx context.Context, order *models.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var inserted []orderRow
	_, err := s.client.Supabase.From(s.table).
		Insert(toRow(order), false, "", "representation", "").
		ExecuteTo(&inserted)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (s *OrderStore) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var rows []orderRow
	_, err := s.client.Supabase.From(s.table).
		Select("*", "", false).
		Eq("id", id.String()).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: order %s", models.ErrNotFound, id)
	}
	return rows[0].toOrder(), nil
}

func (s *OrderStore) Close() error {
	return nil
}
