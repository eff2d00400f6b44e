package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"photo-template-backend/internal/models"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(ctx context.Context, connectionString string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// NewPostgresStoreFromDB wraps an existing handle.
func NewPostgresStoreFromDB(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) DB() *sql.DB {
	return s.db
}

func (s *PostgresStore) CreateOrder(ctx context.Context, order *models.Order) error {
	address, err := json.Marshal(order.Address)
	if err != nil {
		return fmt.Errorf("failed to encode address: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO orders (id, name, email, address, template, photo_filename, photo_content_type, photo_size, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, order.ID, order.Name, order.Email, address, order.Template,
		order.Photo.Filename, order.Photo.ContentType, order.Photo.Size, order.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var (
		order   models.Order
		address []byte
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, email, address, template, photo_filename, photo_content_type, photo_size, created_at
		FROM orders
		WHERE id = $1
	`, id).Scan(
		&order.ID, &order.Name, &order.Email, &address, &order.Template,
		&order.Photo.Filename, &order.Photo.ContentType, &order.Photo.Size, &order.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: order %s", models.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if len(address) > 0 {
		if err := json.Unmarshal(address, &order.Address); err != nil {
			return nil, fmt.Errorf("failed to decode address for order %s: %w", id, err)
		}
	}
	order.CreatedAt = order.CreatedAt.UTC()

	return &order, nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
