package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"photo-template-backend/internal/models"
)

var orderColumns = []string{
	"id", "name", "email", "address", "template",
	"photo_filename", "photo_content_type", "photo_size", "created_at",
}

func sampleOrder() *models.Order {
	return &models.Order{
		ID:       uuid.MustParse("9b2f3c1e-4d5a-4e61-8f7a-0c1d2e3f4a5b"),
		Name:     "A",
		Email:    "a@x.com",
		Address:  models.Address{City: "X"},
		Template: "t1.jpg",
		Photo: models.Photo{
			Filename:    "1700000000000-abcd1234.png",
			ContentType: "image/png",
			Size:        1024,
		},
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestPostgresStore_CreateOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	order := sampleOrder()
	mock.ExpectExec("INSERT INTO orders").
		WithArgs(order.ID, "A", "a@x.com", []byte(`{"city":"X"}`), "t1.jpg",
			order.Photo.Filename, "image/png", int64(1024), order.CreatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, NewPostgresStoreFromDB(db).CreateOrder(context.Background(), order))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_CreateOrderError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO orders").WillReturnError(errors.New("connection reset"))

	err = NewPostgresStoreFromDB(db).CreateOrder(context.Background(), sampleOrder())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestPostgresStore_GetOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	want := sampleOrder()
	mock.ExpectQuery("FROM orders").WithArgs(want.ID).
		WillReturnRows(sqlmock.NewRows(orderColumns).AddRow(
			want.ID.String(), want.Name, want.Email, []byte(`{"city":"X"}`), want.Template,
			want.Photo.Filename, want.Photo.ContentType, want.Photo.Size, want.CreatedAt,
		))

	got, err := NewPostgresStoreFromDB(db).GetOrder(context.Background(), want.ID)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetOrderNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	mock.ExpectQuery("FROM orders").WithArgs(id).WillReturnRows(sqlmock.NewRows(orderColumns))

	_, err = NewPostgresStoreFromDB(db).GetOrder(context.Background(), id)
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrNotFound))
}
