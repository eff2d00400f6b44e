package database

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"photo-template-backend/internal/models"
)

func TestFileStore_CreateAndGet(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "orders.db"), zap.NewNop())
	require.NoError(t, err)
	defer store.Close()

	order := sampleOrder()
	require.NoError(t, store.CreateOrder(context.Background(), order))

	got, err := store.GetOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, order, got)

	err = store.CreateOrder(context.Background(), order)
	assert.Error(t, err, "duplicate ids must be rejected")
}

func TestFileStore_GetMissing(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "orders.db"), zap.NewNop())
	require.NoError(t, err)
	defer store.Close()

	_, err = store.GetOrder(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestFileStore_ReloadsFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "orders.db")

	store, err := NewFileStore(path, zap.NewNop())
	require.NoError(t, err)
	order := sampleOrder()
	require.NoError(t, store.CreateOrder(context.Background(), order))
	require.NoError(t, store.Close())

	reopened, err := NewFileStore(path, zap.NewNop())
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.GetOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, order, got)
}

func TestFileStore_CorruptMiddleRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.db")
	store, err := NewFileStore(path, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, store.CreateOrder(context.Background(), sampleOrder()))
	require.NoError(t, store.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, append([]byte("{not json}\n"), data...), 0o644))

	_, err = NewFileStore(path, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
}

func TestFileStore_DropsTornTail(t *testing.T) {
	tests := []struct {
		name string
		tail string
	}{
		{"unterminated", `{"id":"9b2f3c1e-4d5a`},
		{"unparsable final line", "{\"id\":\"9b2f\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "orders.db")
			store, err := NewFileStore(path, zap.NewNop())
			require.NoError(t, err)
			first := sampleOrder()
			require.NoError(t, store.CreateOrder(context.Background(), first))
			require.NoError(t, store.Close())

			clean, err := os.ReadFile(path)
			require.NoError(t, err)

			f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
			require.NoError(t, err)
			_, err = f.WriteString(tt.tail)
			require.NoError(t, err)
			require.NoError(t, f.Close())

			core, logs := observer.New(zapcore.WarnLevel)
			reopened, err := NewFileStore(path, zap.New(core))
			require.NoError(t, err)
			assert.Equal(t, 1, logs.FilterMessage("dropping torn record at end of order store").Len())

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, clean, data)

			got, err := reopened.GetOrder(context.Background(), first.ID)
			require.NoError(t, err)
			assert.Equal(t, first, got)

			second := sampleOrder()
			second.ID = uuid.New()
			require.NoError(t, reopened.CreateOrder(context.Background(), second))
			require.NoError(t, reopened.Close())

			again, err := NewFileStore(path, zap.NewNop())
			require.NoError(t, err)
			defer again.Close()
			_, err = again.GetOrder(context.Background(), second.ID)
			assert.NoError(t, err)
		})
	}
}

func TestFileStore_LargeRecordSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.db")
	store, err := NewFileStore(path, zap.NewNop())
	require.NoError(t, err)

	order := sampleOrder()
	order.Address.Street = strings.Repeat("s", 3<<20)
	require.NoError(t, store.CreateOrder(context.Background(), order))
	require.NoError(t, store.Close())

	reopened, err := NewFileStore(path, zap.NewNop())
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.GetOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.Address.Street, got.Address.Street)
}

func TestFileStore_ConcurrentWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.db")
	store, err := NewFileStore(path, zap.NewNop())
	require.NoError(t, err)

	const n = 50
	ids := make([]uuid.UUID, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			order := sampleOrder()
			order.ID = uuid.New()
			ids[i] = order.ID
			assert.NoError(t, store.CreateOrder(context.Background(), order))
		}(i)
	}
	wg.Wait()
	require.NoError(t, store.Close())

	reopened, err := NewFileStore(path, zap.NewNop())
	require.NoError(t, err)
	defer reopened.Close()
	for _, id := range ids {
		_, err := reopened.GetOrder(context.Background(), id)
		assert.NoError(t, err)
	}
}

func TestFileStore_ClosedRejectsWrites(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "orders.db"), zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, store.Close())
	require.NoError(t, store.Close())

	assert.Error(t, store.CreateOrder(context.Background(), sampleOrder()))
}
