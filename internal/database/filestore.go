package database

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"photo-template-backend/internal/models"
)

// FileStore keeps orders as newline-delimited JSON documents in a single
// append-only file. The whole file is indexed in memory on open.
type FileStore struct {
	mu     sync.RWMutex
	file   *os.File
	size   int64
	orders map[uuid.UUID]models.Order
}

// NewFileStore opens or creates the store at path. A torn final record
// left by an interrupted append is dropped and truncated away; corruption
// anywhere else is an error.
func NewFileStore(path string, logger *zap.Logger) (*FileStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	loaded, err := loadOrders(path)
	if err != nil {
		return nil, err
	}
	if loaded.tornBytes > 0 {
		logger.Warn("dropping torn record at end of order store",
			zap.String("path", path),
			zap.Int64("offset", loaded.size),
			zap.Int64("bytes", loaded.tornBytes))
		if err := os.Truncate(path, loaded.size); err != nil {
			return nil, fmt.Errorf("failed to truncate torn record: %w", err)
		}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open order store: %w", err)
	}

	return &FileStore{file: file, size: loaded.size, orders: loaded.orders}, nil
}

type loadResult struct {
	orders map[uuid.UUID]models.Order
	// size is the length of the valid prefix of the file.
	size      int64
	tornBytes int64
}

func loadOrders(path string) (loadResult, error) {
	res := loadResult{orders: make(map[uuid.UUID]models.Order)}

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return res, nil
	}
	if err != nil {
		return res, fmt.Errorf("failed to open order store: %w", err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	lineNum := 0
	var pending error
	for {
		line, readErr := r.ReadBytes('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return res, fmt.Errorf("failed to read order store: %w", readErr)
		}
		if len(line) == 0 {
			break
		}
		lineNum++

		// A bad record followed by more data is corruption, not a torn append.
		if pending != nil {
			return res, pending
		}

		terminated := line[len(line)-1] == '\n'
		body := bytes.TrimSpace(line)
		if len(body) == 0 && terminated {
			res.size += int64(len(line))
			continue
		}

		if !terminated {
			res.tornBytes = int64(len(line))
			break
		}
		var order models.Order
		if err := json.Unmarshal(body, &order); err != nil {
			pending = fmt.Errorf("corrupt order store at line %d: %w", lineNum, err)
			res.tornBytes = int64(len(line))
			continue
		}
		res.orders[order.ID] = order
		res.size += int64(len(line))
	}
	return res, nil
}

func (s *FileStore) CreateOrder(ctx context.Context, order *models.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	line, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("failed to encode order: %w", err)
	}
	line = append(line, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return errors.New("order store is closed")
	}
	if _, exists := s.orders[order.ID]; exists {
		return fmt.Errorf("order %s already exists", order.ID)
	}
	if _, err := s.file.Write(line); err != nil {
		if terr := s.file.Truncate(s.size); terr != nil {
			return fmt.Errorf("failed to append order: %w (truncate: %v)", err, terr)
		}
		return fmt.Errorf("failed to append order: %w", err)
	}
	if err := s.file.Sync(); err != nil {
		return fmt.Errorf("failed to sync order store: %w", err)
	}
	s.size += int64(len(line))
	s.orders[order.ID] = *order
	return nil
}

func (s *FileStore) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.orders[id]
	if !ok {
		return nil, fmt.Errorf("%w: order %s", models.ErrNotFound, id)
	}
	return &order, nil
}

func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}
