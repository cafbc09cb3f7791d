package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/kevinaaaquil/myb/backend/apperr"
	"github.com/kevinaaaquil/myb/backend/metrics"
	"go.uber.org/zap"
)

// Table is typed access to one collection. Every access goes through mu, so read-modify-write
// cycles within this process are serialized and cannot lose each other's updates. Separate
// processes sharing one backing store still race.
type Table[T any] struct {
	name    string
	backend Backend
	logger  *zap.Logger
	mu      sync.Mutex
}

func NewTable[T any](name string, backend Backend, logger *zap.Logger) *Table[T] {
	return &Table[T]{name: name, backend: backend, logger: logger}
}

// All returns a copy of every record in stored order.
func (t *Table[T]) All(ctx context.Context) ([]T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	rows, _, err := t.load(ctx)
	return rows, err
}

// Mutate loads the collection, hands it to fn and saves whatever fn returns. Nothing is written
// when fn fails. A stored document that could not be read in full is copied to a backup
// collection before it is replaced.
func (t *Table[T]) Mutate(ctx context.Context, fn func(rows []T) ([]T, error)) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	rows, damaged, err := t.load(ctx)
	if err != nil {
		return err
	}
	out, err := fn(rows)
	if err != nil {
		return err
	}
	if damaged != nil {
		if err := t.backup(ctx, damaged); err != nil {
			return err
		}
	}
	return t.save(ctx, out)
}

// load lazily creates a missing collection and treats an unparseable document as empty.
// damaged holds the stored bytes whenever some of them did not make it into rows.
func (t *Table[T]) load(ctx context.Context) (rows []T, damaged []byte, err error) {
	raw, err := t.backend.Load(ctx, t.name)
	if err != nil {
		metrics.RecordStoreOp(t.name, "load", "error")
		return nil, nil, err
	}
	if raw == nil {
		metrics.RecordStoreOp(t.name, "load", "ok")
		if err := t.save(ctx, []T{}); err != nil {
			return nil, nil, err
		}
		return []T{}, nil, nil
	}
	rows, lossy, err := decodeRows[T](raw)
	if err != nil {
		metrics.RecordStoreOp(t.name, "load", "recovered")
		t.logger.Warn("malformed collection, treating as empty",
			zap.String("collection", t.name), zap.Error(err))
		return []T{}, raw, nil
	}
	if lossy {
		metrics.RecordStoreOp(t.name, "load", "recovered")
		t.logger.Warn("collection has values that could not be converted, dropping them",
			zap.String("collection", t.name))
		return rows, raw, nil
	}
	metrics.RecordStoreOp(t.name, "load", "ok")
	return rows, nil, nil
}

// backup keeps raw under "<name>.backup-<unix millis>". Blank documents are not worth keeping.
func (t *Table[T]) backup(ctx context.Context, raw []byte) error {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	name := fmt.Sprintf("%s.backup-%d", t.name, time.Now().UnixMilli())
	if err := t.backend.Save(ctx, name, raw); err != nil {
		metrics.RecordStoreOp(t.name, "backup", "error")
		return fmt.Errorf("back up %s: %w", t.name, err)
	}
	metrics.RecordStoreOp(t.name, "backup", "ok")
	t.logger.Warn("unreadable collection backed up before overwrite",
		zap.String("collection", t.name), zap.String("backup", name))
	return nil
}

func (t *Table[T]) save(ctx context.Context, rows []T) error {
	if rows == nil {
		rows = []T{}
	}
	doc, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return err
	}
	if err := t.backend.Save(ctx, t.name, doc); err != nil {
		metrics.RecordStoreOp(t.name, "save", "error")
		return err
	}
	metrics.RecordStoreOp(t.name, "save", "ok")
	return nil
}

// updateByID applies fn to the record whose id equals id (string comparison). fn may refuse
// with an error, in which case the collection is left untouched.
func updateByID[T any](ctx context.Context, t *Table[T], id string, idOf func(*T) string, fn func(*T) error) (*T, error) {
	var updated T
	err := t.Mutate(ctx, func(rows []T) ([]T, error) {
		for i := range rows {
			if idOf(&rows[i]) != id {
				continue
			}
			if err := fn(&rows[i]); err != nil {
				return nil, err
			}
			updated = rows[i]
			return rows, nil
		}
		return nil, apperr.ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// deleteByID removes the record whose id equals id. check, when non-nil, may veto the removal.
func deleteByID[T any](ctx context.Context, t *Table[T], id string, idOf func(*T) string, check func(*T) error) error {
	return t.Mutate(ctx, func(rows []T) ([]T, error) {
		for i := range rows {
			if idOf(&rows[i]) != id {
				continue
			}
			if check != nil {
				if err := check(&rows[i]); err != nil {
					return nil, err
				}
			}
			return append(rows[:i:i], rows[i+1:]...), nil
		}
		return nil, apperr.ErrNotFound
	})
}

func findByID[T any](rows []T, id string, idOf func(*T) string) (*T, bool) {
	for i := range rows {
		if idOf(&rows[i]) == id {
			return &rows[i], true
		}
	}
	return nil, false
}

func prepend[T any](rows []T, row T) []T {
	return append([]T{row}, rows...)
}
