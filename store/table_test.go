package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type row struct {
	ID    string `json:"id"`
	Count int    `json:"count"`
}

func rowID(r *row) string { return r.ID }

// backends runs fn once per locally testable backend.
func backends(t *testing.T, fn func(t *testing.T, b Backend)) {
	t.Run("file", func(t *testing.T) {
		b, err := NewFileBackend(t.TempDir())
		require.NoError(t, err)
		fn(t, b)
	})
	t.Run("sqlite", func(t *testing.T) {
		b, err := NewSQLiteBackend(":memory:")
		require.NoError(t, err)
		t.Cleanup(func() { b.Close(context.Background()) })
		fn(t, b)
	})
}

func TestTable_LazyCreatesMissingCollection(t *testing.T) {
	backends(t, func(t *testing.T, b Backend) {
		ctx := context.Background()
		raw, err := b.Load(ctx, "rows")
		require.NoError(t, err)
		assert.Nil(t, raw)

		tbl := NewTable[row]("rows", b, zap.NewNop())
		rows, err := tbl.All(ctx)
		require.NoError(t, err)
		assert.Empty(t, rows)
		assert.NotNil(t, rows)

		raw, err = b.Load(ctx, "rows")
		require.NoError(t, err)
		assert.JSONEq(t, `[]`, string(raw))
	})
}

func TestTable_MalformedDocumentReadsAsEmpty(t *testing.T) {
	backends(t, func(t *testing.T, b Backend) {
		ctx := context.Background()
		require.NoError(t, b.Save(ctx, "rows", []byte(`{not json`)))

		tbl := NewTable[row]("rows", b, zap.NewNop())
		rows, err := tbl.All(ctx)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})
}

func TestTable_MutateRoundTrip(t *testing.T) {
	backends(t, func(t *testing.T, b Backend) {
		ctx := context.Background()
		tbl := NewTable[row]("rows", b, zap.NewNop())

		require.NoError(t, tbl.Mutate(ctx, func(rows []row) ([]row, error) {
			return append(rows, row{ID: "a"}, row{ID: "b"}), nil
		}))
		rows, err := tbl.All(ctx)
		require.NoError(t, err)
		assert.Equal(t, []row{{ID: "a"}, {ID: "b"}}, rows)
	})
}

func TestTable_FailedMutateWritesNothing(t *testing.T) {
	backends(t, func(t *testing.T, b Backend) {
		ctx := context.Background()
		tbl := NewTable[row]("rows", b, zap.NewNop())
		require.NoError(t, tbl.Mutate(ctx, func(rows []row) ([]row, error) {
			return append(rows, row{ID: "a", Count: 1}), nil
		}))

		boom := fmt.Errorf("boom")
		err := tbl.Mutate(ctx, func(rows []row) ([]row, error) {
			rows[0].Count = 99
			return nil, boom
		})
		assert.ErrorIs(t, err, boom)

		rows, err := tbl.All(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, rows[0].Count)
	})
}

func TestTable_ConcurrentMutationsAreNotLost(t *testing.T) {
	backends(t, func(t *testing.T, b Backend) {
		ctx := context.Background()
		tbl := NewTable[row]("rows", b, zap.NewNop())
		require.NoError(t, tbl.Mutate(ctx, func(rows []row) ([]row, error) {
			return []row{{ID: "counter"}}, nil
		}))

		const workers = 20
		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := updateByID(ctx, tbl, "counter", rowID, func(r *row) error {
					r.Count++
					return nil
				})
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		rows, err := tbl.All(ctx)
		require.NoError(t, err)
		assert.Equal(t, workers, rows[0].Count)
	})
}

func TestFileBackend_WritesReadableJSON(t *testing.T) {
	dir := t.TempDir()
	b, err := NewFileBackend(dir)
	require.NoError(t, err)
	tbl := NewTable[row]("rows", b, zap.NewNop())
	require.NoError(t, tbl.Mutate(context.Background(), func(rows []row) ([]row, error) {
		return append(rows, row{ID: "a"}), nil
	}))

	data, err := os.ReadFile(filepath.Join(dir, "rows.json"))
	require.NoError(t, err)
	assert.Equal(t, "[\n  {\n    \"id\": \"a\",\n    \"count\": 0\n  }\n]", string(data))

	leftovers, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestFileBackend_EmptyFileIsMalformedNotMissing(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rows.json"), nil, 0o644))
	b, err := NewFileBackend(dir)
	require.NoError(t, err)

	raw, err := b.Load(context.Background(), "rows")
	require.NoError(t, err)
	assert.NotNil(t, raw)
	assert.Empty(t, raw)
}

func TestTable_CoercesMismatchedFieldTypes(t *testing.T) {
	backends(t, func(t *testing.T, b Backend) {
		ctx := context.Background()
		require.NoError(t, b.Save(ctx, "rows", []byte(`[{"id":1,"count":"3"},{"id":"b","count":2.0,"extra":true}]`)))

		tbl := NewTable[row]("rows", b, zap.NewNop())
		rows, err := tbl.All(ctx)
		require.NoError(t, err)
		assert.Equal(t, []row{{ID: "1", Count: 3}, {ID: "b", Count: 2}}, rows)

		_, err = updateByID(ctx, tbl, "1", rowID, func(r *row) error {
			r.Count++
			return nil
		})
		require.NoError(t, err)
		rows, err = tbl.All(ctx)
		require.NoError(t, err)
		assert.Equal(t, []row{{ID: "1", Count: 4}, {ID: "b", Count: 2}}, rows)
	})
}

func TestTable_BacksUpDocumentBeforeOverwrite(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want []row
	}{
		{"malformed", `{not json`, []row{{ID: "new"}}},
		{"unconvertible values", `[{"id":"a","count":"lots"},7]`, []row{{ID: "a"}, {ID: "new"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			dir := t.TempDir()
			b, err := NewFileBackend(dir)
			require.NoError(t, err)
			require.NoError(t, b.Save(ctx, "rows", []byte(tt.doc)))

			tbl := NewTable[row]("rows", b, zap.NewNop())
			require.NoError(t, tbl.Mutate(ctx, func(rows []row) ([]row, error) {
				return append(rows, row{ID: "new"}), nil
			}))

			rows, err := tbl.All(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.want, rows)

			backups, err := filepath.Glob(filepath.Join(dir, "rows.backup-*.json"))
			require.NoError(t, err)
			require.Len(t, backups, 1)
			data, err := os.ReadFile(backups[0])
			require.NoError(t, err)
			assert.Equal(t, tt.doc, string(data))
		})
	}
}

func TestTable_CleanDocumentIsNotBackedUp(t *testing.T) {
	dir := t.TempDir()
	b, err := NewFileBackend(dir)
	require.NoError(t, err)
	require.NoError(t, b.Save(context.Background(), "rows", []byte(`[{"id":7}]`)))

	tbl := NewTable[row]("rows", b, zap.NewNop())
	require.NoError(t, tbl.Mutate(context.Background(), func(rows []row) ([]row, error) {
		return append(rows, row{ID: "x"}), nil
	}))

	backups, err := filepath.Glob(filepath.Join(dir, "rows.backup-*.json"))
	require.NoError(t, err)
	assert.Empty(t, backups)
}
