package service

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/kevinaaaquil/myb/backend/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskStore_PutOpen(t *testing.T) {
	dir := t.TempDir()
	ds, err := NewDiskStore(filepath.Join(dir, "uploads"))
	require.NoError(t, err)
	ctx := context.Background()

	data := []byte{0x89, 'P', 'N', 'G', 0, 1, 2, 3}
	require.NoError(t, ds.Put(ctx, "1714564800000-cover.png", data, "image/png"))

	body, ct, err := ds.Open(ctx, "1714564800000-cover.png")
	require.NoError(t, err)
	defer body.Close()
	got, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, data, got)
	assert.Equal(t, "image/png", ct)

	err = ds.Put(ctx, "1714564800000-cover.png", []byte("x"), "image/png")
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestDiskStore_RejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "secret.txt"), []byte("s"), 0o644))
	ds, err := NewDiskStore(filepath.Join(dir, "uploads"))
	require.NoError(t, err)
	ctx := context.Background()

	for _, name := range []string{"../secret.txt", ".hidden", "a/b.png", ""} {
		_, _, err := ds.Open(ctx, name)
		assert.ErrorIs(t, err, apperr.ErrNotFound, name)
		assert.Error(t, ds.Put(ctx, name, []byte("x"), "text/plain"), name)
	}

	_, _, err = ds.Open(ctx, "missing.pdf")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestValidName(t *testing.T) {
	assert.True(t, ValidName("1714564800000-My_Book.v2.pdf"))
	assert.False(t, ValidName(".."))
	assert.False(t, ValidName("a b.png"))
}
