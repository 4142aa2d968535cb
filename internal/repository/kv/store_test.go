package kv

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
)

func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Get(ctx, "carrito")
	require.True(t, IsNotFound(err), "expected not found, got %v", err)

	require.NoError(t, s.Set(ctx, "carrito", `[{"id":1}]`))
	got, err := s.Get(ctx, "carrito")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, got)

	require.NoError(t, s.Set(ctx, "carrito", `[]`))
	got, err = s.Get(ctx, "carrito")
	require.NoError(t, err)
	assert.Equal(t, `[]`, got)

	require.NoError(t, s.Delete(ctx, "carrito"))
	_, err = s.Get(ctx, "carrito")
	assert.True(t, IsNotFound(err))
	require.NoError(t, s.Delete(ctx, "carrito"))
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemory(0))
}

func TestMemoryStore_Quota(t *testing.T) {
	s := NewMemory(4)
	err := s.Set(context.Background(), "k", "12345")
	assert.ErrorIs(t, err, domain.ErrQuotaExceeded)
	require.NoError(t, s.Set(context.Background(), "k", "1234"))
}

func TestFileStore(t *testing.T) {
	s, err := NewFile(t.TempDir(), 0)
	require.NoError(t, err)
	exerciseStore(t, s)
}

func TestFileStore_KeysAreEscaped(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFile(dir, 0)
	require.NoError(t, err)

	require.NoError(t, s.Set(context.Background(), "../outside", "x"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.False(t, strings.Contains(entries[0].Name(), "/"))
	_, err = os.Stat(filepath.Join(filepath.Dir(dir), "outside.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestFileStore_QuotaLeavesPreviousValue(t *testing.T) {
	s, err := NewFile(t.TempDir(), 8)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "carrito", "[]"))
	err = s.Set(ctx, "carrito", "[1,2,3,4,5,6]")
	assert.ErrorIs(t, err, domain.ErrQuotaExceeded)

	got, err := s.Get(ctx, "carrito")
	require.NoError(t, err)
	assert.Equal(t, "[]", got)
}
