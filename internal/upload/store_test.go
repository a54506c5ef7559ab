package upload

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskStore_SaveAndRemove(t *testing.T) {
	t.Parallel()

	store, err := NewDiskStore(t.TempDir(), nil)
	require.NoError(t, err)

	ctx := context.Background()
	key, err := store.Save(ctx, "Photo.PNG", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(key, ".png"), key)

	path, err := store.Path(key)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	require.NoError(t, store.Remove(ctx, key))
	_, err = os.Stat(path)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	// Повторное удаление: не ошибка.
	assert.NoError(t, store.Remove(ctx, key))
}

func TestDiskStore_RejectsTraversal(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store, err := NewDiskStore(filepath.Join(dir, "uploads"), nil)
	require.NoError(t, err)

	outside := filepath.Join(dir, "secret.txt")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0o600))

	for _, key := range []string{"", "..", "../secret.txt", "a/b.png", `a\b.png`} {
		err := store.Remove(context.Background(), key)
		assert.ErrorIs(t, err, ErrInvalidKey, key)
	}
	_, err = os.Stat(outside)
	assert.NoError(t, err)
}

func TestExtension(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"a.jpg":            ".jpg",
		"noext":            "",
		"weird.p n g":      "",
		"dir/x.JPEG":       ".jpeg",
		"long.abcdefghijk": "",
	}
	for in, want := range tests {
		assert.Equal(t, want, extension(in), in)
	}
}

func TestDiskStore_SaveCanceled(t *testing.T) {
	t.Parallel()

	store, err := NewDiskStore(t.TempDir(), nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = store.Save(ctx, "a.png", strings.NewReader("x"))
	assert.ErrorIs(t, err, context.Canceled)
}
