package storage

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_RoundTrip(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	content := []byte("some bytes")
	require.NoError(t, s.Save(ctx, "abc123", bytes.NewReader(content)))

	rc, err := s.Open(ctx, "abc123")
	require.NoError(t, err)
	defer rc.Close()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestLocalStorage_Overwrite(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "k", bytes.NewReader([]byte("one"))))
	require.NoError(t, s.Save(ctx, "k", bytes.NewReader([]byte("two"))))

	rc, err := s.Open(ctx, "k")
	require.NoError(t, err)
	defer rc.Close()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, []byte("two"), got)
}

func TestLocalStorage_OpenMissing(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = s.Open(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotExist)
}

func TestLocalStorage_DeleteIdempotent(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "k", bytes.NewReader([]byte("x"))))
	require.NoError(t, s.Delete(ctx, "k"))
	require.NoError(t, s.Delete(ctx, "k"))

	_, err = s.Open(ctx, "k")
	assert.ErrorIs(t, err, ErrNotExist)
}
