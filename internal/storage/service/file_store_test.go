package service

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/scholarvault/scholarvault/internal/errors"
)

func newMemFileStore(t *testing.T) *BlobFileStore {
	t.Helper()

	store, err := NewBlobFileStore(context.Background(), "mem://")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestBlobFileStore_WriteOpenRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newMemFileStore(t)

	err := store.Write(ctx, "documents/thesis.pdf", []byte("pdf bytes"), "application/pdf")
	require.NoError(t, err)

	reader, err := store.Open(ctx, "documents/thesis.pdf")
	require.NoError(t, err)
	defer func() { _ = reader.Close() }()

	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, []byte("pdf bytes"), data)
}

func TestBlobFileStore_OpenMissingKey(t *testing.T) {
	ctx := context.Background()
	store := newMemFileStore(t)

	_, err := store.Open(ctx, "documents/absent.pdf")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestBlobFileStore_InvalidBucketURL(t *testing.T) {
	_, err := NewBlobFileStore(context.Background(), "bogus://nowhere")
	require.Error(t, err)
}
