// Package service provides the artifact byte store backed by portable blob
// buckets (local filesystem, in-memory, S3, GCS, Azure).
package service

import (
	"context"
	"io"

	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"

	apperrors "github.com/scholarvault/scholarvault/internal/errors"

	// Register blob provider drivers
	_ "gocloud.dev/blob/azureblob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"
)

// BlobFileStore streams document artifacts from a blob bucket. The bucket URL
// selects the provider (file://, mem://, s3://, gs://, azblob://).
type BlobFileStore struct {
	bucket *blob.Bucket
}

// NewBlobFileStore opens the bucket identified by bucketURL.
func NewBlobFileStore(ctx context.Context, bucketURL string) (*BlobFileStore, error) {
	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to open blob bucket")
	}
	return &BlobFileStore{bucket: bucket}, nil
}

// Open returns a reader over the stored bytes for key. A missing object maps
// to ErrNotFound so callers can fold it into their not-found handling.
func (s *BlobFileStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	reader, err := s.bucket.NewReader(ctx, key, nil)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, apperrors.Wrap(apperrors.ErrNotFound, "stored bytes missing")
		}
		return nil, apperrors.Wrap(err, "failed to open stored bytes")
	}
	return reader, nil
}

// Write stores bytes under key. Used by ingest tooling and test fixtures.
func (s *BlobFileStore) Write(ctx context.Context, key string, data []byte, contentType string) error {
	opts := &blob.WriterOptions{ContentType: contentType}
	if err := s.bucket.WriteAll(ctx, key, data, opts); err != nil {
		return apperrors.Wrap(err, "failed to write stored bytes")
	}
	return nil
}

// Close releases the underlying bucket.
func (s *BlobFileStore) Close() error {
	return s.bucket.Close()
}
