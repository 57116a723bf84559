// File: internal/blobstore/firebase.go
package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"

	"torslanda_locals_backend/internal/common"

	"cloud.google.com/go/storage"
	"go.uber.org/zap"
)

const gcsPublicHost = "https://storage.googleapis.com"

// FirebaseStore writes images to a Firebase (Google Cloud) Storage bucket.
type FirebaseStore struct {
	bucket     *storage.BucketHandle
	bucketName string
	logger     *zap.Logger
}

func NewFirebaseStore(bucket *storage.BucketHandle, bucketName string, logger *zap.Logger) *FirebaseStore {
	return &FirebaseStore{bucket: bucket, bucketName: bucketName, logger: logger.Named("blobstore")}
}

func (s *FirebaseStore) Upload(ctx context.Context, filename string, r io.Reader, folder string) (Asset, error) {
	name, contentType, err := objectName(filename, folder)
	if err != nil {
		return Asset{}, err
	}

	w := s.bucket.Object(name).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = "public, max-age=86400"
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		s.logger.Error("Failed to stream object", zap.String("object", name), zap.Error(err))
		return Asset{}, common.ErrBlobStore.Wrap(err)
	}
	if err := w.Close(); err != nil {
		s.logger.Error("Failed to finalize object", zap.String("object", name), zap.Error(err))
		return Asset{}, common.ErrBlobStore.Wrap(err)
	}

	return Asset{URL: fmt.Sprintf("%s/%s/%s", gcsPublicHost, s.bucketName, name), PublicID: name}, nil
}

func (s *FirebaseStore) Delete(ctx context.Context, publicID string) error {
	err := s.bucket.Object(publicID).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		s.logger.Error("Failed to delete object", zap.String("object", publicID), zap.Error(err))
		return common.ErrBlobStore.Wrap(err)
	}
	return nil
}
