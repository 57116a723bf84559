// File: internal/blobstore/filesystem.go
package blobstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"torslanda_locals_backend/internal/common"

	"go.uber.org/zap"
)

// FilesystemStore keeps images under a local directory that the HTTP server exposes.
type FilesystemStore struct {
	root      string
	publicURL string
	logger    *zap.Logger
}

// NewFilesystemStore creates the root directory if needed.
func NewFilesystemStore(root, publicURL string, logger *zap.Logger) (*FilesystemStore, error) {
	if root == "" {
		return nil, fmt.Errorf("storage path cannot be empty")
	}
	if err := os.MkdirAll(root, os.ModePerm); err != nil {
		logger.Error("Failed to create storage path directory", zap.String("path", root), zap.Error(err))
		return nil, fmt.Errorf("failed to create storage path %s: %w", root, err)
	}
	logger.Info("Filesystem blob store initialized", zap.String("storagePath", root))
	return &FilesystemStore{
		root:      root,
		publicURL: strings.TrimRight(publicURL, "/"),
		logger:    logger.Named("blobstore"),
	}, nil
}

// Root is the directory served under /images.
func (s *FilesystemStore) Root() string {
	return s.root
}

// Upload copies r to <root>/<folder>/<uuid><ext>.
func (s *FilesystemStore) Upload(ctx context.Context, filename string, r io.Reader, folder string) (Asset, error) {
	publicID, _, err := objectName(filename, folder)
	if err != nil {
		return Asset{}, err
	}
	if err := ctx.Err(); err != nil {
		return Asset{}, common.ErrBlobStore.Wrap(err)
	}

	destinationPath := filepath.Join(s.root, filepath.FromSlash(publicID))
	if err := os.MkdirAll(filepath.Dir(destinationPath), os.ModePerm); err != nil {
		s.logger.Error("Failed to create directory for file storage", zap.String("path", destinationPath), zap.Error(err))
		return Asset{}, common.ErrBlobStore.Wrap(err)
	}

	dst, err := os.Create(destinationPath)
	if err != nil {
		s.logger.Error("Failed to create destination file", zap.String("path", destinationPath), zap.Error(err))
		return Asset{}, common.ErrBlobStore.Wrap(err)
	}
	if _, err = io.Copy(dst, r); err != nil {
		dst.Close()
		os.Remove(destinationPath)
		s.logger.Error("Failed to write uploaded file", zap.String("path", destinationPath), zap.Error(err))
		return Asset{}, common.ErrBlobStore.Wrap(err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(destinationPath)
		return Asset{}, common.ErrBlobStore.Wrap(err)
	}

	s.logger.Debug("File saved", zap.String("publicID", publicID))
	return Asset{URL: s.publicURL + "/" + publicID, PublicID: publicID}, nil
}

// Delete removes a stored file. Deleting a missing file is not an error.
func (s *FilesystemStore) Delete(_ context.Context, publicID string) error {
	clean, err := cleanRelative(publicID)
	if err != nil || clean == "" {
		s.logger.Warn("Attempt to delete file with invalid path", zap.String("publicID", publicID))
		return common.ErrBlobStore.Wrap(fmt.Errorf("invalid file path for deletion"))
	}

	fullPath := filepath.Join(s.root, filepath.FromSlash(clean))
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		s.logger.Error("Failed to delete file", zap.String("path", fullPath), zap.Error(err))
		return common.ErrBlobStore.Wrap(err)
	}
	return nil
}
