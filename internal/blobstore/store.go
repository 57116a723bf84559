// File: internal/blobstore/store.go
package blobstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"torslanda_locals_backend/internal/common"
	"torslanda_locals_backend/internal/config"
	"torslanda_locals_backend/internal/firebase"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Asset identifies a stored image.
type Asset struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

// Store uploads and deletes images.
type Store interface {
	Upload(ctx context.Context, filename string, r io.Reader, folder string) (Asset, error)
	Delete(ctx context.Context, publicID string) error
}

var imageExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
}

// New returns the store selected by BLOB_STORE_DRIVER.
func New(cfg *config.Config, logger *zap.Logger) (Store, error) {
	switch cfg.BlobStoreDriver {
	case config.BlobStoreFirebase:
		app, err := firebase.NewService(cfg, logger)
		if err != nil {
			return nil, err
		}
		bucket, err := app.Bucket(context.Background())
		if err != nil {
			return nil, err
		}
		return NewFirebaseStore(bucket, cfg.FirebaseStorageBucket, logger), nil
	default:
		return NewFilesystemStore(cfg.FileStoragePath, cfg.FileStoragePublicURL, logger)
	}
}

// UploadFile uploads the file at filePath into folder.
func UploadFile(ctx context.Context, store Store, filePath, folder string) (Asset, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return Asset{}, common.ErrBlobStore.Wrap(fmt.Errorf("open %s: %w", filePath, err))
	}
	defer f.Close()
	return store.Upload(ctx, filepath.Base(filePath), f, folder)
}

// objectName builds "<folder>/<uuid><ext>" and rejects anything that is not an image
// or that tries to leave the folder.
func objectName(filename, folder string) (name, contentType string, err error) {
	ext := strings.ToLower(filepath.Ext(filename))
	contentType, ok := imageExtensions[ext]
	if !ok {
		return "", "", common.ValidationError("img_url", fmt.Sprintf("Unsupported image type %q.", ext))
	}
	cleanFolder, err := cleanRelative(folder)
	if err != nil {
		return "", "", err
	}
	name = uuid.New().String() + ext
	if cleanFolder != "" {
		name = cleanFolder + "/" + name
	}
	return name, contentType, nil
}

func cleanRelative(p string) (string, error) {
	if p == "" {
		return "", nil
	}
	clean := path.Clean(filepath.ToSlash(p))
	if path.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", common.ErrBlobStore.Wrap(fmt.Errorf("invalid path %q", p))
	}
	if clean == "." {
		return "", nil
	}
	return clean, nil
}
