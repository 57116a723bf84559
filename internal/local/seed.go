// File: internal/local/seed.go
package local

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"torslanda_locals_backend/internal/blobstore"
)

// LoadSeedFile reads the seed dataset, a JSON array of records.
func LoadSeedFile(path string) ([]SeedRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var seeds []SeedRecord
	if err := json.Unmarshal(data, &seeds); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	return seeds, nil
}

// NewLogoUploader uploads <logosDir>/<category>/<img> into the category's image folder.
func NewLogoUploader(store blobstore.Store, logosDir string) SeedImageUploader {
	return func(ctx context.Context, seed SeedRecord) (blobstore.Asset, error) {
		category := strings.ToLower(strings.TrimSpace(seed.Category))
		imagePath := filepath.Join(logosDir, category, filepath.Base(seed.Img))
		return blobstore.UploadFile(ctx, store, imagePath, ImageFolder(seed.Category))
	}
}
