package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"torslanda_locals_backend/internal/blobstore"
	"torslanda_locals_backend/internal/common"
	"torslanda_locals_backend/internal/platform/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.NewSQLite(dsn)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Local{}))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// fakeBlobStore records uploads in memory.
type fakeBlobStore struct {
	mu      sync.Mutex
	uploads []string
	fail    error
}

func (f *fakeBlobStore) Upload(_ context.Context, filename string, r io.Reader, folder string) (blobstore.Asset, error) {
	if f.fail != nil {
		return blobstore.Asset{}, f.fail
	}
	if _, err := io.Copy(io.Discard, r); err != nil {
		return blobstore.Asset{}, err
	}
	id := folder + "/" + uuid.NewString() + "-" + filename
	f.mu.Lock()
	f.uploads = append(f.uploads, id)
	f.mu.Unlock()
	return blobstore.Asset{URL: "https://blobs.test/" + id, PublicID: id}, nil
}

func (f *fakeBlobStore) Delete(context.Context, string) error { return nil }

func (f *fakeBlobStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.uploads)
}

// seedUploader fails for images listed in missing, like a logo absent from disk.
func seedUploader(store *fakeBlobStore, missing ...string) SeedImageUploader {
	return func(ctx context.Context, seed SeedRecord) (blobstore.Asset, error) {
		for _, m := range missing {
			if seed.Img == m {
				return blobstore.Asset{}, common.ErrBlobStore.Wrap(errors.New("open " + m + ": no such file"))
			}
		}
		return store.Upload(ctx, seed.Img, strings.NewReader("logo"), ImageFolder(seed.Category))
	}
}
