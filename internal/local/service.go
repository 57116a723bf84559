// File: internal/local/service.go
package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync/atomic"

	"torslanda_locals_backend/internal/blobstore"
	"torslanda_locals_backend/internal/common"
	"torslanda_locals_backend/internal/platform/metrics"

	"github.com/gosimple/slug"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// imageFolderRoot is the blob store folder for all local images.
const imageFolderRoot = "image_logo"

// ImageUpload is the file part of a create request.
type ImageUpload struct {
	Filename string
	Content  io.Reader
}

// SeedImageUploader stores the image belonging to a seed record.
type SeedImageUploader func(ctx context.Context, seed SeedRecord) (blobstore.Asset, error)

// Service defines the interface for local-related business logic.
type Service interface {
	CreateLocal(ctx context.Context, req CreateLocalRequest, image ImageUpload) (*Local, error)
	ListLocals(ctx context.Context) ([]Local, error)
	PopulateFromSeed(ctx context.Context, seeds []SeedRecord, upload SeedImageUploader) (SeedReport, error)
}

// ServiceImplementation implements the local Service interface.
type ServiceImplementation struct {
	repo            Repository
	blobs           blobstore.Store
	metrics         *metrics.Metrics
	seedConcurrency int
	logger          *zap.Logger
}

var _ Service = (*ServiceImplementation)(nil)

// NewService creates a new local service. seedConcurrency below 1 means sequential.
func NewService(repo Repository, blobs blobstore.Store, m *metrics.Metrics, seedConcurrency int, logger *zap.Logger) *ServiceImplementation {
	if seedConcurrency < 1 {
		seedConcurrency = 1
	}
	return &ServiceImplementation{
		repo:            repo,
		blobs:           blobs,
		metrics:         m,
		seedConcurrency: seedConcurrency,
		logger:          logger.Named("local_service"),
	}
}

// ImageFolder is the blob store folder for a category.
func ImageFolder(category string) string {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		return imageFolderRoot
	}
	return imageFolderRoot + "/" + category
}

// CreateLocal validates the request, uploads the image and stores the local.
// A failed insert after a successful upload leaves the asset behind and is reported as an error.
func (s *ServiceImplementation) CreateLocal(ctx context.Context, req CreateLocalRequest, image ImageUpload) (*Local, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Category = strings.TrimSpace(req.Category)
	if req.StreetAddress == "" {
		req.StreetAddress = req.Street
	}
	if err := common.Validate(req); err != nil {
		return nil, err
	}
	if image.Content == nil {
		return nil, common.ValidationError("img_url", "The img_url field is required.")
	}

	// Saves an upload for the obvious duplicate; the unique index still has the last word.
	if _, err := s.repo.FindByName(ctx, req.Name); err == nil {
		return nil, common.ErrDuplicateName.WithDetails(req.Name)
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	asset, err := s.blobs.Upload(ctx, image.Filename, image.Content, ImageFolder(req.Category))
	if err != nil {
		s.logger.Error("Image upload failed", zap.String("name", req.Name), zap.Error(err))
		return nil, err
	}

	l := &Local{
		Name:          req.Name,
		Slug:          slug.Make(req.Name),
		Category:      req.Category,
		Tagline:       req.Tagline,
		StreetAddress: req.StreetAddress,
		ZipCode:       req.ZipCode,
		PhoneNumber:   req.PhoneNumber,
		Email:         req.Email,
		WebShop:       req.WebShop,
		Booking:       req.Booking,
		URL:           req.URL,
		ImageURL:      asset.URL,
		ImageID:       asset.PublicID,
	}
	if req.Longitude != nil && req.Latitude != nil {
		l.Geolocation = &GeoPoint{Lon: *req.Longitude, Lat: *req.Latitude}
	}

	if err := s.repo.Create(ctx, l); err != nil {
		s.logger.Warn("Local insert failed after upload, asset orphaned",
			zap.String("name", req.Name), zap.String("publicID", asset.PublicID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("Local created", zap.String("id", l.ID.String()), zap.String("name", l.Name))
	return l, nil
}

// ListLocals returns the whole directory.
func (s *ServiceImplementation) ListLocals(ctx context.Context) ([]Local, error) {
	locals, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list locals", zap.Error(err))
		return nil, common.ErrBadRequest.WithMessage("Could not find locals.").Wrap(err)
	}
	if locals == nil {
		locals = []Local{}
	}
	return locals, nil
}

// PopulateFromSeed replaces the directory with the seed set.
// Each upload+insert is independent: failures are logged, counted and skipped.
// Only a failure to clear the table aborts the run.
func (s *ServiceImplementation) PopulateFromSeed(ctx context.Context, seeds []SeedRecord, upload SeedImageUploader) (SeedReport, error) {
	report := SeedReport{Total: len(seeds)}

	deleted, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return report, fmt.Errorf("clear locals: %w", err)
	}
	s.logger.Info("Cleared locals before seeding", zap.Int64("deleted", deleted), zap.Int("seeds", len(seeds)))

	var inserted, failed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.seedConcurrency)
	for _, seed := range seeds {
		g.Go(func() error {
			if err := s.insertSeed(gctx, seed, upload); err != nil {
				failed.Add(1)
				s.metrics.SeedItem("failed")
				s.logger.Warn("Skipping seed record", zap.String("name", seed.Name), zap.Error(err))
				return nil
			}
			inserted.Add(1)
			s.metrics.SeedItem("inserted")
			s.logger.Debug("Saved seed record", zap.String("name", seed.Name))
			return nil
		})
	}
	_ = g.Wait() // workers never return errors

	report.Inserted = int(inserted.Load())
	report.Failed = int(failed.Load())
	s.logger.Info("Seed population finished",
		zap.Int("total", report.Total), zap.Int("inserted", report.Inserted), zap.Int("failed", report.Failed))
	return report, nil
}

func (s *ServiceImplementation) insertSeed(ctx context.Context, seed SeedRecord, upload SeedImageUploader) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(seed.Name) == "" {
		return common.ValidationError("name", "The name field is required.")
	}
	if seed.Geolocation != nil {
		if err := seed.Geolocation.Validate(); err != nil {
			return err
		}
	}

	asset, err := upload(ctx, seed)
	if err != nil {
		return fmt.Errorf("upload image %q: %w", seed.Img, err)
	}

	l := &Local{
		Name:          strings.TrimSpace(seed.Name),
		Slug:          slug.Make(seed.Name),
		Category:      seed.Category,
		Tagline:       seed.Tagline,
		StreetAddress: seed.StreetAddress,
		ZipCode:       seed.ZipCode,
		PhoneNumber:   seed.PhoneNumber,
		Email:         seed.Email,
		WebShop:       seed.WebShop,
		Booking:       seed.Booking,
		URL:           seed.URL,
		Geolocation:   seed.Geolocation,
		ImageURL:      asset.URL,
		ImageID:       asset.PublicID,
	}
	if err := s.repo.Create(ctx, l); err != nil {
		return fmt.Errorf("insert (asset %s orphaned): %w", asset.PublicID, err)
	}
	return nil
}
