package usecase

import (
	"context"
	"fmt"
	"io"
	"mime"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Rushibhatt10/HBEstate/internal/platform/logger"
	"github.com/Rushibhatt10/HBEstate/internal/platform/metrics"
	"github.com/Rushibhatt10/HBEstate/internal/property/domain"
)

const uploadConcurrency = 4

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// ImageFile is one uploaded image.
type ImageFile struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// PhotoUsecase validates images and moves them in and out of storage.
type PhotoUsecase struct {
	storage   domain.ImageStorage
	metrics   *metrics.Manager
	logger    *logger.Logger
	maxBytes  int64
	maxImages int
}

// NewPhotoUsecase creates a PhotoUsecase. maxImages bounds a single upload
// call; maxBytes bounds each file.
func NewPhotoUsecase(storage domain.ImageStorage, m *metrics.Manager, maxBytes int64, maxImages int, log *logger.Logger) *PhotoUsecase {
	if maxImages <= 0 {
		maxImages = domain.MaxImagesPerProperty
	}
	return &PhotoUsecase{
		storage:   storage,
		metrics:   m,
		logger:    log.Named("PhotoUsecase"),
		maxBytes:  maxBytes,
		maxImages: maxImages,
	}
}

// Upload stores files in parallel and returns their URLs in input order. If
// any upload fails the ones already stored are removed again.
func (uc *PhotoUsecase) Upload(ctx context.Context, files []ImageFile) ([]string, error) {
	ctx, span := tracer.Start(ctx, "PhotoUsecase.Upload")
	defer span.End()
	span.SetAttributes(attribute.Int("images.count", len(files)))

	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no images provided", domain.ErrInvalidInput)
	}
	if len(files) > uc.maxImages {
		return nil, fmt.Errorf("%w: at most %d images per upload", domain.ErrTooManyImages, uc.maxImages)
	}
	contentTypes := make([]string, len(files))
	for i, f := range files {
		ct, err := uc.check(f)
		if err != nil {
			return nil, err
		}
		contentTypes[i] = ct
	}

	urls := make([]string, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uploadConcurrency)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			url, err := uc.storage.Upload(gctx, f.Name, contentTypes[i], f.Size, f.Body)
			if err != nil {
				return fmt.Errorf("upload %q: %w", f.Name, err)
			}
			urls[i] = url
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		uc.logger.Error("Image upload failed", zap.Error(err))
		span.RecordError(err)
		uc.DeleteAll(ctx, urls)
		return nil, err
	}

	uc.metrics.ImagesUploaded(len(urls))
	uc.logger.Info("Images uploaded", zap.Int("count", len(urls)))
	return urls, nil
}

// DeleteAll removes urls from storage. Failures are logged only, as the
// records referencing them are already gone or were never written.
func (uc *PhotoUsecase) DeleteAll(ctx context.Context, urls []string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
	defer cancel()

	var wg sync.WaitGroup
	for _, url := range urls {
		if url == "" {
			continue
		}
		wg.Add(1)
		go func(url string) {
			defer wg.Done()
			if err := uc.storage.Delete(ctx, url); err != nil {
				uc.logger.Warn("Failed to delete image", zap.String("url", url), zap.Error(err))
			}
		}(url)
	}
	wg.Wait()
}

func (uc *PhotoUsecase) check(f ImageFile) (string, error) {
	if f.Body == nil || f.Size <= 0 {
		return "", fmt.Errorf("%w: %q is empty", domain.ErrInvalidInput, f.Name)
	}
	if uc.maxBytes > 0 && f.Size > uc.maxBytes {
		return "", fmt.Errorf("%w: %q is %d bytes, limit is %d", domain.ErrImageTooLarge, f.Name, f.Size, uc.maxBytes)
	}
	ct, _, err := mime.ParseMediaType(f.ContentType)
	if err != nil {
		ct = strings.ToLower(strings.TrimSpace(f.ContentType))
	}
	if !allowedImageTypes[ct] {
		return "", fmt.Errorf("%w: %q has type %q", domain.ErrUnsupportedImage, f.Name, f.ContentType)
	}
	return ct, nil
}
