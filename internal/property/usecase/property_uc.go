package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/Rushibhatt10/HBEstate/internal/platform/logger"
	"github.com/Rushibhatt10/HBEstate/internal/platform/metrics"
	"github.com/Rushibhatt10/HBEstate/internal/platform/validator"
	"github.com/Rushibhatt10/HBEstate/internal/property/domain"
	"github.com/Rushibhatt10/HBEstate/internal/property/listing"
)

var tracer = otel.Tracer("hbestate/usecase")

// PropertyInput carries the editable fields of a property. BHK and Price are
// kept as sent: the listing copes with both text and numbers.
type PropertyInput struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Location    string   `json:"location" validate:"required,max=200"`
	Type        string   `json:"type" validate:"max=60"`
	BHK         any      `json:"bhk"`
	Price       any      `json:"price"`
	Area        string   `json:"area" validate:"max=60"`
	Description string   `json:"description" validate:"max=10000"`
	Status      string   `json:"status" validate:"max=60"`
	Images      []string `json:"images" validate:"dive,url"`
	Featured    bool     `json:"featured"`
	ShowOnMap   bool     `json:"showOnMap"`
	MapLink     string   `json:"mapLink" validate:"omitempty,url"`

	// Attributes are stored alongside the known fields and returned unchanged.
	Attributes map[string]any `json:"-"`
}

// PropertyUsecase implements listing management and the public listing.
type PropertyUsecase struct {
	repo      domain.PropertyRepository
	cache     domain.PropertyCache
	photos    *PhotoUsecase
	publisher domain.EventPublisher
	validate  *validator.Validator
	metrics   *metrics.Manager
	logger    *logger.Logger
	maxImages int
	now       func() time.Time
}

// NewPropertyUsecase creates a PropertyUsecase. maxImages <= 0 means
// domain.MaxImagesPerProperty.
func NewPropertyUsecase(
	repo domain.PropertyRepository,
	cache domain.PropertyCache,
	photos *PhotoUsecase,
	publisher domain.EventPublisher,
	v *validator.Validator,
	m *metrics.Manager,
	maxImages int,
	log *logger.Logger,
) *PropertyUsecase {
	if maxImages <= 0 {
		maxImages = domain.MaxImagesPerProperty
	}
	return &PropertyUsecase{
		repo:      repo,
		cache:     cache,
		photos:    photos,
		publisher: publisher,
		validate:  v,
		metrics:   m,
		logger:    log.Named("PropertyUsecase"),
		maxImages: maxImages,
		now:       time.Now,
	}
}

// Create stores a new property. createdAt and updatedAt are stamped as
// RFC 3339 UTC strings.
func (uc *PropertyUsecase) Create(ctx context.Context, in PropertyInput) (*domain.Property, error) {
	ctx, span := tracer.Start(ctx, "PropertyUsecase.Create")
	defer span.End()

	if err := uc.check(in); err != nil {
		return nil, err
	}

	p := &domain.Property{}
	uc.apply(p, in)
	stamp := uc.timestamp()
	p.CreatedAt = stamp
	p.UpdatedAt = stamp

	id, err := uc.repo.Create(ctx, p)
	if err != nil {
		uc.logger.Error("Failed to save property", zap.Error(err))
		span.RecordError(err)
		return nil, fmt.Errorf("failed to create property: %w", err)
	}
	p.ID = id
	span.SetAttributes(attribute.String("property.id", id))

	uc.invalidate(ctx)
	uc.publish(ctx, domain.SubjectPropertyCreated, p)
	uc.metrics.PropertyCreated()
	uc.logger.Info("Property created", zap.String("property_id", id), zap.String("title", p.Title))
	return p, nil
}

// Update replaces the editable fields of the property id. Unknown stored
// fields are kept; attributes in the input override them.
func (uc *PropertyUsecase) Update(ctx context.Context, id string, in PropertyInput) (*domain.Property, error) {
	ctx, span := tracer.Start(ctx, "PropertyUsecase.Update")
	defer span.End()
	span.SetAttributes(attribute.String("property.id", id))

	if err := uc.check(in); err != nil {
		return nil, err
	}

	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	uc.apply(p, in)
	p.UpdatedAt = uc.timestamp()

	if err := uc.repo.Update(ctx, p); err != nil {
		uc.logger.Error("Failed to update property", zap.String("property_id", id), zap.Error(err))
		span.RecordError(err)
		return nil, err
	}

	uc.invalidate(ctx)
	uc.publish(ctx, domain.SubjectPropertyUpdated, p)
	uc.metrics.PropertyUpdated()
	uc.logger.Info("Property updated", zap.String("property_id", id))
	return p, nil
}

// Delete removes the property and, best effort, its images.
func (uc *PropertyUsecase) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "PropertyUsecase.Delete")
	defer span.End()
	span.SetAttributes(attribute.String("property.id", id))

	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		uc.logger.Error("Failed to delete property", zap.String("property_id", id), zap.Error(err))
		span.RecordError(err)
		return err
	}

	uc.photos.DeleteAll(ctx, p.Images)
	uc.invalidate(ctx)
	uc.publish(ctx, domain.SubjectPropertyDeleted, p)
	uc.metrics.PropertyDeleted()
	uc.logger.Info("Property deleted", zap.String("property_id", id))
	return nil
}

// Get returns one property.
func (uc *PropertyUsecase) Get(ctx context.Context, id string) (*domain.Property, error) {
	ctx, span := tracer.Start(ctx, "PropertyUsecase.Get")
	defer span.End()
	span.SetAttributes(attribute.String("property.id", id))

	return uc.repo.GetByID(ctx, id)
}

// ListAll returns every property, served from the cache when possible. Cache
// failures are logged and never fail the call.
func (uc *PropertyUsecase) ListAll(ctx context.Context) ([]*domain.Property, error) {
	ctx, span := tracer.Start(ctx, "PropertyUsecase.ListAll")
	defer span.End()

	cached, err := uc.cache.GetAll(ctx)
	if err == nil {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return cached, nil
	}
	if !errors.Is(err, domain.ErrCacheMiss) {
		uc.logger.Warn("Failed to read property cache", zap.Error(err))
	}
	span.SetAttributes(attribute.Bool("cache.hit", false))

	properties, err := uc.repo.List(ctx)
	if err != nil {
		uc.logger.Error("Failed to list properties", zap.Error(err))
		span.RecordError(err)
		return nil, err
	}
	if err := uc.cache.SetAll(ctx, properties); err != nil {
		uc.logger.Warn("Failed to write property cache", zap.Error(err))
	}
	return properties, nil
}

// Browse computes the listing page for state.
func (uc *PropertyUsecase) Browse(ctx context.Context, state listing.FilterState) (listing.View, error) {
	properties, err := uc.ListAll(ctx)
	if err != nil {
		return listing.View{}, err
	}
	return listing.ComputeListingView(properties, state), nil
}

// AttachImages uploads files and appends them to the property's gallery.
func (uc *PropertyUsecase) AttachImages(ctx context.Context, id string, files []ImageFile) (*domain.Property, error) {
	ctx, span := tracer.Start(ctx, "PropertyUsecase.AttachImages")
	defer span.End()
	span.SetAttributes(attribute.String("property.id", id), attribute.Int("images.count", len(files)))

	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(p.Images)+len(files) > uc.maxImages {
		return nil, fmt.Errorf("%w: a property holds at most %d images", domain.ErrTooManyImages, uc.maxImages)
	}

	urls, err := uc.photos.Upload(ctx, files)
	if err != nil {
		return nil, err
	}
	p.Images = append(p.Images, urls...)
	p.Image = p.Images[0]
	p.UpdatedAt = uc.timestamp()

	if err := uc.repo.Update(ctx, p); err != nil {
		uc.logger.Error("Failed to save attached images", zap.String("property_id", id), zap.Error(err))
		uc.photos.DeleteAll(ctx, urls)
		return nil, err
	}

	uc.invalidate(ctx)
	uc.publish(ctx, domain.SubjectPropertyUpdated, p)
	return p, nil
}

// RemoveImage drops the image at index from the gallery and from storage.
func (uc *PropertyUsecase) RemoveImage(ctx context.Context, id string, index int) (*domain.Property, error) {
	ctx, span := tracer.Start(ctx, "PropertyUsecase.RemoveImage")
	defer span.End()
	span.SetAttributes(attribute.String("property.id", id), attribute.Int("image.index", index))

	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(p.Images) {
		return nil, fmt.Errorf("%w: image index %d out of range", domain.ErrInvalidInput, index)
	}

	removed := p.Images[index]
	p.Images = append(p.Images[:index:index], p.Images[index+1:]...)
	p.Image = ""
	if len(p.Images) > 0 {
		p.Image = p.Images[0]
	}
	p.UpdatedAt = uc.timestamp()

	if err := uc.repo.Update(ctx, p); err != nil {
		uc.logger.Error("Failed to save image removal", zap.String("property_id", id), zap.Error(err))
		return nil, err
	}

	uc.photos.DeleteAll(ctx, []string{removed})
	uc.invalidate(ctx)
	uc.publish(ctx, domain.SubjectPropertyUpdated, p)
	return p, nil
}

func (uc *PropertyUsecase) check(in PropertyInput) error {
	if err := uc.validate.Struct(in); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if strings.TrimSpace(domain.Text(in.Price)) == "" {
		return fmt.Errorf("%w: price is required", domain.ErrInvalidInput)
	}
	if len(in.Images) > uc.maxImages {
		return fmt.Errorf("%w: a property holds at most %d images", domain.ErrTooManyImages, uc.maxImages)
	}
	return nil
}

func (uc *PropertyUsecase) apply(p *domain.Property, in PropertyInput) {
	p.Title = strings.TrimSpace(in.Title)
	p.Location = strings.TrimSpace(in.Location)
	p.Type = strings.TrimSpace(in.Type)
	if p.Type == "" {
		p.Type = domain.DefaultPropertyType
	}
	p.BHK = trimText(in.BHK)
	p.Price = trimText(in.Price)
	p.Area = strings.TrimSpace(in.Area)
	p.Description = strings.TrimSpace(in.Description)
	p.Status = strings.TrimSpace(in.Status)
	if p.Status == "" {
		p.Status = domain.StatusReadyToMove
	}
	p.Images = append([]string(nil), in.Images...)
	p.Image = ""
	if len(p.Images) > 0 {
		p.Image = p.Images[0]
	}
	p.Featured = in.Featured
	p.ShowOnMap = in.ShowOnMap
	p.MapLink = strings.TrimSpace(in.MapLink)

	if len(in.Attributes) > 0 {
		if p.Attributes == nil {
			p.Attributes = make(map[string]any, len(in.Attributes))
		}
		for k, v := range in.Attributes {
			p.Attributes[k] = v
		}
	}
}

func (uc *PropertyUsecase) timestamp() string {
	return uc.now().UTC().Format(time.RFC3339)
}

func (uc *PropertyUsecase) invalidate(ctx context.Context) {
	if err := uc.cache.Invalidate(ctx); err != nil {
		uc.logger.Warn("Failed to invalidate property cache", zap.Error(err))
	}
}

func (uc *PropertyUsecase) publish(ctx context.Context, subject string, p *domain.Property) {
	event := domain.PropertyEvent{
		PropertyID: p.ID,
		Title:      p.Title,
		Location:   p.Location,
		Timestamp:  uc.now().UTC(),
	}
	if err := uc.publisher.Publish(ctx, subject, event); err != nil {
		uc.logger.Warn("Failed to publish event", zap.String("subject", subject), zap.String("property_id", p.ID), zap.Error(err))
	}
}

// trimText trims strings and leaves other values untouched.
func trimText(v any) any {
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return v
}
