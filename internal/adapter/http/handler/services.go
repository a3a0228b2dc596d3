package handler

import (
	"context"
	"time"

	"github.com/Rushibhatt10/HBEstate/internal/property/domain"
	"github.com/Rushibhatt10/HBEstate/internal/property/listing"
	"github.com/Rushibhatt10/HBEstate/internal/property/usecase"
)

// PropertyService is the property use case as seen by the HTTP layer.
type PropertyService interface {
	Create(ctx context.Context, in usecase.PropertyInput) (*domain.Property, error)
	Update(ctx context.Context, id string, in usecase.PropertyInput) (*domain.Property, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*domain.Property, error)
	Browse(ctx context.Context, state listing.FilterState) (listing.View, error)
	AttachImages(ctx context.Context, id string, files []usecase.ImageFile) (*domain.Property, error)
	RemoveImage(ctx context.Context, id string, index int) (*domain.Property, error)
}

type PhotoService interface {
	Upload(ctx context.Context, files []usecase.ImageFile) ([]string, error)
}

type QueryService interface {
	Submit(ctx context.Context, in usecase.QueryInput, image *usecase.ImageFile) (*domain.Query, error)
	List(ctx context.Context) ([]*domain.Query, error)
	Delete(ctx context.Context, id string) error
}

type ActivityService interface {
	LogView(ctx context.Context, in usecase.ViewInput)
	Recent(ctx context.Context, limit int64) ([]*domain.PropertyView, error)
}

type AuthService interface {
	Login(ctx context.Context, password string) (string, time.Time, error)
}

type StatsService interface {
	Stats(ctx context.Context) (domain.Stats, error)
}
