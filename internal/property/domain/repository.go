package domain

import (
	"context"
	"io"
)

// PropertyRepository persists properties. Implementations return ErrNotFound
// for unknown or malformed ids.
type PropertyRepository interface {
	Create(ctx context.Context, p *Property) (string, error)
	GetByID(ctx context.Context, id string) (*Property, error)
	Update(ctx context.Context, p *Property) error
	Delete(ctx context.Context, id string) error
	// List returns every stored property. The listing page filters in memory.
	List(ctx context.Context) ([]*Property, error)
	Count(ctx context.Context) (int64, error)
}

// QueryRepository persists contact queries.
type QueryRepository interface {
	Create(ctx context.Context, q *Query) (string, error)
	// List returns queries newest first.
	List(ctx context.Context) ([]*Query, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

// ViewRepository persists the property view log.
type ViewRepository interface {
	Create(ctx context.Context, v *PropertyView) (string, error)
	// Recent returns at most limit views, newest first.
	Recent(ctx context.Context, limit int64) ([]*PropertyView, error)
	Count(ctx context.Context) (int64, error)
}

// PropertyCache holds a snapshot of the full property list.
type PropertyCache interface {
	// GetAll returns ErrCacheMiss when no snapshot is stored.
	GetAll(ctx context.Context) ([]*Property, error)
	SetAll(ctx context.Context, properties []*Property) error
	Invalidate(ctx context.Context) error
}

// ImageStorage stores uploaded images and returns their public URLs.
type ImageStorage interface {
	Upload(ctx context.Context, name, contentType string, size int64, body io.Reader) (string, error)
	Delete(ctx context.Context, url string) error
}

// EventPublisher publishes domain events.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
}

// QueryNotifier tells the operator about a new contact query.
type QueryNotifier interface {
	NotifyNewQuery(ctx context.Context, q *Query) error
}
