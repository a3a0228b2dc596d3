package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Rushibhatt10/HBEstate/internal/platform/logger"
	"github.com/Rushibhatt10/HBEstate/internal/property/domain"
)

const allPropertiesKey = "properties:all"

// NewRedisClient connects to Redis and pings it once.
func NewRedisClient(ctx context.Context, addr, password string, db int, log *logger.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		log.Error("Failed to connect to Redis", zap.String("address", addr), zap.Error(err))
		return nil, fmt.Errorf("failed to ping redis at %s: %w", addr, err)
	}
	log.Info("Successfully connected to Redis", zap.String("address", addr))
	return rdb, nil
}

type cachedProperty struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Location    string         `json:"location"`
	Type        string         `json:"type"`
	BHK         any            `json:"bhk,omitempty"`
	Price       any            `json:"price,omitempty"`
	CreatedAt   any            `json:"createdAt,omitempty"`
	UpdatedAt   any            `json:"updatedAt,omitempty"`
	Image       string         `json:"image,omitempty"`
	Images      []string       `json:"images,omitempty"`
	Area        string         `json:"area,omitempty"`
	Description string         `json:"description,omitempty"`
	Status      string         `json:"status,omitempty"`
	Featured    bool           `json:"featured,omitempty"`
	ShowOnMap   bool           `json:"showOnMap,omitempty"`
	MapLink     string         `json:"mapLink,omitempty"`
	Attributes  map[string]any `json:"attributes,omitempty"`
}

// PropertyCache keeps a JSON snapshot of the whole property list in Redis.
type PropertyCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *logger.Logger
}

func NewPropertyCache(client *redis.Client, ttl time.Duration, log *logger.Logger) *PropertyCache {
	return &PropertyCache{
		client: client,
		ttl:    ttl,
		logger: log.Named("PropertyCache"),
	}
}

func (c *PropertyCache) GetAll(ctx context.Context) ([]*domain.Property, error) {
	raw, err := c.client.Get(ctx, allPropertiesKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrCacheMiss
		}
		c.logger.Error("Redis Get operation failed", zap.String("key", allPropertiesKey), zap.Error(err))
		return nil, fmt.Errorf("property cache get: %w", err)
	}

	var cached []cachedProperty
	if err := json.Unmarshal(raw, &cached); err != nil {
		c.logger.Warn("Dropping unreadable property snapshot", zap.Error(err))
		_ = c.Invalidate(ctx)
		return nil, domain.ErrCacheMiss
	}

	out := make([]*domain.Property, len(cached))
	for i, cp := range cached {
		out[i] = &domain.Property{
			ID: cp.ID, Title: cp.Title, Location: cp.Location, Type: cp.Type,
			BHK: cp.BHK, Price: cp.Price, CreatedAt: cp.CreatedAt, UpdatedAt: cp.UpdatedAt,
			Image: cp.Image, Images: cp.Images, Area: cp.Area, Description: cp.Description,
			Status: cp.Status, Featured: cp.Featured, ShowOnMap: cp.ShowOnMap, MapLink: cp.MapLink,
			Attributes: cp.Attributes,
		}
	}
	return out, nil
}

func (c *PropertyCache) SetAll(ctx context.Context, properties []*domain.Property) error {
	cached := make([]cachedProperty, 0, len(properties))
	for _, p := range properties {
		if p == nil {
			continue
		}
		cached = append(cached, cachedProperty{
			ID: p.ID, Title: p.Title, Location: p.Location, Type: p.Type,
			BHK: p.BHK, Price: p.Price, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
			Image: p.Image, Images: p.Images, Area: p.Area, Description: p.Description,
			Status: p.Status, Featured: p.Featured, ShowOnMap: p.ShowOnMap, MapLink: p.MapLink,
			Attributes: p.Attributes,
		})
	}

	raw, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("property cache encode: %w", err)
	}
	if err := c.client.Set(ctx, allPropertiesKey, raw, c.ttl).Err(); err != nil {
		c.logger.Error("Redis Set operation failed", zap.String("key", allPropertiesKey), zap.Error(err))
		return fmt.Errorf("property cache set: %w", err)
	}
	c.logger.Debug("Property snapshot cached", zap.Int("count", len(cached)), zap.Duration("ttl", c.ttl))
	return nil
}

func (c *PropertyCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, allPropertiesKey).Err(); err != nil {
		c.logger.Error("Redis Del operation failed", zap.String("key", allPropertiesKey), zap.Error(err))
		return fmt.Errorf("property cache invalidate: %w", err)
	}
	return nil
}

// NopCache always misses. It is used when Redis is not configured.
type NopCache struct{}

func (NopCache) GetAll(context.Context) ([]*domain.Property, error) { return nil, domain.ErrCacheMiss }
func (NopCache) SetAll(context.Context, []*domain.Property) error   { return nil }
func (NopCache) Invalidate(context.Context) error                   { return nil }
