package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/Rushibhatt10/HBEstate/internal/platform/logger"
	"github.com/Rushibhatt10/HBEstate/internal/property/domain"
)

const viewCollectionName = "property_views"

// ViewRepository records property page views for the admin activity feed.
type ViewRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

func NewViewRepository(db *mongo.Database, log *logger.Logger) *ViewRepository {
	collection := db.Collection(viewCollectionName)
	ensureIndexes(collection, []mongo.IndexModel{
		{Keys: bson.D{{Key: "viewedAt", Value: -1}}},
		{Keys: bson.D{{Key: "propertyId", Value: 1}}},
	}, log)

	return &ViewRepository{
		collection: collection,
		logger:     log.Named("ViewRepository"),
	}
}

func (r *ViewRepository) Create(ctx context.Context, v *domain.PropertyView) (string, error) {
	doc := fromDomainView(v)
	doc.ID = primitive.NewObjectID()

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		r.logger.Error("Failed to insert property view into DB", zap.Error(err), zap.String("property_id", v.PropertyID))
		return "", fmt.Errorf("db insert failed: %w", err)
	}
	return doc.ID.Hex(), nil
}

// Recent returns at most limit views, newest first.
func (r *ViewRepository) Recent(ctx context.Context, limit int64) ([]*domain.PropertyView, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "viewedAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		r.logger.Error("Failed to list property views from DB", zap.Error(err))
		return nil, fmt.Errorf("db find failed: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []*viewDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("db cursor all failed: %w", err)
	}
	out := make([]*domain.PropertyView, len(docs))
	for i, doc := range docs {
		out[i] = doc.toDomain()
	}
	return out, nil
}

func (r *ViewRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("db count failed: %w", err)
	}
	return n, nil
}
