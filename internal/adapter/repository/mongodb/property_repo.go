package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/Rushibhatt10/HBEstate/internal/platform/logger"
	"github.com/Rushibhatt10/HBEstate/internal/property/domain"
)

const propertyCollectionName = "properties"

// PropertyRepository implements domain.PropertyRepository using MongoDB.
type PropertyRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

// NewPropertyRepository creates a new MongoDB property repository.
func NewPropertyRepository(db *mongo.Database, log *logger.Logger) *PropertyRepository {
	collection := db.Collection(propertyCollectionName)

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "featured", Value: 1}}},
	}
	ensureIndexes(collection, indexes, log)

	return &PropertyRepository{
		collection: collection,
		logger:     log.Named("PropertyRepository"),
	}
}

// Create inserts a property and returns its generated ID.
func (r *PropertyRepository) Create(ctx context.Context, p *domain.Property) (string, error) {
	r.logger.Info("Creating property in DB", zap.String("title", p.Title))

	fresh := *p
	fresh.ID = ""
	doc, err := fromDomainProperty(&fresh)
	if err != nil {
		return "", err
	}
	doc.ID = primitive.NewObjectID()

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		r.logger.Error("Failed to insert property into DB", zap.Error(err))
		return "", fmt.Errorf("db insert failed: %w", err)
	}
	r.logger.Info("Property created successfully in DB", zap.String("property_id", doc.ID.Hex()))
	return doc.ID.Hex(), nil
}

// GetByID returns domain.ErrNotFound for unknown or malformed IDs.
func (r *PropertyRepository) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	var doc propertyDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			r.logger.Warn("Property not found in DB", zap.String("property_id", id))
			return nil, domain.ErrNotFound
		}
		r.logger.Error("Failed to get property by ID from DB", zap.Error(err), zap.String("property_id", id))
		return nil, fmt.Errorf("db findone failed: %w", err)
	}
	return doc.toDomain(), nil
}

// Update replaces the stored document so that removed attributes disappear too.
func (r *PropertyRepository) Update(ctx context.Context, p *domain.Property) error {
	r.logger.Info("Updating property in DB", zap.String("property_id", p.ID))
	if p.ID == "" {
		return domain.ErrNotFound
	}

	doc, err := fromDomainProperty(p)
	if err != nil {
		return err
	}

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc)
	if err != nil {
		r.logger.Error("Failed to update property in DB", zap.Error(err), zap.String("property_id", p.ID))
		return fmt.Errorf("db replace failed: %w", err)
	}
	if result.MatchedCount == 0 {
		r.logger.Warn("Property not found for update in DB", zap.String("property_id", p.ID))
		return domain.ErrNotFound
	}
	return nil
}

func (r *PropertyRepository) Delete(ctx context.Context, id string) error {
	r.logger.Info("Deleting property from DB", zap.String("property_id", id))
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		r.logger.Error("Failed to delete property from DB", zap.Error(err), zap.String("property_id", id))
		return fmt.Errorf("db delete failed: %w", err)
	}
	if result.DeletedCount == 0 {
		r.logger.Warn("Property not found for deletion in DB", zap.String("property_id", id))
		return domain.ErrNotFound
	}
	return nil
}

// List returns every stored property, newest first by storage order.
// The listing pipeline applies its own ordering afterwards.
func (r *PropertyRepository) List(ctx context.Context) ([]*domain.Property, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		r.logger.Error("Failed to list properties from DB", zap.Error(err))
		return nil, fmt.Errorf("db find failed: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []*propertyDocument
	if err := cursor.All(ctx, &docs); err != nil {
		r.logger.Error("Failed to decode properties from DB", zap.Error(err))
		return nil, fmt.Errorf("db cursor all failed: %w", err)
	}

	out := make([]*domain.Property, len(docs))
	for i, doc := range docs {
		out[i] = doc.toDomain()
	}
	return out, nil
}

func (r *PropertyRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("db count failed: %w", err)
	}
	return n, nil
}

func ensureIndexes(collection *mongo.Collection, indexes []mongo.IndexModel, log *logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		// Indexes may already exist or be managed out of band.
		log.Error("Failed to create indexes", zap.String("collection", collection.Name()), zap.Error(err))
		return
	}
	log.Info("Successfully ensured indexes", zap.String("collection", collection.Name()))
}
