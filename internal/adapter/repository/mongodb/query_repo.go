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

const queryCollectionName = "queries"

// QueryRepository stores contact queries submitted from the public site.
type QueryRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

func NewQueryRepository(db *mongo.Database, log *logger.Logger) *QueryRepository {
	collection := db.Collection(queryCollectionName)
	ensureIndexes(collection, []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	}, log)

	return &QueryRepository{
		collection: collection,
		logger:     log.Named("QueryRepository"),
	}
}

func (r *QueryRepository) Create(ctx context.Context, q *domain.Query) (string, error) {
	doc := fromDomainQuery(q)
	doc.ID = primitive.NewObjectID()

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		r.logger.Error("Failed to insert query into DB", zap.Error(err))
		return "", fmt.Errorf("db insert failed: %w", err)
	}
	r.logger.Info("Query stored in DB", zap.String("query_id", doc.ID.Hex()))
	return doc.ID.Hex(), nil
}

// List returns all queries, newest first.
func (r *QueryRepository) List(ctx context.Context) ([]*domain.Query, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		r.logger.Error("Failed to list queries from DB", zap.Error(err))
		return nil, fmt.Errorf("db find failed: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []*queryDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("db cursor all failed: %w", err)
	}
	out := make([]*domain.Query, len(docs))
	for i, doc := range docs {
		out[i] = doc.toDomain()
	}
	return out, nil
}

func (r *QueryRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		r.logger.Error("Failed to delete query from DB", zap.Error(err), zap.String("query_id", id))
		return fmt.Errorf("db delete failed: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	r.logger.Info("Query deleted from DB", zap.String("query_id", id))
	return nil
}

func (r *QueryRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("db count failed: %w", err)
	}
	return n, nil
}
