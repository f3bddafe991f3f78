package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vb-capital-ai/db"
	"vb-capital-ai/models"
)

type AILogRepository struct {
	col *mongo.Collection
}

func NewAILogRepository(database *mongo.Database) *AILogRepository {
	return &AILogRepository{col: database.Collection(db.CollectionAILogs)}
}

// Insert stores one call record and returns its hex id.
func (r *AILogRepository) Insert(ctx context.Context, log models.AILog) (string, error) {
	if log.RequestedAt.IsZero() {
		log.RequestedAt = time.Now()
	}
	res, err := r.col.InsertOne(ctx, log)
	if err != nil {
		return "", fmt.Errorf("insert ai log: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex(), nil
	}
	return fmt.Sprint(res.InsertedID), nil
}

// FindByRequestID returns the calls made while serving one inbound request, oldest first.
func (r *AILogRepository) FindByRequestID(ctx context.Context, requestID string) ([]models.AILog, error) {
	opts := options.Find().SetSort(bson.D{{Key: "requested_at", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"request_id": requestID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find ai logs: %w", err)
	}
	defer cur.Close(ctx)

	var out []models.AILog
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode ai logs: %w", err)
	}
	return out, nil
}
