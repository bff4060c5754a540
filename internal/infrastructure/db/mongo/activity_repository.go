package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/siteflow/dashboard-gateway/internal/core/domain"
)

const activityCollection = "activity_events"

// ActivityRepository persists dashboard mutation events to MongoDB.
type ActivityRepository struct {
	collection *mongo.Collection
	timeout    time.Duration
}

// NewActivityRepository builds a repository bound to the activity_events
// collection of the given database.
func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{
		collection: db.Collection(activityCollection),
		timeout:    5 * time.Second,
	}
}

// Insert stores a single activity event.
func (r *ActivityRepository) Insert(ctx context.Context, event *domain.ActivityEvent) error {
	opCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if _, err := r.collection.InsertOne(opCtx, event); err != nil {
		return fmt.Errorf("insert activity event: %w", err)
	}
	return nil
}

// Recent returns the most recent events across all actors, newest first.
func (r *ActivityRepository) Recent(ctx context.Context, limit int64) ([]domain.ActivityEvent, error) {
	return r.find(ctx, bson.M{}, limit)
}

// RecentByActor returns the most recent events recorded for one actor,
// newest first.
func (r *ActivityRepository) RecentByActor(ctx context.Context, actorID string, limit int64) ([]domain.ActivityEvent, error) {
	return r.find(ctx, bson.M{"actor_id": actorID}, limit)
}

func (r *ActivityRepository) find(ctx context.Context, filter bson.M, limit int64) ([]domain.ActivityEvent, error) {
	opCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "occurred_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(opCtx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find activity events: %w", err)
	}
	defer cursor.Close(opCtx)

	events := make([]domain.ActivityEvent, 0, limit)
	if err := cursor.All(opCtx, &events); err != nil {
		return nil, fmt.Errorf("decode activity events: %w", err)
	}
	return events, nil
}
