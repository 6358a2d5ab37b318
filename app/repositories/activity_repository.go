package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/pkg/database"
	"github.com/shashiranjanraj/bazaar/pkg/metrics"
)

// ActivityRepository appends audit records. Writes come from the
// background activity job, never from request handlers directly.
type ActivityRepository struct {
	col *mongo.Collection
}

func NewActivityRepository() *ActivityRepository {
	return &ActivityRepository{col: database.Collection(database.ColActivities)}
}

// Record inserts one activity document.
func (r *ActivityRepository) Record(ctx context.Context, activity *models.Activity) error {
	defer metrics.ObserveMongoOp("activities.record", time.Now())

	activity.CreatedAt = time.Now().UTC()
	_, err := r.col.InsertOne(ctx, activity)
	return err
}
