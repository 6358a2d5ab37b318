// Package jobs defines the background jobs this application queues.
package jobs

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/app/repositories"
	"github.com/shashiranjanraj/bazaar/pkg/queue"
)

// ActivityJob records one user action in the activities collection. It is
// dispatched by the cart and post services and processed off the request
// path by the queue workers.
type ActivityJob struct {
	UserID  string `json:"userId"`
	Action  string `json:"action"`
	Subject string `json:"subject,omitempty"`
}

// Handle persists the activity document.
func (j *ActivityJob) Handle() error {
	userID, err := primitive.ObjectIDFromHex(j.UserID)
	if err != nil {
		return fmt.Errorf("activity job: bad user id %q: %w", j.UserID, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return repositories.NewActivityRepository().Record(ctx, &models.Activity{
		UserID:  userID,
		Action:  j.Action,
		Subject: j.Subject,
	})
}

// RegisterAll makes every job type known to the queue. Called once at boot.
func RegisterAll() {
	queue.Register("*jobs.ActivityJob", func() queue.Job { return &ActivityJob{} })
}
