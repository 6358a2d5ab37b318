package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Activity is an audit record written by the background activity job.
type Activity struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID    primitive.ObjectID `bson:"user" json:"user"`
	Action    string             `bson:"action" json:"action"`
	Subject   string             `bson:"subject,omitempty" json:"subject,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
