// models/feedback.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Feedback types
const (
	FeedbackActionable = "Actionable"
	FeedbackGeneral    = "General"
)

type Feedback struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Idea         primitive.ObjectID `bson:"idea" json:"idea"`
	ProvidedBy   primitive.ObjectID `bson:"providedBy" json:"providedBy"`
	FeedbackType string             `bson:"feedbackType" json:"feedbackType"`
	Comments     string             `bson:"comments" json:"comments"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
