// models/idea.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Idea categories
const (
	CategoryInnovation   = "Innovation"
	CategoryCostSaving   = "Cost-Saving"
	CategoryProductivity = "Productivity"
)

// Reward is the point grant embedded on a completed idea.
type Reward struct {
	Points  int                `bson:"points" json:"points"`
	GivenBy primitive.ObjectID `bson:"givenBy" json:"givenBy"`
	Comment string             `bson:"comment,omitempty" json:"comment,omitempty"`
}

// Comment is a discussion entry appended to an idea. CreatedByUser is only
// populated on the joined listing endpoint.
type Comment struct {
	Text          string             `bson:"text" json:"text"`
	CreatedBy     primitive.ObjectID `bson:"createdBy" json:"createdBy"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	CreatedByUser *UserInfo          `bson:"-" json:"createdByUser,omitempty"`
}

// UserInfo is the subset of user fields joined into idea listings.
type UserInfo struct {
	ID           primitive.ObjectID `json:"id"`
	FirstName    string             `json:"firstName"`
	LastName     string             `json:"lastName"`
	Email        string             `json:"email"`
	Mobile       string             `json:"mobile,omitempty"`
	ProfileImage string             `json:"profileImage,omitempty"`
}

type Idea struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title       string               `bson:"title" json:"title"`
	Description string               `bson:"description" json:"description"`
	Category    string               `bson:"category" json:"category"`
	SubmittedBy primitive.ObjectID   `bson:"submittedBy" json:"submittedBy"`
	Status      IdeaStatus           `bson:"status" json:"status"`
	Files       []string             `bson:"files" json:"files"`
	Likes       []primitive.ObjectID `bson:"likes" json:"likes"`
	Comments    []Comment            `bson:"comments" json:"comments"`
	Reward      *Reward              `bson:"reward,omitempty" json:"reward,omitempty"`
	Feedback    []primitive.ObjectID `bson:"feedback" json:"feedback"`
	UpdatedBy   primitive.ObjectID   `bson:"updatedBy,omitempty" json:"updatedBy,omitempty"`
	CreatedAt   time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt" json:"updatedAt"`

	// Populated only by the joined listing endpoint.
	SubmittedByUser *UserInfo `bson:"-" json:"submittedByUser,omitempty"`
}
