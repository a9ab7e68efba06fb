// models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles
const (
	RoleEmployee          = "Employee"
	RoleInnovationManager = "Innovation Manager"
	RoleDecisionMaker     = "Decision Maker"
)

// User account statuses
const (
	UserActive   = "Active"
	UserDisabled = "Disabled"
)

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName    string             `bson:"firstName" json:"firstName"`
	LastName     string             `bson:"lastName" json:"lastName"`
	ProfileImage string             `bson:"profileImage,omitempty" json:"profileImage,omitempty"`
	Email        string             `bson:"email" json:"email"`
	Role         string             `bson:"role" json:"role"`
	Mobile       string             `bson:"mobile,omitempty" json:"mobile,omitempty"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	Status       string             `bson:"status" json:"status"`
	ResetToken   string             `bson:"resetToken,omitempty" json:"-"`
	ResetExpire  *time.Time         `bson:"resetExpire,omitempty" json:"-"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
