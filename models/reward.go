// models/reward.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RewardRecord is the standalone grant ledger entry, written alongside the
// reward embedded on the idea. Per-employee stats sum these records.
type RewardRecord struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	IdeaID    primitive.ObjectID `bson:"ideaId" json:"ideaId"`
	Points    int                `bson:"points" json:"points"`
	AwardedAt time.Time          `bson:"awardedAt" json:"awardedAt"`
}
