// handlers/collections.go
package handlers

import (
	"go.mongodb.org/mongo-driver/mongo"

	"ideabank/database"
)

var (
	userCollection     *mongo.Collection
	ideaCollection     *mongo.Collection
	feedbackCollection *mongo.Collection
	rewardCollection   *mongo.Collection
	fileCollection     *mongo.Collection
)

func InitCollections() {
	db := database.DB()
	userCollection = db.Collection("users")
	ideaCollection = db.Collection("ideas")
	feedbackCollection = db.Collection("feedback")
	rewardCollection = db.Collection("rewards")
	fileCollection = db.Collection("files")
}
