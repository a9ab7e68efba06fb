// models/file.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type File struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Filename    string             `bson:"filename" json:"filename"`
	StoredName  string             `bson:"storedName" json:"storedName"`
	Filepath    string             `bson:"filepath" json:"filepath"`
	ContentType string             `bson:"contentType" json:"contentType"`
	UploadDate  time.Time          `bson:"uploadDate" json:"uploadDate"`
}
