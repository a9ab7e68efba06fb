// handlers/file_handler.go
package handlers

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"ideabank/config"
	"ideabank/models"
	"ideabank/utils"
)

// storedFileName builds the unique on-disk name for an upload: the upload
// timestamp in milliseconds prefixed to the original base name.
func storedFileName(now time.Time, original string) string {
	return fmt.Sprintf("%d-%s", now.UnixMilli(), filepath.Base(original))
}

// UploadFile accepts a single multipart file ("file" field), stores the
// bytes under the upload directory and records a File document.
func UploadFile(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	if err := os.MkdirAll(config.UploadDir, 0o755); err != nil {
		log.Printf("UploadFile: mkdir failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "File upload failed")
		return
	}

	now := time.Now().UTC()
	storedName := storedFileName(now, header.Filename)
	destPath := filepath.Join(config.UploadDir, storedName)

	dst, err := os.Create(destPath)
	if err != nil {
		log.Printf("UploadFile: create failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "File upload failed")
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		log.Printf("UploadFile: write failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "File upload failed")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	record := models.File{
		ID:          primitive.NewObjectID(),
		Filename:    header.Filename,
		StoredName:  storedName,
		Filepath:    destPath,
		ContentType: contentType,
		UploadDate:  now,
	}

	if _, err := fileCollection.InsertOne(r.Context(), record); err != nil {
		log.Printf("UploadFile: insert failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "File upload failed")
		return
	}

	fileURL := fmt.Sprintf("%s/uploads/%s", config.PublicURL, storedName)

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": "File uploaded successfully",
		"file":    record,
		"url":     fileURL,
	})
}

func streamFile(w http.ResponseWriter, record *models.File) {
	f, err := os.Open(record.Filepath)
	if err != nil {
		log.Printf("streamFile: open %s failed: %v", record.Filepath, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "File retrieval failed")
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", record.ContentType)
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, f); err != nil {
		log.Printf("streamFile: copy failed: %v", err)
	}
}

// GetFileByID streams a stored file by its record id with the recorded
// content type.
func GetFileByID(w http.ResponseWriter, r *http.Request) {
	fileID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid file ID")
		return
	}

	var record models.File
	err = fileCollection.FindOne(r.Context(), bson.M{"_id": fileID}).Decode(&record)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "File not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "File retrieval failed")
		return
	}

	streamFile(w, &record)
}

// GetFileByName streams a stored file by its unique stored name.
func GetFileByName(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["filename"]

	var record models.File
	err := fileCollection.FindOne(r.Context(), bson.M{"storedName": name}).Decode(&record)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "File not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "File retrieval failed")
		return
	}

	streamFile(w, &record)
}
