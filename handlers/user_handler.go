// handlers/user_handler.go
package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"ideabank/models"
	"ideabank/utils"
)

type createUserRequest struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	ProfileImage string `json:"profileImage"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	Mobile       string `json:"mobile"`
	Password     string `json:"password"`
}

// CreateUser registers a new account. Emails are unique across the
// collection.
func CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	count, err := userCollection.CountDocuments(r.Context(), bson.M{"email": req.Email})
	if err != nil {
		log.Printf("CreateUser: duplicate check failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}
	if count > 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Email already exists")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Password processing failed")
		return
	}

	now := time.Now().UTC()
	user := models.User{
		ID:           primitive.NewObjectID(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		ProfileImage: req.ProfileImage,
		Email:        req.Email,
		Role:         req.Role,
		Mobile:       req.Mobile,
		PasswordHash: hash,
		Status:       models.UserActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := userCollection.InsertOne(r.Context(), user); err != nil {
		log.Printf("CreateUser: insert failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, user)
}

func ListUsers(w http.ResponseWriter, r *http.Request) {
	cursor, err := userCollection.Find(r.Context(), bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch users")
		return
	}
	defer cursor.Close(r.Context())

	var users []models.User
	if err := cursor.All(r.Context(), &users); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Decode error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, users)
}

func GetUser(w http.ResponseWriter, r *http.Request) {
	userID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var user models.User
	err = userCollection.FindOne(r.Context(), bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "User not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch user")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, user)
}

type updateUserRequest struct {
	FirstName    *string `json:"firstName"`
	LastName     *string `json:"lastName"`
	ProfileImage *string `json:"profileImage"`
	Email        *string `json:"email"`
	Role         *string `json:"role"`
	Mobile       *string `json:"mobile"`
}

func UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req updateUserRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if req.FirstName != nil {
		set["firstName"] = *req.FirstName
	}
	if req.LastName != nil {
		set["lastName"] = *req.LastName
	}
	if req.ProfileImage != nil {
		set["profileImage"] = *req.ProfileImage
	}
	if req.Email != nil {
		set["email"] = strings.TrimSpace(*req.Email)
	}
	if req.Role != nil {
		set["role"] = *req.Role
	}
	if req.Mobile != nil {
		set["mobile"] = *req.Mobile
	}

	res := userCollection.FindOneAndUpdate(
		r.Context(),
		bson.M{"_id": userID},
		bson.M{"$set": set},
	)
	if res.Err() != nil {
		if res.Err() == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "User not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update user")
		return
	}

	var updated models.User
	if err := userCollection.FindOne(r.Context(), bson.M{"_id": userID}).Decode(&updated); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch updated user")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, updated)
}

func DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	res, err := userCollection.DeleteOne(r.Context(), bson.M{"_id": userID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete user")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "User deleted successfully"})
}

// UpdateUserStatus toggles an account between Active and Disabled.
func UpdateUserStatus(w http.ResponseWriter, r *http.Request) {
	userID, err := primitive.ObjectIDFromHex(mux.Vars(r)["userId"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	if req.Status != models.UserActive && req.Status != models.UserDisabled {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid status value")
		return
	}

	res, err := userCollection.UpdateOne(
		r.Context(),
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"status": req.Status, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update user status")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "User status updated successfully"})
}
