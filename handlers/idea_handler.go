// handlers/idea_handler.go
package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ideabank/mailer"
	"ideabank/models"
	"ideabank/utils"
	"ideabank/ws"
)

func sessionObjectID(r *http.Request) (primitive.ObjectID, error) {
	idHex, _ := r.Context().Value("userID").(string)
	return primitive.ObjectIDFromHex(idHex)
}

func findIdea(r *http.Request, id primitive.ObjectID) (*models.Idea, error) {
	var idea models.Idea
	err := ideaCollection.FindOne(r.Context(), bson.M{"_id": id}).Decode(&idea)
	if err != nil {
		return nil, err
	}
	return &idea, nil
}

type createIdeaRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Files       []string `json:"files"`
}

// CreateIdea submits a new idea in the Submitted state, owned by the
// session user.
func CreateIdea(w http.ResponseWriter, r *http.Request) {
	var req createIdeaRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	if req.Title == "" || req.Description == "" || req.Category == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Title, description and category are required")
		return
	}

	submitter, err := sessionObjectID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	now := time.Now().UTC()
	idea := models.Idea{
		ID:          primitive.NewObjectID(),
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		SubmittedBy: submitter,
		Status:      models.StatusSubmitted,
		Files:       req.Files,
		Likes:       []primitive.ObjectID{},
		Comments:    []models.Comment{},
		Feedback:    []primitive.ObjectID{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if idea.Files == nil {
		idea.Files = []string{}
	}

	if _, err := ideaCollection.InsertOne(r.Context(), idea); err != nil {
		log.Printf("CreateIdea: insert failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error creating idea")
		return
	}

	ws.Broadcast(ws.EventIdeaCreated, idea.ID.Hex(), submitter.Hex(), idea)
	utils.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{"success": true, "data": idea})
}

// ListIdeas returns all ideas, most recently updated first.
func ListIdeas(w http.ResponseWriter, r *http.Request) {
	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}})
	cursor, err := ideaCollection.Find(r.Context(), bson.M{}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching ideas")
		return
	}
	defer cursor.Close(r.Context())

	ideas := []models.Idea{}
	if err := cursor.All(r.Context(), &ideas); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Decode error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, ideas)
}

func GetIdea(w http.ResponseWriter, r *http.Request) {
	ideaID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid idea ID")
		return
	}

	idea, err := findIdea(r, ideaID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Idea not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching idea")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, idea)
}

// GetIdeasBySubmitter returns all ideas owned by one user.
func GetIdeasBySubmitter(w http.ResponseWriter, r *http.Request) {
	submitterID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}})
	cursor, err := ideaCollection.Find(r.Context(), bson.M{"submittedBy": submitterID}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching ideas")
		return
	}
	defer cursor.Close(r.Context())

	ideas := []models.Idea{}
	if err := cursor.All(r.Context(), &ideas); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Decode error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, ideas)
}

type updateIdeaRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// UpdateIdea edits an idea's content. Permitted only while Submitted.
func UpdateIdea(w http.ResponseWriter, r *http.Request) {
	ideaID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid idea ID")
		return
	}

	var req updateIdeaRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	idea, err := findIdea(r, ideaID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Idea not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Error updating idea")
		return
	}

	if !idea.Status.CanEdit() {
		utils.RespondWithError(w, http.StatusBadRequest, models.ErrMsgEditGuard)
		return
	}

	if req.Title != "" {
		idea.Title = req.Title
	}
	if req.Description != "" {
		idea.Description = req.Description
	}
	if req.Category != "" {
		idea.Category = req.Category
	}
	idea.UpdatedAt = time.Now().UTC()

	_, err = ideaCollection.ReplaceOne(r.Context(), bson.M{"_id": ideaID}, idea)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error updating idea")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": idea})
}

// DeleteIdea removes an idea. Permitted only while Submitted.
func DeleteIdea(w http.ResponseWriter, r *http.Request) {
	ideaID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid idea ID")
		return
	}

	idea, err := findIdea(r, ideaID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Idea not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Error deleting idea")
		return
	}

	if !idea.Status.CanEdit() {
		utils.RespondWithError(w, http.StatusBadRequest, models.ErrMsgDeleteGuard)
		return
	}

	if _, err := ideaCollection.DeleteOne(r.Context(), bson.M{"_id": ideaID}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error deleting idea")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Idea deleted successfully"})
}

type updateStatusRequest struct {
	Status      string `json:"status"`
	Suggestions string `json:"suggestions"`
}

// UpdateIdeaStatus overwrites the lifecycle status. When the reviewer
// attaches suggestions, an Actionable feedback record is created and
// linked to the idea as a side effect.
func UpdateIdeaStatus(w http.ResponseWriter, r *http.Request) {
	ideaID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid idea ID")
		return
	}

	var req updateStatusRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	status, err := models.ParseIdeaStatus(req.Status)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid status value")
		return
	}

	reviewer, err := sessionObjectID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	idea, err := findIdea(r, ideaID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Idea not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Error updating idea status")
		return
	}

	oldStatus := idea.Status
	now := time.Now().UTC()
	set := bson.M{
		"status":    status,
		"updatedBy": reviewer,
		"updatedAt": now,
	}
	update := bson.M{"$set": set}

	if req.Suggestions != "" {
		feedback := models.Feedback{
			ID:           primitive.NewObjectID(),
			Idea:         idea.ID,
			ProvidedBy:   reviewer,
			FeedbackType: models.FeedbackActionable,
			Comments:     req.Suggestions,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if _, err := feedbackCollection.InsertOne(r.Context(), feedback); err != nil {
			log.Printf("UpdateIdeaStatus: feedback insert failed: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Error updating idea status")
			return
		}
		update["$push"] = bson.M{"feedback": feedback.ID}
	}

	if _, err := ideaCollection.UpdateOne(r.Context(), bson.M{"_id": ideaID}, update); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error updating idea status")
		return
	}

	updated, err := findIdea(r, ideaID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching updated idea")
		return
	}

	ws.Broadcast(ws.EventStatusChanged, ideaID.Hex(), reviewer.Hex(), map[string]interface{}{
		"oldStatus": oldStatus,
		"newStatus": status,
	})
	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": updated})
}

type giveRewardRequest struct {
	RewardsPoints int    `json:"rewardsPoints"`
	Comments      string `json:"comments"`
}

// GiveReward grants points for an idea and closes its lifecycle. A grant
// ledger record is written for the submitter so their stats reflect it.
func GiveReward(w http.ResponseWriter, r *http.Request) {
	ideaID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid idea ID")
		return
	}

	var req giveRewardRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	granter, err := sessionObjectID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	idea, err := findIdea(r, ideaID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Idea not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Error giving reward")
		return
	}

	if idea.Status.Terminal() {
		utils.RespondWithError(w, http.StatusBadRequest, models.ErrMsgCompleted)
		return
	}

	now := time.Now().UTC()
	reward := models.Reward{
		Points:  req.RewardsPoints,
		GivenBy: granter,
		Comment: req.Comments,
	}

	_, err = ideaCollection.UpdateOne(
		r.Context(),
		bson.M{"_id": ideaID},
		bson.M{"$set": bson.M{
			"reward":    reward,
			"status":    models.StatusCompleted,
			"updatedBy": granter,
			"updatedAt": now,
		}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error giving reward")
		return
	}

	record := models.RewardRecord{
		ID:        primitive.NewObjectID(),
		UserID:    idea.SubmittedBy,
		IdeaID:    ideaID,
		Points:    req.RewardsPoints,
		AwardedAt: now,
	}
	if _, err := rewardCollection.InsertOne(r.Context(), record); err != nil {
		log.Printf("GiveReward: reward record insert failed: %v", err)
	}

	go notifyRewarded(idea, req.RewardsPoints)

	updated, err := findIdea(r, ideaID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching updated idea")
		return
	}

	ws.Broadcast(ws.EventRewardGranted, ideaID.Hex(), granter.Hex(), map[string]interface{}{
		"points": req.RewardsPoints,
	})
	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"success": true, "updatedIdea": updated})
}

func notifyRewarded(idea *models.Idea, points int) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var submitter models.User
	if err := userCollection.FindOne(ctx, bson.M{"_id": idea.SubmittedBy}).Decode(&submitter); err != nil {
		log.Printf("notifyRewarded: submitter lookup failed: %v", err)
		return
	}

	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your idea %q was rewarded with <b>%d points</b>. Congratulations!</p>",
		submitter.FirstName, idea.Title, points)
	if err := mailer.Send([]string{submitter.Email}, "Your idea was rewarded", body); err != nil {
		log.Printf("notifyRewarded: mail send failed: %v", err)
	}
}

// LikeIdea adds the session user to the idea's like set. The filter
// excludes users already present so the push is atomic and a duplicate
// like never wins a race.
func LikeIdea(w http.ResponseWriter, r *http.Request) {
	ideaID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid idea ID")
		return
	}

	userID, err := sessionObjectID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	res, err := ideaCollection.UpdateOne(
		r.Context(),
		bson.M{"_id": ideaID, "likes": bson.M{"$ne": userID}},
		bson.M{"$addToSet": bson.M{"likes": userID}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error liking idea")
		return
	}

	if res.MatchedCount == 0 {
		if _, err := findIdea(r, ideaID); err != nil {
			utils.RespondWithError(w, http.StatusNotFound, "Idea not found")
			return
		}
		utils.RespondWithError(w, http.StatusBadRequest, "You already voted this idea")
		return
	}

	idea, err := findIdea(r, ideaID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching idea")
		return
	}

	ws.Broadcast(ws.EventIdeaLiked, ideaID.Hex(), userID.Hex(), map[string]interface{}{
		"likes": len(idea.Likes),
	})
	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Idea successfully voted",
		"likes":   len(idea.Likes),
	})
}

// UnlikeIdea removes the session user from the like set. The filter
// requires the user to be present, mirroring LikeIdea.
func UnlikeIdea(w http.ResponseWriter, r *http.Request) {
	ideaID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid idea ID")
		return
	}

	userID, err := sessionObjectID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	res, err := ideaCollection.UpdateOne(
		r.Context(),
		bson.M{"_id": ideaID, "likes": userID},
		bson.M{"$pull": bson.M{"likes": userID}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error unliking idea")
		return
	}

	if res.MatchedCount == 0 {
		if _, err := findIdea(r, ideaID); err != nil {
			utils.RespondWithError(w, http.StatusNotFound, "Idea not found")
			return
		}
		utils.RespondWithError(w, http.StatusBadRequest, "You haven't voted this idea")
		return
	}

	idea, err := findIdea(r, ideaID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching idea")
		return
	}

	ws.Broadcast(ws.EventIdeaUnliked, ideaID.Hex(), userID.Hex(), map[string]interface{}{
		"likes": len(idea.Likes),
	})
	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Your vote successfully removed",
		"likes":   len(idea.Likes),
	})
}

// AddComment appends a comment to an idea. Comments are never gated by
// lifecycle status.
func AddComment(w http.ResponseWriter, r *http.Request) {
	ideaID, err := primitive.ObjectIDFromHex(mux.Vars(r)["ideaId"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid idea ID")
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if req.Text == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Comment text is required")
		return
	}

	userID, err := sessionObjectID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	comment := models.Comment{
		Text:      req.Text,
		CreatedBy: userID,
		CreatedAt: time.Now().UTC(),
	}

	res, err := ideaCollection.UpdateOne(
		r.Context(),
		bson.M{"_id": ideaID},
		bson.M{"$push": bson.M{"comments": comment}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error adding comment")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Idea not found")
		return
	}

	idea, err := findIdea(r, ideaID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching idea")
		return
	}

	ws.Broadcast(ws.EventCommentAdded, ideaID.Hex(), userID.Hex(), comment)
	utils.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"success":  true,
		"message":  "Comment added successfully",
		"comments": idea.Comments,
	})
}

// GetIdeasWithUserInfo lists all ideas with submitter and comment-author
// details joined in. Users are fetched in one batch and joined in memory.
func GetIdeasWithUserInfo(w http.ResponseWriter, r *http.Request) {
	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}})
	cursor, err := ideaCollection.Find(r.Context(), bson.M{}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching ideas")
		return
	}
	defer cursor.Close(r.Context())

	ideas := []models.Idea{}
	if err := cursor.All(r.Context(), &ideas); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Decode error")
		return
	}

	idSet := map[primitive.ObjectID]bool{}
	for _, idea := range ideas {
		idSet[idea.SubmittedBy] = true
		for _, c := range idea.Comments {
			idSet[c.CreatedBy] = true
		}
	}

	userIDs := make([]primitive.ObjectID, 0, len(idSet))
	for id := range idSet {
		userIDs = append(userIDs, id)
	}

	userInfo := map[primitive.ObjectID]*models.UserInfo{}
	if len(userIDs) > 0 {
		userCursor, err := userCollection.Find(r.Context(), bson.M{"_id": bson.M{"$in": userIDs}})
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching users")
			return
		}
		defer userCursor.Close(r.Context())

		var users []models.User
		if err := userCursor.All(r.Context(), &users); err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Decode error")
			return
		}
		for _, u := range users {
			userInfo[u.ID] = &models.UserInfo{
				ID:           u.ID,
				FirstName:    u.FirstName,
				LastName:     u.LastName,
				Email:        u.Email,
				Mobile:       u.Mobile,
				ProfileImage: u.ProfileImage,
			}
		}
	}

	for i := range ideas {
		ideas[i].SubmittedByUser = userInfo[ideas[i].SubmittedBy]
		for j := range ideas[i].Comments {
			ideas[i].Comments[j].CreatedByUser = userInfo[ideas[i].Comments[j].CreatedBy]
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": ideas})
}
