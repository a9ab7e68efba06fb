package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"ideabank/config"
	"ideabank/database"
	"ideabank/models"
	"ideabank/utils"
)

// setupIntegration connects the handlers to a throwaway test database.
// Skipped unless MONGODB_TEST_URI is set.
func setupIntegration(t *testing.T) {
	t.Helper()

	uri := os.Getenv("MONGODB_TEST_URI")
	if uri == "" {
		t.Skip("MONGODB_TEST_URI not set; skipping integration test")
	}

	config.MongoURI = uri
	config.DatabaseName = fmt.Sprintf("ideabank_test_%d", time.Now().UnixNano())

	require.NoError(t, database.Connect())
	InitCollections()

	t.Cleanup(func() {
		_ = database.DB().Drop(context.Background())
		database.Disconnect()
	})
}

func insertTestUser(t *testing.T, email, role, status string) models.User {
	t.Helper()

	hash, err := utils.HashPassword("password123")
	require.NoError(t, err)

	now := time.Now().UTC()
	user := models.User{
		ID:           primitive.NewObjectID(),
		FirstName:    "Test",
		LastName:     "User",
		Email:        email,
		Role:         role,
		PasswordHash: hash,
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	_, err = userCollection.InsertOne(context.Background(), user)
	require.NoError(t, err)
	return user
}

// authedRequest builds a request carrying the identity the auth middleware
// would have injected, plus mux path vars.
func authedRequest(method, target string, body interface{}, user models.User, vars map[string]string) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")

	ctx := context.WithValue(req.Context(), "userID", user.ID.Hex())
	ctx = context.WithValue(ctx, "userName", user.FirstName+" "+user.LastName)
	ctx = context.WithValue(ctx, "userRole", user.Role)
	req = req.WithContext(ctx)

	if vars != nil {
		req = mux.SetURLVars(req, vars)
	}
	return req
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestIdeaLifecycle_EndToEnd(t *testing.T) {
	setupIntegration(t)

	employee := insertTestUser(t, "employee@example.com", models.RoleEmployee, models.UserActive)
	manager := insertTestUser(t, "manager@example.com", models.RoleInnovationManager, models.UserActive)

	// Submit
	w := httptest.NewRecorder()
	CreateIdea(w, authedRequest("POST", "/api/ideas", map[string]interface{}{
		"title":       "X",
		"description": "an idea",
		"category":    models.CategoryInnovation,
	}, employee, nil))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	created := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "Submitted", created["status"])
	ideaID := created["id"].(string)

	// Approve with suggestions
	w = httptest.NewRecorder()
	UpdateIdeaStatus(w, authedRequest("PUT", "/api/ideas/"+ideaID+"/status", map[string]interface{}{
		"status":      "Approved",
		"suggestions": "try Y",
	}, manager, map[string]string{"id": ideaID}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	updated := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "Approved", updated["status"])
	require.Len(t, updated["feedback"], 1)

	var feedback models.Feedback
	oid, err := primitive.ObjectIDFromHex(ideaID)
	require.NoError(t, err)
	require.NoError(t, feedbackCollection.FindOne(context.Background(), bson.M{"idea": oid}).Decode(&feedback))
	assert.Equal(t, models.FeedbackActionable, feedback.FeedbackType)
	assert.Equal(t, "try Y", feedback.Comments)
	assert.Equal(t, manager.ID, feedback.ProvidedBy)

	// Reward closes the lifecycle
	w = httptest.NewRecorder()
	GiveReward(w, authedRequest("PATCH", "/api/ideas/"+ideaID+"/reward", map[string]interface{}{
		"rewardsPoints": 50,
		"comments":      "great work",
	}, manager, map[string]string{"id": ideaID}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	rewarded := decodeBody(t, w)["updatedIdea"].(map[string]interface{})
	assert.Equal(t, "Completed", rewarded["status"])
	reward := rewarded["reward"].(map[string]interface{})
	assert.EqualValues(t, 50, reward["points"])
	assert.Equal(t, manager.ID.Hex(), reward["givenBy"])
	assert.Equal(t, "great work", reward["comment"])

	// A grant record is written for the submitter
	var record models.RewardRecord
	require.NoError(t, rewardCollection.FindOne(context.Background(), bson.M{"ideaId": oid}).Decode(&record))
	assert.Equal(t, employee.ID, record.UserID)
	assert.Equal(t, 50, record.Points)

	// Second grant is rejected
	w = httptest.NewRecorder()
	GiveReward(w, authedRequest("PATCH", "/api/ideas/"+ideaID+"/reward", map[string]interface{}{
		"rewardsPoints": 10,
	}, manager, map[string]string{"id": ideaID}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, models.ErrMsgCompleted, decodeBody(t, w)["message"])
}

func TestIdeaEditAndDeleteGuards(t *testing.T) {
	setupIntegration(t)

	employee := insertTestUser(t, "employee@example.com", models.RoleEmployee, models.UserActive)

	for _, status := range []models.IdeaStatus{
		models.StatusInProgress, models.StatusApproved, models.StatusRejected, models.StatusCompleted,
	} {
		now := time.Now().UTC()
		idea := models.Idea{
			ID:          primitive.NewObjectID(),
			Title:       "locked",
			Description: "d",
			Category:    models.CategoryProductivity,
			SubmittedBy: employee.ID,
			Status:      status,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		_, err := ideaCollection.InsertOne(context.Background(), idea)
		require.NoError(t, err)
		vars := map[string]string{"id": idea.ID.Hex()}

		w := httptest.NewRecorder()
		UpdateIdea(w, authedRequest("PUT", "/api/ideas/"+idea.ID.Hex(), map[string]interface{}{
			"title": "new title",
		}, employee, vars))
		assert.Equal(t, http.StatusBadRequest, w.Code, "edit must be rejected in %s", status)
		assert.Equal(t, models.ErrMsgEditGuard, decodeBody(t, w)["message"])

		w = httptest.NewRecorder()
		DeleteIdea(w, authedRequest("DELETE", "/api/ideas/"+idea.ID.Hex(), nil, employee, vars))
		assert.Equal(t, http.StatusBadRequest, w.Code, "delete must be rejected in %s", status)
		assert.Equal(t, models.ErrMsgDeleteGuard, decodeBody(t, w)["message"])
	}
}

func TestIdeaEdit_AllowedWhileSubmitted(t *testing.T) {
	setupIntegration(t)

	employee := insertTestUser(t, "employee@example.com", models.RoleEmployee, models.UserActive)

	w := httptest.NewRecorder()
	CreateIdea(w, authedRequest("POST", "/api/ideas", map[string]interface{}{
		"title":       "editable",
		"description": "d",
		"category":    models.CategoryCostSaving,
	}, employee, nil))
	require.Equal(t, http.StatusCreated, w.Code)
	ideaID := decodeBody(t, w)["data"].(map[string]interface{})["id"].(string)

	w = httptest.NewRecorder()
	UpdateIdea(w, authedRequest("PUT", "/api/ideas/"+ideaID, map[string]interface{}{
		"title": "edited",
	}, employee, map[string]string{"id": ideaID}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "edited", decodeBody(t, w)["data"].(map[string]interface{})["title"])
}

func TestLikeUnlikeContract(t *testing.T) {
	setupIntegration(t)

	employee := insertTestUser(t, "employee@example.com", models.RoleEmployee, models.UserActive)

	w := httptest.NewRecorder()
	CreateIdea(w, authedRequest("POST", "/api/ideas", map[string]interface{}{
		"title":       "likeable",
		"description": "d",
		"category":    models.CategoryInnovation,
	}, employee, nil))
	require.Equal(t, http.StatusCreated, w.Code)
	ideaID := decodeBody(t, w)["data"].(map[string]interface{})["id"].(string)
	vars := map[string]string{"id": ideaID}

	// First like succeeds
	w = httptest.NewRecorder()
	LikeIdea(w, authedRequest("POST", "/api/ideas/"+ideaID+"/like", nil, employee, vars))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.EqualValues(t, 1, decodeBody(t, w)["likes"])

	// Second like by the same user fails
	w = httptest.NewRecorder()
	LikeIdea(w, authedRequest("POST", "/api/ideas/"+ideaID+"/like", nil, employee, vars))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "You already voted this idea", decodeBody(t, w)["message"])

	// Unlike restores the original count
	w = httptest.NewRecorder()
	UnlikeIdea(w, authedRequest("POST", "/api/ideas/"+ideaID+"/unlike", nil, employee, vars))
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, decodeBody(t, w)["likes"])

	// Unlike without a prior like fails
	w = httptest.NewRecorder()
	UnlikeIdea(w, authedRequest("POST", "/api/ideas/"+ideaID+"/unlike", nil, employee, vars))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "You haven't voted this idea", decodeBody(t, w)["message"])
}

func TestAddComment_NotGatedByStatus(t *testing.T) {
	setupIntegration(t)

	employee := insertTestUser(t, "employee@example.com", models.RoleEmployee, models.UserActive)

	now := time.Now().UTC()
	idea := models.Idea{
		ID:          primitive.NewObjectID(),
		Title:       "done",
		Description: "d",
		Category:    models.CategoryInnovation,
		SubmittedBy: employee.ID,
		Status:      models.StatusCompleted,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	_, err := ideaCollection.InsertOne(context.Background(), idea)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	AddComment(w, authedRequest("POST", "/api/ideas/"+idea.ID.Hex()+"/comment", map[string]interface{}{
		"text": "nice one",
	}, employee, map[string]string{"ideaId": idea.ID.Hex()}))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	comments := decodeBody(t, w)["comments"].([]interface{})
	require.Len(t, comments, 1)
	assert.Equal(t, "nice one", comments[0].(map[string]interface{})["text"])
}

func TestEmployeeStats_SumsRewards(t *testing.T) {
	setupIntegration(t)

	employee := insertTestUser(t, "employee@example.com", models.RoleEmployee, models.UserActive)
	manager := insertTestUser(t, "manager@example.com", models.RoleDecisionMaker, models.UserActive)

	for i, points := range []int{50, 25} {
		w := httptest.NewRecorder()
		CreateIdea(w, authedRequest("POST", "/api/ideas", map[string]interface{}{
			"title":       fmt.Sprintf("idea %d", i),
			"description": "d",
			"category":    models.CategoryInnovation,
		}, employee, nil))
		require.Equal(t, http.StatusCreated, w.Code)
		ideaID := decodeBody(t, w)["data"].(map[string]interface{})["id"].(string)

		w = httptest.NewRecorder()
		GiveReward(w, authedRequest("PATCH", "/api/ideas/"+ideaID+"/reward", map[string]interface{}{
			"rewardsPoints": points,
		}, manager, map[string]string{"id": ideaID}))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	w := httptest.NewRecorder()
	GetEmployeeStats(w, authedRequest("GET", "/api/employee/"+employee.ID.Hex()+"/stats", nil,
		employee, map[string]string{"employeeId": employee.ID.Hex()}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.EqualValues(t, 75, body["rewardPoints"])
	assert.EqualValues(t, 2, body["totalIdeaCount"])
	assert.Equal(t, "100.00", body["innovationPercentage"])
}
