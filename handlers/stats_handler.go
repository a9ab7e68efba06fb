// handlers/stats_handler.go
package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ideabank/models"
	"ideabank/utils"
)

// IdeaBreakdown partitions a set of ideas by category and status, with
// percentage-of-total per partition. TotalIdeaCount substitutes 1 for an
// empty set, so all percentages read 0.00 rather than dividing by zero.
type IdeaBreakdown struct {
	TotalIdeaCount int `json:"totalIdeaCount"`

	InnovationsCount  int `json:"innovationsCount"`
	ProductivityCount int `json:"productivityCount"`
	CostSavingCount   int `json:"costSavingCount"`

	SubmittedCount  int `json:"submittedCount"`
	InprogressCount int `json:"inprogressCount"`
	ApprovedCount   int `json:"approvedCount"`
	RejectedCount   int `json:"rejectedCount"`

	InnovationPercentage   string `json:"innovationPercentage"`
	CostSavingPercentage   string `json:"costSavingPercentage"`
	ProductivityPercentage string `json:"productivityPercentage"`
	SubmittedPercentage    string `json:"submittedPercentage"`
	InprogressPercentage   string `json:"inprogressPercentage"`
	ApprovedPercentage     string `json:"approvedPercentage"`
	RejectedPercentage     string `json:"rejectedPercentage"`
}

func percentage(part, total int) string {
	return fmt.Sprintf("%.2f", float64(part)/float64(total)*100)
}

// breakdownIdeas is the pure reducer behind both stats endpoints.
func breakdownIdeas(ideas []models.Idea) IdeaBreakdown {
	var b IdeaBreakdown
	for _, idea := range ideas {
		switch idea.Category {
		case models.CategoryInnovation:
			b.InnovationsCount++
		case models.CategoryCostSaving:
			b.CostSavingCount++
		case models.CategoryProductivity:
			b.ProductivityCount++
		}
		switch idea.Status {
		case models.StatusSubmitted:
			b.SubmittedCount++
		case models.StatusInProgress:
			b.InprogressCount++
		case models.StatusApproved:
			b.ApprovedCount++
		case models.StatusRejected:
			b.RejectedCount++
		}
	}

	b.TotalIdeaCount = len(ideas)
	if b.TotalIdeaCount == 0 {
		b.TotalIdeaCount = 1
	}

	b.InnovationPercentage = percentage(b.InnovationsCount, b.TotalIdeaCount)
	b.CostSavingPercentage = percentage(b.CostSavingCount, b.TotalIdeaCount)
	b.ProductivityPercentage = percentage(b.ProductivityCount, b.TotalIdeaCount)
	b.SubmittedPercentage = percentage(b.SubmittedCount, b.TotalIdeaCount)
	b.InprogressPercentage = percentage(b.InprogressCount, b.TotalIdeaCount)
	b.ApprovedPercentage = percentage(b.ApprovedCount, b.TotalIdeaCount)
	b.RejectedPercentage = percentage(b.RejectedCount, b.TotalIdeaCount)

	return b
}

func countRole(users []models.User, role string) int {
	n := 0
	for _, u := range users {
		if strings.EqualFold(u.Role, role) {
			n++
		}
	}
	return n
}

func sumRewardPoints(records []models.RewardRecord) int {
	total := 0
	for _, rec := range records {
		total += rec.Points
	}
	return total
}

// GlobalStats is the all-ideas aggregate with user role counts.
type GlobalStats struct {
	IdeaBreakdown

	TotalUser              int `json:"totalUser"`
	EmployeeCount          int `json:"employeeCount"`
	InnovationManagerCount int `json:"innovationManagerCount"`
	DecisionManagerCount   int `json:"decisionManagerCount"`
}

// GetAllIdeaCount aggregates the full idea and user collections.
func GetAllIdeaCount(w http.ResponseWriter, r *http.Request) {
	ideaCursor, err := ideaCollection.Find(r.Context(), bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching idea stats")
		return
	}
	defer ideaCursor.Close(r.Context())

	var ideas []models.Idea
	if err := ideaCursor.All(r.Context(), &ideas); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Decode error")
		return
	}

	userCursor, err := userCollection.Find(r.Context(), bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching user stats")
		return
	}
	defer userCursor.Close(r.Context())

	var users []models.User
	if err := userCursor.All(r.Context(), &users); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Decode error")
		return
	}

	stats := GlobalStats{
		IdeaBreakdown:          breakdownIdeas(ideas),
		TotalUser:              len(users),
		EmployeeCount:          countRole(users, models.RoleEmployee),
		InnovationManagerCount: countRole(users, models.RoleInnovationManager),
		DecisionManagerCount:   countRole(users, models.RoleDecisionMaker),
	}

	utils.RespondWithJSON(w, http.StatusOK, stats)
}

// EmployeeStats is the per-submitter aggregate with total reward points.
type EmployeeStats struct {
	IdeaBreakdown

	RewardPoints int `json:"rewardPoints"`
}

// GetEmployeeStats aggregates one submitter's ideas and reward grants.
func GetEmployeeStats(w http.ResponseWriter, r *http.Request) {
	employeeID, err := primitive.ObjectIDFromHex(mux.Vars(r)["employeeId"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid employee ID")
		return
	}

	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}})
	ideaCursor, err := ideaCollection.Find(r.Context(), bson.M{"submittedBy": employeeID}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching employee stats")
		return
	}
	defer ideaCursor.Close(r.Context())

	var ideas []models.Idea
	if err := ideaCursor.All(r.Context(), &ideas); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Decode error")
		return
	}

	rewardCursor, err := rewardCollection.Find(r.Context(), bson.M{"userId": employeeID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching reward stats")
		return
	}
	defer rewardCursor.Close(r.Context())

	var records []models.RewardRecord
	if err := rewardCursor.All(r.Context(), &records); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Decode error")
		return
	}

	stats := EmployeeStats{
		IdeaBreakdown: breakdownIdeas(ideas),
		RewardPoints:  sumRewardPoints(records),
	}

	utils.RespondWithJSON(w, http.StatusOK, stats)
}
