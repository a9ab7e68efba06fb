// handlers/auth_handler.go
package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"ideabank/config"
	"ideabank/mailer"
	"ideabank/middleware"
	"ideabank/models"
	"ideabank/session"
	"ideabank/utils"
)

// Login authenticates by email and password and establishes a session.
// Unknown email and wrong password produce the same generic failure; a
// disabled account is reported distinctly.
func Login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := utils.ParseJSON(r, &creds); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	creds.Email = strings.TrimSpace(creds.Email)
	if creds.Email == "" || creds.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	var user models.User
	err := userCollection.FindOne(r.Context(), bson.M{"email": creds.Email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			// Equalize timing with the found-user path
			_ = utils.CheckPasswordHash("dummy_password", "$2a$12$dummyhashdummyhashdummyhashdummyhashdummyhashdummyha")
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid email or password")
			return
		}
		log.Printf("Login: database error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Authentication service unavailable")
		return
	}

	if !utils.CheckPasswordHash(creds.Password, user.PasswordHash) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid email or password")
		return
	}

	if user.Status != models.UserActive {
		utils.RespondWithError(w, http.StatusForbidden, "Your account is disabled. Please contact support.")
		return
	}

	if err := session.SetUserID(w, r, user.ID.Hex()); err != nil {
		log.Printf("Login: session save failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to establish session")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"user":    user,
	})
}

// Logout destroys the session.
func Logout(w http.ResponseWriter, r *http.Request) {
	if err := session.Destroy(w, r); err != nil {
		log.Printf("Logout: session destroy failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to log out")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

// GetProfile returns the current session's user.
func GetProfile(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.SessionUser(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

// ChangePassword updates the current user's password after verifying the
// old one.
func ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	if len(req.NewPassword) < 8 {
		utils.RespondWithError(w, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}

	user, err := middleware.SessionUser(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	if !utils.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
		utils.RespondWithError(w, http.StatusBadRequest, "Current password is incorrect")
		return
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Password processing failed")
		return
	}

	_, err = userCollection.UpdateOne(
		r.Context(),
		bson.M{"_id": user.ID},
		bson.M{"$set": bson.M{"passwordHash": hash, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to change password")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Password changed successfully"})
}

// ForgotPassword issues a reset token and mails it. The response is the
// same whether or not the email exists.
func ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		utils.RespondWithError(w, http.StatusBadRequest, "Valid email required")
		return
	}

	genericResponse := map[string]string{
		"message": "If the email exists in our system, a password reset link has been sent.",
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var user models.User
	err := userCollection.FindOne(ctx, bson.M{"email": req.Email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithJSON(w, http.StatusOK, genericResponse)
			return
		}
		log.Printf("ForgotPassword: find user error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to process request")
		return
	}

	resetToken := utils.GenerateRandomToken(32)
	expireAt := time.Now().UTC().Add(1 * time.Hour)

	_, err = userCollection.UpdateOne(
		ctx,
		bson.M{"_id": user.ID},
		bson.M{"$set": bson.M{"resetToken": resetToken, "resetExpire": expireAt}},
	)
	if err != nil {
		log.Printf("ForgotPassword: token save failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to process request")
		return
	}

	resetLink := fmt.Sprintf("%s/reset-password?token=%s", config.PublicURL, resetToken)
	go func(email, link string) {
		body := fmt.Sprintf(
			"<p>A password reset was requested for your account.</p>"+
				"<p><a href=%q>Reset your password</a> (link expires in 1 hour).</p>", link)
		if err := mailer.Send([]string{email}, "Password reset", body); err != nil {
			log.Printf("ForgotPassword: mail send failed: %v", err)
		}
	}(user.Email, resetLink)

	utils.RespondWithJSON(w, http.StatusOK, genericResponse)
}

// ResetPassword consumes a reset token and sets a new password.
func ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	if req.Token == "" || req.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Token and password required")
		return
	}
	if len(req.Password) < 8 {
		utils.RespondWithError(w, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var user models.User
	err := userCollection.FindOne(ctx, bson.M{
		"resetToken":  req.Token,
		"resetExpire": bson.M{"$gt": time.Now().UTC()},
	}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid or expired reset token")
			return
		}
		log.Printf("ResetPassword: find user by token error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to process request")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Password processing failed")
		return
	}

	_, err = userCollection.UpdateOne(
		ctx,
		bson.M{"_id": user.ID},
		bson.M{
			"$set":   bson.M{"passwordHash": hash, "updatedAt": time.Now().UTC()},
			"$unset": bson.M{"resetToken": "", "resetExpire": ""},
		},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to reset password")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Password reset successfully"})
}

// GetWSTicket issues a short-lived ticket a session-authenticated client
// uses to open the idea feed WebSocket.
func GetWSTicket(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value("userID").(string)
	userName, _ := r.Context().Value("userName").(string)
	userRole, _ := r.Context().Value("userRole").(string)

	ticket, err := utils.GenerateWSTicket(userID, userName, userRole)
	if err != nil {
		log.Printf("GetWSTicket: ticket generation failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to issue ticket")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"ticket": ticket})
}
