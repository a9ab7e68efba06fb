// middleware/auth.go
package middleware

import (
	"context"
	"log"
	"net/http"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"ideabank/database"
	"ideabank/models"
	"ideabank/session"
	"ideabank/utils"
)

// AuthMiddleware resolves the session's opaque user reference back to the
// full user record and injects the identity into the request context.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		idHex, ok := session.UserID(r)
		if !ok {
			utils.RespondWithError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		userID, err := primitive.ObjectIDFromHex(idHex)
		if err != nil {
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid session")
			return
		}

		var user models.User
		err = database.DB().Collection("users").
			FindOne(r.Context(), bson.M{"_id": userID}).Decode(&user)
		if err != nil {
			log.Printf("AuthMiddleware: session user %s not found: %v", idHex, err)
			utils.RespondWithError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		if user.Status == models.UserDisabled {
			utils.RespondWithError(w, http.StatusForbidden, "Your account is disabled. Please contact support.")
			return
		}

		ctx := context.WithValue(r.Context(), "userID", user.ID.Hex())
		ctx = context.WithValue(ctx, "userName", user.FirstName+" "+user.LastName)
		ctx = context.WithValue(ctx, "userRole", user.Role)
		ctx = context.WithValue(ctx, "userEmail", user.Email)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionUser loads the full user for the current session, for handlers
// that need more than the context identity.
func SessionUser(r *http.Request) (*models.User, error) {
	idHex, _ := r.Context().Value("userID").(string)
	userID, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, err
	}
	var user models.User
	err = database.DB().Collection("users").
		FindOne(r.Context(), bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
