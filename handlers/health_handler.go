// handlers/health_handler.go
package handlers

import (
	"context"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/mongo/readpref"

	"ideabank/database"
	"ideabank/utils"
)

func HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "ok"
	if err := database.Client.Ping(ctx, readpref.Primary()); err != nil {
		dbStatus = "unreachable"
	}

	code := http.StatusOK
	if dbStatus != "ok" {
		code = http.StatusServiceUnavailable
	}

	utils.RespondWithJSON(w, code, map[string]interface{}{
		"status":    dbStatus,
		"timestamp": time.Now().UTC(),
	})
}
