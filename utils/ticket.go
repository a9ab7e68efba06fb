// utils/ticket.go
package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"ideabank/config"
)

// TicketClaims authorize a single short-lived WebSocket connection for a
// session-authenticated user. Tickets are fetched over the session-authed
// API and passed as a query parameter on the upgrade request, where the
// session cookie may not be available to the client library.
type TicketClaims struct {
	UserID string `json:"userID"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func GenerateWSTicket(userID, name, role string) (string, error) {
	claims := TicketClaims{
		UserID: userID,
		Name:   name,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(config.WSTicketTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(config.WSTicketSecret)
}

func ValidateWSTicket(tokenString string) (*TicketClaims, error) {
	claims := &TicketClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return config.WSTicketSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid ticket")
	}
	return claims, nil
}
