package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ideabank/config"
)

func TestWSTicketRoundTrip(t *testing.T) {
	config.WSTicketSecret = []byte("test-secret")
	config.WSTicketTTL = 30 * time.Second

	ticket, err := GenerateWSTicket("651234567890abcdef123456", "Ada Lovelace", "Employee")
	require.NoError(t, err)
	require.NotEmpty(t, ticket)

	claims, err := ValidateWSTicket(ticket)
	require.NoError(t, err)
	assert.Equal(t, "651234567890abcdef123456", claims.UserID)
	assert.Equal(t, "Ada Lovelace", claims.Name)
	assert.Equal(t, "Employee", claims.Role)
}

func TestWSTicket_Expired(t *testing.T) {
	config.WSTicketSecret = []byte("test-secret")
	config.WSTicketTTL = -1 * time.Minute

	ticket, err := GenerateWSTicket("651234567890abcdef123456", "Ada Lovelace", "Employee")
	require.NoError(t, err)

	_, err = ValidateWSTicket(ticket)
	assert.Error(t, err)
}

func TestWSTicket_TamperedSecret(t *testing.T) {
	config.WSTicketSecret = []byte("test-secret")
	config.WSTicketTTL = 30 * time.Second

	ticket, err := GenerateWSTicket("651234567890abcdef123456", "Ada Lovelace", "Employee")
	require.NoError(t, err)

	config.WSTicketSecret = []byte("other-secret")
	_, err = ValidateWSTicket(ticket)
	assert.Error(t, err)
}
