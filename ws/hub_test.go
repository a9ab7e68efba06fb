package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ideabank/config"
	"ideabank/utils"
)

func TestHandleIdeaFeed_RequiresTicket(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(HandleIdeaFeed))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHandleIdeaFeed_RejectsBadTicket(t *testing.T) {
	config.WSTicketSecret = []byte("test-secret")

	srv := httptest.NewServer(http.HandlerFunc(HandleIdeaFeed))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "?ticket=not-a-ticket")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestFeedBroadcast(t *testing.T) {
	config.WSTicketSecret = []byte("test-secret")
	config.WSTicketTTL = time.Minute
	Start()

	srv := httptest.NewServer(http.HandlerFunc(HandleIdeaFeed))
	defer srv.Close()

	ticket, err := utils.GenerateWSTicket("651234567890abcdef123456", "Test User", "Employee")
	require.NoError(t, err)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "?ticket=" + ticket
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	// Welcome frame
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	var welcome map[string]interface{}
	require.NoError(t, json.Unmarshal(msg, &welcome))
	assert.Equal(t, "CONNECTED", welcome["type"])

	Broadcast(EventIdeaLiked, "abc123", "651234567890abcdef123456", map[string]interface{}{"likes": 3})

	_, msg, err = conn.ReadMessage()
	require.NoError(t, err)

	var ev Event
	require.NoError(t, json.Unmarshal(msg, &ev))
	assert.Equal(t, EventIdeaLiked, ev.Type)
	assert.Equal(t, "abc123", ev.IdeaID)
}
