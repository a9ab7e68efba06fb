// session/session.go
package session

import (
	"net/http"

	"github.com/gorilla/sessions"

	"ideabank/config"
)

// The session store keeps authenticated identity server-side, keyed by the
// opaque session id in the cookie. Handlers only ever see the user id.
var store *sessions.FilesystemStore

func Init() {
	store = sessions.NewFilesystemStore(config.SessionDir, []byte(config.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// SetUserID records the authenticated user in the request's session.
func SetUserID(w http.ResponseWriter, r *http.Request, userID string) error {
	s, _ := store.Get(r, config.SessionName)
	s.Values["userID"] = userID
	return s.Save(r, w)
}

// UserID resolves the authenticated user id from the session, if any.
func UserID(r *http.Request) (string, bool) {
	s, err := store.Get(r, config.SessionName)
	if err != nil {
		return "", false
	}
	id, ok := s.Values["userID"].(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// Destroy removes the session, logging the user out.
func Destroy(w http.ResponseWriter, r *http.Request) error {
	s, _ := store.Get(r, config.SessionName)
	delete(s.Values, "userID")
	s.Options.MaxAge = -1
	return s.Save(r, w)
}
