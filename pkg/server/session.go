package server

import (
	"net/http"
	"sync"

	"github.com/google/uuid"
)

// SessionCookie identifies a browser so its submissions can be serialised.
const SessionCookie = "joinform_session"

// inflight tracks the sessions with a submission currently being sent.
type inflight struct {
	mu       sync.Mutex
	sessions map[string]struct{}
}

func (f *inflight) acquire(session string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sessions == nil {
		f.sessions = make(map[string]struct{})
	}
	if _, busy := f.sessions[session]; busy {
		return false
	}
	f.sessions[session] = struct{}{}
	return true
}

func (f *inflight) release(session string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, session)
}

// session returns the caller's session id, issuing a cookie when the request
// carries none.
func session(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		if _, err := uuid.Parse(cookie.Value); err == nil {
			return cookie.Value
		}
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
