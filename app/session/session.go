// Package session keeps per-browser state in a signed cookie: the admin
// login flag, pending flash notifications and display preferences.
package session

import (
	"encoding/gob"
	"net/http"

	"github.com/gorilla/sessions"

	"portfolio/app/config"
)

const (
	keyAuthenticated = "authenticated"
	keyDarkMode      = "dark_mode"
	keySidebar       = "sidebar_collapsed"
)

// Flash kinds.
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// Flash is a one-shot notification shown on the next rendered page.
type Flash struct {
	Kind        string
	Title       string
	Description string
}

func init() {
	gob.Register(Flash{})
}

// Manager reads and writes the session cookie.
type Manager struct {
	store sessions.Store
	name  string
}

func NewManager(cfg config.SessionConfig) *Manager {
	store := sessions.NewCookieStore([]byte(cfg.Key))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   cfg.MaxAge,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	store.MaxAge(cfg.MaxAge)
	return &Manager{store: store, name: cfg.Name}
}

// get never fails: a cookie that does not decode (tampered, or signed
// with an old key) yields a fresh session.
func (m *Manager) get(r *http.Request) *sessions.Session {
	s, _ := m.store.Get(r, m.name)
	return s
}

func (m *Manager) IsAuthenticated(r *http.Request) bool {
	v, _ := m.get(r).Values[keyAuthenticated].(bool)
	return v
}

// SetAuthenticated records a login, or clears it when authenticated is
// false.
func (m *Manager) SetAuthenticated(w http.ResponseWriter, r *http.Request, authenticated bool) error {
	s := m.get(r)
	if authenticated {
		s.Values[keyAuthenticated] = true
	} else {
		delete(s.Values, keyAuthenticated)
	}
	return s.Save(r, w)
}

func (m *Manager) AddFlash(w http.ResponseWriter, r *http.Request, f Flash) error {
	s := m.get(r)
	s.AddFlash(f)
	return s.Save(r, w)
}

// Flashes consumes the pending notifications.
func (m *Manager) Flashes(w http.ResponseWriter, r *http.Request) []Flash {
	s := m.get(r)
	raw := s.Flashes()
	if len(raw) == 0 {
		return nil
	}
	flashes := make([]Flash, 0, len(raw))
	for _, v := range raw {
		if f, ok := v.(Flash); ok {
			flashes = append(flashes, f)
		}
	}
	_ = s.Save(r, w)
	return flashes
}

// DarkMode returns the visitor's theme choice and whether one was made.
func (m *Manager) DarkMode(r *http.Request) (dark bool, set bool) {
	dark, set = m.get(r).Values[keyDarkMode].(bool)
	return dark, set
}

func (m *Manager) SetDarkMode(w http.ResponseWriter, r *http.Request, dark bool) error {
	s := m.get(r)
	s.Values[keyDarkMode] = dark
	return s.Save(r, w)
}

func (m *Manager) SidebarCollapsed(r *http.Request) bool {
	v, _ := m.get(r).Values[keySidebar].(bool)
	return v
}

// ToggleSidebar flips the admin sidebar state and returns the new value.
func (m *Manager) ToggleSidebar(w http.ResponseWriter, r *http.Request) (bool, error) {
	s := m.get(r)
	collapsed, _ := s.Values[keySidebar].(bool)
	s.Values[keySidebar] = !collapsed
	return !collapsed, s.Save(r, w)
}
