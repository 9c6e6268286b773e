package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/app/config"
)

func newTestManager() *Manager {
	return NewManager(config.SessionConfig{
		Name:   "test_session",
		Key:    "0123456789abcdef0123456789abcdef",
		MaxAge: 3600,
	})
}

// roundTrip runs fn against a request carrying cookies and returns the
// cookies set by the response.
func roundTrip(t *testing.T, cookies []*http.Cookie, fn func(w http.ResponseWriter, r *http.Request)) []*http.Cookie {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}
	w := httptest.NewRecorder()
	fn(w, r)
	if set := w.Result().Cookies(); len(set) > 0 {
		return set[len(set)-1:]
	}
	return cookies
}

func TestAuthenticated(t *testing.T) {
	m := newTestManager()

	cookies := roundTrip(t, nil, func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, m.IsAuthenticated(r))
		require.NoError(t, m.SetAuthenticated(w, r, true))
	})
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].HttpOnly)

	cookies = roundTrip(t, cookies, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, m.IsAuthenticated(r))
		require.NoError(t, m.SetAuthenticated(w, r, false))
	})

	roundTrip(t, cookies, func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, m.IsAuthenticated(r))
	})
}

func TestTamperedCookieIsIgnored(t *testing.T) {
	m := newTestManager()
	other := NewManager(config.SessionConfig{
		Name: "test_session",
		Key:  "ffffffffffffffffffffffffffffffff",
	})

	cookies := roundTrip(t, nil, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, other.SetAuthenticated(w, r, true))
	})
	roundTrip(t, cookies, func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, m.IsAuthenticated(r))
	})
}

func TestFlashes(t *testing.T) {
	m := newTestManager()

	cookies := roundTrip(t, nil, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, m.AddFlash(w, r, Flash{Kind: FlashSuccess, Title: "Saved"}))
		require.NoError(t, m.AddFlash(w, r, Flash{Kind: FlashError, Title: "Oops", Description: "Details"}))
	})

	cookies = roundTrip(t, cookies, func(w http.ResponseWriter, r *http.Request) {
		flashes := m.Flashes(w, r)
		require.Len(t, flashes, 2)
		assert.Equal(t, "Saved", flashes[0].Title)
		assert.Equal(t, FlashError, flashes[1].Kind)
	})

	roundTrip(t, cookies, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, m.Flashes(w, r), "flashes are shown once")
	})
}

func TestPreferences(t *testing.T) {
	m := newTestManager()

	cookies := roundTrip(t, nil, func(w http.ResponseWriter, r *http.Request) {
		_, set := m.DarkMode(r)
		assert.False(t, set)
		require.NoError(t, m.SetDarkMode(w, r, false))

		collapsed, err := m.ToggleSidebar(w, r)
		require.NoError(t, err)
		assert.True(t, collapsed)
	})

	roundTrip(t, cookies, func(w http.ResponseWriter, r *http.Request) {
		dark, set := m.DarkMode(r)
		assert.True(t, set)
		assert.False(t, dark)
		assert.True(t, m.SidebarCollapsed(r))
	})
}
