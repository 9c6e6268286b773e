package routes

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"portfolio/app/config"
	"portfolio/app/repositories"
)

type fakeSender struct {
	mutex sync.Mutex
	sent  []map[string]string
	err   error
}

func (f *fakeSender) Send(_ context.Context, _ string, params map[string]string) error {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, params)
	return nil
}

func (f *fakeSender) count() int {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return len(f.sent)
}

type testApp struct {
	handler http.Handler
	store   *repositories.Store
	sender  *fakeSender
	cfg     *config.Config
}

func setupTestApp(t *testing.T) *testApp {
	t.Helper()
	store, err := repositories.Open("", nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	_, err = store.Seed()
	require.NoError(t, err)

	cfg := config.Default()
	sender := &fakeSender{}
	handler, err := SetupRoutes(cfg, store, sender, zaptest.NewLogger(t))
	require.NoError(t, err)
	return &testApp{handler: handler, store: store, sender: sender, cfg: cfg}
}

// client replays cookies between requests the way a browser would.
type client struct {
	t       *testing.T
	app     *testApp
	cookies map[string]*http.Cookie
}

func (a *testApp) client(t *testing.T) *client {
	return &client{t: t, app: a, cookies: make(map[string]*http.Cookie)}
}

func (c *client) do(req *http.Request) *httptest.ResponseRecorder {
	for _, cookie := range c.cookies {
		req.AddCookie(cookie)
	}
	rw := httptest.NewRecorder()
	c.app.handler.ServeHTTP(rw, req)
	for _, cookie := range rw.Result().Cookies() {
		if cookie.MaxAge < 0 {
			delete(c.cookies, cookie.Name)
			continue
		}
		c.cookies[cookie.Name] = cookie
	}
	return rw
}

func (c *client) get(path string) *httptest.ResponseRecorder {
	return c.do(httptest.NewRequest("GET", path, nil))
}

func (c *client) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

func (c *client) postFile(path, field string, data []byte) *httptest.ResponseRecorder {
	c.t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile(field, "backup.bak")
	require.NoError(c.t, err)
	_, err = fw.Write(data)
	require.NoError(c.t, err)
	require.NoError(c.t, mw.Close())

	req := httptest.NewRequest("POST", path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.do(req)
}

func (c *client) sendJSON(method, path, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return c.do(req)
}

func (c *client) login() {
	c.t.Helper()
	rw := c.postForm("/admin/login", url.Values{
		"username": {c.app.cfg.Admin.Username},
		"password": {c.app.cfg.Admin.Password},
	})
	require.Equal(c.t, http.StatusSeeOther, rw.Code)
	require.Equal(c.t, "/admin/dashboard", rw.Header().Get("Location"))
}
