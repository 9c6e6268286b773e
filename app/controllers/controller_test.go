package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"portfolio/app/config"
	"portfolio/app/models"
	"portfolio/app/repositories"
	"portfolio/app/repositories/mock"
	"portfolio/app/services"
	"portfolio/app/session"
)

type stubSender struct {
	err  error
	sent int
}

func (s *stubSender) Send(context.Context, string, map[string]string) error {
	if s.err != nil {
		return s.err
	}
	s.sent++
	return nil
}

type testControllers struct {
	router   *mux.Router
	projects *mock.ProjectRepository
	messages *mock.MessageRepository
	sender   *stubSender
	logs     *observer.ObservedLogs
}

func setupTestControllers(t *testing.T) *testControllers {
	t.Helper()
	core, logs := observer.New(zapcore.WarnLevel)
	logger := zap.New(core)

	projectRepo := mock.NewProjectRepository()
	blogRepo := mock.NewBlogRepository()
	messageRepo := mock.NewMessageRepository()
	sender := &stubSender{}

	projects := services.NewProjectService(projectRepo)
	blog := services.NewBlogService(blogRepo)
	messages := services.NewMessageService(messageRepo, sender, services.Templates{Contact: "contact"}, "Owner", logger)
	settings := services.NewSettingsService(mock.NewSettingsRepository(), nil, models.Settings{
		Name:  "Owner",
		Email: "owner@example.com",
	}, "password123")
	dashboard := services.NewDashboardService(projects, blog, messages, mock.NewViewRepository())

	sessions := session.NewManager(config.SessionConfig{
		Name:   "test_session",
		Key:    strings.Repeat("k", 32),
		MaxAge: 3600,
	})
	base, err := NewBase(sessions, settings, config.Default().Site, logger)
	require.NoError(t, err)

	public := NewPublicController(base, projects, blog, messages)
	api := NewAPIController(base, projects, blog, messages, dashboard)

	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(base.NotFound)
	router.HandleFunc("/projects", public.Projects).Methods("GET")
	router.HandleFunc("/projects/{id:[0-9]+}", public.Project).Methods("GET")
	router.HandleFunc("/contact", public.Contact).Methods("POST")
	router.HandleFunc("/api/projects", api.Projects).Methods("GET")
	router.HandleFunc("/api/projects/{id:[0-9]+}", api.Project).Methods("GET")
	router.HandleFunc("/api/contact", api.Contact).Methods("POST")
	router.HandleFunc("/api/admin/projects", api.CreateProject).Methods("POST")
	router.HandleFunc("/api/admin/projects/{id:[0-9]+}", api.DeleteProject).Methods("DELETE")

	for _, p := range []*models.Project{
		{Title: "Web One", Description: "d", Category: "web", Status: models.StatusPublished},
		{Title: "AI One", Description: "d", Category: "ai", Status: models.StatusPublished},
		{Title: "Hidden", Description: "d", Category: "web", Status: models.StatusDraft},
	} {
		require.NoError(t, projects.CreateProject(p))
	}

	return &testControllers{
		router:   router,
		projects: projectRepo,
		messages: messageRepo,
		sender:   sender,
		logs:     logs,
	}
}

func (tc *testControllers) serve(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	tc.router.ServeHTTP(w, req)
	return w
}

func TestPublicController(t *testing.T) {
	tc := setupTestControllers(t)

	t.Run("category filter", func(t *testing.T) {
		w := tc.serve(httptest.NewRequest(http.MethodGet, "/projects?category=web", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Web One")
		assert.NotContains(t, w.Body.String(), "AI One")
		assert.NotContains(t, w.Body.String(), "Hidden")
	})

	t.Run("draft project is not found", func(t *testing.T) {
		w := tc.serve(httptest.NewRequest(http.MethodGet, "/projects/3", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Project Not Found")
	})

	t.Run("contact delivery failure is logged", func(t *testing.T) {
		tc.sender.err = errors.New("unreachable")
		defer func() { tc.sender.err = nil }()

		form := url.Values{"name": {"Ada"}, "email": {"ada@example.com"}, "message": {"Hello"}}
		req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := tc.serve(req)

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Equal(t, 1, tc.logs.FilterMessage("Contact form delivery failed").Len())
		messages, err := tc.messages.List()
		require.NoError(t, err)
		assert.Empty(t, messages)
	})
}

func TestAPIController(t *testing.T) {
	tc := setupTestControllers(t)

	t.Run("list projects by category", func(t *testing.T) {
		w := tc.serve(httptest.NewRequest(http.MethodGet, "/api/projects?category=ai", nil))
		require.Equal(t, http.StatusOK, w.Code)

		var res struct {
			Projects []models.Project `json:"projects"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		require.Len(t, res.Projects, 1)
		assert.Equal(t, "AI One", res.Projects[0].Title)
	})

	t.Run("create project validation", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/admin/projects", strings.NewReader(`{"title":"x"}`))
		w := tc.serve(req)
		require.Equal(t, http.StatusBadRequest, w.Code)

		var res struct {
			Error  string            `json:"error"`
			Fields map[string]string `json:"fields"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Contains(t, res.Error, "invalid project")
		assert.Contains(t, res.Fields, "Title")
	})

	t.Run("delete removes exactly that id", func(t *testing.T) {
		w := tc.serve(httptest.NewRequest(http.MethodDelete, "/api/admin/projects/1", nil))
		require.Equal(t, http.StatusNoContent, w.Code)

		remaining, err := tc.projects.List()
		require.NoError(t, err)
		require.Len(t, remaining, 2)
		for _, p := range remaining {
			assert.NotEqual(t, 1, p.ID)
		}

		w = tc.serve(httptest.NewRequest(http.MethodDelete, "/api/admin/projects/1", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("contact stores after sending", func(t *testing.T) {
		body := `{"name":"Ada","email":"ada@example.com","subject":"Hi","message":"Hello"}`
		w := tc.serve(httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body)))
		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, tc.sender.sent)

		messages, err := tc.messages.List()
		require.NoError(t, err)
		assert.Len(t, messages, 1)
	})

	t.Run("unknown path", func(t *testing.T) {
		w := tc.serve(httptest.NewRequest(http.MethodGet, "/api/nope", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	})
}

func TestTemplateHelpers(t *testing.T) {
	assert.Equal(t, "<p>one<br>two</p><p>&lt;b&gt;</p>", string(paragraphs("one\r\ntwo\n\n\n<b>")))
	assert.Equal(t, "1, 2, 3", formatIDs([]int{1, 2, 3}))
	assert.Equal(t, "", formatIDs(nil))

	funcs := templateFuncs()
	assert.Equal(t, "Web Development", funcs["title"].(func(string) string)("web development"))
	assert.Equal(t, 50, funcs["percent"].(func(int, int) int)(5, 10))
	assert.Equal(t, 0, funcs["percent"].(func(int, int) int)(5, 0))

	day := time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "June 15, 2023", funcs["date"].(func(time.Time) string)(day))
	assert.Equal(t, "2023-06-15", funcs["isoDate"].(func(time.Time) string)(day))
	assert.Equal(t, "", funcs["isoDate"].(func(time.Time) string)(time.Time{}))
}

func TestParseForms(t *testing.T) {
	form := url.Values{
		"title":   {"  Hello  "},
		"content": {"Body"},
		"date":    {"2024-02-03"},
		"related": {"1, x, 3, -2"},
		"status":  {"draft"},
	}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	require.NoError(t, req.ParseForm())

	post := parsePostForm(req)
	assert.Equal(t, "Hello", post.Title)
	assert.Equal(t, []int{1, 3}, post.RelatedIDs)
	assert.Equal(t, "2024-02-03", post.Date.Format("2006-01-02"))

	project := parseProjectForm(req)
	assert.False(t, project.Featured)
	assert.Equal(t, "draft", project.Status)
}

func TestWantsJSON(t *testing.T) {
	tests := []struct {
		path   string
		accept string
		want   bool
	}{
		{"/api/projects", "", true},
		{"/api", "", true},
		{"/apix", "", false},
		{"/projects", "application/json", true},
		{"/projects", "text/html", false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s %s", tt.path, tt.accept), func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			req.Header.Set("Accept", tt.accept)
			assert.Equal(t, tt.want, wantsJSON(req))
		})
	}
}

// slugTakenRepo loses every slug race.
type slugTakenRepo struct {
	*mock.BlogRepository
}

func (slugTakenRepo) Create(*models.BlogPost) error { return repositories.ErrSlugTaken }

func TestAdminControllerSlugConflict(t *testing.T) {
	logger := zap.NewNop()
	projects := services.NewProjectService(mock.NewProjectRepository())
	blog := services.NewBlogService(slugTakenRepo{mock.NewBlogRepository()})
	messages := services.NewMessageService(mock.NewMessageRepository(), &stubSender{}, services.Templates{Contact: "contact"}, "Owner", logger)
	settings := services.NewSettingsService(mock.NewSettingsRepository(), nil, models.Settings{
		Name:  "Owner",
		Email: "owner@example.com",
	}, "password123")
	dashboard := services.NewDashboardService(projects, blog, messages, mock.NewViewRepository())

	sessions := session.NewManager(config.SessionConfig{Name: "test_session", Key: strings.Repeat("k", 32), MaxAge: 3600})
	base, err := NewBase(sessions, settings, config.Default().Site, logger)
	require.NoError(t, err)
	admin := NewAdminController(base, services.NewAuthService("owner", settings), projects, blog, messages, dashboard)

	form := url.Values{"title": {"Racing"}, "content": {"Body"}, "status": {"draft"}}
	req := httptest.NewRequest(http.MethodPost, "/admin/blog", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	admin.CreatePost(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Slug already in use")
	assert.Contains(t, w.Body.String(), "Racing")
}
