package routes

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/app/middleware"
	"portfolio/app/repositories"
)

type projectsResponse struct {
	Category string `json:"category"`
	Projects []struct {
		ID       int    `json:"id"`
		Title    string `json:"title"`
		Category string `json:"category"`
	} `json:"projects"`
}

func TestAPIRoutes(t *testing.T) {
	app := setupTestApp(t)
	c := app.client(t)

	t.Run("GET /api/health", func(t *testing.T) {
		rw := c.sendJSON("GET", "/api/health", "")
		require.Equal(t, http.StatusOK, rw.Code)
		assert.Equal(t, "application/json", rw.Header().Get("Content-Type"))
		assert.NotEmpty(t, rw.Header().Get(middleware.RequestIDHeader))
	})

	t.Run("GET /api/projects filters by category", func(t *testing.T) {
		rw := c.sendJSON("GET", "/api/projects?category=DATA", "")
		require.Equal(t, http.StatusOK, rw.Code)

		var res projectsResponse
		require.NoError(t, json.Unmarshal(rw.Body.Bytes(), &res))
		assert.Equal(t, "data", res.Category)
		require.Len(t, res.Projects, 1, "drafts are hidden")
		assert.Equal(t, "Data Visualization Dashboard", res.Projects[0].Title)
	})

	t.Run("GET /api/projects/{id} hides drafts", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, c.sendJSON("GET", "/api/projects/1", "").Code)
		rw := c.sendJSON("GET", "/api/projects/6", "")
		assert.Equal(t, http.StatusNotFound, rw.Code)
		assert.JSONEq(t, `{"error":"Not found"}`, rw.Body.String())
	})

	t.Run("GET /api/posts searches", func(t *testing.T) {
		rw := c.sendJSON("GET", "/api/posts?q=redux", "")
		require.Equal(t, http.StatusOK, rw.Code)

		var res struct {
			Count int `json:"count"`
		}
		require.NoError(t, json.Unmarshal(rw.Body.Bytes(), &res))
		assert.Equal(t, 1, res.Count)
	})

	t.Run("GET /api/posts/{slug} renders markdown", func(t *testing.T) {
		rw := c.sendJSON("GET", "/api/posts/getting-started-with-react-hooks", "")
		require.Equal(t, http.StatusOK, rw.Code)

		var res struct {
			Slug     string `json:"slug"`
			HTML     string `json:"html"`
			ReadTime string `json:"readTime"`
		}
		require.NoError(t, json.Unmarshal(rw.Body.Bytes(), &res))
		assert.Equal(t, "getting-started-with-react-hooks", res.Slug)
		assert.Contains(t, res.HTML, "<h")
		assert.Contains(t, res.ReadTime, "min read")
	})

	t.Run("POST /api/contact", func(t *testing.T) {
		rw := c.sendJSON("POST", "/api/contact", `{"name":"Ada","email":"ada@example.com","message":"Hello there"}`)
		require.Equal(t, http.StatusCreated, rw.Code)
		assert.Equal(t, 1, app.sender.count())

		rw = c.sendJSON("POST", "/api/contact", `{"name":"Ada","email":"nope","message":"Hello there"}`)
		require.Equal(t, http.StatusBadRequest, rw.Code)
		var res struct {
			Fields map[string]string `json:"fields"`
		}
		require.NoError(t, json.Unmarshal(rw.Body.Bytes(), &res))
		assert.Contains(t, res.Fields, "Email")

		rw = c.sendJSON("POST", "/api/contact", `{not json`)
		assert.Equal(t, http.StatusBadRequest, rw.Code)
	})

	t.Run("POST /api/contact ignores client date and read flag", func(t *testing.T) {
		body := `{"name":"Eve","email":"eve@example.com","message":"Hi","date":"2099-01-01T00:00:00Z","read":true}`
		rw := c.sendJSON("POST", "/api/contact", body)
		require.Equal(t, http.StatusCreated, rw.Code)
		var res struct {
			ID int `json:"id"`
		}
		require.NoError(t, json.Unmarshal(rw.Body.Bytes(), &res))

		msg, err := repositories.NewBadgerMessageRepository(app.store.DB()).GetByID(res.ID)
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now(), msg.Date, time.Minute)
		assert.False(t, msg.Read)
	})

	t.Run("unknown API route returns JSON 404", func(t *testing.T) {
		rw := c.sendJSON("GET", "/api/nothing", "")
		assert.Equal(t, http.StatusNotFound, rw.Code)
		assert.JSONEq(t, `{"error":"Page Not Found"}`, rw.Body.String())
	})
}

func TestAdminAPIRoutes(t *testing.T) {
	app := setupTestApp(t)

	t.Run("requires a session", func(t *testing.T) {
		rw := app.client(t).sendJSON("GET", "/api/admin/stats", "")
		assert.Equal(t, http.StatusUnauthorized, rw.Code)
		assert.JSONEq(t, `{"error":"authentication required"}`, rw.Body.String())
	})

	c := app.client(t)
	c.login()

	t.Run("GET /api/admin/stats", func(t *testing.T) {
		rw := c.sendJSON("GET", "/api/admin/stats", "")
		require.Equal(t, http.StatusOK, rw.Code)

		var stats struct {
			Projects          int   `json:"projects"`
			PublishedProjects int   `json:"publishedProjects"`
			Posts             int   `json:"posts"`
			Unread            int   `json:"unread"`
			Views             []any `json:"views"`
		}
		require.NoError(t, json.Unmarshal(rw.Body.Bytes(), &stats))
		assert.Equal(t, 6, stats.Projects)
		assert.Equal(t, 5, stats.PublishedProjects)
		assert.Equal(t, 5, stats.Posts)
		assert.Equal(t, 2, stats.Unread)
		assert.Len(t, stats.Views, 7)
	})

	t.Run("project CRUD", func(t *testing.T) {
		rw := c.sendJSON("POST", "/api/admin/projects", `{"title":"CLI Tool","description":"A tool.","category":"Tools","status":"draft"}`)
		require.Equal(t, http.StatusCreated, rw.Code)
		var created struct {
			ID       int    `json:"id"`
			Category string `json:"category"`
		}
		require.NoError(t, json.Unmarshal(rw.Body.Bytes(), &created))
		assert.Equal(t, "tools", created.Category)
		path := fmt.Sprintf("/api/admin/projects/%d", created.ID)
		assert.Equal(t, http.StatusNotFound, c.sendJSON("GET", fmt.Sprintf("/api/projects/%d", created.ID), "").Code)

		rw = c.sendJSON("PUT", path, `{"title":"CLI Tool","description":"A better tool.","category":"tools","status":"published"}`)
		require.Equal(t, http.StatusOK, rw.Code)
		assert.Equal(t, http.StatusOK, c.sendJSON("GET", fmt.Sprintf("/api/projects/%d", created.ID), "").Code)

		rw = c.sendJSON("DELETE", path, "")
		assert.Equal(t, http.StatusNoContent, rw.Code)
		rw = c.sendJSON("DELETE", path, "")
		assert.Equal(t, http.StatusNotFound, rw.Code)
	})

	t.Run("post slugs stay unique", func(t *testing.T) {
		body := `{"title":"Getting Started with React Hooks","content":"Again.","status":"published"}`
		rw := c.sendJSON("POST", "/api/admin/posts", body)
		require.Equal(t, http.StatusCreated, rw.Code)
		var created struct {
			Slug string `json:"slug"`
		}
		require.NoError(t, json.Unmarshal(rw.Body.Bytes(), &created))
		assert.Equal(t, "getting-started-with-react-hooks-2", created.Slug)
	})

	t.Run("messages", func(t *testing.T) {
		rw := c.sendJSON("GET", "/api/admin/messages/3", "")
		require.Equal(t, http.StatusOK, rw.Code)
		var msg struct {
			Read bool `json:"read"`
		}
		require.NoError(t, json.Unmarshal(rw.Body.Bytes(), &msg))
		assert.True(t, msg.Read)

		rw = c.sendJSON("POST", "/api/admin/messages/3/reply", `{"reply":""}`)
		assert.Equal(t, http.StatusBadRequest, rw.Code)
		rw = c.sendJSON("POST", "/api/admin/messages/3/reply", `{"reply":"Thanks"}`)
		assert.Equal(t, http.StatusOK, rw.Code)
		assert.Equal(t, 1, app.sender.count())

		assert.Equal(t, http.StatusNoContent, c.sendJSON("DELETE", "/api/admin/messages/3", "").Code)
		assert.Equal(t, http.StatusNotFound, c.sendJSON("GET", "/api/admin/messages/3", "").Code)
	})
}
