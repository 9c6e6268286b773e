package controllers

import (
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"portfolio/app/models"
	"portfolio/app/services"
)

// APIController exposes the site data as JSON.
type APIController struct {
	*Base
	projects  *services.ProjectService
	blog      *services.BlogService
	messages  *services.MessageService
	dashboard *services.DashboardService
}

func NewAPIController(base *Base, projects *services.ProjectService, blog *services.BlogService, messages *services.MessageService, dashboard *services.DashboardService) *APIController {
	return &APIController{
		Base:      base,
		projects:  projects,
		blog:      blog,
		messages:  messages,
		dashboard: dashboard,
	}
}

func (c *APIController) Health(w http.ResponseWriter, r *http.Request) {
	c.sendJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Projects lists published projects, filtered by ?category=.
func (c *APIController) Projects(w http.ResponseWriter, r *http.Request) {
	category := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("category")))
	if category == "" {
		category = services.CategoryAll
	}
	projects, err := c.projects.ListPublished(category)
	if err != nil {
		c.sendServiceError(w, r, err)
		return
	}
	c.sendJSON(w, http.StatusOK, map[string]any{
		"projects": projects,
		"category": category,
	})
}

func (c *APIController) Project(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		c.sendError(w, r, "Invalid project ID", http.StatusBadRequest)
		return
	}
	project, err := c.projects.GetPublishedProject(id)
	if err != nil {
		c.sendServiceError(w, r, err)
		return
	}
	c.sendJSON(w, http.StatusOK, project)
}

// Posts searches published posts with ?q= and ?tag=.
func (c *APIController) Posts(w http.ResponseWriter, r *http.Request) {
	posts, err := c.blog.Search(r.URL.Query().Get("q"), r.URL.Query().Get("tag"))
	if err != nil {
		c.sendServiceError(w, r, err)
		return
	}
	c.sendJSON(w, http.StatusOK, map[string]any{
		"posts": posts,
		"count": len(posts),
	})
}

func (c *APIController) Post(w http.ResponseWriter, r *http.Request) {
	post, err := c.blog.GetPublishedPost(mux.Vars(r)["slug"])
	if err != nil {
		c.sendServiceError(w, r, err)
		return
	}
	html, err := c.blog.Render(post)
	if err != nil {
		c.sendServiceError(w, r, err)
		return
	}
	related, err := c.blog.Related(post)
	if err != nil {
		c.sendServiceError(w, r, err)
		return
	}
	c.sendJSON(w, http.StatusOK, struct {
		*models.BlogPost
		HTML     template.HTML      `json:"html"`
		ReadTime string             `json:"readTime"`
		Related  []*models.BlogPost `json:"related"`
	}{post, html, post.ReadTime(), related})
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Contact accepts {name, email, subject, message}.
func (c *APIController) Contact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if !c.decodeJSON(w, r, &req) {
		return
	}
	msg := models.Message{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Body:    req.Message,
	}
	if err := c.messages.Submit(r.Context(), &msg); err != nil {
		c.sendServiceError(w, r, err)
		return
	}
	c.sendJSON(w, http.StatusCreated, map[string]any{
		"status": "sent",
		"id":     msg.ID,
	})
}

// Admin endpoints

func (c *APIController) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := c.dashboard.Stats(time.Now())
	if err != nil {
		c.sendServiceError(w, r, err)
		return
	}
	c.sendJSON(w, http.StatusOK, stats)
}

// AllProjects includes drafts.
func (c *APIController) AllProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := c.projects.ListProjects()
	if err != nil {
		c.sendServiceError(w, r, err)
		return
	}
	c.sendJSON(w, http.StatusOK, map[string]any{"projects": projects})
}

func (c *APIController) CreateProject(w http.ResponseWriter, r *http.Request) {
	var project models.Project
	if !c.decodeJSON(w, r, &project) {
		return
	}
	project.ID = 0
	if err := c.projects.CreateProject(&project); err != nil {
		c.sendServiceError(w, r, err)
		return
	}
	c.sendJSON(w, http.StatusCreated, project)
}

func (c *APIController) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		c.sendError(w, r, "Invalid project ID", http.StatusBadRequest)
		return
	}
	var project models.Project
	if !c.decodeJSON(w, r, &project) {
		return
	}
	project.ID = id
	if err := c.projects.UpdateProject(&project); err != nil {
		c.sendServiceError(w, r, err)
		return
	}
	c.sendJSON(w, http.StatusOK, project)
}

func (c *APIController) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		c.sendError(w, r, "Invalid project ID", http.StatusBadRequest)
		return
	}
	if err := c.projects.DeleteProject(id); err != nil {
		c.sendServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AllPosts includes drafts.
func (c *APIController) AllPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := c.blog.ListPosts()
	if err != nil {
		c.sendServiceError(w, r, err)
		return
	}
	c.sendJSON(w, http.StatusOK, map[string]any{"posts": posts})
}

func (c *APIController) CreatePost(w http.ResponseWriter, r *http.Request) {
	var post models.BlogPost
	if !c.decodeJSON(w, r, &post) {
		return
	}
	post.ID = 0
	if err := c.blog.CreatePost(&post); err != nil {
		c.sendServiceError(w, r, err)
		return
	}
	c.sendJSON(w, http.StatusCreated, post)
}

func (c *APIController) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		c.sendError(w, r, "Invalid post ID", http.StatusBadRequest)
		return
	}
	var post models.BlogPost
	if !c.decodeJSON(w, r, &post) {
		return
	}
	post.ID = id
	if err := c.blog.UpdatePost(&post); err != nil {
		c.sendServiceError(w, r, err)
		return
	}
	c.sendJSON(w, http.StatusOK, post)
}

func (c *APIController) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		c.sendError(w, r, "Invalid post ID", http.StatusBadRequest)
		return
	}
	if err := c.blog.DeletePost(id); err != nil {
		c.sendServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *APIController) Messages(w http.ResponseWriter, r *http.Request) {
	messages, err := c.messages.ListMessages()
	if err != nil {
		c.sendServiceError(w, r, err)
		return
	}
	c.sendJSON(w, http.StatusOK, map[string]any{"messages": messages})
}

// Message returns one message and marks it read.
func (c *APIController) Message(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		c.sendError(w, r, "Invalid message ID", http.StatusBadRequest)
		return
	}
	msg, err := c.messages.MarkRead(id)
	if err != nil {
		c.sendServiceError(w, r, err)
		return
	}
	c.sendJSON(w, http.StatusOK, msg)
}

func (c *APIController) ReplyMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		c.sendError(w, r, "Invalid message ID", http.StatusBadRequest)
		return
	}
	var body struct {
		Reply string `json:"reply"`
	}
	if !c.decodeJSON(w, r, &body) {
		return
	}
	if err := c.messages.Reply(r.Context(), id, body.Reply); err != nil {
		c.sendServiceError(w, r, err)
		return
	}
	c.sendJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

func (c *APIController) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		c.sendError(w, r, "Invalid message ID", http.StatusBadRequest)
		return
	}
	if err := c.messages.DeleteMessage(id); err != nil {
		c.sendServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
