package controllers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"portfolio/app/models"
	"portfolio/app/repositories"
	"portfolio/app/services"
	"portfolio/app/session"
)

// maxBackupBytes caps uploaded backup files.
const maxBackupBytes = 64 << 20

// AdminController serves the admin panel pages.
type AdminController struct {
	*Base
	auth      *services.AuthService
	projects  *services.ProjectService
	blog      *services.BlogService
	messages  *services.MessageService
	dashboard *services.DashboardService
}

func NewAdminController(base *Base, auth *services.AuthService, projects *services.ProjectService, blog *services.BlogService, messages *services.MessageService, dashboard *services.DashboardService) *AdminController {
	return &AdminController{
		Base:      base,
		auth:      auth,
		projects:  projects,
		blog:      blog,
		messages:  messages,
		dashboard: dashboard,
	}
}

type loginPage struct {
	Username string
}

func (c *AdminController) LoginForm(w http.ResponseWriter, r *http.Request) {
	if c.sessions.IsAuthenticated(r) {
		c.redirect(w, r, "/admin/dashboard")
		return
	}
	c.render(w, r, http.StatusOK, "admin/login", "Admin Login", loginPage{})
}

// Login checks the credential pair. A mismatch re-renders the form with
// 401 and never redirects.
func (c *AdminController) Login(w http.ResponseWriter, r *http.Request) {
	if !c.parseForm(w, r) {
		return
	}
	username := r.PostFormValue("username")

	err := c.auth.Login(username, r.PostFormValue("password"))
	if errors.Is(err, services.ErrInvalidCredentials) {
		c.logger.Info("Admin login failed", zap.String("username", username))
		c.render(w, r, http.StatusUnauthorized, "admin/login", "Admin Login", loginPage{Username: username},
			session.Flash{Kind: session.FlashError, Title: "Login failed", Description: "Invalid username or password."})
		return
	}
	if err != nil {
		c.serverError(w, r, err)
		return
	}

	if err := c.sessions.SetAuthenticated(w, r, true); err != nil {
		c.serverError(w, r, err)
		return
	}
	c.logger.Info("Admin logged in")
	c.flash(w, r, session.FlashSuccess, "Login successful", "Welcome back to the admin panel.")
	c.redirect(w, r, "/admin/dashboard")
}

func (c *AdminController) Logout(w http.ResponseWriter, r *http.Request) {
	if err := c.sessions.SetAuthenticated(w, r, false); err != nil {
		c.serverError(w, r, err)
		return
	}
	c.flash(w, r, session.FlashSuccess, "Logged out", "You have been logged out successfully.")
	c.redirect(w, r, "/admin/login")
}

func (c *AdminController) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := c.dashboard.Stats(time.Now())
	if err != nil {
		c.serverError(w, r, err)
		return
	}
	c.render(w, r, http.StatusOK, "admin/dashboard", "Dashboard", struct {
		Stats *services.Stats
	}{stats})
}

// ToggleSidebar collapses or expands the admin sidebar.
func (c *AdminController) ToggleSidebar(w http.ResponseWriter, r *http.Request) {
	if _, err := c.sessions.ToggleSidebar(w, r); err != nil {
		c.serverError(w, r, err)
		return
	}
	c.redirectBack(w, r, "/admin/dashboard")
}

// Projects

func (c *AdminController) Projects(w http.ResponseWriter, r *http.Request) {
	projects, err := c.projects.ListProjects()
	if err != nil {
		c.serverError(w, r, err)
		return
	}
	c.render(w, r, http.StatusOK, "admin/projects", "Projects", struct {
		Projects []*models.Project
	}{projects})
}

func (c *AdminController) renderProjectForm(w http.ResponseWriter, r *http.Request, status int, project *models.Project, extra ...session.Flash) {
	title := "New Project"
	if project.ID != 0 {
		title = "Edit Project"
	}
	c.render(w, r, status, "admin/project_form", title, struct {
		Project *models.Project
	}{project}, extra...)
}

func (c *AdminController) NewProject(w http.ResponseWriter, r *http.Request) {
	c.renderProjectForm(w, r, http.StatusOK, &models.Project{Status: models.StatusDraft})
}

func (c *AdminController) CreateProject(w http.ResponseWriter, r *http.Request) {
	if !c.parseForm(w, r) {
		return
	}
	project := parseProjectForm(r)
	if err := c.projects.CreateProject(project); err != nil {
		c.formError(w, r, err, func(flash session.Flash) {
			project.ID = 0
			c.renderProjectForm(w, r, http.StatusBadRequest, project, flash)
		})
		return
	}
	c.flash(w, r, session.FlashSuccess, "Project created", fmt.Sprintf("%q has been created.", project.Title))
	c.redirect(w, r, "/admin/projects")
}

func (c *AdminController) EditProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		c.notFound(w, r, adminProjectNotFound)
		return
	}
	project, err := c.projects.GetProject(id)
	if errors.Is(err, repositories.ErrNotFound) {
		c.notFound(w, r, adminProjectNotFound)
		return
	}
	if err != nil {
		c.serverError(w, r, err)
		return
	}
	c.renderProjectForm(w, r, http.StatusOK, project)
}

func (c *AdminController) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		c.notFound(w, r, adminProjectNotFound)
		return
	}
	if !c.parseForm(w, r) {
		return
	}
	project := parseProjectForm(r)
	project.ID = id
	err := c.projects.UpdateProject(project)
	if errors.Is(err, repositories.ErrNotFound) {
		c.notFound(w, r, adminProjectNotFound)
		return
	}
	if err != nil {
		c.formError(w, r, err, func(flash session.Flash) {
			c.renderProjectForm(w, r, http.StatusBadRequest, project, flash)
		})
		return
	}
	c.flash(w, r, session.FlashSuccess, "Project updated", fmt.Sprintf("%q has been updated.", project.Title))
	c.redirect(w, r, "/admin/projects")
}

// DeleteProject removes exactly the requested project.
func (c *AdminController) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id, _ := pathID(r)
	err := c.projects.DeleteProject(id)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		c.flash(w, r, session.FlashError, "Project not found", "It may have already been deleted.")
	case err != nil:
		c.serverError(w, r, err)
		return
	default:
		c.flash(w, r, session.FlashSuccess, "Project deleted", "The project has been deleted successfully.")
	}
	c.redirect(w, r, "/admin/projects")
}

// Blog

func (c *AdminController) Posts(w http.ResponseWriter, r *http.Request) {
	posts, err := c.blog.ListPosts()
	if err != nil {
		c.serverError(w, r, err)
		return
	}
	c.render(w, r, http.StatusOK, "admin/blog", "Blog Posts", struct {
		Posts []*models.BlogPost
	}{posts})
}

func (c *AdminController) renderPostForm(w http.ResponseWriter, r *http.Request, status int, post *models.BlogPost, extra ...session.Flash) {
	title := "New Post"
	if post.ID != 0 {
		title = "Edit Post"
	}
	c.render(w, r, status, "admin/post_form", title, struct {
		Post *models.BlogPost
	}{post}, extra...)
}

func (c *AdminController) NewPost(w http.ResponseWriter, r *http.Request) {
	author := ""
	if settings, err := c.settings.GetSettings(); err == nil {
		author = settings.Name
	}
	c.renderPostForm(w, r, http.StatusOK, &models.BlogPost{Status: models.StatusDraft, Author: author})
}

func (c *AdminController) CreatePost(w http.ResponseWriter, r *http.Request) {
	if !c.parseForm(w, r) {
		return
	}
	post := parsePostForm(r)
	if err := c.blog.CreatePost(post); err != nil {
		c.formError(w, r, err, func(flash session.Flash) {
			post.ID = 0
			c.renderPostForm(w, r, http.StatusBadRequest, post, flash)
		})
		return
	}
	c.flash(w, r, session.FlashSuccess, "Post created", fmt.Sprintf("%q has been created.", post.Title))
	c.redirect(w, r, "/admin/blog")
}

func (c *AdminController) EditPost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		c.notFound(w, r, adminPostNotFound)
		return
	}
	post, err := c.blog.GetPost(id)
	if errors.Is(err, repositories.ErrNotFound) {
		c.notFound(w, r, adminPostNotFound)
		return
	}
	if err != nil {
		c.serverError(w, r, err)
		return
	}
	c.renderPostForm(w, r, http.StatusOK, post)
}

func (c *AdminController) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		c.notFound(w, r, adminPostNotFound)
		return
	}
	if !c.parseForm(w, r) {
		return
	}
	post := parsePostForm(r)
	post.ID = id
	err := c.blog.UpdatePost(post)
	if errors.Is(err, repositories.ErrNotFound) {
		c.notFound(w, r, adminPostNotFound)
		return
	}
	if err != nil {
		c.formError(w, r, err, func(flash session.Flash) {
			c.renderPostForm(w, r, http.StatusBadRequest, post, flash)
		})
		return
	}
	c.flash(w, r, session.FlashSuccess, "Post updated", fmt.Sprintf("%q has been updated.", post.Title))
	c.redirect(w, r, "/admin/blog")
}

// DeletePost removes exactly the requested post.
func (c *AdminController) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, _ := pathID(r)
	err := c.blog.DeletePost(id)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		c.flash(w, r, session.FlashError, "Post not found", "It may have already been deleted.")
	case err != nil:
		c.serverError(w, r, err)
		return
	default:
		c.flash(w, r, session.FlashSuccess, "Post deleted", "The blog post has been deleted successfully.")
	}
	c.redirect(w, r, "/admin/blog")
}

// Messages

func (c *AdminController) Messages(w http.ResponseWriter, r *http.Request) {
	messages, err := c.messages.ListMessages()
	if err != nil {
		c.serverError(w, r, err)
		return
	}
	c.render(w, r, http.StatusOK, "admin/messages", "Messages", struct {
		Messages []*models.Message
	}{messages})
}

type messagePage struct {
	Message *models.Message
	Reply   string
}

// Message shows one message and marks it read.
func (c *AdminController) Message(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		c.notFound(w, r, adminMessageNotFound)
		return
	}
	msg, err := c.messages.MarkRead(id)
	if errors.Is(err, repositories.ErrNotFound) {
		c.notFound(w, r, adminMessageNotFound)
		return
	}
	if err != nil {
		c.serverError(w, r, err)
		return
	}
	c.render(w, r, http.StatusOK, "admin/message", "Message", messagePage{Message: msg})
}

func (c *AdminController) ReplyMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		c.notFound(w, r, adminMessageNotFound)
		return
	}
	if !c.parseForm(w, r) {
		return
	}
	reply := r.PostFormValue("reply")
	back := "/admin/messages/" + strconv.Itoa(id)

	err := c.messages.Reply(r.Context(), id, reply)
	switch {
	case err == nil:
		c.flash(w, r, session.FlashSuccess, "Reply sent", "Your reply has been sent.")
		c.redirect(w, r, back)
	case errors.Is(err, repositories.ErrNotFound):
		c.notFound(w, r, adminMessageNotFound)
	case errors.Is(err, services.ErrEmptyReply):
		c.flash(w, r, session.FlashError, "Reply cannot be empty", "Write a message before sending.")
		c.redirect(w, r, back)
	case errors.Is(err, services.ErrDelivery):
		c.logger.Warn("Reply delivery failed", zap.Int("id", id), zap.Error(err))
		msg, getErr := c.messages.GetMessage(id)
		if getErr != nil {
			c.serverError(w, r, getErr)
			return
		}
		c.render(w, r, http.StatusBadGateway, "admin/message", "Message", messagePage{Message: msg, Reply: reply},
			session.Flash{Kind: session.FlashError, Title: "Error", Description: "There was an error sending your reply. Please try again."})
	default:
		c.serverError(w, r, err)
	}
}

// DeleteMessage removes exactly the requested message.
func (c *AdminController) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	id, _ := pathID(r)
	err := c.messages.DeleteMessage(id)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		c.flash(w, r, session.FlashError, "Message not found", "It may have already been deleted.")
	case err != nil:
		c.serverError(w, r, err)
		return
	default:
		c.flash(w, r, session.FlashSuccess, "Message deleted", "The message has been deleted successfully.")
	}
	c.redirect(w, r, "/admin/messages")
}

// Settings

func (c *AdminController) Settings(w http.ResponseWriter, r *http.Request) {
	settings, err := c.settings.GetSettings()
	if err != nil {
		c.serverError(w, r, err)
		return
	}
	c.render(w, r, http.StatusOK, "admin/settings", "Settings", struct {
		Settings *models.Settings
	}{settings})
}

func (c *AdminController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	if !c.parseForm(w, r) {
		return
	}
	_, err := c.settings.UpdateProfile(r.PostFormValue("name"), r.PostFormValue("email"))
	if err != nil {
		c.formError(w, r, err, func(flash session.Flash) {
			c.flash(w, r, flash.Kind, flash.Title, flash.Description)
			c.redirect(w, r, "/admin/settings")
		})
		return
	}
	c.flash(w, r, session.FlashSuccess, "Profile updated", "Your profile information has been updated successfully.")
	c.redirect(w, r, "/admin/settings")
}

func (c *AdminController) ChangePassword(w http.ResponseWriter, r *http.Request) {
	if !c.parseForm(w, r) {
		return
	}
	err := c.settings.ChangePassword(r.PostFormValue("password"), r.PostFormValue("confirm_password"))
	switch {
	case err == nil:
		c.logger.Info("Admin password changed")
		c.flash(w, r, session.FlashSuccess, "Password changed", "Your password has been updated successfully.")
	case errors.Is(err, services.ErrPasswordMismatch):
		c.flash(w, r, session.FlashError, "Passwords don't match", "Please make sure your passwords match.")
	case errors.Is(err, services.ErrPasswordTooShort):
		c.flash(w, r, session.FlashError, "Password too short", "Use at least 8 characters.")
	default:
		c.serverError(w, r, err)
		return
	}
	c.redirect(w, r, "/admin/settings")
}

// ToggleDarkMode changes the site default and the admin's own view.
func (c *AdminController) ToggleDarkMode(w http.ResponseWriter, r *http.Request) {
	dark, err := c.settings.ToggleDarkMode()
	if err != nil {
		c.serverError(w, r, err)
		return
	}
	if err := c.sessions.SetDarkMode(w, r, dark); err != nil {
		c.serverError(w, r, err)
		return
	}
	title := "Light mode activated"
	if dark {
		title = "Dark mode activated"
	}
	c.flash(w, r, session.FlashSuccess, title, "The theme preference has been saved.")
	c.redirect(w, r, "/admin/settings")
}

func (c *AdminController) ToggleAnimations(w http.ResponseWriter, r *http.Request) {
	enabled, err := c.settings.ToggleAnimations()
	if err != nil {
		c.serverError(w, r, err)
		return
	}
	title := "Animations disabled"
	if enabled {
		title = "Animations enabled"
	}
	c.flash(w, r, session.FlashSuccess, title, "The animation preference has been saved.")
	c.redirect(w, r, "/admin/settings")
}

// Backup downloads a snapshot of the whole store.
func (c *AdminController) Backup(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := c.settings.Backup(&buf); err != nil {
		c.serverError(w, r, err)
		return
	}
	name := fmt.Sprintf("portfolio-backup-%s.bak", time.Now().UTC().Format("20060102-150405"))
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	buf.WriteTo(w)
	c.logger.Info("Backup downloaded", zap.Int("bytes", buf.Len()))
}

// Restore replaces all data with an uploaded snapshot.
func (c *AdminController) Restore(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBackupBytes)
	file, _, err := r.FormFile("backup")
	if err != nil {
		c.flash(w, r, session.FlashError, "No backup file", "Choose a backup file to restore.")
		c.redirect(w, r, "/admin/settings")
		return
	}
	defer file.Close()

	if err := c.settings.Restore(file); err != nil {
		c.logger.Error("Restore failed", zap.Error(err))
		c.flash(w, r, session.FlashError, "Restore failed", "The backup file could not be restored.")
		c.redirect(w, r, "/admin/settings")
		return
	}
	c.logger.Info("Data restored from backup")
	c.flash(w, r, session.FlashSuccess, "Data restored", "Your data has been restored from backup.")
	c.redirect(w, r, "/admin/settings")
}

// formError hands validation failures and slug conflicts to onInvalid as
// an error flash and treats everything else as a server error.
func (c *AdminController) formError(w http.ResponseWriter, r *http.Request, err error, onInvalid func(session.Flash)) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		onInvalid(session.Flash{Kind: session.FlashError, Title: "Please check the form", Description: validationSummary(err)})
	case errors.Is(err, repositories.ErrSlugTaken):
		onInvalid(session.Flash{Kind: session.FlashError, Title: "Slug already in use", Description: "Another post took this slug. Please save again."})
	default:
		c.serverError(w, r, err)
	}
}

var (
	adminProjectNotFound = notFoundPage{
		Heading:   "Project Not Found",
		Message:   "The project you're looking for doesn't exist.",
		BackURL:   "/admin/projects",
		BackLabel: "Back to Projects",
	}
	adminPostNotFound = notFoundPage{
		Heading:   "Post Not Found",
		Message:   "The post you're looking for doesn't exist.",
		BackURL:   "/admin/blog",
		BackLabel: "Back to Blog Posts",
	}
	adminMessageNotFound = notFoundPage{
		Heading:   "Message Not Found",
		Message:   "The message you're looking for doesn't exist.",
		BackURL:   "/admin/messages",
		BackLabel: "Back to Messages",
	}
)
