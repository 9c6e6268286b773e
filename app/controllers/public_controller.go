package controllers

import (
	"errors"
	"html/template"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"portfolio/app/models"
	"portfolio/app/repositories"
	"portfolio/app/services"
	"portfolio/app/session"
	"portfolio/app/share"
)

var (
	projectNotFound = notFoundPage{
		Heading:   "Project Not Found",
		Message:   "The project you're looking for doesn't exist or has been removed.",
		BackURL:   "/projects",
		BackLabel: "Back to Projects",
	}
	postNotFound = notFoundPage{
		Heading:   "Post Not Found",
		Message:   "The article you're looking for doesn't exist or has been removed.",
		BackURL:   "/blog",
		BackLabel: "Back to Blog",
	}
)

// PublicController serves the marketing pages.
type PublicController struct {
	*Base
	projects *services.ProjectService
	blog     *services.BlogService
	messages *services.MessageService
}

func NewPublicController(base *Base, projects *services.ProjectService, blog *services.BlogService, messages *services.MessageService) *PublicController {
	return &PublicController{
		Base:     base,
		projects: projects,
		blog:     blog,
		messages: messages,
	}
}

// Home shows featured projects and the latest articles.
func (c *PublicController) Home(w http.ResponseWriter, r *http.Request) {
	featured, err := c.projects.Featured()
	if err != nil {
		c.serverError(w, r, err)
		return
	}
	recent, err := c.blog.Recent(3)
	if err != nil {
		c.serverError(w, r, err)
		return
	}
	c.render(w, r, http.StatusOK, "public/home", "", struct {
		Featured []*models.Project
		Recent   []*models.BlogPost
	}{featured, recent})
}

func (c *PublicController) About(w http.ResponseWriter, r *http.Request) {
	c.render(w, r, http.StatusOK, "public/about", "About", about)
}

// Projects lists published projects, optionally narrowed by ?category=.
func (c *PublicController) Projects(w http.ResponseWriter, r *http.Request) {
	category := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("category")))
	if category == "" {
		category = services.CategoryAll
	}
	projects, err := c.projects.ListPublished(category)
	if err != nil {
		c.serverError(w, r, err)
		return
	}
	categories, err := c.projects.Categories()
	if err != nil {
		c.serverError(w, r, err)
		return
	}
	c.render(w, r, http.StatusOK, "public/projects", "Projects", struct {
		Projects   []*models.Project
		Categories []string
		Category   string
	}{projects, categories, category})
}

func (c *PublicController) Project(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		c.notFound(w, r, projectNotFound)
		return
	}
	project, err := c.projects.GetPublishedProject(id)
	if errors.Is(err, repositories.ErrNotFound) {
		c.notFound(w, r, projectNotFound)
		return
	}
	if err != nil {
		c.serverError(w, r, err)
		return
	}
	c.render(w, r, http.StatusOK, "public/project", project.Title, struct {
		Project *models.Project
	}{project})
}

// Blog lists published posts matching ?q= and ?tag=.
func (c *PublicController) Blog(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	tag := strings.TrimSpace(r.URL.Query().Get("tag"))

	posts, err := c.blog.Search(query, tag)
	if err != nil {
		c.serverError(w, r, err)
		return
	}
	tags, err := c.blog.Tags()
	if err != nil {
		c.serverError(w, r, err)
		return
	}
	c.render(w, r, http.StatusOK, "public/blog", "Blog", struct {
		Posts []*models.BlogPost
		Tags  []string
		Query string
		Tag   string
		Count int
	}{posts, tags, query, tag, len(posts)})
}

// Post shows one article with its related posts and share links.
func (c *PublicController) Post(w http.ResponseWriter, r *http.Request) {
	post, err := c.blog.GetPublishedPost(mux.Vars(r)["slug"])
	if errors.Is(err, repositories.ErrNotFound) {
		c.notFound(w, r, postNotFound)
		return
	}
	if err != nil {
		c.serverError(w, r, err)
		return
	}
	html, err := c.blog.Render(post)
	if err != nil {
		c.serverError(w, r, err)
		return
	}
	related, err := c.blog.Related(post)
	if err != nil {
		c.serverError(w, r, err)
		return
	}

	pageURL := share.AbsoluteURL(r.Host, r.Header.Get("X-Forwarded-Proto"), r.TLS != nil, r.URL.Path)
	c.render(w, r, http.StatusOK, "public/post", post.Title, struct {
		Post    *models.BlogPost
		HTML    template.HTML
		Related []*models.BlogPost
		Share   share.Links
	}{post, html, related, share.For(pageURL, post.Title)})
}

type contactPage struct {
	Form   contactForm
	MapURL string
}

func (c *PublicController) contactPage(form contactForm) contactPage {
	page := contactPage{Form: form}
	if share.MapEmbedAllowed(c.site.MapEmbedURL) {
		page.MapURL = c.site.MapEmbedURL
	}
	return page
}

func (c *PublicController) ContactForm(w http.ResponseWriter, r *http.Request) {
	c.render(w, r, http.StatusOK, "public/contact", "Contact", c.contactPage(contactForm{}))
}

// Contact sends the form. Success redirects to an empty form; failures
// re-render with the visitor's input kept.
func (c *PublicController) Contact(w http.ResponseWriter, r *http.Request) {
	if !c.parseForm(w, r) {
		return
	}
	form := parseContactForm(r)

	err := c.messages.Submit(r.Context(), form.message())
	var verr *services.ValidationError
	switch {
	case err == nil:
		c.flash(w, r, session.FlashSuccess, "Message sent!", "Thank you for your message. I'll get back to you soon.")
		c.redirect(w, r, "/contact")
	case errors.As(err, &verr):
		c.render(w, r, http.StatusBadRequest, "public/contact", "Contact", c.contactPage(form),
			session.Flash{Kind: session.FlashError, Title: "Please check the form", Description: validationSummary(err)})
	case errors.Is(err, services.ErrDelivery):
		c.logger.Warn("Contact form delivery failed", zap.Error(err))
		c.render(w, r, http.StatusBadGateway, "public/contact", "Contact", c.contactPage(form),
			session.Flash{Kind: session.FlashError, Title: "Error", Description: "There was an error sending your message. Please try again."})
	default:
		c.serverError(w, r, err)
	}
}

// Theme flips the visitor's dark mode preference.
func (c *PublicController) Theme(w http.ResponseWriter, r *http.Request) {
	dark, set := c.sessions.DarkMode(r)
	if !set {
		if settings, err := c.settings.GetSettings(); err == nil {
			dark = settings.DarkMode
		}
	}
	if err := c.sessions.SetDarkMode(w, r, !dark); err != nil {
		c.serverError(w, r, err)
		return
	}
	c.redirectBack(w, r, "/")
}
