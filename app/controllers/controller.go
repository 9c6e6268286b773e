package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"portfolio/app/config"
	"portfolio/app/middleware"
	"portfolio/app/repositories"
	"portfolio/app/services"
	"portfolio/app/session"
	"portfolio/app/views"
)

// maxBodyBytes caps JSON and form bodies, backups excluded.
const maxBodyBytes = 1 << 20

// Page is the value every layout is executed with.
type Page struct {
	Title         string
	Path          string
	Site          config.SiteConfig
	DarkMode      bool
	Animations    bool
	Authenticated bool
	Sidebar       bool
	Flashes       []session.Flash
	Data          any
}

// notFoundPage fills the placeholder shown for missing records.
type notFoundPage struct {
	Heading   string
	Message   string
	BackURL   string
	BackLabel string
}

// Base holds what every controller needs to answer a request.
type Base struct {
	templates map[string]*template.Template
	sessions  *session.Manager
	settings  *services.SettingsService
	site      config.SiteConfig
	logger    *zap.Logger
}

// NewBase parses the embedded templates.
func NewBase(sessions *session.Manager, settings *services.SettingsService, site config.SiteConfig, logger *zap.Logger) (*Base, error) {
	templates, err := views.Parse(templateFuncs())
	if err != nil {
		return nil, err
	}
	return &Base{
		templates: templates,
		sessions:  sessions,
		settings:  settings,
		site:      site,
		logger:    logger,
	}, nil
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"date": func(t time.Time) string {
			return t.Format("January 2, 2006")
		},
		"isoDate": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("2006-01-02")
		},
		"weekday": func(t time.Time) string {
			return t.Format("Mon")
		},
		"year": func() int {
			return time.Now().Year()
		},
		"hasPrefix": strings.HasPrefix,
		"title": func(s string) string {
			return cases.Title(language.English).String(s)
		},
		"percent": func(v, max int) int {
			if max <= 0 {
				return 0
			}
			return v * 100 / max
		},
		"paragraphs": paragraphs,
		"ids":        formatIDs,
	}
}

// paragraphs renders plain text with blank-line separated paragraphs.
func paragraphs(s string) template.HTML {
	var sb strings.Builder
	for _, p := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n\n") {
		if p = strings.TrimSpace(p); p == "" {
			continue
		}
		sb.WriteString("<p>")
		sb.WriteString(strings.ReplaceAll(template.HTMLEscapeString(p), "\n", "<br>"))
		sb.WriteString("</p>")
	}
	return template.HTML(sb.String())
}

func formatIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ", ")
}

// render executes page name into a buffer so template failures still
// produce a clean 500.
func (b *Base) render(w http.ResponseWriter, r *http.Request, status int, name, title string, data any, extra ...session.Flash) {
	t, ok := b.templates[name]
	if !ok {
		b.serverError(w, r, fmt.Errorf("unknown template %q", name))
		return
	}

	page := Page{
		Title:         title,
		Path:          r.URL.Path,
		Site:          b.site,
		Animations:    true,
		Authenticated: b.sessions.IsAuthenticated(r),
		Sidebar:       b.sessions.SidebarCollapsed(r),
		Data:          data,
	}
	if settings, err := b.settings.GetSettings(); err != nil {
		b.logger.Warn("Failed to load settings", zap.Error(err))
	} else {
		page.DarkMode = settings.DarkMode
		page.Animations = settings.AnimationsEnabled
	}
	if dark, set := b.sessions.DarkMode(r); set {
		page.DarkMode = dark
	}
	page.Flashes = append(b.sessions.Flashes(w, r), extra...)

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", page); err != nil {
		b.serverError(w, r, fmt.Errorf("template %s: %w", name, err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// notFound renders the placeholder page, or a JSON 404 for API calls.
func (b *Base) notFound(w http.ResponseWriter, r *http.Request, page notFoundPage) {
	if wantsJSON(r) {
		b.sendError(w, r, page.Heading, http.StatusNotFound)
		return
	}
	b.render(w, r, http.StatusNotFound, "public/not_found", page.Heading, page)
}

// NotFound handles unmatched routes.
func (b *Base) NotFound(w http.ResponseWriter, r *http.Request) {
	b.notFound(w, r, notFoundPage{
		Heading:   "Page Not Found",
		Message:   "The page you're looking for doesn't exist.",
		BackURL:   "/",
		BackLabel: "Back to Home",
	})
}

// Helper methods for consistent response handling

func (b *Base) sendJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		b.logger.Warn("Failed to encode response", zap.Error(err))
	}
}

func (b *Base) sendError(w http.ResponseWriter, r *http.Request, message string, status int) {
	if wantsJSON(r) {
		b.sendJSON(w, status, map[string]string{"error": message})
		return
	}
	http.Error(w, message, status)
}

func (b *Base) serverError(w http.ResponseWriter, r *http.Request, err error) {
	b.logger.Error("Request failed",
		zap.String("path", r.URL.Path),
		zap.String("request_id", middleware.RequestIDFrom(r.Context())),
		zap.Error(err))
	b.sendError(w, r, "Internal Server Error", http.StatusInternalServerError)
}

// sendServiceError maps service errors onto JSON responses.
func (b *Base) sendServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *services.ValidationError
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		b.sendError(w, r, "Not found", http.StatusNotFound)
	case errors.As(err, &verr):
		b.sendJSON(w, http.StatusBadRequest, map[string]any{
			"error":  verr.Error(),
			"fields": fieldErrors(verr),
		})
	case errors.Is(err, repositories.ErrSlugTaken):
		b.sendError(w, r, err.Error(), http.StatusConflict)
	case errors.Is(err, services.ErrDelivery):
		b.sendError(w, r, "There was an error sending your message. Please try again.", http.StatusBadGateway)
	case errors.Is(err, services.ErrEmptyReply),
		errors.Is(err, services.ErrPasswordMismatch),
		errors.Is(err, services.ErrPasswordTooShort):
		b.sendError(w, r, err.Error(), http.StatusBadRequest)
	default:
		b.serverError(w, r, err)
	}
}

func (b *Base) flash(w http.ResponseWriter, r *http.Request, kind, title, description string) {
	err := b.sessions.AddFlash(w, r, session.Flash{Kind: kind, Title: title, Description: description})
	if err != nil {
		b.logger.Warn("Failed to save flash", zap.Error(err))
	}
}

func (b *Base) redirect(w http.ResponseWriter, r *http.Request, target string) {
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// redirectBack returns to the referring page on this site, or fallback.
func (b *Base) redirectBack(w http.ResponseWriter, r *http.Request, fallback string) {
	target := fallback
	if ref, err := url.Parse(r.Referer()); err == nil && ref.Path != "" && (ref.Host == "" || ref.Host == r.Host) {
		target = ref.Path
		if ref.RawQuery != "" {
			target += "?" + ref.RawQuery
		}
	}
	b.redirect(w, r, target)
}

func (b *Base) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		b.sendError(w, r, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func (b *Base) parseForm(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		b.sendError(w, r, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func wantsJSON(r *http.Request) bool {
	return r.URL.Path == "/api" || strings.HasPrefix(r.URL.Path, "/api/") ||
		strings.Contains(r.Header.Get("Accept"), "application/json")
}

func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	return id, err == nil && id > 0
}

// fieldErrors turns validator failures into readable messages keyed by
// field name.
func fieldErrors(err error) map[string]string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}
	out := make(map[string]string, len(ve))
	for _, fe := range ve {
		out[fe.Field()] = describeFieldError(fe)
	}
	return out
}

func describeFieldError(fe validator.FieldError) string {
	name := fe.Field()
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "email":
		return name + " must be a valid email address"
	case "url":
		return name + " must be a valid URL"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", name, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", name, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", name, fe.Param())
	}
	return name + " is invalid"
}

// validationSummary joins the field messages for a flash description.
func validationSummary(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			return verr.Err.Error()
		}
		return err.Error()
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, describeFieldError(fe))
	}
	return strings.Join(msgs, ". ") + "."
}
