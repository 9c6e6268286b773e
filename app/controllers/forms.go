package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"portfolio/app/models"
)

// contactForm keeps what the visitor typed so a failed send can
// re-render it.
type contactForm struct {
	Name    string
	Email   string
	Subject string
	Body    string
}

func parseContactForm(r *http.Request) contactForm {
	return contactForm{
		Name:    strings.TrimSpace(r.PostFormValue("name")),
		Email:   strings.TrimSpace(r.PostFormValue("email")),
		Subject: strings.TrimSpace(r.PostFormValue("subject")),
		Body:    strings.TrimSpace(r.PostFormValue("message")),
	}
}

func (f contactForm) message() *models.Message {
	return &models.Message{
		Name:    f.Name,
		Email:   f.Email,
		Subject: f.Subject,
		Body:    f.Body,
	}
}

func parseProjectForm(r *http.Request) *models.Project {
	return &models.Project{
		Title:           strings.TrimSpace(r.PostFormValue("title")),
		Description:     strings.TrimSpace(r.PostFormValue("description")),
		LongDescription: strings.TrimSpace(r.PostFormValue("long_description")),
		Thumbnail:       strings.TrimSpace(r.PostFormValue("thumbnail")),
		TechStack:       strings.TrimSpace(r.PostFormValue("tech_stack")),
		Category:        strings.TrimSpace(r.PostFormValue("category")),
		DemoLink:        strings.TrimSpace(r.PostFormValue("demo_link")),
		RepoLink:        strings.TrimSpace(r.PostFormValue("repo_link")),
		Status:          r.PostFormValue("status"),
		Featured:        r.PostFormValue("featured") != "",
	}
}

// parsePostForm reads the blog editor. Unparseable dates and related ids
// are dropped.
func parsePostForm(r *http.Request) *models.BlogPost {
	post := &models.BlogPost{
		Title:   strings.TrimSpace(r.PostFormValue("title")),
		Slug:    strings.TrimSpace(r.PostFormValue("slug")),
		Excerpt: strings.TrimSpace(r.PostFormValue("excerpt")),
		Content: r.PostFormValue("content"),
		Image:   strings.TrimSpace(r.PostFormValue("image")),
		Tags:    strings.TrimSpace(r.PostFormValue("tags")),
		Author:  strings.TrimSpace(r.PostFormValue("author")),
		Status:  r.PostFormValue("status"),
	}
	if d, err := time.Parse("2006-01-02", r.PostFormValue("date")); err == nil {
		post.Date = d
	}
	for _, part := range strings.Split(r.PostFormValue("related"), ",") {
		if id, err := strconv.Atoi(strings.TrimSpace(part)); err == nil && id > 0 {
			post.RelatedIDs = append(post.RelatedIDs, id)
		}
	}
	return post
}
