package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Publication states shared by projects and blog posts.
const (
	StatusPublished = "published"
	StatusDraft     = "draft"
)

// Project represents a portfolio project.
type Project struct {
	ID              int       `json:"id" validate:"gte=0"`
	Title           string    `json:"title" validate:"required,min=3,max=100"`
	Description     string    `json:"description" validate:"required,max=500"`
	LongDescription string    `json:"longDescription,omitempty"`
	Thumbnail       string    `json:"thumbnail,omitempty" validate:"omitempty,max=500"`
	TechStack       string    `json:"techStack"`
	Category        string    `json:"category" validate:"required,max=40"`
	DemoLink        string    `json:"demoLink,omitempty" validate:"omitempty,url"`
	RepoLink        string    `json:"repoLink,omitempty" validate:"omitempty,url"`
	Status          string    `json:"status" validate:"required,oneof=published draft"`
	Featured        bool      `json:"featured"`
	CreatedAt       time.Time `json:"createdAt"`
}

// BlogPost represents an article on the blog.
type BlogPost struct {
	ID         int       `json:"id" validate:"gte=0"`
	Title      string    `json:"title" validate:"required,min=3,max=150"`
	Slug       string    `json:"slug" validate:"omitempty,max=200"`
	Excerpt    string    `json:"excerpt" validate:"max=500"`
	Content    string    `json:"content" validate:"required"`
	Image      string    `json:"image,omitempty" validate:"omitempty,max=500"`
	Tags       string    `json:"tags"`
	Author     string    `json:"author" validate:"max=80"`
	Date       time.Time `json:"date"`
	Status     string    `json:"status" validate:"required,oneof=published draft"`
	RelatedIDs []int     `json:"relatedPosts,omitempty"`
}

// Message is a contact form submission shown in the admin inbox.
type Message struct {
	ID      int       `json:"id" validate:"gte=0"`
	Name    string    `json:"name" validate:"required,min=2,max=80"`
	Email   string    `json:"email" validate:"required,email"`
	Subject string    `json:"subject" validate:"max=200"`
	Body    string    `json:"message" validate:"required,min=1,max=5000"`
	Date    time.Time `json:"date"`
	Read    bool      `json:"read"`
}

// Settings holds the admin profile and site preferences.
type Settings struct {
	Name              string `json:"name" validate:"required,min=2,max=80"`
	Email             string `json:"email" validate:"required,email"`
	DarkMode          bool   `json:"darkMode"`
	AnimationsEnabled bool   `json:"animationsEnabled"`
	PasswordHash      []byte `json:"passwordHash,omitempty"`
}

// DayViews is the page view count for a single day.
type DayViews struct {
	Day   time.Time `json:"day"`
	Views int       `json:"views"`
}
