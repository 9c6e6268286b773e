package models

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"
)

const wordsPerMinute = 200

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// Validate checks if the post meets all validation requirements
func (b *BlogPost) Validate() error {
	if err := validate.Struct(b); err != nil {
		return err
	}

	if b.Date.IsZero() {
		return errors.New("date cannot be zero")
	}

	return nil
}

// BeforeCreate sets up any necessary fields before creation
func (b *BlogPost) BeforeCreate() {
	if b.Date.IsZero() {
		b.Date = time.Now().UTC().Truncate(24 * time.Hour)
	}
	if b.Status == "" {
		b.Status = StatusDraft
	}
	if b.Slug == "" {
		b.Slug = Slugify(b.Title)
	}
}

// IsPublished reports whether the post is visible on the public site.
func (b *BlogPost) IsPublished() bool {
	return b.Status == StatusPublished
}

// TagList splits the comma separated tags.
func (b *BlogPost) TagList() []string {
	return splitList(b.Tags)
}

// HasTag reports whether tag is one of the post's tags, ignoring case.
func (b *BlogPost) HasTag(tag string) bool {
	for _, t := range b.TagList() {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// ReadTime estimates the reading time of the content, markup excluded.
func (b *BlogPost) ReadTime() string {
	words := len(strings.Fields(tagPattern.ReplaceAllString(b.Content, " ")))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min read", minutes)
}

// Slugify turns a title into a lowercase, dash separated URL segment.
func Slugify(title string) string {
	var sb strings.Builder
	dash := false
	for _, r := range strings.ToLower(title) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			sb.WriteRune(r)
			dash = false
		case sb.Len() > 0 && !dash:
			sb.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(sb.String(), "-")
}
