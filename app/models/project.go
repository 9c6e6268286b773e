package models

import (
	"errors"
	"strings"
	"time"
)

// Validate checks if the project meets all validation requirements
func (p *Project) Validate() error {
	if err := validate.Struct(p); err != nil {
		return err
	}

	if p.CreatedAt.IsZero() {
		return errors.New("created_at cannot be zero")
	}

	return nil
}

// BeforeCreate sets up any necessary fields before creation
func (p *Project) BeforeCreate() {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	if p.Status == "" {
		p.Status = StatusDraft
	}
	p.Category = strings.ToLower(strings.TrimSpace(p.Category))
}

// IsPublished reports whether the project is visible on the public site.
func (p *Project) IsPublished() bool {
	return p.Status == StatusPublished
}

// TechList splits the comma separated tech stack.
func (p *Project) TechList() []string {
	return splitList(p.TechStack)
}

// splitList splits a comma separated string, trimming blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
