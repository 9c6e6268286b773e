package models

import (
	"errors"
	"strings"
	"time"
)

// Validate checks if the message meets all validation requirements
func (m *Message) Validate() error {
	if err := validate.Struct(m); err != nil {
		return err
	}

	if m.Date.IsZero() {
		return errors.New("date cannot be zero")
	}

	return nil
}

// BeforeCreate sets up any necessary fields before creation
func (m *Message) BeforeCreate() {
	if m.Date.IsZero() {
		m.Date = time.Now()
	}
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.TrimSpace(m.Email)
}

// Validate checks the profile fields.
func (s *Settings) Validate() error {
	return validate.Struct(s)
}
