package services

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"portfolio/app/models"
	"portfolio/app/repositories"
)

const minPasswordLength = 8

// Snapshotter backs up and restores the whole store.
type Snapshotter interface {
	Backup(w io.Writer) (uint64, error)
	Restore(r io.Reader) error
}

// SettingsService manages the admin profile, password and site
// preferences.
type SettingsService struct {
	settingsRepo repositories.SettingsRepository
	store        Snapshotter
	defaults     models.Settings
	password     string

	// serializes read-modify-write cycles on the single record
	mutex sync.Mutex
}

// NewSettingsService creates a new SettingsService. defaults and password
// seed the record the first time it is read.
func NewSettingsService(settingsRepo repositories.SettingsRepository, store Snapshotter, defaults models.Settings, password string) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
		store:        store,
		defaults:     defaults,
		password:     password,
	}
}

// GetSettings returns the stored settings, creating them from the
// defaults when missing.
func (s *SettingsService) GetSettings() (*models.Settings, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.load()
}

func (s *SettingsService) load() (*models.Settings, error) {
	settings, err := s.settingsRepo.Get()
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	settings = &models.Settings{
		Name:              s.defaults.Name,
		Email:             s.defaults.Email,
		DarkMode:          s.defaults.DarkMode,
		AnimationsEnabled: s.defaults.AnimationsEnabled,
		PasswordHash:      hash,
	}
	if err := s.settingsRepo.Save(settings); err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}
	return settings, nil
}

// update applies fn to the current settings and saves the result.
func (s *SettingsService) update(fn func(*models.Settings) error) (*models.Settings, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	settings, err := s.load()
	if err != nil {
		return nil, err
	}
	if err := fn(settings); err != nil {
		return nil, err
	}
	if err := s.settingsRepo.Save(settings); err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}
	return settings, nil
}

// UpdateProfile changes the profile name and email
func (s *SettingsService) UpdateProfile(name, email string) (*models.Settings, error) {
	return s.update(func(settings *models.Settings) error {
		settings.Name = strings.TrimSpace(name)
		settings.Email = strings.TrimSpace(email)
		if err := settings.Validate(); err != nil {
			return invalid("profile", err)
		}
		return nil
	})
}

// ChangePassword replaces the admin password. password and confirm must
// match.
func (s *SettingsService) ChangePassword(password, confirm string) error {
	if password != confirm {
		return ErrPasswordMismatch
	}
	if len(password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	_, err = s.update(func(settings *models.Settings) error {
		settings.PasswordHash = hash
		return nil
	})
	return err
}

// CheckPassword reports whether password matches the stored hash.
func (s *SettingsService) CheckPassword(password string) (bool, error) {
	settings, err := s.GetSettings()
	if err != nil {
		return false, err
	}
	err = bcrypt.CompareHashAndPassword(settings.PasswordHash, []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to compare password: %w", err)
	}
	return true, nil
}

// ToggleDarkMode flips the dark mode preference and returns the new value.
func (s *SettingsService) ToggleDarkMode() (bool, error) {
	settings, err := s.update(func(settings *models.Settings) error {
		settings.DarkMode = !settings.DarkMode
		return nil
	})
	if err != nil {
		return false, err
	}
	return settings.DarkMode, nil
}

// ToggleAnimations flips the animations preference and returns the new
// value.
func (s *SettingsService) ToggleAnimations() (bool, error) {
	settings, err := s.update(func(settings *models.Settings) error {
		settings.AnimationsEnabled = !settings.AnimationsEnabled
		return nil
	})
	if err != nil {
		return false, err
	}
	return settings.AnimationsEnabled, nil
}

// Backup streams a snapshot of every record to w.
func (s *SettingsService) Backup(w io.Writer) error {
	_, err := s.store.Backup(w)
	return err
}

// Restore replaces all data with the snapshot in r.
func (s *SettingsService) Restore(r io.Reader) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.store.Restore(r)
}
