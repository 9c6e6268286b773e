package services

import (
	"crypto/subtle"
)

// AuthService checks admin credentials. There is a single admin account,
// no lockout and no rate limiting.
type AuthService struct {
	username string
	settings *SettingsService
}

func NewAuthService(username string, settings *SettingsService) *AuthService {
	return &AuthService{username: username, settings: settings}
}

// Login returns ErrInvalidCredentials unless both username and password
// match exactly.
func (s *AuthService) Login(username, password string) error {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passOK, err := s.settings.CheckPassword(password)
	if err != nil {
		return err
	}
	if !userOK || !passOK {
		return ErrInvalidCredentials
	}
	return nil
}
