package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all portfolio configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Admin   AdminConfig   `yaml:"admin"`
	Session SessionConfig `yaml:"session"`
	Email   EmailConfig   `yaml:"email"`
	Site    SiteConfig    `yaml:"site"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// StorageConfig configures the Badger store. An empty Path keeps
// everything in memory, so the seed data is reloaded on every start.
type StorageConfig struct {
	Path      string `yaml:"path"`
	Seed      bool   `yaml:"seed"`
	BackupDir string `yaml:"backup_dir"`
}

// AdminConfig holds the single admin credential pair.
type AdminConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// SessionConfig configures the cookie session store.
type SessionConfig struct {
	Name   string `yaml:"name"`
	Key    string `yaml:"key"`
	Secure bool   `yaml:"secure"`
	MaxAge int    `yaml:"max_age"`
}

// EmailConfig configures the transactional email service.
type EmailConfig struct {
	Endpoint        string        `yaml:"endpoint"`
	ServiceID       string        `yaml:"service_id"`
	TemplateID      string        `yaml:"template_id"`
	ReplyTemplateID string        `yaml:"reply_template_id"`
	PublicKey       string        `yaml:"public_key"`
	Timeout         time.Duration `yaml:"timeout"`
}

// SiteConfig is the static content shown on the public pages.
type SiteConfig struct {
	Owner        string       `yaml:"owner"`
	Tagline      string       `yaml:"tagline"`
	ContactEmail string       `yaml:"contact_email"`
	Phone        string       `yaml:"phone"`
	Location     string       `yaml:"location"`
	MapEmbedURL  string       `yaml:"map_embed_url"`
	Social       SocialConfig `yaml:"social"`
}

// SocialConfig lists profile links rendered in the navbar and footer.
type SocialConfig struct {
	GitHub   string `yaml:"github"`
	LinkedIn string `yaml:"linkedin"`
	Twitter  string `yaml:"twitter"`
}

// LoggingConfig configures zap.
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Default returns a configuration that runs out of the box with the
// in-memory store and the seed data.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 10 * time.Second,
		},
		Storage: StorageConfig{
			Seed:      true,
			BackupDir: "data/backups",
		},
		Admin: AdminConfig{
			Username: "Shawaiz",
			Password: "231980079",
		},
		Session: SessionConfig{
			Name:   "portfolio_session",
			Key:    DefaultSessionKey,
			MaxAge: 7 * 24 * 60 * 60,
		},
		Email: EmailConfig{
			Endpoint:        "https://api.emailjs.com/api/v1.0/email/send",
			ServiceID:       "service_vflmbb6",
			TemplateID:      "template_j1vhhvn",
			ReplyTemplateID: "template_j1vhhvn",
			PublicKey:       "_HmEjuHt1-RpCXvx_",
			Timeout:         10 * time.Second,
		},
		Site: SiteConfig{
			Owner:        "Shawaiz",
			Tagline:      "Full-stack developer building clean, fast web experiences.",
			ContactEmail: "231980079@gift.edu.pk",
			Phone:        "+92 3266235229",
			Location:     "Gujranwala, Punjab, Pakistan",
			MapEmbedURL:  "https://www.google.com/maps/embed?pb=!1m18!1m12!1m3!1d108888.56824302194!2d74.12399625284472!3d32.161963153112166!2m3!1f0!2f0!3f0!3m2!1i1024!2i768!4f13.1!3m3!1m2!1s0x391f1d83e9d95fc1%3A0x9e194755a6bb5edc!2sGujranwala%2C%20Punjab%2C%20Pakistan!5e0!3m2!1sen!2sus!4v1711489876543",
			Social: SocialConfig{
				GitHub:   "https://github.com",
				LinkedIn: "https://linkedin.com",
				Twitter:  "https://twitter.com",
			},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads the YAML file at path on top of the defaults, then applies
// .env and environment overrides. A missing file is not an error when
// path is empty.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	// .env is optional; real environment variables take precedence.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides fields from environment variables.
func (c *Config) applyEnv() {
	setString(&c.Server.Addr, "PORTFOLIO_ADDR")
	setString(&c.Storage.Path, "PORTFOLIO_DATA_PATH")
	setString(&c.Storage.BackupDir, "PORTFOLIO_BACKUP_DIR")
	setString(&c.Admin.Username, "PORTFOLIO_ADMIN_USERNAME")
	setString(&c.Admin.Password, "PORTFOLIO_ADMIN_PASSWORD")
	setString(&c.Session.Key, "PORTFOLIO_SESSION_KEY")
	setString(&c.Email.ServiceID, "EMAILJS_SERVICE_ID")
	setString(&c.Email.TemplateID, "EMAILJS_TEMPLATE_ID")
	setString(&c.Email.PublicKey, "EMAILJS_PUBLIC_KEY")
	setString(&c.Logging.Level, "PORTFOLIO_LOG_LEVEL")

	if v := os.Getenv("PORTFOLIO_SESSION_SECURE"); v != "" {
		c.Session.Secure = strings.EqualFold(v, "true") || v == "1"
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// DefaultSessionKey ships with the code and must be replaced before the
// site keeps data across restarts.
const DefaultSessionKey = "change-me-to-a-long-random-session-key"

var ErrDefaultSessionKey = errors.New("session.key is still the built-in default; set PORTFOLIO_SESSION_KEY")

// DefaultSessionKeyInUse reports whether cookies are signed with the
// published key.
func (c *Config) DefaultSessionKeyInUse() bool {
	return c.Session.Key == DefaultSessionKey
}

// CheckServe refuses the default session key for a persistent store.
func (c *Config) CheckServe() error {
	if c.DefaultSessionKeyInUse() && c.Storage.Path != "" {
		return ErrDefaultSessionKey
	}
	return nil
}

// Validate checks the fields the server cannot run without.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New("server.addr is required")
	}
	if c.Admin.Username == "" || c.Admin.Password == "" {
		return errors.New("admin username and password are required")
	}
	if len(c.Session.Key) < 32 {
		return errors.New("session.key must be at least 32 characters")
	}
	if c.Session.Name == "" {
		return errors.New("session.name is required")
	}
	return nil
}
