package repositories

import (
	"time"

	"portfolio/app/models"
)

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	Create(project *models.Project) error
	GetByID(id int) (*models.Project, error)
	List() ([]*models.Project, error)
	Update(project *models.Project) error
	Delete(id int) error
}

// BlogRepository defines the interface for blog post data access
type BlogRepository interface {
	Create(post *models.BlogPost) error
	GetByID(id int) (*models.BlogPost, error)
	GetBySlug(slug string) (*models.BlogPost, error)
	List() ([]*models.BlogPost, error)
	Update(post *models.BlogPost) error
	Delete(id int) error
}

// MessageRepository defines the interface for inbox data access
type MessageRepository interface {
	Create(message *models.Message) error
	GetByID(id int) (*models.Message, error)
	List() ([]*models.Message, error)
	Update(message *models.Message) error
	Delete(id int) error
}

// SettingsRepository stores the single settings record
type SettingsRepository interface {
	Get() (*models.Settings, error)
	Save(settings *models.Settings) error
}

// ViewRepository keeps per-day page view counters
type ViewRepository interface {
	Increment(day time.Time) error
	Range(from time.Time, days int) ([]models.DayViews, error)
}
