package mock

import (
	"sort"
	"sync"
	"time"

	"portfolio/app/models"
	"portfolio/app/repositories"
)

type ProjectRepository struct {
	projects map[int]*models.Project
	nextID   int
	mutex    sync.RWMutex
}

type BlogRepository struct {
	posts  map[int]*models.BlogPost
	nextID int
	mutex  sync.RWMutex
}

type MessageRepository struct {
	messages map[int]*models.Message
	nextID   int
	mutex    sync.RWMutex
}

type SettingsRepository struct {
	settings *models.Settings
	mutex    sync.RWMutex
}

type ViewRepository struct {
	views map[string]int
	mutex sync.Mutex
}

func NewProjectRepository() *ProjectRepository {
	return &ProjectRepository{
		projects: make(map[int]*models.Project),
		nextID:   1,
	}
}

func (m *ProjectRepository) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.projects = make(map[int]*models.Project)
	m.nextID = 1
}

func NewBlogRepository() *BlogRepository {
	return &BlogRepository{
		posts:  make(map[int]*models.BlogPost),
		nextID: 1,
	}
}

func NewMessageRepository() *MessageRepository {
	return &MessageRepository{
		messages: make(map[int]*models.Message),
		nextID:   1,
	}
}

func NewSettingsRepository() *SettingsRepository {
	return &SettingsRepository{}
}

func NewViewRepository() *ViewRepository {
	return &ViewRepository{views: make(map[string]int)}
}

// ProjectRepository implementation
func (m *ProjectRepository) Create(project *models.Project) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	project.ID = m.nextID
	m.nextID++
	m.projects[project.ID] = cloneProject(project)
	return nil
}

func (m *ProjectRepository) GetByID(id int) (*models.Project, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	project, exists := m.projects[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return cloneProject(project), nil
}

func (m *ProjectRepository) List() ([]*models.Project, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	projects := make([]*models.Project, 0, len(m.projects))
	for _, p := range m.projects {
		projects = append(projects, cloneProject(p))
	}
	sort.Slice(projects, func(i, j int) bool { return projects[i].ID < projects[j].ID })
	return projects, nil
}

func (m *ProjectRepository) Update(project *models.Project) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.projects[project.ID]; !exists {
		return repositories.ErrNotFound
	}
	m.projects[project.ID] = cloneProject(project)
	return nil
}

func (m *ProjectRepository) Delete(id int) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.projects[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.projects, id)
	return nil
}

// BlogRepository implementation
func (m *BlogRepository) Create(post *models.BlogPost) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for _, p := range m.posts {
		if p.Slug == post.Slug {
			return repositories.ErrSlugTaken
		}
	}
	post.ID = m.nextID
	m.nextID++
	m.posts[post.ID] = clonePost(post)
	return nil
}

func (m *BlogRepository) GetByID(id int) (*models.BlogPost, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	post, exists := m.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return clonePost(post), nil
}

func (m *BlogRepository) GetBySlug(slug string) (*models.BlogPost, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for _, p := range m.posts {
		if p.Slug == slug {
			return clonePost(p), nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *BlogRepository) List() ([]*models.BlogPost, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	posts := make([]*models.BlogPost, 0, len(m.posts))
	for _, p := range m.posts {
		posts = append(posts, clonePost(p))
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].ID < posts[j].ID })
	return posts, nil
}

func (m *BlogRepository) Update(post *models.BlogPost) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.posts[post.ID]; !exists {
		return repositories.ErrNotFound
	}
	for _, p := range m.posts {
		if p.ID != post.ID && p.Slug == post.Slug {
			return repositories.ErrSlugTaken
		}
	}
	m.posts[post.ID] = clonePost(post)
	return nil
}

func (m *BlogRepository) Delete(id int) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.posts[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.posts, id)
	return nil
}

// MessageRepository implementation
func (m *MessageRepository) Create(message *models.Message) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	message.ID = m.nextID
	m.nextID++
	copied := *message
	m.messages[message.ID] = &copied
	return nil
}

func (m *MessageRepository) GetByID(id int) (*models.Message, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	message, exists := m.messages[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	copied := *message
	return &copied, nil
}

func (m *MessageRepository) List() ([]*models.Message, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	messages := make([]*models.Message, 0, len(m.messages))
	for _, msg := range m.messages {
		copied := *msg
		messages = append(messages, &copied)
	}
	sort.Slice(messages, func(i, j int) bool { return messages[i].ID < messages[j].ID })
	return messages, nil
}

func (m *MessageRepository) Update(message *models.Message) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.messages[message.ID]; !exists {
		return repositories.ErrNotFound
	}
	copied := *message
	m.messages[message.ID] = &copied
	return nil
}

func (m *MessageRepository) Delete(id int) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.messages[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.messages, id)
	return nil
}

// SettingsRepository implementation
func (m *SettingsRepository) Get() (*models.Settings, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.settings == nil {
		return nil, repositories.ErrNotFound
	}
	copied := *m.settings
	return &copied, nil
}

func (m *SettingsRepository) Save(settings *models.Settings) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	copied := *settings
	m.settings = &copied
	return nil
}

// ViewRepository implementation
func (m *ViewRepository) Increment(day time.Time) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.views[day.UTC().Format("2006-01-02")]++
	return nil
}

func (m *ViewRepository) Range(from time.Time, days int) ([]models.DayViews, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	start := from.UTC().Truncate(24 * time.Hour)
	out := make([]models.DayViews, 0, days)
	for i := 0; i < days; i++ {
		d := start.AddDate(0, 0, i)
		out = append(out, models.DayViews{Day: d, Views: m.views[d.Format("2006-01-02")]})
	}
	return out, nil
}

func cloneProject(p *models.Project) *models.Project {
	copied := *p
	return &copied
}

func clonePost(p *models.BlogPost) *models.BlogPost {
	copied := *p
	copied.RelatedIDs = append([]int(nil), p.RelatedIDs...)
	return &copied
}
