package services

import (
	"sort"
	"strings"

	"portfolio/app/models"
	"portfolio/app/repositories"
)

// CategoryAll selects every published project.
const CategoryAll = "all"

// ProjectService handles business logic for portfolio projects
type ProjectService struct {
	projectRepo repositories.ProjectRepository
}

// NewProjectService creates a new ProjectService
func NewProjectService(projectRepo repositories.ProjectRepository) *ProjectService {
	return &ProjectService{projectRepo: projectRepo}
}

// CreateProject validates and stores a new project
func (s *ProjectService) CreateProject(project *models.Project) error {
	project.BeforeCreate()
	if err := project.Validate(); err != nil {
		return invalid("project", err)
	}
	return s.projectRepo.Create(project)
}

// GetProject retrieves a project by ID regardless of status
func (s *ProjectService) GetProject(id int) (*models.Project, error) {
	return s.projectRepo.GetByID(id)
}

// GetPublishedProject hides drafts behind ErrNotFound.
func (s *ProjectService) GetPublishedProject(id int) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !project.IsPublished() {
		return nil, repositories.ErrNotFound
	}
	return project, nil
}

// ListProjects returns every project, newest first
func (s *ProjectService) ListProjects() ([]*models.Project, error) {
	projects, err := s.projectRepo.List()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(projects, func(i, j int) bool {
		if projects[i].CreatedAt.Equal(projects[j].CreatedAt) {
			return projects[i].ID > projects[j].ID
		}
		return projects[i].CreatedAt.After(projects[j].CreatedAt)
	})
	return projects, nil
}

// ListPublished returns published projects whose category equals
// category. An empty category or "all" matches everything.
func (s *ProjectService) ListPublished(category string) ([]*models.Project, error) {
	projects, err := s.ListProjects()
	if err != nil {
		return nil, err
	}
	category = strings.ToLower(strings.TrimSpace(category))

	filtered := make([]*models.Project, 0, len(projects))
	for _, p := range projects {
		if !p.IsPublished() {
			continue
		}
		if category != "" && category != CategoryAll && p.Category != category {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered, nil
}

// Featured returns published projects flagged for the home page.
func (s *ProjectService) Featured() ([]*models.Project, error) {
	projects, err := s.ListPublished(CategoryAll)
	if err != nil {
		return nil, err
	}
	featured := projects[:0]
	for _, p := range projects {
		if p.Featured {
			featured = append(featured, p)
		}
	}
	return featured, nil
}

// Categories lists the distinct categories of published projects.
func (s *ProjectService) Categories() ([]string, error) {
	projects, err := s.ListPublished(CategoryAll)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var categories []string
	for _, p := range projects {
		if !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}
	sort.Strings(categories)
	return categories, nil
}

// UpdateProject updates an existing project with validation
func (s *ProjectService) UpdateProject(project *models.Project) error {
	existing, err := s.projectRepo.GetByID(project.ID)
	if err != nil {
		return err
	}

	project.CreatedAt = existing.CreatedAt
	project.BeforeCreate()
	if err := project.Validate(); err != nil {
		return invalid("project", err)
	}
	return s.projectRepo.Update(project)
}

// DeleteProject removes exactly the project with the given ID
func (s *ProjectService) DeleteProject(id int) error {
	return s.projectRepo.Delete(id)
}
