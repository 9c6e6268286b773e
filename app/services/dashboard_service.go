package services

import (
	"time"

	"golang.org/x/sync/errgroup"

	"portfolio/app/models"
	"portfolio/app/repositories"
)

// viewDays is the window shown on the dashboard chart.
const viewDays = 7

// Stats summarizes the site for the admin dashboard.
type Stats struct {
	Projects          int               `json:"projects"`
	PublishedProjects int               `json:"publishedProjects"`
	Posts             int               `json:"posts"`
	PublishedPosts    int               `json:"publishedPosts"`
	Messages          int               `json:"messages"`
	Unread            int               `json:"unread"`
	TotalViews        int               `json:"totalViews"`
	Views             []models.DayViews `json:"views"`
	RecentMessages    []*models.Message `json:"recentMessages"`
}

// MaxViews is the tallest bar of the chart, at least 1.
func (s *Stats) MaxViews() int {
	max := 1
	for _, v := range s.Views {
		if v.Views > max {
			max = v.Views
		}
	}
	return max
}

type DashboardService struct {
	projects *ProjectService
	posts    *BlogService
	messages *MessageService
	viewRepo repositories.ViewRepository
}

func NewDashboardService(projects *ProjectService, posts *BlogService, messages *MessageService, viewRepo repositories.ViewRepository) *DashboardService {
	return &DashboardService{
		projects: projects,
		posts:    posts,
		messages: messages,
		viewRepo: viewRepo,
	}
}

// Stats gathers totals and the views of the week ending on now.
func (s *DashboardService) Stats(now time.Time) (*Stats, error) {
	var (
		stats    Stats
		projects []*models.Project
		posts    []*models.BlogPost
		messages []*models.Message
	)

	var g errgroup.Group
	g.Go(func() (err error) {
		projects, err = s.projects.ListProjects()
		return err
	})
	g.Go(func() (err error) {
		posts, err = s.posts.ListPosts()
		return err
	})
	g.Go(func() (err error) {
		messages, err = s.messages.ListMessages()
		return err
	})
	g.Go(func() (err error) {
		stats.Views, err = s.viewRepo.Range(now.AddDate(0, 0, -(viewDays - 1)), viewDays)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats.Projects = len(projects)
	for _, p := range projects {
		if p.IsPublished() {
			stats.PublishedProjects++
		}
	}
	stats.Posts = len(posts)
	for _, p := range posts {
		if p.IsPublished() {
			stats.PublishedPosts++
		}
	}
	stats.Messages = len(messages)
	for _, m := range messages {
		if !m.Read {
			stats.Unread++
		}
	}
	for _, v := range stats.Views {
		stats.TotalViews += v.Views
	}
	stats.RecentMessages = messages
	if len(stats.RecentMessages) > 5 {
		stats.RecentMessages = stats.RecentMessages[:5]
	}
	return &stats, nil
}
