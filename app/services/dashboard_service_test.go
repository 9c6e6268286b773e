package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"portfolio/app/repositories"
	"portfolio/app/repositories/mock"
)

func TestDashboardServiceStats(t *testing.T) {
	projects, _ := seededProjectService(t)
	posts := seededBlogService(t)

	messageRepo := mock.NewMessageRepository()
	for _, m := range repositories.SeedMessages() {
		require.NoError(t, messageRepo.Create(m))
	}
	messages := NewMessageService(messageRepo, &fakeSender{}, Templates{Contact: "tpl"}, "Owner", zap.NewNop())

	now := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)
	views := mock.NewViewRepository()
	require.NoError(t, views.Increment(now))
	require.NoError(t, views.Increment(now))
	require.NoError(t, views.Increment(now.AddDate(0, 0, -6)))
	require.NoError(t, views.Increment(now.AddDate(0, 0, -7)))

	service := NewDashboardService(projects, posts, messages, views)
	stats, err := service.Stats(now)
	require.NoError(t, err)

	assert.Equal(t, 6, stats.Projects)
	assert.Equal(t, 5, stats.PublishedProjects)
	assert.Equal(t, 5, stats.Posts)
	assert.Equal(t, 4, stats.PublishedPosts)
	assert.Equal(t, 3, stats.Messages)
	assert.Equal(t, 2, stats.Unread)
	assert.Len(t, stats.RecentMessages, 3)

	require.Len(t, stats.Views, 7)
	assert.Equal(t, 1, stats.Views[0].Views)
	assert.Equal(t, 2, stats.Views[6].Views)
	assert.Equal(t, 3, stats.TotalViews, "views older than a week are excluded")
	assert.Equal(t, 2, stats.MaxViews())
}
