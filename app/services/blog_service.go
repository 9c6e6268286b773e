package services

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"sort"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"portfolio/app/models"
	"portfolio/app/repositories"
)

// defaultSlug is used for titles without any ASCII letters or digits.
const defaultSlug = "post"

// BlogService handles business logic for blog posts
type BlogService struct {
	blogRepo repositories.BlogRepository
	markdown goldmark.Markdown
	policy   *bluemonday.Policy
}

// NewBlogService creates a new BlogService
func NewBlogService(blogRepo repositories.BlogRepository) *BlogService {
	return &BlogService{
		blogRepo: blogRepo,
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
		policy: bluemonday.UGCPolicy(),
	}
}

// CreatePost validates and stores a new post under a unique slug
func (s *BlogService) CreatePost(post *models.BlogPost) error {
	post.Slug = models.Slugify(post.Slug)
	post.BeforeCreate()
	if err := post.Validate(); err != nil {
		return invalid("post", err)
	}

	slug, err := s.uniqueSlug(post.Slug, 0)
	if err != nil {
		return err
	}
	post.Slug = slug
	return s.blogRepo.Create(post)
}

// GetPost retrieves a post by ID regardless of status
func (s *BlogService) GetPost(id int) (*models.BlogPost, error) {
	return s.blogRepo.GetByID(id)
}

// GetPublishedPost resolves a public slug. Drafts are not found.
func (s *BlogService) GetPublishedPost(slug string) (*models.BlogPost, error) {
	post, err := s.blogRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if !post.IsPublished() {
		return nil, repositories.ErrNotFound
	}
	return post, nil
}

// ListPosts returns every post, newest first
func (s *BlogService) ListPosts() ([]*models.BlogPost, error) {
	posts, err := s.blogRepo.List()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(posts, func(i, j int) bool {
		if posts[i].Date.Equal(posts[j].Date) {
			return posts[i].ID > posts[j].ID
		}
		return posts[i].Date.After(posts[j].Date)
	})
	return posts, nil
}

// Search returns published posts whose title or excerpt contains term,
// ignoring case, and that carry tag when tag is set.
func (s *BlogService) Search(term, tag string) ([]*models.BlogPost, error) {
	posts, err := s.ListPosts()
	if err != nil {
		return nil, err
	}
	term = strings.ToLower(strings.TrimSpace(term))
	tag = strings.TrimSpace(tag)

	matched := make([]*models.BlogPost, 0, len(posts))
	for _, p := range posts {
		if !p.IsPublished() {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(p.Title), term) &&
			!strings.Contains(strings.ToLower(p.Excerpt), term) {
			continue
		}
		if tag != "" && !p.HasTag(tag) {
			continue
		}
		matched = append(matched, p)
	}
	return matched, nil
}

// Recent returns up to n of the newest published posts.
func (s *BlogService) Recent(n int) ([]*models.BlogPost, error) {
	posts, err := s.Search("", "")
	if err != nil {
		return nil, err
	}
	if len(posts) > n {
		posts = posts[:n]
	}
	return posts, nil
}

// Tags lists the distinct tags of published posts, sorted without
// regard to case.
func (s *BlogService) Tags() ([]string, error) {
	posts, err := s.Search("", "")
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var tags []string
	for _, p := range posts {
		for _, t := range p.TagList() {
			key := strings.ToLower(t)
			if !seen[key] {
				seen[key] = true
				tags = append(tags, t)
			}
		}
	}
	sort.Slice(tags, func(i, j int) bool {
		return strings.ToLower(tags[i]) < strings.ToLower(tags[j])
	})
	return tags, nil
}

// Related resolves the post's related ids. Missing ids, drafts and the
// post itself are skipped.
func (s *BlogService) Related(post *models.BlogPost) ([]*models.BlogPost, error) {
	var related []*models.BlogPost
	for _, id := range post.RelatedIDs {
		if id == post.ID {
			continue
		}
		p, err := s.blogRepo.GetByID(id)
		if errors.Is(err, repositories.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to get related post %d: %w", id, err)
		}
		if p.IsPublished() {
			related = append(related, p)
		}
	}
	return related, nil
}

// Render converts the post content, Markdown or HTML, into sanitized
// markup safe to embed in a page.
func (s *BlogService) Render(post *models.BlogPost) (template.HTML, error) {
	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(post.Content), &buf); err != nil {
		return "", fmt.Errorf("failed to render post %d: %w", post.ID, err)
	}
	return template.HTML(s.policy.SanitizeBytes(buf.Bytes())), nil
}

// UpdatePost updates an existing post. A blank slug is derived from the
// title again.
func (s *BlogService) UpdatePost(post *models.BlogPost) error {
	existing, err := s.blogRepo.GetByID(post.ID)
	if err != nil {
		return err
	}

	if post.Date.IsZero() {
		post.Date = existing.Date
	}
	post.Slug = models.Slugify(post.Slug)
	post.BeforeCreate()
	if err := post.Validate(); err != nil {
		return invalid("post", err)
	}

	slug, err := s.uniqueSlug(post.Slug, post.ID)
	if err != nil {
		return err
	}
	post.Slug = slug
	return s.blogRepo.Update(post)
}

// DeletePost removes exactly the post with the given ID
func (s *BlogService) DeletePost(id int) error {
	return s.blogRepo.Delete(id)
}

// uniqueSlug appends -2, -3, ... to base until no post other than
// ownerID holds it.
func (s *BlogService) uniqueSlug(base string, ownerID int) (string, error) {
	if base == "" {
		base = defaultSlug
	}
	for n := 1; ; n++ {
		slug := base
		if n > 1 {
			slug = fmt.Sprintf("%s-%d", base, n)
		}
		existing, err := s.blogRepo.GetBySlug(slug)
		if errors.Is(err, repositories.ErrNotFound) {
			return slug, nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to check slug %q: %w", slug, err)
		}
		if existing.ID == ownerID && ownerID != 0 {
			return slug, nil
		}
	}
}
