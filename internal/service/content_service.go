package service

import (
	"context"
	"errors"
	"strings"

	"school_cms/internal/models"
	"school_cms/internal/repository"
)

// Post categories accepted from the admin panel.
var postCategories = map[string]bool{
	"general":   true,
	"sports":    true,
	"cultural":  true,
	"labs":      true,
	"academics": true,
	"events":    true,
}

var (
	errInvalidCategory = errors.New("invalid post category")
	errEmptyPost       = errors.New("post title and content are required")
)

// ContentService serves news/events/testimonials, contact submissions and posts.
type ContentService struct {
	content repository.Content
	posts   repository.Posts
}

func NewContentService(content repository.Content, posts repository.Posts) *ContentService {
	return &ContentService{content: content, posts: posts}
}

func (s *ContentService) ActiveNews(ctx context.Context) ([]models.News, error) {
	return s.content.ActiveNews(ctx)
}

func (s *ContentService) ActiveEvents(ctx context.Context) ([]models.Event, error) {
	return s.content.ActiveEvents(ctx)
}

func (s *ContentService) ActiveTestimonials(ctx context.Context) ([]models.Testimonial, error) {
	return s.content.ActiveTestimonials(ctx)
}

// SubmitContact stores a contact-form submission.
// Mail relay is an external concern; submissions are kept for the admin panel.
func (s *ContentService) SubmitContact(ctx context.Context, c models.Contact) (int, error) {
	c.FirstName = strings.TrimSpace(c.FirstName)
	c.LastName = strings.TrimSpace(c.LastName)
	c.Email = strings.TrimSpace(c.Email)
	c.Subject = strings.TrimSpace(c.Subject)
	return s.content.CreateContact(ctx, c)
}

// CreatePost stores a post attributed to the authenticated author.
func (s *ContentService) CreatePost(ctx context.Context, p models.Post, authorID int) (int, error) {
	p.Title = strings.TrimSpace(p.Title)
	if p.Title == "" || strings.TrimSpace(p.Content) == "" {
		return 0, errEmptyPost
	}
	if !postCategories[p.Category] {
		return 0, errInvalidCategory
	}
	p.AuthorID = authorID
	return s.posts.Create(ctx, p)
}

func (s *ContentService) ActivePosts(ctx context.Context) ([]models.Post, error) {
	return s.posts.ListActive(ctx)
}

func (s *ContentService) PostsByCategory(ctx context.Context, category string) ([]models.Post, error) {
	category = strings.ToLower(strings.TrimSpace(category))
	if !postCategories[category] {
		return nil, errInvalidCategory
	}
	return s.posts.ListByCategory(ctx, category)
}
