package service

import (
	"context"
	"time"

	"school_cms/internal/logger"
	"school_cms/internal/models"
	"school_cms/internal/repository"
)

// Authorization owns credentials and sessions: login/logout, token
// resolution and admin user provisioning.
type Authorization interface {
	Login(ctx context.Context, username, password string) (string, models.Identity, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (models.Identity, error)
	CreateUser(username, password, role string) (int, error)
	EnsureAdmin(username, password string) error
}

// Content serves the public marketing data and admin-authored posts.
type Content interface {
	ActiveNews(ctx context.Context) ([]models.News, error)
	ActiveEvents(ctx context.Context) ([]models.Event, error)
	ActiveTestimonials(ctx context.Context) ([]models.Testimonial, error)
	SubmitContact(ctx context.Context, c models.Contact) (int, error)
	CreatePost(ctx context.Context, p models.Post, authorID int) (int, error)
	ActivePosts(ctx context.Context) ([]models.Post, error)
	PostsByCategory(ctx context.Context, category string) ([]models.Post, error)
}

// Pages manages dynamic pages and their components.
type Pages interface {
	List(ctx context.Context) ([]models.Page, error)
	ListPublished(ctx context.Context) ([]models.Page, error)
	GetBySlug(ctx context.Context, slug string) (*models.Page, error)
	Create(ctx context.Context, p models.Page) (int, error)
	Update(ctx context.Context, p models.Page) error
	Delete(ctx context.Context, id int) error
	ListComponents(ctx context.Context, pageID int) ([]models.PageComponent, error)
	CreateComponent(ctx context.Context, c models.PageComponent) (int, error)
	UpdateComponent(ctx context.Context, c models.PageComponent) error
	DeleteComponent(ctx context.Context, id int) error
}

type Menu interface {
	List(ctx context.Context) ([]models.MenuItem, error)
	ListVisible(ctx context.Context) ([]models.MenuItem, error)
	Create(ctx context.Context, m models.MenuItem) (int, error)
	Update(ctx context.Context, m models.MenuItem) error
	Delete(ctx context.Context, id int) error
}

type Forms interface {
	List(ctx context.Context) ([]models.Form, error)
	GetActiveByName(ctx context.Context, name string) (*models.Form, error)
	Create(ctx context.Context, f models.Form) (int, error)
	Update(ctx context.Context, f models.Form) error
	Delete(ctx context.Context, id int) error
	Submissions(ctx context.Context, formID int) ([]models.FormSubmission, error)
	Submit(ctx context.Context, name, data, ip, userAgent string) (int, error)
}

type Settings interface {
	All(ctx context.Context) ([]models.SiteSetting, error)
	ByCategory(ctx context.Context, category string) ([]models.SiteSetting, error)
	Update(ctx context.Context, settings []models.SiteSetting) error
	EnsureDefaults(ctx context.Context) error
}

// Reaper runs the background loop that purges expired sessions.
// Stop via context cancellation in main() for graceful shutdown.
// Expiry correctness never depends on it; lookups check expiry lazily.
type Reaper interface {
	Run(ctx context.Context, tick time.Duration)
}

//
// Root Service aggregates all sub-services.
//

type Service struct {
	Authorization
	Content
	Pages
	Menu
	Forms
	Settings
	Reaper
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, log *logger.Logger) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Users, repos.Sessions),
		Content:       NewContentService(repos.Content, repos.Posts),
		Pages:         NewPagesService(repos.Pages),
		Menu:          NewMenuService(repos.Menu),
		Forms:         NewFormsService(repos.Forms),
		Settings:      NewSettingsService(repos.Settings),
		Reaper:        NewReaperService(repos.Sessions, log),
	}
}
