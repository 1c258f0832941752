package repository

import (
	"context"
	"database/sql"
	"time"

	"school_cms/internal/models"
)

type Users interface {
	Create(username, passwordHash, role string) (int, error)
	GetByID(id int) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
}

type Sessions interface {
	Create(ctx context.Context, s models.Session) error
	Get(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type Posts interface {
	Create(ctx context.Context, p models.Post) (int, error)
	ListActive(ctx context.Context) ([]models.Post, error)
	ListByCategory(ctx context.Context, category string) ([]models.Post, error)
}

// Content groups the read-mostly marketing tables plus contact submissions.
type Content interface {
	ActiveNews(ctx context.Context) ([]models.News, error)
	ActiveEvents(ctx context.Context) ([]models.Event, error)
	ActiveTestimonials(ctx context.Context) ([]models.Testimonial, error)
	CreateContact(ctx context.Context, c models.Contact) (int, error)
}

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

	ListSubmissions(ctx context.Context, formID int) ([]models.FormSubmission, error)
	CreateSubmission(ctx context.Context, s models.FormSubmission) (int, error)
}

type Settings interface {
	List(ctx context.Context) ([]models.SiteSetting, error)
	ListByCategory(ctx context.Context, category string) ([]models.SiteSetting, error)
	Upsert(ctx context.Context, s models.SiteSetting) error
}

type Repository struct {
	Users    Users
	Sessions Sessions
	Posts    Posts
	Content  Content
	Pages    Pages
	Menu     Menu
	Forms    Forms
	Settings Settings
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Users:    NewUserRepository(db),
		Sessions: NewSessionRepository(db),
		Posts:    NewPostRepository(db),
		Content:  NewContentRepository(db),
		Pages:    NewPageRepository(db),
		Menu:     NewMenuRepository(db),
		Forms:    NewFormRepository(db),
		Settings: NewSettingsRepository(db),
	}
}
