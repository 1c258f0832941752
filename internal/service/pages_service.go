package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"school_cms/internal/models"
	"school_cms/internal/repository"
)

// Page layouts supported by the front end.
var pageLayouts = map[string]bool{
	"default":   true,
	"fullwidth": true,
	"sidebar":   true,
}

// Component types the page builder understands.
var componentTypes = map[string]bool{
	"hero":    true,
	"text":    true,
	"image":   true,
	"gallery": true,
	"form":    true,
	"button":  true,
	"video":   true,
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

var (
	errInvalidSlug      = errors.New("slug must be lowercase letters, digits and hyphens")
	errInvalidLayout    = errors.New("layout must be default, fullwidth or sidebar")
	errInvalidComponent = errors.New("unknown component type")
)

type PagesService struct {
	pages repository.Pages
}

func NewPagesService(pages repository.Pages) *PagesService {
	return &PagesService{pages: pages}
}

func (s *PagesService) List(ctx context.Context) ([]models.Page, error) {
	return s.pages.List(ctx)
}

func (s *PagesService) ListPublished(ctx context.Context) ([]models.Page, error) {
	return s.pages.ListPublished(ctx)
}

func (s *PagesService) GetBySlug(ctx context.Context, slug string) (*models.Page, error) {
	return s.pages.GetBySlug(ctx, slug)
}

func (s *PagesService) Create(ctx context.Context, p models.Page) (int, error) {
	if err := normalizePage(&p); err != nil {
		return 0, err
	}
	return s.pages.Create(ctx, p)
}

func (s *PagesService) Update(ctx context.Context, p models.Page) error {
	if err := normalizePage(&p); err != nil {
		return err
	}
	return s.pages.Update(ctx, p)
}

func (s *PagesService) Delete(ctx context.Context, id int) error {
	return s.pages.Delete(ctx, id)
}

func (s *PagesService) ListComponents(ctx context.Context, pageID int) ([]models.PageComponent, error) {
	return s.pages.ListComponents(ctx, pageID)
}

func (s *PagesService) CreateComponent(ctx context.Context, c models.PageComponent) (int, error) {
	if !componentTypes[c.ComponentType] {
		return 0, errInvalidComponent
	}
	return s.pages.CreateComponent(ctx, c)
}

func (s *PagesService) UpdateComponent(ctx context.Context, c models.PageComponent) error {
	if !componentTypes[c.ComponentType] {
		return errInvalidComponent
	}
	return s.pages.UpdateComponent(ctx, c)
}

func (s *PagesService) DeleteComponent(ctx context.Context, id int) error {
	return s.pages.DeleteComponent(ctx, id)
}

// normalizePage trims, defaults the layout and validates slug/layout.
func normalizePage(p *models.Page) error {
	p.Title = strings.TrimSpace(p.Title)
	p.Slug = strings.ToLower(strings.TrimSpace(p.Slug))
	if p.Layout == "" {
		p.Layout = "default"
	}
	if !slugPattern.MatchString(p.Slug) {
		return errInvalidSlug
	}
	if !pageLayouts[p.Layout] {
		return errInvalidLayout
	}
	return nil
}
